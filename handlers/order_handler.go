package handlers

import (
	"log"
	"net/http"

	"backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Tạo đơn hàng cho chính user đang đăng nhập. Order và OrderItem được
// ghi chung một câu Create nên gorm gói cả hai trong một transaction.
func CreateOrderHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Không lấy được UserID",
		})
		return
	}

	var req struct {
		ProductID   uint    `json:"productId" binding:"required"`
		Quantity    uint    `json:"quantity" binding:"required"`
		TotalAmount float64 `json:"totalAmount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Dữ liệu đơn hàng không hợp lệ",
			"error":   err.Error(),
		})
		return
	}

	newOrder := models.Order{
		UserID:      userID.(uint),
		TotalAmount: req.TotalAmount,
		Status:      "COMPLETED",
		Items: []models.OrderItem{
			{
				ProductID: req.ProductID,
				Quantity:  req.Quantity,
				// Giá từng món suy ra từ tổng tiền client gửi lên
				Price: req.TotalAmount / float64(req.Quantity),
			},
		},
	}

	if err := db.Create(&newOrder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Không thể lưu đơn hàng",
			"error":   err.Error(),
		})
		return
	}

	log.Printf("Đã tạo đơn hàng #%d cho user %d, tổng tiền %.0f", newOrder.ID, newOrder.UserID, newOrder.TotalAmount)

	c.JSON(http.StatusCreated, newOrder)
}

// Danh sách đơn của user đang đăng nhập, kèm chi tiết từng món.
func GetOrderListHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Không lấy được UserID",
		})
		return
	}

	var orders []models.Order
	err := db.
		Where("user_id = ?", userID).
		Preload("Items").
		Order("id desc").
		Find(&orders).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Không thể tải danh sách đơn hàng",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}
