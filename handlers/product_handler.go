package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"backend/aiservice"
	"backend/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const productsCacheKey = "products"

// Danh sách sản phẩm mới nhất trước, ưu tiên đọc từ Redis.
// Redis lỗi thì đọc thẳng database, không bao giờ fail request vì cache.
func GetProductListHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	if rdb != nil {
		if products, ok := readProductCache(c, rdb); ok {
			c.JSON(http.StatusOK, products)
			return
		}
	}

	var products []models.Product
	if err := db.Order("id desc").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Không thể tải danh sách sản phẩm",
			"error":   err.Error(),
		})
		return
	}

	if rdb != nil {
		refreshProductCache(c, rdb, products)
	}

	c.JSON(http.StatusOK, products)
}

// Sản phẩm trong cache chấm điểm theo id nên ZRevRange trả về đúng
// thứ tự mới nhất trước.
func readProductCache(c *gin.Context, rdb *redis.Client) ([]models.Product, bool) {
	members, err := rdb.ZRevRange(c, productsCacheKey, 0, -1).Result()
	if err != nil || len(members) == 0 {
		return nil, false
	}

	products := make([]models.Product, 0, len(members))
	for _, member := range members {
		var product models.Product
		if err := json.Unmarshal([]byte(member), &product); err != nil {
			log.Printf("Cache sản phẩm hỏng, đọc lại từ database: %v", err)
			return nil, false
		}
		products = append(products, product)
	}

	return products, true
}

func refreshProductCache(c *gin.Context, rdb *redis.Client, products []models.Product) {
	if err := rdb.Del(c, productsCacheKey).Err(); err != nil {
		log.Printf("Không xoá được cache sản phẩm: %v", err)
		return
	}

	for _, product := range products {
		productJSON, err := json.Marshal(product)
		if err != nil {
			log.Printf("Không serialize được sản phẩm %d: %v", product.ID, err)
			continue
		}

		err = rdb.ZAdd(c, productsCacheKey, redis.Z{
			Score:  float64(product.ID),
			Member: productJSON,
		}).Err()
		if err != nil {
			log.Printf("Không ghi được sản phẩm %d vào cache: %v", product.ID, err)
		}
	}
}

// Chuyển ảnh sang AI service tìm sản phẩm tương tự. Timeout và lỗi kết nối
// trả về hai payload tĩnh khác nhau, luôn là HTTP 200.
func VisualSearchHandler(c *gin.Context, ai *aiservice.Client) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Thiếu ảnh cần tìm kiếm",
			"error":   err.Error(),
		})
		return
	}

	log.Printf("Nhận ảnh visual search, kích thước %d bytes", len(req.ImageBase64))

	// Browser hủy request cũng không hủy lời gọi AI đang chạy.
	body, err := ai.VisualSearch(context.Background(), req.ImageBase64)
	switch {
	case err == nil:
		c.Data(http.StatusOK, "application/json", body)
	case aiservice.IsTimeout(err):
		log.Printf("Visual search quá chậm: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": "AI phân tích ảnh quá lâu, vui lòng thử lại.",
			"data":    []interface{}{},
		})
	default:
		log.Printf("Lỗi visual search: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": "Lỗi kết nối tới AI service.",
			"data":    []interface{}{},
		})
	}
}
