package handlers

import (
	"errors"
	"net/http"
	"time"

	"backend/jwt"
	"backend/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetime = 24 * time.Hour

// Trường public của user, không bao giờ trả password ra ngoài.
func publicUser(user models.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"fullName": user.FullName,
		"role":     user.Role,
	}
}

// Đăng ký tài khoản mới, email trùng trả về 409.
func RegisterHandler(c *gin.Context, db *gorm.DB) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		FullName string `json:"fullName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Dữ liệu đăng ký không hợp lệ",
			"error":   err.Error(),
		})
		return
	}

	var existing models.User
	err := db.First(&existing, "email = ?", req.Email).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"message": "Email này đã được đăng ký!",
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Lỗi kiểm tra email",
			"error":   err.Error(),
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Không thể mã hoá mật khẩu",
			"error":   err.Error(),
		})
		return
	}

	newUser := models.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		Role:     "USER",
	}
	if err := db.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Không thể lưu tài khoản",
			"error":   err.Error(),
		})
		return
	}

	token, err := jwt.GenerateToken(newUser.ID, newUser.Email, newUser.Role, time.Now().Add(tokenLifetime))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Không thể tạo token",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  publicUser(newUser),
		"token": token,
	})
}

// Đăng nhập, email không tồn tại và sai mật khẩu trả về cùng một thông báo.
func LoginHandler(c *gin.Context, db *gorm.DB) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Dữ liệu đăng nhập không hợp lệ",
			"error":   err.Error(),
		})
		return
	}

	var user models.User
	err := db.First(&user, "email = ?", req.Email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Email hoặc mật khẩu không đúng!",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Lỗi truy vấn tài khoản",
			"error":   err.Error(),
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "Email hoặc mật khẩu không đúng!",
		})
		return
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Role, time.Now().Add(tokenLifetime))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Không thể tạo token",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  publicUser(user),
		"token": token,
	})
}

// Thông tin user đang đăng nhập.
func GetProfileHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Không lấy được UserID",
		})
		return
	}

	var user models.User
	err := db.First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Lỗi truy vấn tài khoản",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"fullName":  user.FullName,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	})
}

// Cập nhật họ tên hoặc đổi mật khẩu, phải nhập đúng mật khẩu cũ.
func UpdateProfileHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Không lấy được UserID",
		})
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Lỗi truy vấn tài khoản",
			"error":   err.Error(),
		})
		return
	}

	var req struct {
		OldPassword string  `json:"oldPassword" binding:"required"`
		NewPassword string  `json:"newPassword"`
		FullName    *string `json:"fullName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Dữ liệu cập nhật không hợp lệ",
			"error":   err.Error(),
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "Mật khẩu cũ không đúng",
		})
		return
	}

	if req.NewPassword != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Không thể mã hoá mật khẩu",
				"error":   err.Error(),
			})
			return
		}
		user.Password = string(hashedPassword)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}

	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Không thể cập nhật tài khoản",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật tài khoản thành công",
		"user":    publicUser(user),
	})
}
