package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Chặn request chưa đăng nhập.
func CheckLoginMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, exists := c.Get("UserID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Bạn chưa đăng nhập!",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
