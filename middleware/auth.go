package middleware

import (
	"log"
	"strings"

	"backend/jwt"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware giải mã bearer token nếu có, request không có token
// vẫn đi tiếp như khách vãng lai.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if token == "" || token == authHeader {
			c.Next()
			return
		}

		userID, email, role, err := jwt.VerifyToken(token)
		if err != nil {
			log.Printf("Token không hợp lệ: %v", err)
			c.Next()
			return
		}

		c.Set("UserID", userID)
		c.Set("Email", email)
		c.Set("Role", role)
		c.Next()
	}
}
