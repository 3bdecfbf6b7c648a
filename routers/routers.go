package routers

import (
	"net/http"

	"backend/aiservice"
	"backend/handlers"
	"backend/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRouters(db *gorm.DB, rdb *redis.Client, ai *aiservice.Client) *gin.Engine {
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Next()
	})
	err := router.SetTrustedProxies(nil)
	if err != nil {
		return nil
	}

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	//Giải mã token nếu có, request vãng lai vẫn đi tiếp
	router.Use(middleware.AuthMiddleware())
	{
		auth := router.Group("/auth")
		{
			//Đăng ký tài khoản
			auth.POST("/register", func(c *gin.Context) {
				handlers.RegisterHandler(c, db)
			})
			//Đăng nhập
			auth.POST("/login", func(c *gin.Context) {
				handlers.LoginHandler(c, db)
			})

			////Cần đăng nhập
			loginRequired := auth.Group("")
			loginRequired.Use(middleware.CheckLoginMiddleware())
			{
				//Thông tin user đang đăng nhập
				loginRequired.GET("/me", func(c *gin.Context) {
					handlers.GetProfileHandler(c, db)
				})
				//Cập nhật tài khoản
				loginRequired.PATCH("/profile", func(c *gin.Context) {
					handlers.UpdateProfileHandler(c, db)
				})
			}
		}

		//Danh sách sản phẩm mới nhất trước
		router.GET("/products", func(c *gin.Context) {
			handlers.GetProductListHandler(c, db, rdb)
		})
		//Tìm sản phẩm bằng hình ảnh
		router.POST("/products/visual-search", func(c *gin.Context) {
			handlers.VisualSearchHandler(c, ai)
		})

		////Đơn hàng gắn với user đang đăng nhập
		orders := router.Group("/orders")
		orders.Use(middleware.CheckLoginMiddleware())
		{
			//Tạo đơn hàng
			orders.POST("", func(c *gin.Context) {
				handlers.CreateOrderHandler(c, db)
			})
			//Danh sách đơn hàng của user
			orders.GET("", func(c *gin.Context) {
				handlers.GetOrderListHandler(c, db)
			})
		}

		//Dashboard đọc số liệu từ AI service, lỗi trả về payload rỗng
		router.GET("/dashboard/revenue", func(c *gin.Context) {
			handlers.GetRevenueStatsHandler(c, ai)
		})
		router.GET("/dashboard/customer-segments", func(c *gin.Context) {
			handlers.GetCustomerSegmentsHandler(c, ai)
		})
		router.GET("/dashboard/reviews-analysis", func(c *gin.Context) {
			handlers.GetReviewsAnalysisHandler(c, ai)
		})

		//Chatbot tư vấn
		router.POST("/chat", func(c *gin.Context) {
			handlers.SendChatMessageHandler(c, ai)
		})
	}

	return router
}
