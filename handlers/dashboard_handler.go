package handlers

import (
	"context"
	"log"
	"net/http"

	"backend/aiservice"

	"github.com/gin-gonic/gin"
)

// Ba endpoint dashboard đều là proxy đọc sang AI service. Lỗi không bao giờ
// trả ra ngoài: timeout và lỗi kết nối map sang hai payload tĩnh cùng
// shape với payload thành công để frontend không phải null-check.

func GetRevenueStatsHandler(c *gin.Context, ai *aiservice.Client) {
	body, err := ai.PredictRevenue(context.Background())
	switch {
	case err == nil:
		c.Data(http.StatusOK, "application/json", body)
	case aiservice.IsTimeout(err):
		log.Printf("Gọi predict-revenue quá chậm: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"data": []interface{}{},
			"analysis": gin.H{
				"trend":        "CHƯA RÕ",
				"advice":       "Python service timeout",
				"top_products": []interface{}{},
			},
		})
	default:
		log.Printf("Lỗi gọi predict-revenue: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"data": []interface{}{},
		})
	}
}

func GetCustomerSegmentsHandler(c *gin.Context, ai *aiservice.Client) {
	body, err := ai.CustomerSegments(context.Background())
	switch {
	case err == nil:
		c.Data(http.StatusOK, "application/json", body)
	case aiservice.IsTimeout(err):
		log.Printf("Gọi customer-segments quá chậm: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"status":     "error",
			"message":    "Python service timeout",
			"chart_data": []interface{}{},
			"details":    []interface{}{},
		})
	default:
		log.Printf("Lỗi gọi customer-segments: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"status":     "error",
			"chart_data": []interface{}{},
			"details":    []interface{}{},
		})
	}
}

func GetReviewsAnalysisHandler(c *gin.Context, ai *aiservice.Client) {
	body, err := ai.AnalyzeReviews(context.Background())
	switch {
	case err == nil:
		c.Data(http.StatusOK, "application/json", body)
	case aiservice.IsTimeout(err):
		log.Printf("Gọi analyze-reviews quá chậm: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"status":   "error",
			"message":  "Python service timeout",
			"stats":    gin.H{},
			"warnings": []interface{}{},
			"details":  []interface{}{},
		})
	default:
		log.Printf("Lỗi gọi analyze-reviews: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"status":   "error",
			"stats":    gin.H{},
			"warnings": []interface{}{},
			"details":  []interface{}{},
		})
	}
}
