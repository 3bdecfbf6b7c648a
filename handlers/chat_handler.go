package handlers

import (
	"context"
	"log"
	"net/http"

	"backend/aiservice"

	"github.com/gin-gonic/gin"
)

// Chatbot không giữ hội thoại phía server, client gửi lại history mỗi lần.
const maxChatHistory = 20

// Chuyển câu hỏi kèm history sang AI service. Mọi lỗi đều trả về 200 với
// câu xin lỗi cố định, không bao giờ 5xx.
func SendChatMessageHandler(c *gin.Context, ai *aiservice.Client) {
	var req struct {
		Message string                  `json:"message" binding:"required"`
		History []aiservice.HistoryItem `json:"history"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Thiếu nội dung tin nhắn",
			"error":   err.Error(),
		})
		return
	}

	history := req.History
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}

	body, err := ai.Chat(context.Background(), req.Message, history)
	switch {
	case err == nil:
		c.Data(http.StatusOK, "application/json", body)
	case aiservice.IsTimeout(err):
		log.Printf("Gọi chatbot quá chậm: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"reply": "AI đang bận xử lý, vui lòng thử lại sau vài giây nhé!",
		})
	default:
		log.Printf("Lỗi gọi chatbot: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"reply": "Xin lỗi, AI đang bận. Vui lòng thử lại sau.",
		})
	}
}
