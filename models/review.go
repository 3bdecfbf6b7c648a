package models

import "time"

// Review không có endpoint riêng, AI service đọc trực tiếp từ bảng này
// để phân tích cảm xúc.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"userId"`
	User      User      `json:"-"`
	ProductID uint      `gorm:"not null" json:"productId"`
	Product   Product   `json:"-"`
	Content   string    `json:"content"`
	Rating    int       `gorm:"not null" json:"rating"` // 1-5
	CreatedAt time.Time `json:"createdAt"`
}
