package models

import "time"

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null" json:"userId"`
	User        User        `json:"-"`
	TotalAmount float64     `gorm:"not null" json:"totalAmount"`
	Status      string      `gorm:"not null" json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}
