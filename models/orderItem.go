package models

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null" json:"orderId"`
	ProductID uint    `gorm:"not null" json:"productId"`
	Product   Product `json:"-"`
	Quantity  uint    `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}
