package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FullName  string    `json:"fullName"`
	Role      string    `gorm:"not null;default:USER" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	Orders    []Order   `gorm:"foreignKey:UserID" json:"-"`
	Reviews   []Review  `gorm:"foreignKey:UserID" json:"-"`
}
