package models

import "time"

type Meal struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Price       int       `gorm:"not null" json:"price"`
	PicName     string    `gorm:"type:varchar(255)" json:"pic_name"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
