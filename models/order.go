package models

import "time"

const (
	OrderStatusPreparing = "Preparing"
	OrderStatusCompleted = "Completed"

	ServingMethodDineIn  = "DineIn"
	ServingMethodTakeOut = "TakeOut"
)

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Time          time.Time     `gorm:"not null" json:"time"`
	TotalAmount   int           `gorm:"not null" json:"total_amount"`
	Status        string        `gorm:"type:varchar(20);not null;default:'Preparing'" json:"status"`
	ServingMethod string        `gorm:"type:varchar(20);not null" json:"serving_method"`
	Details       []OrderDetail `gorm:"foreignKey:OrderID" json:"details,omitempty"`
}

func ValidServingMethod(method string) bool {
	return method == ServingMethodDineIn || method == ServingMethodTakeOut
}
