package models

type OrderDetail struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `gorm:"not null;index" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	// MealID is a historical pointer only. There is deliberately no FK
	// constraint: deleting a Meal leaves the reference dangling and the
	// detail keeps its own price snapshot.
	MealID       uint `gorm:"not null;index" json:"meal_id"`
	Quantity     int  `gorm:"not null" json:"quantity"`
	PriceAtOrder int  `gorm:"not null" json:"price_at_order"`
	Total        int  `gorm:"not null" json:"total"`
}
