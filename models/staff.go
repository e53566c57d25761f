package models

import "time"

const (
	StaffClassManager = "Manager"
	StaffClassStaff   = "Staff"
)

// Password is stored and compared as plaintext on purpose; hardening the
// credential store is out of scope for this system.
type Staff struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Account   string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"account"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Class     string    `gorm:"type:varchar(20);not null" json:"class"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func ValidStaffClass(class string) bool {
	return class == StaffClassManager || class == StaffClassStaff
}
