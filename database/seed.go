package database

import (
	"gorm.io/gorm"

	"ordering-system/models"
	"ordering-system/utils"
)

// SeedDemoData inserts a demo manager, a demo staff account and a few
// meals so a fresh install has something to log in with and order.
// Existing rows are left alone.
func SeedDemoData(db *gorm.DB) error {
	staff := []models.Staff{
		{Account: "demo_manager", Password: "password", Class: models.StaffClassManager},
		{Account: "demo_staff1", Password: "123", Class: models.StaffClassStaff},
	}
	for _, s := range staff {
		var count int64
		if err := db.Model(&models.Staff{}).Where("account = ?", s.Account).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&s).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded staff account: %s", s.Account)
	}

	meals := []models.Meal{
		{Name: "Spaghetti Bolognese", Price: 180, PicName: "spaghetti.jpg", IsAvailable: true},
		{Name: "Iced Tea", Price: 45, PicName: "iced_tea.png", IsAvailable: true},
		{Name: "Tiramisu", Price: 95, PicName: "tiramisu.jpg", IsAvailable: true},
		{Name: "Corn Soup", Price: 40, PicName: "corn_soup.png", IsAvailable: false},
	}
	for _, m := range meals {
		var count int64
		if err := db.Model(&models.Meal{}).Where("name = ?", m.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&m).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded meal: %s", m.Name)
	}

	return nil
}
