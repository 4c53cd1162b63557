package daemon

import (
	"gorm.io/gorm"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/models"
)

// seed fills the lookup tables recipes link to when they are empty, so a
// dev instance can be exercised right away.
func seed(db *gorm.DB) error {
	var count int64

	if err := db.Model(&models.Chef{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		chefs := []models.Chef{
			{Name: "Julia", Bio: "French cooking for the american kitchen."},
			{Name: "Marcella", Bio: "Classic italian home cooking."},
		}
		if err := tx.Create(&chefs).Error; err != nil {
			return err
		}

		tags := []models.Tag{{Name: "vegetarian"}, {Name: "dessert"}, {Name: "quick"}}
		if err := tx.Create(&tags).Error; err != nil {
			return err
		}

		images := []models.Image{{URL: "https://example.org/img/cover.jpg", Alt: "cover"}}
		if err := tx.Create(&images).Error; err != nil {
			return err
		}

		files := []models.UploadFile{{Name: "plate.jpg", URL: "https://example.org/files/plate.jpg", Mime: "image/jpeg"}}

		return tx.Create(&files).Error
	})
}
