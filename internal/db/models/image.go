package models

// Image is referenced one way from recipes.cover_id.
type Image struct {
	Base
	URL string `gorm:"size:1024;not null"`
	Alt string `gorm:"size:255"`
}

// TableName specifies the database table name for the Image model.
func (Image) TableName() string {
	return TableImages
}
