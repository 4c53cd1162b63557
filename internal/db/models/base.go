package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/uniuri"
)

// Base carries the opaque primary key and timestamps shared by all tables.
type Base struct {
	ID        string    `gorm:"primaryKey;size:20" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random identifier when none was set.
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uniuri.NewID()
	}

	return nil
}
