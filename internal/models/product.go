package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents an ice-cream product in the catalog.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Slug        string  `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Category    string  `json:"category" validate:"omitempty,max=50"` // e.g. "cone", "tub", "stick"
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// BeforeCreate assigns a UUID when the caller did not supply one.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
