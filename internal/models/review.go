package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a user's rating of a product. A user holds at most one review
// per product; the composite unique index enforces it at the store level.
type Review struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_product;type:varchar(36)" validate:"required"`
	ProductSlug string    `json:"product_slug" gorm:"not null;uniqueIndex:idx_user_product;type:varchar(100)" validate:"required"`
	Rating      int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment     string    `json:"comment" validate:"omitempty,max=1000"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not supply one.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
