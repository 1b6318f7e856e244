package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/techfix/workshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Product represents a catalog item: a physical part or a labor service
type Product struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	AccountID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"account_id"`
	Name        string           `gorm:"size:255;not null" json:"name"`
	Description *string          `gorm:"type:text" json:"description,omitempty"`
	Kind        enum.ProductKind `gorm:"default:0" json:"kind"`
	Price       decimal.Decimal  `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
