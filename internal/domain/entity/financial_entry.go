package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/techfix/workshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// FinancialEntry represents an income or expense record. ServiceOrderID is
// set when the entry was generated by completing a service order.
type FinancialEntry struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	AccountID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"account_id"`
	Type           enum.EntryType     `gorm:"default:0" json:"type"`
	Description    string             `gorm:"size:255;not null" json:"description"`
	Amount         decimal.Decimal    `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`
	DueDate        time.Time          `gorm:"type:date;not null" json:"due_date"`
	PaymentStatus  enum.PaymentStatus `gorm:"default:0" json:"payment_status"`
	PaidAt         *time.Time         `json:"paid_at,omitempty"`
	ServiceOrderID *uuid.UUID         `gorm:"type:uuid;index" json:"service_order_id,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Account      Account       `gorm:"foreignKey:AccountID" json:"-"`
	ServiceOrder *ServiceOrder `gorm:"foreignKey:ServiceOrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new financial entry
func (e *FinancialEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FinancialEntry model
func (FinancialEntry) TableName() string {
	return "financial_entries"
}
