package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/techfix/workshop-api/internal/domain/enum"
)

// CreateEntryRequest represents a create financial entry request
type CreateEntryRequest struct {
	Type           enum.EntryType     `json:"type"`
	Description    string             `json:"description" binding:"required,max=255"`
	Amount         decimal.Decimal    `json:"amount" binding:"required"`
	DueDate        time.Time          `json:"due_date" binding:"required"`
	PaymentStatus  enum.PaymentStatus `json:"payment_status"`
	ServiceOrderID *uuid.UUID         `json:"service_order_id"`
}

// UpdateEntryRequest represents a partial financial entry update request
type UpdateEntryRequest struct {
	Type          *enum.EntryType     `json:"type"`
	Description   *string             `json:"description"`
	Amount        *decimal.Decimal    `json:"amount"`
	DueDate       *time.Time          `json:"due_date"`
	PaymentStatus *enum.PaymentStatus `json:"payment_status"`
}
