package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/techfix/workshop-api/internal/domain/enum"
)

// OrderItemRequest represents a line item in an order payload
type OrderItemRequest struct {
	ProductID   *uuid.UUID      `json:"product_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest represents a create order request
type CreateOrderRequest struct {
	CustomerID         uuid.UUID          `json:"customer_id" binding:"required"`
	Equipment          string             `json:"equipment" binding:"required,max=255"`
	Brand              *string            `json:"brand"`
	Model              *string            `json:"model"`
	SerialNumber       *string            `json:"serial_number"`
	Accessories        *string            `json:"accessories"`
	ProblemDescription string             `json:"problem_description" binding:"required"`
	LaborFee           decimal.Decimal    `json:"labor_fee"`
	Discount           decimal.Decimal    `json:"discount"`
	Surcharge          decimal.Decimal    `json:"surcharge"`
	Items              []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest represents a partial order update request
type UpdateOrderRequest struct {
	CustomerID         *uuid.UUID        `json:"customer_id"`
	Equipment          *string           `json:"equipment"`
	Brand              *string           `json:"brand"`
	Model              *string           `json:"model"`
	SerialNumber       *string           `json:"serial_number"`
	Accessories        *string           `json:"accessories"`
	ProblemDescription *string           `json:"problem_description"`
	TechnicalReport    *string           `json:"technical_report"`
	Status             *enum.OrderStatus `json:"status"`
	LaborFee           *decimal.Decimal  `json:"labor_fee"`
	Discount           *decimal.Decimal  `json:"discount"`
	Surcharge          *decimal.Decimal  `json:"surcharge"`
}

// UpdateLineItemRequest represents a partial line item update request
type UpdateLineItemRequest struct {
	Description *string          `json:"description"`
	Quantity    *int             `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}
