package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/techfix/workshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// ServiceOrder represents a repair work ticket. Number is the human-facing
// identifier formatted "{year}-{sequential}", unique per account per year.
type ServiceOrder struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	AccountID          uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:ux_service_orders_account_number" json:"account_id"`
	CustomerID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"customer_id"`
	Number             string           `gorm:"size:20;not null;uniqueIndex:ux_service_orders_account_number" json:"number"`
	Equipment          string           `gorm:"size:255;not null" json:"equipment"`
	Brand              *string          `gorm:"size:100" json:"brand,omitempty"`
	Model              *string          `gorm:"size:100" json:"model,omitempty"`
	SerialNumber       *string          `gorm:"size:100" json:"serial_number,omitempty"`
	Accessories        *string          `gorm:"type:text" json:"accessories,omitempty"`
	ProblemDescription string           `gorm:"type:text;not null" json:"problem_description"`
	TechnicalReport    *string          `gorm:"type:text" json:"technical_report,omitempty"`
	Status             enum.OrderStatus `gorm:"default:0" json:"status"`
	LaborFee           decimal.Decimal  `gorm:"type:decimal(20,2);not null;default:0" json:"labor_fee"`
	Discount           decimal.Decimal  `gorm:"type:decimal(20,2);not null;default:0" json:"discount"`
	Surcharge          decimal.Decimal  `gorm:"type:decimal(20,2);not null;default:0" json:"surcharge"`
	Total              decimal.Decimal  `gorm:"type:decimal(20,2);not null;default:0" json:"total"`
	CompletedAt        *time.Time       `json:"completed_at,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Account  Account     `gorm:"foreignKey:AccountID" json:"-"`
	Customer Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new service order
func (o *ServiceOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceOrder model
func (ServiceOrder) TableName() string {
	return "service_orders"
}

// ComputeOrderTotal is the single authoritative total computation:
// labor fee plus the sum of line-item totals, minus discount, plus surcharge.
// Every write path and the print view must go through it.
func ComputeOrderTotal(laborFee, discount, surcharge decimal.Decimal, items []OrderItem) decimal.Decimal {
	total := laborFee
	for _, item := range items {
		total = total.Add(item.Total)
	}
	return total.Sub(discount).Add(surcharge)
}

// Recalculate recomputes every line-item total and the order total in place
func (o *ServiceOrder) Recalculate() {
	for i := range o.Items {
		o.Items[i].Recalculate()
	}
	o.Total = ComputeOrderTotal(o.LaborFee, o.Discount, o.Surcharge, o.Items)
}
