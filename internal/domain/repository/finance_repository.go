package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/techfix/workshop-api/internal/domain/entity"
	"github.com/techfix/workshop-api/internal/domain/enum"
	"github.com/techfix/workshop-api/pkg/pagination"
)

// FinancialEntryRepository defines the interface for financial entry data operations
type FinancialEntryRepository interface {
	Create(ctx context.Context, entry *entity.FinancialEntry) error
	GetByID(ctx context.Context, accountID, id uuid.UUID) (*entity.FinancialEntry, error)
	Update(ctx context.Context, entry *entity.FinancialEntry) error
	Delete(ctx context.Context, accountID, id uuid.UUID) error
	List(ctx context.Context, accountID uuid.UUID, params *EntryFilterParams) ([]entity.FinancialEntry, int64, error)
	CountByOrderID(ctx context.Context, accountID, orderID uuid.UUID) (int64, error)
	DetachByOrderID(ctx context.Context, accountID, orderID uuid.UUID) error
	DeleteByOrderID(ctx context.Context, accountID, orderID uuid.UUID) error
	// Summarize totals entries with from <= due_date < to.
	Summarize(ctx context.Context, accountID uuid.UUID, from, to time.Time) (*EntrySummary, error)
}

// EntryFilterParams contains filtering parameters for financial entry queries.
// EndDate is an exclusive upper bound.
type EntryFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Type          *enum.EntryType
	PaymentStatus *enum.PaymentStatus
	StartDate     *time.Time
	EndDate       *time.Time
}

// EntrySummary aggregates entries over a period
type EntrySummary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}
