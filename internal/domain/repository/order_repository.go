package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/techfix/workshop-api/internal/domain/entity"
	"github.com/techfix/workshop-api/internal/domain/enum"
	"github.com/techfix/workshop-api/pkg/pagination"
)

// ServiceOrderRepository defines the interface for service order data operations
type ServiceOrderRepository interface {
	Create(ctx context.Context, order *entity.ServiceOrder) error
	GetByID(ctx context.Context, accountID, id uuid.UUID) (*entity.ServiceOrder, error)
	GetWithItems(ctx context.Context, accountID, id uuid.UUID) (*entity.ServiceOrder, error)
	Update(ctx context.Context, order *entity.ServiceOrder) error
	Delete(ctx context.Context, accountID, id uuid.UUID) error
	List(ctx context.Context, accountID uuid.UUID, params *OrderFilterParams) ([]entity.ServiceOrder, int64, error)
	// NumbersForYear returns the display numbers already assigned to the
	// account for the given year, including soft-deleted orders so their
	// sequentials are never reused.
	NumbersForYear(ctx context.Context, accountID uuid.UUID, year int) ([]string, error)
	CountByStatus(ctx context.Context, accountID uuid.UUID) (map[enum.OrderStatus]int64, error)
}

// OrderFilterParams contains filtering parameters for order queries.
// EndDate is an exclusive upper bound on created_at.
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// OrderItemRepository defines the interface for order line-item data operations
type OrderItemRepository interface {
	Create(ctx context.Context, item *entity.OrderItem) error
	CreateBatch(ctx context.Context, items []entity.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderItem, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
	Update(ctx context.Context, item *entity.OrderItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}
