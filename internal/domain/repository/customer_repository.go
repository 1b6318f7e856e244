package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/techfix/workshop-api/internal/domain/entity"
	"github.com/techfix/workshop-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations.
// Every operation is scoped by the owning account ID.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, accountID, id uuid.UUID) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, accountID, id uuid.UUID) error
	List(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}
