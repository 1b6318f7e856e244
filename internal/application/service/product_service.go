package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/techfix/workshop-api/internal/domain/entity"
	"github.com/techfix/workshop-api/internal/domain/enum"
	"github.com/techfix/workshop-api/internal/domain/repository"
	"github.com/techfix/workshop-api/pkg/apperror"
	"github.com/techfix/workshop-api/pkg/pagination"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name        string
	Description *string
	Kind        enum.ProductKind
	Price       decimal.Decimal
}

// CreateProduct creates a new catalog item
func (s *ProductService) CreateProduct(ctx context.Context, accountID uuid.UUID, input *CreateProductInput) (*entity.Product, error) {
	if input.Price.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "price", Message: "must not be negative"}})
	}

	product := &entity.Product{
		AccountID:   accountID,
		Name:        input.Name,
		Description: input.Description,
		Kind:        input.Kind,
		Price:       input.Price,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a catalog item by ID
func (s *ProductService) GetProduct(ctx context.Context, accountID, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists catalog items with pagination and search
func (s *ProductService) ListProducts(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, accountID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents a partial product update
type UpdateProductInput struct {
	Name        *string
	Description *string
	Kind        *enum.ProductKind
	Price       *decimal.Decimal
}

// UpdateProduct applies a partial update to a catalog item
func (s *ProductService) UpdateProduct(ctx context.Context, accountID, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Kind != nil {
		product.Kind = *input.Kind
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "price", Message: "must not be negative"}})
		}
		product.Price = *input.Price
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a catalog item. Existing order line items keep their
// copied description and price, so nothing downstream breaks.
func (s *ProductService) DeleteProduct(ctx context.Context, accountID, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, accountID, id)
}
