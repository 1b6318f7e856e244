package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/techfix/workshop-api/internal/domain/entity"
	"github.com/techfix/workshop-api/internal/domain/enum"
	"github.com/techfix/workshop-api/internal/domain/repository"
	"github.com/techfix/workshop-api/pkg/apperror"
	"github.com/techfix/workshop-api/pkg/pagination"
	"gorm.io/gorm"
)

// CompletionHook is notified after an order update is persisted with a status
// transition into Completed. Implementations own their failure isolation: the
// order update is already committed and must not be affected by hook errors.
type CompletionHook interface {
	OrderCompleted(ctx context.Context, order *entity.ServiceOrder)
}

// maxNumberRetries bounds the retry loop when the allocated display number
// loses a race and hits the unique index.
const maxNumberRetries = 3

// OrderService handles service order operations
type OrderService struct {
	orderRepo    repository.ServiceOrderRepository
	itemRepo     repository.OrderItemRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	entryRepo    repository.FinancialEntryRepository
	hook         CompletionHook
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.ServiceOrderRepository,
	itemRepo repository.OrderItemRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	entryRepo repository.FinancialEntryRepository,
	hook CompletionHook,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		entryRepo:    entryRepo,
		hook:         hook,
	}
}

// NextOrderNumber computes the next display number for a year from the
// numbers already assigned: the highest sequential suffix plus one, gaps are
// never filled. Two concurrent allocations for the same account can compute
// the same number; the unique index on (account_id, number) turns that race
// into a create conflict which the caller retries.
func NextOrderNumber(year int, existing []string) string {
	prefix := strconv.Itoa(year) + "-"
	max := 0
	for _, number := range existing {
		suffix, ok := strings.CutPrefix(number, prefix)
		if !ok {
			continue
		}
		seq, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return fmt.Sprintf("%d-%d", year, max+1)
}

// OrderItemInput represents a line item in an order payload. ProductID is
// optional; when set, description and unit price default from the catalog.
type OrderItemInput struct {
	ProductID   *uuid.UUID
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	CustomerID         uuid.UUID
	Equipment          string
	Brand              *string
	Model              *string
	SerialNumber       *string
	Accessories        *string
	ProblemDescription string
	LaborFee           decimal.Decimal
	Discount           decimal.Decimal
	Surcharge          decimal.Decimal
	Items              []OrderItemInput
}

// CreateOrder creates a new service order with its line items
func (s *OrderService) CreateOrder(ctx context.Context, accountID uuid.UUID, input *CreateOrderInput) (*entity.ServiceOrder, error) {
	customer, err := s.customerRepo.GetByID(ctx, accountID, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	items, err := s.buildItems(ctx, accountID, input.Items)
	if err != nil {
		return nil, err
	}

	order := &entity.ServiceOrder{
		AccountID:          accountID,
		CustomerID:         input.CustomerID,
		Equipment:          input.Equipment,
		Brand:              input.Brand,
		Model:              input.Model,
		SerialNumber:       input.SerialNumber,
		Accessories:        input.Accessories,
		ProblemDescription: input.ProblemDescription,
		Status:             enum.OrderStatusOpen,
		LaborFee:           input.LaborFee,
		Discount:           input.Discount,
		Surcharge:          input.Surcharge,
		Items:              items,
	}
	order.Recalculate()
	order.Items = nil

	year := time.Now().Year()
	for attempt := 0; ; attempt++ {
		numbers, err := s.orderRepo.NumbersForYear(ctx, accountID, year)
		if err != nil {
			return nil, err
		}
		order.Number = NextOrderNumber(year, numbers)

		err = s.orderRepo.Create(ctx, order)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt >= maxNumberRetries-1 {
			return nil, err
		}
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, accountID, order.ID)
}

// buildItems resolves catalog products and enforces the line-item invariant
func (s *OrderService) buildItems(ctx context.Context, accountID uuid.UUID, inputs []OrderItemInput) ([]entity.OrderItem, error) {
	productIDs := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if in.ProductID != nil {
			productIDs = append(productIDs, *in.ProductID)
		}
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(productIDs))
	if len(productIDs) > 0 {
		products, err := s.productRepo.GetByIDs(ctx, accountID, productIDs)
		if err != nil {
			return nil, err
		}
		for i := range products {
			productMap[products[i].ID] = &products[i]
		}
	}

	items := make([]entity.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		item := entity.OrderItem{
			ProductID:   in.ProductID,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
		}
		if item.Quantity < 1 {
			return nil, apperror.NewBadRequestError("Quantity must be at least 1")
		}
		if in.ProductID != nil {
			product, exists := productMap[*in.ProductID]
			if !exists {
				return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", in.ProductID))
			}
			if item.Description == "" {
				item.Description = product.Name
			}
			if item.UnitPrice.IsZero() {
				item.UnitPrice = product.Price
			}
		}
		item.Recalculate()
		items = append(items, item)
	}
	return items, nil
}

// GetOrder retrieves an order with its line items
func (s *OrderService) GetOrder(ctx context.Context, accountID, id uuid.UUID) (*entity.ServiceOrder, error) {
	order, err := s.orderRepo.GetWithItems(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Service order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, accountID uuid.UUID, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.ServiceOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, accountID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateOrderInput represents a partial order update. Nil fields are left
// unchanged.
type UpdateOrderInput struct {
	CustomerID         *uuid.UUID
	Equipment          *string
	Brand              *string
	Model              *string
	SerialNumber       *string
	Accessories        *string
	ProblemDescription *string
	TechnicalReport    *string
	Status             *enum.OrderStatus
	LaborFee           *decimal.Decimal
	Discount           *decimal.Decimal
	Surcharge          *decimal.Decimal
}

// UpdateOrder applies a partial update and fires the completion hook when the
// status transitions into Completed. The hook runs after the update is
// persisted; its failures never roll back the order.
func (s *OrderService) UpdateOrder(ctx context.Context, accountID, id uuid.UUID, input *UpdateOrderInput) (*entity.ServiceOrder, error) {
	order, err := s.orderRepo.GetWithItems(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Service order")
	}

	prevStatus := order.Status

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, accountID, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		order.CustomerID = *input.CustomerID
		// The completion hook reads the association, keep it in step.
		order.Customer = *customer
	}
	if input.Equipment != nil {
		order.Equipment = *input.Equipment
	}
	if input.Brand != nil {
		order.Brand = input.Brand
	}
	if input.Model != nil {
		order.Model = input.Model
	}
	if input.SerialNumber != nil {
		order.SerialNumber = input.SerialNumber
	}
	if input.Accessories != nil {
		order.Accessories = input.Accessories
	}
	if input.ProblemDescription != nil {
		order.ProblemDescription = *input.ProblemDescription
	}
	if input.TechnicalReport != nil {
		order.TechnicalReport = input.TechnicalReport
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid order status")
		}
		order.Status = *input.Status
	}
	if input.LaborFee != nil {
		order.LaborFee = *input.LaborFee
	}
	if input.Discount != nil {
		order.Discount = *input.Discount
	}
	if input.Surcharge != nil {
		order.Surcharge = *input.Surcharge
	}

	completed := prevStatus != enum.OrderStatusCompleted && order.Status == enum.OrderStatusCompleted
	if completed {
		now := time.Now()
		order.CompletedAt = &now
	}

	order.Recalculate()

	items := order.Items
	order.Items = nil
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	order.Items = items

	if completed && s.hook != nil {
		s.hook.OrderCompleted(ctx, order)
	}

	return s.orderRepo.GetWithItems(ctx, accountID, id)
}

// Modes for handling linked financial entries on order deletion
const (
	FinancialEntriesRefuse = ""
	FinancialEntriesDetach = "detach"
	FinancialEntriesDelete = "delete"
)

// DeleteOrder removes an order and its line items. Orders with linked
// financial entries are refused unless the caller explicitly chooses to
// detach the entries or delete them along with the order.
func (s *OrderService) DeleteOrder(ctx context.Context, accountID, id uuid.UUID, entryMode string) error {
	order, err := s.orderRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Service order")
	}

	switch entryMode {
	case FinancialEntriesRefuse:
		count, err := s.entryRepo.CountByOrderID(ctx, accountID, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.NewConflictError("Service order has linked financial entries")
		}
	case FinancialEntriesDetach:
		if err := s.entryRepo.DetachByOrderID(ctx, accountID, id); err != nil {
			return err
		}
	case FinancialEntriesDelete:
		if err := s.entryRepo.DeleteByOrderID(ctx, accountID, id); err != nil {
			return err
		}
	default:
		return apperror.NewBadRequestError("Invalid financial_entries mode")
	}

	if err := s.itemRepo.DeleteByOrderID(ctx, id); err != nil {
		return err
	}

	return s.orderRepo.Delete(ctx, accountID, id)
}

// AddLineItem appends a line item to an order and recomputes the order total
func (s *OrderService) AddLineItem(ctx context.Context, accountID, orderID uuid.UUID, input *OrderItemInput) (*entity.ServiceOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, accountID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Service order")
	}

	items, err := s.buildItems(ctx, accountID, []OrderItemInput{*input})
	if err != nil {
		return nil, err
	}
	items[0].OrderID = orderID
	if err := s.itemRepo.Create(ctx, &items[0]); err != nil {
		return nil, err
	}

	if err := s.recalculateOrder(ctx, order); err != nil {
		return nil, err
	}
	return s.orderRepo.GetWithItems(ctx, accountID, orderID)
}

// UpdateLineItemInput represents a partial line-item update
type UpdateLineItemInput struct {
	Description *string
	Quantity    *int
	UnitPrice   *decimal.Decimal
}

// UpdateLineItem edits a line item and recomputes totals
func (s *OrderService) UpdateLineItem(ctx context.Context, accountID, itemID uuid.UUID, input *UpdateLineItemInput) (*entity.ServiceOrder, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Line item")
	}

	order, err := s.orderRepo.GetByID(ctx, accountID, item.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Line item")
	}

	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, apperror.NewBadRequestError("Quantity must be at least 1")
		}
		item.Quantity = *input.Quantity
	}
	if input.UnitPrice != nil {
		item.UnitPrice = *input.UnitPrice
	}
	item.Recalculate()

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	if err := s.recalculateOrder(ctx, order); err != nil {
		return nil, err
	}
	return s.orderRepo.GetWithItems(ctx, accountID, order.ID)
}

// RemoveLineItem deletes a line item and recomputes the order total
func (s *OrderService) RemoveLineItem(ctx context.Context, accountID, itemID uuid.UUID) (*entity.ServiceOrder, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Line item")
	}

	order, err := s.orderRepo.GetByID(ctx, accountID, item.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Line item")
	}

	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		return nil, err
	}

	if err := s.recalculateOrder(ctx, order); err != nil {
		return nil, err
	}
	return s.orderRepo.GetWithItems(ctx, accountID, order.ID)
}

// recalculateOrder reloads the line items and persists the derived total
func (s *OrderService) recalculateOrder(ctx context.Context, order *entity.ServiceOrder) error {
	items, err := s.itemRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}
	order.Total = entity.ComputeOrderTotal(order.LaborFee, order.Discount, order.Surcharge, items)
	order.Items = nil
	return s.orderRepo.Update(ctx, order)
}
