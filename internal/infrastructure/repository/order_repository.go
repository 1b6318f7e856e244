package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/techfix/workshop-api/internal/domain/entity"
	"github.com/techfix/workshop-api/internal/domain/enum"
	domainRepo "github.com/techfix/workshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type serviceOrderRepository struct {
	db *gorm.DB
}

// NewServiceOrderRepository creates a new service order repository
func NewServiceOrderRepository(db *gorm.DB) domainRepo.ServiceOrderRepository {
	return &serviceOrderRepository{db: db}
}

func (r *serviceOrderRepository) Create(ctx context.Context, order *entity.ServiceOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *serviceOrderRepository) GetByID(ctx context.Context, accountID, id uuid.UUID) (*entity.ServiceOrder, error) {
	var order entity.ServiceOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&order, "account_id = ? AND id = ?", accountID, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *serviceOrderRepository) GetWithItems(ctx context.Context, accountID, id uuid.UUID) (*entity.ServiceOrder, error) {
	var order entity.ServiceOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		First(&order, "account_id = ? AND id = ?", accountID, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *serviceOrderRepository) Update(ctx context.Context, order *entity.ServiceOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *serviceOrderRepository) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&entity.ServiceOrder{}, "account_id = ? AND id = ?", accountID, id).Error
}

func (r *serviceOrderRepository) List(ctx context.Context, accountID uuid.UUID, params *domainRepo.OrderFilterParams) ([]entity.ServiceOrder, int64, error) {
	var orders []entity.ServiceOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ServiceOrder{}).
		Where("account_id = ?", accountID)

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("number ILIKE ? OR equipment ILIKE ?", like, like)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

// NumbersForYear scans unscoped so the sequential of a deleted order is
// never handed out again.
func (r *serviceOrderRepository) NumbersForYear(ctx context.Context, accountID uuid.UUID, year int) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Unscoped().
		Model(&entity.ServiceOrder{}).
		Where("account_id = ? AND number LIKE ?", accountID, fmt.Sprintf("%d-%%", year)).
		Pluck("number", &numbers).Error
	return numbers, err
}

func (r *serviceOrderRepository) CountByStatus(ctx context.Context, accountID uuid.UUID) (map[enum.OrderStatus]int64, error) {
	type row struct {
		Status enum.OrderStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&entity.ServiceOrder{}).
		Select("status, COUNT(*) AS count").
		Where("account_id = ?", accountID).
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enum.OrderStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

type orderItemRepository struct {
	db *gorm.DB
}

// NewOrderItemRepository creates a new order item repository
func NewOrderItemRepository(db *gorm.DB) domainRepo.OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) Create(ctx context.Context, item *entity.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *orderItemRepository) CreateBatch(ctx context.Context, items []entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *orderItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderItem, error) {
	var item entity.OrderItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *orderItemRepository) Update(ctx context.Context, item *entity.OrderItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *orderItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.OrderItem{}, "id = ?", id).Error
}

func (r *orderItemRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.OrderItem{}, "order_id = ?", orderID).Error
}
