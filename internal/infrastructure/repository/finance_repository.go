package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/techfix/workshop-api/internal/domain/entity"
	"github.com/techfix/workshop-api/internal/domain/enum"
	domainRepo "github.com/techfix/workshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type financialEntryRepository struct {
	db *gorm.DB
}

// NewFinancialEntryRepository creates a new financial entry repository
func NewFinancialEntryRepository(db *gorm.DB) domainRepo.FinancialEntryRepository {
	return &financialEntryRepository{db: db}
}

func (r *financialEntryRepository) Create(ctx context.Context, entry *entity.FinancialEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *financialEntryRepository) GetByID(ctx context.Context, accountID, id uuid.UUID) (*entity.FinancialEntry, error) {
	var entry entity.FinancialEntry
	err := r.db.WithContext(ctx).
		First(&entry, "account_id = ? AND id = ?", accountID, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *financialEntryRepository) Update(ctx context.Context, entry *entity.FinancialEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *financialEntryRepository) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&entity.FinancialEntry{}, "account_id = ? AND id = ?", accountID, id).Error
}

func (r *financialEntryRepository) List(ctx context.Context, accountID uuid.UUID, params *domainRepo.EntryFilterParams) ([]entity.FinancialEntry, int64, error) {
	var entries []entity.FinancialEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.FinancialEntry{}).
		Where("account_id = ?", accountID)

	if params.Search != "" {
		query = query.Where("description ILIKE ?", "%"+params.Search+"%")
	}

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}

	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}

	if params.StartDate != nil {
		query = query.Where("due_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("due_date < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("due_date DESC").
		Find(&entries).Error

	return entries, total, err
}

func (r *financialEntryRepository) CountByOrderID(ctx context.Context, accountID, orderID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.FinancialEntry{}).
		Where("account_id = ? AND service_order_id = ?", accountID, orderID).
		Count(&count).Error
	return count, err
}

func (r *financialEntryRepository) DetachByOrderID(ctx context.Context, accountID, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.FinancialEntry{}).
		Where("account_id = ? AND service_order_id = ?", accountID, orderID).
		Update("service_order_id", nil).Error
}

func (r *financialEntryRepository) DeleteByOrderID(ctx context.Context, accountID, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&entity.FinancialEntry{}, "account_id = ? AND service_order_id = ?", accountID, orderID).Error
}

func (r *financialEntryRepository) Summarize(ctx context.Context, accountID uuid.UUID, from, to time.Time) (*domainRepo.EntrySummary, error) {
	sum := func(entryType enum.EntryType) (decimal.Decimal, error) {
		var total decimal.Decimal
		err := r.db.WithContext(ctx).Model(&entity.FinancialEntry{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("account_id = ? AND type = ? AND due_date >= ? AND due_date < ?", accountID, entryType, from, to).
			Scan(&total).Error
		return total, err
	}

	income, err := sum(enum.EntryTypeIncome)
	if err != nil {
		return nil, err
	}
	expense, err := sum(enum.EntryTypeExpense)
	if err != nil {
		return nil, err
	}

	return &domainRepo.EntrySummary{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}, nil
}
