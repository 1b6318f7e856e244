package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/techfix/workshop-api/internal/domain/entity"
	"github.com/techfix/workshop-api/internal/domain/enum"
	"github.com/techfix/workshop-api/internal/domain/repository"
	"github.com/techfix/workshop-api/pkg/apperror"
	"github.com/techfix/workshop-api/pkg/pagination"
	"go.uber.org/zap"
)

// FinanceService handles financial entries. It also implements CompletionHook
// to record the income generated by a completed service order.
type FinanceService struct {
	entryRepo repository.FinancialEntryRepository
	logger    *zap.Logger
}

// NewFinanceService creates a new finance service
func NewFinanceService(entryRepo repository.FinancialEntryRepository, logger *zap.Logger) *FinanceService {
	return &FinanceService{
		entryRepo: entryRepo,
		logger:    logger,
	}
}

// OrderCompleted records an income entry for a completed order. Best effort:
// the order update is already committed, so failures are logged and swallowed.
// There is no dedup key against the order, so moving an order away from
// Completed and back creates a second entry.
func (s *FinanceService) OrderCompleted(ctx context.Context, order *entity.ServiceOrder) {
	if !order.Total.IsPositive() {
		return
	}

	now := time.Now()
	entry := &entity.FinancialEntry{
		AccountID:      order.AccountID,
		Type:           enum.EntryTypeIncome,
		Description:    "Service order " + order.Number + " - " + order.Customer.Name,
		Amount:         order.Total,
		DueDate:        now,
		PaymentStatus:  enum.PaymentStatusPaid,
		PaidAt:         &now,
		ServiceOrderID: &order.ID,
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		s.logger.Error("failed to create financial entry for completed order",
			zap.String("order_id", order.ID.String()),
			zap.String("order_number", order.Number),
			zap.Error(err),
		)
	}
}

// CreateEntryInput represents the create financial entry input
type CreateEntryInput struct {
	Type           enum.EntryType
	Description    string
	Amount         decimal.Decimal
	DueDate        time.Time
	PaymentStatus  enum.PaymentStatus
	ServiceOrderID *uuid.UUID
}

// CreateEntry creates a financial entry
func (s *FinanceService) CreateEntry(ctx context.Context, accountID uuid.UUID, input *CreateEntryInput) (*entity.FinancialEntry, error) {
	entry := &entity.FinancialEntry{
		AccountID:      accountID,
		Type:           input.Type,
		Description:    input.Description,
		Amount:         input.Amount,
		DueDate:        input.DueDate,
		PaymentStatus:  input.PaymentStatus,
		ServiceOrderID: input.ServiceOrderID,
	}
	if entry.PaymentStatus == enum.PaymentStatusPaid {
		now := time.Now()
		entry.PaidAt = &now
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetEntry retrieves a financial entry by ID
func (s *FinanceService) GetEntry(ctx context.Context, accountID, id uuid.UUID) (*entity.FinancialEntry, error) {
	entry, err := s.entryRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Financial entry")
	}
	return entry, nil
}

// ListEntries lists financial entries with filtering
func (s *FinanceService) ListEntries(ctx context.Context, accountID uuid.UUID, params *repository.EntryFilterParams) (*pagination.PaginatedResult[entity.FinancialEntry], error) {
	entries, total, err := s.entryRepo.List(ctx, accountID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}

// UpdateEntryInput represents a partial financial entry update
type UpdateEntryInput struct {
	Type          *enum.EntryType
	Description   *string
	Amount        *decimal.Decimal
	DueDate       *time.Time
	PaymentStatus *enum.PaymentStatus
}

// UpdateEntry applies a partial update to a financial entry
func (s *FinanceService) UpdateEntry(ctx context.Context, accountID, id uuid.UUID, input *UpdateEntryInput) (*entity.FinancialEntry, error) {
	entry, err := s.entryRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Financial entry")
	}

	if input.Type != nil {
		entry.Type = *input.Type
	}
	if input.Description != nil {
		entry.Description = *input.Description
	}
	if input.Amount != nil {
		entry.Amount = *input.Amount
	}
	if input.DueDate != nil {
		entry.DueDate = *input.DueDate
	}
	if input.PaymentStatus != nil {
		entry.PaymentStatus = *input.PaymentStatus
		if entry.PaymentStatus == enum.PaymentStatusPaid && entry.PaidAt == nil {
			now := time.Now()
			entry.PaidAt = &now
		}
		if entry.PaymentStatus == enum.PaymentStatusPending {
			entry.PaidAt = nil
		}
	}

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// MarkPaid marks a financial entry as paid
func (s *FinanceService) MarkPaid(ctx context.Context, accountID, id uuid.UUID) (*entity.FinancialEntry, error) {
	paid := enum.PaymentStatusPaid
	return s.UpdateEntry(ctx, accountID, id, &UpdateEntryInput{PaymentStatus: &paid})
}

// DeleteEntry deletes a financial entry
func (s *FinanceService) DeleteEntry(ctx context.Context, accountID, id uuid.UUID) error {
	entry, err := s.entryRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return apperror.NewNotFoundError("Financial entry")
	}
	return s.entryRepo.Delete(ctx, accountID, id)
}

// Summarize aggregates income, expense and balance over a period
func (s *FinanceService) Summarize(ctx context.Context, accountID uuid.UUID, from, to time.Time) (*repository.EntrySummary, error) {
	return s.entryRepo.Summarize(ctx, accountID, from, to)
}
