package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/techfix/workshop-api/internal/domain/enum"
	"github.com/techfix/workshop-api/internal/domain/repository"
)

// DashboardService aggregates workshop activity for the overview screen
type DashboardService struct {
	orderRepo repository.ServiceOrderRepository
	entryRepo repository.FinancialEntryRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(orderRepo repository.ServiceOrderRepository, entryRepo repository.FinancialEntryRepository) *DashboardService {
	return &DashboardService{
		orderRepo: orderRepo,
		entryRepo: entryRepo,
	}
}

// Dashboard holds the aggregated overview numbers
type Dashboard struct {
	OrdersByStatus map[string]int64         `json:"orders_by_status"`
	CurrentMonth   *repository.EntrySummary `json:"current_month"`
}

// GetDashboard returns order counts by status and the current month's financial summary
func (s *DashboardService) GetDashboard(ctx context.Context, accountID uuid.UUID) (*Dashboard, error) {
	counts, err := s.orderRepo.CountByStatus(ctx, accountID)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, len(counts))
	for _, status := range []enum.OrderStatus{
		enum.OrderStatusOpen,
		enum.OrderStatusInProgress,
		enum.OrderStatusAwaitingParts,
		enum.OrderStatusReady,
		enum.OrderStatusCompleted,
		enum.OrderStatusCanceled,
	} {
		byStatus[status.String()] = counts[status]
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	summary, err := s.entryRepo.Summarize(ctx, accountID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		OrdersByStatus: byStatus,
		CurrentMonth:   summary,
	}, nil
}
