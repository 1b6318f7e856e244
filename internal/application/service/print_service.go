package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/techfix/workshop-api/internal/domain/entity"
	"github.com/techfix/workshop-api/internal/domain/repository"
	"github.com/techfix/workshop-api/pkg/apperror"
	"github.com/techfix/workshop-api/pkg/pdf"
)

// PrintService renders the printable PDF view of a service order
type PrintService struct {
	orderRepo   repository.ServiceOrderRepository
	accountRepo repository.AccountRepository
}

// NewPrintService creates a new print service
func NewPrintService(orderRepo repository.ServiceOrderRepository, accountRepo repository.AccountRepository) *PrintService {
	return &PrintService{
		orderRepo:   orderRepo,
		accountRepo: accountRepo,
	}
}

// PrintOrder loads an order with its items and renders it as a PDF document
func (s *PrintService) PrintOrder(ctx context.Context, accountID, orderID uuid.UUID) ([]byte, error) {
	order, err := s.orderRepo.GetWithItems(ctx, accountID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Service order")
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Account")
	}

	// The stored total is authoritative, but the print view recomputes so a
	// stale row can never print a figure its items do not add up to.
	total := entity.ComputeOrderTotal(order.LaborFee, order.Discount, order.Surcharge, order.Items)

	data := pdf.OrderData{
		ShopName:     account.Name,
		ShopDocument: deref(account.Document),
		ShopPhone:    deref(account.Phone),
		ShopEmail:    deref(account.Email),
		ShopAddress:  deref(account.Address),

		Number:    order.Number,
		Status:    order.Status.String(),
		IssueDate: order.CreatedAt.Format("2006-01-02"),

		CustomerName:     order.Customer.Name,
		CustomerPhone:    deref(order.Customer.Phone),
		CustomerDocument: deref(order.Customer.Document),

		Equipment:    order.Equipment,
		Brand:        deref(order.Brand),
		Model:        deref(order.Model),
		SerialNumber: deref(order.SerialNumber),
		Accessories:  deref(order.Accessories),

		ProblemDescription: order.ProblemDescription,
		TechnicalReport:    deref(order.TechnicalReport),

		LaborFee:  formatMoney(order.LaborFee),
		Discount:  formatMoney(order.Discount),
		Surcharge: formatMoney(order.Surcharge),
		Total:     formatMoney(total),
	}

	for _, item := range order.Items {
		data.Items = append(data.Items, pdf.OrderItem{
			Description: item.Description,
			Qty:         item.Quantity,
			UnitPrice:   formatMoney(item.UnitPrice),
			Total:       formatMoney(item.Total),
		})
	}

	return pdf.RenderOrder(data)
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
