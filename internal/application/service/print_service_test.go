package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	infraRepo "github.com/techfix/workshop-api/internal/infrastructure/repository"
	"github.com/techfix/workshop-api/pkg/apperror"
)

func TestPrintOrder_ProducesPDF(t *testing.T) {
	env := setupOrderTest(t)

	order := env.createOrder(t, &CreateOrderInput{
		LaborFee: decimal.NewFromInt(100),
		Items: []OrderItemInput{
			{Description: "Screen", Quantity: 2, UnitPrice: decimal.NewFromInt(25)},
		},
	})

	printSvc := NewPrintService(
		infraRepo.NewServiceOrderRepository(env.db),
		infraRepo.NewAccountRepository(env.db),
	)

	doc, err := printSvc.PrintOrder(context.Background(), env.accountID, order.ID)
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestPrintOrder_NotFound(t *testing.T) {
	env := setupOrderTest(t)

	printSvc := NewPrintService(
		infraRepo.NewServiceOrderRepository(env.db),
		infraRepo.NewAccountRepository(env.db),
	)

	_, err := printSvc.PrintOrder(context.Background(), env.accountID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
