package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techfix/workshop-api/internal/domain/enum"
	infraRepo "github.com/techfix/workshop-api/internal/infrastructure/repository"
)

func TestGetDashboard(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	env.createOrder(t, nil)
	env.createOrder(t, nil)
	third := env.createOrder(t, &CreateOrderInput{LaborFee: decimal.NewFromInt(200)})

	completed := enum.OrderStatusCompleted
	_, err := env.orders.UpdateOrder(ctx, env.accountID, third.ID, &UpdateOrderInput{Status: &completed})
	require.NoError(t, err)

	_, err = env.finance.CreateEntry(ctx, env.accountID, &CreateEntryInput{
		Type:        enum.EntryTypeExpense,
		Description: "Supplies",
		Amount:      decimal.NewFromInt(40),
		DueDate:     time.Now(),
	})
	require.NoError(t, err)

	svc := NewDashboardService(
		infraRepo.NewServiceOrderRepository(env.db),
		infraRepo.NewFinancialEntryRepository(env.db),
	)

	dashboard, err := svc.GetDashboard(ctx, env.accountID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), dashboard.OrdersByStatus["Open"])
	assert.Equal(t, int64(1), dashboard.OrdersByStatus["Completed"])
	assert.Equal(t, int64(0), dashboard.OrdersByStatus["Canceled"])

	require.NotNil(t, dashboard.CurrentMonth)
	assert.True(t, dashboard.CurrentMonth.Income.Equal(decimal.NewFromInt(200)),
		"income = %s", dashboard.CurrentMonth.Income)
	assert.True(t, dashboard.CurrentMonth.Expense.Equal(decimal.NewFromInt(40)),
		"expense = %s", dashboard.CurrentMonth.Expense)
}
