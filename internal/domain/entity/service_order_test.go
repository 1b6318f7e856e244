package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeOrderTotal(t *testing.T) {
	items := []OrderItem{
		{Quantity: 2, UnitPrice: decimal.NewFromInt(25), Total: decimal.NewFromInt(50)},
	}

	total := ComputeOrderTotal(
		decimal.NewFromInt(100), // labor
		decimal.NewFromInt(10),  // discount
		decimal.NewFromInt(5),   // surcharge
		items,
	)

	assert.True(t, total.Equal(decimal.NewFromInt(145)), "total = %s", total)
}

func TestComputeOrderTotal_NoItems(t *testing.T) {
	total := ComputeOrderTotal(decimal.NewFromInt(80), decimal.Zero, decimal.Zero, nil)
	assert.True(t, total.Equal(decimal.NewFromInt(80)))
}

func TestComputeOrderTotal_CanGoNegative(t *testing.T) {
	total := ComputeOrderTotal(decimal.NewFromInt(10), decimal.NewFromInt(30), decimal.Zero, nil)
	assert.True(t, total.Equal(decimal.NewFromInt(-20)))
}

func TestOrderItemRecalculate(t *testing.T) {
	item := OrderItem{Quantity: 3, UnitPrice: decimal.RequireFromString("19.90")}
	item.Recalculate()
	assert.True(t, item.Total.Equal(decimal.RequireFromString("59.70")), "total = %s", item.Total)
}

func TestRecalculate_FixesStaleItemTotals(t *testing.T) {
	order := ServiceOrder{
		LaborFee: decimal.NewFromInt(100),
		Discount: decimal.NewFromInt(10),
		Items: []OrderItem{
			// Stale total on purpose, Recalculate must overwrite it
			{Quantity: 2, UnitPrice: decimal.NewFromInt(25), Total: decimal.NewFromInt(999)},
		},
	}

	order.Recalculate()

	assert.True(t, order.Items[0].Total.Equal(decimal.NewFromInt(50)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(140)), "total = %s", order.Total)
}
