package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techfix/workshop-api/internal/domain/entity"
	"github.com/techfix/workshop-api/internal/domain/enum"
	infraRepo "github.com/techfix/workshop-api/internal/infrastructure/repository"
	"github.com/techfix/workshop-api/pkg/apperror"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type orderTestEnv struct {
	db        *gorm.DB
	orders    *OrderService
	finance   *FinanceService
	accountID uuid.UUID
	customer  *entity.Customer
}

func setupOrderTest(t *testing.T) *orderTestEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Account{},
		&entity.User{},
		&entity.Customer{},
		&entity.Product{},
		&entity.ServiceOrder{},
		&entity.OrderItem{},
		&entity.FinancialEntry{},
	))

	account := &entity.Account{Name: "Test Workshop"}
	require.NoError(t, db.Create(account).Error)

	customer := &entity.Customer{AccountID: account.ID, Name: "Alice Smith"}
	require.NoError(t, db.Create(customer).Error)

	orderRepo := infraRepo.NewServiceOrderRepository(db)
	itemRepo := infraRepo.NewOrderItemRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	entryRepo := infraRepo.NewFinancialEntryRepository(db)

	finance := NewFinanceService(entryRepo, zap.NewNop())
	orders := NewOrderService(orderRepo, itemRepo, productRepo, customerRepo, entryRepo, finance)

	return &orderTestEnv{
		db:        db,
		orders:    orders,
		finance:   finance,
		accountID: account.ID,
		customer:  customer,
	}
}

func (e *orderTestEnv) createOrder(t *testing.T, input *CreateOrderInput) *entity.ServiceOrder {
	t.Helper()
	if input == nil {
		input = &CreateOrderInput{}
	}
	if input.CustomerID == uuid.Nil {
		input.CustomerID = e.customer.ID
	}
	if input.Equipment == "" {
		input.Equipment = "Notebook"
	}
	if input.ProblemDescription == "" {
		input.ProblemDescription = "Does not power on"
	}
	order, err := e.orders.CreateOrder(context.Background(), e.accountID, input)
	require.NoError(t, err)
	return order
}

func (e *orderTestEnv) entryCountForOrder(t *testing.T, orderID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&entity.FinancialEntry{}).
		Where("service_order_id = ?", orderID).Count(&count).Error)
	return count
}

func TestNextOrderNumber(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		existing []string
		want     string
	}{
		{"empty year starts at one", 2024, nil, "2024-1"},
		{"increments the highest", 2024, []string{"2024-1", "2024-2"}, "2024-3"},
		{"gaps are not filled", 2024, []string{"2024-1", "2024-3"}, "2024-4"},
		{"other years ignored", 2025, []string{"2024-7"}, "2025-1"},
		{"malformed numbers ignored", 2024, []string{"2024-x", "2024-2"}, "2024-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextOrderNumber(tt.year, tt.existing))
		})
	}
}

func TestCreateOrder_SequentialNumbers(t *testing.T) {
	env := setupOrderTest(t)

	for i := 1; i <= 3; i++ {
		order := env.createOrder(t, nil)
		assert.Regexp(t, fmt.Sprintf(`^\d{4}-%d$`, i), order.Number)
	}
}

func TestCreateOrder_DeletedNumberNotReused(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	first := env.createOrder(t, nil)
	require.NoError(t, env.orders.DeleteOrder(ctx, env.accountID, first.ID, FinancialEntriesRefuse))

	second := env.createOrder(t, nil)
	assert.NotEqual(t, first.Number, second.Number)
}

func TestCreateOrder_TotalComputation(t *testing.T) {
	env := setupOrderTest(t)

	order := env.createOrder(t, &CreateOrderInput{
		LaborFee:  decimal.NewFromInt(100),
		Discount:  decimal.NewFromInt(10),
		Surcharge: decimal.NewFromInt(5),
		Items: []OrderItemInput{
			{Description: "Screen", Quantity: 2, UnitPrice: decimal.NewFromInt(25)},
		},
	})

	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].Total.Equal(decimal.NewFromInt(50)),
		"item total = %s", order.Items[0].Total)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(145)),
		"order total = %s", order.Total)
}

func TestCreateOrder_ItemDefaultsFromCatalog(t *testing.T) {
	env := setupOrderTest(t)

	product := &entity.Product{
		AccountID: env.accountID,
		Name:      "Battery replacement",
		Kind:      enum.ProductKindService,
		Price:     decimal.NewFromInt(80),
	}
	require.NoError(t, env.db.Create(product).Error)

	order := env.createOrder(t, &CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: &product.ID, Quantity: 1},
		},
	})

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Battery replacement", order.Items[0].Description)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(80)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(80)))
}

func TestCreateOrder_ZeroQuantityRejected(t *testing.T) {
	env := setupOrderTest(t)

	_, err := env.orders.CreateOrder(context.Background(), env.accountID, &CreateOrderInput{
		CustomerID:         env.customer.ID,
		Equipment:          "Tablet",
		ProblemDescription: "Cracked glass",
		Items: []OrderItemInput{
			{Description: "Glass", Quantity: 0, UnitPrice: decimal.NewFromInt(30)},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	env := setupOrderTest(t)

	_, err := env.orders.CreateOrder(context.Background(), env.accountID, &CreateOrderInput{
		CustomerID:         uuid.New(),
		Equipment:          "Phone",
		ProblemDescription: "Broken screen",
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestUpdateOrder_CompletionCreatesSingleEntry(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order := env.createOrder(t, &CreateOrderInput{
		LaborFee: decimal.NewFromInt(150),
	})

	completed := enum.OrderStatusCompleted
	updated, err := env.orders.UpdateOrder(ctx, env.accountID, order.ID, &UpdateOrderInput{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, int64(1), env.entryCountForOrder(t, order.ID))

	var entry entity.FinancialEntry
	require.NoError(t, env.db.First(&entry, "service_order_id = ?", order.ID).Error)
	assert.Equal(t, enum.EntryTypeIncome, entry.Type)
	assert.Equal(t, enum.PaymentStatusPaid, entry.PaymentStatus)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(150)))
	assert.Contains(t, entry.Description, updated.Number)
	assert.Contains(t, entry.Description, "Alice Smith")
}

func TestUpdateOrder_CompletionBillsReassignedCustomer(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order := env.createOrder(t, &CreateOrderInput{LaborFee: decimal.NewFromInt(75)})

	other := &entity.Customer{AccountID: env.accountID, Name: "Carol White"}
	require.NoError(t, env.db.Create(other).Error)

	// Reassigning the customer and completing in one update must bill
	// under the new customer, not the preloaded one
	completed := enum.OrderStatusCompleted
	_, err := env.orders.UpdateOrder(ctx, env.accountID, order.ID, &UpdateOrderInput{
		CustomerID: &other.ID,
		Status:     &completed,
	})
	require.NoError(t, err)

	var entry entity.FinancialEntry
	require.NoError(t, env.db.First(&entry, "service_order_id = ?", order.ID).Error)
	assert.Contains(t, entry.Description, "Carol White")
	assert.NotContains(t, entry.Description, "Alice Smith")
}

func TestUpdateOrder_ResaveCompletedCreatesNoEntry(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order := env.createOrder(t, &CreateOrderInput{LaborFee: decimal.NewFromInt(90)})

	completed := enum.OrderStatusCompleted
	_, err := env.orders.UpdateOrder(ctx, env.accountID, order.ID, &UpdateOrderInput{Status: &completed})
	require.NoError(t, err)

	// Saving again with the same status must not bill twice
	report := "Replaced the fuse"
	_, err = env.orders.UpdateOrder(ctx, env.accountID, order.ID, &UpdateOrderInput{
		Status:          &completed,
		TechnicalReport: &report,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), env.entryCountForOrder(t, order.ID))
}

func TestUpdateOrder_NonCompletedTransitionsCreateNoEntry(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order := env.createOrder(t, &CreateOrderInput{LaborFee: decimal.NewFromInt(60)})

	for _, status := range []enum.OrderStatus{
		enum.OrderStatusInProgress,
		enum.OrderStatusAwaitingParts,
		enum.OrderStatusReady,
		enum.OrderStatusCanceled,
	} {
		s := status
		_, err := env.orders.UpdateOrder(ctx, env.accountID, order.ID, &UpdateOrderInput{Status: &s})
		require.NoError(t, err)
	}

	assert.Equal(t, int64(0), env.entryCountForOrder(t, order.ID))
}

func TestUpdateOrder_ZeroTotalCompletionCreatesNoEntry(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order := env.createOrder(t, nil)

	completed := enum.OrderStatusCompleted
	_, err := env.orders.UpdateOrder(ctx, env.accountID, order.ID, &UpdateOrderInput{Status: &completed})
	require.NoError(t, err)

	assert.Equal(t, int64(0), env.entryCountForOrder(t, order.ID))
}

func TestUpdateOrder_RecomputesTotal(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order := env.createOrder(t, &CreateOrderInput{
		LaborFee: decimal.NewFromInt(100),
		Items: []OrderItemInput{
			{Description: "Connector", Quantity: 1, UnitPrice: decimal.NewFromInt(20)},
		},
	})
	require.True(t, order.Total.Equal(decimal.NewFromInt(120)))

	discount := decimal.NewFromInt(30)
	updated, err := env.orders.UpdateOrder(ctx, env.accountID, order.ID, &UpdateOrderInput{Discount: &discount})
	require.NoError(t, err)
	assert.True(t, updated.Total.Equal(decimal.NewFromInt(90)), "total = %s", updated.Total)
}

func TestUpdateOrder_OtherAccountNotFound(t *testing.T) {
	env := setupOrderTest(t)

	order := env.createOrder(t, nil)

	status := enum.OrderStatusInProgress
	_, err := env.orders.UpdateOrder(context.Background(), uuid.New(), order.ID, &UpdateOrderInput{Status: &status})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestDeleteOrder_RefusedWithLinkedEntries(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order := env.createOrder(t, &CreateOrderInput{LaborFee: decimal.NewFromInt(70)})
	completed := enum.OrderStatusCompleted
	_, err := env.orders.UpdateOrder(ctx, env.accountID, order.ID, &UpdateOrderInput{Status: &completed})
	require.NoError(t, err)

	err = env.orders.DeleteOrder(ctx, env.accountID, order.ID, FinancialEntriesRefuse)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// Order still there
	_, err = env.orders.GetOrder(ctx, env.accountID, order.ID)
	require.NoError(t, err)
}

func TestDeleteOrder_DetachKeepsEntries(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order := env.createOrder(t, &CreateOrderInput{LaborFee: decimal.NewFromInt(70)})
	completed := enum.OrderStatusCompleted
	_, err := env.orders.UpdateOrder(ctx, env.accountID, order.ID, &UpdateOrderInput{Status: &completed})
	require.NoError(t, err)

	require.NoError(t, env.orders.DeleteOrder(ctx, env.accountID, order.ID, FinancialEntriesDetach))

	var total int64
	require.NoError(t, env.db.Model(&entity.FinancialEntry{}).
		Where("account_id = ?", env.accountID).Count(&total).Error)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(0), env.entryCountForOrder(t, order.ID))
}

func TestDeleteOrder_DeleteRemovesEntries(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order := env.createOrder(t, &CreateOrderInput{LaborFee: decimal.NewFromInt(70)})
	completed := enum.OrderStatusCompleted
	_, err := env.orders.UpdateOrder(ctx, env.accountID, order.ID, &UpdateOrderInput{Status: &completed})
	require.NoError(t, err)

	require.NoError(t, env.orders.DeleteOrder(ctx, env.accountID, order.ID, FinancialEntriesDelete))

	var total int64
	require.NoError(t, env.db.Model(&entity.FinancialEntry{}).
		Where("account_id = ?", env.accountID).Count(&total).Error)
	assert.Equal(t, int64(0), total)
}

func TestDeleteOrder_RemovesLineItems(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order := env.createOrder(t, &CreateOrderInput{
		Items: []OrderItemInput{
			{Description: "Cable", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	})

	require.NoError(t, env.orders.DeleteOrder(ctx, env.accountID, order.ID, FinancialEntriesRefuse))

	var items int64
	require.NoError(t, env.db.Model(&entity.OrderItem{}).
		Where("order_id = ?", order.ID).Count(&items).Error)
	assert.Equal(t, int64(0), items)
}

func TestDeleteOrder_InvalidMode(t *testing.T) {
	env := setupOrderTest(t)

	order := env.createOrder(t, nil)

	err := env.orders.DeleteOrder(context.Background(), env.accountID, order.ID, "purge")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestAddLineItem_RecomputesTotal(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order := env.createOrder(t, &CreateOrderInput{LaborFee: decimal.NewFromInt(40)})

	updated, err := env.orders.AddLineItem(ctx, env.accountID, order.ID, &OrderItemInput{
		Description: "Thermal paste",
		Quantity:    3,
		UnitPrice:   decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.True(t, updated.Items[0].Total.Equal(decimal.NewFromInt(30)))
	assert.True(t, updated.Total.Equal(decimal.NewFromInt(70)), "total = %s", updated.Total)
}

func TestAddLineItem_ZeroQuantityRejected(t *testing.T) {
	env := setupOrderTest(t)

	order := env.createOrder(t, nil)

	_, err := env.orders.AddLineItem(context.Background(), env.accountID, order.ID, &OrderItemInput{
		Description: "Solder",
		Quantity:    0,
		UnitPrice:   decimal.NewFromInt(5),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestUpdateLineItem_RecomputesTotal(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order := env.createOrder(t, &CreateOrderInput{
		Items: []OrderItemInput{
			{Description: "Keyboard", Quantity: 1, UnitPrice: decimal.NewFromInt(45)},
		},
	})
	require.Len(t, order.Items, 1)

	qty := 2
	updated, err := env.orders.UpdateLineItem(ctx, env.accountID, order.Items[0].ID, &UpdateLineItemInput{
		Quantity: &qty,
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.True(t, updated.Items[0].Total.Equal(decimal.NewFromInt(90)))
	assert.True(t, updated.Total.Equal(decimal.NewFromInt(90)))
}

func TestRemoveLineItem_RecomputesTotal(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order := env.createOrder(t, &CreateOrderInput{
		LaborFee: decimal.NewFromInt(40),
		Items: []OrderItemInput{
			{Description: "Fan", Quantity: 1, UnitPrice: decimal.NewFromInt(35)},
		},
	})
	require.Len(t, order.Items, 1)

	updated, err := env.orders.RemoveLineItem(ctx, env.accountID, order.Items[0].ID)
	require.NoError(t, err)

	assert.Empty(t, updated.Items)
	assert.True(t, updated.Total.Equal(decimal.NewFromInt(40)), "total = %s", updated.Total)
}

func TestUpdateLineItem_OtherAccountNotFound(t *testing.T) {
	env := setupOrderTest(t)

	order := env.createOrder(t, &CreateOrderInput{
		Items: []OrderItemInput{
			{Description: "Hinge", Quantity: 1, UnitPrice: decimal.NewFromInt(15)},
		},
	})
	require.Len(t, order.Items, 1)

	qty := 5
	_, err := env.orders.UpdateLineItem(context.Background(), uuid.New(), order.Items[0].ID, &UpdateLineItemInput{
		Quantity: &qty,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
