package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techfix/workshop-api/internal/domain/entity"
	"github.com/techfix/workshop-api/internal/domain/enum"
	"github.com/techfix/workshop-api/internal/domain/repository"
	infraRepo "github.com/techfix/workshop-api/internal/infrastructure/repository"
	"github.com/techfix/workshop-api/pkg/apperror"
	"github.com/techfix/workshop-api/pkg/pagination"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupFinanceTest(t *testing.T) (*FinanceService, *entity.Account, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entity.Account{}, &entity.FinancialEntry{}))

	account := &entity.Account{Name: "Test Workshop"}
	require.NoError(t, db.Create(account).Error)

	svc := NewFinanceService(infraRepo.NewFinancialEntryRepository(db), zap.NewNop())
	return svc, account, db
}

func TestCreateEntry_PaidSetsPaidAt(t *testing.T) {
	svc, account, _ := setupFinanceTest(t)

	entry, err := svc.CreateEntry(context.Background(), account.ID, &CreateEntryInput{
		Type:          enum.EntryTypeExpense,
		Description:   "Replacement parts restock",
		Amount:        decimal.NewFromInt(200),
		DueDate:       time.Now(),
		PaymentStatus: enum.PaymentStatusPaid,
	})
	require.NoError(t, err)
	assert.NotNil(t, entry.PaidAt)
}

func TestCreateEntry_PendingHasNoPaidAt(t *testing.T) {
	svc, account, _ := setupFinanceTest(t)

	entry, err := svc.CreateEntry(context.Background(), account.ID, &CreateEntryInput{
		Type:        enum.EntryTypeIncome,
		Description: "Deposit",
		Amount:      decimal.NewFromInt(50),
		DueDate:     time.Now().AddDate(0, 0, 7),
	})
	require.NoError(t, err)
	assert.Nil(t, entry.PaidAt)
	assert.Equal(t, enum.PaymentStatusPending, entry.PaymentStatus)
}

func TestMarkPaid(t *testing.T) {
	svc, account, _ := setupFinanceTest(t)
	ctx := context.Background()

	entry, err := svc.CreateEntry(ctx, account.ID, &CreateEntryInput{
		Type:        enum.EntryTypeIncome,
		Description: "Repair fee",
		Amount:      decimal.NewFromInt(120),
		DueDate:     time.Now(),
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(ctx, account.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, paid.PaymentStatus)
	assert.NotNil(t, paid.PaidAt)
}

func TestUpdateEntry_BackToPendingClearsPaidAt(t *testing.T) {
	svc, account, _ := setupFinanceTest(t)
	ctx := context.Background()

	entry, err := svc.CreateEntry(ctx, account.ID, &CreateEntryInput{
		Type:          enum.EntryTypeIncome,
		Description:   "Repair fee",
		Amount:        decimal.NewFromInt(120),
		DueDate:       time.Now(),
		PaymentStatus: enum.PaymentStatusPaid,
	})
	require.NoError(t, err)

	pending := enum.PaymentStatusPending
	updated, err := svc.UpdateEntry(ctx, account.ID, entry.ID, &UpdateEntryInput{PaymentStatus: &pending})
	require.NoError(t, err)
	assert.Nil(t, updated.PaidAt)
}

func TestGetEntry_NotFound(t *testing.T) {
	svc, account, _ := setupFinanceTest(t)

	_, err := svc.GetEntry(context.Background(), account.ID, account.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestSummarize(t *testing.T) {
	svc, account, _ := setupFinanceTest(t)
	ctx := context.Background()
	now := time.Now()

	for _, e := range []struct {
		entryType enum.EntryType
		amount    int64
	}{
		{enum.EntryTypeIncome, 300},
		{enum.EntryTypeIncome, 200},
		{enum.EntryTypeExpense, 150},
	} {
		_, err := svc.CreateEntry(ctx, account.ID, &CreateEntryInput{
			Type:        e.entryType,
			Description: "entry",
			Amount:      decimal.NewFromInt(e.amount),
			DueDate:     now,
		})
		require.NoError(t, err)
	}

	summary, err := svc.Summarize(ctx, account.ID, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, summary.Income.Equal(decimal.NewFromInt(500)), "income = %s", summary.Income)
	assert.True(t, summary.Expense.Equal(decimal.NewFromInt(150)), "expense = %s", summary.Expense)
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(350)), "balance = %s", summary.Balance)
}

func TestSummarize_UpperBoundExcluded(t *testing.T) {
	svc, account, _ := setupFinanceTest(t)
	ctx := context.Background()

	marchStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	aprilStart := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	for _, e := range []struct {
		due    time.Time
		amount int64
	}{
		{time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), 80},
		{aprilStart, 100},
	} {
		_, err := svc.CreateEntry(ctx, account.ID, &CreateEntryInput{
			Type:        enum.EntryTypeIncome,
			Description: "entry",
			Amount:      decimal.NewFromInt(e.amount),
			DueDate:     e.due,
		})
		require.NoError(t, err)
	}

	// March only: the last day counts, the first of April does not
	summary, err := svc.Summarize(ctx, account.ID, marchStart, aprilStart)
	require.NoError(t, err)
	assert.True(t, summary.Income.Equal(decimal.NewFromInt(80)), "income = %s", summary.Income)
}

func TestListEntries_EndDateBoundary(t *testing.T) {
	svc, account, _ := setupFinanceTest(t)
	ctx := context.Background()

	for _, due := range []time.Time{
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	} {
		_, err := svc.CreateEntry(ctx, account.ID, &CreateEntryInput{
			Type:        enum.EntryTypeIncome,
			Description: "entry",
			Amount:      decimal.NewFromInt(10),
			DueDate:     due,
		})
		require.NoError(t, err)
	}

	upper := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	result, err := svc.ListEntries(ctx, account.ID, &repository.EntryFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		EndDate:    &upper,
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "2024-03-31", result.Items[0].DueDate.Format("2006-01-02"))
}

func TestOrderCompleted_RecordsIncome(t *testing.T) {
	svc, account, db := setupFinanceTest(t)

	order := &entity.ServiceOrder{
		ID:        uuid.New(),
		AccountID: account.ID,
		Number:    "2026-1",
		Total:     decimal.NewFromInt(250),
		Customer:  entity.Customer{Name: "Bob"},
	}
	svc.OrderCompleted(context.Background(), order)

	var entry entity.FinancialEntry
	require.NoError(t, db.First(&entry, "account_id = ?", account.ID).Error)
	assert.Equal(t, enum.EntryTypeIncome, entry.Type)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "Service order 2026-1 - Bob", entry.Description)
}

func TestOrderCompleted_SkipsZeroTotal(t *testing.T) {
	svc, account, db := setupFinanceTest(t)

	order := &entity.ServiceOrder{
		AccountID: account.ID,
		Number:    "2026-2",
		Total:     decimal.Zero,
	}
	svc.OrderCompleted(context.Background(), order)

	var count int64
	require.NoError(t, db.Model(&entity.FinancialEntry{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
