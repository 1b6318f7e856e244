package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techfix/workshop-api/internal/domain/enum"
	infraRepo "github.com/techfix/workshop-api/internal/infrastructure/repository"
	"github.com/techfix/workshop-api/pkg/apperror"
	"github.com/techfix/workshop-api/pkg/pagination"
)

func TestCreateProduct_NegativePriceRejected(t *testing.T) {
	env := setupOrderTest(t)
	svc := NewProductService(infraRepo.NewProductRepository(env.db))

	_, err := svc.CreateProduct(context.Background(), env.accountID, &CreateProductInput{
		Name:  "Screen replacement",
		Kind:  enum.ProductKindService,
		Price: decimal.NewFromInt(-10),
	})
	require.Error(t, err)

	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, 422, appErr.Code)
}

func TestUpdateProduct_PartialFields(t *testing.T) {
	env := setupOrderTest(t)
	svc := NewProductService(infraRepo.NewProductRepository(env.db))

	product, err := svc.CreateProduct(context.Background(), env.accountID, &CreateProductInput{
		Name:  "Thermal paste",
		Kind:  enum.ProductKindProduct,
		Price: decimal.NewFromInt(15),
	})
	require.NoError(t, err)

	newPrice := decimal.NewFromFloat(19.90)
	updated, err := svc.UpdateProduct(context.Background(), env.accountID, product.ID, &UpdateProductInput{
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "Thermal paste", updated.Name)
	assert.True(t, updated.Price.Equal(newPrice))

	negative := decimal.NewFromInt(-1)
	_, err = svc.UpdateProduct(context.Background(), env.accountID, product.ID, &UpdateProductInput{
		Price: &negative,
	})
	require.Error(t, err)
}

func TestGetProduct_OtherAccountNotFound(t *testing.T) {
	env := setupOrderTest(t)
	svc := NewProductService(infraRepo.NewProductRepository(env.db))

	product, err := svc.CreateProduct(context.Background(), env.accountID, &CreateProductInput{
		Name:  "Diagnostics",
		Kind:  enum.ProductKindService,
		Price: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), uuid.New(), product.ID)
	require.Error(t, err)

	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestListProducts_Pagination(t *testing.T) {
	env := setupOrderTest(t)
	svc := NewProductService(infraRepo.NewProductRepository(env.db))

	for _, name := range []string{"Battery", "Charger", "Keyboard"} {
		_, err := svc.CreateProduct(context.Background(), env.accountID, &CreateProductInput{
			Name:  name,
			Kind:  enum.ProductKindProduct,
			Price: decimal.NewFromInt(30),
		})
		require.NoError(t, err)
	}

	result, err := svc.ListProducts(context.Background(), env.accountID, &pagination.PaginationParams{Page: 1, PerPage: 2}, "")
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(3), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
}
