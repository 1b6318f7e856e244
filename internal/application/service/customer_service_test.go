package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	infraRepo "github.com/techfix/workshop-api/internal/infrastructure/repository"
	"github.com/techfix/workshop-api/pkg/apperror"
	"github.com/techfix/workshop-api/pkg/pagination"
)

func strPtr(s string) *string { return &s }

func TestCreateCustomer(t *testing.T) {
	env := setupOrderTest(t)
	svc := NewCustomerService(infraRepo.NewCustomerRepository(env.db))

	customer, err := svc.CreateCustomer(context.Background(), env.accountID, &CreateCustomerInput{
		Name:  "Bob Jones",
		Email: strPtr("bob@example.com"),
		Phone: strPtr("555-0101"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, customer.ID)
	assert.Equal(t, "Bob Jones", customer.Name)
	require.NotNil(t, customer.Email)
	assert.Equal(t, "bob@example.com", *customer.Email)
}

func TestUpdateCustomer_PartialFields(t *testing.T) {
	env := setupOrderTest(t)
	svc := NewCustomerService(infraRepo.NewCustomerRepository(env.db))

	updated, err := svc.UpdateCustomer(context.Background(), env.accountID, env.customer.ID, &UpdateCustomerInput{
		Phone: strPtr("555-0202"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "555-0202", *updated.Phone)
}

func TestDeleteCustomer_OtherAccountNotFound(t *testing.T) {
	env := setupOrderTest(t)
	svc := NewCustomerService(infraRepo.NewCustomerRepository(env.db))

	err := svc.DeleteCustomer(context.Background(), uuid.New(), env.customer.ID)
	require.Error(t, err)

	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestListCustomers(t *testing.T) {
	env := setupOrderTest(t)
	svc := NewCustomerService(infraRepo.NewCustomerRepository(env.db))

	_, err := svc.CreateCustomer(context.Background(), env.accountID, &CreateCustomerInput{Name: "Carol White"})
	require.NoError(t, err)

	result, err := svc.ListCustomers(context.Background(), env.accountID, &pagination.PaginationParams{Page: 1, PerPage: 10}, "")
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)
}
