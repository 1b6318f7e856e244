package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/techfix/workshop-api/internal/domain/entity"
	"github.com/techfix/workshop-api/internal/domain/repository"
	"github.com/techfix/workshop-api/pkg/apperror"
)

// AccountService handles shop profile operations
type AccountService struct {
	accountRepo repository.AccountRepository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo repository.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// GetAccount retrieves the shop profile
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Account")
	}
	return account, nil
}

// UpdateAccountInput represents a partial account update
type UpdateAccountInput struct {
	Name     *string
	Document *string
	Email    *string
	Phone    *string
	Address  *string
}

// UpdateAccount updates the shop profile
func (s *AccountService) UpdateAccount(ctx context.Context, id uuid.UUID, input *UpdateAccountInput) (*entity.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Account")
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Document != nil {
		account.Document = input.Document
	}
	if input.Email != nil {
		account.Email = input.Email
	}
	if input.Phone != nil {
		account.Phone = input.Phone
	}
	if input.Address != nil {
		account.Address = input.Address
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
