package confirmationmock

import (
	"context"

	domain "hedniya-backend/internal/domain/confirmation"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                       func(ctx context.Context, c *domain.Confirmation) error
	GetByConfirmationIDFn          func(ctx context.Context, confirmationID string) (*domain.Confirmation, error)
	GetByConfirmationIDForUpdateFn func(ctx context.Context, confirmationID string) (*domain.Confirmation, error)
	SaveFn                         func(ctx context.Context, c *domain.Confirmation) error
	ListByLoanFn                   func(ctx context.Context, loanNumericID uint64) ([]domain.Confirmation, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, c *domain.Confirmation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByConfirmationID(ctx context.Context, confirmationID string) (*domain.Confirmation, error) {
	if m.GetByConfirmationIDFn != nil {
		return m.GetByConfirmationIDFn(ctx, confirmationID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByConfirmationIDForUpdate(ctx context.Context, confirmationID string) (*domain.Confirmation, error) {
	if m.GetByConfirmationIDForUpdateFn != nil {
		return m.GetByConfirmationIDForUpdateFn(ctx, confirmationID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, c *domain.Confirmation) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanNumericID uint64) ([]domain.Confirmation, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanNumericID)
	}
	return nil, nil
}
