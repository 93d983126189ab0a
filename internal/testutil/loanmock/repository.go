package loanmock

import (
	"context"
	"time"

	domain "hedniya-backend/internal/domain/loan"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled getters report
// record-not-found.
type Repo struct {
	CreateFn                      func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn                 func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn        func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByIDForUpdateFn            func(ctx context.Context, id uint64) (*domain.Loan, error)
	SaveFn                        func(ctx context.Context, l *domain.Loan) error
	ListByPartyFn                 func(ctx context.Context, userID string, statuses []domain.Status) ([]domain.Loan, error)
	ListDueForSweepFn             func(ctx context.Context, today time.Time, limit int) ([]domain.Loan, error)
	ListOverdueNeedingRemindersFn func(ctx context.Context, limit int) ([]domain.Loan, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) ListByParty(ctx context.Context, userID string, statuses []domain.Status) ([]domain.Loan, error) {
	if m.ListByPartyFn != nil {
		return m.ListByPartyFn(ctx, userID, statuses)
	}
	return nil, nil
}

func (m *Repo) ListDueForSweep(ctx context.Context, today time.Time, limit int) ([]domain.Loan, error) {
	if m.ListDueForSweepFn != nil {
		return m.ListDueForSweepFn(ctx, today, limit)
	}
	return nil, nil
}

func (m *Repo) ListOverdueNeedingReminders(ctx context.Context, limit int) ([]domain.Loan, error) {
	if m.ListOverdueNeedingRemindersFn != nil {
		return m.ListOverdueNeedingRemindersFn(ctx, limit)
	}
	return nil, nil
}
