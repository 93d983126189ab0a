package notificationmock

import (
	"context"
	"time"

	domain "hedniya-backend/internal/domain/notification"
)

// Repo is a function-backed mock that satisfies domain.Repository. The
// zero value is a no-op store, handy for usecases that only touch
// notifications incidentally.
type Repo struct {
	CreateBatchFn         func(ctx context.Context, ns []domain.Notification) error
	DeletePendingByLoanFn func(ctx context.Context, loanNumericID uint64) error
	ListPendingByLoanFn   func(ctx context.Context, loanNumericID uint64) ([]domain.Notification, error)
	ListDueFn             func(ctx context.Context, now time.Time, limit int) ([]domain.Notification, error)
	MarkSentFn            func(ctx context.Context, id uint64, at time.Time) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) CreateBatch(ctx context.Context, ns []domain.Notification) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, ns)
	}
	return nil
}

func (m *Repo) DeletePendingByLoan(ctx context.Context, loanNumericID uint64) error {
	if m.DeletePendingByLoanFn != nil {
		return m.DeletePendingByLoanFn(ctx, loanNumericID)
	}
	return nil
}

func (m *Repo) ListPendingByLoan(ctx context.Context, loanNumericID uint64) ([]domain.Notification, error) {
	if m.ListPendingByLoanFn != nil {
		return m.ListPendingByLoanFn(ctx, loanNumericID)
	}
	return nil, nil
}

func (m *Repo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Notification, error) {
	if m.ListDueFn != nil {
		return m.ListDueFn(ctx, now, limit)
	}
	return nil, nil
}

func (m *Repo) MarkSent(ctx context.Context, id uint64, at time.Time) error {
	if m.MarkSentFn != nil {
		return m.MarkSentFn(ctx, id, at)
	}
	return nil
}
