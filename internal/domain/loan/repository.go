package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate takes a row lock; only valid inside a transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// GetByIDForUpdate locks by numeric primary key, for callers holding a
	// child row (confirmation, notification) that carries the FK.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	// ListByParty returns loans where userID is lender or borrower, filtered
	// to the given statuses, ordered by due date then id.
	ListByParty(ctx context.Context, userID string, statuses []Status) ([]Loan, error)
	// ListDueForSweep pages through ACTIVE loans whose due_date is before
	// today, for the periodic OVERDUE sweep.
	ListDueForSweep(ctx context.Context, today time.Time, limit int) ([]Loan, error)
	// ListOverdueNeedingReminders pages through OVERDUE loans that have no
	// pending notification rows left, so the sweep can extend their PAST_DUE
	// cadence.
	ListOverdueNeedingReminders(ctx context.Context, limit int) ([]Loan, error)
}
