package uow

import (
	"context"

	"hedniya-backend/internal/domain/confirmation"
	"hedniya-backend/internal/domain/loan"
	"hedniya-backend/internal/domain/notification"
)

type Repos struct {
	Loans         loan.Repository
	Confirmations confirmation.Repository
	Notifications notification.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in. Serializes
	// concurrent confirm/propose calls on the same loan.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
