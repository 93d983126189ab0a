package confirmation

import "context"

type Repository interface {
	Create(ctx context.Context, c *Confirmation) error
	GetByConfirmationID(ctx context.Context, confirmationID string) (*Confirmation, error)
	// GetByConfirmationIDForUpdate takes a row lock; only valid inside a
	// transaction (the owning loan row must be locked first, see uow).
	GetByConfirmationIDForUpdate(ctx context.Context, confirmationID string) (*Confirmation, error)
	Save(ctx context.Context, c *Confirmation) error
	ListByLoan(ctx context.Context, loanNumericID uint64) ([]Confirmation, error)
}
