package notification

import (
	"context"
	"time"
)

type Repository interface {
	CreateBatch(ctx context.Context, ns []Notification) error
	// DeletePendingByLoan removes rows with sent_at null for one loan. Sent
	// rows are immutable history and are never touched.
	DeletePendingByLoan(ctx context.Context, loanNumericID uint64) error
	ListPendingByLoan(ctx context.Context, loanNumericID uint64) ([]Notification, error)
	// ListDue pages through pending rows with scheduled_at <= now.
	ListDue(ctx context.Context, now time.Time, limit int) ([]Notification, error)
	MarkSent(ctx context.Context, id uint64, at time.Time) error
}
