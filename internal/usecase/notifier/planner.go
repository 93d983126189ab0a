package notifier

import (
	"context"
	"time"

	"hedniya-backend/internal/domain/loan"
	"hedniya-backend/internal/domain/notification"
	"hedniya-backend/internal/domain/uow"
)

// Planner turns a loan's due date into persisted notification rows. It is
// meant to run inside the caller's loan transaction so schedule changes
// commit atomically with whatever triggered them (activation, due-date
// change, close).
type Planner struct {
	Loc         *time.Location
	Hour        int // reminder hour-of-day in Loc
	HorizonDays int // how far past the due date PAST_DUE rows are materialized
}

// Recompute replaces the loan's pending rows with a fresh schedule derived
// from the current due date. Sent rows are never touched.
func (p Planner) Recompute(ctx context.Context, r uow.Repos, l *loan.Loan) error {
	if err := r.Notifications.DeletePendingByLoan(ctx, l.ID); err != nil {
		return err
	}
	batch := notification.BuildSchedule(loan.DateOf(l.DueDate), p.Loc, p.Hour, p.HorizonDays)
	for i := range batch {
		batch[i].LoanID = l.ID
	}
	return r.Notifications.CreateBatch(ctx, batch)
}

// RecomputeAfterDateChange does Recompute plus the immediate DATE_CHANGED
// alert carrying the old and new dates.
func (p Planner) RecomputeAfterDateChange(ctx context.Context, r uow.Repos, l *loan.Loan, oldDue, now time.Time) error {
	if err := p.Recompute(ctx, r, l); err != nil {
		return err
	}
	changed := notification.DateChanged(loan.DateOf(oldDue), loan.DateOf(l.DueDate), now)
	changed.LoanID = l.ID
	return r.Notifications.CreateBatch(ctx, []notification.Notification{changed})
}

// ClearPending drops the loan's pending rows; used when a loan goes
// terminal and the reminder cadence must stop.
func (p Planner) ClearPending(ctx context.Context, r uow.Repos, l *loan.Loan) error {
	return r.Notifications.DeletePendingByLoan(ctx, l.ID)
}

// TopUp extends the PAST_DUE cadence for a loan whose materialized rows ran
// dry while it is still overdue.
func (p Planner) TopUp(ctx context.Context, r uow.Repos, l *loan.Loan, now time.Time) error {
	batch := notification.PastDueAfter(loan.DateOf(l.DueDate), now, p.Loc, p.Hour, p.HorizonDays)
	for i := range batch {
		batch[i].LoanID = l.ID
	}
	return r.Notifications.CreateBatch(ctx, batch)
}
