package notifier

import (
	"context"
	"log"

	"hedniya-backend/internal/domain/loan"
	"hedniya-backend/internal/domain/notification"
	"hedniya-backend/internal/domain/uow"
	"hedniya-backend/pkg/clock"

	"hedniya-backend/internal/adapter/delivery"
)

type Usecase struct {
	uow     uow.UnitOfWork
	clk     clock.Clock
	sender  delivery.Sender
	planner Planner
}

func NewUsecase(tx uow.UnitOfWork, clk clock.Clock, sender delivery.Sender, planner Planner) *Usecase {
	return &Usecase{uow: tx, clk: clk, sender: sender, planner: planner}
}

// DispatchDue delivers one page of pending notifications whose scheduled_at
// has passed. Delivery runs outside any transaction so locks are not held
// across network calls; a failed send leaves sent_at null and the row is
// retried on the next sweep (at-least-once). Returns how many were sent.
func (u *Usecase) DispatchDue(ctx context.Context, limit int) (int, error) {
	now := u.clk.Now()

	var due []notification.Notification
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		due, err = r.Notifications.ListDue(ctx, now, limit)
		return err
	})
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		n := &due[i]
		if err := u.sender.Send(ctx, n); err != nil {
			log.Printf("notifier: send failed loan=%d notification=%d: %v", n.LoanID, n.ID, err)
			continue
		}
		err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
			return r.Notifications.MarkSent(ctx, n.ID, now)
		})
		if err != nil {
			// delivered but not stamped; the sweep will resend, the sender
			// contract tolerates the duplicate
			log.Printf("notifier: mark sent failed notification=%d: %v", n.ID, err)
			continue
		}
		sent++
	}
	return sent, nil
}

// SweepStatuses is the periodic pass that makes OVERDUE transitions visible
// without a read: one page of ACTIVE loans past their due date gets
// re-derived and persisted, then overdue loans whose reminder queue ran dry
// get their PAST_DUE cadence extended. Returns how many loans flipped.
func (u *Usecase) SweepStatuses(ctx context.Context, limit int) (int, error) {
	now := u.clk.Now()
	flipped := 0

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		due, err := r.Loans.ListDueForSweep(ctx, now, limit)
		if err != nil {
			return err
		}
		for i := range due {
			l := &due[i]
			if s := loan.DeriveStatus(l, now); s != l.Status {
				l.Status = s
				if err := r.Loans.Save(ctx, l); err != nil {
					return err
				}
				flipped++
			}
		}

		dry, err := r.Loans.ListOverdueNeedingReminders(ctx, limit)
		if err != nil {
			return err
		}
		for i := range dry {
			if err := u.planner.TopUp(ctx, r, &dry[i], now); err != nil {
				return err
			}
		}
		return nil
	})
	return flipped, err
}
