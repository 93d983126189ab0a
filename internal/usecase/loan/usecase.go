package loan

import (
	"context"
	"errors"

	"hedniya-backend/internal/domain/agreement"
	domain "hedniya-backend/internal/domain/loan"
	"hedniya-backend/internal/domain/uow"
	"hedniya-backend/internal/usecase/notifier"
	"hedniya-backend/pkg/clock"
	"hedniya-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	uow     uow.UnitOfWork
	clk     clock.Clock
	planner notifier.Planner
}

func NewUsecase(tx uow.UnitOfWork, clk clock.Clock, planner notifier.Planner) *Usecase {
	return &Usecase{uow: tx, clk: clk, planner: planner}
}

var inProgressStatuses = []domain.Status{domain.StatusPending, domain.StatusActive, domain.StatusOverdue}

// Create registers a new loan in PENDING. The creator's confirmation flag is
// auto-set; the counterparty still has to agree before anything activates.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if in.LenderID == in.BorrowerID {
		return nil, domain.ErrInvalidParticipants
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if in.Currency == "" {
		in.Currency = domain.CurrencyMAD
	}

	l := &domain.Loan{
		LoanID:      id.NewID32(),
		LenderID:    in.LenderID,
		BorrowerID:  in.BorrowerID,
		Amount:      in.Amount,
		Outstanding: in.Amount,
		Currency:    in.Currency,
		DueDate:     domain.DateOf(in.DueDate),
		Status:      domain.StatusPending,
		CreatedByID: in.CreatedByID,
	}
	side, ok := l.SideOf(in.CreatedByID)
	if !ok {
		return nil, domain.ErrForbidden
	}
	l.SetConfirmations(agreement.New(side))

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Loans.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// Confirm records one party's confirmation (or its withdrawal). Once both
// flags are true, confirmed_at is stamped (first time only, never cleared)
// and the reminder schedule is seeded. Withdrawal before the counterparty
// ever confirmed only reopens PENDING; cancelling is a separate operation.
func (u *Usecase) Confirm(ctx context.Context, in ConfirmInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Terminal() {
			return domain.ErrTerminalState
		}
		side, ok := l.SideOf(in.UserID)
		if !ok {
			return domain.ErrForbidden
		}

		p := l.Confirmations()
		p.Set(side, in.Confirmed)
		l.SetConfirmations(p)

		now := u.clk.Now()
		if p.Complete() && l.ConfirmedAt == nil {
			l.ConfirmedAt = &now
			if err := u.planner.Recompute(ctx, r, l); err != nil {
				return err
			}
		}
		l.Status = domain.DeriveStatus(l, now)

		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// Cancel moves a loan to CANCELLED. Only a party may cancel, and only while
// the loan was never fully confirmed; after that the dual-confirmation
// protocol owns every change.
func (u *Usecase) Cancel(ctx context.Context, loanID, userID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Terminal() {
			return domain.ErrTerminalState
		}
		if _, ok := l.SideOf(userID); !ok {
			return domain.ErrForbidden
		}
		if l.ConfirmedAt != nil {
			return domain.ErrAlreadyConfirmed
		}

		l.Status = domain.StatusCancelled
		if err := u.planner.ClearPending(ctx, r, l); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// Get returns the loan with its status freshly re-derived against today.
// A derived change (ACTIVE past its due date → OVERDUE) is persisted in the
// same transaction as the read.
func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if s := domain.DeriveStatus(l, u.clk.Now()); s != l.Status {
			l.Status = s
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// Dashboard returns the user's loans split into the two blocks the app
// shows: in-progress (PENDING/ACTIVE/OVERDUE) and closed history. Statuses
// are re-derived on the way out, so an overdue loan shows OVERDUE even if
// the sweep has not touched it yet.
func (u *Usecase) Dashboard(ctx context.Context, userID string) (*DashboardDTO, error) {
	out := &DashboardDTO{InProgress: []LoanDTO{}, Closed: []LoanDTO{}}
	now := u.clk.Now()

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		open, err := r.Loans.ListByParty(ctx, userID, inProgressStatuses)
		if err != nil {
			return err
		}
		for i := range open {
			l := &open[i]
			if s := domain.DeriveStatus(l, now); s != l.Status {
				l.Status = s
				if err := r.Loans.Save(ctx, l); err != nil {
					return err
				}
			}
			out.InProgress = append(out.InProgress, *toDTO(l))
		}

		closed, err := r.Loans.ListByParty(ctx, userID, []domain.Status{domain.StatusClosed})
		if err != nil {
			return err
		}
		for i := range closed {
			out.Closed = append(out.Closed, *toDTO(&closed[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
