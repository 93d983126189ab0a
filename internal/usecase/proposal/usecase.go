package proposal

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"hedniya-backend/internal/domain/agreement"
	"hedniya-backend/internal/domain/auditlog"
	confDomain "hedniya-backend/internal/domain/confirmation"
	loanDomain "hedniya-backend/internal/domain/loan"
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
	audit   auditlog.Recorder

	// whether a DUE_DATE_CHANGE may carry a date on or before the current
	// due date (configuration-controlled, off by default)
	allowBackdating bool
}

func NewUsecase(tx uow.UnitOfWork, clk clock.Clock, planner notifier.Planner, audit auditlog.Recorder, allowBackdating bool) *Usecase {
	return &Usecase{uow: tx, clk: clk, planner: planner, audit: audit, allowBackdating: allowBackdating}
}

// Propose opens a dual-confirmation proposal against a live loan. The
// requester's acceptance flag is auto-set; the effect applies only once the
// counterparty accepts too.
func (u *Usecase) Propose(ctx context.Context, in ProposeInput) (*ConfirmationDTO, error) {
	var dto *ConfirmationDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		now := u.clk.Now()
		l.Status = loanDomain.DeriveStatus(l, now)

		// Proposals only make sense against a live loan. OVERDUE counts:
		// it is the live state a repayment most often arrives in.
		if l.Status != loanDomain.StatusActive && l.Status != loanDomain.StatusOverdue {
			return loanDomain.ErrTerminalState
		}
		side, ok := l.SideOf(in.RequestedByID)
		if !ok {
			return loanDomain.ErrForbidden
		}

		payload, err := u.validatePayload(l, in.Type, in.Payload)
		if err != nil {
			return err
		}

		c := &confDomain.Confirmation{
			ConfirmationID: id.NewID32(),
			LoanID:         l.ID,
			Type:           in.Type,
			Payload:        payload,
			RequestedByID:  in.RequestedByID,
		}
		c.SetAcceptances(agreement.New(side))

		if err := r.Confirmations.Create(ctx, c); err != nil {
			return err
		}
		dto = toDTO(c, l.LoanID)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// validatePayload checks shape and business limits per proposal type and
// returns the canonical re-marshaled payload.
func (u *Usecase) validatePayload(l *loanDomain.Loan, t confDomain.Type, raw json.RawMessage) ([]byte, error) {
	switch t {
	case confDomain.TypeRepayment:
		var p confDomain.RepaymentPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, confDomain.ErrValidation
		}
		if !p.Amount.IsPositive() || p.Amount.GreaterThan(l.Outstanding) {
			return nil, confDomain.ErrValidation
		}
		if !p.Amount.Equal(p.Amount.Round(2)) {
			return nil, confDomain.ErrValidation
		}
		return json.Marshal(p)
	case confDomain.TypeDueDateChange:
		var p confDomain.DueDateChangePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, confDomain.ErrValidation
		}
		newDue, err := time.ParseInLocation(confDomain.DateLayout, p.NewDueDate, time.UTC)
		if err != nil {
			return nil, confDomain.ErrValidation
		}
		if !u.allowBackdating && !newDue.After(loanDomain.DateOf(l.DueDate)) {
			return nil, confDomain.ErrValidation
		}
		return json.Marshal(p)
	default:
		// LOAN_CREATE never goes through this path: creation is immediate
		return nil, confDomain.ErrValidation
	}
}

// Act records one party's accept/reject on a proposal. A reject settles it
// with no loan effect. The second accept finalizes it and applies the effect
// atomically with the loan mutation: a repayment reduces the outstanding
// balance (CLOSED at zero), a due-date change moves due_date and rebuilds
// the reminder schedule.
func (u *Usecase) Act(ctx context.Context, in ActInput) (*ConfirmationDTO, error) {
	var (
		dto   *ConfirmationDTO
		entry *auditlog.Entry
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		peek, err := r.Confirmations.GetByConfirmationID(ctx, in.ConfirmationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return confDomain.ErrNotFound
			}
			return err
		}

		// Lock order: loan row first, then the confirmation. Every mutator
		// locks the loan first, so concurrent acts on the same loan
		// serialize here.
		l, err := r.Loans.GetByIDForUpdate(ctx, peek.LoanID)
		if err != nil {
			return err
		}
		c, err := r.Confirmations.GetByConfirmationIDForUpdate(ctx, in.ConfirmationID)
		if err != nil {
			return err
		}

		if c.Settled() {
			return confDomain.ErrAlreadyFinalized
		}
		side, ok := l.SideOf(in.ActorUserID)
		if !ok {
			return loanDomain.ErrForbidden
		}
		if l.Terminal() {
			return loanDomain.ErrTerminalState
		}

		now := u.clk.Now()
		if !in.Accept {
			c.RejectedAt = &now
			if err := r.Confirmations.Save(ctx, c); err != nil {
				return err
			}
			dto = toDTO(c, l.LoanID)
			return nil
		}

		p := c.Acceptances()
		p.Set(side, true)
		c.SetAcceptances(p)

		if p.Complete() {
			c.FinalizedAt = &now
			if err := u.applyEffect(ctx, r, l, c, now); err != nil {
				return err
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			entry = u.auditEntry(l, c)
		}

		if err := r.Confirmations.Save(ctx, c); err != nil {
			return err
		}
		dto = toDTO(c, l.LoanID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Write-only ledger-audit sink, outside the loan transaction. A failed
	// append is logged, never surfaced: the rail worker reconciles from the
	// confirmations table.
	if entry != nil {
		if err := u.audit.Record(ctx, entry); err != nil {
			log.Printf("proposal: audit append failed loan=%d confirmation=%d: %v", entry.LoanID, entry.EventID, err)
		}
	}
	return dto, nil
}

func (u *Usecase) applyEffect(ctx context.Context, r uow.Repos, l *loanDomain.Loan, c *confDomain.Confirmation, now time.Time) error {
	switch c.Type {
	case confDomain.TypeRepayment:
		pay, err := c.Repayment()
		if err != nil {
			return err
		}
		// Re-check against the balance under lock: another repayment may
		// have finalized since this one was proposed.
		if pay.Amount.GreaterThan(l.Outstanding) {
			return confDomain.ErrValidation
		}
		l.Outstanding = l.Outstanding.Sub(pay.Amount)
		if l.Outstanding.IsZero() {
			l.Status = loanDomain.StatusClosed
			return u.planner.ClearPending(ctx, r, l)
		}
		l.Status = loanDomain.DeriveStatus(l, now)
		return nil
	case confDomain.TypeDueDateChange:
		newDue, err := c.NewDueDate()
		if err != nil {
			return err
		}
		oldDue := l.DueDate
		l.DueDate = loanDomain.DateOf(newDue)
		l.Status = loanDomain.DeriveStatus(l, now)
		return u.planner.RecomputeAfterDateChange(ctx, r, l, oldDue, now)
	default:
		return confDomain.ErrValidation
	}
}

func (u *Usecase) auditEntry(l *loanDomain.Loan, c *confDomain.Confirmation) *auditlog.Entry {
	dir := auditlog.DirectionB2A
	if side, _ := l.SideOf(c.RequestedByID); side == agreement.SideLender {
		dir = auditlog.DirectionA2B
	}
	meta, _ := json.Marshal(map[string]any{
		"loan_id": l.LoanID,
		"type":    c.Type,
		"payload": json.RawMessage(c.Payload),
	})
	return &auditlog.Entry{
		LoanID:    l.ID,
		EventID:   c.ID,
		Direction: dir,
		Meta:      meta,
	}
}
