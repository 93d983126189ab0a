package mysql

import (
	"context"
	"errors"
	"testing"

	confDomain "hedniya-backend/internal/domain/confirmation"
	loanDomain "hedniya-backend/internal/domain/loan"
	"hedniya-backend/internal/domain/uow"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func makeConfirmation(confID string, loanNumericID uint64) *confDomain.Confirmation {
	return &confDomain.Confirmation{
		ConfirmationID: confID,
		LoanID:         loanNumericID,
		Type:           confDomain.TypeRepayment,
		Payload:        []byte(`{"amount":"100.00"}`),
		RequestedByID:  "22222222222222222222222222222222",
		BorrowerAccepted: true,
	}
}

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	confRepo := NewConfirmationRepository(db)

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		l := makeLoan("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "11111111111111111111111111111111", "22222222222222222222222222222222")
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if l.ID == 0 {
			t.Fatalf("loan auto ID not set")
		}
		return r.Confirmations.Create(ctx, makeConfirmation("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", l.ID))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	if _, err := loanRepo.GetByLoanID(ctx, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"); err != nil {
		t.Fatalf("loan not visible after commit: %v", err)
	}
	if _, err := confRepo.GetByConfirmationID(ctx, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"); err != nil {
		t.Fatalf("confirmation not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	confRepo := NewConfirmationRepository(db)

	sentinel := errors.New("boom")

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		l := makeLoan("cccccccccccccccccccccccccccccccc", "11111111111111111111111111111111", "22222222222222222222222222222222")
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if err := r.Confirmations.Create(ctx, makeConfirmation("dddddddddddddddddddddddddddddddd", l.ID)); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	if _, err := loanRepo.GetByLoanID(ctx, "cccccccccccccccccccccccccccccccc"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected loan not found after rollback, got %v", err)
	}
	if _, err := confRepo.GetByConfirmationID(ctx, "dddddddddddddddddddddddddddddddd"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected confirmation not found after rollback, got %v", err)
	}
}

func TestGormUoW_WithinLoanTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)

	seed := makeLoan("eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", "11111111111111111111111111111111", "22222222222222222222222222222222")
	seed.Status = loanDomain.StatusActive
	if err := loanRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	if err := guow.WithinLoanTx(ctx, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", func(r uow.Repos, l *loanDomain.Loan) error {
		if l == nil || l.LoanID != "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee" || l.Status != loanDomain.StatusActive {
			t.Fatalf("unexpected loan passed to fn: %+v", l)
		}
		l.Outstanding = decimal.RequireFromString("400.00")
		return r.Loans.Save(ctx, l)
	}); err != nil {
		t.Fatalf("WithinLoanTx commit err: %v", err)
	}

	got, err := loanRepo.GetByLoanID(ctx, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if err != nil {
		t.Fatalf("GetByLoanID post-commit: %v", err)
	}
	if !got.Outstanding.Equal(decimal.RequireFromString("400.00")) {
		t.Fatalf("outstanding not updated, got=%s", got.Outstanding)
	}
}

func TestGormUoW_WithinLoanTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)

	seed := makeLoan("ffffffffffffffffffffffffffffffff", "11111111111111111111111111111111", "22222222222222222222222222222222")
	if err := loanRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	sentinel := errors.New("stop")

	_ = guow.WithinLoanTx(ctx, "ffffffffffffffffffffffffffffffff", func(r uow.Repos, l *loanDomain.Loan) error {
		l.Status = loanDomain.StatusCancelled
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		notif := makeConfirmation("99999999999999999999999999999999", l.ID)
		if err := r.Confirmations.Create(ctx, notif); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	got, err := loanRepo.GetByLoanID(ctx, "ffffffffffffffffffffffffffffffff")
	if err != nil {
		t.Fatalf("post-rollback GetByLoanID: %v", err)
	}
	if got.Status != loanDomain.StatusPending {
		t.Fatalf("expected PENDING after rollback, got %s", got.Status)
	}
	if _, err := NewConfirmationRepository(db).GetByConfirmationID(ctx, "99999999999999999999999999999999"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected confirmation absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinLoanTx_LoanNotFound(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)

	err := guow.WithinLoanTx(ctx, "00000000000000000000000000000000", func(r uow.Repos, l *loanDomain.Loan) error {
		t.Fatalf("callback should not be called when loan missing")
		return nil
	})
	if err == nil {
		t.Fatalf("expected error when loan not found")
	}
}
