package loan

import (
	"errors"
	"time"

	"hedniya-backend/internal/domain/agreement"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"   // awaiting both confirmations
	StatusActive    Status = "ACTIVE"    // confirmed, due date not passed
	StatusOverdue   Status = "OVERDUE"   // confirmed, due date passed
	StatusClosed    Status = "CLOSED"    // fully repaid
	StatusCancelled Status = "CANCELLED" // cancelled before activation
)

type Currency string

const (
	CurrencyMAD Currency = "MAD" // default
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

var (
	ErrNotFound            = errors.New("loan not found")
	ErrForbidden           = errors.New("user is not a party to this loan")
	ErrInvalidParticipants = errors.New("lender and borrower must be different")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrTerminalState       = errors.New("loan is in a terminal state")
	ErrAlreadyConfirmed    = errors.New("loan already confirmed by both parties")
	ErrConflict            = errors.New("concurrent update conflict")
)

type Loan struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID string `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`

	LenderID   string `gorm:"size:32;index:idx_loans_lender" json:"lender_id"`
	BorrowerID string `gorm:"size:32;index:idx_loans_borrower" json:"borrower_id"`

	Amount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Outstanding decimal.Decimal `gorm:"type:decimal(12,2)" json:"outstanding"`
	Currency    Currency        `gorm:"type:enum('MAD','USD','EUR');default:'MAD'" json:"currency"`

	DueDate time.Time `gorm:"type:date;index:idx_loans_status_due,priority:2" json:"due_date"`
	Status  Status    `gorm:"type:enum('PENDING','ACTIVE','OVERDUE','CLOSED','CANCELLED');default:'PENDING';index:idx_loans_status_due,priority:1" json:"status"`

	LenderConfirmed   bool       `gorm:"column:lender_confirmed" json:"lender_confirmed"`
	BorrowerConfirmed bool       `gorm:"column:borrower_confirmed" json:"borrower_confirmed"`
	ConfirmedAt       *time.Time `json:"confirmed_at"`

	CreatedByID string    `gorm:"size:32" json:"created_by_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// SideOf resolves a user id to lender or borrower. ok=false means the user
// is not a party to the loan.
func (l *Loan) SideOf(userID string) (agreement.Side, bool) {
	switch userID {
	case l.LenderID:
		return agreement.SideLender, true
	case l.BorrowerID:
		return agreement.SideBorrower, true
	}
	return "", false
}

// Terminal reports whether the loan may no longer be mutated.
func (l *Loan) Terminal() bool {
	return l.Status == StatusClosed || l.Status == StatusCancelled
}

// Confirmations views the two confirmation flags as an agreement pair.
func (l *Loan) Confirmations() agreement.Pair {
	return agreement.Pair{Lender: l.LenderConfirmed, Borrower: l.BorrowerConfirmed}
}

// SetConfirmations writes an agreement pair back onto the flag columns.
func (l *Loan) SetConfirmations(p agreement.Pair) {
	l.LenderConfirmed = p.Lender
	l.BorrowerConfirmed = p.Borrower
}
