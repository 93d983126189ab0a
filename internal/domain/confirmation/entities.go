package confirmation

import (
	"encoding/json"
	"errors"
	"time"

	"hedniya-backend/internal/domain/agreement"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Type tags the action a proposal wants to apply to its loan.
type Type string

const (
	TypeLoanCreate    Type = "LOAN_CREATE" // initial confirmation; lives on the loan itself
	TypeRepayment     Type = "REPAYMENT"
	TypeDueDateChange Type = "DUE_DATE_CHANGE"
)

var (
	ErrNotFound         = errors.New("confirmation not found")
	ErrAlreadyFinalized = errors.New("confirmation already finalized")
	ErrValidation       = errors.New("invalid confirmation payload")
)

// Confirmation is a pending two-party proposal against an active loan. Its
// effect is applied exactly once, at the instant both acceptance flags turn
// true; a single rejection is terminal and has no loan effect.
type Confirmation struct {
	ID             uint64 `gorm:"primaryKey;column:id" json:"-"`
	ConfirmationID string `gorm:"size:32;uniqueIndex:ux_confirmations_public_id" json:"confirmation_id"`

	// Numeric FK to loans.id; cascade delete with the loan.
	LoanID uint64 `gorm:"index;constraint:OnDelete:CASCADE" json:"-"`
	Type   Type   `gorm:"type:enum('LOAN_CREATE','REPAYMENT','DUE_DATE_CHANGE')" json:"type"`

	Payload datatypes.JSON `gorm:"type:json" json:"payload"`

	RequestedByID string `gorm:"size:32" json:"requested_by_id"`

	LenderAccepted   bool       `gorm:"column:lender_accepted" json:"lender_accepted"`
	BorrowerAccepted bool       `gorm:"column:borrower_accepted" json:"borrower_accepted"`
	FinalizedAt      *time.Time `json:"finalized_at"`
	RejectedAt       *time.Time `json:"rejected_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Confirmation) TableName() string { return "confirmations" }

// Settled reports whether the proposal can no longer be acted on.
func (c *Confirmation) Settled() bool {
	return c.FinalizedAt != nil || c.RejectedAt != nil
}

// Acceptances views the two acceptance flags as an agreement pair.
func (c *Confirmation) Acceptances() agreement.Pair {
	return agreement.Pair{Lender: c.LenderAccepted, Borrower: c.BorrowerAccepted}
}

// SetAcceptances writes an agreement pair back onto the flag columns.
func (c *Confirmation) SetAcceptances(p agreement.Pair) {
	c.LenderAccepted = p.Lender
	c.BorrowerAccepted = p.Borrower
}

// RepaymentPayload is the REPAYMENT payload shape: {"amount": "120.50"}.
type RepaymentPayload struct {
	Amount decimal.Decimal `json:"amount"`
}

// DueDateChangePayload is the DUE_DATE_CHANGE payload shape:
// {"new_due_date": "2025-12-31"}.
type DueDateChangePayload struct {
	NewDueDate string `json:"new_due_date"`
}

const DateLayout = "2006-01-02"

// Repayment decodes the payload of a REPAYMENT proposal.
func (c *Confirmation) Repayment() (RepaymentPayload, error) {
	var p RepaymentPayload
	if c.Type != TypeRepayment {
		return p, ErrValidation
	}
	if err := json.Unmarshal(c.Payload, &p); err != nil {
		return p, ErrValidation
	}
	return p, nil
}

// NewDueDate decodes and parses the payload of a DUE_DATE_CHANGE proposal.
func (c *Confirmation) NewDueDate() (time.Time, error) {
	var p DueDateChangePayload
	if c.Type != TypeDueDateChange {
		return time.Time{}, ErrValidation
	}
	if err := json.Unmarshal(c.Payload, &p); err != nil {
		return time.Time{}, ErrValidation
	}
	t, err := time.ParseInLocation(DateLayout, p.NewDueDate, time.UTC)
	if err != nil {
		return time.Time{}, ErrValidation
	}
	return t, nil
}
