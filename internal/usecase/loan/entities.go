package loan

import (
	"time"

	domain "hedniya-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type CreateLoanInput struct {
	LenderID    string
	BorrowerID  string
	Amount      decimal.Decimal
	Currency    domain.Currency
	DueDate     time.Time
	CreatedByID string
}

type ConfirmInput struct {
	LoanID    string
	UserID    string
	Confirmed bool
}

type LoanDTO struct {
	LoanID            string          `json:"loan_id"`
	LenderID          string          `json:"lender_id"`
	BorrowerID        string          `json:"borrower_id"`
	Amount            decimal.Decimal `json:"amount"`
	Outstanding       decimal.Decimal `json:"outstanding"`
	Currency          string          `json:"currency"`
	DueDate           string          `json:"due_date"`
	Status            string          `json:"status"`
	LenderConfirmed   bool            `json:"lender_confirmed"`
	BorrowerConfirmed bool            `json:"borrower_confirmed"`
	ConfirmedAt       *time.Time      `json:"confirmed_at"`
	CreatedByID       string          `json:"created_by_id"`
	CreatedAt         time.Time       `json:"created_at"`
}

type DashboardDTO struct {
	InProgress []LoanDTO `json:"in_progress"`
	Closed     []LoanDTO `json:"closed"`
}

const dateLayout = "2006-01-02"

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:            l.LoanID,
		LenderID:          l.LenderID,
		BorrowerID:        l.BorrowerID,
		Amount:            l.Amount,
		Outstanding:       l.Outstanding,
		Currency:          string(l.Currency),
		DueDate:           domain.DateOf(l.DueDate).Format(dateLayout),
		Status:            string(l.Status),
		LenderConfirmed:   l.LenderConfirmed,
		BorrowerConfirmed: l.BorrowerConfirmed,
		ConfirmedAt:       l.ConfirmedAt,
		CreatedByID:       l.CreatedByID,
		CreatedAt:         l.CreatedAt,
	}
}
