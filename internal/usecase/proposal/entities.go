package proposal

import (
	"encoding/json"
	"time"

	confDomain "hedniya-backend/internal/domain/confirmation"
)

type ProposeInput struct {
	LoanID        string
	Type          confDomain.Type
	Payload       json.RawMessage
	RequestedByID string
}

type ActInput struct {
	ConfirmationID string
	ActorUserID    string
	Accept         bool
}

type ConfirmationDTO struct {
	ConfirmationID   string          `json:"confirmation_id"`
	LoanID           string          `json:"loan_id"`
	Type             string          `json:"type"`
	Payload          json.RawMessage `json:"payload"`
	RequestedByID    string          `json:"requested_by_id"`
	LenderAccepted   bool            `json:"lender_accepted"`
	BorrowerAccepted bool            `json:"borrower_accepted"`
	FinalizedAt      *time.Time      `json:"finalized_at"`
	RejectedAt       *time.Time      `json:"rejected_at"`
	CreatedAt        time.Time       `json:"created_at"`
}

func toDTO(c *confDomain.Confirmation, publicLoanID string) *ConfirmationDTO {
	return &ConfirmationDTO{
		ConfirmationID:   c.ConfirmationID,
		LoanID:           publicLoanID,
		Type:             string(c.Type),
		Payload:          json.RawMessage(c.Payload),
		RequestedByID:    c.RequestedByID,
		LenderAccepted:   c.LenderAccepted,
		BorrowerAccepted: c.BorrowerAccepted,
		FinalizedAt:      c.FinalizedAt,
		RejectedAt:       c.RejectedAt,
		CreatedAt:        c.CreatedAt,
	}
}
