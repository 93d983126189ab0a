package auditlog

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// Direction says which admin rail account paid which: A2B for a
// lender-originated event, B2A for a borrower-originated one.
type Direction string

const (
	DirectionA2B Direction = "A2B"
	DirectionB2A Direction = "B2A"
)

// Entry is one write-only ledger-audit row, appended when a proposal
// finalizes. The external payment-rail transaction id is filled in by the
// rail worker out of band; the core never reads these rows back.
type Entry struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID uint64 `gorm:"index;constraint:OnDelete:CASCADE" json:"-"`
	// Originating confirmation (numeric id); zero for loan-level events.
	EventID uint64 `gorm:"index" json:"-"`

	Direction Direction      `gorm:"size:3" json:"direction"`
	TxID      string         `gorm:"size:128" json:"tx_id"`
	Meta      datatypes.JSON `gorm:"type:json" json:"meta"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "audit_logs" }

// Recorder is the write-only sink contract.
type Recorder interface {
	Record(ctx context.Context, e *Entry) error
}
