package agreement

import "errors"

// Side identifies which of a loan's two parties is acting.
type Side string

const (
	SideLender   Side = "LENDER"
	SideBorrower Side = "BORROWER"
)

var ErrUnknownSide = errors.New("agreement: unknown side")

// Pair is the dual-confirmation primitive shared by loan creation and
// proposals: two booleans, one per party, complete once both are true.
// Loan confirmation flags and Confirmation acceptance flags are both
// projections of this type.
type Pair struct {
	Lender   bool
	Borrower bool
}

// New returns a Pair with the requesting side pre-agreed. The requester
// asking for something is taken as their consent to it.
func New(requestedBy Side) Pair {
	p := Pair{}
	p.Set(requestedBy, true)
	return p
}

// Set records one side's decision. Setting the same value twice is a no-op,
// which is what makes confirm retries idempotent.
func (p *Pair) Set(side Side, agreed bool) {
	switch side {
	case SideLender:
		p.Lender = agreed
	case SideBorrower:
		p.Borrower = agreed
	}
}

// Get reports one side's current decision.
func (p Pair) Get(side Side) bool {
	if side == SideLender {
		return p.Lender
	}
	return p.Borrower
}

// Complete reports full agreement: both sides said yes.
func (p Pair) Complete() bool { return p.Lender && p.Borrower }

// Other returns the counterparty side.
func Other(s Side) Side {
	if s == SideLender {
		return SideBorrower
	}
	return SideLender
}
