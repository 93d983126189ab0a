package loan

import "time"

// DeriveStatus is the single source of truth for time-dependent status.
// It is pure: same loan fields + same day in, same status out. Terminal
// states are never recomputed, and confirmation flags, confirmed_at and
// due_date are never touched here.
func DeriveStatus(l *Loan, today time.Time) Status {
	if l.Status == StatusClosed || l.Status == StatusCancelled {
		return l.Status
	}
	if l.ConfirmedAt == nil {
		return StatusPending
	}
	if DateOf(l.DueDate).Before(DateOf(today)) {
		return StatusOverdue
	}
	return StatusActive
}

// DateOf truncates an instant to its calendar date (midnight UTC). Due dates
// carry no time-of-day, so all comparisons happen at date granularity.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
