package clock

import "time"

// Clock abstracts "now" so scheduling logic is deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns the wall clock (UTC).
func System() Clock { return systemClock{} }

// Fixed is a Clock pinned to a single instant. Tests mutate T directly.
type Fixed struct{ T time.Time }

func (f *Fixed) Now() time.Time { return f.T }

// At pins a fake clock to t.
func At(t time.Time) *Fixed { return &Fixed{T: t.UTC()} }
