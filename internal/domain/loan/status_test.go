package loan

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveStatus(t *testing.T) {
	today := date(2025, 3, 12)
	confirmed := date(2025, 3, 1)

	tests := []struct {
		name string
		l    Loan
		want Status
	}{
		{
			name: "unconfirmed stays pending",
			l:    Loan{Status: StatusPending, DueDate: date(2025, 3, 10)},
			want: StatusPending,
		},
		{
			name: "confirmed with due date yesterday is overdue",
			l:    Loan{Status: StatusActive, DueDate: date(2025, 3, 11), ConfirmedAt: &confirmed},
			want: StatusOverdue,
		},
		{
			name: "confirmed with due date today is active",
			l:    Loan{Status: StatusActive, DueDate: date(2025, 3, 12), ConfirmedAt: &confirmed},
			want: StatusActive,
		},
		{
			name: "confirmed with due date in the future is active",
			l:    Loan{Status: StatusPending, DueDate: date(2025, 4, 1), ConfirmedAt: &confirmed},
			want: StatusActive,
		},
		{
			name: "closed is terminal",
			l:    Loan{Status: StatusClosed, DueDate: date(2025, 1, 1), ConfirmedAt: &confirmed},
			want: StatusClosed,
		},
		{
			name: "cancelled is terminal",
			l:    Loan{Status: StatusCancelled, DueDate: date(2025, 1, 1)},
			want: StatusCancelled,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(&tt.l, today); got != tt.want {
				t.Fatalf("DeriveStatus=%s want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveStatus_TimeOfDayIgnored(t *testing.T) {
	confirmed := date(2025, 3, 1)
	l := Loan{Status: StatusActive, DueDate: date(2025, 3, 12), ConfirmedAt: &confirmed}
	// 23:59 on the due date is still the due date
	lateToday := time.Date(2025, 3, 12, 23, 59, 0, 0, time.UTC)
	if got := DeriveStatus(&l, lateToday); got != StatusActive {
		t.Fatalf("got %s, due date day should not count as overdue", got)
	}
}

func TestSideOf(t *testing.T) {
	l := Loan{LenderID: "aaaa", BorrowerID: "bbbb"}
	if s, ok := l.SideOf("aaaa"); !ok || s != "LENDER" {
		t.Fatalf("lender lookup: %v %v", s, ok)
	}
	if s, ok := l.SideOf("bbbb"); !ok || s != "BORROWER" {
		t.Fatalf("borrower lookup: %v %v", s, ok)
	}
	if _, ok := l.SideOf("cccc"); ok {
		t.Fatal("stranger must not resolve to a side")
	}
}
