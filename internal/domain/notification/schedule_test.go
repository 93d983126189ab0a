package notification

import (
	"encoding/json"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildSchedule_CanonicalTimeline(t *testing.T) {
	due := day(2025, 3, 10)
	got := BuildSchedule(due, time.UTC, 9, 10)

	want := []struct {
		typ Type
		at  time.Time
	}{
		{TypeDueSoon, time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)},
		{TypeDueSoon, time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC)},
		{TypeDueSoon, time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC)},
		{TypeDDay, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
		{TypePastDue, time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)},
		{TypePastDue, time.Date(2025, 3, 17, 9, 0, 0, 0, time.UTC)},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Type != w.typ || !got[i].ScheduledAt.Equal(w.at) {
			t.Errorf("row %d: got %s@%s want %s@%s", i, got[i].Type, got[i].ScheduledAt, w.typ, w.at)
		}
	}
}

func TestBuildSchedule_DDayCarriesBothChannels(t *testing.T) {
	got := BuildSchedule(day(2025, 3, 10), time.UTC, 9, 2)
	var dday *Notification
	for i := range got {
		if got[i].Type == TypeDDay {
			dday = &got[i]
		}
	}
	if dday == nil {
		t.Fatal("no D_DAY row")
	}
	var p struct {
		Channels []string `json:"channels"`
	}
	if err := json.Unmarshal(dday.Payload, &p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if len(p.Channels) != 2 || p.Channels[0] != "sms" || p.Channels[1] != "email" {
		t.Fatalf("channels=%v, want sms+email", p.Channels)
	}
}

func TestBuildSchedule_TinyHorizonStillHasFirstPastDue(t *testing.T) {
	got := BuildSchedule(day(2025, 3, 10), time.UTC, 9, 0)
	n := 0
	for _, x := range got {
		if x.Type == TypePastDue {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("got %d PAST_DUE rows, want exactly the first occurrence", n)
	}
}

func TestBuildSchedule_ReminderHourInLocation(t *testing.T) {
	loc := time.FixedZone("WET+1", 3600)
	got := BuildSchedule(day(2025, 3, 10), loc, 9, 2)
	first := got[0].ScheduledAt
	if first.Hour() != 9 || first.Location() != loc {
		t.Fatalf("scheduled at %s, want 09:00 in %v", first, loc)
	}
}

func TestPastDueAfter(t *testing.T) {
	due := day(2025, 3, 10)
	after := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	got := PastDueAfter(due, after, time.UTC, 9, 10)

	// cadence is 03-12, 03-17, 03-22, 03-27, ...: strictly after 03-20 12:00
	// and within 10 days of it
	want := []time.Time{
		time.Date(2025, 3, 22, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 27, 9, 0, 0, 0, time.UTC),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Type != TypePastDue || !got[i].ScheduledAt.Equal(w) {
			t.Errorf("row %d: got %s@%s want PAST_DUE@%s", i, got[i].Type, got[i].ScheduledAt, w)
		}
	}
}

func TestDateChanged(t *testing.T) {
	now := time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC)
	n := DateChanged(day(2025, 3, 10), day(2025, 4, 1), now)
	if n.Type != TypeDateChanged || !n.ScheduledAt.Equal(now) {
		t.Fatalf("got %s@%s, want DATE_CHANGED scheduled immediately", n.Type, n.ScheduledAt)
	}
	var p struct {
		Old string `json:"old_due_date"`
		New string `json:"new_due_date"`
	}
	if err := json.Unmarshal(n.Payload, &p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.Old != "2025-03-10" || p.New != "2025-04-01" {
		t.Fatalf("payload dates: %+v", p)
	}
}
