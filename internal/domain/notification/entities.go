package notification

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Type string

const (
	TypeDueSoon     Type = "DUE_SOON"
	TypeDDay        Type = "D_DAY"
	TypePastDue     Type = "PAST_DUE"
	TypeDateChanged Type = "DATE_CHANGED"
)

// Notification is one scheduled reminder row. sent_at null means pending;
// once set it is immutable and the row is history.
type Notification struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID uint64 `gorm:"index;constraint:OnDelete:CASCADE" json:"-"`

	Type        Type           `gorm:"size:32" json:"type"`
	ScheduledAt time.Time      `gorm:"index" json:"scheduled_at"`
	SentAt      *time.Time     `json:"sent_at"`
	Payload     datatypes.JSON `gorm:"type:json" json:"payload"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

const dateLayout = "2006-01-02"

// dueSoonDays is how many calendar days strictly before the due date get a
// daily reminder. pastDueDelayDays/pastDueStepDays shape the overdue cadence:
// first nag two days after the due date, then every five days.
const (
	dueSoonDays      = 3
	pastDueDelayDays = 2
	pastDueStepDays  = 5
)

func payload(fields map[string]any) datatypes.JSON {
	b, _ := json.Marshal(fields)
	return b
}

// BuildSchedule derives the canonical reminder timeline for a due date:
//
//   - DUE_SOON at reminder time on each of the 3 days strictly before due;
//   - one D_DAY row on the due date, fanned out to SMS and email by the
//     sender (single row, single sent_at, single retry unit);
//   - PAST_DUE from due+2d stepping every 5d, materialized through
//     due+horizonDays (at least the first occurrence).
//
// Reminder instants are hour:00 in loc. The function is pure; callers persist
// the rows and stamp LoanID.
func BuildSchedule(dueDate time.Time, loc *time.Location, hour int, horizonDays int) []Notification {
	at := func(d time.Time) time.Time {
		y, m, day := d.Date()
		return time.Date(y, m, day, hour, 0, 0, 0, loc)
	}
	due := dueDate.Format(dateLayout)

	var out []Notification
	for i := dueSoonDays; i >= 1; i-- {
		out = append(out, Notification{
			Type:        TypeDueSoon,
			ScheduledAt: at(dueDate.AddDate(0, 0, -i)),
			Payload:     payload(map[string]any{"due_date": due, "days_left": i, "channels": []string{"push"}}),
		})
	}
	out = append(out, Notification{
		Type:        TypeDDay,
		ScheduledAt: at(dueDate),
		Payload:     payload(map[string]any{"due_date": due, "channels": []string{"sms", "email"}}),
	})
	for i := pastDueDelayDays; i <= horizonDays || i == pastDueDelayDays; i += pastDueStepDays {
		out = append(out, Notification{
			Type:        TypePastDue,
			ScheduledAt: at(dueDate.AddDate(0, 0, i)),
			Payload:     payload(map[string]any{"due_date": due, "days_late": i, "channels": []string{"push"}}),
		})
	}
	return out
}

// PastDueAfter returns the PAST_DUE occurrences falling strictly after
// `after` and no later than after+horizonDays. The sweep uses it to top up
// the schedule of a loan still overdue once its materialized rows ran dry.
func PastDueAfter(dueDate, after time.Time, loc *time.Location, hour int, horizonDays int) []Notification {
	at := func(d time.Time) time.Time {
		y, m, day := d.Date()
		return time.Date(y, m, day, hour, 0, 0, 0, loc)
	}
	due := dueDate.Format(dateLayout)
	limit := after.AddDate(0, 0, horizonDays)

	var out []Notification
	for i := pastDueDelayDays; ; i += pastDueStepDays {
		t := at(dueDate.AddDate(0, 0, i))
		if t.After(limit) {
			break
		}
		if !t.After(after) {
			continue
		}
		out = append(out, Notification{
			Type:        TypePastDue,
			ScheduledAt: t,
			Payload:     payload(map[string]any{"due_date": due, "days_late": i, "channels": []string{"push"}}),
		})
	}
	return out
}

// DateChanged builds the immediate alert emitted when a due-date change
// finalizes. It is scheduled at now, independent of the reminder timeline.
func DateChanged(oldDue, newDue, now time.Time) Notification {
	return Notification{
		Type:        TypeDateChanged,
		ScheduledAt: now,
		Payload: payload(map[string]any{
			"old_due_date": oldDue.Format(dateLayout),
			"new_due_date": newDue.Format(dateLayout),
			"channels":     []string{"push"},
		}),
	}
}
