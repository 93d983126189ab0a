package delivery

import (
	"context"
	"encoding/json"
	"log"

	"hedniya-backend/internal/domain/notification"
)

// Sender is the external push/SMS/email collaborator. Dispatch is
// at-least-once, so implementations must be idempotent or tolerate
// duplicates.
type Sender interface {
	Send(ctx context.Context, n *notification.Notification) error
}

// LogSender writes each delivery to the process log, one line per channel.
// Stands in for the real gateway in dev and tests.
type LogSender struct{}

func NewLogSender() *LogSender { return &LogSender{} }

func (s *LogSender) Send(_ context.Context, n *notification.Notification) error {
	var p struct {
		Channels []string `json:"channels"`
	}
	_ = json.Unmarshal(n.Payload, &p)
	if len(p.Channels) == 0 {
		p.Channels = []string{"push"}
	}
	for _, ch := range p.Channels {
		log.Printf("delivery: loan=%d type=%s channel=%s scheduled_at=%s", n.LoanID, n.Type, ch, n.ScheduledAt.Format("2006-01-02T15:04"))
	}
	return nil
}
