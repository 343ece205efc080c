package notify

import (
	"context"
	"log/slog"
	"sync"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
)

// SentMessage is one notification captured by the recording notifier.
type SentMessage struct {
	ChatID      string
	OrderNumber string
	Approved    *bool
}

// RecordingNotifier is the no-token variant: it logs and records every
// notification instead of calling Telegram, and always reports success.
// Used in development and demo environments.
type RecordingNotifier struct {
	mu       sync.Mutex
	messages []SentMessage
	logger   *slog.Logger
}

// NewRecordingNotifier creates a notifier that records instead of sending.
func NewRecordingNotifier(logger *slog.Logger) *RecordingNotifier {
	return &RecordingNotifier{
		logger: logger.With("component", "recording_notifier"),
	}
}

// NotifyAssignment records the assignment notification.
func (n *RecordingNotifier) NotifyAssignment(_ context.Context, d *driver.Driver,
	o *order.Order, distanceKm float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.messages = append(n.messages, SentMessage{
		ChatID:      d.ChatID(),
		OrderNumber: o.OrderNumber(),
	})
	n.logger.Info("mock assignment notification",
		"driver", d.Name(), "order", o.OrderNumber(), "distanceKm", distanceKm)
	return nil
}

// NotifyReviewOutcome records the review notification.
func (n *RecordingNotifier) NotifyReviewOutcome(_ context.Context, d *driver.Driver, approved bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.messages = append(n.messages, SentMessage{
		ChatID:   d.ChatID(),
		Approved: &approved,
	})
	n.logger.Info("mock review notification", "driver", d.Name(), "approved", approved)
	return nil
}

// Messages returns a copy of everything recorded so far.
func (n *RecordingNotifier) Messages() []SentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]SentMessage, len(n.messages))
	copy(out, n.messages)
	return out
}
