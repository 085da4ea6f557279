package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a fire-and-forget presentation payload. It is never
// awaited or retried; delivery is best effort.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Notifier delivers a notification to one user. Implementations must
// not block the caller beyond the context deadline.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, n Notification)
}

// LogNotifier writes notifications to the structured log. Used as the
// default sink and in tests.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(_ context.Context, userID uuid.UUID, n Notification) {
	l.logger.Info("notification",
		"user_id", userID.String(),
		"title", n.Title,
		"description", n.Description,
		"severity", string(n.Severity),
	)
}

// Multi fans a notification out to several sinks.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, userID uuid.UUID, n Notification) {
	for _, nt := range m {
		if nt != nil {
			nt.Notify(ctx, userID, n)
		}
	}
}
