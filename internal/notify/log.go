// Package notify delivers audit notifications to administrator accounts. The
// original dashboard only simulated email/WhatsApp delivery; these sinks are
// the real-world stand-ins: a structured log line, or a Kafka message for an
// external delivery pipeline to pick up.
package notify

import (
	"context"
	"log/slog"

	"syndik/internal/domain"
)

// Log writes one structured record per delivery. This is the default sink and
// mirrors the source's behavior of logging instead of actually sending.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (l *Log) Send(ctx context.Context, recipient domain.Account, entry domain.AuditEntry) error {
	l.logger.InfoContext(ctx, "audit notification",
		"recipient", RecipientName(recipient),
		"recipient_id", recipient.ID,
		"entry_id", entry.ID,
		"operation", entry.Operation,
		"entity", entry.Entity,
		"severity", entry.Severity,
		"description", entry.Description,
	)
	return nil
}
