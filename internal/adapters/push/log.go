package push

import (
	"context"
	"log/slog"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
)

// LogSender only logs deliveries. It backs local runs without a push provider.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender writing to logger, or slog.Default when nil.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

var _ portssvc.PushSender = (*LogSender)(nil)

func (s *LogSender) Send(ctx context.Context, msg domain.PushMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Push delivery (log transport)",
		slog.String("token", maskToken(msg.Token)),
		slog.String("title", msg.Title),
		slog.Int("data_keys", len(msg.Data)),
	)
	return nil
}

// maskToken keeps the first characters of a device token for correlation.
func maskToken(token string) string {
	const visible = 10
	if len(token) <= visible {
		return token
	}
	return token[:visible] + "..."
}
