package notifications

import (
	"context"

	"go.uber.org/zap"
	"plateshare.backend/internal/domain/notifications"
	"plateshare.backend/pkg/logger"
)

// LogNotifier is a Notifier that logs each dispatch instead of delivering
// it. Used wherever no real mail transport is configured; delivery
// mechanics live outside this service.
type LogNotifier struct{}

// NewLogNotifier creates a new logging notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Send logs the notification payload and reports success
func (n *LogNotifier) Send(ctx context.Context, toEmail, toName string, kind notifications.Kind, args map[string]string) bool {
	fields := []zap.Field{
		zap.String("to_email", toEmail),
		zap.String("to_name", toName),
		zap.String("kind", string(kind)),
	}
	for k, v := range args {
		fields = append(fields, zap.String("arg_"+k, v))
	}
	logger.Info(ctx, "notification dispatched", fields...)
	return true
}
