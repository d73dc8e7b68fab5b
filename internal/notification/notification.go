package notification

import (
    "context"
    "log/slog"
)

const (
    // KindVerificationCode carries a one-time sign-in code to a phone.
    KindVerificationCode = "verification_code"
)

// Message describes an outbound SMS.
type Message struct {
    Kind        string
    Destination string
    Body        string
}

// Notifier delivers messages to a phone gateway.
type Notifier interface {
    Send(ctx context.Context, message Message) error
}

// LoggerNotifier stands in for an SMS gateway by writing each message to the logger.
type LoggerNotifier struct {
    logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
    return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(ctx context.Context, message Message) error {
    if n == nil || n.logger == nil {
        return nil
    }
    n.logger.InfoContext(ctx, "sms dispatched",
        slog.String("kind", message.Kind),
        slog.String("destination", message.Destination),
        slog.String("body", message.Body),
    )
    return nil
}
