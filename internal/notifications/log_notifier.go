package notifications

import (
	"context"
	"log/slog"
	"strings"
)

// LogNotifier is the dev/test stand-in: it only logs what would be sent.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendRegistrationConfirmation(ctx context.Context, in RegistrationConfirmation) error {
	n.log.InfoContext(ctx, "notification.registration_confirmation",
		"email", in.Email,
		"name", in.Name,
		"event", in.EventID,
		"registration", in.RegistrationID,
	)
	return nil
}

func (n *LogNotifier) SendContactReceipt(ctx context.Context, in ContactReceipt) error {
	n.log.InfoContext(ctx, "notification.contact_receipt",
		"email", in.Email,
		"name", in.Name,
		"topics", strings.Join(in.Topics, ","),
		"message_id", in.MessageID,
	)
	return nil
}
