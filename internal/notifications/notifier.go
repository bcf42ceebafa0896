package notifications

import "context"

type RegistrationConfirmation struct {
	RegistrationID string
	EventID        string
	EventTitle     string
	EventDate      string // already localized for display
	EventLocation  string
	Name           string
	Email          string
}

type ContactReceipt struct {
	MessageID string
	Name      string
	Email     string
	Topics    []string
	Message   string
}

// Notifier delivers the two transactional mails the site sends. Every send
// also produces an admin copy. Failures never undo the committed row the
// notification follows.
type Notifier interface {
	SendRegistrationConfirmation(ctx context.Context, input RegistrationConfirmation) error
	SendContactReceipt(ctx context.Context, input ContactReceipt) error
}
