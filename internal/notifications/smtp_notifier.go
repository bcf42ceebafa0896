package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/mooncircle/mooncircle/internal/observability"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// AdminAddr receives a copy of every registration and contact mail.
	AdminAddr string
}

// SMTPNotifier sends the confirmation mails over SMTP. A fresh dial per send
// keeps the client free of shared connection state.
type SMTPNotifier struct {
	cfg  SMTPConfig
	prom *observability.Prom
}

func NewSMTPNotifier(cfg SMTPConfig, prom *observability.Prom) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, prom: prom}
}

func (n *SMTPNotifier) observe(kind string, fn func() error) error {
	if n.prom != nil {
		return n.prom.ObserveMail(kind, fn)
	}
	return fn()
}

func (n *SMTPNotifier) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}

	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}

	return mail.NewClient(n.cfg.Host, opts...)
}

func (n *SMTPNotifier) SendRegistrationConfirmation(ctx context.Context, in RegistrationConfirmation) error {
	return n.observe("registration_confirmation", func() error {
		body := fmt.Sprintf(
			"Cześć %s!\n\nTwoje zgłoszenie na %q zostało przyjęte.\n\nTermin: %s\nMiejsce: %s\n\nDo zobaczenia!\n",
			in.Name, in.EventTitle, in.EventDate, in.EventLocation,
		)

		msg, err := n.newMsg(in.Email, "Potwierdzenie zapisu: "+in.EventTitle, body)
		if err != nil {
			return err
		}

		adminBody := fmt.Sprintf(
			"Nowe zgłoszenie.\n\nWydarzenie: %s (%s)\nUczestnik: %s <%s>\nRejestracja: %s\n",
			in.EventTitle, in.EventDate, in.Name, in.Email, in.RegistrationID,
		)

		adminMsg, err := n.newMsg(n.cfg.AdminAddr, "Nowe zgłoszenie: "+in.EventTitle, adminBody)
		if err != nil {
			return err
		}

		return n.send(ctx, msg, adminMsg)
	})
}

func (n *SMTPNotifier) SendContactReceipt(ctx context.Context, in ContactReceipt) error {
	return n.observe("contact_receipt", func() error {
		body := fmt.Sprintf(
			"Cześć %s!\n\nDziękujemy za wiadomość. Odpowiemy najszybciej jak to możliwe.\n",
			in.Name,
		)

		msg, err := n.newMsg(in.Email, "Dziękujemy za wiadomość", body)
		if err != nil {
			return err
		}

		adminBody := fmt.Sprintf(
			"Nowa wiadomość z formularza kontaktowego.\n\nOd: %s <%s>\nTematy: %s\n\n%s\n",
			in.Name, in.Email, strings.Join(in.Topics, ", "), in.Message,
		)

		adminMsg, err := n.newMsg(n.cfg.AdminAddr, "Formularz kontaktowy: "+in.Name, adminBody)
		if err != nil {
			return err
		}

		return n.send(ctx, msg, adminMsg)
	})
}

func (n *SMTPNotifier) newMsg(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(n.cfg.From); err != nil {
		return nil, fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("mail to: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return msg, nil
}

func (n *SMTPNotifier) send(ctx context.Context, msgs ...*mail.Msg) error {
	c, err := n.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	defer func() { _ = c.Close() }()

	return c.DialAndSendWithContext(ctx, msgs...)
}
