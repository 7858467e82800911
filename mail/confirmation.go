package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"
	"registration-backend/errs"
	"registration-backend/events"
	"registration-backend/log"
)

const (
	ConfirmationSubject = "You have successfully registered!"

	sendTimeout = 10 * time.Second
)

// Sender is the part of mailgun.Mailgun the notifier needs.
type Sender interface {
	NewMessage(from, subject, text string, to ...string) *mailgun.Message
	Send(ctx context.Context, m *mailgun.Message) (string, string, error)
}

type Notifier struct {
	mg   Sender
	from string
}

func NewNotifier(domain, apiKey, from string) *Notifier {
	return &Notifier{
		mg:   mailgun.NewMailgun(domain, apiKey),
		from: from,
	}
}

func NewNotifierWithSender(mg Sender, from string) *Notifier {
	return &Notifier{mg: mg, from: from}
}

// SendConfirmation mails the registrant their ticket.
func (n *Notifier) SendConfirmation(ctx context.Context, ev *events.RegistrationEvent, ticket string) error {
	m := n.mg.NewMessage(n.from, ConfirmationSubject, ConfirmationBody(ev, ticket), ev.Email)
	m.AddTag("registration")

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, id, err := n.mg.Send(ctx, m)
	if err != nil {
		log.Logger.Error("mailgun send failed", zap.Error(err), zap.String("registration_id", ev.RegistrationID))
		return errs.ErrMail
	}

	log.Logger.Info("confirmation sent", zap.String("message_id", id), zap.String("registration_id", ev.RegistrationID))
	return nil
}

func ConfirmationBody(ev *events.RegistrationEvent, ticket string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", ev.FullName)
	b.WriteString("Thank you for registering. See you at the event!\n\n")
	fmt.Fprintf(&b, "Year:   %s\n", ev.CurrentYear)
	fmt.Fprintf(&b, "Branch: %s\n\n", ev.Branch)
	b.WriteString("Show this ticket at the entrance:\n\n")
	b.WriteString(ticket)
	b.WriteString("\n")

	return b.String()
}
