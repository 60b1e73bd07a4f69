// Package mailer is the outbound notification channel. Delivery is always
// best-effort: the Dispatcher is the single point where send failures are
// caught, logged and discarded, so callers never branch on them.
package mailer

import (
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/nattapon-dev/hotel-booking-api/internal/config"
)

// Notifier is the abstract channel. Implementations may fail; the
// Dispatcher absorbs that.
type Notifier interface {
	Send(to, subject, body string) error
}

type SMTPNotifier struct {
	client *mail.Client
	from   string
}

func NewSMTP(cfg *config.Config) (*SMTPNotifier, error) {
	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUser),
		mail.WithPassword(cfg.SMTPPass),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("mailer: failed to build SMTP client: %w", err)
	}

	return &SMTPNotifier{client: client, from: cfg.EmailFrom}, nil
}

func (s *SMTPNotifier) Send(to, subject, body string) error {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("mailer: invalid sender: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("mailer: invalid recipient: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, body)

	if err := s.client.DialAndSend(m); err != nil {
		return fmt.Errorf("mailer: send failed: %w", err)
	}
	return nil
}

// Noop stands in when SMTP is unconfigured.
type Noop struct{}

func (Noop) Send(string, string, string) error { return nil }

// Dispatcher wraps a Notifier and swallows failures. This is the only
// place a notification error is observed.
type Dispatcher struct {
	notifier Notifier
	log      *zap.Logger
}

func NewDispatcher(notifier Notifier, log *zap.Logger) *Dispatcher {
	return &Dispatcher{notifier: notifier, log: log}
}

// Dispatch attempts delivery and logs any failure. It never reports one.
func (d *Dispatcher) Dispatch(to, subject, body string) {
	if err := d.notifier.Send(to, subject, body); err != nil {
		d.log.Warn("notification delivery failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

// FromConfig picks SMTP when a host is configured, Noop otherwise.
func FromConfig(cfg *config.Config, log *zap.Logger) (*Dispatcher, error) {
	if cfg.SMTPHost == "" {
		log.Info("SMTP not configured, notifications disabled")
		return NewDispatcher(Noop{}, log), nil
	}

	smtp, err := NewSMTP(cfg)
	if err != nil {
		return nil, err
	}
	return NewDispatcher(smtp, log), nil
}
