// Package smtp delivers notification emails through an authenticated SMTP
// account.
package smtp

import (
	"context"
	"fmt"
	"time"

	"bloomify/internal/core/ports"

	"github.com/wneessen/go-mail"
)

const defaultTimeout = 30 * time.Second

// Config describes the mail account.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// Mailer implements ports.Mailer. A connection is opened for every message.
type Mailer struct {
	cfg Config
}

// NewMailer creates a mailer for the given account.
func NewMailer(cfg Config) *Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Mailer{cfg: cfg}
}

// Send delivers msg. It returns once the server accepted or refused it.
func (m *Mailer) Send(ctx context.Context, msg ports.MailMessage) error {
	built, err := BuildMessage(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithTimeout(m.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, built); err != nil {
		return fmt.Errorf("send mail via %s:%d: %w", m.cfg.Host, m.cfg.Port, err)
	}
	return nil
}

// BuildMessage converts msg into a plain-text MIME message.
func BuildMessage(msg ports.MailMessage) (*mail.Msg, error) {
	built := mail.NewMsg()
	if err := built.From(msg.From); err != nil {
		return nil, fmt.Errorf("set sender %q: %w", msg.From, err)
	}
	if err := built.To(msg.To...); err != nil {
		return nil, fmt.Errorf("set recipients: %w", err)
	}
	if len(msg.Cc) > 0 {
		if err := built.Cc(msg.Cc...); err != nil {
			return nil, fmt.Errorf("set cc recipients: %w", err)
		}
	}
	built.Subject(msg.Subject)
	built.SetBodyString(mail.TypeTextPlain, msg.Body)
	return built, nil
}
