// AngelaMos | 2026
// mailer.go

package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/angelamos/blog-api/internal/config"
)

// Mailer delivers account emails carrying a link the user must follow.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, link string) error
	SendVerification(ctx context.Context, to, link string) error
}

// SMTP sends through a single authenticated SMTP account.
type SMTP struct {
	client *mail.Client
	from   string
}

func NewSMTP(cfg config.SMTPConfig) (*SMTP, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTP{
		client: client,
		from:   cfg.From,
	}, nil
}

func (s *SMTP) SendPasswordReset(ctx context.Context, to, link string) error {
	return s.send(ctx, to, "Password Reset", linkBody("reset your password", link))
}

func (s *SMTP) SendVerification(ctx context.Context, to, link string) error {
	return s.send(ctx, to, "Account Verification", linkBody("verify your email", link))
}

func (s *SMTP) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()

	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}

func linkBody(action, link string) string {
	return fmt.Sprintf(`
	<div>
	<p>Click <a href=%q>here</a> to %s</p>
	<p>Or</p>
	<p>you can copy the link below and paste it in your browser</p>
	<p>%s</p>
	</div>
	`, link, action, link)
}
