package email

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/society/backend/internal/infrastructure/config"
)

// SMTPSender delivers transactional mail through an SMTP relay. Delivery is
// synchronous; callers that must not block on mail treat failures as
// best-effort.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewSMTPSender creates an SMTP-backed sender from the email settings
func NewSMTPSender(cfg config.EmailConfig, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// SendPaymentConfirmation mails a receipt for one month's maintenance payment
func (s *SMTPSender) SendPaymentConfirmation(ctx context.Context, to, name, month string, amount decimal.Decimal) error {
	subject := fmt.Sprintf("Maintenance payment received for %s", month)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour maintenance payment of PKR %s for %s has been received.\n\nThank you,\nSociety Management",
		name, amount.StringFixed(0), month,
	)
	return s.send(ctx, to, subject, body)
}

func (s *SMTPSender) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	s.logger.Debug("Email sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// NoopSender satisfies the mail interfaces without sending anything. It is
// wired when email delivery is disabled in configuration.
type NoopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates a sender that only logs
func NewNoopSender(logger *zap.Logger) *NoopSender {
	return &NoopSender{logger: logger}
}

// SendPaymentConfirmation logs the skipped delivery
func (s *NoopSender) SendPaymentConfirmation(ctx context.Context, to, name, month string, amount decimal.Decimal) error {
	s.logger.Debug("Email delivery disabled, skipping payment confirmation",
		zap.String("to", to),
		zap.String("month", month),
	)
	return nil
}
