package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/crm-backend/pkg/config"
)

// Message is an outbound email
type Message struct {
	Subject    string
	Body       string
	From       string
	Recipients []string
}

// Sender delivers outbound email. Implementations return an error on failure;
// deciding whether that failure matters is the caller's business.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// SMTPSender sends mail through a plain SMTP relay
type SMTPSender struct {
	addr     string
	host     string
	username string
	password string
	logger   *zap.Logger
}

// NewSMTPSender creates a new SMTP sender from configuration
func NewSMTPSender(cfg *config.Config, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{
		addr:     cfg.GetMailAddr(),
		host:     cfg.Mail.Host,
		username: cfg.Mail.Username,
		password: cfg.Mail.Password,
		logger:   logger,
	}
}

// Send delivers the message, retrying transient failures with exponential
// backoff before giving up.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if len(msg.Recipients) == 0 {
		return fmt.Errorf("no recipients")
	}

	payload := buildPayload(msg)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	operation := func() error {
		return smtp.SendMail(s.addr, auth, msg.From, msg.Recipients, payload)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	s.logger.Debug("mail.sent",
		zap.String("subject", msg.Subject),
		zap.Int("recipients", len(msg.Recipients)),
	)
	return nil
}

func buildPayload(msg *Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.Recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

// NoopSender discards messages. Used when MAIL_ENABLED is false so the rest
// of the notification path behaves identically in development.
type NoopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates a sender that only logs
func NewNoopSender(logger *zap.Logger) *NoopSender {
	return &NoopSender{logger: logger}
}

// Send logs the message and reports success
func (s *NoopSender) Send(_ context.Context, msg *Message) error {
	s.logger.Info("mail.noop",
		zap.String("subject", msg.Subject),
		zap.Int("recipients", len(msg.Recipients)),
	)
	return nil
}
