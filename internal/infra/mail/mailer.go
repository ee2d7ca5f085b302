// Package mail delivers transactional email through an SMTP relay.
package mail

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/fx"
)

const (
	defaultPort    = 587
	defaultTimeout = 15 * time.Second
)

// sender is the part of the go-mail client used by the mailer.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

type smtpMailer struct {
	client   sender
	fromName string
	from     string
	logger   *slog.Logger
}

// Params holds dependencies for the mailer, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewMailer builds an SMTP mailer from config. Without a configured host every
// message is logged and dropped.
func NewMailer(params Params) (service.Mailer, error) {
	cfg := params.Config.Mail
	if cfg == nil || cfg.Host == "" {
		params.Logger.Warn("SMTP relay not configured, outbound email will only be logged")

		return &logMailer{logger: params.Logger}, nil
	}

	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTimeout(timeout),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if cfg.SSL {
		opts = append(opts, gomail.WithSSL())
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create SMTP client")
	}

	return newSMTPMailer(client, cfg.FromName, cfg.From, params.Logger), nil
}

func newSMTPMailer(client sender, fromName, from string, logger *slog.Logger) *smtpMailer {
	return &smtpMailer{
		client:   client,
		fromName: fromName,
		from:     from,
		logger:   logger,
	}
}

// Send composes an HTML message with its file attachments and delivers it.
func (m *smtpMailer) Send(ctx context.Context, msg *service.EmailMessage) error {
	message, err := m.compose(msg)
	if err != nil {
		return err
	}

	if err := m.client.DialAndSendWithContext(ctx, message); err != nil {
		return errors.Wrapf(err, "failed to send email to %s", msg.To)
	}

	m.logger.Debug("Email sent",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("attachments", len(msg.Attachments)),
	)

	return nil
}

func (m *smtpMailer) compose(msg *service.EmailMessage) (*gomail.Msg, error) {
	message := gomail.NewMsg()
	if err := message.FromFormat(m.fromName, m.from); err != nil {
		return nil, errors.Wrap(err, "invalid sender address")
	}
	if err := message.To(msg.To); err != nil {
		return nil, errors.Wrapf(err, "invalid recipient address %q", msg.To)
	}
	message.Subject(msg.Subject)
	message.SetDate()
	message.SetMessageID()
	message.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)

	for _, attachment := range msg.Attachments {
		message.AttachFile(attachment.Path, gomail.WithFileName(attachment.Filename))
	}

	return message, nil
}

type logMailer struct {
	logger *slog.Logger
}

func (m *logMailer) Send(_ context.Context, msg *service.EmailMessage) error {
	m.logger.Info("Email not sent, SMTP relay not configured",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return nil
}

// Module provides the mailer.
var Module = fx.Options(
	fx.Provide(NewMailer),
)
