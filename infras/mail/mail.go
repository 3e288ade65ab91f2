package mail

//go:generate go run go.uber.org/mock/mockgen -source=./mail.go -destination=./mocks/mail_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"rentopia/config"
	"rentopia/infras/otel"
	"rentopia/shared/constant"
	"rentopia/shared/timezone"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	goMail "github.com/wneessen/go-mail"
)

const (
	otelAttrRecipient = "mail.to"
	otelAttrSubject   = "mail.subject"

	defaultPort    = 587
	defaultTimeout = 15 * time.Second
)

var ErrNotConfigured = errors.New("smtp is not configured")

type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*goMail.Msg) error
}

type smtpMailer struct {
	config  *config.Config
	otel    otel.Otel
	client  sender
	timeout time.Duration
}

func New(cfg *config.Config, ot otel.Otel) Mailer {
	m := &smtpMailer{
		config:  cfg,
		otel:    ot,
		timeout: timeout(cfg),
	}

	if !configured(cfg) {
		return m
	}

	client, err := goMail.NewClient(cfg.Mail.Host,
		goMail.WithPort(port(cfg)),
		goMail.WithSMTPAuth(goMail.SMTPAuthPlain),
		goMail.WithUsername(cfg.Mail.Username),
		goMail.WithPassword(cfg.Mail.Password),
		goMail.WithTLSPolicy(goMail.TLSOpportunistic),
		goMail.WithTimeout(m.timeout),
	)
	if err != nil {
		log.Error().Err(err).Str("host", cfg.Mail.Host).Msg("failed to create smtp client, mail disabled")

		return m
	}

	m.client = client

	return m
}

func configured(cfg *config.Config) bool {
	c := cfg.Mail

	return c.Enable && c.Host != constant.Empty && c.Username != constant.Empty && c.Password != constant.Empty
}

func port(cfg *config.Config) int {
	p, err := strconv.Atoi(cfg.Mail.Port)
	if err != nil || p <= 0 {
		return defaultPort
	}

	return p
}

func timeout(cfg *config.Config) time.Duration {
	if cfg.Mail.TimeoutSecs <= 0 {
		return defaultTimeout
	}

	return time.Duration(cfg.Mail.TimeoutSecs) * time.Second
}

func (m *smtpMailer) fromAddress() string {
	if m.config.Mail.From != constant.Empty {
		return m.config.Mail.From
	}

	return m.config.Mail.Username
}

// Send delivers msg over SMTP, giving up once the configured timeout elapses.
func (m *smtpMailer) Send(ctx context.Context, msg Message) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		otelAttrRecipient: msg.To,
		otelAttrSubject:   msg.Subject,
	})

	if m.client == nil {
		log.Warn().Str("to", msg.To).Msg("mail skipped, smtp not configured")

		return ErrNotConfigured
	}

	composed, err := Compose(m.config.Mail.FromName, m.fromAddress(), msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err = m.client.DialAndSendWithContext(ctx, composed); err != nil {
		log.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("failed to send mail")

		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")

	return nil
}

// Compose builds msg as multipart/alternative when both bodies are present.
func Compose(fromName, fromAddress string, msg Message) (*goMail.Msg, error) {
	composed := goMail.NewMsg()

	if err := composed.FromFormat(fromName, fromAddress); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}

	if err := composed.AddToFormat(msg.ToName, msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	composed.Subject(msg.Subject)
	composed.SetDateWithValue(timezone.Now())

	switch {
	case msg.Text != constant.Empty && msg.HTML != constant.Empty:
		composed.SetBodyString(goMail.TypeTextPlain, msg.Text)
		composed.AddAlternativeString(goMail.TypeTextHTML, msg.HTML)
	case msg.HTML != constant.Empty:
		composed.SetBodyString(goMail.TypeTextHTML, msg.HTML)
	default:
		composed.SetBodyString(goMail.TypeTextPlain, msg.Text)
	}

	return composed, nil
}
