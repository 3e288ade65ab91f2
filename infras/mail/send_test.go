package mail

import (
	"context"
	"rentopia/config"
	"rentopia/infras/otel/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	goMail "github.com/wneessen/go-mail"
)

type stalledServer struct {
	calls int
}

func (s *stalledServer) DialAndSendWithContext(ctx context.Context, _ ...*goMail.Msg) error {
	s.calls++
	<-ctx.Done()

	return ctx.Err()
}

type recordingServer struct {
	sent []*goMail.Msg
}

func (s *recordingServer) DialAndSendWithContext(_ context.Context, messages ...*goMail.Msg) error {
	s.sent = append(s.sent, messages...)

	return nil
}

func newTestMailer(client sender, wait time.Duration) *smtpMailer {
	cfg := &config.Config{}
	cfg.Mail.Username = "mailer@rentopia.test"
	cfg.Mail.FromName = "Rentopia"

	return &smtpMailer{config: cfg, otel: mocks.NewOtel(), client: client, timeout: wait}
}

func TestSend_GivesUpOnStalledServer(t *testing.T) {
	server := &stalledServer{}
	mailer := newTestMailer(server, 50*time.Millisecond)

	done := make(chan error, 1)

	go func() {
		done <- mailer.Send(context.WithoutCancel(context.Background()), Message{To: "guest@example.com", Subject: "s", Text: "t"})
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 1, server.calls)
	case <-time.After(2 * time.Second):
		t.Fatal("Send did not return after the smtp timeout")
	}
}

func TestSend_FallsBackToUsernameAsSender(t *testing.T) {
	server := &recordingServer{}
	mailer := newTestMailer(server, time.Second)

	err := mailer.Send(context.Background(), Message{To: "guest@example.com", Subject: "s", Text: "t"})

	assert.NoError(t, err)
	assert.Len(t, server.sent, 1)
}

func TestSettingsDefaults(t *testing.T) {
	cfg := &config.Config{}

	assert.Equal(t, defaultPort, port(cfg))
	assert.Equal(t, defaultTimeout, timeout(cfg))

	cfg.Mail.Port = "2525"
	cfg.Mail.TimeoutSecs = 3

	assert.Equal(t, 2525, port(cfg))
	assert.Equal(t, 3*time.Second, timeout(cfg))
}
