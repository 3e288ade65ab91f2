package mail_test

import (
	"bytes"
	"context"
	"io"
	"mime"
	"net/mail"
	"rentopia/config"
	rMail "rentopia/infras/mail"
	"rentopia/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, fromName, fromAddress string, msg rMail.Message) (*mail.Message, string) {
	t.Helper()

	composed, err := rMail.Compose(fromName, fromAddress, msg)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = composed.WriteTo(&buf)
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	return parsed, buf.String()
}

func TestCompose(t *testing.T) {
	parsed, raw := render(t, "Rentopia", "noreply@rentopia.test", rMail.Message{
		To:      "guest@example.com",
		ToName:  "Guest",
		Subject: "Booking Confirmed - Sea View",
		HTML:    "<p>Hi Guest</p>",
		Text:    "Hi Guest",
	})

	from, err := mail.ParseAddress(parsed.Header.Get("From"))
	require.NoError(t, err)
	assert.Equal(t, "Rentopia", from.Name)
	assert.Equal(t, "noreply@rentopia.test", from.Address)

	to, err := mail.ParseAddress(parsed.Header.Get("To"))
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", to.Address)

	mediaType, _, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Booking Confirmed - Sea View", subject)

	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "Hi Guest")
}

func TestCompose_HTMLOnly(t *testing.T) {
	parsed, _ := render(t, "", "a@b.c", rMail.Message{To: "x@y.z", Subject: "s", HTML: "<b>only html</b>"})

	mediaType, _, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "text/html", mediaType)

	body, err := io.ReadAll(parsed.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "text/plain")
}

func TestCompose_InvalidRecipient(t *testing.T) {
	_, err := rMail.Compose("Rentopia", "noreply@rentopia.test", rMail.Message{To: "not an address", Subject: "s", Text: "t"})

	assert.Error(t, err)
}

func TestSend_NotConfigured(t *testing.T) {
	cfg := &config.Config{}
	cfg.Mail.Enable = true
	cfg.Mail.Host = "smtp.example.com"

	mailer := rMail.New(cfg, mocks.NewOtel())

	err := mailer.Send(context.Background(), rMail.Message{To: "x@y.z", Subject: "s", Text: "t"})
	assert.ErrorIs(t, err, rMail.ErrNotConfigured)
}
