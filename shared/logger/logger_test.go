package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentopia/config"
	"rentopia/shared/logger"
)

func restoreGlobals(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	restoreGlobals(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestSetup_Level(t *testing.T) {
	tests := []struct {
		logLevel string
		want     zerolog.Level
	}{
		{logLevel: "debug", want: zerolog.DebugLevel},
		{logLevel: "info", want: zerolog.InfoLevel},
		{logLevel: "warn", want: zerolog.WarnLevel},
		{logLevel: "error", want: zerolog.ErrorLevel},
		{logLevel: "not-a-level", want: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			restoreGlobals(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.Setup(cfg, &bytes.Buffer{})

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestSetup_ProductionWritesJSON(t *testing.T) {
	restoreGlobals(t)

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "rentopia"

	var buf bytes.Buffer
	logger.Setup(cfg, &buf)

	log.Info().Str("booking_id", "b-1").Msg("booking confirmed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "rentopia", line["app"])
	assert.Equal(t, "b-1", line["booking_id"])
	assert.Equal(t, "booking confirmed", line["message"])
}

func TestSetup_DevelopmentWritesConsole(t *testing.T) {
	restoreGlobals(t)

	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.Server.LogLevel = "info"

	var buf bytes.Buffer
	logger.Setup(cfg, &buf)

	log.Info().Msg("server started")

	assert.Contains(t, buf.String(), "server started")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestErrorWithStack(t *testing.T) {
	restoreGlobals(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.ErrorWithStack(errors.New("payment gateway unreachable"))

	assert.Contains(t, buf.String(), "payment gateway unreachable")
	assert.Contains(t, buf.String(), `"level":"error"`)
}
