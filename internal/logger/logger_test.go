package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betimvpp/NlwSpacetimeServer/internal/config"
)

func TestNewLoggerProductionJSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"

	var buf bytes.Buffer
	log := newLogger(cfg, nil, &buf)
	log.Info().Str("memory_id", "m-1").Msg("memory created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, config.ServiceName, entry["service"])
	assert.Equal(t, "production", entry["environment"])
	assert.Equal(t, "m-1", entry["memory_id"])
	assert.Equal(t, "memory created", entry["message"])
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	log := newLogger(cfg, nil, &buf)
	log.Info().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestLoggerServiceWithoutLicense(t *testing.T) {
	svc := NewLoggerService(config.DefaultObservabilityConfig())

	assert.Nil(t, svc.GetApplication())
	assert.NotPanics(t, svc.Shutdown)

	var nilSvc *LoggerService
	assert.Nil(t, nilSvc.GetApplication())
}

func TestWithTraceContextNilTransaction(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	log := WithTraceContext(base, nil)
	log.Info().Msg("no trace")

	assert.NotContains(t, buf.String(), "trace.id")
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, 5, GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, 4, GetPgxTraceLogLevel(zerolog.InfoLevel))
	assert.Equal(t, 3, GetPgxTraceLogLevel(zerolog.WarnLevel))
	assert.Equal(t, 2, GetPgxTraceLogLevel(zerolog.ErrorLevel))
	assert.Equal(t, 1, GetPgxTraceLogLevel(zerolog.Disabled))
}
