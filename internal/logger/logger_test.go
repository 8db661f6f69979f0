package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log := New()
	assert.NotEqual(t, zerolog.Disabled, log.GetLevel(), "expected logger to be enabled")
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Msg("test message")

	assert.Contains(t, buf.String(), "test message")
}

func TestNewFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantLevel zerolog.Level
		wantErr   bool
	}{
		{name: "defaults", opts: Options{}, wantLevel: zerolog.InfoLevel},
		{name: "debug json", opts: Options{Level: "debug", Format: "json"}, wantLevel: zerolog.DebugLevel},
		{name: "upper case level", opts: Options{Level: "WARN", Format: "console"}, wantLevel: zerolog.WarnLevel},
		{name: "bad level", opts: Options{Level: "loud"}, wantErr: true},
		{name: "bad format", opts: Options{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := NewFromConfig(&bytes.Buffer{}, tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, log.GetLevel())
		})
	}
}

func TestNewFromConfig_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := NewFromConfig(buf, Options{Level: "info", Format: FormatJSON})
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("k", "v").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"k":"v"`)
	assert.Contains(t, out, `"message":"shown"`)
}

func TestWithContext(t *testing.T) {
	ctxWithLogger := WithContext(context.Background(), New())
	assert.NotNil(t, ctxWithLogger.Value(LoggerKey), "expected logger in context")
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf))

	retrievedLog := FromContext(ctx)
	retrievedLog.Info().Msg("test")

	assert.NotZero(t, buf.Len(), "expected log output from retrieved logger")
}

func TestFromContext_DefaultLogger(t *testing.T) {
	// Should return a default logger when none is in context
	log := FromContext(context.Background())
	assert.NotEqual(t, zerolog.Disabled, log.GetLevel())
}

func TestWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	logWithFields := WithFields(log, map[string]interface{}{
		"user_id": "123",
		"action":  "test",
	})
	logWithFields.Info().Msg("test message")

	output := buf.String()
	assert.Contains(t, output, `"user_id":"123"`)
	assert.Contains(t, output, `"action":"test"`)
}
