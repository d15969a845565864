package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmorrow/taskhub/internal/config"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"mixed case", "DeBuG"},
		{"invalid level falls back to info", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{Port: 3000, LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log)
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Equal(t, slog.Default(), FromContext(ctx))

	attached := slog.Default().With("trace_id", "abc")
	ctx = WithContext(ctx, attached)
	assert.Same(t, attached, FromContext(ctx))
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	def := slog.Default().With("component", "test")
	assert.Same(t, def, FromContextOrDefault(context.Background(), def))
	assert.Equal(t, slog.Default(), FromContextOrDefault(context.Background(), nil))

	attached := slog.Default().With("trace_id", "abc")
	ctx := WithContext(context.Background(), attached)
	assert.Same(t, attached, FromContextOrDefault(ctx, def))
}
