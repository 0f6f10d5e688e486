package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewFormats(t *testing.T) {
	for _, format := range []string{"console", "json", "logfmt"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(&buf, "info", format)
			require.NoError(t, err)

			log.Info("signup", zap.String("username", "alice"))
			log.Debug("hidden")
			require.NoError(t, log.Sync())

			out := buf.String()
			assert.Contains(t, out, "signup")
			assert.Contains(t, out, "alice")
			assert.NotContains(t, out, "hidden")
		})
	}
}

func TestNewRejectsUnknown(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "console")
	require.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)
}

func TestContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	log := zap.NewExample()
	ctx := NewContextWithLogger(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}
