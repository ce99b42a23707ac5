package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		" DEBUG ":  zerolog.DebugLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"off":      zerolog.Disabled,
		"":         zerolog.InfoLevel,
		"whatever": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestContextCarriesComponentAndPanel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.DebugLevel, Format: "json", Output: &buf})

	ctx := WithContext(context.Background(), logger)
	ctx = WithComponent(ctx, "docker")
	ctx = WithPanelID(ctx, "p1")
	FromContext(ctx).Debug().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "docker", entry["component"])
	assert.Equal(t, "p1", entry["panel_id"])
	assert.Equal(t, "hello", entry["message"])
}

func TestFromContext_WithoutLoggerIsSilent(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("DOCKPANE_LOG_LEVEL", "error")
	t.Setenv("DOCKPANE_LOG_FORMAT", "json")
	assert.Equal(t, zerolog.ErrorLevel, NewFromEnv().GetLevel())
}
