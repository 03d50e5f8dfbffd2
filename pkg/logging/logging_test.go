package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.expected, got, tt.in)
	}
}

func TestInitForCLI_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)
	t.Cleanup(Disable)

	Info("Builder", "hidden %d", 1)
	Warn("Builder", "shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "subsystem=Builder")
}

func TestInitForJSON_IncludesError(t *testing.T) {
	var buf bytes.Buffer
	InitForJSON(LevelDebug, &buf)
	t.Cleanup(Disable)

	Error("DeclLoader", errors.New("bad file"), "Failed to load %s", "x.yaml")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "Failed to load x.yaml", entry["msg"])
	assert.Equal(t, "DeclLoader", entry["subsystem"])
	assert.Equal(t, "bad file", entry["error"])
}

func TestDisable(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)
	Disable()

	Error("Catalog", nil, "nothing")
	assert.Empty(t, buf.String())
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}
