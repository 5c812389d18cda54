package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLevels(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(Options{JSON: true, Writer: &buf}), "footstep")

	log.Debug().Msg("hidden")
	log.Warn().Msg("conflict")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "footstep", entry["component"])
	assert.Equal(t, "conflict", entry["message"])
}

func TestDebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Debug: true, JSON: true, Writer: &buf})
	log.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
