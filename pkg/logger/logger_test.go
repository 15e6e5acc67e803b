package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithWriter_ProductionJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { InitWithWriter("production", &bytes.Buffer{}) })

	Debug().Msg("hidden")
	Info().Str("user_id", "u1").Msg("visible")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "trackitnow", entry["service"])
	assert.Equal(t, "u1", entry["user_id"])

	buf.Reset()
	log.Info().Msg("from package logger")
	assert.Contains(t, buf.String(), "from package logger")
}
