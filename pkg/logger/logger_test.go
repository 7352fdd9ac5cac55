package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestFieldsAreTyped(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf).Info("fetched",
		String("source", "sheets"),
		Int("rows", 3),
		Bool("hit", false),
		Duration("took_ms", 1500*time.Millisecond),
		Strings("dates", []string{"08/09/2025", "09/09/2025"}),
		Error(errors.New("boom")),
	)

	m := decode(t, &buf)
	assert.Equal(t, "info", m["level"])
	assert.Equal(t, "fetched", m["message"])
	assert.Equal(t, "sheets", m["source"])
	assert.EqualValues(t, 3, m["rows"])
	assert.Equal(t, false, m["hit"])
	assert.EqualValues(t, 1500, m["took_ms"])
	assert.Equal(t, []interface{}{"08/09/2025", "09/09/2025"}, m["dates"])
	assert.Equal(t, "boom", m["error"])
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf).With(String("component", "dashboard")).Warn("empty")

	m := decode(t, &buf)
	assert.Equal(t, "warn", m["level"])
	assert.Equal(t, "dashboard", m["component"])
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	assert.ErrorContains(t, err, "invalid log level")
}
