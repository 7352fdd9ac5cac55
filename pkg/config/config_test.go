package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sheets", c.Source.Type)
	assert.Equal(t, "Upstox-Greeks", c.Source.Sheets.Spreadsheet)
	assert.Equal(t, "SERVICE_ACCOUNT_JSON", c.Source.CredentialEnv)
	assert.Equal(t, 30, c.Dashboard.MaxDates)
	assert.Equal(t, []string{"ltp", "delta", "gamma", "theta"}, c.Dashboard.Metrics)
	assert.Equal(t, "Last Traded Price", c.Dashboard.Captions["ltp"])
	assert.Equal(t, "none", c.Cache.Type)
	assert.Equal(t, time.Duration(0), c.Cache.TTL)
	assert.Equal(t, "stderr", c.Tracing.Output)
	assert.False(t, c.Tracing.Enabled)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 9000, c.Source.ClickHouse.Port)
	assert.Equal(t, "upstox_greeks", c.Source.ClickHouse.Table)
	assert.Equal(t, 6379, c.Cache.Redis.Port)
	assert.Equal(t, "snappy", c.Events.Compression)
	assert.True(t, c.Events.HashByKey)
}

func TestLoadEmbeddedSections(t *testing.T) {
	c, err := Load(writeConfig(t, `
source:
  type: clickhouse
  clickhouse:
    host: ch.internal
    use_http: true
    table: greeks_ticks
events:
  enabled: true
  brokers: [k1:9092]
  compression: zstd
`))
	require.NoError(t, err)
	assert.Equal(t, "ch.internal", c.Source.ClickHouse.Host)
	assert.True(t, c.Source.ClickHouse.UseHTTP)
	assert.Equal(t, "greeks_ticks", c.Source.ClickHouse.Table)
	assert.Equal(t, "default", c.Source.ClickHouse.Database)
	assert.Equal(t, []string{"k1:9092"}, c.Events.Brokers)
	assert.Equal(t, "zstd", c.Events.Compression)
	assert.Equal(t, "greeksboard.events", c.Events.Topic)
}

func TestLoadRepoConfig(t *testing.T) {
	c, err := Load("../../config/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Upstox Live Options Greeks Dashboard", c.Dashboard.Title)
	assert.Empty(t, c.Schema)
}

func TestLoadSchema(t *testing.T) {
	c, err := Load(writeConfig(t, `
schema:
  ltp:
    ce: [CE_18000_ltp]
    pe: []
`))
	require.NoError(t, err)
	require.Contains(t, c.Schema, "ltp")
	assert.Equal(t, []string{"CE_18000_ltp"}, c.Schema["ltp"].CE)
	assert.NotNil(t, c.Schema["ltp"].PE)
	assert.Empty(t, c.Schema["ltp"].PE)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"source type", "source: {type: csv}"},
		{"clickhouse host", "source: {type: clickhouse}"},
		{"max dates", "dashboard: {max_dates: 0}"},
		{"schema metric", "schema: {vega: {ce: [CE_1_vega]}}"},
		{"cache type", "cache: {type: disk}"},
		{"cache ttl", "cache: {ttl: -1s}"},
		{"events brokers", "events: {enabled: true, brokers: []}"},
		{"tracing output", "tracing: {output: file}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("SPREADSHEET_NAME", "Other-Sheet")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("TRACING_ENABLED", "true")

	c, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Other-Sheet", c.Source.Sheets.Spreadsheet)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, "cache", c.Cache.Redis.Host)
	assert.Equal(t, 6380, c.Cache.Redis.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Events.Brokers)
	assert.True(t, c.Tracing.Enabled)
}
