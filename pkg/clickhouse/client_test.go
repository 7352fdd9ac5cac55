package clickhouse

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(Config{
		Host:             "ch.local",
		Port:             9000,
		Database:         "greeks",
		User:             "reader",
		Password:         "p@ss:word",
		DialTimeout:      5 * time.Second,
		ReadTimeout:      30 * time.Second,
		MaxExecutionTime: 90 * time.Second,
	})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "clickhouse", u.Scheme)
	assert.Equal(t, "ch.local:9000", u.Host)
	assert.Equal(t, "/greeks", u.Path)
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss:word", pw)
	assert.Equal(t, "5s", u.Query().Get("dial_timeout"))
	assert.Equal(t, "30s", u.Query().Get("read_timeout"))
	assert.Equal(t, "90", u.Query().Get("max_execution_time"))
}

func TestBuildDSNHTTP(t *testing.T) {
	dsn := buildDSN(Config{Host: "ch", Port: 8123, Database: "default", UseHTTP: true})
	assert.Equal(t, "http://ch:8123/default", dsn)
}

func TestWithDefaults(t *testing.T) {
	c := Config{Host: "ch"}.withDefaults()
	assert.Equal(t, 9000, c.Port)
	assert.Equal(t, "default", c.Database)
	assert.Equal(t, 5*time.Second, c.DialTimeout)
	assert.Equal(t, 4, c.MaxOpenConns)
}

func TestNewClientRequiresHost(t *testing.T) {
	_, err := NewClient(Config{})
	assert.EqualError(t, err, "host is required")
}
