package clickhouse

import "time"

// Config describes a read-only ClickHouse connection. Zero fields fall back to the
// defaults below, so a bare Config{Host: ...} is usable.
type Config struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port" default:"9000"`
	Database         string        `yaml:"database" default:"default"`
	User             string        `yaml:"user" default:"default"`
	Password         string        `yaml:"password"`
	UseHTTP          bool          `yaml:"use_http"` // port 8123 usually
	DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
	ReadTimeout      time.Duration `yaml:"read_timeout" default:"30s"`
	MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"30s"`
	MaxOpenConns     int           `yaml:"max_open_conns" default:"4"`
	MaxIdleConns     int           `yaml:"max_idle_conns" default:"2"`
	ConnMaxLifetime  time.Duration `yaml:"conn_max_lifetime" default:"5m"`
}

func (c Config) withDefaults() Config {
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.Database == "" {
		c.Database = "default"
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 4
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 2
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = 5 * time.Minute
	}
	return c
}
