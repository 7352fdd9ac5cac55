package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"GreeksBoard/pkg/cache"
	"GreeksBoard/pkg/clickhouse"
	xhttp "GreeksBoard/pkg/http"
	"GreeksBoard/pkg/kafka"
	applogger "GreeksBoard/pkg/logger"
	"GreeksBoard/pkg/tracing"
	"GreeksBoard/pkg/util"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// SchemaSides lists the expected columns of one metric per option side.
type SchemaSides struct {
	CE []string `yaml:"ce"`
	PE []string `yaml:"pe"`
}

type Config struct {
	Environment string             `yaml:"environment" default:"development"`
	Server      xhttp.ServerConfig `yaml:"server"`
	Log         applogger.Config   `yaml:"log"`
	Tracing     tracing.Config     `yaml:"tracing"`
	Metrics     struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Source struct {
		Type          string        `yaml:"type" default:"sheets"`
		Timeout       time.Duration `yaml:"timeout" default:"30s"`
		CredentialEnv string        `yaml:"credential_env" default:"SERVICE_ACCOUNT_JSON"`
		Sheets        struct {
			Spreadsheet string `yaml:"spreadsheet" default:"Upstox-Greeks"`
		} `yaml:"sheets"`
		ClickHouse struct {
			clickhouse.Config `yaml:",inline"`
			Table             string `yaml:"table" default:"upstox_greeks"`
		} `yaml:"clickhouse"`
	} `yaml:"source"`
	Dashboard struct {
		Title    string            `yaml:"title" default:"Upstox Live Options Greeks Dashboard"`
		MaxDates int               `yaml:"max_dates" default:"30"`
		Metrics  []string          `yaml:"metrics" default:"[\"ltp\",\"delta\",\"gamma\",\"theta\"]"`
		Captions map[string]string `yaml:"captions" default:"{\"ltp\":\"Last Traded Price\",\"delta\":\"Delta\",\"gamma\":\"Gamma\",\"theta\":\"Theta\"}"`
		Chart    struct {
			Width  int `yaml:"width" default:"720"`
			Height int `yaml:"height" default:"360"`
		} `yaml:"chart"`
	} `yaml:"dashboard"`
	// Schema declares the CE/PE columns per metric. Empty means derive from column names.
	Schema map[string]SchemaSides `yaml:"schema"`
	Cache  struct {
		Type          string            `yaml:"type" default:"none"`
		TTL           time.Duration     `yaml:"ttl"`
		MemoryMaxSize int               `yaml:"memory_max_size" default:"16"`
		Redis         cache.RedisConfig `yaml:"redis"`
	} `yaml:"cache"`
	Events struct {
		Enabled              bool   `yaml:"enabled"`
		Topic                string `yaml:"topic" default:"greeksboard.events"`
		kafka.ProducerConfig `yaml:",inline"`
	} `yaml:"events"`
	RateLimit struct {
		Enabled      bool    `yaml:"enabled" default:"true"`
		Capacity     float64 `yaml:"capacity" default:"20"`
		RefillPerSec float64 `yaml:"refill_per_sec" default:"1"`
	} `yaml:"ratelimit"`
}

// Default returns a configuration populated only from struct defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
// A missing file is not an error: the service runs on defaults and env.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SPREADSHEET_NAME"); v != "" {
		c.Source.Sheets.Spreadsheet = v
	}
	if v := os.Getenv("SOURCE_TYPE"); v != "" {
		c.Source.Type = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Cache.Redis.Host = host
		if ok {
			c.Cache.Redis.Port = util.ParseIntDefault(port, c.Cache.Redis.Port)
		}
	}
	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		c.Tracing.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Brokers = strings.Split(v, ",")
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Source.Type != "sheets" && c.Source.Type != "clickhouse" {
		return fmt.Errorf("source.type must be 'sheets' or 'clickhouse', got '%s'", c.Source.Type)
	}
	if c.Source.CredentialEnv == "" {
		return fmt.Errorf("source.credential_env is required")
	}
	if c.Source.Type == "sheets" && c.Source.Sheets.Spreadsheet == "" {
		return fmt.Errorf("source.sheets.spreadsheet is required")
	}
	if c.Source.Type == "clickhouse" {
		if c.Source.ClickHouse.Host == "" {
			return fmt.Errorf("source.clickhouse.host is required")
		}
		if c.Source.ClickHouse.Table == "" {
			return fmt.Errorf("source.clickhouse.table is required")
		}
	}
	if c.Dashboard.MaxDates < 1 {
		return fmt.Errorf("dashboard.max_dates must be >= 1, got %d", c.Dashboard.MaxDates)
	}
	if len(c.Dashboard.Metrics) == 0 {
		return fmt.Errorf("dashboard.metrics cannot be empty")
	}
	for metric := range c.Schema {
		if !contains(c.Dashboard.Metrics, metric) {
			return fmt.Errorf("schema declares unknown metric '%s'", metric)
		}
	}
	switch c.Cache.Type {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("cache.type must be 'none', 'memory' or 'redis', got '%s'", c.Cache.Type)
	}
	if c.Tracing.Output != "stdout" && c.Tracing.Output != "stderr" {
		return fmt.Errorf("tracing.output must be 'stdout' or 'stderr', got '%s'", c.Tracing.Output)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl cannot be negative")
	}
	if c.Events.Enabled {
		if len(c.Events.Brokers) == 0 {
			return fmt.Errorf("events.brokers cannot be empty when events are enabled")
		}
		if c.Events.Topic == "" {
			return fmt.Errorf("events.topic is required when events are enabled")
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
