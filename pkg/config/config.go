package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:feedspace.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Refresh scheduling and retention configuration"`

	Limits LimitsConfig `yaml:"limits" json:"limits" jsonschema:"description=Per-user resource limits"`

	OGP OGPConfig `yaml:"ogp" json:"ogp" jsonschema:"description=OGP thumbnail extraction configuration"`
}

// ScheduleConfig holds refresh scheduling and retention settings.
// Staleness and RetentionCap are the two knobs the ingestion pipeline
// depends on; the reconciliation algorithm itself carries no constants.
type ScheduleConfig struct {
	Staleness    time.Duration `yaml:"staleness" json:"staleness" jsonschema:"default=2h,description=Minimum age of last fetch before a feed is due for refresh"`
	RetentionCap int           `yaml:"retention_cap" json:"retention_cap" jsonschema:"default=50,minimum=1,description=Maximum stored items per feed"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" json:"fetch_timeout" jsonschema:"default=10s,description=HTTP timeout for a single feed fetch"`
	MaxWorkers   int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=4,description=Maximum concurrent feed fetches in a refresh cycle"`
	SweepAge     time.Duration `yaml:"sweep_age" json:"sweep_age" jsonschema:"default=0s,description=Optional age-based item sweep; 0 disables it"`
}

// LimitsConfig holds per-user resource limits
type LimitsConfig struct {
	MaxFeeds         int `yaml:"max_feeds" json:"max_feeds" jsonschema:"default=10,description=Maximum feeds per user"`
	MaxKeywords      int `yaml:"max_keywords" json:"max_keywords" jsonschema:"default=10,description=Maximum keywords per user"`
	KeywordMaxLength int `yaml:"keyword_max_length" json:"keyword_max_length" jsonschema:"default=20,description=Maximum keyword length in characters"`
	MaxReadLater     int `yaml:"max_read_later" json:"max_read_later" jsonschema:"default=5,description=Maximum read-later entries per user"`
}

// OGPConfig holds OGP thumbnail extraction settings
type OGPConfig struct {
	CacheSize   int           `yaml:"cache_size" json:"cache_size" jsonschema:"default=256,description=Maximum cached OGP lookups"`
	CacheTTL    time.Duration `yaml:"cache_ttl" json:"cache_ttl" jsonschema:"default=1h,description=OGP cache entry lifetime"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=5s,description=HTTP timeout per OGP lookup"`
	MaxBodySize int64         `yaml:"max_body_size" json:"max_body_size" jsonschema:"default=51200,description=Maximum bytes read from a target page"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Feedspace/1.0,description=User agent for OGP requests"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.SetDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied, used when
// no config file is given
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills zero-valued fields with their defaults
func (c *Config) SetDefaults() {
	// set defaults for server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:feedspace.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// set defaults for schedule, sweep_age stays 0 (disabled) unless set
	if c.Schedule.Staleness == 0 {
		c.Schedule.Staleness = 2 * time.Hour
	}
	if c.Schedule.RetentionCap == 0 {
		c.Schedule.RetentionCap = 50
	}
	if c.Schedule.FetchTimeout == 0 {
		c.Schedule.FetchTimeout = 10 * time.Second
	}
	if c.Schedule.MaxWorkers == 0 {
		c.Schedule.MaxWorkers = 4
	}

	// set defaults for limits
	if c.Limits.MaxFeeds == 0 {
		c.Limits.MaxFeeds = 10
	}
	if c.Limits.MaxKeywords == 0 {
		c.Limits.MaxKeywords = 10
	}
	if c.Limits.KeywordMaxLength == 0 {
		c.Limits.KeywordMaxLength = 20
	}
	if c.Limits.MaxReadLater == 0 {
		c.Limits.MaxReadLater = 5
	}

	// set defaults for OGP extraction
	if c.OGP.CacheSize == 0 {
		c.OGP.CacheSize = 256
	}
	if c.OGP.CacheTTL == 0 {
		c.OGP.CacheTTL = time.Hour
	}
	if c.OGP.Timeout == 0 {
		c.OGP.Timeout = 5 * time.Second
	}
	if c.OGP.MaxBodySize == 0 {
		c.OGP.MaxBodySize = 50 * 1024
	}
	if c.OGP.UserAgent == "" {
		c.OGP.UserAgent = "Feedspace/1.0"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server.timeout must be at least 1 second")
	}

	// validate schedule config
	if cfg.Schedule.Staleness < time.Minute {
		return fmt.Errorf("schedule.staleness must be at least 1 minute")
	}
	if cfg.Schedule.RetentionCap < 1 {
		return fmt.Errorf("schedule.retention_cap must be at least 1")
	}
	if cfg.Schedule.FetchTimeout < time.Second {
		return fmt.Errorf("schedule.fetch_timeout must be at least 1 second")
	}
	if cfg.Schedule.MaxWorkers < 1 {
		return fmt.Errorf("schedule.max_workers must be at least 1")
	}
	if cfg.Schedule.SweepAge < 0 {
		return fmt.Errorf("schedule.sweep_age must be non-negative")
	}

	// validate limits
	if cfg.Limits.MaxFeeds < 1 {
		return fmt.Errorf("limits.max_feeds must be at least 1")
	}
	if cfg.Limits.MaxKeywords < 1 {
		return fmt.Errorf("limits.max_keywords must be at least 1")
	}
	if cfg.Limits.KeywordMaxLength < 1 {
		return fmt.Errorf("limits.keyword_max_length must be at least 1")
	}
	if cfg.Limits.MaxReadLater < 1 {
		return fmt.Errorf("limits.max_read_later must be at least 1")
	}

	// validate OGP config
	if cfg.OGP.Timeout < time.Second {
		return fmt.Errorf("ogp.timeout must be at least 1 second")
	}
	if cfg.OGP.MaxBodySize < 1024 {
		return fmt.Errorf("ogp.max_body_size must be at least 1KB")
	}

	return nil
}
