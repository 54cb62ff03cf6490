package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Feed       FeedConfig       `yaml:"feed"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the push gateway settings. The VAPID keys are optional and
// only enable delivery to browser registrations.
type PushConfig struct {
	GatewayURL     string        `yaml:"gateway_url"`
	Title          string        `yaml:"title"`
	Sound          string        `yaml:"sound"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Timeout        time.Duration `yaml:"-"`
	PublicKey      string        `yaml:"vapid_public_key"`
	PrivateKey     string        `yaml:"vapid_private_key"`
	Subject        string        `yaml:"subject"`
	TTL            int           `yaml:"ttl"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	GinMode         string   `yaml:"gin_mode"`
	RateLimitPerSec float64  `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int      `yaml:"rate_limit_burst"`
	CacheTTLSeconds int      `yaml:"cache_ttl_seconds"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	LogLevel               string `yaml:"log_level"`
}

// FeedConfig controls how change notifications reach live subscribers. An empty
// RedisAddr keeps fan-out inside the process.
type FeedConfig struct {
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	Channel       string `yaml:"channel"`
}

const (
	DefaultGatewayURL = "https://exp.host/--/api/v2/push/send"
	DefaultPushTitle  = "📩 Nuevo mensaje"
)

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills every unset field with its default value.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 2
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}

	if cfg.Push.GatewayURL == "" {
		cfg.Push.GatewayURL = DefaultGatewayURL
	}
	if cfg.Push.Title == "" {
		cfg.Push.Title = DefaultPushTitle
	}
	if cfg.Push.Sound == "" {
		cfg.Push.Sound = "default"
	}
	if cfg.Push.TimeoutSeconds <= 0 {
		cfg.Push.TimeoutSeconds = 10
	}
	cfg.Push.Timeout = time.Duration(cfg.Push.TimeoutSeconds) * time.Second
	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if cfg.Feed.Channel == "" {
		cfg.Feed.Channel = "hotel:changes"
	}
}

// WebPushEnabled reports whether both VAPID keys are configured.
func (p PushConfig) WebPushEnabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}
