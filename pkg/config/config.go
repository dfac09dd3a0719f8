// Package config loads service configuration from a YAML file with
// environment variable overrides. Environment wins over file, file wins
// over defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"inmofeed/internal/tenant"
)

type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ReadTimeout     int    `yaml:"read_timeout"`
	WriteTimeout    int    `yaml:"write_timeout"`
	ShutdownTimeout int    `yaml:"shutdown_timeout"`
	RateLimitRPS    int    `yaml:"rate_limit_rps"`
	RateLimitBurst  int    `yaml:"rate_limit_burst"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	// Backend selects "redis" or "memory".
	Backend string `yaml:"backend"`
	// Scope prefixes every cache key, isolating environments that share
	// one Redis.
	Scope string `yaml:"scope"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Server  ServerConfig     `yaml:"server"`
	Redis   RedisConfig      `yaml:"redis"`
	Cache   CacheConfig      `yaml:"cache"`
	Logging LoggingConfig    `yaml:"logging"`
	Tenants []*tenant.Tenant `yaml:"tenants"`
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result. A missing file is not an error; defaults plus
// environment still produce a runnable config.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			ShutdownTimeout: 10,
			RateLimitRPS:    50,
			RateLimitBurst:  100,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		Cache: CacheConfig{
			Backend: "memory",
			Scope:   "inmofeed",
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setInt(&cfg.Server.RateLimitRPS, "RATE_LIMIT_RPS")
	setInt(&cfg.Server.RateLimitBurst, "RATE_LIMIT_BURST")
	setString(&cfg.Redis.Host, "REDIS_HOST")
	setInt(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")
	setString(&cfg.Cache.Backend, "CACHE_BACKEND")
	setString(&cfg.Cache.Scope, "CACHE_SCOPE")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch strings.ToLower(c.Cache.Backend) {
	case "redis", "memory":
	default:
		return fmt.Errorf("unknown cache backend %q, want redis or memory", c.Cache.Backend)
	}
	seen := make(map[string]bool, len(c.Tenants))
	for _, t := range c.Tenants {
		if t.ID == "" {
			return fmt.Errorf("tenant with empty id in config")
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate tenant id %q in config", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// Addr is the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func setString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func setInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}
