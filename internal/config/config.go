// Package config resolves the tasklist configuration from defaults, YAML files, a
// .env file and TASKLIST_* environment variables. Command line flags are applied on
// top by the CLI.
package config

import (
	"fmt"

	"github.com/aretw0/tasklist/internal/logging"
	"github.com/aretw0/tasklist/pkg/persistence"
	"github.com/aretw0/tasklist/pkg/persistence/middleware"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Defaults.
const (
	DefaultDir        = ".tasklist"
	DefaultRedisAddr  = "localhost:6379"
	DefaultSQLitePath = "~/.tasklist/tasks.db"
	DefaultPort       = 8080
)

// Config is the resolved configuration.
type Config struct {
	Backend    string           `yaml:"backend" mapstructure:"backend"`
	List       string           `yaml:"list" mapstructure:"list"`
	Malformed  string           `yaml:"malformed" mapstructure:"malformed"`
	LogLevel   string           `yaml:"log_level" mapstructure:"log_level"`
	File       FileConfig       `yaml:"file" mapstructure:"file"`
	Redis      RedisConfig      `yaml:"redis" mapstructure:"redis"`
	SQLite     SQLiteConfig     `yaml:"sqlite" mapstructure:"sqlite"`
	Encryption EncryptionConfig `yaml:"encryption" mapstructure:"encryption"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
}

// FileConfig configures the file backend.
type FileConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
	Prefix   string `yaml:"prefix" mapstructure:"prefix"`
}

// SQLiteConfig configures the sqlite backend.
type SQLiteConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// EncryptionConfig enables encryption at rest. Keys are hex encoded 32 byte values.
// PreviousKeys are only used to read slots written before a key rotation.
type EncryptionConfig struct {
	Key          string   `yaml:"key" mapstructure:"key"`
	PreviousKeys []string `yaml:"previous_keys" mapstructure:"previous_keys"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:   BackendFile,
		List:      persistence.DefaultKey,
		Malformed: string(persistence.PolicyFail),
		LogLevel:  "warn",
		File:      FileConfig{Dir: DefaultDir},
		Redis:     RedisConfig{Addr: DefaultRedisAddr},
		SQLite:    SQLiteConfig{Path: DefaultSQLitePath},
		Server:    ServerConfig{Port: DefaultPort},
	}
}

// Validate checks every field that has a closed set of values.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want file, memory, redis or sqlite)", c.Backend)
	}
	if c.List == "" {
		return fmt.Errorf("list name must not be empty")
	}
	if _, err := persistence.ParsePolicy(c.Malformed); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := c.Encryption.Middleware(); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

// Policy returns the parsed malformed record policy.
func (c *Config) Policy() persistence.MalformedPolicy {
	p, err := persistence.ParsePolicy(c.Malformed)
	if err != nil {
		return persistence.PolicyFail
	}
	return p
}

// Enabled reports whether encryption at rest is configured.
func (e EncryptionConfig) Enabled() bool {
	return e.Key != ""
}

// Middleware builds the encryption middleware. It returns nil when encryption is off.
func (e EncryptionConfig) Middleware() (middleware.Middleware, error) {
	if !e.Enabled() {
		return nil, nil
	}
	active, err := middleware.ParseKey(e.Key)
	if err != nil {
		return nil, err
	}
	cfg := middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range e.PreviousKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("previous key %d: %w", i, err)
		}
		cfg.FallbackKeys = append(cfg.FallbackKeys, key)
	}
	return middleware.NewEncryptionMiddleware(cfg)
}
