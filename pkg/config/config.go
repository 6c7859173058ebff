// Package config loads looptrace settings from TOML or YAML files and the
// environment.
//
// Settings are resolved in three layers, later layers winning:
//
//  1. [Default] values
//  2. the config file passed to [Load] (by default [DefaultPath])
//  3. LOOPTRACE_* environment variables applied by [Config.ApplyEnv]
//
// A TOML file looks like:
//
//	[log]
//	level = "debug"
//	file = "/var/log/looptrace.log"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[history]
//	backend = "sqlite"
//	path = "/var/lib/looptrace/history.db"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/looptrace/pkg/errors"
	"github.com/matzehuels/looptrace/pkg/history"
)

const appName = "looptrace"

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the complete looptrace configuration.
type Config struct {
	Log     LogConfig     `toml:"log" yaml:"log"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File, when set, also writes logs to a rotating file.
	File       string `toml:"file" yaml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" yaml:"max_age_days"`
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Backend    string `toml:"backend" yaml:"backend"`
	Dir        string `toml:"dir" yaml:"dir"`
	RedisURL   string `toml:"redis_url" yaml:"redis_url"`
	Prefix     string `toml:"prefix" yaml:"prefix"`
	TTLSeconds int    `toml:"ttl_seconds" yaml:"ttl_seconds"`
}

// HistoryConfig selects the history store.
type HistoryConfig struct {
	Backend         string `toml:"backend" yaml:"backend"`
	Path            string `toml:"path" yaml:"path"`
	PostgresDSN     string `toml:"postgres_dsn" yaml:"postgres_dsn"`
	MongoURI        string `toml:"mongo_uri" yaml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database" yaml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection" yaml:"mongo_collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr                string `toml:"addr" yaml:"addr"`
	MaxBodyBytes        int64  `toml:"max_body_bytes" yaml:"max_body_bytes"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds" yaml:"write_timeout_seconds"`
}

// Default returns the built-in configuration: file cache and SQLite history
// under the XDG directories.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		Cache: CacheConfig{
			Backend:    CacheFile,
			Dir:        CacheDir(),
			TTLSeconds: int((7 * 24 * time.Hour).Seconds()),
		},
		History: HistoryConfig{
			Backend:       history.BackendSQLite,
			Path:          filepath.Join(DataDir(), "history.db"),
			MongoDatabase: appName,
		},
		Server: ServerConfig{
			Addr:                ":8080",
			MaxBodyBytes:        1 << 20,
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 30,
		},
	}
}

// Load reads the config file at path on top of [Default] and validates it.
// An empty path means [DefaultPath], which may be absent. An explicit path
// that does not exist is a FILE_NOT_FOUND error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := Decode(path, data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode unmarshals data into cfg, choosing TOML or YAML by the extension of name.
func Decode(name string, data []byte, cfg *Config) error {
	var err error
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml or .yaml)", ext)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", name)
	}
	return nil
}

// ApplyEnv overrides settings from LOOPTRACE_* environment variables.
func (c *Config) ApplyEnv() error {
	strs := map[string]*string{
		"LOOPTRACE_LOG_LEVEL":        &c.Log.Level,
		"LOOPTRACE_LOG_FILE":         &c.Log.File,
		"LOOPTRACE_CACHE_BACKEND":    &c.Cache.Backend,
		"LOOPTRACE_CACHE_DIR":        &c.Cache.Dir,
		"LOOPTRACE_REDIS_URL":        &c.Cache.RedisURL,
		"LOOPTRACE_CACHE_PREFIX":     &c.Cache.Prefix,
		"LOOPTRACE_HISTORY_BACKEND":  &c.History.Backend,
		"LOOPTRACE_HISTORY_PATH":     &c.History.Path,
		"LOOPTRACE_POSTGRES_DSN":     &c.History.PostgresDSN,
		"LOOPTRACE_MONGO_URI":        &c.History.MongoURI,
		"LOOPTRACE_MONGO_DATABASE":   &c.History.MongoDatabase,
		"LOOPTRACE_MONGO_COLLECTION": &c.History.MongoCollection,
		"LOOPTRACE_SERVER_ADDR":      &c.Server.Addr,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("LOOPTRACE_CACHE_TTL_SECONDS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "LOOPTRACE_CACHE_TTL_SECONDS")
		}
		c.Cache.TTLSeconds = n
	}
	return nil
}

// Validate rejects unknown backends, unknown log levels and negative sizes.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "log.level: unknown level %q", c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "log: rotation limits must not be negative")
	}

	switch c.Cache.Backend {
	case CacheNone:
	case CacheFile:
		if c.Cache.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
		}
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if c.Cache.TTLSeconds < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl_seconds must not be negative")
	}

	switch c.History.Backend {
	case history.BackendNone, history.BackendSQLite, history.BackendPostgres, history.BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "history.backend: unknown backend %q", c.History.Backend)
	}

	if c.Server.MaxBodyBytes < 0 || c.Server.ReadTimeoutSeconds < 0 || c.Server.WriteTimeoutSeconds < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server: limits must not be negative")
	}
	return nil
}

// CacheTTL returns the cache entry lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// HistoryOptions converts the history section for [history.Open].
func (c *Config) HistoryOptions() history.Options {
	return history.Options{
		Backend:    c.History.Backend,
		Path:       c.History.Path,
		DSN:        c.History.PostgresDSN,
		URI:        c.History.MongoURI,
		Database:   c.History.MongoDatabase,
		Collection: c.History.MongoCollection,
	}
}
