package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Session slot backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Catalog sources.
const (
	SourceMock  = "mock"
	SourceMySQL = "mysql"
)

// Config holds application level configuration.
type Config struct {
	ServerPort  string        `yaml:"server_port"`
	SwaggerHost string        `yaml:"swagger_host"`
	Session     SessionConfig `yaml:"session"`
	Catalog     CatalogConfig `yaml:"catalog"`
	Redis       RedisConfig   `yaml:"redis"`
	Logging     LoggingConfig `yaml:"logging"`
}

// SessionConfig selects where the session record is persisted.
type SessionConfig struct {
	Backend    string `yaml:"backend"` // memory, file, redis
	Dir        string `yaml:"dir"`
	SigningKey string `yaml:"signing_key"` // signs the record when set
	KeyPrefix  string `yaml:"key_prefix"`
}

// CatalogConfig selects where credentials and funding listings come from.
type CatalogConfig struct {
	Source   string `yaml:"source"` // mock, mysql
	MySQLDSN string `yaml:"mysql_dsn"`
}

// RedisConfig is used by the redis session backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	DB       int    `yaml:"db"`
	Password string `yaml:"password"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, console
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		ServerPort: "8080",
		Session: SessionConfig{
			Backend:   BackendFile,
			Dir:       defaultSessionDir(),
			KeyPrefix: "senti:",
		},
		Catalog: CatalogConfig{
			Source:   SourceMock,
			MySQLDSN: "user:password@tcp(localhost:3306)/senti?charset=utf8mb4&parseTime=True&loc=Local",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func defaultSessionDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "senti")
	}
	return ".senti"
}

// Load builds Config from defaults, then the YAML file at path (if it
// exists), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.SwaggerHost = getEnv("SWAGGER_HOST", c.SwaggerHost)
	c.Session.Backend = getEnv("SESSION_BACKEND", c.Session.Backend)
	c.Session.Dir = getEnv("SESSION_DIR", c.Session.Dir)
	c.Session.SigningKey = getEnv("SESSION_SIGNING_KEY", c.Session.SigningKey)
	c.Catalog.Source = getEnv("CATALOG_SOURCE", c.Catalog.Source)
	c.Catalog.MySQLDSN = getEnv("MYSQL_DSN", c.Catalog.MySQLDSN)
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
}

// Validate rejects unknown backends and sources.
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case BackendMemory, BackendRedis:
	case BackendFile:
		if c.Session.Dir == "" {
			return fmt.Errorf("config: session.dir is required for the file backend")
		}
	default:
		return fmt.Errorf("config: unknown session backend %q", c.Session.Backend)
	}
	switch c.Catalog.Source {
	case SourceMock:
	case SourceMySQL:
		if c.Catalog.MySQLDSN == "" {
			return fmt.Errorf("config: catalog.mysql_dsn is required for the mysql source")
		}
	default:
		return fmt.Errorf("config: unknown catalog source %q", c.Catalog.Source)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
