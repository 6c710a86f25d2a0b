package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/cornhole/internal/api"
	"github.com/mcoot/cornhole/internal/factory"
	"github.com/mcoot/cornhole/internal/remote"
	"github.com/mcoot/cornhole/internal/services/localstore"
	redisstorage "github.com/mcoot/cornhole/internal/storage/redis"
)

// Environment variables read by Load
const (
	EnvConfigFile  = "CORNHOLE_CONFIG"
	EnvStorageType = "STORAGE_TYPE"
	EnvRedisURL    = "REDIS_URL"
	EnvHost        = "CORNHOLE_HOST"
	EnvPort        = "PORT"
	EnvRemoteURL   = "CORNHOLE_REMOTE_URL"
	EnvTimeout     = "CORNHOLE_REMOTE_TIMEOUT"
	EnvArchiveMax  = "CORNHOLE_ARCHIVE_MAX"
	EnvCORSOrigins = "CORNHOLE_CORS_ORIGINS"
)

// Config is the daemon configuration
type Config struct {
	Storage struct {
		Type     string `yaml:"type"`
		RedisURL string `yaml:"redis_url"`
	} `yaml:"storage"`

	Server struct {
		Host        string   `yaml:"host"`
		Port        int      `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Remote struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"remote"`

	Archive struct {
		MaxSize int `yaml:"max_size"`
	} `yaml:"archive"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	cfg := &Config{}
	cfg.Storage.Type = factory.StorageTypeMemory
	cfg.Storage.RedisURL = redisstorage.DefaultConfig().URL
	cfg.Server.Port = api.DefaultServerConfig().Port
	cfg.Remote.BaseURL = remote.DefaultConfig().BaseURL
	cfg.Remote.Timeout = remote.DefaultConfig().Timeout
	cfg.Archive.MaxSize = localstore.DefaultConfig().MaxArchiveSize
	return cfg
}

// Load builds the configuration from defaults, the YAML file named by
// CORNHOLE_CONFIG if set, and then environment overrides
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Storage.Type = getEnv(EnvStorageType, c.Storage.Type)
	c.Storage.RedisURL = getEnv(EnvRedisURL, c.Storage.RedisURL)
	c.Server.Host = getEnv(EnvHost, c.Server.Host)
	c.Remote.BaseURL = getEnv(EnvRemoteURL, c.Remote.BaseURL)

	var err error
	if c.Server.Port, err = getEnvAsInt(EnvPort, c.Server.Port); err != nil {
		return err
	}
	if c.Archive.MaxSize, err = getEnvAsInt(EnvArchiveMax, c.Archive.MaxSize); err != nil {
		return err
	}

	if value := os.Getenv(EnvTimeout); value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Remote.Timeout = timeout
	}

	if value := os.Getenv(EnvCORSOrigins); value != "" {
		c.Server.CORSOrigins = nil
		for _, origin := range strings.Split(value, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.Server.CORSOrigins = append(c.Server.CORSOrigins, origin)
			}
		}
	}

	return nil
}

// Validate reports settings the daemon cannot start with
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case factory.StorageTypeMemory:
	case factory.StorageTypeRedis:
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("%s required when storage type is redis", EnvRedisURL)
		}
	default:
		return fmt.Errorf("invalid storage type %q: must be 'memory' or 'redis'", c.Storage.Type)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Remote.BaseURL == "" {
		return fmt.Errorf("remote base URL must not be empty")
	}
	if c.Remote.Timeout <= 0 {
		return fmt.Errorf("remote timeout must be positive")
	}
	if c.Archive.MaxSize <= 0 {
		return fmt.Errorf("archive max size must be positive")
	}
	return nil
}

// FactoryConfig converts the configuration into factory settings
func (c *Config) FactoryConfig() factory.Config {
	cfg := factory.Config{
		StorageType: c.Storage.Type,
		RemoteConfig: remote.Config{
			BaseURL: c.Remote.BaseURL,
			Timeout: c.Remote.Timeout,
		},
		LocalStoreConfig: localstore.Config{
			MaxArchiveSize: c.Archive.MaxSize,
		},
	}

	if c.Storage.Type == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.Storage.RedisURL
		cfg.RedisConfig = &redisCfg
	}

	return cfg
}

// ServerConfig converts the configuration into HTTP server settings
func (c *Config) ServerConfig() api.ServerConfig {
	cfg := api.DefaultServerConfig()
	cfg.Host = c.Server.Host
	cfg.Port = c.Server.Port
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return intValue, nil
}
