package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/spf13/viper"
)

const FileName = "seedling.config.json"

type Config struct {
	Version  string   `json:"version" mapstructure:"version"`
	PlanPath string   `json:"plan_path" mapstructure:"plan_path"`
	Database Database `json:"database" mapstructure:"database"`
	Seed     Seed     `json:"seed" mapstructure:"seed"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	// Mode selects the executor: "pool" (default) or "conn" for a single
	// shared blocking connection. SQLite is always "conn".
	Mode string `json:"mode,omitempty" mapstructure:"mode"`
}

type Seed struct {
	DefaultCount  int   `json:"default_count,omitempty" mapstructure:"default_count"`
	Parameterized bool  `json:"parameterized,omitempty" mapstructure:"parameterized"`
	RandomSeed    int64 `json:"random_seed,omitempty" mapstructure:"random_seed"`
}

var supportedProviders = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals v and applies defaults.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.PlanPath == "" {
		c.PlanPath = filepath.Join("db", "seeds.yaml")
	}
	if c.Database.Provider == "" {
		c.Database.Provider = "postgresql"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
	if c.Database.Mode == "" {
		c.Database.Mode = "pool"
	}
	if c.IsSQLite() {
		c.Database.Mode = "conn"
	}
	if c.Seed.DefaultCount <= 0 {
		c.Seed.DefaultCount = 10
	}
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if c.Database.Mode != "pool" && c.Database.Mode != "conn" {
		return fmt.Errorf("unsupported database mode: %s (use pool or conn)", c.Database.Mode)
	}

	if c.PlanPath == "" {
		return fmt.Errorf("plan_path cannot be empty")
	}

	return nil
}

func (c *Config) IsSQLite() bool {
	return c.Database.Provider == "sqlite" || c.Database.Provider == "sqlite3"
}

// Placeholder returns the bind-parameter style of the configured provider.
func (c *Config) Placeholder() squirrel.PlaceholderFormat {
	switch c.Database.Provider {
	case "postgresql", "postgres":
		return squirrel.Dollar
	default:
		return squirrel.Question
	}
}

func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.PlanPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

func IsInitialized() bool {
	_, err := os.Stat(FileName)
	return err == nil
}
