package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	envFile       = ".env"
	configFileKey = "CONFIG_FILE"
)

func defaults() *Config {
	return &Config{
		AppEnv:                   "development",
		Port:                     "8080",
		DatabaseURL:              "mongodb://localhost:27017",
		DatabaseName:             "MyFinance_Dev",
		JWTSecret:                "your-dev-secret-key",
		TokenTTL:                 24 * time.Hour,
		RequestTimeout:           5 * time.Second,
		CollectionUserName:       "users",
		CollectionDashboardsName: "dashboards",
	}
}

// Load builds the configuration from defaults, an optional YAML file named by CONFIG_FILE
// and environment variables, in that order of precedence. A .env file in the working
// directory is loaded into the environment first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "reading .env")
	}

	cfg := defaults()

	if path := os.Getenv(configFileKey); path != "" {
		rawYAML, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "reading config file")
		}
		if err = yaml.Unmarshal(rawYAML, cfg); err != nil {
			return nil, errors.Wrap(err, "parsing yaml")
		}
	}

	cfg.AppEnv = getEnv("APP_ENV", cfg.AppEnv)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DatabaseName = getEnv("DATABASE_NAME", cfg.DatabaseName)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.TokenTTL = getEnvDuration("TOKEN_TTL", cfg.TokenTTL)
	cfg.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.MemcachedHosts = getEnvList("MEMCACHED_HOSTS", cfg.MemcachedHosts)

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if parsed, err := url.Parse(c.DatabaseURL); err != nil {
		problems = append(problems, fmt.Sprintf("invalid database URL '%s': %v", c.DatabaseURL, err))
	} else if parsed.Scheme != "mongodb" && parsed.Scheme != "mongodb+srv" {
		problems = append(problems, fmt.Sprintf("invalid database URL scheme '%s': must be 'mongodb' or 'mongodb+srv'", parsed.Scheme))
	}

	if c.DatabaseName == "" {
		problems = append(problems, "database name cannot be empty")
	}
	if c.CollectionUserName == "" || c.CollectionDashboardsName == "" {
		problems = append(problems, "collection names cannot be empty")
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT secret cannot be empty")
	} else if c.IsProduction() && c.JWTSecret == defaults().JWTSecret {
		problems = append(problems, "JWT secret must be changed in production")
	}

	if c.TokenTTL < time.Minute {
		problems = append(problems, fmt.Sprintf("invalid token TTL %v: must be at least 1 minute", c.TokenTTL))
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid request timeout %v: must be positive", c.RequestTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// getEnv gets environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
