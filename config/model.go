package config

import "time"

type Config struct {
	AppEnv                   string        `yaml:"app-env"`
	Port                     string        `yaml:"port"`
	DatabaseURL              string        `yaml:"database-url"`
	DatabaseName             string        `yaml:"database-name"`
	JWTSecret                string        `yaml:"jwt-secret"`
	TokenTTL                 time.Duration `yaml:"token-ttl"`
	RequestTimeout           time.Duration `yaml:"request-timeout"`
	MemcachedHosts           []string      `yaml:"memcached-hosts"`
	CollectionUserName       string        `yaml:"collection-users"`
	CollectionDashboardsName string        `yaml:"collection-dashboards"`
}

// IsDevelopment checks if the current environment is development
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction checks if the current environment is production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetDatabaseName returns the appropriate database name based on environment
func (c *Config) GetDatabaseName() string {
	return c.DatabaseName
}

// CacheEnabled reports whether a memcached cluster is configured.
func (c *Config) CacheEnabled() bool {
	return len(c.MemcachedHosts) > 0
}

// Hosts lets the config be passed straight to the memcache client.
func (c *Config) Hosts() []string {
	return c.MemcachedHosts
}
