package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Server struct {
	ListenAddress  string   `yaml:"listenAddress"`
	TLSCertFile    string   `yaml:"tlsCertFile"`
	TLSKeyFile     string   `yaml:"tlsKeyFile"`
	TrustedProxies []string `yaml:"trustedProxies"` // IPs/CIDRs to trust for X-Forwarded-For headers (e.g., ["10.0.0.0/8", "127.0.0.1"])
}

type Database struct {
	// DSN is the Postgres connection string passed to the pgx stdlib driver.
	DSN string `yaml:"dsn"`
}

type Auth struct {
	// SessionCookieName is the name of the cookie carrying the opaque session token.
	SessionCookieName string `yaml:"sessionCookieName"`
	// SecureCookies marks session and flash cookies as Secure (HTTPS only).
	SecureCookies bool `yaml:"secureCookies"`
	// BcryptCost is the bcrypt work factor used when hashing new passwords.
	BcryptCost int `yaml:"bcryptCost"`
}

// RouteLimit configures the token bucket for one route class.
type RouteLimit struct {
	PerMinute int `yaml:"perMinute"`
	Burst     int `yaml:"burst"`
}

// RateLimits holds per-route-class request limits. Registration and login are
// more restrictive than version browsing and writes.
type RateLimits struct {
	Register RouteLimit `yaml:"register"`
	Login    RouteLimit `yaml:"login"`
	Read     RouteLimit `yaml:"read"`
	Write    RouteLimit `yaml:"write"`
}

type Config struct {
	Server     Server     `yaml:"server"`
	Database   Database   `yaml:"database"`
	Auth       Auth       `yaml:"auth"`
	RateLimits RateLimits `yaml:"rateLimits"`
}

// Load loads the versionlog configuration from a file path.
// If configPath is empty, defaults to "./config.yaml".
// The config file path can also be overridden via the VERSIONLOG_CONFIG_PATH
// environment variable.
func Load(configPath ...string) (Config, error) {
	var path string

	if len(configPath) > 0 && configPath[0] != "" {
		path = configPath[0]
	} else if env := os.Getenv("VERSIONLOG_CONFIG_PATH"); env != "" {
		path = env
	} else {
		path = "./config.yaml"
	}

	var config Config

	content, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("trying to open versionlog config file %s: %v", path, err)
	}

	err = yaml.Unmarshal(content, &config)
	if err != nil {
		return config, fmt.Errorf("error unmarshaling YAML %s: %v", path, err)
	}
	return config, nil
}

// Defaults fills in zero-valued fields with sensible defaults.
func (c *Config) Defaults() {
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = ":8080"
	}
	if c.Auth.SessionCookieName == "" {
		c.Auth.SessionCookieName = "versionlog_session"
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 12
	}
	if c.RateLimits.Register.PerMinute == 0 {
		c.RateLimits.Register = RouteLimit{PerMinute: 3, Burst: 3}
	}
	if c.RateLimits.Login.PerMinute == 0 {
		c.RateLimits.Login = RouteLimit{PerMinute: 5, Burst: 5}
	}
	if c.RateLimits.Read.PerMinute == 0 {
		c.RateLimits.Read = RouteLimit{PerMinute: 120, Burst: 30}
	}
	if c.RateLimits.Write.PerMinute == 0 {
		c.RateLimits.Write = RouteLimit{PerMinute: 30, Burst: 10}
	}
}
