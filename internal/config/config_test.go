package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	return &Config{
		Env:        "test",
		Port:       "8460",
		JWTSecret:  "secure-secret-at-least-32-chars-long",
		DBPassword: "secure-password",
		DBSSLMode:  "disable",
		RedisURL:   "redis://localhost:6379",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid test config", func(_ *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Short JWT secret outside production", func(c *Config) { c.JWTSecret = "short" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validTestConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateProduction(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Default JWT secret", func(c *Config) { c.JWTSecret = "your-secret-key-change-in-production" }, true},
		{"Short JWT secret", func(c *Config) { c.JWTSecret = "short" }, true},
		{"Default DB password", func(c *Config) { c.DBPassword = "password" }, true},
		{"SSL disabled", func(c *Config) { c.DBSSLMode = "disable" }, true},
		{"Empty SSL mode", func(c *Config) { c.DBSSLMode = "" }, true},
		{"Hardened config", func(_ *Config) {}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validTestConfig()
			c.Env = "production"
			c.DBSSLMode = "require"
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
