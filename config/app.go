package config

import (
	"fmt"

	"github.com/skillsenselab/identity/auth/jwt"
	"github.com/skillsenselab/identity/auth/password"
	"github.com/skillsenselab/identity/logger"
	"github.com/skillsenselab/identity/observability"
	"github.com/skillsenselab/identity/server"
	"github.com/skillsenselab/identity/store"
)

// AuthConfig groups the token and password hashing configuration.
type AuthConfig struct {
	JWT      jwt.Config      `yaml:"jwt" mapstructure:"jwt"`
	Password password.Config `yaml:"password" mapstructure:"password"`
}

// AppConfig is the full configuration of the identity service.
type AppConfig struct {
	Service   string               `yaml:"service" mapstructure:"service"`
	Version   string               `yaml:"version" mapstructure:"version"`
	Server    server.Config        `yaml:"server" mapstructure:"server"`
	Logger    logger.Config        `yaml:"logger" mapstructure:"logger"`
	Auth      AuthConfig           `yaml:"auth" mapstructure:"auth"`
	Store     store.Config         `yaml:"store" mapstructure:"store"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// Load reads the service configuration from files and environment.
// Defaults are applied and the result validated before returning.
func Load(opts ...LoaderOption) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := LoadInto("identity", cfg, opts...); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills zero-valued fields with defaults.
func (c *AppConfig) ApplyDefaults() {
	if c.Service == "" {
		c.Service = "identity"
	}
	if c.Version == "" {
		c.Version = "dev"
	}
	c.Server.ApplyDefaults()
	c.Logger.ApplyDefaults()
	c.Auth.JWT.ApplyDefaults()
	c.Auth.Password.ApplyDefaults()
	c.Store.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate checks the configuration for errors.
func (c *AppConfig) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	if err := c.Auth.JWT.Validate(); err != nil {
		return fmt.Errorf("auth.jwt: %w", err)
	}
	if err := c.Auth.Password.Validate(); err != nil {
		return fmt.Errorf("auth.password: %w", err)
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	return nil
}
