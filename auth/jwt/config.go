package jwt

import (
	"errors"
	"time"
)

// Config configures the JWT token service.
//
// Access and refresh tokens are signed with distinct secrets. This is a
// deliberate invariant: a stolen long-lived refresh token must never verify
// as a short-lived access token, and vice versa.
type Config struct {
	// AccessSecret is the HMAC key for access tokens (required).
	AccessSecret string `yaml:"access_secret" mapstructure:"access_secret"`

	// RefreshSecret is the HMAC key for refresh tokens (required).
	RefreshSecret string `yaml:"refresh_secret" mapstructure:"refresh_secret"`

	// Issuer is the "iss" claim (optional).
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// AccessTokenTTL is the lifetime of access tokens (default: 15m).
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" mapstructure:"access_token_ttl"`

	// RefreshTokenTTL is the lifetime of refresh tokens (default: 7d).
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" mapstructure:"refresh_token_ttl"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = 15 * time.Minute
	}
	if c.RefreshTokenTTL == 0 {
		c.RefreshTokenTTL = 7 * 24 * time.Hour
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.AccessSecret == "" {
		return errors.New("jwt: access_secret is required")
	}
	if c.RefreshSecret == "" {
		return errors.New("jwt: refresh_secret is required")
	}
	if c.AccessSecret == c.RefreshSecret {
		return errors.New("jwt: access_secret and refresh_secret must differ")
	}
	return nil
}
