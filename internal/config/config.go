// Package config loads the service configuration from the environment.
//
// Variables use the SPACETIME_ prefix and "." for nesting, so
// SPACETIME_SERVER.PORT ends up in Config.Server.Port. A `.env` file in the
// working directory is loaded first when present.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from every variable before it is mapped to a key.
const EnvPrefix = "SPACETIME_"

// ServiceName tags logs, traces and New Relic data.
const ServiceName = "spacetime"

// Auth providers.
const (
	AuthProviderClerk = "clerk"
	AuthProviderJWT   = "jwt"
)

// Config is the root configuration object.
//
// Observability and Integration are optional: the former falls back to
// DefaultObservabilityConfig, an empty latter disables e-mail delivery.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds the runtime environment name (local, development, production...).
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig configures the HTTP listener. Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig holds PostgreSQL connection parameters and pool tuning.
// ConnMaxLifetime and ConnMaxIdleTime are in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// DSN renders the postgres:// connection string with the password escaped.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		url.QueryEscape(d.Password),
		net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		d.Name,
		d.SSLMode,
	)
}

// RedisConfig is the "host:port" of the Redis backing asynq.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig selects how bearer tokens are verified.
//
// With the clerk provider SecretKey is the Clerk backend key. With the jwt
// provider it is the HMAC secret HS256 tokens are signed with, and TokenTTL is
// the lifetime of tokens minted by `spacetime token`.
type AuthConfig struct {
	Provider  string        `koanf:"provider" validate:"omitempty,oneof=clerk jwt"`
	SecretKey string        `koanf:"secret_key" validate:"required"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

// IntegrationConfig holds third-party API credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
	AppBaseURL   string `koanf:"app_base_url" validate:"omitempty,url"`
}

// EmailEnabled reports whether publish notifications can be delivered.
func (i IntegrationConfig) EmailEnabled() bool {
	return i.ResendAPIKey != ""
}

// LoadConfig reads the environment into a validated Config.
//
// Values are unmarshalled over defaultConfig, so a partially configured
// observability block keeps the defaults for everything it does not set.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := defaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func defaultConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			Provider: AuthProviderClerk,
			TokenTTL: 30 * 24 * time.Hour,
		},
		Integration: IntegrationConfig{
			EmailFrom: "Spacetime <onboarding@resend.dev>",
		},
		Observability: DefaultObservabilityConfig(),
	}
}
