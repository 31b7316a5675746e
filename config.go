package users

import (
	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// Config is the environment surface of the service.
type Config struct {
	Port          string `env:"APP_PORT" envDefault:"8080"`
	DatabasePath  string `env:"DB_PATH" envDefault:"users.db"`
	AdminUsername string `env:"DEFAULT_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"DEFAULT_ADMIN_PASSWORD"`
	JWTSecret     string `env:"JWT_SECRET"`
	JWKSetURL     string `env:"JWKS_URL"`
	Debug         bool   `env:"APP_DEBUG"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, errors.CategoryBadInput, "failed to parse environment configuration").
			WithCode(errors.CodeBadRequest)
	}
	return cfg, nil
}

// Bootstrap returns the admin bootstrapper settings.
func (c Config) Bootstrap() BootstrapConfig {
	return BootstrapConfig{
		Username: c.AdminUsername,
		Password: c.AdminPassword,
	}
}
