package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	DB       DBConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Secret   string        `env:"SECRET" env-required:"true"`
	FlashTTL time.Duration `env:"FLASH_TTL" env-default:"5m"`
}

type AppConfig struct {
	Env string `env:"APP_ENV" env-default:"development"`
}

type HTTPConfig struct {
	Port         string        `env:"PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type DBConfig struct {
	// Driver is "sqlite3" or "mysql". MySQL DSNs need parseTime=true.
	Driver string `env:"DB_DRIVER" env-default:"sqlite3"`
	DSN    string `env:"DATABASE_DSN" env-default:"db.db?_foreign_keys=on"`
}

type RedisConfig struct {
	// Addr is "host:port". Empty disables the post list cache.
	Addr     string        `env:"REDIS_ADDR" env-default:""`
	Password string        `env:"REDIS_PASSWORD" env-default:""`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `env:"REDIS_TTL" env-default:"60s"`
}

type AuthConfig struct {
	// StrictRegistration swaps the legacy compound registration check for
	// explicit login and password rules.
	StrictRegistration bool    `env:"STRICT_REGISTRATION" env-default:"false"`
	RateRPS            float64 `env:"AUTH_RATE_RPS" env-default:"5"`
	RateBurst          int     `env:"AUTH_RATE_BURST" env-default:"10"`
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	// env-required only catches an unset variable, not an empty one.
	if cfg.Secret == "" {
		return Config{}, fmt.Errorf("SECRET is required")
	}
	if cfg.DB.Driver != "sqlite3" && cfg.DB.Driver != "mysql" {
		return Config{}, fmt.Errorf("DB_DRIVER must be sqlite3 or mysql, got %q", cfg.DB.Driver)
	}
	if cfg.Auth.RateRPS <= 0 || cfg.Auth.RateBurst <= 0 {
		return Config{}, fmt.Errorf("AUTH_RATE_RPS and AUTH_RATE_BURST must be positive")
	}
	return cfg, nil
}
