package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, loaded from the environment with an
// optional .env file for development.
type Config struct {
	Addr        string `env:"DRAFT_ADDR" envDefault:":8080"`
	DatabaseURL string `env:"DRAFT_DATABASE_URL,required,notEmpty"`
	Debug       bool   `env:"DRAFT_DEBUG" envDefault:"false"`

	DiscordClientID     string `env:"DRAFT_DISCORD_CLIENT_ID,required,notEmpty"`
	DiscordClientSecret string `env:"DRAFT_DISCORD_CLIENT_SECRET,required,notEmpty"`
	DiscordRedirectURL  string `env:"DRAFT_DISCORD_REDIRECT_URL,required,notEmpty"`

	SessionSecret string        `env:"DRAFT_SESSION_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"DRAFT_SESSION_TTL" envDefault:"168h"`
	SecureCookies bool          `env:"DRAFT_SECURE_COOKIES" envDefault:"true"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if len(cfg.SessionSecret) < 32 {
		return Config{}, fmt.Errorf("DRAFT_SESSION_SECRET must be at least 32 bytes")
	}
	return cfg, nil
}
