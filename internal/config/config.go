package config

import (
	"fmt"

	apperrors "github.com/workgram/miniapp-server/internal/errors"
)

type Config interface {
	EnvConfig
	CorsConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetDatabasePath() string
	GetBaseURL() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Security
}

func New() Config {
	return mainConfig{}
}

// Validate checks that both process-wide secrets are present. Called once at
// bootstrap; a missing secret is fatal, never a per-request failure.
func Validate(c Config) error {
	if c.GetBotToken() == "" {
		return fmt.Errorf("%w: TELEGRAM_BOT_TOKEN is not set", apperrors.ErrConfiguration)
	}
	if c.GetSessionSecret() == "" {
		return fmt.Errorf("%w: SESSION_SECRET is not set", apperrors.ErrConfiguration)
	}
	return nil
}
