package config

type SecurityConfig interface {
	// GetBotToken is the Telegram bot token, the shared secret init data
	// signatures are verified against.
	GetBotToken() string
	// GetSessionSecret signs issued session tokens.
	GetSessionSecret() string
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetBotToken() string {
	return GetEnv("TELEGRAM_BOT_TOKEN", "")
}

func (Security) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "")
}
