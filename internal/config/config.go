package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken        string        `envconfig:"BOT_TOKEN" required:"true"`
	DBPath          string        `envconfig:"DB_PATH" default:"./data/outages.db"`
	OutageAPIURL    string        `envconfig:"OUTAGE_API_URL" default:""` // empty means the built-in LOE endpoint
	PollInterval    time.Duration `envconfig:"POLL_INTERVAL" default:"5m"`
	ConversationTTL time.Duration `envconfig:"CONVERSATION_TTL" default:"30m"`
	StreetsPath     string        `envconfig:"STREETS_PATH" default:""`  // empty means the embedded directory
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
