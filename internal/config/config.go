package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is built once in main and passed down by reference. Nothing in the
// codebase reads environment variables directly.
type Config struct {
	DiscordToken          string   `env:"DISCORD_TOKEN,required"`
	DiscordGuildBlacklist []string `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`
	InitSlashCommands     bool     `env:"INIT_SLASH_COMMANDS" envDefault:"true"`

	// Audio engine (Lavalink-compatible) node.
	EngineAddress  string `env:"ENGINE_ADDRESS" envDefault:"localhost:2333"`
	EnginePassword string `env:"ENGINE_PASSWORD,required"`
	EngineSecure   bool   `env:"ENGINE_SECURE" envDefault:"false"`

	// Search provider prefix applied to non-URL play queries,
	// e.g. "dzsearch" or "ytsearch".
	SearchPrefix string `env:"SEARCH_PREFIX" envDefault:"dzsearch"`

	TranslateEndpoint string `env:"TRANSLATE_API_ENDPOINT"`
	TranslateAPIKey   string `env:"TRANSLATE_API_KEY"`
	TranslateRoleJA   string `env:"TRANSLATE_ROLE_JA"`
	TranslateRoleEN   string `env:"TRANSLATE_ROLE_EN"`

	StoragePath string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	LogPath     string `env:"LOG_PATH"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// New loads .env (when present) and parses the environment into a Config.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
