package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/worldicons/worldicons-bot/internal/logger"
)

// Config holds the bot configuration
type Config struct {
	DiscordToken       string `koanf:"discord_token" validate:"required"`
	AppID              string `koanf:"discord_app_id" validate:"omitempty,snowflake"`
	GuildID            string `koanf:"guild_id" validate:"omitempty,snowflake"`
	ForceCommandUpdate bool   `koanf:"discord_force_command_update"`

	CollectorRoleID string `koanf:"role_collectionneur_id" validate:"omitempty,snowflake"`
	NewMemberRoleID string `koanf:"role_collectionneur_id_new_user" validate:"omitempty,snowflake"`

	HeliusAPIKey   string `koanf:"helius_api_key"`
	HeliusURL      string `koanf:"helius_url" validate:"required,url"`
	CollectionName string `koanf:"nft_collection_name" validate:"required"`

	CoinGeckoURL  string        `koanf:"coingecko_url" validate:"required,url"`
	PriceCacheTTL time.Duration `koanf:"price_cache_ttl" validate:"gte=0"`

	DataDir  string `koanf:"data_dir" validate:"required"`
	HTTPAddr string `koanf:"http_addr"`

	LogLevel    string `koanf:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat   string `koanf:"log_format" validate:"oneof=text json"`
	Environment string `koanf:"environment"`
	Version     string `koanf:"version"`
}

// New returns a Config holding only the defaults.
// Logging defaults come from logger.DefaultConfig.
func New() *Config {
	logDefaults := logger.DefaultConfig()
	return &Config{
		HeliusURL:      DefaultHeliusURL,
		CollectionName: DefaultCollectionName,
		CoinGeckoURL:   DefaultCoinGeckoURL,
		PriceCacheTTL:  DefaultPriceCacheTTL,
		DataDir:        DefaultDataDir,
		HTTPAddr:       DefaultHTTPAddr,
		LogLevel:       logDefaults.Level,
		LogFormat:      logDefaults.Format,
		Environment:    logDefaults.Environment,
		Version:        logDefaults.Version,
	}
}

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New())
//  2. the YAML file named by BOT_CONFIG, if set
//  3. environment variables, after loading .env when present
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// DISCORD_TOKEN -> discord_token; empty variables count as unset.
	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.normalize()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	for _, id := range []*string{&c.AppID, &c.GuildID, &c.CollectorRoleID, &c.NewMemberRoleID} {
		*id = strings.TrimSpace(*id)
		if *id == unsetID {
			*id = ""
		}
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
}
