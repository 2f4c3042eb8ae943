package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldicons/worldicons-bot/internal/logger"
)

var configEnvVars = []string{
	ConfigFileEnv,
	"DISCORD_TOKEN", "DISCORD_APP_ID", "GUILD_ID", "DISCORD_FORCE_COMMAND_UPDATE",
	"ROLE_COLLECTIONNEUR_ID", "ROLE_COLLECTIONNEUR_ID_NEW_USER",
	"HELIUS_API_KEY", "HELIUS_URL", "NFT_COLLECTION_NAME",
	"COINGECKO_URL", "PRICE_CACHE_TTL", "DATA_DIR", "HTTP_ADDR",
	"LOG_LEVEL", "LOG_FORMAT", "ENVIRONMENT", "VERSION",
}

// clearEnvVars unsets every variable Load reads and restores them after the test.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { _ = os.Setenv(key, old) })
		}
		_ = os.Unsetenv(key)
	}
	t.Cleanup(func() {
		for _, key := range configEnvVars {
			_ = os.Unsetenv(key)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads defaults when only the token is set", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DISCORD_TOKEN", "token")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "token", cfg.DiscordToken)
		assert.Equal(t, DefaultCollectionName, cfg.CollectionName)
		assert.Equal(t, DefaultDataDir, cfg.DataDir)
		assert.Equal(t, DefaultCoinGeckoURL, cfg.CoinGeckoURL)
		assert.Equal(t, DefaultHeliusURL, cfg.HeliusURL)
		assert.Equal(t, DefaultPriceCacheTTL, cfg.PriceCacheTTL)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, logger.DefaultVersion, cfg.Version)
		assert.Empty(t, cfg.GuildID)
		assert.Empty(t, cfg.HeliusAPIKey)
		assert.False(t, cfg.ForceCommandUpdate)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("GUILD_ID", "123456789012345678")
		t.Setenv("ROLE_COLLECTIONNEUR_ID", "111")
		t.Setenv("ROLE_COLLECTIONNEUR_ID_NEW_USER", "222")
		t.Setenv("HELIUS_API_KEY", "helius")
		t.Setenv("NFT_COLLECTION_NAME", "Other Cards")
		t.Setenv("PRICE_CACHE_TTL", "2m")
		t.Setenv("DISCORD_FORCE_COMMAND_UPDATE", "true")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "json")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "123456789012345678", cfg.GuildID)
		assert.Equal(t, "111", cfg.CollectorRoleID)
		assert.Equal(t, "222", cfg.NewMemberRoleID)
		assert.Equal(t, "helius", cfg.HeliusAPIKey)
		assert.Equal(t, "Other Cards", cfg.CollectionName)
		assert.Equal(t, 2*time.Minute, cfg.PriceCacheTTL)
		assert.True(t, cfg.ForceCommandUpdate)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("zero ids mean unconfigured", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("GUILD_ID", "0")
		t.Setenv("ROLE_COLLECTIONNEUR_ID", "0")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Empty(t, cfg.GuildID)
		assert.Empty(t, cfg.CollectorRoleID)
	})

	t.Run("yaml file is overridden by env", func(t *testing.T) {
		clearEnvVars(t)
		path := filepath.Join(t.TempDir(), "bot.yaml")
		require.NoError(t, os.WriteFile(path, []byte("discord_token: from-file\ndata_dir: /srv/cards\nnft_collection_name: File Coll\n"), 0o644))
		t.Setenv(ConfigFileEnv, path)
		t.Setenv("NFT_COLLECTION_NAME", "Env Coll")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.DiscordToken)
		assert.Equal(t, "/srv/cards", cfg.DataDir)
		assert.Equal(t, "Env Coll", cfg.CollectionName)
	})

	t.Run("missing config file fails", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "missing.yaml"))
		t.Setenv("DISCORD_TOKEN", "token")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Run("token required", func(t *testing.T) {
		clearEnvVars(t)

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "DISCORD_TOKEN is required")
	})

	t.Run("non numeric role id", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("ROLE_COLLECTIONNEUR_ID", "collector")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ROLE_COLLECTIONNEUR_ID must be a numeric Discord id")
	})

	t.Run("unknown log format", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("LOG_FORMAT", "xml")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "LOG_FORMAT must be one of")
	})
}
