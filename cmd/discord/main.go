package main

import (
	"log/slog"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/worldicons/worldicons-bot/internal/cards"
	"github.com/worldicons/worldicons-bot/internal/config"
	"github.com/worldicons/worldicons-bot/internal/discord"
	"github.com/worldicons/worldicons-bot/internal/logger"
	"github.com/worldicons/worldicons-bot/internal/ownership"
	"github.com/worldicons/worldicons-bot/internal/pricing"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = logger.DefaultVersion

// CommandFactory creates a Discord command and its handler.
// Used to register all available commands in one place.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	// Load configuration (.env, optional YAML, environment)
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	if cfg.Version == logger.DefaultVersion {
		cfg.Version = Version
	}

	// Setup logging
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, logger.DefaultServiceName, cfg.Version, cfg.Environment, false))

	// Card data must load once before the bot goes online
	repo, err := cards.NewRepository(cards.NewLoader(cfg.DataDir))
	if err != nil {
		slog.Error("Failed to load card data", "data_dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Card data loaded", "cards", len(repo.Snapshot().Cards()), "total_weight", repo.TotalWeight())

	svc := &discord.Services{
		Cards:           repo,
		Prices:          pricing.NewClient(cfg.CoinGeckoURL, cfg.PriceCacheTTL),
		CollectionName:  cfg.CollectionName,
		CollectorRoleID: cfg.CollectorRoleID,
		NewMemberRoleID: cfg.NewMemberRoleID,
	}
	if cfg.HeliusAPIKey != "" {
		svc.Ownership = ownership.NewClient(cfg.HeliusURL, cfg.HeliusAPIKey)
	} else {
		slog.Warn("HELIUS_API_KEY not set, /verify is disabled")
	}
	if cfg.CollectorRoleID == "" {
		slog.Warn("ROLE_COLLECTIONNEUR_ID not set, /verify cannot grant the collector role")
	}

	// Create bot
	bot, err := discord.New(discord.Config{
		Token:   cfg.DiscordToken,
		AppID:   cfg.AppID,
		GuildID: cfg.GuildID,
	}, svc)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	// Start services
	if cfg.HTTPAddr != "" {
		httpServer := discord.NewHTTPServer(cfg.HTTPAddr, bot.Connected)
		httpServer.Start()
		defer httpServer.Stop()
	}

	// Register all commands
	registerCommands(bot, getCommandFactories())
	bot.Registry.RegisterAutocomplete("cardinfo", discord.CardInfoAutocomplete)

	// Register with Discord API
	if cfg.ForceCommandUpdate {
		slog.Info("Force command update enabled via environment variable")
	}
	if err := bot.RegisterCommands(bot.Registry, cfg.ForceCommandUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Don't exit - bot can still run if commands are already registered
	}

	// Run bot
	if err := bot.Run(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

// getCommandFactories returns a list of all available Discord command factories.
// This provides a single place to see and manage all registered commands.
func getCommandFactories() []CommandFactory {
	return []CommandFactory{
		discord.LootRateCommand,
		discord.CardInfoCommand,
		discord.PriceCommand,
		discord.VerifyCommand,
	}
}

// registerCommands registers all provided command factories with the bot's registry.
// Each factory is called to create the command and handler, then registered.
func registerCommands(bot *discord.Bot, factories []CommandFactory) {
	for _, factory := range factories {
		cmd, handler := factory()
		bot.Registry.Register(cmd, handler)
	}
}
