package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/worldicons/worldicons-bot/internal/cards"
	"github.com/worldicons/worldicons-bot/internal/domain"
	"github.com/worldicons/worldicons-bot/internal/logger"
	"github.com/worldicons/worldicons-bot/internal/metrics"
	"github.com/worldicons/worldicons-bot/internal/ownership"
	"github.com/worldicons/worldicons-bot/internal/pricing"
)

// Services are the dependencies shared by every command handler.
type Services struct {
	Cards  *cards.Repository
	Prices pricing.Fetcher
	// Ownership is nil when no Helius API key is configured.
	Ownership ownership.Checker

	CollectionName  string
	CollectorRoleID string
	NewMemberRoleID string
}

// CommandHandler handles a slash command.
// A returned error has already been reported to the user; it only drives logging and metrics.
type CommandHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error

// AutocompleteHandler answers autocomplete interactions for one command.
type AutocompleteHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands      map[string]*discordgo.ApplicationCommand
	Handlers      map[string]CommandHandler
	Autocompletes map[string]AutocompleteHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands:      make(map[string]*discordgo.ApplicationCommand),
		Handlers:      make(map[string]CommandHandler),
		Autocompletes: make(map[string]AutocompleteHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// RegisterAutocomplete attaches an autocomplete handler to a registered command name.
func (r *CommandRegistry) RegisterAutocomplete(name string, handler AutocompleteHandler) {
	r.Autocompletes[name] = handler
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	name := i.ApplicationCommandData().Name
	h, ok := r.Handlers[name]
	if !ok {
		slog.Warn("Unknown command", "command", name)
		return
	}

	RecordCommand()
	ctx := logger.NewRequestContext(context.Background())
	log := logger.FromContext(ctx).With("command", name)
	if user := getInteractionUser(i); user != nil {
		log = log.With("user_id", user.ID)
	}

	start := time.Now()
	err := h(ctx, s, i, svc)
	metrics.CommandDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	outcome := commandOutcome(err)
	metrics.CommandsTotal.WithLabelValues(name, outcome).Inc()
	switch outcome {
	case metrics.OutcomeFailure:
		log.Warn("Command failed", "error", err)
	case metrics.OutcomeMiss:
		log.Info("Command found nothing", "reason", err)
	default:
		log.Debug("Command handled", "duration", time.Since(start))
	}
}

// commandOutcome labels a handler result: a card or collection lookup that
// found nothing is a miss, not a failure.
func commandOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domain.ErrCardNotFound), errors.Is(err, errCollectionNotHeld):
		return metrics.OutcomeMiss
	default:
		return metrics.OutcomeFailure
	}
}

// HandleAutocomplete routes autocomplete interactions to the appropriate handler
func (r *CommandRegistry) HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	name := i.ApplicationCommandData().Name
	h, ok := r.Autocompletes[name]
	if !ok {
		slog.Warn("Unhandled autocomplete command", "command", name)
		return
	}
	h(logger.NewRequestContext(context.Background()), s, i, svc)
}

// RegisterCommands intelligently registers/updates commands with Discord
// Only performs updates if commands have changed to avoid rate limits.
// Commands are scoped to b.GuildID when set, global otherwise.
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	slog.Info("Checking Discord commands...", "guild_id", b.GuildID)

	if b.AppID == "" {
		me, err := b.Session.User("@me")
		if err != nil {
			return fmt.Errorf("failed to resolve application id: %w", err)
		}
		b.AppID = me.ID
	}

	// Get currently registered commands from Discord
	existingCmds, err := b.Session.ApplicationCommands(b.AppID, b.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch existing commands: %w", err)
	}

	// Build desired commands list
	desiredCmds := make([]*discordgo.ApplicationCommand, 0, len(registry.Commands))
	for _, cmd := range registry.Commands {
		desiredCmds = append(desiredCmds, cmd)
	}

	// If force update, use bulk overwrite
	if forceUpdate {
		slog.Info("Force update enabled - replacing all commands", "count", len(desiredCmds))
		_, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, b.GuildID, desiredCmds)
		if err != nil {
			return fmt.Errorf("failed to bulk overwrite commands: %w", err)
		}
		slog.Info("Commands force updated successfully")
		return nil
	}

	// Check if commands have changed
	if commandsEqual(existingCmds, desiredCmds) {
		slog.Info("Commands unchanged, skipping registration", "count", len(existingCmds))
		return nil
	}

	// Commands have changed - update them
	slog.Info("Commands changed, updating...",
		"existing", len(existingCmds),
		"desired", len(desiredCmds))

	_, err = b.Session.ApplicationCommandBulkOverwrite(b.AppID, b.GuildID, desiredCmds)
	if err != nil {
		return fmt.Errorf("failed to update commands: %w", err)
	}

	slog.Info("Commands updated successfully", "count", len(desiredCmds))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand)
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, desired := range desired {
		existing, ok := existingMap[desired.Name]
		if !ok {
			return false
		}
		if !commandEqual(existing, desired) {
			return false
		}
	}

	return true
}

// commandEqual checks if two commands are equivalent
func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}

	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}

	if len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}

	return true
}

// optionEqual checks if two command options are equivalent
func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description ||
		a.Required != b.Required || a.Autocomplete != b.Autocomplete {
		return false
	}

	if len(a.Choices) != len(b.Choices) {
		return false
	}
	for i := range a.Choices {
		if a.Choices[i].Name != b.Choices[i].Name || a.Choices[i].Value != b.Choices[i].Value {
			return false
		}
	}

	return true
}
