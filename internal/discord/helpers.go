package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/worldicons/worldicons-bot/internal/domain"
	"github.com/worldicons/worldicons-bot/internal/logger"
)

// respondEphemeral answers an interaction with a message only the invoker sees.
// Use for every failure; failures are never shown to the channel.
//
// Usage:
//
//	respondEphemeral(ctx, s, i, MsgGuildOnly)
func respondEphemeral(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		logger.FromContext(ctx).Error("Failed to send ephemeral response", "error", err)
	}
}

// respondEmbed answers an interaction publicly with a single embed.
func respondEmbed(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	}); err != nil {
		logger.FromContext(ctx).Error("Failed to send response", "error", err)
	}
}

// deferEphemeral acknowledges an interaction privately.
// Required before any outbound call that might take longer than 3 seconds.
// Returns false if deferral failed (should return early from handler).
//
// Usage:
//
//	if !deferEphemeral(ctx, s, i) {
//	    return nil
//	}
//	// slow work, then followupEphemeral
func deferEphemeral(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		logger.FromContext(ctx).Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// followupEphemeral sends a private follow-up after deferEphemeral.
func followupEphemeral(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: message,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		logger.FromContext(ctx).Error("Failed to send follow-up", "error", err)
	}
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// getOptions extracts command options from an interaction.
func getOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	return i.ApplicationCommandData().Options
}

// stringOption returns the named string option, or def when absent.
func stringOption(i *discordgo.InteractionCreate, name, def string) string {
	for _, opt := range getOptions(i) {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return def
}

// focusedValue returns the value being typed in an autocomplete interaction.
func focusedValue(i *discordgo.InteractionCreate) string {
	for _, opt := range getOptions(i) {
		if opt.Focused {
			return opt.StringValue()
		}
	}
	return ""
}

// chunkLines groups lines greedily into blocks whose length in characters,
// counting one newline per line, stays within limit. A single oversize line gets its own block.
func chunkLines(lines []string, limit int) []string {
	var chunks []string
	var current []string
	size := 0
	for _, line := range lines {
		n := utf8.RuneCountInString(line) + 1
		if len(current) > 0 && size+n > limit {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = nil
			size = 0
		}
		current = append(current, line)
		size += n
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n"))
	}
	return chunks
}

// orNotAvailable substitutes ValueNotAvailable for empty embed values.
func orNotAvailable(v string) string {
	if v == "" {
		return ValueNotAvailable
	}
	return v
}

// classifyDiscordError maps Discord REST failures onto domain errors.
// Missing permissions (HTTP 403 or code 50013) become domain.ErrPermission.
func classifyDiscordError(err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return err
	}

	code := 0
	if restErr.Message != nil {
		code = restErr.Message.Code
	}

	switch {
	case code == discordgo.ErrCodeMissingPermissions:
		return fmt.Errorf("%w: %v", domain.ErrPermission, err)
	case code == discordgo.ErrCodeUnknownRole:
		return fmt.Errorf("%w: %v", domain.ErrRoleNotFound, err)
	case code == discordgo.ErrCodeUnknownMember:
		return fmt.Errorf("%w: %v", domain.ErrMemberNotFound, err)
	case restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %v", domain.ErrPermission, err)
	default:
		return err
	}
}
