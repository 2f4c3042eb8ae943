package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/worldicons/worldicons-bot/internal/cards"
	"github.com/worldicons/worldicons-bot/internal/domain"
	"github.com/worldicons/worldicons-bot/internal/logger"
)

// LootRateCommand returns the lootrate command definition and handler
func LootRateCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "lootrate",
		Description: "Affiche les taux (probabilités) calculés depuis les poids des cartes.",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		snap, err := reloadCards(ctx, s, i, svc)
		if err != nil {
			return err
		}

		if snap.TotalWeight() <= 0 {
			respondEphemeral(ctx, s, i, MsgNoWeight)
			return domain.ErrNoWeight
		}

		respondEmbed(ctx, s, i, lootRateEmbed(snap))
		return nil
	}

	return cmd, handler
}

// lootRateEmbed lists every card with its probability, split across fields
// that respect Discord's field length limit.
func lootRateEmbed(snap *cards.Snapshot) *discordgo.MessageEmbed {
	all := snap.Cards()
	lines := make([]string, 0, len(all))
	for _, c := range all {
		lines = append(lines, fmt.Sprintf("**%s** : %.3f%%", c.Name, snap.Probability(c)*100))
	}

	chunks := chunkLines(lines, EmbedFieldMaxLength)
	fields := make([]*discordgo.MessageEmbedField, 0, len(chunks))
	for idx, chunk := range chunks {
		name := FieldAllCards
		if idx > 0 {
			name = FieldAllCardsCont
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: name, Value: chunk})
	}

	return &discordgo.MessageEmbed{
		Title:  TitleLootRate,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{Text: FooterLootRate},
	}
}

// reloadCards refreshes the repository before a command runs.
// On failure the error is reported privately and returned.
func reloadCards(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) (*cards.Snapshot, error) {
	snap, err := svc.Cards.Reload()
	if err != nil {
		logger.FromContext(ctx).Error("Failed to reload card data", "error", err)
		respondEphemeral(ctx, s, i, fmt.Sprintf(MsgDataErrorFormat, err))
		return nil, err
	}
	return snap, nil
}
