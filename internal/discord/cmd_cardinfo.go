package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/worldicons/worldicons-bot/internal/domain"
	"github.com/worldicons/worldicons-bot/internal/logger"
	"github.com/worldicons/worldicons-bot/internal/utils"
)

const optionCardName = "nom_carte"

// CardInfoCommand returns the cardinfo command definition and handler
func CardInfoCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "cardinfo",
		Description: "Affiche les détails d'une carte (poids + proba + image).",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         optionCardName,
				Description:  "Nom (complet ou partiel) ou key de la carte",
				Required:     true,
				Autocomplete: true,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		snap, err := reloadCards(ctx, s, i, svc)
		if err != nil {
			return err
		}

		query := stringOption(i, optionCardName, "")
		card, ok := snap.FindCard(query)
		if !ok {
			respondEphemeral(ctx, s, i, fmt.Sprintf(MsgCardNotFound, query))
			return fmt.Errorf("%w: %q", domain.ErrCardNotFound, query)
		}

		embed := &discordgo.MessageEmbed{
			Title: fmt.Sprintf(TitleCardFormat, card.Name),
			Fields: []*discordgo.MessageEmbedField{
				{Name: FieldKey, Value: orNotAvailable(card.Key), Inline: true},
				{Name: FieldTier, Value: snap.TierForCard(card), Inline: true},
				{Name: FieldWeight, Value: strconv.Itoa(card.Weight), Inline: true},
				{Name: FieldProbability, Value: fmt.Sprintf("%.5f%%", snap.Probability(card)*100), Inline: true},
				{Name: FieldURI, Value: orNotAvailable(card.URI)},
			},
		}
		if card.ImageURL != "" {
			embed.Image = &discordgo.MessageEmbedImage{URL: card.ImageURL}
		}

		respondEmbed(ctx, s, i, embed)
		return nil
	}

	return cmd, handler
}

// CardInfoAutocomplete suggests card names matching what the user is typing.
func CardInfoAutocomplete(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	log := logger.FromContext(ctx)

	snap, err := svc.Cards.Reload()
	if err != nil {
		log.Warn("Autocomplete reload failed, using current data", "error", err)
		snap = svc.Cards.Snapshot()
	}

	names := snap.MatchNames(focusedValue(i), AutocompleteLimit)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, name := range names {
		// Discord rejects the whole list if any choice is empty or over 100 characters.
		if strings.TrimSpace(name) == "" {
			continue
		}
		name = utils.Truncate(name, ChoiceMaxLength)
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	}); err != nil {
		log.Error("Failed to send autocomplete choices", "error", err)
	}
}
