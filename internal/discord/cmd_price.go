package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/worldicons/worldicons-bot/internal/logger"
	"github.com/worldicons/worldicons-bot/internal/pricing"
)

const optionCurrency = "devise"

// PriceCommand returns the price command definition and handler
func PriceCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "price",
		Description: "Affiche le prix actuel de SUI (et SOL).",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionCurrency,
				Description: "Devise fiat (eur, usd, etc.)",
				Required:    false,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		if _, err := reloadCards(ctx, s, i, svc); err != nil {
			return err
		}

		currency := pricing.NormalizeCurrency(stringOption(i, optionCurrency, pricing.DefaultCurrency))
		quote, err := svc.Prices.FetchPrices(ctx, currency)
		if err != nil {
			logger.FromContext(ctx).Error("Price lookup failed", "currency", currency, "error", err)
			if se, ok := pricing.IsStatusError(err); ok {
				respondEphemeral(ctx, s, i, se.Error())
			} else {
				respondEphemeral(ctx, s, i, fmt.Sprintf(MsgPriceAPIErrorFormat, err))
			}
			return err
		}

		respondEmbed(ctx, s, i, priceEmbed(quote))
		return nil
	}

	return cmd, handler
}

// priceEmbed shows one inline field per tracked asset.
func priceEmbed(quote *pricing.Quote) *discordgo.MessageEmbed {
	unit := cases.Upper(language.Und).String(quote.Currency)

	fields := make([]*discordgo.MessageEmbedField, 0, len(pricing.Assets))
	for _, asset := range pricing.Assets {
		value := ValueNotAvailable
		if p, ok := quote.Price(asset.ID); ok {
			value = p.String() + " " + unit
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: asset.Label, Value: value, Inline: true})
	}

	return &discordgo.MessageEmbed{
		Title:  TitlePrice,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{Text: FooterPrice},
	}
}
