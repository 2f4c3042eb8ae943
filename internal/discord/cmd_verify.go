package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/worldicons/worldicons-bot/internal/domain"
	"github.com/worldicons/worldicons-bot/internal/logger"
	"github.com/worldicons/worldicons-bot/internal/metrics"
)

const optionWallet = "wallet"

// errCollectionNotHeld is the verify miss: the wallet's first page holds no matching asset.
var errCollectionNotHeld = errors.New("collection not held")

// VerifyCommand returns the verify command definition and handler
func VerifyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "verify",
		Description: "Vérifie un wallet et attribue le rôle Collectionneur si NFT trouvé.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionWallet,
				Description: "Adresse Solana du wallet (base58)",
				Required:    true,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		if _, err := reloadCards(ctx, s, i, svc); err != nil {
			return err
		}

		if i.GuildID == "" {
			respondEphemeral(ctx, s, i, MsgGuildOnly)
			return domain.ErrNotInGuild
		}
		if svc.Ownership == nil {
			respondEphemeral(ctx, s, i, MsgMissingHeliusKey)
			return fmt.Errorf("%w: helius api key not set", domain.ErrConfiguration)
		}

		if !deferEphemeral(ctx, s, i) {
			return nil
		}

		log := logger.FromContext(ctx)
		wallet := stringOption(i, optionWallet, "")

		owns, err := svc.Ownership.OwnsCollection(ctx, wallet, svc.CollectionName)
		if err != nil {
			log.Error("Ownership lookup failed", "error", err)
			if errors.Is(err, domain.ErrConfiguration) {
				followupEphemeral(ctx, s, i, MsgMissingHeliusKey)
			} else {
				followupEphemeral(ctx, s, i, fmt.Sprintf(MsgHeliusErrorFormat, err))
			}
			return err
		}
		if !owns {
			followupEphemeral(ctx, s, i, MsgCollectionNotFound)
			return errCollectionNotHeld
		}

		role, err := findRole(s, i.GuildID, svc.CollectorRoleID)
		if err != nil {
			followupEphemeral(ctx, s, i, roleFailureMessage(err))
			return err
		}

		user := getInteractionUser(i)
		if i.Member == nil || user == nil {
			followupEphemeral(ctx, s, i, MsgMemberNotFound)
			return domain.ErrMemberNotFound
		}

		if err := grantRole(s, i.GuildID, user.ID, role, ReasonVerified, metrics.ReasonVerified); err != nil {
			followupEphemeral(ctx, s, i, roleFailureMessage(err))
			return err
		}

		log.Info("Collector role granted", "guild_id", i.GuildID, "role_id", role.ID)
		followupEphemeral(ctx, s, i, MsgVerifySuccess)
		return nil
	}

	return cmd, handler
}

// roleFailureMessage keeps permission failures distinct from lookup failures.
func roleFailureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrPermission):
		return MsgRolePermission
	case errors.Is(err, domain.ErrMemberNotFound):
		return MsgMemberNotFound
	case errors.Is(err, domain.ErrRoleNotFound), errors.Is(err, domain.ErrConfiguration):
		return MsgRoleNotFound
	default:
		return MsgGenericError
	}
}
