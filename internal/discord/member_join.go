package discord

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/worldicons/worldicons-bot/internal/metrics"
)

// handleMemberJoin grants the new-member role to anyone joining a guild.
// Every failure branch is a silent no-op for the member; only logs record it.
func handleMemberJoin(s *discordgo.Session, m *discordgo.GuildMemberAdd, svc *Services) {
	if svc == nil || svc.NewMemberRoleID == "" || m.Member == nil || m.User == nil {
		slog.Debug("New-member role not configured, skipping")
		return
	}

	log := slog.With("guild_id", m.GuildID, "user_id", m.User.ID)

	role, err := findRole(s, m.GuildID, svc.NewMemberRoleID)
	if err != nil {
		log.Debug("New-member role unavailable, skipping", "error", err)
		return
	}

	if err := grantRole(s, m.GuildID, m.User.ID, role, ReasonNewMember, metrics.ReasonNewMember); err != nil {
		log.Debug("New-member role grant refused, skipping", "error", err)
		return
	}

	log.Info("New-member role granted", "role_id", role.ID)
}
