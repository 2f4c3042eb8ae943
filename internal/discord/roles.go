package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/worldicons/worldicons-bot/internal/domain"
	"github.com/worldicons/worldicons-bot/internal/metrics"
)

// findRole looks roleID up in the state cache, falling back to the REST API.
func findRole(s *discordgo.Session, guildID, roleID string) (*discordgo.Role, error) {
	if roleID == "" {
		return nil, fmt.Errorf("%w: role id not set", domain.ErrConfiguration)
	}

	if s.State != nil {
		if role, err := s.State.Role(guildID, roleID); err == nil {
			return role, nil
		}
	}

	roles, err := s.GuildRoles(guildID)
	if err != nil {
		return nil, classifyDiscordError(err)
	}
	for _, role := range roles {
		if role.ID == roleID {
			return role, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrRoleNotFound, roleID)
}

// grantRole adds role to the member and counts the grant under metricReason.
func grantRole(s *discordgo.Session, guildID, userID string, role *discordgo.Role, auditReason, metricReason string) error {
	if err := s.GuildMemberRoleAdd(guildID, userID, role.ID, discordgo.WithAuditLogReason(auditReason)); err != nil {
		return classifyDiscordError(err)
	}
	metrics.RolesGranted.WithLabelValues(metricReason).Inc()
	return nil
}
