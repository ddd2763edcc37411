package services

import (
	"strings"

	"PogBot/core"
	"PogBot/core/database"

	"github.com/bwmarrin/discordgo"
)

var discordSession *discordgo.Session

// SetDiscordSession provides the session used for welcome delivery.
func SetDiscordSession(s *discordgo.Session) {
	discordSession = s
}

// ExpandWildcards substitutes the %USER% and %SERVER% placeholders admins
// can put into welcome texts.
func ExpandWildcards(text, userMention, guildName string) string {
	text = strings.ReplaceAll(text, "%USER%", userMention)
	return strings.ReplaceAll(text, "%SERVER%", guildName)
}

// HandleMemberJoin delivers whatever welcome actions the guild configured
// through setup: the join role, the DM text, and the channel text. Card
// image compositing isn't done here; when only the card flag is set there
// is nothing to send.
func HandleMemberJoin(m *discordgo.GuildMemberAdd) {
	s := discordSession
	if s == nil {
		return
	}
	server := database.FetchServer(m.GuildID)
	if server == nil {
		return
	}

	guildName := m.GuildID
	if guild, err := s.State.Guild(m.GuildID); err == nil {
		guildName = guild.Name
	}

	if server.WelcomeRole != nil {
		if err := s.GuildMemberRoleAdd(m.GuildID, m.User.ID, *server.WelcomeRole); err != nil {
			core.LogErrorF("Failed to grant welcome role %s in guild %s: %s", *server.WelcomeRole, m.GuildID, err)
		}
	}

	if server.WelcomeDmMessage != nil {
		if ch, err := s.UserChannelCreate(m.User.ID); err == nil {
			text := ExpandWildcards(*server.WelcomeDmMessage, m.User.Mention(), guildName)
			if _, err := s.ChannelMessageSend(ch.ID, text); err != nil {
				core.LogErrorF("Failed to DM welcome to %s: %s", m.User.ID, err)
			}
		}
	}

	if server.WelcomeMessage != nil && server.WelcomeChannel != nil {
		text := ExpandWildcards(*server.WelcomeMessage, m.User.Mention(), guildName)
		if _, err := s.ChannelMessageSend(*server.WelcomeChannel, text); err != nil {
			core.LogErrorF("Failed to send welcome in guild %s: %s", m.GuildID, err)
		}
	}
}
