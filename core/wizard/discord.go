package wizard

import (
	"github.com/bwmarrin/discordgo"
	"github.com/thoas/go-funk"
)

const (
	embedColor     = 0x08d5f7
	embedThumbnail = "https://i.imgur.com/rYKYpDw.png"
)

// DiscordTransport renders prompts as embeds on a discordgo session and
// resolves guild roles. It is the production Renderer and RoleDirectory.
type DiscordTransport struct {
	session *discordgo.Session
}

func NewDiscordTransport(session *discordgo.Session) *DiscordTransport {
	return &DiscordTransport{session: session}
}

func (t *DiscordTransport) Render(channelId string, p Prompt) (MessageHandle, error) {
	msg, err := t.session.ChannelMessageSendEmbed(channelId, embedFor(p))
	if err != nil {
		return MessageHandle{}, err
	}
	return MessageHandle{ChannelId: channelId, MessageId: msg.ID}, nil
}

func (t *DiscordTransport) Update(h MessageHandle, p Prompt) error {
	_, err := t.session.ChannelMessageEditEmbed(h.ChannelId, h.MessageId, embedFor(p))
	return err
}

func (t *DiscordTransport) Roles(scopeId string) ([]Role, error) {
	guildRoles, err := t.session.GuildRoles(scopeId)
	if err != nil {
		return nil, err
	}
	return funk.Map(guildRoles, func(r *discordgo.Role) Role {
		return Role{Id: r.ID, Name: r.Name}
	}).([]Role), nil
}

func embedFor(p Prompt) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       p.Title,
		Description: p.Description,
		Color:       embedColor,
	}
	if p.Title != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: embedThumbnail}
	}
	for _, f := range p.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: true,
		})
	}
	return embed
}
