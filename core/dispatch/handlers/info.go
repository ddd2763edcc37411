package handlers

import (
	"fmt"
	"strings"

	"PogBot/core/dispatch"

	"github.com/bwmarrin/discordgo"
	"github.com/nleeper/goment"
	"github.com/thoas/go-funk"
)

// info bundles the small lookup commands: prefix, echo, userid, serverinfo.
type info struct {
	dispatch.NoOpMessageHandler
}

func init() {
	dispatch.Register(&info{},
		[]dispatch.MessageCommand{
			{Command: "prefix", Help: "Responds with the prefix."},
			{Command: "echo", Help: "Responds with the text provided."},
			{Command: "userid", Help: "Responds with a users ID."},
			{Command: "id", Help: "Responds with a users ID."},
			{Command: "uid", Help: "Responds with a users ID."},
			{Command: "serverinfo", Help: "Responds with information about the discord server."},
			{Command: "sinfo", Help: "Responds with information about the discord server."},
		},
		nil, false)
}

func (*info) CommandGroup() string {
	return "Info Commands"
}

func (*info) HandleCommand(m *dispatch.Message) bool {
	switch m.Command {
	case "prefix":
		m.ReplyToChannel("The prefix here is **%s**", m.Prefix)
	case "echo":
		if len(m.RawArgs) == 0 {
			return false
		}
		m.ReplyToChannel("%s", strings.Join(m.RawArgs, " "))
	case "userid", "id", "uid":
		replyUserIds(m)
	case "serverinfo", "sinfo":
		replyServerInfo(m)
	default:
		return false
	}
	return true
}

func replyUserIds(m *dispatch.Message) {
	var identities []string
	addUser := func(user *discordgo.User) {
		identities = append(identities, fmt.Sprintf("%v has id %s", user.Username, user.ID))
	}
	if len(m.Mentions) == 0 {
		addUser(m.Message.Author)
	} else {
		funk.ForEach(m.Mentions, addUser)
	}
	m.ReplyToChannel("Identities:\n\t%s", strings.Join(identities, "\n\t"))
}

func replyServerInfo(m *dispatch.Message) {
	guild, err := m.Guild(m.GuildID)
	if err != nil {
		m.ReplyToChannel("Couldn't look up this server.")
		return
	}
	created := "unknown"
	if ts, err := discordgo.SnowflakeTimestamp(guild.ID); err == nil {
		if g, err := goment.New(ts); err == nil {
			created = fmt.Sprintf("%s (%s)", g.Format("MMMM Do YYYY"), g.FromNow())
		}
	}
	m.ReplyToChannel("**%s**\n\tOwner: <@%s>\n\tMembers: %d\n\tCreated: %s",
		guild.Name, guild.OwnerID, guild.MemberCount, created)
}
