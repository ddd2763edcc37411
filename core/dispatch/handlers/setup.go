package handlers

import (
	"errors"

	"PogBot/core"
	"PogBot/core/dispatch"
	"PogBot/core/wizard"

	"github.com/bwmarrin/discordgo"
)

// setup is the entry trigger for the interactive configuration wizard.
type setup struct {
	dispatch.NoOpMessageHandler
}

var setupEngine *wizard.Engine

// SetWizardEngine wires the wizard engine in once the discord session exists.
func SetWizardEngine(engine *wizard.Engine) {
	setupEngine = engine
}

func init() {
	dispatch.Register(&setup{},
		[]dispatch.MessageCommand{
			{Command: "setup", Help: "Walks you through, and lists setup options for Pogbot."},
		},
		nil, false)
}

func (*setup) CommandGroup() string {
	return "Setup Command"
}

func (*setup) HandleCommand(m *dispatch.Message) bool {
	if m.IsPM || setupEngine == nil {
		return false
	}

	perms, err := m.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		core.LogErrorF("Failed to resolve permissions for %s: %s", m.Author.ID, err)
	}
	elevated := err == nil && perms&discordgo.PermissionAdministrator != 0

	guildName := m.GuildID
	if guild, err := m.Guild(m.GuildID); err == nil {
		guildName = guild.Name
	}

	start := wizard.Start{
		ScopeId:       m.GuildID,
		InitiatorId:   m.Author.ID,
		ChannelId:     m.ChannelID,
		GuildName:     guildName,
		CurrentPrefix: m.Prefix,
		Elevated:      elevated,
	}

	// The session runs for minutes; never on the dispatch goroutine.
	go func() {
		outcome, err := setupEngine.Run(start)
		if errors.Is(err, wizard.ErrSessionBusy) {
			core.LogDebugF("Setup already running in guild %s, ignoring", start.ScopeId)
			return
		}
		if err != nil {
			core.LogErrorF("Setup session in guild %s failed: %s", start.ScopeId, err)
			return
		}
		core.LogDebugF("Setup session in guild %s finished with outcome %d", start.ScopeId, outcome)
	}()
	return true
}
