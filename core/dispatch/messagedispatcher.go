package dispatch

import (
	"strings"

	"PogBot/core"
	"PogBot/core/database"

	"github.com/bwmarrin/discordgo"
	"github.com/thoas/go-funk"
)

// This class will parse and dispatch commands to the appropriate command handler.
// It also filters out any response from messages sent by itself, and which don't
// carry the guild's command prefix. The prefix is whatever the setup wizard
// stored for the guild, falling back to the configured default.
type MessageDispatcher struct {
	// allows prefix handling, i.e "randomcat" and "randomdog" could both go to a "random" prefix handler
	prefixHandlers map[string][]MessageHandler
	// requires either just the command, i.e "route" or command with arguments "route 32 2.3"
	commandHandlers map[string][]MessageHandler
	// Anything matching
	anythingHandlers []MessageHandler
	// every registered handler, for settings propagation
	allHandlers []MessageHandler
}

var Dispatcher = MessageDispatcher{
	prefixHandlers:  map[string][]MessageHandler{},
	commandHandlers: map[string][]MessageHandler{},
}

func Register(handler MessageHandler, commands, prefixes []MessageCommand, wildcard bool) {
	funk.ForEach(prefixes, func(prefix MessageCommand) {
		Dispatcher.addHandlerForCommand(prefix, &Dispatcher.prefixHandlers, handler)
	})

	funk.ForEach(commands, func(cmd MessageCommand) {
		Dispatcher.addHandlerForCommand(cmd, &Dispatcher.commandHandlers, handler)
	})

	if wildcard {
		Dispatcher.anythingHandlers = append(Dispatcher.anythingHandlers, handler)
	}
	Dispatcher.allHandlers = append(Dispatcher.allHandlers, handler)
}

// SettingsLoaded tells every registered handler the settings file is ready.
func SettingsLoaded() {
	funk.ForEach(Dispatcher.allHandlers, func(handler MessageHandler) {
		handler.SettingsLoaded()
	})
}

func Dispatch(session *discordgo.Session, message *discordgo.Message) {
	Dispatcher.Dispatch(session, message)
}

// Parse and dispatch the message.
func (dispatcher *MessageDispatcher) Dispatch(session *discordgo.Session, message *discordgo.Message) {
	// Short-circuit if author of the message is the bot itself to avoid loops
	if message.Author == nil || message.Author.ID == session.State.User.ID {
		return
	}

	core.LogDebug("Got message: ", message.Content)

	// Ensure that the string has the prefix this guild is listening for
	prefix := PrefixForGuild(message.GuildID)
	trimmed := strings.TrimPrefix(message.Content, prefix)
	if trimmed == message.Content {
		return
	}

	// Split the command into parameters, and clean them up.
	rawArgs := funk.FilterString(strings.Split(trimmed, " "), func(str string) bool {
		return strings.Trim(str, "\t\r") != ""
	})

	// Just a bunch of whitespaces
	if len(rawArgs) == 0 {
		return
	}

	core.LogDebug("Parsed parameters:", rawArgs)

	m := &Message{
		Message: message,
		Session: session,
		Command: strings.ToLower(rawArgs[0]),
		Args:    rawArgs[1:],
		RawArgs: rawArgs[1:],
		Prefix:  prefix,
		IsPM:    message.GuildID == "",
	}

	if commandHandlers := dispatcher.commandHandlers[m.Command]; len(commandHandlers) > 0 {
		core.LogDebugF("Found %d command handlers for %s.", len(commandHandlers), m.Command)
		for _, handler := range commandHandlers {
			if handler.HandleCommand(m) {
				core.LogDebug("   => handled.")
				return
			}
		}
	}

	for prefix, prefixHandlers := range dispatcher.prefixHandlers {
		if strings.HasPrefix(m.Command, prefix) {
			core.LogDebug("Found prefix handlers for", prefix)
			for _, handler := range prefixHandlers {
				if handler.HandlePrefix(prefix, m) {
					core.LogDebug("   => handled.")
					return
				}
			}
		}
	}

	for _, handler := range dispatcher.anythingHandlers {
		if handler.HandleAnything(m) {
			core.LogDebug("   => handled.")
			return
		}
	}
}

// PrefixForGuild resolves the command prefix for a guild: the one the setup
// wizard stored, or the configured default when the guild never set one.
func PrefixForGuild(guildId string) string {
	if guildId != "" {
		if prefix := database.GetPrefix(guildId); prefix != "" {
			return prefix
		}
	}
	return core.Settings.CommandPrefix()
}

// Helper method to register a command for a handler.
func (dispatcher *MessageDispatcher) addHandlerForCommand(command MessageCommand, dict *map[string][]MessageHandler, handler MessageHandler) {
	commandStr := strings.ToLower(command.Command)
	(*dict)[commandStr] = append((*dict)[commandStr], handler)
	if core.IsLogInfo() {
		core.LogInfoF("Registered command: %s for %s", commandStr, toName(handler))
	}
}
