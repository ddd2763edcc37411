package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"PogBot/core"
	"PogBot/core/database"
	"PogBot/core/dispatch"
	"PogBot/core/dispatch/handlers" // Also lets the handlers self-register
	"PogBot/core/services"
	"PogBot/core/wizard"

	"github.com/bwmarrin/discordgo"
)

// Variables used for command line parameters
var (
	settingsFile string
)

var setupEngine *wizard.Engine

func init() {
	flag.StringVar(&settingsFile, "c", "config-dev.json", "Configuration path")
	flag.Parse()
}

func main() {
	core.LoadSettings(settingsFile)
	database.InitializeDatabase()
	defer database.Close()
	dispatch.SettingsLoaded()

	// Create a new Discord session using the provided bot token.
	dg, err := discordgo.New("Bot " + core.Settings.AuthToken())
	if err != nil {
		core.LogFatal("error creating Discord session,", err)
		return
	}

	// The wizard talks to discord through the transport and writes settings
	// through the server store; the registry keeps one session per guild.
	transport := wizard.NewDiscordTransport(dg)
	setupEngine = wizard.NewEngine(wizard.NewRegistry(), database.ServerStore{}, transport, transport)
	handlers.SetWizardEngine(setupEngine)

	// Register handlers
	dg.AddHandler(messageCreate)
	dg.AddHandler(messageUpdate)
	dg.AddHandler(memberJoin)

	// Open a websocket connection to Discord and begin listening.
	err = dg.Open()
	if err != nil {
		core.LogFatal("error opening connection,", err)
		return
	}

	defer dg.Close()

	// Set Discord session for services (welcome delivery)
	services.SetDiscordSession(dg)

	// Wait here until CTRL-C or other term signal is received.
	core.LogInfoF("Bot is now running.  Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt, os.Kill)
	<-sc
}

// This function will be called (due to AddHandler above) every time a new
// message is created on any channel that the autenticated bot has access to.
func messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}

	// An active setup session gets first look at every message; the engine
	// leaves anything it doesn't own untouched.
	setupEngine.Deliver(wizard.Reply{
		AuthorId:  m.Author.ID,
		ScopeId:   m.GuildID,
		ChannelId: m.ChannelID,
		Text:      m.Content,
	})

	go dispatch.Dispatch(s, m.Message)
}

func messageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	go dispatch.Dispatch(s, m.Message)
}

func memberJoin(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
	go services.HandleMemberJoin(m)
}
