package core

import (
	"encoding/json"
	"os"

	"github.com/jcelliott/lumber"
	"github.com/joho/godotenv"
)

type jsonData struct {
	Development   bool
	AuthToken     string
	CommandPrefix string
	Database      string
	OwnerIds      []string
}

type SettingsStorage struct {
	data jsonData
}

var Settings = SettingsStorage{jsonData{}}

// Load the settings from a json file and stuff it into a new SettingsStorage object.
// A .env file (or the process environment) can override the auth token so the
// token never has to live in the checked-in config.
func LoadSettings(settingsfile string) {
	file, err := os.Open(settingsfile)
	if err != nil {
		LogFatal("Failed to open config file: ", err)
	}
	defer file.Close()
	decoder := json.NewDecoder(file)
	err = decoder.Decode(&Settings.data)
	if err != nil {
		LogFatal("Failed to parse configuration: ", err)
	}

	if err := godotenv.Load(); err == nil {
		LogDebug("Loaded environment overrides from .env")
	}
	if token := os.Getenv("POGBOT_AUTH_TOKEN"); token != "" {
		Settings.data.AuthToken = token
	}

	if !Settings.IsDevelopment() {
		SetLogLevel(lumber.INFO)
	} else {
		LogDebug("Loaded config successfully from ", settingsfile)
	}
}

// Get the bot auth token
func (s *SettingsStorage) AuthToken() string {
	return s.data.AuthToken
}

// Get the default prefix used for bot commands, for guilds that never set one.
func (s *SettingsStorage) CommandPrefix() string {
	if s.data.CommandPrefix == "" {
		return "!"
	}
	return s.data.CommandPrefix
}

// Get whether or not we're running in Development mode.
func (s *SettingsStorage) IsDevelopment() bool {
	return s.data.Development
}

// Path of the sqlite database file
func (s *SettingsStorage) Database() string {
	return s.data.Database
}

// Ids of the bot owners, allowed to use owner-only commands.
func (s *SettingsStorage) OwnerIds() []string {
	return s.data.OwnerIds
}
