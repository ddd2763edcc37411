package database

import (
	"fmt"

	"PogBot/core"
)

// Server holds the per-guild settings written by the setup wizard and read
// back by the dispatcher and the welcome service. Every column except the id
// is optional; an unset column means "feature off".
type Server struct {
	ServerId         string  `db:"server_id"`
	Prefix           *string `db:"prefix"`
	WelcomeMessage   *string `db:"welcome_message"`
	WelcomeDmMessage *string `db:"welcome_dm_message"`
	WelcomeRole      *string `db:"welcome_role"`
	WelcomeChannel   *string `db:"welcome_channel"`
	WelcomeCard      bool    `db:"welcome_card"`
}

// Column names accepted by upsertColumn. The wizard never hands us SQL, only
// values; columns are always one of these constants.
const (
	colPrefix           = "prefix"
	colWelcomeMessage   = "welcome_message"
	colWelcomeDmMessage = "welcome_dm_message"
	colWelcomeRole      = "welcome_role"
	colWelcomeChannel   = "welcome_channel"
	colWelcomeCard      = "welcome_card"
)

func upsertColumn(column, serverId string, value interface{}) error {
	mu.Lock()
	defer mu.Unlock()
	if database == nil {
		return fmt.Errorf("database isn't open")
	}
	query := fmt.Sprintf(`INSERT INTO servers (server_id, %[1]s) VALUES ($1, $2)
		ON CONFLICT(server_id) DO UPDATE SET %[1]s = excluded.%[1]s`, column)
	_, err := database.Exec(query, serverId, value)
	if err != nil {
		core.LogErrorF("Failed to update %s for server %s: %s", column, serverId, err)
	}
	return err
}

// nullable maps the wizard's "clear this field" empty string to SQL NULL.
func nullable(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

func SetPrefix(serverId, prefix string) error {
	return upsertColumn(colPrefix, serverId, nullable(prefix))
}

func SetWelcomeMessage(serverId, text string) error {
	return upsertColumn(colWelcomeMessage, serverId, nullable(text))
}

func SetWelcomeDmMessage(serverId, text string) error {
	return upsertColumn(colWelcomeDmMessage, serverId, nullable(text))
}

func SetWelcomeRole(serverId, roleId string) error {
	return upsertColumn(colWelcomeRole, serverId, nullable(roleId))
}

func SetWelcomeChannel(serverId, channelId string) error {
	return upsertColumn(colWelcomeChannel, serverId, nullable(channelId))
}

func SetWelcomeCardEnabled(serverId string, enabled bool) error {
	card := 0
	if enabled {
		card = 1
	}
	return upsertColumn(colWelcomeCard, serverId, card)
}

// ResetWelcomeMessage clears the channel welcome text. The wizard's disable
// branch calls this alongside clearing the channel and the card flag.
func ResetWelcomeMessage(serverId string) error {
	return upsertColumn(colWelcomeMessage, serverId, nil)
}

// FetchServer returns the stored settings for a guild, or nil when the guild
// has never been configured.
func FetchServer(serverId string) *Server {
	mu.RLock()
	defer mu.RUnlock()
	if database == nil {
		core.LogError("Database isn't open. Shouldn't happen.")
		return nil
	}
	server := Server{}
	err := database.Get(&server, "SELECT * FROM servers WHERE server_id=$1", serverId)
	if err != nil {
		return nil
	}
	return &server
}

// GetPrefix returns the guild's configured prefix, or the empty string when
// the guild never set one. The dispatcher falls back to the config default.
func GetPrefix(serverId string) string {
	server := FetchServer(serverId)
	if server == nil || server.Prefix == nil {
		return ""
	}
	return *server.Prefix
}

// ServerStore adapts the package-level setters to the wizard's persistence
// interface so the engine never touches SQL.
type ServerStore struct{}

func (ServerStore) SetPrefix(scopeId, prefix string) error {
	return SetPrefix(scopeId, prefix)
}

func (ServerStore) SetWelcomeMessage(scopeId, text string) error {
	return SetWelcomeMessage(scopeId, text)
}

func (ServerStore) SetWelcomeDmMessage(scopeId, text string) error {
	return SetWelcomeDmMessage(scopeId, text)
}

func (ServerStore) SetWelcomeRole(scopeId, roleId string) error {
	return SetWelcomeRole(scopeId, roleId)
}

func (ServerStore) SetWelcomeChannel(scopeId, channelId string) error {
	return SetWelcomeChannel(scopeId, channelId)
}

func (ServerStore) SetWelcomeCardEnabled(scopeId string, enabled bool) error {
	return SetWelcomeCardEnabled(scopeId, enabled)
}

func (ServerStore) ResetWelcomeMessage(scopeId string) error {
	return ResetWelcomeMessage(scopeId)
}
