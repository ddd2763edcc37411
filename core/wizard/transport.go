package wizard

// Reply is one inbound message offered to a session. The engine decides
// whether it is eligible; ineligible replies are simply ignored.
type Reply struct {
	AuthorId  string
	ScopeId   string
	ChannelId string
	Text      string
}

// Prompt is what the engine asks the transport to show. How it is rendered
// (embed, plain text, ...) is the transport's business.
type Prompt struct {
	Title       string
	Description string
	Fields      []PromptField
}

type PromptField struct {
	Name  string
	Value string
}

// MessageHandle identifies the rendered setup message so later turns can
// edit it in place instead of posting a new one.
type MessageHandle struct {
	ChannelId string
	MessageId string
}

// Renderer is the outbound side of the transport.
type Renderer interface {
	Render(channelId string, p Prompt) (MessageHandle, error)
	Update(h MessageHandle, p Prompt) error
}

// Role is a guild role as far as the wizard cares: something to match the
// admin's reply against and an id to persist.
type Role struct {
	Id   string
	Name string
}

// RoleDirectory resolves the roles known to a guild, for the welcome role
// branch.
type RoleDirectory interface {
	Roles(scopeId string) ([]Role, error)
}

// Store is the settings persistence boundary. Each setter is an idempotent
// per-guild upsert; passing an empty value clears the field. There is no
// transaction spanning several setters, so a crash mid-commit can leave a
// branch partially applied.
type Store interface {
	SetPrefix(scopeId, prefix string) error
	SetWelcomeMessage(scopeId, text string) error
	SetWelcomeDmMessage(scopeId, text string) error
	SetWelcomeRole(scopeId, roleId string) error
	SetWelcomeChannel(scopeId, channelId string) error
	SetWelcomeCardEnabled(scopeId string, enabled bool) error
	ResetWelcomeMessage(scopeId string) error
}
