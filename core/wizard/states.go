package wizard

import "fmt"

// State is a node in the setup dialog graph.
type State int

const (
	StateRoot State = iota
	StateSettingsMenu
	StateWelcomeMenu
	StateChannelType
	StateChannelTextAwait
	StateChannelBothAwait
	StateRoleAction
	StateRoleSetAwait
	StateDmAction
	StateDmSetAwait
	StatePrefixSet
)

type timeoutClass int

const (
	menuTimeout timeoutClass = iota // menu navigation
	textTimeout                     // free-text capture
)

type commitFunc func(e *Engine, s *Session, r Reply) (Prompt, error)

// option is one accepted reply category for a menu state. Either next or
// commit is set: next hops to another state, commit writes settings and ends
// the session.
type option struct {
	cat    Category
	next   State
	commit commitFunc
}

// stateSpec declares everything the engine needs to drive one state: the
// prompt to show, how long to wait, and either the menu options plus the
// fallback state for unrecognized replies, or a capture function that
// consumes the next reply verbatim.
type stateSpec struct {
	prompt   func(s *Session) Prompt
	timeout  timeoutClass
	options  []option
	fallback State
	capture  commitFunc
	ackPause bool
}

// The closed transition table. Option order is classification precedence.
// The fallback targets replicate the original bot's habit of dropping back
// to a higher menu when a reply matches nothing; that quirk is load-bearing
// for users who know it, so it is data here rather than accident.
var stateTable = map[State]stateSpec{
	StateRoot: {
		prompt:   promptRoot,
		timeout:  menuTimeout,
		options:  []option{{cat: Category{"settings", "set"}, next: StateSettingsMenu}},
		fallback: StateRoot,
	},
	StateSettingsMenu: {
		prompt:  promptSettingsMenu,
		timeout: menuTimeout,
		options: []option{
			{cat: Category{"welcome", "wel"}, next: StateWelcomeMenu},
			{cat: Category{"prefix", "pre"}, next: StatePrefixSet},
		},
		fallback: StateRoot,
	},
	StateWelcomeMenu: {
		prompt:  promptWelcomeMenu,
		timeout: menuTimeout,
		options: []option{
			{cat: Category{"channel", "channel"}, next: StateChannelType},
			{cat: Category{"role", "role"}, next: StateRoleAction},
			{cat: Category{"dm", "dm"}, next: StateDmAction},
		},
		fallback: StateSettingsMenu,
	},
	StateChannelType: {
		prompt:  promptChannelType,
		timeout: menuTimeout,
		options: []option{
			{cat: Category{"disable", "disable"}, commit: (*Engine).commitChannelDisable},
			{cat: Category{"image", "image"}, commit: (*Engine).commitChannelImage},
			{cat: Category{"text", "text"}, next: StateChannelTextAwait},
			{cat: Category{"both", "both"}, next: StateChannelBothAwait},
		},
		fallback: StateSettingsMenu,
	},
	StateChannelTextAwait: {
		prompt:   promptWelcomeText,
		timeout:  textTimeout,
		capture:  (*Engine).commitChannelText,
		ackPause: true,
	},
	StateChannelBothAwait: {
		prompt:   promptWelcomeText,
		timeout:  textTimeout,
		capture:  (*Engine).commitChannelBoth,
		ackPause: true,
	},
	StateRoleAction: {
		prompt:  promptRoleAction,
		timeout: menuTimeout,
		options: []option{
			{cat: Category{"set", "set"}, next: StateRoleSetAwait},
			{cat: Category{"remove", "remove"}, commit: (*Engine).commitRoleRemove},
		},
		fallback: StateRoot,
	},
	StateRoleSetAwait: {
		prompt:  promptRoleSet,
		timeout: menuTimeout,
		capture: (*Engine).commitRoleSet,
	},
	StateDmAction: {
		prompt:  promptDmAction,
		timeout: menuTimeout,
		options: []option{
			{cat: Category{"set", "set"}, next: StateDmSetAwait},
			{cat: Category{"remove", "remove"}, commit: (*Engine).commitDmRemove},
		},
		fallback: StateRoot,
	},
	StateDmSetAwait: {
		prompt:  promptDmSet,
		timeout: textTimeout,
		capture: (*Engine).commitDmSet,
	},
	StatePrefixSet: {
		prompt:  promptPrefix,
		timeout: menuTimeout,
		capture: (*Engine).commitPrefix,
	},
}

func categoriesOf(options []option) []Category {
	cats := make([]Category, len(options))
	for i, o := range options {
		cats[i] = o.cat
	}
	return cats
}

const wildcardFields = "%USER%, %SERVER%"

func promptRunning() Prompt {
	return Prompt{Description: "**Running Setup...**"}
}

func promptExiting() Prompt {
	return Prompt{Description: "**Exiting setup...**"}
}

func promptDenied() Prompt {
	return Prompt{Description: "**You must have ADMINISTRATOR to run setup.**"}
}

func promptRoot(*Session) Prompt {
	return Prompt{
		Title:       "**Pogbot Setup**",
		Description: "Respond with any menu option to proceed.",
		Fields: []PromptField{
			{"Settings", "Basic server settings."},
			{"Moderator", "Moderator settings."},
			{"Reactions", "Setup role reactions."},
			{"Commands", "Configure custom commands."},
			{"Logs", "Enable event logs."},
			{"Switcher", "Turn on/off commands."},
		},
	}
}

func promptSettingsMenu(*Session) Prompt {
	return Prompt{
		Title:       "**Basic Settings**",
		Description: "Respond with any menu option to proceed.",
		Fields: []PromptField{
			{"Prefix", "Set the bots prefix."},
			{"Welcomes", "Setup welcome actions."},
		},
	}
}

func promptWelcomeMenu(*Session) Prompt {
	return Prompt{
		Title:       "**Welcome Message Setup**",
		Description: "Select the type of welcome message or action you'd like to edit.",
		Fields: []PromptField{
			{"Respond with", "**channel**, **dm**, **role** or **back**"},
		},
	}
}

func promptChannelType(s *Session) Prompt {
	return Prompt{
		Title: "**Channel Welcome Setup**",
		Description: fmt.Sprintf("<#%s> will be set to the welcome message channel.\n\n"+
			"**Choose a type of welcome message to continue.**", s.promptChannel()),
		Fields: []PromptField{
			{"Respond with", "**image**, **text**, **both**, or **disable**"},
		},
	}
}

func promptWelcomeText(*Session) Prompt {
	return Prompt{
		Title:       "**Welcome Message Setup**",
		Description: "**Respond with the text you'd like to use for the welcome message.**",
		Fields: []PromptField{
			{"Wildcards:", wildcardFields},
			{"Example:", "Hey %USER%, glad you're here, welcome to %SERVER%!"},
		},
	}
}

func promptRoleAction(*Session) Prompt {
	return Prompt{
		Title: "**Welcome Role Setup**",
		Description: "Choose an option to hand out roles when members join the server.\n\n" +
			"**Respond with an option to continue.**",
		Fields: []PromptField{
			{"Respond with", "**set** or **remove**"},
		},
	}
}

func promptRoleSet(*Session) Prompt {
	return Prompt{
		Title:       "**Welcome Role Setup**",
		Description: "**Respond with the name or ID for the role you'd like to hand out to users on join.**",
	}
}

func promptDmAction(*Session) Prompt {
	return Prompt{
		Title: "**Direct Message Welcome Setup**",
		Description: "Send a custom message to members when they join.\n\n" +
			"**Respond with an option to continue.**",
		Fields: []PromptField{
			{"Respond with", "**set** or **remove**"},
		},
	}
}

func promptDmSet(*Session) Prompt {
	return Prompt{
		Title:       "**Direct Message Welcome Setup**",
		Description: "**Respond with the text you'd like to use for the welcome message.**",
		Fields: []PromptField{
			{"Wildcards:", wildcardFields},
			{"Example:", "Hey %USER%, thanks for joining %SERVER%! Have a look around, we hope you enjoy your stay with us!"},
		},
	}
}

func promptPrefix(s *Session) Prompt {
	return Prompt{
		Title:       "**Prefix Setting**",
		Description: "Respond with a new prefix for the bot.",
		Fields: []PromptField{
			{"Current Prefix", s.CurrentPrefix},
		},
	}
}
