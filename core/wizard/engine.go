package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"PogBot/core"

	"github.com/thoas/go-funk"
)

// Outcome is how a finished session ended.
type Outcome int

const (
	OutcomeCommitted Outcome = iota
	OutcomeTimedOut
	OutcomePermissionDenied
)

// ErrSessionBusy is returned when a guild already has a setup session
// running. The caller is expected to drop the invocation silently.
var ErrSessionBusy = errors.New("setup session already active for this guild")

// Timeouts are the waiting budgets for the three kinds of turns. Production
// maps them to seconds; tests inject milliseconds.
type Timeouts struct {
	Menu time.Duration // menu navigation
	Text time.Duration // free-text capture
	Ack  time.Duration // trailing pause after a text commit
}

var DefaultTimeouts = Timeouts{
	Menu: 20 * time.Second,
	Text: 60 * time.Second,
	Ack:  5 * time.Second,
}

// Start describes one wizard invocation.
type Start struct {
	ScopeId       string
	InitiatorId   string
	ChannelId     string
	GuildName     string
	CurrentPrefix string
	Elevated      bool
}

// Session is one in-progress wizard run. All fields past the identifiers are
// owned exclusively by the engine goroutine driving the run; only the replies
// channel is touched from outside, via Deliver.
type Session struct {
	ScopeId       string
	InitiatorId   string
	ChannelId     string
	GuildName     string
	CurrentPrefix string

	reinvoke  string
	replies   chan Reply
	state     State
	collected map[string]string
}

// promptChannel is the channel the next commit would bind welcomes to: the
// channel of the reply that got us here, falling back to the invoking one.
func (s *Session) promptChannel() string {
	if ch, ok := s.collected["channel"]; ok {
		return ch
	}
	return s.ChannelId
}

// eligible decides whether a delivered reply belongs to this session's turn.
// Replies from other users or guilds stay untouched for other consumers, and
// a reply that would itself start the wizard again is never consumed.
func (s *Session) eligible(r Reply) bool {
	if r.AuthorId != s.InitiatorId || r.ScopeId != s.ScopeId || r.Text == "" {
		return false
	}
	if s.reinvoke != "" && strings.Contains(r.Text, s.reinvoke) {
		return false
	}
	return true
}

// Engine drives setup sessions. One Run call is one session; many guilds may
// have a Run in flight at once, each on its own goroutine.
type Engine struct {
	Registry *Registry
	Store    Store
	Renderer Renderer
	Roles    RoleDirectory
	Timeouts Timeouts
}

func NewEngine(registry *Registry, store Store, renderer Renderer, roles RoleDirectory) *Engine {
	return &Engine{
		Registry: registry,
		Store:    store,
		Renderer: renderer,
		Roles:    roles,
		Timeouts: DefaultTimeouts,
	}
}

// Deliver offers an inbound message to whatever session owns its guild.
// It never blocks; the gateway goroutine must not stall on a slow session.
func (e *Engine) Deliver(r Reply) {
	s := e.Registry.Lookup(r.ScopeId)
	if s == nil {
		return
	}
	select {
	case s.replies <- r:
	default:
		core.LogWarnF("Dropping reply for busy setup session in guild %s", r.ScopeId)
	}
}

// Run executes one wizard session to a terminal state. It returns the
// outcome, or an error when rendering or persistence failed; the session's
// busy mark is released on every path.
func (e *Engine) Run(start Start) (Outcome, error) {
	s := &Session{
		ScopeId:       start.ScopeId,
		InitiatorId:   start.InitiatorId,
		ChannelId:     start.ChannelId,
		GuildName:     start.GuildName,
		CurrentPrefix: start.CurrentPrefix,
		reinvoke:      start.CurrentPrefix + "setup",
		replies:       make(chan Reply, 8),
		state:         StateRoot,
		collected:     map[string]string{},
	}
	if !e.Registry.TryAcquire(s) {
		return 0, ErrSessionBusy
	}
	defer e.Registry.Release(s.ScopeId)

	if !start.Elevated {
		if _, err := e.Renderer.Render(s.ChannelId, promptDenied()); err != nil {
			return 0, err
		}
		core.LogDebugF("Setup denied for non-admin %s in guild %s", s.InitiatorId, s.ScopeId)
		return OutcomePermissionDenied, nil
	}

	handle, err := e.Renderer.Render(s.ChannelId, promptRunning())
	if err != nil {
		return 0, err
	}
	core.LogInfoF("Setup session started in guild %s by %s", s.ScopeId, s.InitiatorId)

	for {
		spec, ok := stateTable[s.state]
		if !ok {
			return 0, fmt.Errorf("setup reached undeclared state %d", s.state)
		}
		if err := e.Renderer.Update(handle, spec.prompt(s)); err != nil {
			return 0, err
		}

		reply, ok := e.await(s, e.timeoutFor(spec.timeout))
		if !ok {
			core.LogInfoF("Setup session in guild %s timed out", s.ScopeId)
			if err := e.Renderer.Update(handle, promptExiting()); err != nil {
				return 0, err
			}
			return OutcomeTimedOut, nil
		}

		if spec.capture != nil {
			return e.finish(s, spec.capture, reply, handle, spec.ackPause)
		}

		label, matched := Classify(reply.Text, categoriesOf(spec.options))
		if !matched {
			s.state = spec.fallback
			continue
		}
		opt, _ := funk.Find(spec.options, func(o option) bool { return o.cat.Label == label }).(option)
		if opt.commit != nil {
			return e.finish(s, opt.commit, reply, handle, false)
		}
		s.collected["channel"] = reply.ChannelId
		s.state = opt.next
	}
}

// finish runs a commit, renders its confirmation and optionally lingers for
// the trailing acknowledgment pause. Persistence errors surface to the
// caller after the deferred registry release.
func (e *Engine) finish(s *Session, commit commitFunc, r Reply, handle MessageHandle, ackPause bool) (Outcome, error) {
	confirm, err := commit(e, s, r)
	if err != nil {
		return 0, err
	}
	if err := e.Renderer.Update(handle, confirm); err != nil {
		return 0, err
	}
	if ackPause {
		e.await(s, e.Timeouts.Ack)
	}
	s.collected = map[string]string{}
	core.LogInfoF("Setup session in guild %s committed", s.ScopeId)
	return OutcomeCommitted, nil
}

func (e *Engine) timeoutFor(class timeoutClass) time.Duration {
	if class == textTimeout {
		return e.Timeouts.Text
	}
	return e.Timeouts.Menu
}

// await blocks until an eligible reply arrives or the timeout lapses.
// Ineligible replies are discarded without resetting the clock.
func (e *Engine) await(s *Session, timeout time.Duration) (Reply, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case r := <-s.replies:
			if !s.eligible(r) {
				continue
			}
			return r, true
		case <-timer.C:
			return Reply{}, false
		}
	}
}

func (e *Engine) commitChannelDisable(s *Session, r Reply) (Prompt, error) {
	if err := e.Store.SetWelcomeCardEnabled(s.ScopeId, false); err != nil {
		return Prompt{}, err
	}
	if err := e.Store.SetWelcomeChannel(s.ScopeId, ""); err != nil {
		return Prompt{}, err
	}
	if err := e.Store.ResetWelcomeMessage(s.ScopeId); err != nil {
		return Prompt{}, err
	}
	return Prompt{Description: "**Reset welcome messages for channels and disabled them.**"}, nil
}

func (e *Engine) commitChannelImage(s *Session, r Reply) (Prompt, error) {
	if err := e.Store.SetWelcomeCardEnabled(s.ScopeId, true); err != nil {
		return Prompt{}, err
	}
	if err := e.Store.SetWelcomeChannel(s.ScopeId, r.ChannelId); err != nil {
		return Prompt{}, err
	}
	return Prompt{Description: fmt.Sprintf("**<#%s> set to welcome message channel.**", r.ChannelId)}, nil
}

func (e *Engine) commitChannelText(s *Session, r Reply) (Prompt, error) {
	if err := e.Store.SetWelcomeChannel(s.ScopeId, r.ChannelId); err != nil {
		return Prompt{}, err
	}
	if err := e.Store.SetWelcomeMessage(s.ScopeId, r.Text); err != nil {
		return Prompt{}, err
	}
	if err := e.Store.SetWelcomeCardEnabled(s.ScopeId, false); err != nil {
		return Prompt{}, err
	}
	return e.welcomeSetPrompt(s, r), nil
}

// Field order differs from the text branch on purpose; it mirrors the
// behavior admins have relied on since the original bot.
func (e *Engine) commitChannelBoth(s *Session, r Reply) (Prompt, error) {
	if err := e.Store.SetWelcomeMessage(s.ScopeId, r.Text); err != nil {
		return Prompt{}, err
	}
	if err := e.Store.SetWelcomeCardEnabled(s.ScopeId, true); err != nil {
		return Prompt{}, err
	}
	if err := e.Store.SetWelcomeChannel(s.ScopeId, r.ChannelId); err != nil {
		return Prompt{}, err
	}
	return e.welcomeSetPrompt(s, r), nil
}

func (e *Engine) welcomeSetPrompt(s *Session, r Reply) Prompt {
	return Prompt{
		Title:       fmt.Sprintf("**%s's welcome message has been set.**", s.GuildName),
		Description: fmt.Sprintf("Channel: <#%s>\nMessage: %s", r.ChannelId, r.Text),
	}
}

func (e *Engine) commitRoleSet(s *Session, r Reply) (Prompt, error) {
	roles, err := e.Roles.Roles(s.ScopeId)
	if err != nil {
		return Prompt{}, err
	}
	wanted := strings.ToLower(r.Text)
	match, found := funk.Find(roles, func(role Role) bool {
		return role.Id == r.Text || strings.Contains(strings.ToLower(role.Name), wanted)
	}).(Role)
	if !found {
		return Prompt{Title: "**Cannot find that role.**"}, nil
	}
	if err := e.Store.SetWelcomeRole(s.ScopeId, match.Id); err != nil {
		return Prompt{}, err
	}
	return Prompt{
		Title:       fmt.Sprintf("**%s's welcome role setting has been set.**", s.GuildName),
		Description: fmt.Sprintf("Role: %s\nID: %s", match.Name, match.Id),
	}, nil
}

func (e *Engine) commitRoleRemove(s *Session, r Reply) (Prompt, error) {
	if err := e.Store.SetWelcomeRole(s.ScopeId, ""); err != nil {
		return Prompt{}, err
	}
	return Prompt{Description: "**Removed welcome role settings and disabled them.**"}, nil
}

func (e *Engine) commitDmSet(s *Session, r Reply) (Prompt, error) {
	if err := e.Store.SetWelcomeDmMessage(s.ScopeId, r.Text); err != nil {
		return Prompt{}, err
	}
	return Prompt{
		Title:       fmt.Sprintf("**%s's direct message setting has been set.**", s.GuildName),
		Description: fmt.Sprintf("Message: %s", r.Text),
	}, nil
}

func (e *Engine) commitDmRemove(s *Session, r Reply) (Prompt, error) {
	if err := e.Store.SetWelcomeDmMessage(s.ScopeId, ""); err != nil {
		return Prompt{}, err
	}
	return Prompt{Description: "**Removed direct welcome messages for new members and disabled them.**"}, nil
}

func (e *Engine) commitPrefix(s *Session, r Reply) (Prompt, error) {
	if err := e.Store.SetPrefix(s.ScopeId, r.Text); err != nil {
		return Prompt{}, err
	}
	return Prompt{Description: fmt.Sprintf("**Bot prefix changed to %s**", r.Text)}, nil
}
