package session

import (
	"context"
	"strings"
	"sync"

	"ai-chatbox-be/pkg/llm"
)

// Completer is the outbound half of one conversational exchange.
type Completer interface {
	Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error)
}

// ExchangeHook observes a completed exchange (user turn + terminal turn).
// Invoked outside the controller lock; implementations must not call back
// into the controller synchronously.
type ExchangeHook func(userTurn, replyTurn Turn)

// Controller mediates exactly one conversational exchange at a time and
// keeps the conversation log consistent with the outcome.
//
// The submission guard is an explicit two-state machine {idle, pending}:
// a new user turn is accepted only in the idle state, so exchanges are
// strictly serialized and the log grows monotonically.
type Controller struct {
	mu        sync.Mutex
	id        string
	completer Completer
	turns     []Turn
	state     State
	prefs     Preferences
	genOpts   []llm.Option
	onDone    ExchangeHook
}

// State of the controller's exchange machine.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
)

type ControllerOption func(*Controller)

// WithGenerationOptions sets the generation limits sent with every exchange.
func WithGenerationOptions(opts ...llm.Option) ControllerOption {
	return func(c *Controller) {
		c.genOpts = opts
	}
}

// WithExchangeHook registers a best-effort observer for settled exchanges.
func WithExchangeHook(hook ExchangeHook) ControllerOption {
	return func(c *Controller) {
		c.onDone = hook
	}
}

// NewController seeds the log with the assistant greeting and starts idle.
func NewController(id string, completer Completer, opts ...ControllerOption) *Controller {
	c := &Controller{
		id:        id,
		completer: completer,
		turns:     []Turn{{Role: RoleAssistant, Content: Greeting}},
		state:     StateIdle,
		prefs:     DefaultPreferences(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Id() string {
	return c.id
}

// SubmitTurn runs one full exchange. Empty input and submissions while an
// exchange is pending are silent no-ops: they are ordering guards, not
// faults, so no error is raised and no state changes. The returned bool
// reports whether the submission was accepted.
//
// Every accepted submission produces exactly one terminal turn: the gateway
// reply on success, or an assistant turn prefixed with "Error: " on any
// failure. The controller always returns to idle afterward.
func (c *Controller) SubmitTurn(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	if text == "" || c.state == StatePending {
		c.mu.Unlock()
		return false
	}

	userTurn := Turn{Role: RoleUser, Content: text}
	c.turns = append(c.turns, userTurn)
	c.state = StatePending
	history := c.historyLocked()
	c.mu.Unlock()

	reply, err := c.completer.Chat(ctx, history, c.genOpts...)

	var replyTurn Turn
	if err != nil {
		replyTurn = Turn{Role: RoleAssistant, Content: ErrorPrefix + llm.AsFailure(err).Message}
	} else {
		replyTurn = Turn{Role: RoleAssistant, Content: reply}
	}

	c.mu.Lock()
	c.turns = append(c.turns, replyTurn)
	// Terminal transition, success or failure: the controller must be able
	// to accept a new submission afterward.
	c.state = StateIdle
	c.mu.Unlock()

	if c.onDone != nil {
		c.onDone(userTurn, replyTurn)
	}
	return true
}

func (c *Controller) historyLocked() []llm.Message {
	history := make([]llm.Message, len(c.turns))
	for i, t := range c.turns {
		history[i] = llm.Message{Role: string(t.Role), Content: t.Content}
	}
	return history
}

// Turns returns a snapshot copy of the conversation log.
func (c *Controller) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending reports whether an exchange is currently in flight.
func (c *Controller) Pending() bool {
	return c.State() == StatePending
}

// Preferences returns a copy of the display preferences.
func (c *Controller) Preferences() Preferences {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefs
}

// UpdatePreferences applies fn to the preferences under the lock.
func (c *Controller) UpdatePreferences(fn func(*Preferences)) Preferences {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.prefs)
	return c.prefs
}
