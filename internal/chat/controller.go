// Package chat holds the conversation state of a single chat session and
// orchestrates the request to the completion API for every user message.
package chat

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/longkey1/finchat/internal/prompt"
)

// Completer sends a role-tagged transcript upstream and returns the content
// of the first choice. Empty content with a nil error means the API answered
// without usable text.
type Completer interface {
	Complete(ctx context.Context, turns []Turn) (string, error)
}

// State is a snapshot of the conversation.
type State struct {
	Messages  []Message
	IsLoading bool
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger used for upstream failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithPrompt sets the system instruction template.
func WithPrompt(p *prompt.Prompt) Option {
	return func(c *Controller) {
		c.prompt = p
	}
}

// WithKeepStaleReplies keeps replies to requests issued before the last
// Reset instead of discarding them.
func WithKeepStaleReplies(keep bool) Option {
	return func(c *Controller) {
		c.keepStale = keep
	}
}

// Controller owns the message history and the loading flag.
// It is safe for concurrent use; at most one request is in flight at a time.
type Controller struct {
	completer Completer
	prompt    *prompt.Prompt
	logger    *slog.Logger
	keepStale bool

	mu         sync.Mutex
	messages   []Message
	loading    bool
	generation uint64
}

// NewController creates a Controller with an empty conversation
func NewController(completer Completer, opts ...Option) *Controller {
	c := &Controller{
		completer: completer,
		prompt:    prompt.Default(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		messages:  []Message{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendMessage appends the user message, asks the completion API for a reply
// and appends the bot message. It blocks until the request settles.
//
// Blank text is ignored, as is a call made while another request is in
// flight. Upstream failures become a fallback bot message and are only
// logged. The returned bool is false when nothing was appended for the
// reply; that includes a reply discarded because Reset ran meanwhile.
func (c *Controller) SendMessage(ctx context.Context, text, topic string) (Message, bool) {
	if strings.TrimSpace(text) == "" {
		return Message{}, false
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		c.logger.Warn("message ignored, a request is already in flight")
		return Message{}, false
	}
	history := make([]Message, len(c.messages))
	copy(history, c.messages)
	c.messages = append(c.messages, Message{Text: text, Sender: SenderUser, Topic: topic})
	c.loading = true
	generation := c.generation
	c.mu.Unlock()

	turns := BuildTranscript(c.prompt.Instruction(topic), history, text)
	c.logger.Debug("sending completion request", "turns", len(turns), "topic", topic)

	outcome := NewOutcome(c.completer.Complete(ctx, turns))
	if outcome.Kind == OutcomeFailure {
		c.logger.Error("error fetching response", "kind", outcome.Failure.String(), "error", outcome.Err)
	}
	reply := Message{Text: ReplyText(outcome), Sender: SenderBot, Topic: topic}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if generation != c.generation && !c.keepStale {
		c.logger.Debug("discarding reply to a request issued before reset")
		return reply, false
	}
	c.messages = append(c.messages, reply)
	return reply, true
}

// Reset clears the conversation. The loading flag is left as is.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = []Message{}
	c.generation++
}

// Messages returns a copy of the history in display order.
func (c *Controller) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// IsLoading reports whether a request is in flight.
func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// State returns a consistent snapshot of messages and loading flag.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return State{Messages: out, IsLoading: c.loading}
}
