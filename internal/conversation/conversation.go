// Package conversation holds the state of one chat session: the ordered,
// append-only message log and the flag marking an outstanding request.
//
// A Conversation is owned by a single view and is not safe for concurrent
// use. Requests are serialised by the pending flag: while one is
// outstanding, Submit is a no-op.
package conversation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apierrors "github.com/diogo/nexichat/internal/errors"
	"github.com/diogo/nexichat/internal/logging"
	"github.com/diogo/nexichat/internal/models"
)

// Sender delivers one user message to the chat collaborator and returns its reply
type Sender interface {
	Send(ctx context.Context, message string) (string, error)
}

// Conversation is the log plus pending flag for one session
type Conversation struct {
	messages []models.Message
	pending  bool
	logger   *zap.Logger
}

// Option configures a Conversation
type Option func(*Conversation)

// WithLogger sets the logger used to record failed exchanges
func WithLogger(logger *zap.Logger) Option {
	return func(c *Conversation) {
		c.logger = logging.OrNop(logger)
	}
}

// New creates an empty conversation
func New(opts ...Option) *Conversation {
	c := &Conversation{
		messages: []models.Message{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CanSend reports whether the send control is enabled for input
func (c *Conversation) CanSend(input string) bool {
	return !c.pending && strings.TrimSpace(input) != ""
}

// Submit records text as a user message and marks a request outstanding.
// It returns the trimmed prompt the caller must send. When the trimmed
// text is empty or a request is already pending nothing changes and ok is
// false.
func (c *Conversation) Submit(text string) (prompt string, ok bool) {
	if !c.CanSend(text) {
		return "", false
	}

	msg := models.NewUserMessage(text)
	c.messages = append(c.messages, msg)
	c.pending = true
	return msg.Text, true
}

// Resolve completes the outstanding request. A nil err appends reply as
// the assistant message; any error is logged and replaced by the fallback
// message. Pending is cleared last, whatever the outcome.
func (c *Conversation) Resolve(reply string, err error) models.Message {
	defer func() { c.pending = false }()

	if err != nil {
		c.logger.Warn("chat request failed",
			zap.Error(err),
			zap.String("kind", apierrors.GetFailureKind(err).String()),
			zap.Int("status", apierrors.GetHTTPStatus(err)),
			zap.String("request_id", apierrors.GetRequestID(err)),
		)
		msg := models.NewFallbackMessage()
		c.messages = append(c.messages, msg)
		return msg
	}

	msg := models.NewAssistantMessage(reply)
	c.messages = append(c.messages, msg)
	return msg
}

// Result is the outcome of one exchange
type Result struct {
	// Message is the assistant message appended to the log
	Message models.Message
	// Err is the send failure that produced the fallback, nil on success
	Err error
}

// Failed reports whether the fallback message stands in for a reply
func (r Result) Failed() bool {
	return r.Err != nil
}

// Exchange runs a full submit, send and resolve cycle synchronously.
// ok is false when the submit was a no-op, in which case sender is not called.
func (c *Conversation) Exchange(ctx context.Context, sender Sender, text string) (res Result, ok bool) {
	prompt, ok := c.Submit(text)
	if !ok {
		return Result{}, false
	}

	answer, err := Send(ctx, sender, prompt)
	return Result{Message: c.Resolve(answer, err), Err: err}, true
}

// Send calls sender once. A panic inside the sender is returned as a
// transport failure so the caller can still resolve the exchange.
func Send(ctx context.Context, sender Sender, prompt string) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			reply = ""
			err = apierrors.NewTransportError("", panicError{r})
		}
	}()
	return sender.Send(ctx, prompt)
}

// Pending reports whether a request is outstanding
func (c *Conversation) Pending() bool {
	return c.pending
}

// Len returns the number of messages in the log
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Messages returns a copy of the log in append order
func (c *Conversation) Messages() []models.Message {
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Last returns the newest message, if any
func (c *Conversation) Last() (models.Message, bool) {
	if len(c.messages) == 0 {
		return models.Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// LastAssistant returns the newest assistant message, if any
func (c *Conversation) LastAssistant() (models.Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].IsAssistant() {
			return c.messages[i], true
		}
	}
	return models.Message{}, false
}

// panicError carries a recovered panic value from a Sender
type panicError struct {
	value any
}

func (p panicError) Error() string {
	return fmt.Sprintf("sender panicked: %v", p.value)
}
