package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"storykeep/internal/model"
)

// Notifier receives user-visible messages produced while an operation runs.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Collector accumulates messages for one request.
type Collector struct {
	mu       sync.Mutex
	messages []string
}

func (c *Collector) Notify(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
}

// Messages returns a copy of the collected messages.
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.messages))
	copy(out, c.messages)
	return out
}

type notifierKey struct{}

// WithNotifier attaches n to ctx.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierKey{}, n)
}

func notifierFrom(ctx context.Context) Notifier {
	if n, ok := ctx.Value(notifierKey{}).(Notifier); ok && n != nil {
		return n
	}
	return NotifierFunc(func(string) {})
}

// UserMessage renders err as the text shown to the user for a failed action.
func UserMessage(action string, err error) string {
	var qe *model.QueryError
	switch {
	case errors.Is(err, model.ErrConnectionUnavailable):
		return "Could not connect to the database. Please try again later."
	case errors.Is(err, model.ErrNoActiveSession):
		return "You need to be logged in to " + action + "."
	case errors.Is(err, model.ErrUserAlreadyExists):
		return "Username already exists."
	case errors.Is(err, model.ErrCreationFailed):
		return fmt.Sprintf("Could not %s: nothing was created.", action)
	case errors.Is(err, model.ErrInvalidStatus):
		return fmt.Sprintf("Could not %s: %v.", action, err)
	case errors.As(err, &qe):
		return fmt.Sprintf("Database error while trying to %s: %s", action, qe.Reason())
	default:
		return fmt.Sprintf("Unexpected error while trying to %s.", action)
	}
}

// report logs err and forwards its user message to the context's notifier.
func report(ctx context.Context, logger *zap.Logger, action string, err error) {
	logger.Warn("Operation failed", zap.String("action", action), zap.Error(err))
	notifierFrom(ctx).Notify(UserMessage(action, err))
}
