package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/yigit/extension-registry/internal/pkg/logger"
)

// Action is one menu operation. It returns the error to report, if any.
type Action func(ctx context.Context) error

// Recover turns a panic inside next into an error so the menu loop survives it
func Recover(next Action) Action {
	return func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Interface("panic", r).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic in menu action")
				err = fmt.Errorf("%w: %v", ErrActionPanicked, r)
			}
		}()
		return next(ctx)
	}
}

// Logging records the name, duration and outcome of every action
func Logging(name string, next Action) Action {
	return func(ctx context.Context) error {
		start := time.Now()
		err := next(ctx)

		event := logger.Debug()
		if err != nil {
			event = logger.Warn().Err(err)
		}
		event.Str("action", name).Dur("duration", time.Since(start)).Msg("Menu action finished")
		return err
	}
}

// Chain wraps an action with logging and panic recovery
func Chain(name string, next Action) Action {
	return Logging(name, Recover(next))
}
