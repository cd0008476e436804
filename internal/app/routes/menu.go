package routes

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/yigit/extension-registry/internal/middleware"
	"github.com/yigit/extension-registry/internal/pkg/logger"
	"github.com/yigit/extension-registry/internal/pkg/prompt"
	"github.com/yigit/extension-registry/internal/pkg/render"
)

// Item is one numbered menu entry. Exactly one of Action and Submenu is set.
type Item struct {
	Label   string
	Action  middleware.Action
	Submenu *Menu
}

// Menu is a titled list of items. Choice 0 leaves the menu.
type Menu struct {
	Title     string
	Items     []Item
	LeaveText string
}

// Runner drives a menu tree from a prompter
type Runner struct {
	p *prompt.Prompter
	// interruptible scopes a context to one action so an interrupt cancels the action
	// instead of the whole program
	interruptible func(ctx context.Context) (context.Context, context.CancelFunc)
}

// NewRunner creates a Runner. An interrupt while an action runs cancels that action.
func NewRunner(p *prompt.Prompter) *Runner {
	return &Runner{
		p: p,
		interruptible: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		},
	}
}

// Run shows menu until the user leaves it or input ends. End of input is a normal exit.
func (r *Runner) Run(ctx context.Context, menu *Menu) error {
	err := r.run(ctx, menu)
	if errors.Is(err, io.EOF) {
		r.p.Println()
		return nil
	}
	return err
}

func (r *Runner) run(ctx context.Context, menu *Menu) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.show(menu)
		choice, err := r.p.Int("Choose an option")
		if err != nil {
			return err
		}
		if choice == 0 {
			return nil
		}
		if choice < 0 || int(choice) > len(menu.Items) {
			r.p.Println(render.Warning("No such option."))
			continue
		}

		item := menu.Items[choice-1]
		if item.Submenu != nil {
			if err := r.run(ctx, item.Submenu); err != nil {
				return err
			}
			continue
		}

		if err := r.invoke(ctx, item); err != nil {
			return err
		}
	}
}

// invoke runs one action through the middleware chain and reports its error. Only end
// of input is passed back to the loop.
func (r *Runner) invoke(ctx context.Context, item Item) error {
	actionCtx, stop := r.interruptible(ctx)
	defer stop()

	err := middleware.Chain(item.Label, item.Action)(actionCtx)
	if errors.Is(err, io.EOF) {
		return err
	}
	if actionCtx.Err() != nil && ctx.Err() == nil {
		logger.Warn().Str("action", item.Label).Msg("Action interrupted")
		r.p.Println(render.Warning("Interrupted."))
		return nil
	}
	middleware.HandleActionError(r.p.Out(), err)
	return nil
}

func (r *Runner) show(menu *Menu) {
	r.p.Println()
	r.p.Println(render.Title(menu.Title))
	for i, item := range menu.Items {
		r.p.Println(strconv.Itoa(i+1) + ". " + item.Label)
	}
	leave := menu.LeaveText
	if leave == "" {
		leave = "Back"
	}
	r.p.Println("0. " + leave)
}
