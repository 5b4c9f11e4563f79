package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/jsphweid/notefall/model"
)

type InputEvent struct {
	Key     model.Key
	Pressed bool
}

// Runner drives a Controller against the wall clock.
type Runner struct {
	Controller *Controller
	Input      <-chan InputEvent
	// OnInput sees every input event with its session time before it is
	// handled.
	OnInput func(at time.Duration, ev InputEvent)

	now func() time.Time
}

func NewRunner(c *Controller, input <-chan InputEvent) *Runner {
	return &Runner{Controller: c, Input: input, now: time.Now}
}

// Run blocks until the game ends, the player leaves or ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	r.Controller.Start()
	ticker := time.NewTicker(r.Controller.Config().TickPeriod())
	defer ticker.Stop()

	input := r.Input
	start := r.now()
	for {
		select {
		case <-ctx.Done():
			r.Controller.Leave()
			return ctx.Err()

		case ev, ok := <-input:
			if !ok {
				slog.Debug("input closed")
				input = nil
				continue
			}
			at := r.now().Sub(start)
			if r.OnInput != nil {
				r.OnInput(at, ev)
			}
			switch r.Controller.HandleKey(ev.Key, ev.Pressed, at) {
			case ActionRetry:
				start = r.now()
			case ActionLeave:
				return nil
			}

		case <-ticker.C:
			s := r.Controller.Current()
			s.AdvanceTo(r.now().Sub(start))
			if s.State().Ended {
				return nil
			}
		}
	}
}
