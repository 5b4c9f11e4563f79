package engine

import (
	"log/slog"
	"time"

	"github.com/jsphweid/notefall/config"
	"github.com/jsphweid/notefall/model"
)

type Action int

const (
	ActionNone Action = iota
	ActionRetry
	ActionLeave
)

// Controller owns the lifecycle around sessions: start, retry and leave.
type Controller struct {
	events  []model.Music
	cfg     config.Config
	ports   Ports
	current *Session
	left    bool
}

func NewController(events []model.Music, cfg config.Config, ports Ports) *Controller {
	return &Controller{events: events, cfg: cfg, ports: ports.withDefaults()}
}

func (c *Controller) Config() config.Config { return c.cfg }

// Current returns the live session, starting one if needed.
func (c *Controller) Current() *Session {
	if c.current == nil {
		return c.Start()
	}
	return c.current
}

func (c *Controller) Start() *Session {
	if c.current != nil {
		return c.current
	}
	c.current = NewSession(c.events, c.cfg, c.ports)
	c.ports.Render.Render(c.current.State())
	slog.Info("game started", "session", c.current.ID, "events", len(c.events))
	return c.current
}

// Retry replaces the current session with a fresh one. The new session is
// fully built before the old one is disposed.
func (c *Controller) Retry() *Session {
	prev := c.current
	next := NewSession(c.events, c.cfg, c.ports)
	next.state.Retry = true
	c.current = next
	c.left = false
	if prev != nil {
		prev.Dispose()
		slog.Info("game restarted", "previous", prev.ID, "session", next.ID)
	}
	c.ports.Render.Render(next.State())
	return next
}

// Leave disposes the current session and reports the leave to the renderer.
func (c *Controller) Leave() {
	if c.left || c.current == nil {
		c.left = true
		return
	}
	c.left = true
	st := c.current.State()
	st.Leave = true
	c.current.Dispose()
	c.ports.Render.Render(st)
	slog.Info("game left", "session", c.current.ID)
}

func (c *Controller) Left() bool { return c.left }

// HandleKey routes one key event at session time at. Track keys are judged by
// the current session; KeyR retries and Escape leaves on press.
func (c *Controller) HandleKey(key model.Key, pressed bool, at time.Duration) Action {
	if c.left {
		return ActionNone
	}
	switch key {
	case model.KeyR:
		if pressed {
			c.Retry()
			return ActionRetry
		}
		return ActionNone
	case model.KeyEscape:
		if pressed {
			c.Leave()
			return ActionLeave
		}
		return ActionNone
	}

	s := c.Current()
	s.AdvanceTo(at)
	if pressed {
		s.Press(key, at)
	} else {
		s.Release(key, at)
	}
	s.AdvanceTo(at)
	return ActionNone
}
