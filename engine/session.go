// Package engine folds the clock, player input and the chart schedule into
// a sequence of game states.
package engine

import (
	"container/heap"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/jsphweid/notefall/chart"
	"github.com/jsphweid/notefall/config"
	"github.com/jsphweid/notefall/judge"
	"github.com/jsphweid/notefall/lane"
	"github.com/jsphweid/notefall/model"
)

// Session is one play-through of a chart. Time is measured from the moment
// the session was created. A Session is not safe for concurrent use.
type Session struct {
	ID string

	cfg    config.Config
	rules  judge.Rules
	geom   lane.Geometry
	timing chart.Timing
	period time.Duration
	drain  time.Duration
	ports  Ports
	logger *slog.Logger

	state    State
	queue    queue
	seq      uint64
	now      time.Duration
	disposed bool
}

func NewSession(events []model.Music, cfg config.Config, ports Ports) *Session {
	s := &Session{
		ID:     uuid.New().String(),
		cfg:    cfg,
		rules:  judge.NewRules(cfg),
		timing: chart.NewTiming(events, cfg),
		period: cfg.TickPeriod(),
		ports:  ports.withDefaults(),
		geom: lane.Geometry{
			Speed:             cfg.NoteSpeed,
			TickPeriod:        cfg.TickPeriod(),
			StreamMinDuration: cfg.StreamMinDuration,
		},
	}
	s.logger = slog.Default().With("session", s.ID)

	instrument := chart.PlayingInstrument(events, cfg.DefaultInstrument)
	s.state = InitialState(instrument, cfg.Seeds)

	var tail float64
	for _, m := range events {
		if m.Played {
			tail = math.Max(tail, -s.geom.EndOffset(m))
		}
	}
	ticks := math.Ceil((cfg.UnrenderThreshold + tail) / cfg.NoteSpeed)
	s.drain = time.Duration(ticks) * s.period

	s.schedule(s.period, SourceClock, "tick", tickTransition(s.rules))
	for _, m := range events {
		if m.Played {
			s.schedule(s.timing.Due(m), SourceChart, "spawn", spawnTransition(s.geom, m))
		} else {
			s.schedule(s.timing.Due(m), SourceChart, "ambient", ambientTransition(m))
		}
	}
	s.schedule(s.timing.Completion, SourceChart, "complete", completeTransition)

	s.logger.Debug("session created",
		"events", len(events),
		"instrument", instrument,
		"travel", s.timing.Travel,
		"lead_in", s.timing.LeadIn,
		"completion", s.timing.Completion)
	return s
}

func (s *Session) schedule(at time.Duration, src Source, label string, t Transition) {
	s.seq++
	heap.Push(&s.queue, &scheduled{at: at, source: src, seq: s.seq, label: label, apply: t})
}

func (s *Session) State() State { return s.state }

func (s *Session) Timing() chart.Timing { return s.timing }

// Now is the latest instant the session has been advanced to.
func (s *Session) Now() time.Duration { return s.now }

func (s *Session) Disposed() bool { return s.disposed }

// Horizon is a time by which any chart has ended, even if nothing is pressed.
func (s *Session) Horizon() time.Duration {
	return s.timing.Completion + s.drain + s.period
}

// Press queues a key press at the given session time. Input in the past is
// judged at the current instant. Keys without a track are ignored.
func (s *Session) Press(key model.Key, at time.Duration) {
	s.input(key, at, "press", pressTransition)
}

func (s *Session) Release(key model.Key, at time.Duration) {
	s.input(key, at, "release", releaseTransition)
}

func (s *Session) input(key model.Key, at time.Duration, label string, mk func(judge.Rules, model.Key) Transition) {
	if s.disposed {
		return
	}
	if _, ok := key.Track(); !ok {
		s.logger.Debug("ignoring key", "key", key, "action", label)
		return
	}
	if at < s.now {
		at = s.now
	}
	s.schedule(at, SourceInput, label, mk(s.rules, key))
}

// AdvanceTo applies every transition due at or before t and returns how many
// were applied. The session disposes itself once the game has ended.
func (s *Session) AdvanceTo(t time.Duration) int {
	steps := 0
	for !s.disposed {
		next := s.queue.peek()
		if next == nil || next.at > t {
			break
		}
		heap.Pop(&s.queue)
		s.now = next.at
		s.apply(next)
		steps++

		if next.source == SourceClock {
			s.schedule(next.at+s.period, SourceClock, next.label, next.apply)
		}
		for _, m := range s.state.Dropped {
			s.logger.Debug("no free track", "pitch", m.Pitch, "start", m.Start)
			s.schedule(s.now+s.timing.Travel, SourceChart, "out-of-bound", outOfBoundTransition(m))
		}
		s.emit()

		if s.state.Ended {
			s.logger.Info("game ended",
				"score", s.state.Score.Score,
				"hits", s.state.Score.HitCount,
				"total", s.state.Score.TotalCount,
				"full_clear", s.state.Score.FullClear())
			s.Dispose()
		}
	}
	if t > s.now && !s.disposed {
		s.now = t
	}
	return steps
}

// RunToEnd advances until the game ends or limit is reached.
func (s *Session) RunToEnd(limit time.Duration) State {
	s.AdvanceTo(limit)
	return s.state
}

func (s *Session) apply(it *scheduled) {
	prev := s.state
	next := it.apply(reset(prev))
	next.PRNG = prev.PRNG.Next()
	next.Step = prev.Step + 1
	next.Time = it.at
	next.Ended = next.Score.LastEventFired && next.Board.Empty()
	s.state = next

	if j := next.Judgment; j.Outcome != judge.None {
		s.logger.Debug("judged", "step", next.Step, "track", j.Track, "outcome", j.Outcome, "combo", next.Score.Combo)
	}
}

func (s *Session) emit() {
	for _, c := range s.state.Commands() {
		Dispatch(s.ports.Sound, c)
	}
	s.ports.Render.Render(s.state)
}

// Dispose stops the session. Pending transitions are dropped and later input
// is ignored. Calling it more than once is harmless.
func (s *Session) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.queue = nil
	s.logger.Debug("session disposed", "step", s.state.Step)
}
