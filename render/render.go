// Package render turns game states into log lines and an end screen.
package render

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/jsphweid/notefall/engine"
	"github.com/jsphweid/notefall/judge"
	"github.com/jsphweid/notefall/model"
	"github.com/jsphweid/notefall/util"
)

// Title is the end screen headline.
func Title(s model.Score) string {
	if s.FullClear() {
		return "Full Clear"
	}
	return "Game Over"
}

func EndScreen(s model.Score) string {
	var b strings.Builder
	fmt.Fprintln(&b, Title(s))
	fmt.Fprintf(&b, "Score: %.0f\n", s.Score)
	fmt.Fprintf(&b, "Hits: %d/%d\n", s.HitCount, s.TotalCount)
	fmt.Fprintf(&b, "Accuracy: %.1f%%\n", util.Accuracy(s.HitCount, s.TotalCount))
	return b.String()
}

// Lanes draws how many notes each track holds, marking held sustains.
func Lanes(b model.Board) string {
	parts := make([]string, len(b.Tracks))
	for i, t := range b.Tracks {
		held := ""
		if _, ok := t.FirstClicked(); ok {
			held = "*"
		}
		parts[i] = fmt.Sprintf("%s:%d%s", model.TrackID(i), t.Len(), held)
	}
	return strings.Join(parts, " ")
}

// LogRenderer reports judgments as they happen and a HUD line at most once
// per interval. The end screen goes to w.
type LogRenderer struct {
	w      io.Writer
	logger *slog.Logger
	hud    func(func())

	mu   sync.Mutex
	done bool
}

func NewLogRenderer(w io.Writer, logger *slog.Logger, interval time.Duration) *LogRenderer {
	return &LogRenderer{
		w:      w,
		logger: logger,
		hud:    debounce.New(interval),
	}
}

func (r *LogRenderer) Render(s engine.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case s.Retry:
		r.done = false
		r.logger.Info("retry")
		return
	case s.Leave:
		r.done = true
		r.logger.Info("left", "score", s.Score.Score)
		return
	case s.Ended:
		if !r.done {
			r.done = true
			fmt.Fprint(r.w, EndScreen(s.Score))
		}
		return
	}

	if j := s.Judgment; j.Outcome != judge.None {
		r.logger.Debug("judgment", "track", j.Track, "outcome", j.Outcome)
	}
	score := s.Score
	lanes := Lanes(s.Board)
	r.hud(func() {
		r.logger.Info("hud",
			"score", score.Score,
			"multiplier", score.Multiplier,
			"combo", score.Combo,
			"lanes", lanes)
	})
}
