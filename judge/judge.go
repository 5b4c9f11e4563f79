// Package judge applies player input and the passage of time to the board
// and score.
package judge

import (
	"github.com/jsphweid/notefall/config"
	"github.com/jsphweid/notefall/model"
	"github.com/jsphweid/notefall/rng"
)

type Outcome int

const (
	None Outcome = iota
	// Hit scored a note, or the tail of a held note.
	Hit
	// Hold started a sustain; scoring waits for the release.
	Hold
	Miss
	// Early is a sustain released outside the window.
	Early
)

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case Hold:
		return "hold"
	case Miss:
		return "miss"
	case Early:
		return "early"
	default:
		return "none"
	}
}

type Rules struct {
	// Low and High bound the good window on the y axis.
	Low  float64
	High float64
	// MissLine is where an unanswered head counts as missed.
	MissLine  float64
	Unrender  float64
	Speed     float64
	BaseScore float64
}

func NewRules(cfg config.Config) Rules {
	return Rules{
		Low:       cfg.Zones.Good,
		High:      cfg.Zones.EndGood,
		MissLine:  cfg.Zones.EndDetection,
		Unrender:  cfg.UnrenderThreshold,
		Speed:     cfg.NoteSpeed,
		BaseScore: cfg.BaseScore,
	}
}

func (r Rules) inWindow(y float64) bool {
	return y >= r.Low && y <= r.High
}

type Result struct {
	Track   model.Track
	Score   model.Score
	Sound   model.SoundCommand
	Outcome Outcome
}

// Press judges the first note whose head is inside the window. Notes outside
// the window never block the search. Anything else is a miss and plays the
// fallback pitch drawn from prng.
func (r Rules) Press(t model.Track, s model.Score, prng rng.Pair) Result {
	t = t.Down()
	i, ok := t.FirstInRange(r.Low, r.High)
	if !ok || t.Notes[i].ClickedBefore {
		return Result{
			Track:   t,
			Score:   s.Miss(),
			Sound:   model.Play(rng.RandomPitch(s.PlayingInstrument, prng)),
			Outcome: Miss,
		}
	}

	note := t.Notes[i]
	s = s.Hit()
	if note.IsStream {
		return Result{
			Track:   t.ReplaceAt(i, note.Click()),
			Score:   s,
			Sound:   model.Start(note.Music),
			Outcome: Hold,
		}
	}
	return Result{
		Track:   t.RemoveAt(i),
		Score:   s.Award(r.BaseScore),
		Sound:   model.Play(note.Music),
		Outcome: Hit,
	}
}

// Release ends the sustain held on the track. Releasing with nothing held
// only lifts the control.
func (r Rules) Release(t model.Track, s model.Score) Result {
	t = t.Up()
	i, ok := t.FirstClicked()
	if !ok {
		return Result{Track: t, Score: s}
	}

	note := t.Notes[i]
	if r.inWindow(note.EndY) {
		return Result{
			Track:   t.RemoveAt(i),
			Score:   s.Hit().Award(r.BaseScore),
			Sound:   model.Stop(note.Music),
			Outcome: Hit,
		}
	}
	return Result{
		Track:   t.ReplaceAt(i, note.Unclick()),
		Score:   s.Break(),
		Sound:   model.Stop(note.Music),
		Outcome: Early,
	}
}

type TickResult struct {
	Board model.Board
	Score model.Score
	// Stops silences sustains whose note scrolled away while still held.
	Stops []model.SoundCommand
	// Expired counts notes that left the board without ever being judged.
	Expired int
}

// Tick advances the board one step. A front head past the miss line breaks
// the combo; a note that expires unjudged also counts towards the total.
func (r Rules) Tick(b model.Board, s model.Score) TickResult {
	for _, t := range b.Tracks {
		if front, ok := t.Front(); ok && !front.Clicked && front.Y > r.MissLine {
			s = s.Break()
			break
		}
	}

	next, expired := b.Tick(r.Speed, r.Unrender)
	res := TickResult{Board: next}
	for _, n := range expired {
		if !n.ClickedBefore {
			s = s.Miss()
			res.Expired++
		}
		if n.Clicked {
			s = s.Break()
			res.Stops = append(res.Stops, model.Stop(n.Music))
		}
	}
	res.Score = s
	return res
}
