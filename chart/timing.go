package chart

import (
	"time"

	"github.com/jsphweid/notefall/config"
	"github.com/jsphweid/notefall/model"
	"github.com/jsphweid/notefall/util"
)

// Timing holds the per-session constants derived from a chart. It is
// computed once and never changes.
type Timing struct {
	// Travel is how long a note takes from spawn to the perfect zone.
	Travel time.Duration
	// LeadIn delays every event so the first note can travel on screen.
	LeadIn time.Duration
	// Completion is when the chart signals its last event has fired.
	Completion time.Duration
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func NewTiming(events []model.Music, cfg config.Config) Timing {
	ticks := cfg.Zones.Perfect / cfg.NoteSpeed
	travel := time.Duration(ticks * float64(cfg.TickPeriod()))

	var firstStart time.Duration
	if len(events) > 0 {
		firstStart = seconds(events[0].Start)
	}
	leadIn := util.Max(seconds(cfg.MinLeadInSec), travel-firstStart)

	var lastEnd time.Duration
	for _, m := range events {
		lastEnd = util.Max(lastEnd, seconds(m.End))
	}
	return Timing{
		Travel:     travel,
		LeadIn:     leadIn,
		Completion: lastEnd + leadIn + seconds(cfg.TrailingDelaySec),
	}
}

// Due is when an event enters play. Played events spawn early enough for
// their head to reach the perfect zone at the musical start.
func (t Timing) Due(m model.Music) time.Duration {
	if m.Played {
		return seconds(m.Start) - t.Travel + t.LeadIn
	}
	return seconds(m.Start) + t.LeadIn
}
