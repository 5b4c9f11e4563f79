package constants

import "os"

func GetChartDir() string {
	path := os.Getenv("CHART_DIR")
	if path != "" {
		return path
	}
	return "./charts"
}

func GetMidiDir() string {
	path := os.Getenv("MIDI_DIR")
	if path != "" {
		return path
	}
	return "./midi"
}

// Viewport, in screen units. Notes spawn at y=0 and fall towards increasing y.
const (
	CanvasWidth       = 200
	CanvasHeight      = 400
	UnrenderThreshold = 385.0
)

// Judgment zones along the y axis.
const (
	DetectionZone    = 300.0
	GoodZone         = 320.0
	PerfectZone      = 340.0
	EndPerfectZone   = 360.0
	EndGoodZone      = 375.0
	EndDetectionZone = 375.0
)

const BaseScore = 10.0

const (
	TickRateMs = 10
	// NoteSpeed is in screen units per tick.
	NoteSpeed = 3.5
	// MinLeadInSec is the smallest delay before the first chart event is due.
	MinLeadInSec = 1.5
	// TrailingDelaySec follows the last event's end before the chart is done.
	TrailingDelaySec = 1.5
	// StreamMinDuration is the shortest event, in seconds, that becomes a sustain note.
	StreamMinDuration = 1.0
)

const (
	PitchSeed    = 1
	DurationSeed = 2
)

// DefaultInstrument is played on misses when no chart event is playable.
const DefaultInstrument = "piano"

const MaxVelocity = 127

