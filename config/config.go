// Package config loads gameplay tuning from YAML on top of the defaults in
// constants.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jsphweid/notefall/constants"
)

type Zones struct {
	Detection    float64 `yaml:"detection"`
	Good         float64 `yaml:"good"`
	Perfect      float64 `yaml:"perfect"`
	EndPerfect   float64 `yaml:"end_perfect"`
	EndGood      float64 `yaml:"end_good"`
	EndDetection float64 `yaml:"end_detection"`
}

type Seeds struct {
	Pitch    uint64 `yaml:"pitch"`
	Duration uint64 `yaml:"duration"`
}

// MIDI maps a keyboard onto the four track controls plus retry and leave.
type MIDI struct {
	InPort    string `yaml:"in_port"`
	OutPort   string `yaml:"out_port"`
	LaneNotes []int  `yaml:"lane_notes"`
	RetryNote int    `yaml:"retry_note"`
	LeaveNote int    `yaml:"leave_note"`
}

type Config struct {
	TickRateMs        int     `yaml:"tick_rate_ms"`
	NoteSpeed         float64 `yaml:"note_speed"`
	UnrenderThreshold float64 `yaml:"unrender_threshold"`
	Zones             Zones   `yaml:"zones"`
	BaseScore         float64 `yaml:"base_score"`
	StreamMinDuration float64 `yaml:"stream_min_duration"`
	MinLeadInSec      float64 `yaml:"min_lead_in_sec"`
	TrailingDelaySec  float64 `yaml:"trailing_delay_sec"`
	DefaultInstrument string  `yaml:"default_instrument"`
	Seeds             Seeds   `yaml:"seeds"`
	MIDI              MIDI    `yaml:"midi"`
}

var (
	ErrTickRate   = errors.New("tick_rate_ms must be positive")
	ErrNoteSpeed  = errors.New("note_speed must be positive")
	ErrZoneOrder  = errors.New("zones must be ordered detection <= good <= perfect <= end_perfect <= end_good <= end_detection")
	ErrLaneNotes  = errors.New("midi.lane_notes must hold four distinct notes")
	ErrInstrument = errors.New("default_instrument must not be empty")
)

func Default() Config {
	return Config{
		TickRateMs:        constants.TickRateMs,
		NoteSpeed:         constants.NoteSpeed,
		UnrenderThreshold: constants.UnrenderThreshold,
		Zones: Zones{
			Detection:    constants.DetectionZone,
			Good:         constants.GoodZone,
			Perfect:      constants.PerfectZone,
			EndPerfect:   constants.EndPerfectZone,
			EndGood:      constants.EndGoodZone,
			EndDetection: constants.EndDetectionZone,
		},
		BaseScore:         constants.BaseScore,
		StreamMinDuration: constants.StreamMinDuration,
		MinLeadInSec:      constants.MinLeadInSec,
		TrailingDelaySec:  constants.TrailingDelaySec,
		DefaultInstrument: constants.DefaultInstrument,
		Seeds: Seeds{
			Pitch:    constants.PitchSeed,
			Duration: constants.DurationSeed,
		},
		MIDI: MIDI{
			LaneNotes: []int{60, 62, 64, 65},
			RetryNote: 72,
			LeaveNote: 48,
		},
	}
}

// Load overlays the YAML file at path onto Default. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("yaml unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.TickRateMs <= 0 {
		return ErrTickRate
	}
	if c.NoteSpeed <= 0 {
		return ErrNoteSpeed
	}
	z := c.Zones
	if !(z.Detection <= z.Good && z.Good <= z.Perfect && z.Perfect <= z.EndPerfect &&
		z.EndPerfect <= z.EndGood && z.EndGood <= z.EndDetection) {
		return ErrZoneOrder
	}
	if c.DefaultInstrument == "" {
		return ErrInstrument
	}
	if len(c.MIDI.LaneNotes) != 4 {
		return ErrLaneNotes
	}
	seen := make(map[int]bool, 4)
	for _, n := range c.MIDI.LaneNotes {
		if seen[n] {
			return ErrLaneNotes
		}
		seen[n] = true
	}
	return nil
}

func (c Config) TickPeriod() time.Duration {
	return time.Duration(c.TickRateMs) * time.Millisecond
}
