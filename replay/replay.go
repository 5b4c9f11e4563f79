// Package replay records player input as a YAML timeline and plays it back
// headlessly against a chart.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jsphweid/notefall/config"
	"github.com/jsphweid/notefall/engine"
	"github.com/jsphweid/notefall/model"
	"github.com/jsphweid/notefall/util"
)

type Action string

const (
	Press   Action = "press"
	Release Action = "release"
)

var (
	ErrUnknownKey    = errors.New("unknown key")
	ErrUnknownAction = errors.New("unknown action")
	ErrNegativeTime  = errors.New("negative time")
)

// Event is one input at a session time in milliseconds.
type Event struct {
	AtMs   int64     `yaml:"at_ms" json:"at_ms"`
	Key    model.Key `yaml:"key" json:"key"`
	Action Action    `yaml:"action" json:"action"`
}

func (e Event) At() time.Duration { return time.Duration(e.AtMs) * time.Millisecond }

type Timeline struct {
	Song   string  `yaml:"song,omitempty" json:"song,omitempty"`
	Events []Event `yaml:"events" json:"events"`
}

func (tl Timeline) Validate() error {
	for i, e := range tl.Events {
		if _, ok := e.Key.Track(); !ok {
			return fmt.Errorf("event %d: %w %q", i, ErrUnknownKey, e.Key)
		}
		if e.Action != Press && e.Action != Release {
			return fmt.Errorf("event %d: %w %q", i, ErrUnknownAction, e.Action)
		}
		if e.AtMs < 0 {
			return fmt.Errorf("event %d: %w", i, ErrNegativeTime)
		}
	}
	return nil
}

func Decode(r io.Reader) (Timeline, error) {
	var tl Timeline
	if err := yaml.NewDecoder(r).Decode(&tl); err != nil && !errors.Is(err, io.EOF) {
		return Timeline{}, fmt.Errorf("decoding timeline: %w", err)
	}
	if err := tl.Validate(); err != nil {
		return Timeline{}, err
	}
	return tl, nil
}

func Load(path string) (Timeline, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return Timeline{}, fmt.Errorf("reading timeline: %w", err)
	}
	return Decode(bytes.NewReader(dat))
}

func Encode(w io.Writer, tl Timeline) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tl); err != nil {
		return fmt.Errorf("encoding timeline: %w", err)
	}
	return enc.Close()
}

func Save(path string, tl Timeline) error {
	var buf bytes.Buffer
	if err := Encode(&buf, tl); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing timeline: %w", err)
	}
	return nil
}

// Recorder collects track input from a live run. A retry starts the
// recording over; other control keys are not recorded.
type Recorder struct {
	mu sync.Mutex
	tl Timeline
}

func NewRecorder(song string) *Recorder {
	return &Recorder{tl: Timeline{Song: song}}
}

// Observe matches engine.Runner's OnInput hook.
func (r *Recorder) Observe(at time.Duration, ev engine.InputEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.Key == model.KeyR && ev.Pressed {
		r.tl.Events = nil
		return
	}
	if _, ok := ev.Key.Track(); !ok {
		return
	}
	action := Release
	if ev.Pressed {
		action = Press
	}
	r.tl.Events = append(r.tl.Events, Event{AtMs: at.Milliseconds(), Key: ev.Key, Action: action})
}

func (r *Recorder) Timeline() Timeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	tl := r.tl
	tl.Events = append([]Event(nil), r.tl.Events...)
	return tl
}

// Result summarises a finished run.
type Result struct {
	Score     float64 `json:"score"`
	HitCount  int     `json:"hit_count"`
	Total     int     `json:"total_count"`
	Accuracy  float64 `json:"accuracy"`
	FullClear bool    `json:"full_clear"`
	Ended     bool    `json:"ended"`
	Steps     uint64  `json:"steps"`
}

func NewResult(s engine.State) Result {
	return Result{
		Score:     s.Score.Score,
		HitCount:  s.Score.HitCount,
		Total:     s.Score.TotalCount,
		Accuracy:  util.Accuracy(s.Score.HitCount, s.Score.TotalCount),
		FullClear: s.Score.FullClear(),
		Ended:     s.Ended,
		Steps:     s.Step,
	}
}

// Play runs the chart with the timeline's input on virtual time and returns
// the final state. The same inputs always produce the same state.
func Play(events []model.Music, tl Timeline, cfg config.Config, ports engine.Ports) (engine.State, error) {
	if err := tl.Validate(); err != nil {
		return engine.State{}, err
	}
	input := append([]Event(nil), tl.Events...)
	sort.SliceStable(input, func(i, j int) bool { return input[i].AtMs < input[j].AtMs })

	s := engine.NewSession(events, cfg, ports)
	for _, e := range input {
		s.AdvanceTo(e.At())
		if s.Disposed() {
			break
		}
		if e.Action == Press {
			s.Press(e.Key, e.At())
		} else {
			s.Release(e.Key, e.At())
		}
	}

	limit := s.Horizon()
	if n := len(input); n > 0 {
		limit = util.Max(limit, input[n-1].At()+s.Horizon()-s.Timing().Completion)
	}
	return s.RunToEnd(limit), nil
}
