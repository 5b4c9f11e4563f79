package replay

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/notefall/config"
	"github.com/jsphweid/notefall/engine"
	"github.com/jsphweid/notefall/model"
)

var chart = []model.Music{
	{Played: true, Instrument: "piano", Velocity: 100, Pitch: 60, Start: 2.0, End: 2.1},
	{Played: true, Instrument: "piano", Velocity: 100, Pitch: 61, Start: 2.0, End: 4.0},
}

// Pitch 60 lands on the green track, 61 on the blue one. Both heads reach
// 339.5 at 3490ms; the held tail is in the window at 5520ms.
var perfect = Timeline{Song: "test", Events: []Event{
	{AtMs: 3495, Key: model.KeyS, Action: Press},
	{AtMs: 3495, Key: model.KeyJ, Action: Press},
	{AtMs: 3510, Key: model.KeyS, Action: Release},
	{AtMs: 5525, Key: model.KeyJ, Action: Release},
}}

func TestPlayPerfectRun(t *testing.T) {
	st, err := Play(chart, perfect, config.Default(), engine.Ports{})
	require.NoError(t, err)

	res := NewResult(st)
	assert.True(t, res.Ended)
	assert.True(t, res.FullClear)
	assert.Equal(t, 3, res.HitCount)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 100.0, res.Accuracy)
	// the hold scores on release only
	assert.Equal(t, 20.0, res.Score)
}

func TestPlayWithoutInput(t *testing.T) {
	st, err := Play(chart, Timeline{}, config.Default(), engine.Ports{})
	require.NoError(t, err)

	res := NewResult(st)
	assert.True(t, res.Ended)
	assert.False(t, res.FullClear)
	assert.Equal(t, 0, res.HitCount)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 0.0, res.Accuracy)
}

func TestPlayIsDeterministic(t *testing.T) {
	a, err := Play(chart, perfect, config.Default(), engine.Ports{})
	require.NoError(t, err)
	b, err := Play(chart, perfect, config.Default(), engine.Ports{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPlayRejectsBadTimelines(t *testing.T) {
	_, err := Play(chart, Timeline{Events: []Event{{AtMs: 1, Key: model.KeyR, Action: Press}}}, config.Default(), engine.Ports{})
	assert.ErrorIs(t, err, ErrUnknownKey)

	_, err = Play(chart, Timeline{Events: []Event{{AtMs: 1, Key: model.KeyS, Action: "tap"}}}, config.Default(), engine.Ports{})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = Play(chart, Timeline{Events: []Event{{AtMs: -1, Key: model.KeyS, Action: Press}}}, config.Default(), engine.Ports{})
	assert.ErrorIs(t, err, ErrNegativeTime)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, Save(path, perfect))

	tl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, perfect, tl)
}

func TestDecode(t *testing.T) {
	tl, err := Decode(strings.NewReader(`
song: demo
events:
  - at_ms: 100
    key: KeyJ
    action: press
`))
	require.NoError(t, err)
	assert.Equal(t, Timeline{Song: "demo", Events: []Event{{AtMs: 100, Key: model.KeyJ, Action: Press}}}, tl)

	tl, err = Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tl.Events)

	_, err = Decode(strings.NewReader("events:\n  - key: Space\n    action: press\n"))
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder("demo")
	r.Observe(10*time.Millisecond, engine.InputEvent{Key: model.KeyS, Pressed: true})
	r.Observe(20*time.Millisecond, engine.InputEvent{Key: model.KeyR, Pressed: true})
	r.Observe(5*time.Millisecond, engine.InputEvent{Key: model.KeyD, Pressed: true})
	r.Observe(7*time.Millisecond, engine.InputEvent{Key: model.KeyEscape, Pressed: true})
	r.Observe(9*time.Millisecond, engine.InputEvent{Key: model.KeyD, Pressed: false})

	tl := r.Timeline()
	assert.Equal(t, "demo", tl.Song)
	assert.Equal(t, []Event{
		{AtMs: 5, Key: model.KeyD, Action: Press},
		{AtMs: 9, Key: model.KeyD, Action: Release},
	}, tl.Events)
}
