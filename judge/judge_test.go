package judge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/notefall/config"
	"github.com/jsphweid/notefall/model"
	"github.com/jsphweid/notefall/rng"
)

var (
	rules = NewRules(config.Default())
	prng  = rng.NewPair(1, 2)
	piano = model.Music{Played: true, Instrument: "piano", Velocity: 64, Pitch: 60, Start: 0, End: 0.3}
	long  = model.Music{Played: true, Instrument: "piano", Velocity: 64, Pitch: 62, Start: 1, End: 2.5}
)

func trackWith(notes ...model.Note) model.Track {
	var t model.Track
	for _, n := range notes {
		t = t.Append(n)
	}
	return t
}

func TestPressHitsNoteInWindow(t *testing.T) {
	tr := trackWith(model.NewNote(330, 225, piano, false))
	res := rules.Press(tr, model.NewScore("piano"), prng)

	assert := assert.New(t)
	assert.Equal(Hit, res.Outcome)
	assert.Equal(0, res.Track.Len())
	assert.True(res.Track.Hold)
	assert.Equal(10.0, res.Score.Score)
	assert.Equal(1, res.Score.Combo)
	assert.Equal(1.0, res.Score.Multiplier)
	assert.Equal(1, res.Score.HitCount)
	assert.Equal(1, res.Score.TotalCount)
	assert.Equal(model.Play(piano), res.Sound)
}

func TestPressOutsideWindowIsMiss(t *testing.T) {
	tr := trackWith(model.NewNote(305, 200, piano, false))
	s := model.NewScore("piano")
	s.Combo, s.Multiplier, s.Score = 12, 1.2, 100

	res := rules.Press(tr, s, prng)

	assert := assert.New(t)
	assert.Equal(Miss, res.Outcome)
	assert.Equal(1, res.Track.Len(), "a note outside the window stays on its track")
	assert.Equal(0, res.Score.Combo)
	assert.Equal(1.0, res.Score.Multiplier)
	assert.Equal(100.0, res.Score.Score)
	assert.Equal(1, res.Score.TotalCount)
	assert.Equal(model.Play(rng.RandomPitch("piano", prng)), res.Sound)
}

func TestPressSearchesPastNotesOutsideWindow(t *testing.T) {
	tr := trackWith(
		model.NewNote(380, 380, model.Music{Pitch: 1}, false),
		model.NewNote(340, 340, piano, false),
	)
	res := rules.Press(tr, model.NewScore("piano"), prng)
	require.Equal(t, Hit, res.Outcome)
	require.Equal(t, 1, res.Track.Len())
	assert.Equal(t, 1, res.Track.Notes[0].Music.Pitch)
}

func TestPressOnEmptyTrackIsMiss(t *testing.T) {
	res := rules.Press(model.Track{}, model.NewScore(""), prng)
	assert.Equal(t, Miss, res.Outcome)
	assert.Equal(t, "piano", res.Sound.Music.Instrument)
}

func TestStreamHoldThenReleaseInWindow(t *testing.T) {
	stream := model.NewNote(330, -200, long, true)
	s := model.NewScore("piano")

	pressed := rules.Press(trackWith(stream), s, prng)
	require.Equal(t, Hold, pressed.Outcome)
	require.Equal(t, 1, pressed.Track.Len())
	held := pressed.Track.Notes[0]
	assert.True(t, held.Clicked)
	assert.True(t, held.ClickedBefore)
	assert.Equal(t, 0.0, pressed.Score.Score)
	assert.Equal(t, model.Start(long), pressed.Sound)

	// The tail scrolls into the window while the head is held.
	tr := pressed.Track
	for tr.Notes[0].EndY < 330 {
		tr, _ = tr.Tick(rules.Speed, rules.Unrender)
	}
	assert.Equal(t, 330.0, tr.Notes[0].Y)

	released := rules.Release(tr, pressed.Score)
	assert.Equal(t, Hit, released.Outcome)
	assert.Equal(t, 0, released.Track.Len())
	assert.False(t, released.Track.Hold)
	assert.Equal(t, 2, released.Score.Combo)
	assert.Equal(t, 10.0, released.Score.Score)
	assert.Equal(t, model.Stop(long), released.Sound)
}

func TestStreamReleasedEarly(t *testing.T) {
	stream := model.NewNote(330, -200, long, true)
	pressed := rules.Press(trackWith(stream), model.NewScore("piano"), prng)

	released := rules.Release(pressed.Track, pressed.Score)
	require.Equal(t, Early, released.Outcome)
	require.Equal(t, 1, released.Track.Len())
	note := released.Track.Notes[0]
	assert.False(t, note.Clicked)
	assert.True(t, note.ClickedBefore)
	assert.Equal(t, 0, released.Score.Combo)
	assert.Equal(t, model.Stop(long), released.Sound)

	again := rules.Press(released.Track, released.Score, prng)
	assert.Equal(t, Miss, again.Outcome, "a latched head cannot be scored twice")
}

func TestReleaseWithNothingHeld(t *testing.T) {
	tr := trackWith(model.NewNote(330, 300, piano, false)).Down()
	s := model.NewScore("piano")
	res := rules.Release(tr, s)

	assert.Equal(t, None, res.Outcome)
	assert.False(t, res.Track.Hold)
	assert.Equal(t, s, res.Score)
	assert.True(t, res.Sound.Empty())
}

func TestTickBreaksComboOnMissedHead(t *testing.T) {
	var b model.Board
	b = b.WithTrack(model.Red, trackWith(model.NewNote(376, 376, piano, false)))
	s := model.NewScore("piano").Hit()

	res := rules.Tick(b, s)
	assert.Equal(t, 0, res.Score.Combo)
	assert.Equal(t, 1, res.Score.TotalCount, "not expired yet")
	assert.Equal(t, 379.5, res.Board.Track(model.Red).Notes[0].Y)
}

func TestTickCountsExpiredNotes(t *testing.T) {
	var b model.Board
	b = b.WithTrack(model.Blue, trackWith(model.NewNote(386, 386, piano, false)))

	res := rules.Tick(b, model.NewScore("piano"))
	assert.True(t, res.Board.Empty())
	assert.Equal(t, 1, res.Expired)
	assert.Equal(t, 1, res.Score.TotalCount)
	assert.Empty(t, res.Stops)
}

func TestTickStopsSustainHeldOffTheBoard(t *testing.T) {
	held := model.NewNote(330, 386, long, true).Click()
	var b model.Board
	b = b.WithTrack(model.Green, trackWith(held))
	s := model.NewScore("piano").Hit()

	res := rules.Tick(b, s)
	assert.True(t, res.Board.Empty())
	assert.Equal(t, 0, res.Expired)
	assert.Equal(t, []model.SoundCommand{model.Stop(long)}, res.Stops)
	assert.Equal(t, 0, res.Score.Combo)
	assert.Equal(t, 1, res.Score.TotalCount)
}
