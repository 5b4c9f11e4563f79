package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const ticksPerBeat = 960

// song builds a 120 bpm file: a piano melody, a dense violin chord and a
// harpsichord note.
func song(t *testing.T, withMelody bool) *smf.SMF {
	t.Helper()
	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(ticksPerBeat)

	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(120))
	tempo.Close(0)
	require.NoError(t, sm.Add(tempo))

	if withMelody {
		var piano smf.Track
		piano.Add(0, midi.ProgramChange(0, 0))
		piano.Add(0, midi.NoteOn(0, 60, 100))
		piano.Add(ticksPerBeat, midi.NoteOff(0, 60))
		piano.Add(0, midi.NoteOn(0, 64, 90))
		piano.Add(ticksPerBeat, midi.NoteOff(0, 64))
		piano.Close(0)
		require.NoError(t, sm.Add(piano))
	}

	var violin smf.Track
	violin.Add(0, midi.ProgramChange(1, 40))
	for k := uint8(50); k < 56; k++ {
		violin.Add(0, midi.NoteOn(1, k, 70))
	}
	violin.Add(2*ticksPerBeat, midi.NoteOff(1, 50))
	for k := uint8(51); k < 56; k++ {
		violin.Add(0, midi.NoteOff(1, k))
	}
	violin.Close(0)
	require.NoError(t, sm.Add(violin))

	var harpsichord smf.Track
	harpsichord.Add(0, midi.ProgramChange(2, 6))
	harpsichord.Add(ticksPerBeat/2, midi.NoteOn(2, 72, 80))
	harpsichord.Add(ticksPerBeat/2, midi.NoteOff(2, 72))
	harpsichord.Close(0)
	require.NoError(t, sm.Add(harpsichord))

	var buf bytes.Buffer
	_, err := sm.WriteTo(&buf)
	require.NoError(t, err)
	res, err := Read(&buf)
	require.NoError(t, err)
	return res
}

func TestSummarize(t *testing.T) {
	summaries := Summarize(song(t, true))
	require.Len(t, summaries, 3)

	assert.Equal(t, TrackSummary{Index: 1, Program: 0, GMName: "Acoustic Grand Piano", Instrument: "piano", Notes: 2, Polyphony: 1}, summaries[0])
	assert.Equal(t, TrackSummary{Index: 2, Program: 40, GMName: "Violin", Instrument: "violin", Notes: 6, Polyphony: 6}, summaries[1])
	assert.Equal(t, TrackSummary{Index: 3, Program: 6, GMName: "Harpsichord", Notes: 1, Polyphony: 1}, summaries[2])
	assert.False(t, summaries[2].Supported())

	played, ok := DefaultPlayedTrack(summaries)
	assert.True(t, ok)
	assert.Equal(t, 1, played)
}

func TestConvertPicksMelody(t *testing.T) {
	events, err := Convert(song(t, true), Options{PlayedTrack: -1})
	require.NoError(t, err)
	require.Len(t, events, 8)

	first := events[0]
	assert.True(t, first.Played)
	assert.Equal(t, "piano", first.Instrument)
	assert.Equal(t, 60, first.Pitch)
	assert.Equal(t, 100, first.Velocity)
	assert.InDelta(t, 0.0, first.Start, 1e-9)
	assert.InDelta(t, 0.5, first.End, 1e-9)

	// the chord follows, highest pitch first
	for i, pitch := range []int{55, 54, 53, 52, 51, 50} {
		e := events[i+1]
		assert.False(t, e.Played)
		assert.Equal(t, "violin", e.Instrument)
		assert.Equal(t, pitch, e.Pitch)
		assert.InDelta(t, 1.0, e.End, 1e-9)
	}

	last := events[7]
	assert.True(t, last.Played)
	assert.Equal(t, 64, last.Pitch)
	assert.InDelta(t, 0.5, last.Start, 1e-9)
}

func TestConvertReplacesUnsupportedPrograms(t *testing.T) {
	events, err := Convert(song(t, true), Options{
		PlayedTrack: 3,
		Replace:     map[string]string{"Harpsichord": "piano"},
	})
	require.NoError(t, err)
	require.Len(t, events, 9)

	var played []int
	for _, e := range events {
		if e.Played {
			played = append(played, e.Pitch)
			assert.InDelta(t, 0.25, e.Start, 1e-9)
			assert.Equal(t, "piano", e.Instrument)
		}
	}
	assert.Equal(t, []int{72}, played)
}

func TestConvertErrors(t *testing.T) {
	_, err := Convert(song(t, true), Options{PlayedTrack: 3})
	assert.ErrorIs(t, err, ErrTrackNotFound)

	_, err = Convert(song(t, true), Options{PlayedTrack: 9})
	assert.ErrorIs(t, err, ErrTrackNotFound)

	_, err = Convert(song(t, false), Options{PlayedTrack: -1})
	assert.ErrorIs(t, err, ErrNoPlayableTrack)

	// without the melody the violin is track 1
	events, err := Convert(song(t, false), Options{PlayedTrack: 1})
	require.NoError(t, err)
	assert.Len(t, events, 6)
}

func TestPolyphony(t *testing.T) {
	assert.Equal(t, 0, polyphony(nil))
	// touching notes do not overlap
	assert.Equal(t, 1, polyphony([]note{{start: 0, end: 10}, {start: 10, end: 20}}))
	assert.Equal(t, 2, polyphony([]note{{start: 0, end: 10}, {start: 5, end: 20}, {start: 10, end: 30}}))
}

func TestInstrumentMapping(t *testing.T) {
	assert.Equal(t, "piano", Instrument(0))
	assert.Equal(t, "violin", Instrument(40))
	assert.Equal(t, "", Instrument(6))
	assert.Equal(t, "", Instrument(200))

	p, ok := Program("violin")
	assert.True(t, ok)
	assert.Equal(t, uint8(40), p)
	_, ok = Program("kazoo")
	assert.False(t, ok)
	_, ok = Program("")
	assert.False(t, ok)
}

func TestReadMidiFile(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage.mid")
	require.NoError(t, os.WriteFile(path, []byte("not a midi file"), 0o644))
	_, err = ReadMidiFile(path)
	assert.Error(t, err)
}
