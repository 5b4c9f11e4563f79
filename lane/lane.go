// Package lane places newly due chart events onto the board's tracks.
package lane

import (
	"time"

	"github.com/jsphweid/notefall/model"
)

// Geometry is the slice of configuration lane assignment depends on.
type Geometry struct {
	Speed             float64
	TickPeriod        time.Duration
	StreamMinDuration float64
}

// EndOffset is the tail position of a freshly spawned note. It is negative:
// the tail starts above the visible area.
func (g Geometry) EndOffset(m model.Music) float64 {
	tickMs := float64(g.TickPeriod) / float64(time.Millisecond)
	return -(g.Speed * m.Duration() * 1000) / tickMs
}

func (g Geometry) NewNote(m model.Music) model.Note {
	return model.NewNote(0, g.EndOffset(m), m, m.Duration() >= g.StreamMinDuration)
}

// accepts reports whether m can follow the track's back note without the
// two overlapping in time.
func accepts(t model.Track, m model.Music) bool {
	back, ok := t.Back()
	if !ok {
		return true
	}
	last := back.Music
	if back.IsStream {
		return m.Start > last.End || m.Start < last.Start
	}
	return m.Start != last.Start
}

// Available lists the tracks that can take m, in board order.
func Available(b model.Board, m model.Music) []model.TrackID {
	var ids []model.TrackID
	for i, t := range b.Tracks {
		if accepts(t, m) {
			ids = append(ids, model.TrackID(i))
		}
	}
	return ids
}

// Assign appends a note for m to the candidate picked by pitch. When every
// track conflicts the board is returned unchanged and ok is false.
func Assign(b model.Board, m model.Music, g Geometry) (next model.Board, id model.TrackID, ok bool) {
	ids := Available(b, m)
	if len(ids) == 0 {
		return b, 0, false
	}
	idx := m.Pitch % len(ids)
	if idx < 0 {
		idx += len(ids)
	}
	id = ids[idx]
	return b.WithTrack(id, b.Track(id).Append(g.NewNote(m))), id, true
}
