package model

import "fmt"

type TrackID int

const (
	Green TrackID = iota
	Red
	Blue
	Yellow
)

const NumTracks = 4

var trackNames = [NumTracks]string{"green", "red", "blue", "yellow"}

func (id TrackID) String() string {
	if id < 0 || int(id) >= NumTracks {
		return fmt.Sprintf("track(%d)", int(id))
	}
	return trackNames[id]
}

// Board holds the four tracks.
type Board struct {
	Tracks [NumTracks]Track `json:"tracks"`
}

func (b Board) Track(id TrackID) Track {
	return b.Tracks[id]
}

func (b Board) WithTrack(id TrackID, t Track) Board {
	b.Tracks[id] = t
	return b
}

func (b Board) Empty() bool {
	for _, t := range b.Tracks {
		if t.Len() > 0 {
			return false
		}
	}
	return true
}

func (b Board) NoteCount() int {
	var n int
	for _, t := range b.Tracks {
		n += t.Len()
	}
	return n
}

// Tick advances every track independently and returns the notes that expired.
func (b Board) Tick(speed, threshold float64) (Board, []Note) {
	var expired []Note
	for i, t := range b.Tracks {
		next, gone := t.Tick(speed, threshold)
		b.Tracks[i] = next
		if gone != nil {
			expired = append(expired, *gone)
		}
	}
	return b, expired
}
