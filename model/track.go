package model

// Track is a FIFO of notes, front first. Every method returns a copy and
// never writes through to the receiver's backing array.
type Track struct {
	Notes []Note `json:"notes"`
	Hold  bool   `json:"hold"`
}

func (t Track) Len() int {
	return len(t.Notes)
}

func (t Track) Front() (Note, bool) {
	if len(t.Notes) == 0 {
		return Note{}, false
	}
	return t.Notes[0], true
}

func (t Track) Back() (Note, bool) {
	if len(t.Notes) == 0 {
		return Note{}, false
	}
	return t.Notes[len(t.Notes)-1], true
}

// FirstInRange returns the index of the first note whose head lies in [lo, hi].
func (t Track) FirstInRange(lo, hi float64) (int, bool) {
	for i, n := range t.Notes {
		if n.Y >= lo && n.Y <= hi {
			return i, true
		}
	}
	return -1, false
}

// FirstClicked returns the index of the held note, if any.
func (t Track) FirstClicked() (int, bool) {
	for i, n := range t.Notes {
		if n.Clicked {
			return i, true
		}
	}
	return -1, false
}

func (t Track) Down() Track {
	t.Hold = true
	return t
}

func (t Track) Up() Track {
	t.Hold = false
	return t
}

func (t Track) Append(n Note) Track {
	notes := make([]Note, 0, len(t.Notes)+1)
	notes = append(notes, t.Notes...)
	t.Notes = append(notes, n)
	return t
}

func (t Track) ReplaceAt(i int, n Note) Track {
	if i < 0 || i >= len(t.Notes) {
		return t
	}
	notes := make([]Note, len(t.Notes))
	copy(notes, t.Notes)
	notes[i] = n
	t.Notes = notes
	return t
}

func (t Track) RemoveAt(i int) Track {
	if i < 0 || i >= len(t.Notes) {
		return t
	}
	notes := make([]Note, 0, len(t.Notes)-1)
	notes = append(notes, t.Notes[:i]...)
	t.Notes = append(notes, t.Notes[i+1:]...)
	return t
}

func (t Track) RemoveFront() Track {
	return t.RemoveAt(0)
}

// Tick drops the front note when its edge is past threshold, then moves the
// rest by speed. The dropped note, if any, is returned.
func (t Track) Tick(speed, threshold float64) (Track, *Note) {
	var expired *Note
	notes := t.Notes
	if front, ok := t.Front(); ok && front.Edge() > threshold {
		expired = &front
		notes = notes[1:]
	}
	moved := make([]Note, len(notes))
	for i, n := range notes {
		moved[i] = n.Move(speed)
	}
	t.Notes = moved
	return t, expired
}
