package model

// Note is a falling marker. Y is the leading edge, EndY the trailing edge.
type Note struct {
	Y             float64 `json:"y"`
	EndY          float64 `json:"end_y"`
	Music         Music   `json:"music"`
	IsStream      bool    `json:"is_stream"`
	Clicked       bool    `json:"clicked"`
	ClickedBefore bool    `json:"clicked_before"`
}

func NewNote(y, endY float64, music Music, isStream bool) Note {
	return Note{
		Y:        y,
		EndY:     endY,
		Music:    music,
		IsStream: isStream,
	}
}

// Click marks the note held. ClickedBefore is a one-way latch.
func (n Note) Click() Note {
	n.Clicked = true
	n.ClickedBefore = true
	return n
}

func (n Note) Unclick() Note {
	n.Clicked = false
	return n
}

// Move advances the note by speed. A held note keeps its head and only
// moves its tail.
func (n Note) Move(speed float64) Note {
	if !n.Clicked {
		n.Y += speed
	}
	n.EndY += speed
	return n
}

// Edge is the position checked against the unrender threshold.
func (n Note) Edge() float64 {
	if n.IsStream {
		return n.EndY
	}
	return n.Y
}
