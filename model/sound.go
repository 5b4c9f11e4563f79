package model

import "fmt"

type SoundOp int

const (
	SoundNone SoundOp = iota
	// SoundPlay is attack and release over the music's duration.
	SoundPlay
	// SoundStart is attack only; it rings until a matching SoundStop.
	SoundStart
	SoundStop
)

func (op SoundOp) String() string {
	switch op {
	case SoundNone:
		return "none"
	case SoundPlay:
		return "play"
	case SoundStart:
		return "start"
	case SoundStop:
		return "stop"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// SoundCommand is emitted by the core as data; devices carry it out.
type SoundCommand struct {
	Op    SoundOp `json:"op"`
	Music Music   `json:"music"`
}

func Play(m Music) SoundCommand  { return SoundCommand{Op: SoundPlay, Music: m} }
func Start(m Music) SoundCommand { return SoundCommand{Op: SoundStart, Music: m} }
func Stop(m Music) SoundCommand  { return SoundCommand{Op: SoundStop, Music: m} }

func (c SoundCommand) Empty() bool {
	return c.Op == SoundNone
}
