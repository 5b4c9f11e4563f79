// Package rng is a linear congruential generator exposed as an immutable
// sequence: each Seq holds one value and knows how to produce the next.
package rng

import (
	"math"

	"github.com/jsphweid/notefall/constants"
	"github.com/jsphweid/notefall/model"
)

// GCC's LCG constants.
const (
	m = 0x80000000
	a = 1103515245
	c = 12345
)

func Hash(seed uint64) uint64 {
	return (a*seed + c) % m
}

// Scale maps a hash onto [0, 1].
func Scale(hash uint64) float64 {
	return float64(hash) / (m - 1)
}

type Seq struct {
	seed uint64
}

func New(seed uint64) Seq {
	return Seq{seed: seed % m}
}

func (s Seq) Value() float64 {
	return Scale(s.seed)
}

func (s Seq) Next() Seq {
	return Seq{seed: Hash(s.seed)}
}

// Draw returns the current value along with the advanced sequence.
func (s Seq) Draw() (float64, Seq) {
	return s.Value(), s.Next()
}

// Pair drives the fallback pitch and duration independently.
type Pair struct {
	Pitch    Seq
	Duration Seq
}

func NewPair(pitchSeed, durationSeed uint64) Pair {
	return Pair{Pitch: New(pitchSeed), Duration: New(durationSeed)}
}

func (p Pair) Next() Pair {
	return Pair{Pitch: p.Pitch.Next(), Duration: p.Duration.Next()}
}

// RandomPitch builds the fallback miss sound from the pair's current values.
// It does not advance the pair.
func RandomPitch(instrument string, p Pair) model.Music {
	if instrument == "" {
		instrument = constants.DefaultInstrument
	}
	return model.Music{
		Played:     false,
		Instrument: instrument,
		Velocity:   constants.MaxVelocity,
		Pitch:      int(math.Floor(25 + p.Pitch.Value()*65)),
		Start:      0,
		End:        p.Duration.Value() / 2,
	}
}
