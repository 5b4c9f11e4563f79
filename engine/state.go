package engine

import (
	"time"

	"github.com/jsphweid/notefall/config"
	"github.com/jsphweid/notefall/judge"
	"github.com/jsphweid/notefall/model"
	"github.com/jsphweid/notefall/rng"
)

// Judgment is the most recent press or release outcome, kept for one step.
type Judgment struct {
	Track   model.TrackID `json:"track"`
	Outcome judge.Outcome `json:"outcome"`
}

// State is the authoritative game state. The fold produces a new one for
// every applied transition; values are never shared between steps.
type State struct {
	Step        uint64               `json:"step"`
	Time        time.Duration        `json:"time"`
	Ended       bool                 `json:"ended"`
	PressedKeys model.KeySet         `json:"pressed_keys"`
	Board       model.Board          `json:"board"`
	Score       model.Score          `json:"score"`
	Sound       model.SoundCommand   `json:"sound"`
	OutOfBound  []model.SoundCommand `json:"out_of_bound"`
	Dropped     []model.Music        `json:"dropped"`
	Judgment    Judgment             `json:"judgment"`
	PRNG        rng.Pair             `json:"-"`
	Leave       bool                 `json:"leave"`
	Retry       bool                 `json:"retry"`
}

func InitialState(playingInstrument string, seeds config.Seeds) State {
	return State{
		Score: model.NewScore(playingInstrument),
		PRNG:  rng.NewPair(seeds.Pitch, seeds.Duration),
	}
}

// reset clears everything that only lives for a single step.
func reset(prev State) State {
	prev.Sound = model.SoundCommand{}
	prev.OutOfBound = nil
	prev.Dropped = nil
	prev.Judgment = Judgment{}
	prev.Leave = false
	prev.Retry = false
	return prev
}

// Commands lists the sound commands carried by the state, in dispatch order.
func (s State) Commands() []model.SoundCommand {
	var cmds []model.SoundCommand
	if !s.Sound.Empty() {
		cmds = append(cmds, s.Sound)
	}
	return append(cmds, s.OutOfBound...)
}
