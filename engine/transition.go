package engine

import (
	"github.com/jsphweid/notefall/judge"
	"github.com/jsphweid/notefall/lane"
	"github.com/jsphweid/notefall/model"
)

// Transition is one pure step of the fold.
type Transition func(State) State

func tickTransition(r judge.Rules) Transition {
	return func(prev State) State {
		res := r.Tick(prev.Board, prev.Score)
		prev.Board = res.Board
		prev.Score = res.Score
		prev.OutOfBound = append(prev.OutOfBound, res.Stops...)
		return prev
	}
}

func pressTransition(r judge.Rules, key model.Key) Transition {
	id, _ := key.Track()
	return func(prev State) State {
		res := r.Press(prev.Board.Track(id), prev.Score, prev.PRNG)
		prev.Board = prev.Board.WithTrack(id, res.Track)
		prev.Score = res.Score
		prev.Sound = res.Sound
		prev.Judgment = Judgment{Track: id, Outcome: res.Outcome}
		prev.PressedKeys = prev.PressedKeys.With(key)
		return prev
	}
}

func releaseTransition(r judge.Rules, key model.Key) Transition {
	id, _ := key.Track()
	return func(prev State) State {
		res := r.Release(prev.Board.Track(id), prev.Score)
		prev.Board = prev.Board.WithTrack(id, res.Track)
		prev.Score = res.Score
		prev.Sound = res.Sound
		prev.Judgment = Judgment{Track: id, Outcome: res.Outcome}
		prev.PressedKeys = prev.PressedKeys.Without(key)
		return prev
	}
}

func spawnTransition(g lane.Geometry, m model.Music) Transition {
	return func(prev State) State {
		board, _, ok := lane.Assign(prev.Board, m, g)
		if !ok {
			prev.Dropped = append(prev.Dropped, m)
			return prev
		}
		prev.Board = board
		return prev
	}
}

// ambientTransition plays a background event that never reaches the board.
func ambientTransition(m model.Music) Transition {
	return func(prev State) State {
		prev.Sound = model.Play(m)
		return prev
	}
}

// outOfBoundTransition plays a dropped event at its musical start.
func outOfBoundTransition(m model.Music) Transition {
	return func(prev State) State {
		prev.OutOfBound = append(prev.OutOfBound, model.Play(m))
		return prev
	}
}

func completeTransition(prev State) State {
	prev.Score.LastEventFired = true
	return prev
}
