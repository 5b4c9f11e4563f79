package model

// Score is the scoring half of the game state.
type Score struct {
	Multiplier        float64 `json:"multiplier"`
	Score             float64 `json:"score"`
	Combo             int     `json:"combo"`
	HitCount          int     `json:"hit_count"`
	TotalCount        int     `json:"total_count"`
	LastEventFired    bool    `json:"last_event_fired"`
	PlayingInstrument string  `json:"playing_instrument"`
}

func NewScore(playingInstrument string) Score {
	return Score{
		Multiplier:        1,
		PlayingInstrument: playingInstrument,
	}
}

// Multiplier is 1 + floor(combo/10)*0.2, computed in tenths so that no
// binary rounding leaks into the score.
func Multiplier(combo int) float64 {
	if combo < 0 {
		combo = 0
	}
	return float64(10+2*(combo/10)) / 10
}

// Hit counts a successful judgment and bumps the combo.
func (s Score) Hit() Score {
	s.Combo++
	s.Multiplier = Multiplier(s.Combo)
	s.HitCount++
	s.TotalCount++
	return s
}

// Award adds base points at the current multiplier.
func (s Score) Award(base float64) Score {
	s.Score += base * s.Multiplier
	return s
}

// Break resets the combo without counting a judgment.
func (s Score) Break() Score {
	s.Combo = 0
	s.Multiplier = 1
	return s
}

// Miss counts a failed judgment.
func (s Score) Miss() Score {
	s.TotalCount++
	return s.Break()
}

func (s Score) FullClear() bool {
	return s.HitCount == s.TotalCount
}
