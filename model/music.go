package model

import "github.com/jsphweid/notefall/constants"

// Music is one chart event. Start and End are seconds relative to the chart.
type Music struct {
	Played     bool    `json:"played" yaml:"played"`
	Instrument string  `json:"instrument" yaml:"instrument"`
	Velocity   int     `json:"velocity" yaml:"velocity"`
	Pitch      int     `json:"pitch" yaml:"pitch"`
	Start      float64 `json:"start" yaml:"start"`
	End        float64 `json:"end" yaml:"end"`
}

func (m Music) Duration() float64 {
	return m.End - m.Start
}

// Volume scales velocity to [0, 1].
func (m Music) Volume() float64 {
	return float64(m.Velocity) / constants.MaxVelocity
}
