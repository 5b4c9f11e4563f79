package engine

import "github.com/jsphweid/notefall/model"

// SoundDevice receives the sound commands produced by the fold.
type SoundDevice interface {
	Play(m model.Music)
	Start(m model.Music)
	Stop(m model.Music)
}

// Renderer receives every new state.
type Renderer interface {
	Render(s State)
}

type Ports struct {
	Sound  SoundDevice
	Render Renderer
}

type nopSound struct{}

func (nopSound) Play(model.Music)  {}
func (nopSound) Start(model.Music) {}
func (nopSound) Stop(model.Music)  {}

type nopRenderer struct{}

func (nopRenderer) Render(State) {}

func (p Ports) withDefaults() Ports {
	if p.Sound == nil {
		p.Sound = nopSound{}
	}
	if p.Render == nil {
		p.Render = nopRenderer{}
	}
	return p
}

func Dispatch(d SoundDevice, c model.SoundCommand) {
	switch c.Op {
	case model.SoundPlay:
		d.Play(c.Music)
	case model.SoundStart:
		d.Start(c.Music)
	case model.SoundStop:
		d.Stop(c.Music)
	}
}
