package device

import (
	"fmt"
	"log/slog"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/jsphweid/notefall/config"
	"github.com/jsphweid/notefall/engine"
	"github.com/jsphweid/notefall/model"
)

// Keymap turns keyboard notes into game controls.
type Keymap map[uint8]model.Key

func NewKeymap(m config.MIDI) Keymap {
	km := make(Keymap, len(m.LaneNotes)+2)
	for i, n := range m.LaneNotes {
		if i < len(model.TrackKeys) {
			km[clamp7(n)] = model.TrackKeys[i]
		}
	}
	km[clamp7(m.RetryNote)] = model.KeyR
	km[clamp7(m.LeaveNote)] = model.KeyEscape
	return km
}

// Translate maps a note start or end onto an input event.
func (km Keymap) Translate(msg midi.Message) (engine.InputEvent, bool) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		k, ok := km[key]
		return engine.InputEvent{Key: k, Pressed: true}, ok
	case msg.GetNoteEnd(&ch, &key):
		k, ok := km[key]
		return engine.InputEvent{Key: k, Pressed: false}, ok
	}
	return engine.InputEvent{}, false
}

func findIn(name string) (drivers.In, error) {
	if name == "" {
		p, err := midi.InPort(0)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoPort, err)
		}
		return p, nil
	}
	p, err := midi.FindInPort(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNoPort, name)
	}
	return p, nil
}

// Listen forwards mapped notes from the configured input port to events
// until stop is called. Events are dropped when the channel is full.
func Listen(m config.MIDI, events chan<- engine.InputEvent) (stop func(), err error) {
	in, err := findIn(m.InPort)
	if err != nil {
		return nil, err
	}
	km := NewKeymap(m)
	stop, err = midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		ev, ok := km.Translate(msg)
		if !ok {
			return
		}
		select {
		case events <- ev:
		default:
			slog.Warn("input dropped", "key", ev.Key, "pressed", ev.Pressed)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("listening to %s: %w", in, err)
	}
	slog.Info("midi input connected", "device", in.String())
	return stop, nil
}

// PortNames lists the available MIDI inputs and outputs.
func PortNames() (ins, outs []string) {
	for _, p := range midi.GetInPorts() {
		ins = append(ins, p.String())
	}
	for _, p := range midi.GetOutPorts() {
		outs = append(outs, p.String())
	}
	return ins, outs
}
