// Package device connects the game to live MIDI ports.
package device

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	mid "github.com/jsphweid/notefall/midi"
	"github.com/jsphweid/notefall/model"
)

var ErrNoPort = errors.New("midi port not found")

const drumChannel = 9

type sounding struct {
	channel uint8
	pitch   uint8
}

// Out is a sound device writing to a MIDI output. Every instrument gets its
// own channel and program the first time it sounds.
type Out struct {
	mu       sync.Mutex
	send     func(midi.Message) error
	channels map[string]uint8
	next     uint8
	timers   map[*time.Timer]struct{}
	held     map[sounding]int
	closed   bool
}

func NewOut(send func(midi.Message) error) *Out {
	return &Out{
		send:     send,
		channels: make(map[string]uint8),
		timers:   make(map[*time.Timer]struct{}),
		held:     make(map[sounding]int),
	}
}

// OpenOut opens the named output port, or the first one when name is empty.
func OpenOut(name string) (*Out, error) {
	port, err := findOut(name)
	if err != nil {
		return nil, err
	}
	send, err := midi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", port, err)
	}
	slog.Info("midi output connected", "device", port.String())
	return NewOut(send), nil
}

func findOut(name string) (drivers.Out, error) {
	if name == "" {
		p, err := midi.OutPort(0)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoPort, err)
		}
		return p, nil
	}
	p, err := midi.FindOutPort(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNoPort, name)
	}
	return p, nil
}

func clamp7(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}

// channel returns the channel for an instrument, sending a program change
// when it is first seen. Callers hold mu.
func (o *Out) channel(instrument string) uint8 {
	if ch, ok := o.channels[instrument]; ok {
		return ch
	}
	ch := o.next % 16
	if ch == drumChannel {
		ch++
	}
	o.next = ch + 1
	o.channels[instrument] = ch

	program, ok := mid.Program(instrument)
	if !ok {
		slog.Debug("no program for instrument", "instrument", instrument)
	}
	o.write(midi.ProgramChange(ch, program))
	return ch
}

func (o *Out) write(msg midi.Message) {
	if err := o.send(msg); err != nil {
		slog.Warn("midi send failed", "msg", msg.String(), "err", err)
	}
}

func (o *Out) noteOn(m model.Music) (sounding, bool) {
	if o.closed {
		return sounding{}, false
	}
	s := sounding{channel: o.channel(m.Instrument), pitch: clamp7(m.Pitch)}
	o.write(midi.NoteOn(s.channel, s.pitch, clamp7(m.Velocity)))
	o.held[s]++
	return s, true
}

func (o *Out) noteOff(s sounding) {
	if o.held[s] == 0 {
		return
	}
	o.held[s]--
	if o.held[s] == 0 {
		delete(o.held, s)
	}
	o.write(midi.NoteOff(s.channel, s.pitch))
}

// Play sounds m for its duration.
func (o *Out) Play(m model.Music) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s, ok := o.noteOn(m)
	if !ok {
		return
	}
	d := time.Duration(m.Duration() * float64(time.Second))
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.timers, t)
		o.noteOff(s)
	})
	o.timers[t] = struct{}{}
}

// Start sounds m until Stop.
func (o *Out) Start(m model.Music) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.noteOn(m)
}

func (o *Out) Stop(m model.Music) {
	o.mu.Lock()
	defer o.mu.Unlock()
	ch, ok := o.channels[m.Instrument]
	if !ok {
		return
	}
	o.noteOff(sounding{channel: ch, pitch: clamp7(m.Pitch)})
}

// Close silences everything still sounding. Later commands are ignored.
func (o *Out) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	for t := range o.timers {
		t.Stop()
	}
	o.timers = map[*time.Timer]struct{}{}
	for s, n := range o.held {
		for ; n > 0; n-- {
			o.write(midi.NoteOff(s.channel, s.pitch))
		}
	}
	o.held = map[sounding]int{}
}
