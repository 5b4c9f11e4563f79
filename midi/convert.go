package midi

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/notefall/model"
)

// MaxPlayablePolyphony is the first peak polyphony too dense to be picked as
// the played track automatically.
const MaxPlayablePolyphony = 5

var (
	ErrNoPlayableTrack = errors.New("no track is playable")
	ErrTrackNotFound   = errors.New("played track not found")
)

type note struct {
	pitch    uint8
	velocity uint8
	start    int64
	end      int64
}

// TrackSummary describes one SMF track that carries notes.
type TrackSummary struct {
	Index      int    `json:"index"`
	Program    uint8  `json:"program"`
	GMName     string `json:"gm_name"`
	Instrument string `json:"instrument"`
	Notes      int    `json:"notes"`
	Polyphony  int    `json:"polyphony"`
}

func (t TrackSummary) Supported() bool { return t.Instrument != "" }

type Options struct {
	// PlayedTrack is the SMF track index the player performs. Negative picks
	// the supported track with the most notes whose polyphony stays below
	// MaxPlayablePolyphony.
	PlayedTrack int
	// Replace assigns a chart instrument to unsupported GM programs, keyed by
	// GM name. Unsupported tracks without a replacement are skipped.
	Replace map[string]string
}

type track struct {
	summary TrackSummary
	notes   []note
}

func readTrack(events smf.Track) (program uint8, notes []note) {
	type key struct{ ch, pitch uint8 }
	open := make(map[key][]note)
	programSet := false

	var absTicks int64
	for _, ev := range events {
		absTicks += int64(ev.Delta)
		msg := midi.Message(ev.Message)
		var ch, k, vel, prog uint8
		switch {
		case msg.GetNoteStart(&ch, &k, &vel):
			id := key{ch, k}
			open[id] = append(open[id], note{pitch: k, velocity: vel, start: absTicks})
		case msg.GetNoteEnd(&ch, &k):
			id := key{ch, k}
			pending := open[id]
			if len(pending) == 0 {
				continue
			}
			n := pending[0]
			open[id] = pending[1:]
			n.end = absTicks
			notes = append(notes, n)
		case msg.GetProgramChange(&ch, &prog):
			if !programSet {
				program, programSet = prog, true
			}
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].start != notes[j].start {
			return notes[i].start < notes[j].start
		}
		return notes[i].pitch > notes[j].pitch
	})
	return program, notes
}

// polyphony is the peak number of notes sounding at once.
func polyphony(notes []note) int {
	type edge struct {
		at  int64
		off bool
	}
	edges := make([]edge, 0, len(notes)*2)
	for _, n := range notes {
		edges = append(edges, edge{n.start, false}, edge{n.end, true})
	}
	// note offs first so touching notes do not overlap
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].at != edges[j].at {
			return edges[i].at < edges[j].at
		}
		return edges[i].off && !edges[j].off
	})

	var cur, peak int
	for _, e := range edges {
		if e.off {
			cur--
			continue
		}
		cur++
		if cur > peak {
			peak = cur
		}
	}
	return peak
}

func readTracks(s *smf.SMF) []track {
	var res []track
	for i, events := range s.Tracks {
		program, notes := readTrack(events)
		if len(notes) == 0 {
			continue
		}
		res = append(res, track{
			summary: TrackSummary{
				Index:      i,
				Program:    program,
				GMName:     GM[program&0x7f],
				Instrument: Instrument(program),
				Notes:      len(notes),
				Polyphony:  polyphony(notes),
			},
			notes: notes,
		})
	}
	return res
}

// Summarize lists every track that carries notes.
func Summarize(s *smf.SMF) []TrackSummary {
	var res []TrackSummary
	for _, t := range readTracks(s) {
		res = append(res, t.summary)
	}
	return res
}

// DefaultPlayedTrack picks the playable track with the most notes.
func DefaultPlayedTrack(summaries []TrackSummary) (int, bool) {
	best, found := -1, false
	var most int
	for _, t := range summaries {
		if !t.Supported() || t.Polyphony >= MaxPlayablePolyphony {
			continue
		}
		if !found || t.Notes > most {
			best, most, found = t.Index, t.Notes, true
		}
	}
	return best, found
}

// Convert turns the supported tracks of s into chart events sorted by start.
func Convert(s *smf.SMF, opts Options) ([]model.Music, error) {
	var tracks []track
	for _, t := range readTracks(s) {
		if !t.summary.Supported() {
			replacement, ok := opts.Replace[t.summary.GMName]
			if !ok || replacement == "" {
				slog.Debug("skipping unsupported track", "track", t.summary.Index, "program", t.summary.GMName)
				continue
			}
			t.summary.Instrument = replacement
		}
		tracks = append(tracks, t)
	}

	summaries := make([]TrackSummary, len(tracks))
	for i, t := range tracks {
		summaries[i] = t.summary
	}

	played := opts.PlayedTrack
	if played < 0 {
		var ok bool
		if played, ok = DefaultPlayedTrack(summaries); !ok {
			return nil, ErrNoPlayableTrack
		}
	} else if !hasTrack(summaries, played) {
		return nil, fmt.Errorf("%w: %d", ErrTrackNotFound, played)
	}

	seconds := func(ticks int64) float64 {
		return float64(s.TimeAt(ticks)) / 1e6
	}

	var events []model.Music
	for _, t := range tracks {
		for _, n := range t.notes {
			events = append(events, model.Music{
				Played:     t.summary.Index == played,
				Instrument: t.summary.Instrument,
				Velocity:   int(n.velocity),
				Pitch:      int(n.pitch),
				Start:      seconds(n.start),
				End:        seconds(n.end),
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start < events[j].Start
	})
	return events, nil
}

func hasTrack(summaries []TrackSummary, index int) bool {
	for _, t := range summaries {
		if t.Index == index {
			return true
		}
	}
	return false
}
