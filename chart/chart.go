// Package chart decodes and encodes chart text: a header row followed by
// comma-separated rows of played,instrument,velocity,pitch,start,end.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jsphweid/notefall/model"
)

const Header = "user_played, instrument_name, velocity, pitch, start (s), end (s)"

const fieldsPerRow = 6

var ErrEmptyChart = errors.New("chart has no events")

// Parse decodes chart text. The first row is a header. Rows that do not have
// exactly six fields, or whose numeric fields do not parse, are dropped.
// Row order is kept as is.
func Parse(text string) []model.Music {
	rows := strings.Split(text, "\n")
	if len(rows) == 0 {
		return nil
	}
	var res []model.Music
	for _, row := range rows[1:] {
		m, ok := parseRow(strings.TrimRight(row, "\r"))
		if ok {
			res = append(res, m)
		}
	}
	return res
}

func parseRow(row string) (model.Music, bool) {
	fields := strings.Split(row, ",")
	if len(fields) != fieldsPerRow {
		return model.Music{}, false
	}
	velocity, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return model.Music{}, false
	}
	pitch, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return model.Music{}, false
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(fields[4]), 64)
	if err != nil {
		return model.Music{}, false
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(fields[5]), 64)
	if err != nil {
		return model.Music{}, false
	}
	return model.Music{
		Played:     strings.EqualFold(strings.TrimSpace(fields[0]), "true"),
		Instrument: strings.TrimSpace(fields[1]),
		Velocity:   int(velocity),
		Pitch:      int(pitch),
		Start:      start,
		End:        end,
	}, true
}

func ReadFile(path string) ([]model.Music, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chart %s: %w", path, err)
	}
	events := Parse(string(dat))
	if len(events) == 0 {
		return nil, fmt.Errorf("chart %s: %w", path, ErrEmptyChart)
	}
	return events, nil
}

// FormatRow encodes one event. Numbers use the shortest representation that
// parses back to the same value.
func FormatRow(m model.Music) string {
	return strings.Join([]string{
		strconv.FormatBool(m.Played),
		m.Instrument,
		strconv.Itoa(m.Velocity),
		strconv.Itoa(m.Pitch),
		strconv.FormatFloat(m.Start, 'g', -1, 64),
		strconv.FormatFloat(m.End, 'g', -1, 64),
	}, ",")
}

func Encode(w io.Writer, events []model.Music) error {
	if _, err := fmt.Fprintln(w, Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, m := range events {
		if _, err := fmt.Fprintln(w, FormatRow(m)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return nil
}

func WriteFile(path string, events []model.Music) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := Encode(f, events); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// PlayingInstrument is the instrument of the first played event, or fallback
// when none is played.
func PlayingInstrument(events []model.Music, fallback string) string {
	for _, m := range events {
		if m.Played {
			return m.Instrument
		}
	}
	return fallback
}
