// Package midi reads standard MIDI files and converts them into charts.
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	return Read(bytes.NewReader(dat))
}

// Read parses an SMF. Malformed input can panic inside smf
// (https://github.com/gomidi/midi/issues/20); that is reported as an error.
func Read(r io.Reader) (s *smf.SMF, e error) {
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			e = fmt.Errorf("parsing midi file: %v", rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}
	if res == nil {
		return nil, errors.New("parsing midi file: empty result")
	}
	return res, nil
}
