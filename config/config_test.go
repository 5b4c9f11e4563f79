package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notefall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Millisecond, cfg.TickPeriod())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
note_speed: 7
seeds:
  pitch: 99
midi:
  out_port: "FluidSynth"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(7.0, cfg.NoteSpeed)
	assert.Equal(uint64(99), cfg.Seeds.Pitch)
	assert.Equal(Default().Seeds.Duration, cfg.Seeds.Duration)
	assert.Equal("FluidSynth", cfg.MIDI.OutPort)
	assert.Equal(Default().Zones, cfg.Zones)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]error{
		"tick_rate_ms: 0\n":                      ErrTickRate,
		"zones:\n  good: 400\n":                  ErrZoneOrder,
		"midi:\n  lane_notes: [60, 60, 62, 64]\n": ErrLaneNotes,
		"midi:\n  lane_notes: [60]\n":            ErrLaneNotes,
	}
	for body, want := range cases {
		_, err := Load(writeConfig(t, body))
		assert.ErrorIs(t, err, want, body)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
