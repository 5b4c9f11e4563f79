package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsphweid/notefall/chart"
	"github.com/jsphweid/notefall/config"
	"github.com/jsphweid/notefall/midi"
	"github.com/jsphweid/notefall/model"
	"github.com/jsphweid/notefall/util"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid|song>",
	Short: "Inspects a MIDI file or a chart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(filepath.Ext(args[0])) {
		case ".mid", ".midi":
			return inspectMidi(args[0])
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_, events, err := loadSong(args[0])
		if err != nil {
			return err
		}
		inspectChart(events, cfg)
		return nil
	},
}

func inspectMidi(path string) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	summaries := midi.Summarize(s)
	played, ok := midi.DefaultPlayedTrack(summaries)
	for _, t := range summaries {
		inst := t.Instrument
		if inst == "" {
			inst = "unsupported"
		}
		marker := ""
		if ok && t.Index == played {
			marker = " (default played)"
		}
		fmt.Printf("track %d: %s -> %s, %d notes, %d simultaneous%s\n",
			t.Index, t.GMName, inst, t.Notes, t.Polyphony, marker)
	}
	return nil
}

func inspectChart(events []model.Music, cfg config.Config) {
	timing := chart.NewTiming(events, cfg)
	perInstrument := make(map[string]int)
	var played int
	for _, m := range events {
		perInstrument[m.Instrument]++
		if m.Played {
			played++
		}
	}
	fmt.Printf("events: %d (%d played)\n", len(events), played)
	fmt.Printf("playing instrument: %s\n", chart.PlayingInstrument(events, cfg.DefaultInstrument))
	for _, k := range util.GetKeys(perInstrument) {
		fmt.Printf("  %s: %d\n", k, perInstrument[k])
	}
	fmt.Printf("travel: %v\nlead-in: %v\ncompletion: %v\n", timing.Travel, timing.LeadIn, timing.Completion)
}
