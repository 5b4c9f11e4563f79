package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsphweid/notefall/chart"
	"github.com/jsphweid/notefall/constants"
	"github.com/jsphweid/notefall/midi"
	"github.com/jsphweid/notefall/util"
)

var (
	playedTrack  int
	replacements []string
	outDir       string
	convertAll   bool
	maxFiles     int
)

func init() {
	convertCmd.Flags().IntVar(&playedTrack, "played", -1, "SMF track index the player performs (default: busiest playable track)")
	convertCmd.Flags().StringSliceVar(&replacements, "replace", nil, `instrument for an unsupported GM program, e.g. "Harpsichord=piano"`)
	convertCmd.Flags().StringVar(&outDir, "out", "", "output directory (default CHART_DIR)")
	convertCmd.Flags().BoolVar(&convertAll, "all", false, "convert every MIDI file under MIDI_DIR")
	convertCmd.Flags().IntVar(&maxFiles, "max", 0, "with --all, stop after this many files")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert [file.mid...]",
	Short: "Converts MIDI files into charts",
	RunE: func(cmd *cobra.Command, args []string) error {
		replace, err := parseReplacements(replacements)
		if err != nil {
			return err
		}
		paths := args
		if convertAll {
			found, err := util.GatherPaths(constants.GetMidiDir(), []string{".mid", ".midi"}, maxFiles)
			if err != nil {
				return err
			}
			paths = append(paths, found...)
		}
		if len(paths) == 0 {
			return fmt.Errorf("no MIDI files given")
		}

		dir := outDir
		if dir == "" {
			dir = constants.GetChartDir()
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		opts := midi.Options{PlayedTrack: playedTrack, Replace: replace}
		var failed int
		for i, p := range paths {
			fmt.Printf("Converting %v of %v: %s\n", i+1, len(paths), p)
			if err := convertFile(p, dir, opts); err != nil {
				slog.Error("conversion failed", "path", p, "err", err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d conversions failed", failed, len(paths))
		}
		return nil
	},
}

func parseReplacements(pairs []string) (map[string]string, error) {
	res := make(map[string]string, len(pairs))
	for _, p := range pairs {
		gm, inst, ok := strings.Cut(p, "=")
		if !ok || gm == "" || inst == "" {
			return nil, fmt.Errorf("bad --replace %q, want GM=instrument", p)
		}
		if _, known := midi.Program(inst); !known {
			return nil, fmt.Errorf("bad --replace %q: unknown instrument %q", p, inst)
		}
		res[gm] = inst
	}
	return res, nil
}

func convertFile(path, dir string, opts midi.Options) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	events, err := midi.Convert(s, opts)
	if err != nil {
		return err
	}
	base := filepath.Base(path)
	out := filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".csv")
	if err := chart.WriteFile(out, events); err != nil {
		return err
	}
	fmt.Printf("Saved chart as: %s\n", out)
	return nil
}
