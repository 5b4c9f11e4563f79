package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsphweid/notefall/engine"
	"github.com/jsphweid/notefall/render"
	"github.com/jsphweid/notefall/replay"
)

var replayJSON bool

func init() {
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(replayCmd)
}

var replayCmd = &cobra.Command{
	Use:   "replay <song> <timeline.yaml>",
	Short: "Replays a recorded timeline headlessly",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_, events, err := loadSong(args[0])
		if err != nil {
			return err
		}
		tl, err := replay.Load(args[1])
		if err != nil {
			return err
		}
		st, err := replay.Play(events, tl, cfg, engine.Ports{})
		if err != nil {
			return err
		}
		if replayJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(replay.NewResult(st))
		}
		fmt.Print(render.EndScreen(st.Score))
		return nil
	},
}
