package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsphweid/notefall/chart"
	"github.com/jsphweid/notefall/constants"
	"github.com/jsphweid/notefall/model"
	"github.com/jsphweid/notefall/songs"
)

func init() {
	rootCmd.AddCommand(songsCmd)
}

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "Lists the charts in CHART_DIR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := songs.Scan(constants.GetChartDir())
		if err != nil {
			return err
		}
		for _, name := range c.Names() {
			fmt.Println(name)
		}
		return nil
	},
}

// loadSong accepts either a chart path or a song name from CHART_DIR.
func loadSong(arg string) (string, []model.Music, error) {
	if strings.HasSuffix(strings.ToLower(arg), ".csv") {
		if _, err := os.Stat(arg); err == nil {
			events, err := chart.ReadFile(arg)
			name := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
			return name, events, err
		}
	}
	c, err := songs.Scan(constants.GetChartDir())
	if err != nil {
		return "", nil, err
	}
	s, err := c.Find(arg)
	if err != nil {
		return "", nil, err
	}
	events, err := chart.ReadFile(s.Path)
	return s.Name, events, err
}
