package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsphweid/notefall/config"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "notefall",
	Short: "Falling-note rhythm game",
	Long: `notefall plays charts of timed musical events as falling notes on four
tracks, judged against timing windows.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger(debug)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file overriding the defaults")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
}

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	slog.SetDefault(slog.New(h))
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
