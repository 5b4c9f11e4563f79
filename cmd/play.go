package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/jsphweid/notefall/device"
	"github.com/jsphweid/notefall/engine"
	"github.com/jsphweid/notefall/render"
	"github.com/jsphweid/notefall/replay"
)

var (
	recordPath string
	listPorts  bool
	mute       bool
	hudEvery   time.Duration
)

func init() {
	playCmd.Flags().StringVar(&recordPath, "record", "", "save the input timeline to this YAML file")
	playCmd.Flags().BoolVar(&listPorts, "list-ports", false, "list MIDI ports and exit")
	playCmd.Flags().BoolVar(&mute, "mute", false, "do not open a MIDI output")
	playCmd.Flags().DurationVar(&hudEvery, "hud", 250*time.Millisecond, "minimum time between HUD lines")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <song>",
	Short: "Plays a chart with a MIDI keyboard",
	Long: `Plays a chart live. The configured MIDI input drives the four tracks plus
retry and leave; sounds go to the configured MIDI output.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if listPorts {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer midi.CloseDriver()
		if listPorts {
			ins, outs := device.PortNames()
			for _, p := range ins {
				fmt.Printf("in:  %s\n", p)
			}
			for _, p := range outs {
				fmt.Printf("out: %s\n", p)
			}
			return nil
		}
		return play(cmd.Context(), args[0])
	},
}

func play(ctx context.Context, song string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	name, events, err := loadSong(song)
	if err != nil {
		return err
	}

	ports := engine.Ports{Render: render.NewLogRenderer(os.Stdout, slog.Default(), hudEvery)}
	if !mute {
		out, err := device.OpenOut(cfg.MIDI.OutPort)
		if err != nil {
			return fmt.Errorf("%w (use --mute to play without sound)", err)
		}
		defer out.Close()
		ports.Sound = out
	}

	input := make(chan engine.InputEvent, 64)
	stop, err := device.Listen(cfg.MIDI, input)
	if err != nil {
		return err
	}
	defer stop()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	runner := engine.NewRunner(engine.NewController(events, cfg, ports), input)
	var rec *replay.Recorder
	if recordPath != "" {
		rec = replay.NewRecorder(name)
		runner.OnInput = rec.Observe
	}

	slog.Info("playing", "song", name, "events", len(events))
	err = runner.Run(ctx)
	if rec != nil {
		if saveErr := replay.Save(recordPath, rec.Timeline()); saveErr != nil {
			return saveErr
		}
		slog.Info("timeline saved", "path", recordPath)
	}
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
