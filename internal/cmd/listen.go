package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/obinnaokechukwu/snowgo"
	"github.com/obinnaokechukwu/snowgo/internal/mic"
)

var (
	listenFlags  detectorFlags
	listenDevice int
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Listen on a microphone until interrupted",
	Long: `Capture audio from a microphone and print each detection until interrupted.

Microphone capture requires a binary built with -tags portaudio.`,
	Args: cobra.NoArgs,
	RunE: runListen,
}

func init() {
	listenFlags.register(listenCmd)
	listenCmd.Flags().IntVarP(&listenDevice, "device", "d", mic.DefaultDevice, "Input device ID (see snowgo info); -1 for the default")
	rootCmd.AddCommand(listenCmd)
}

func runListen(cmd *cobra.Command, _ []string) error {
	listenFlags.apply(cmd, &cfg.Detector)
	if cmd.Flags().Changed("device") {
		cfg.Audio.Device = listenDevice
	}

	reg := newRegistry(cfg.Library)
	defer reg.Close()

	h := openDetector(reg, cfg.Detector)
	info := reg.Info(h)

	src, err := mic.Open(mic.Config{
		Device:     cfg.Audio.Device,
		SampleRate: info.SampleRate,
		FrameSize:  cfg.Audio.FrameSize,
	})
	if err != nil {
		return err
	}
	defer src.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	st := newStyles(out)

	l := snowgo.NewListener(reg, h, src,
		snowgo.WithFrameSize(cfg.Audio.FrameSize),
		snowgo.WithSampleRate(info.SampleRate),
		snowgo.WithCooldown(time.Duration(cfg.Audio.CooldownMS)*time.Millisecond),
		snowgo.WithListenerLogger(logger),
		snowgo.WithEventHandler(func(ev snowgo.Event) {
			fmt.Fprintln(out, detectionLine(st, ev))
		}),
	)

	sink, err := connectSink()
	if err != nil {
		return err
	}
	if sink != nil {
		defer sink.Close()
		l.OnEvent(sink.Handler())
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "listening with %s (session %s), press Ctrl+C to stop\n", h, l.SessionID())
	if err := l.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	printStats(out, st, l.Stats(), info.SampleRate)
	return nil
}
