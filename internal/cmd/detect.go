package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/obinnaokechukwu/snowgo"
	"github.com/obinnaokechukwu/snowgo/internal/mqttsink"
)

var (
	detectFlags    detectorFlags
	detectCooldown time.Duration
	detectRate     int
)

var detectCmd = &cobra.Command{
	Use:   "detect <file.wav|file.pcm>",
	Short: "Run a detector over an audio file",
	Long: `Run a detector over a 16-bit mono WAV file or raw little-endian PCM and print
each detection with its offset in the stream.`,
	Example: `  snowgo detect -r common.res -m snowboy.umdl recording.wav
  snowgo detect -r common.res -m a.pmdl -m b.pmdl -s 0.4,0.6 capture.pcm`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	detectFlags.register(detectCmd)
	detectCmd.Flags().DurationVar(&detectCooldown, "cooldown", 0, "Suppress repeated detections within this window (default from config)")
	detectCmd.Flags().IntVar(&detectRate, "rate", 0, "Sample rate of raw PCM input (default from config)")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	detectFlags.apply(cmd, &cfg.Detector)

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening audio: %w", err)
	}
	defer f.Close()

	var (
		src        snowgo.FrameSource
		sampleRate = cfg.Audio.SampleRate
	)
	if detectRate > 0 {
		sampleRate = detectRate
	}
	if strings.EqualFold(filepath.Ext(args[0]), ".wav") {
		wav, err := snowgo.NewWAVSource(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		src = wav
		sampleRate = wav.SampleRate()
	} else {
		src = snowgo.NewPCMSource(f)
	}

	reg := newRegistry(cfg.Library)
	defer reg.Close()

	h := openDetector(reg, cfg.Detector)
	if info := reg.Info(h); info.SampleRate != sampleRate {
		logger.Warn("sample rate mismatch", "input", sampleRate, "detector", info.SampleRate)
	}

	cooldown := time.Duration(cfg.Audio.CooldownMS) * time.Millisecond
	if cmd.Flags().Changed("cooldown") {
		cooldown = detectCooldown
	}

	out := cmd.OutOrStdout()
	st := newStyles(out)

	l := snowgo.NewListener(reg, h, src,
		snowgo.WithFrameSize(cfg.Audio.FrameSize),
		snowgo.WithSampleRate(sampleRate),
		snowgo.WithCooldown(cooldown),
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

	if err := l.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	printStats(out, st, l.Stats(), sampleRate)
	return nil
}

// connectSink returns an MQTT sink when publishing is enabled.
func connectSink() (*mqttsink.Sink, error) {
	if !cfg.MQTT.Enabled {
		return nil, nil
	}
	sink, err := mqttsink.Connect(cfg.MQTT, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("publishing detections", "broker", cfg.MQTT.Broker, "topic", cfg.MQTT.Topic)
	return sink, nil
}
