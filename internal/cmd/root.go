// Package cmd implements the snowgo command line.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/obinnaokechukwu/snowgo"
	"github.com/obinnaokechukwu/snowgo/internal/config"
	"github.com/obinnaokechukwu/snowgo/internal/logging"
	"github.com/obinnaokechukwu/snowgo/internal/tracing"
)

// Version is reported by --version and attached to logs and spans.
var Version = "dev"

var (
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger

	shutdownTracing tracing.ShutdownFunc
)

var rootCmd = &cobra.Command{
	Use:   "snowgo",
	Short: "Snowboy hotword detection from files and microphones",
	Long: `snowgo runs Snowboy hotword detectors over recorded audio or a live microphone.

When the native Snowboy library cannot be loaded, or a detector cannot be
constructed from the given resource and models, snowgo falls back to an
energy-based mock detector so pipelines keep running.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		if shutdownTracing == nil {
			return nil
		}
		return shutdownTracing(context.Background())
	},
}

// Execute runs the root command.
func Execute() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

// setup loads configuration and installs logging and tracing before any
// subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	logger = logging.New(cfg.Logging, Version)
	snowgo.SetLogger(logger)

	shutdownTracing, err = tracing.Setup(cfg.Tracing, Version, cmd.ErrOrStderr())
	return err
}
