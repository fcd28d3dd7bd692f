package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/obinnaokechukwu/snowgo"
	"github.com/obinnaokechukwu/snowgo/internal/config"
)

// detectorFlags override the detector section of the config.
type detectorFlags struct {
	resource    string
	models      []string
	sensitivity string
	gain        float32
	frontend    bool
}

func (f *detectorFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.resource, "resource", "r", "", "Snowboy common resource file (common.res)")
	fl.StringSliceVarP(&f.models, "model", "m", nil, "Hotword model file (.umdl or .pmdl); repeatable")
	fl.StringVarP(&f.sensitivity, "sensitivity", "s", "", "Comma-separated sensitivity per model")
	fl.Float32VarP(&f.gain, "gain", "g", 0, "Audio gain")
	fl.BoolVar(&f.frontend, "frontend", false, "Enable Snowboy's audio frontend processing")
}

func (f *detectorFlags) apply(cmd *cobra.Command, d *config.DetectorConfig) {
	fl := cmd.Flags()
	if fl.Changed("resource") {
		d.Resource = f.resource
	}
	if fl.Changed("model") {
		d.Models = f.models
	}
	if fl.Changed("sensitivity") {
		d.Sensitivity = f.sensitivity
	}
	if fl.Changed("gain") {
		d.AudioGain = f.gain
	}
	if fl.Changed("frontend") {
		d.ApplyFrontend = f.frontend
	}
}

// newRegistry loads the native library according to the library section and
// returns a registry over whatever backend is available.
func newRegistry(lib config.LibraryConfig) *snowgo.Registry {
	if lib.Dir != "" {
		os.Setenv("SNOWGO_LIBRARY_DIR", lib.Dir)
	}
	if lib.Path != "" {
		if err := snowgo.InitPath(lib.Path); err != nil {
			logger.Warn("loading configured library", "path", lib.Path, "error", err)
		}
	}
	return snowgo.NewRegistry(snowgo.AutoBackend(), snowgo.WithLogger(logger))
}

func openDetector(reg *snowgo.Registry, d config.DetectorConfig) snowgo.Handle {
	h := reg.Open(snowgo.Options{
		Resource:      d.Resource,
		Models:        d.Models,
		Sensitivity:   d.Sensitivity,
		AudioGain:     d.AudioGain,
		ApplyFrontend: d.ApplyFrontend,
	})
	logger.Info("detector opened", "handle", h.String(), "models", len(d.Models))
	return h
}
