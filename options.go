package snowgo

import (
	"strconv"
	"strings"
)

// Defaults applied by Open.
const (
	DefaultSensitivity = "0.5"
	DefaultAudioGain   = 1.0
)

// Options describes a detector to open.
type Options struct {
	// Resource is the path to Snowboy's common resource file (common.res).
	Resource string

	// Models are the paths to the personal (.pmdl) or universal (.umdl) models.
	Models []string

	// Sensitivity is passed to SetSensitivity verbatim; one decimal per model
	// separated by commas. Empty means DefaultSensitivity.
	Sensitivity string

	// AudioGain scales the input. Zero means DefaultAudioGain.
	AudioGain float32

	// ApplyFrontend enables Snowboy's noise suppression and gain control.
	ApplyFrontend bool
}

// Open creates a detector and applies opts. Like Create it always returns a
// usable handle; check its sign to learn whether the real backend served it.
func (r *Registry) Open(opts Options) Handle {
	h := r.Create(opts.Resource, JoinModels(opts.Models...))

	sensitivity := opts.Sensitivity
	if sensitivity == "" {
		sensitivity = DefaultSensitivity
	}
	r.SetSensitivity(h, sensitivity)

	gain := opts.AudioGain
	if gain == 0 {
		gain = DefaultAudioGain
	}
	r.SetAudioGain(h, gain)

	if opts.ApplyFrontend {
		r.ApplyFrontend(h, true)
	}
	return h
}

// JoinSensitivities formats per-model sensitivities as a sensitivity string,
// e.g. JoinSensitivities(0.4, 0.6) == "0.4,0.6".
func JoinSensitivities(values ...float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}
