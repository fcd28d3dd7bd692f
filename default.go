package snowgo

import "sync"

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Default returns the process-wide registry used by the package-level
// functions. It is built on first use with AutoBackend.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRegistry == nil {
		defaultRegistry = NewRegistry(AutoBackend())
	}
	return defaultRegistry
}

// SetDefault replaces the process-wide registry. Handles issued by the
// previous registry are not carried over.
func SetDefault(r *Registry) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry = r
}

// Create calls Default().Create.
func Create(resource, model string) Handle { return Default().Create(resource, model) }

// Destroy calls Default().Destroy.
func Destroy(h Handle) { Default().Destroy(h) }

// Reset calls Default().Reset.
func Reset(h Handle) { Default().Reset(h) }

// RunDetection calls Default().RunDetection.
func RunDetection(h Handle, samples []int16) int { return Default().RunDetection(h, samples) }

// SetSensitivity calls Default().SetSensitivity.
func SetSensitivity(h Handle, sensitivity string) { Default().SetSensitivity(h, sensitivity) }

// SetAudioGain calls Default().SetAudioGain.
func SetAudioGain(h Handle, gain float32) { Default().SetAudioGain(h, gain) }
