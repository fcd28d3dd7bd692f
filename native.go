package snowgo

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/obinnaokechukwu/snowgo/internal/bindings"
)

// NativeBackend loads the Snowboy C wrapper (if needed) and returns a Backend
// that constructs real detectors through it.
func NativeBackend() (Backend, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	return nativeBackend{}, nil
}

type nativeBackend struct{}

func (nativeBackend) Construct(resource, model string) (Detector, error) {
	if err := checkFiles(resource, model); err != nil {
		return nil, err
	}
	det, err := bindings.Construct(resource, model)
	if err != nil {
		return nil, err
	}
	return &nativeDetector{ptr: det}, nil
}

// checkFiles verifies that the resource and every comma separated model exist.
// The native constructor throws on a bad path, which cannot cross purego.
func checkFiles(resource, model string) error {
	models := SplitModels(model)
	if resource == "" || len(models) == 0 {
		return fmt.Errorf("%w: resource and at least one model are required", ErrModelNotFound)
	}
	for _, p := range append([]string{resource}, models...) {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%w: %s", ErrModelNotFound, p)
		}
	}
	return nil
}

// nativeDetector owns one SnowboyDetect instance.
type nativeDetector struct {
	mu  sync.Mutex
	ptr uintptr
}

func (d *nativeDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	bindings.Reset(d.ptr)
}

func (d *nativeDetector) RunDetection(samples []int16) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == 0 {
		return ResultError
	}
	return bindings.RunDetection(d.ptr, samples, false)
}

func (d *nativeDetector) SetSensitivity(sensitivity string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	bindings.SetSensitivity(d.ptr, sensitivity)
}

func (d *nativeDetector) SetAudioGain(gain float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	bindings.SetAudioGain(d.ptr, gain)
}

func (d *nativeDetector) ApplyFrontend(apply bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return bindings.ApplyFrontend(d.ptr, apply)
}

func (d *nativeDetector) Properties() DetectorInfo {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := bindings.DetectorProperties(d.ptr)
	return DetectorInfo{
		Mode:          ModeReal,
		SampleRate:    p.SampleRate,
		NumChannels:   p.NumChannels,
		BitsPerSample: p.BitsPerSample,
		NumHotwords:   p.NumHotwords,
	}
}

func (d *nativeDetector) Destruct() {
	d.mu.Lock()
	defer d.mu.Unlock()
	bindings.Destruct(d.ptr)
	d.ptr = 0
}

// SplitModels splits a comma separated model string, dropping blanks.
func SplitModels(model string) []string {
	var out []string
	for _, m := range strings.Split(model, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// JoinModels joins model paths the way Snowboy expects them.
func JoinModels(models ...string) string {
	return strings.Join(models, ",")
}
