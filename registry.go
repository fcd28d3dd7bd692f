package snowgo

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/obinnaokechukwu/snowgo/internal/handles"
)

// entry is what the registry stores per handle. A nil det marks a mock handle.
type entry struct {
	det Detector
}

// Registry assigns handles to detectors and dispatches operations on them.
//
// Every operation is total: unknown, destroyed and mock handles never cause
// an error or a panic. A positive handle that is present dispatches to its real
// detector; anything else gets mock behavior or a no-op.
//
// Thread Safety:
//   - Creating, destroying and looking up handles is safe from any goroutine.
//   - Calls on the same handle must be serialized by the caller. Destroying a
//     handle while another goroutine runs detection on it is a caller error.
type Registry struct {
	backend Backend
	table   *handles.Table[entry]
	log     *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry's logger. Defaults to the package logger.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry returns an empty registry that constructs real detectors with
// backend. A nil backend makes every Create fall back to the mock.
func NewRegistry(backend Backend, opts ...RegistryOption) *Registry {
	r := &Registry{
		backend: backend,
		table:   handles.New[entry](),
		log:     Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With("component", "snowgo")
	return r
}

// HasBackend reports whether the registry can construct real detectors.
func (r *Registry) HasBackend() bool {
	return r.backend != nil
}

// Create constructs a detector from a resource file and a model string
// (comma separated model paths). The handle counter advances exactly once.
//
// On success the returned handle is positive. If construction fails for any
// reason the negated counter value is returned and the handle behaves as a
// mock for its whole lifetime.
func (r *Registry) Create(resource, model string) Handle {
	id := r.table.Next()

	det, err := r.construct(resource, model)
	if err == nil {
		r.table.Store(id, entry{det: det})
		h := Handle(id)
		r.log.Info("created detector", "handle", int64(h), "mode", ModeReal)
		return h
	}

	r.log.Warn("failed to create detector", "error", err, "resource", resource, "model", model)
	h := Handle(-id)
	r.table.Store(int64(h), entry{})
	r.log.Info("using mock detector", "handle", int64(h), "mode", ModeMock)
	return h
}

func (r *Registry) construct(resource, model string) (det Detector, err error) {
	if r.backend == nil {
		return nil, ErrNoBackend
	}
	defer func() {
		if p := recover(); p != nil {
			det, err = nil, fmt.Errorf("%w: backend panic: %v", ErrConstructFailed, p)
		}
	}()
	det, err = r.backend.Construct(resource, model)
	if err == nil && det == nil {
		err = ErrConstructFailed
	}
	return det, err
}

// lookup returns the real detector for h, if h is positive and present.
func (r *Registry) lookup(h Handle) (Detector, bool) {
	if !h.IsReal() {
		return nil, false
	}
	e, ok := r.table.Lookup(int64(h))
	if !ok || e.det == nil {
		return nil, false
	}
	return e.det, true
}

// Destroy releases the detector behind h and forgets the handle.
// Destroying a mock, unknown or already destroyed handle is a no-op.
func (r *Registry) Destroy(h Handle) {
	if !h.IsReal() {
		r.table.Unregister(int64(h))
		r.log.Debug("deleted mock detector", "handle", int64(h))
		return
	}
	e, ok := r.table.Take(int64(h))
	if !ok || e.det == nil {
		return
	}
	e.det.Destruct()
	r.log.Info("deleted detector", "handle", int64(h))
}

// Reset resets the detector's internal state. No-op for mock handles.
func (r *Registry) Reset(h Handle) {
	det, ok := r.lookup(h)
	if !ok {
		r.log.Debug("mock reset", "handle", int64(h))
		return
	}
	det.Reset()
	r.log.Debug("reset detector", "handle", int64(h))
}

// RunDetection runs detection over one buffer of 16-bit mono PCM.
//
// For a real handle the detector's result is returned unchanged: 0 for no
// event, negative for an error, positive for the matched keyword index.
// Otherwise the result of MockDetection is returned.
func (r *Registry) RunDetection(h Handle, samples []int16) int {
	det, ok := r.lookup(h)
	if !ok {
		result := MockDetection(samples)
		if result > 0 {
			r.log.Info("mock detection triggered", "handle", int64(h), "energy", Energy(samples))
		}
		return result
	}
	result := det.RunDetection(samples)
	if result > 0 {
		r.log.Info("keyword detected", "handle", int64(h), "keyword", result)
	}
	return result
}

// SetSensitivity forwards a sensitivity string (one decimal per model) to the
// detector. No-op for mock handles.
func (r *Registry) SetSensitivity(h Handle, sensitivity string) {
	det, ok := r.lookup(h)
	if !ok {
		r.log.Debug("mock set sensitivity", "handle", int64(h))
		return
	}
	det.SetSensitivity(sensitivity)
	r.log.Debug("set sensitivity", "handle", int64(h), "sensitivity", sensitivity)
}

// SetAudioGain forwards the audio gain to the detector. No-op for mock handles.
func (r *Registry) SetAudioGain(h Handle, gain float32) {
	det, ok := r.lookup(h)
	if !ok {
		r.log.Debug("mock set audio gain", "handle", int64(h), "gain", gain)
		return
	}
	det.SetAudioGain(gain)
	r.log.Debug("set audio gain", "handle", int64(h), "gain", gain)
}

// ApplyFrontend toggles the detector's audio frontend when it supports one.
// No-op for mock handles and detectors without a frontend.
func (r *Registry) ApplyFrontend(h Handle, apply bool) {
	det, ok := r.lookup(h)
	if !ok {
		return
	}
	fd, ok := det.(FrontendDetector)
	if !ok {
		return
	}
	if err := fd.ApplyFrontend(apply); err != nil {
		r.log.Warn("apply frontend failed", "handle", int64(h), "error", err)
	}
}

// Mode reports how h dispatches. The second result is false when h is not
// in the registry; such handles dispatch to the mock.
func (r *Registry) Mode(h Handle) (Mode, bool) {
	e, ok := r.table.Lookup(int64(h))
	if !ok {
		return ModeMock, false
	}
	if h.IsReal() && e.det != nil {
		return ModeReal, true
	}
	return ModeMock, true
}

// Len returns the number of live handles, real and mock.
func (r *Registry) Len() int {
	return r.table.Count()
}

// Handles returns the live handles ordered by counter value.
func (r *Registry) Handles() []Handle {
	keys := r.table.Keys()
	out := make([]Handle, len(keys))
	for i, k := range keys {
		out[i] = Handle(k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// NextID returns the counter value the next Create will allocate.
func (r *Registry) NextID() int64 {
	return r.table.Peek()
}

// Close destroys every live handle.
func (r *Registry) Close() {
	for _, h := range r.Handles() {
		r.Destroy(h)
	}
}
