package snowgo

import "strconv"

// Handle is the opaque identifier of a detector instance.
//
// Positive handles refer to a real detector owned by a Registry. Non-positive
// handles refer to the mock detector and own no native resources. The sign is
// the only signal of backend mode.
type Handle int64

// Mode is the backend a handle dispatches to.
type Mode int

const (
	// ModeMock dispatches to the energy-threshold mock.
	ModeMock Mode = iota
	// ModeReal dispatches to a real detector.
	ModeReal
)

// String returns "real" or "mock".
func (m Mode) String() string {
	if m == ModeReal {
		return "real"
	}
	return "mock"
}

// IsReal reports whether h carries the real-backend sign.
// Registry membership is checked separately.
func (h Handle) IsReal() bool { return h > 0 }

// Mode returns the mode encoded in the sign of h.
func (h Handle) Mode() Mode {
	if h.IsReal() {
		return ModeReal
	}
	return ModeMock
}

// ID returns the counter value h was allocated from.
func (h Handle) ID() int64 {
	if h < 0 {
		return -int64(h)
	}
	return int64(h)
}

// String formats the handle with its mode, e.g. "real:3" or "mock:4".
func (h Handle) String() string {
	return h.Mode().String() + ":" + strconv.FormatInt(h.ID(), 10)
}
