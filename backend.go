package snowgo

// Detector is the capability set of a constructed keyword detector.
//
// Result semantics of RunDetection belong to the detector: 0 for no event,
// negative for an error, positive for the 1-based index of the matched keyword.
type Detector interface {
	Reset()
	RunDetection(samples []int16) int
	SetSensitivity(sensitivity string)
	SetAudioGain(gain float32)
	Destruct()
}

// Backend constructs detectors from a resource file and one or more model
// files (comma separated).
type Backend interface {
	Construct(resource, model string) (Detector, error)
}

// FrontendDetector is implemented by detectors that can toggle their audio
// frontend (noise suppression and gain control).
type FrontendDetector interface {
	ApplyFrontend(apply bool) error
}

// PropertyDetector is implemented by detectors that report their audio format.
type PropertyDetector interface {
	Properties() DetectorInfo
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(resource, model string) (Detector, error)

// Construct calls f(resource, model).
func (f BackendFunc) Construct(resource, model string) (Detector, error) {
	return f(resource, model)
}
