package snowgo

// MockEnergyThreshold is the mean squared sample value above which the mock
// detector reports a detection. The value is a placeholder with no acoustic
// derivation; do not rely on it for accuracy.
const MockEnergyThreshold = 1_000_000

// MockSampleRate, MockNumChannels and MockBitsPerSample describe the audio
// format the mock pretends to expect, matching Snowboy's requirements.
const (
	MockSampleRate    = 16000
	MockNumChannels   = 1
	MockBitsPerSample = 16
)

// Energy returns the mean of the squared samples, or 0 for an empty buffer.
func Energy(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := int32(s)
		sum += float64(v * v)
	}
	return sum / float64(len(samples))
}

// MockDetection returns 1 if the buffer energy exceeds MockEnergyThreshold
// and 0 otherwise. It is not a keyword detector: any loud input triggers it.
func MockDetection(samples []int16) int {
	if Energy(samples) > MockEnergyThreshold {
		return 1
	}
	return ResultNone
}
