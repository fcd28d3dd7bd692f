package snowgo

// DetectorInfo describes the audio a detector expects.
type DetectorInfo struct {
	Mode          Mode
	SampleRate    int
	NumChannels   int
	BitsPerSample int
	NumHotwords   int
}

// mockInfo is reported for mock handles and for detectors that cannot say.
var mockInfo = DetectorInfo{
	Mode:          ModeMock,
	SampleRate:    MockSampleRate,
	NumChannels:   MockNumChannels,
	BitsPerSample: MockBitsPerSample,
	NumHotwords:   1,
}

// Info returns the audio format expected by the detector behind h.
func (r *Registry) Info(h Handle) DetectorInfo {
	det, ok := r.lookup(h)
	if !ok {
		return mockInfo
	}
	pd, ok := det.(PropertyDetector)
	if !ok {
		info := mockInfo
		info.Mode = ModeReal
		return info
	}
	info := pd.Properties()
	info.Mode = ModeReal
	if info.SampleRate == 0 {
		info.SampleRate = MockSampleRate
	}
	if info.NumChannels == 0 {
		info.NumChannels = MockNumChannels
	}
	if info.BitsPerSample == 0 {
		info.BitsPerSample = MockBitsPerSample
	}
	return info
}
