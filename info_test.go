package snowgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type propertyDetector struct {
	fakeDetector
	info DetectorInfo
}

func (d *propertyDetector) Properties() DetectorInfo { return d.info }

func TestInfo_Mock(t *testing.T) {
	reg := NewRegistry(nil)
	h := reg.Create("r", "m")

	info := reg.Info(h)
	assert.Equal(t, ModeMock, info.Mode)
	assert.Equal(t, 16000, info.SampleRate)
	assert.Equal(t, 1, info.NumChannels)
	assert.Equal(t, 16, info.BitsPerSample)
	assert.Equal(t, 1, info.NumHotwords)
}

func TestInfo_RealWithoutProperties(t *testing.T) {
	reg := NewRegistry(&fakeBackend{})
	info := reg.Info(reg.Create("r", "m"))

	assert.Equal(t, ModeReal, info.Mode)
	assert.Equal(t, MockSampleRate, info.SampleRate)
}

func TestInfo_RealWithProperties(t *testing.T) {
	det := &propertyDetector{info: DetectorInfo{SampleRate: 8000, NumHotwords: 3}}
	reg := NewRegistry(BackendFunc(func(string, string) (Detector, error) {
		return det, nil
	}))

	info := reg.Info(reg.Create("r", "m"))
	assert.Equal(t, DetectorInfo{
		Mode:          ModeReal,
		SampleRate:    8000,
		NumChannels:   1,
		BitsPerSample: 16,
		NumHotwords:   3,
	}, info)
}
