package snowgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesOptions(t *testing.T) {
	backend := &fakeBackend{}
	reg := NewRegistry(backend)

	h := reg.Open(Options{
		Resource:      "common.res",
		Models:        []string{"a.pmdl", "b.umdl"},
		Sensitivity:   JoinSensitivities(0.3, 0.6),
		AudioGain:     1.5,
		ApplyFrontend: true,
	})
	require.True(t, h.IsReal())

	det := backend.last()
	assert.Equal(t, []string{"a.pmdl,b.umdl"}, backend.models)
	assert.Equal(t, "0.3,0.6", det.sensitivity)
	assert.Equal(t, float32(1.5), det.gain)
	assert.True(t, det.frontend)
}

func TestOpen_Defaults(t *testing.T) {
	backend := &fakeBackend{}
	reg := NewRegistry(backend)

	reg.Open(Options{Resource: "common.res", Models: []string{"a.pmdl"}})

	det := backend.last()
	assert.Equal(t, DefaultSensitivity, det.sensitivity)
	assert.Equal(t, float32(DefaultAudioGain), det.gain)
	assert.False(t, det.frontend)
}

func TestOpen_FallsBackToMock(t *testing.T) {
	reg := NewRegistry(nil)
	h := reg.Open(Options{Sensitivity: "0.3", AudioGain: 1})
	assert.False(t, h.IsReal())
	assert.Equal(t, 1, reg.Len())
}

func TestJoinSensitivities(t *testing.T) {
	assert.Equal(t, "", JoinSensitivities())
	assert.Equal(t, "0.5", JoinSensitivities(0.5))
	assert.Equal(t, "0.4,0.6,1", JoinSensitivities(0.4, 0.6, 1))
}

func TestSplitJoinModels(t *testing.T) {
	assert.Equal(t, "a.pmdl,b.pmdl", JoinModels("a.pmdl", "b.pmdl"))
	assert.Equal(t, []string{"a.pmdl", "b.pmdl"}, SplitModels(" a.pmdl, ,b.pmdl "))
	assert.Nil(t, SplitModels(""))
}
