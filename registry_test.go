package snowgo

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_NoBackendFallsBackToMock(t *testing.T) {
	reg := NewRegistry(nil)
	assert.False(t, reg.HasBackend())

	before := reg.NextID()
	h := reg.Create("common.res", "snowboy.umdl")

	assert.LessOrEqual(t, int64(h), int64(0), "handle should be non-positive")
	assert.Equal(t, ModeMock, h.Mode())
	assert.Equal(t, before+1, reg.NextID(), "counter should advance exactly once")
	assert.Equal(t, before, h.ID())

	mode, ok := reg.Mode(h)
	assert.True(t, ok)
	assert.Equal(t, ModeMock, mode)
}

func TestCreate_FailingBackendFallsBackToMock(t *testing.T) {
	backend := &fakeBackend{fail: true}
	reg := NewRegistry(backend)

	h := reg.Create("common.res", "a.pmdl")
	assert.Equal(t, Handle(-1), h)
	assert.Equal(t, []string{"a.pmdl"}, backend.models)

	backend.fail = false
	h2 := reg.Create("common.res", "a.pmdl")
	assert.Equal(t, Handle(2), h2, "counter continues across modes")
}

func TestCreate_PanickingBackendFallsBackToMock(t *testing.T) {
	reg := NewRegistry(BackendFunc(func(string, string) (Detector, error) {
		panic("native constructor threw")
	}))

	var h Handle
	require.NotPanics(t, func() { h = reg.Create("r", "m") })
	assert.Equal(t, Handle(-1), h)
}

func TestCreate_NilDetectorIsFailure(t *testing.T) {
	reg := NewRegistry(BackendFunc(func(string, string) (Detector, error) {
		return nil, nil
	}))
	assert.Equal(t, Handle(-1), reg.Create("r", "m"))
}

func TestCreate_ConsecutiveHandlesDifferByOne(t *testing.T) {
	t.Run("mock", func(t *testing.T) {
		reg := NewRegistry(nil)
		a, b := reg.Create("", ""), reg.Create("", "")
		assert.NotEqual(t, a, b)
		assert.Equal(t, a.ID()+1, b.ID())
	})

	t.Run("real", func(t *testing.T) {
		reg := NewRegistry(&fakeBackend{})
		a, b := reg.Create("r", "m"), reg.Create("r", "m")
		assert.Equal(t, Handle(1), a)
		assert.Equal(t, Handle(2), b)
	})
}

func TestRealHandleForwarding(t *testing.T) {
	backend := &fakeBackend{}
	reg := NewRegistry(backend)

	h := reg.Create("common.res", "hey.pmdl")
	require.True(t, h.IsReal())
	det := backend.last()

	reg.SetSensitivity(h, "0.4,0.6")
	reg.SetAudioGain(h, 2.5)
	reg.Reset(h)
	reg.ApplyFrontend(h, true)

	assert.Equal(t, "0.4,0.6", det.sensitivity)
	assert.Equal(t, float32(2.5), det.gain)
	assert.Equal(t, 1, det.resets)
	assert.True(t, det.frontend)

	mode, ok := reg.Mode(h)
	assert.True(t, ok)
	assert.Equal(t, ModeReal, mode)
}

func TestRunDetection_PassesResultThrough(t *testing.T) {
	backend := &fakeBackend{}
	reg := NewRegistry(backend)
	h := reg.Create("r", "m")
	det := backend.last()

	for _, want := range []int{0, -1, -2, 1, 3} {
		det.result = want
		// Loud input must not matter for a real detector.
		assert.Equal(t, want, reg.RunDetection(h, constant(160, 32000)))
	}
	require.Len(t, det.runs, 5)
	assert.Len(t, det.runs[0], 160)
}

func TestMockHandleOperations(t *testing.T) {
	backend := &fakeBackend{fail: true}
	reg := NewRegistry(backend)
	h := reg.Create("r", "m")
	require.False(t, h.IsReal())

	require.NotPanics(t, func() {
		reg.Reset(h)
		reg.SetSensitivity(h, "0.9")
		reg.SetAudioGain(h, 3)
		reg.ApplyFrontend(h, true)
	})
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, []Handle{h}, reg.Handles())

	assert.Equal(t, 0, reg.RunDetection(h, make([]int16, 512)))
	assert.Equal(t, 1, reg.RunDetection(h, constant(512, 2000)))
}

func TestUnknownHandleOperations(t *testing.T) {
	reg := NewRegistry(&fakeBackend{})

	for _, h := range []Handle{0, 42, -42} {
		require.NotPanics(t, func() {
			reg.Reset(h)
			reg.SetSensitivity(h, "0.5")
			reg.SetAudioGain(h, 1)
			reg.Destroy(h)
		})
		assert.Equal(t, 0, reg.RunDetection(h, nil))
		assert.Equal(t, 1, reg.RunDetection(h, constant(8, 1500)))

		_, ok := reg.Mode(h)
		assert.False(t, ok)
	}
	assert.Equal(t, 0, reg.Len())
}

func TestDestroy(t *testing.T) {
	backend := &fakeBackend{}
	reg := NewRegistry(backend)
	h := reg.Create("r", "m")
	det := backend.last()
	det.result = 7

	reg.Destroy(h)
	assert.Equal(t, 1, det.destructed)
	assert.Equal(t, 0, reg.Len())

	// Destroyed handles behave like never-created ones.
	assert.Equal(t, 0, reg.RunDetection(h, make([]int16, 64)))
	assert.Equal(t, 1, reg.RunDetection(h, constant(64, 5000)))
	reg.SetSensitivity(h, "0.1")
	reg.SetAudioGain(h, 9)
	reg.Reset(h)
	assert.Empty(t, det.sensitivity)
	assert.Zero(t, det.gain)
	assert.Zero(t, det.resets)
	assert.Len(t, det.runs, 0)

	// Idempotent.
	require.NotPanics(t, func() { reg.Destroy(h) })
	assert.Equal(t, 1, det.destructed)
}

func TestDestroy_MockHandle(t *testing.T) {
	reg := NewRegistry(nil)
	h := reg.Create("r", "m")
	require.Equal(t, 1, reg.Len())

	reg.Destroy(h)
	reg.Destroy(h)
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 1, reg.RunDetection(h, constant(16, 4000)))
}

func TestHandlesAreNeverReused(t *testing.T) {
	backend := &fakeBackend{}
	reg := NewRegistry(backend)

	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		backend.fail = i%3 == 0
		h := reg.Create("r", "m")
		assert.False(t, seen[h.ID()], "ID %d reused", h.ID())
		seen[h.ID()] = true
		if i%2 == 0 {
			reg.Destroy(h)
		}
	}
}

func TestClose(t *testing.T) {
	backend := &fakeBackend{}
	reg := NewRegistry(backend)
	reg.Create("r", "m")
	reg.Create("r", "m")
	backend.fail = true
	reg.Create("r", "m")

	reg.Close()
	assert.Equal(t, 0, reg.Len())
	for _, d := range backend.created {
		assert.Equal(t, 1, d.destructed)
	}
}

func TestHandles_OrderedByID(t *testing.T) {
	backend := &fakeBackend{}
	reg := NewRegistry(backend)
	a := reg.Create("r", "m")
	backend.fail = true
	b := reg.Create("r", "m")
	backend.fail = false
	c := reg.Create("r", "m")

	assert.Equal(t, []Handle{a, b, c}, reg.Handles())
}

func TestConcurrentCreateDestroy(t *testing.T) {
	backend := &fakeBackend{}
	reg := NewRegistry(backend)

	const workers, perWorker = 16, 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				h := reg.Create("r", "m")
				reg.RunDetection(h, constant(32, 10))
				reg.Destroy(h)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, int64(workers*perWorker+1), reg.NextID())
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	lg := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	reg := NewRegistry(nil, WithLogger(lg))
	h := reg.Create("r", "m")
	reg.RunDetection(h, constant(16, 2000))

	out := buf.String()
	assert.Contains(t, out, "using mock detector")
	assert.Contains(t, out, "mock detection triggered")
	assert.Contains(t, out, "component=snowgo")
}
