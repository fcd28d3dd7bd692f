package snowgo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	res := filepath.Join(dir, "common.res")
	a := filepath.Join(dir, "a.pmdl")
	b := filepath.Join(dir, "b.pmdl")
	for _, p := range []string{res, a, b} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	assert.NoError(t, checkFiles(res, a))
	assert.NoError(t, checkFiles(res, JoinModels(a, b)))

	assert.ErrorIs(t, checkFiles("", a), ErrModelNotFound)
	assert.ErrorIs(t, checkFiles(res, ""), ErrModelNotFound)
	assert.ErrorIs(t, checkFiles(res, JoinModels(a, filepath.Join(dir, "missing.pmdl"))), ErrModelNotFound)
	assert.ErrorIs(t, checkFiles(filepath.Join(dir, "missing.res"), a), ErrModelNotFound)
}

func TestNativeBackend_MissingModelsFallBackToMock(t *testing.T) {
	if _, err := NativeBackend(); err != nil {
		t.Skipf("Snowboy not available: %v", err)
	}
	reg := NewRegistry(nativeBackend{})

	h := reg.Create("/nonexistent/common.res", "/nonexistent/model.pmdl")
	assert.False(t, h.IsReal())
}

// Integration test - runs when SNOWGO_TEST_RESOURCE and SNOWGO_TEST_MODEL point
// at real Snowboy files and the library is installed.
func TestNativeBackend_Detect(t *testing.T) {
	resource, model := os.Getenv("SNOWGO_TEST_RESOURCE"), os.Getenv("SNOWGO_TEST_MODEL")
	if resource == "" || model == "" {
		t.Skip("SNOWGO_TEST_RESOURCE / SNOWGO_TEST_MODEL not set")
	}
	backend, err := NativeBackend()
	if err != nil {
		t.Skipf("Snowboy not available: %v", err)
	}

	reg := NewRegistry(backend)
	h := reg.Open(Options{Resource: resource, Models: []string{model}})
	require.True(t, h.IsReal(), "expected real handle")
	defer reg.Destroy(h)

	info := reg.Info(h)
	assert.Equal(t, ModeReal, info.Mode)
	t.Logf("detector: %+v", info)

	result := reg.RunDetection(h, make([]int16, 3200))
	assert.LessOrEqual(t, result, 0, "silence should not trigger a keyword")
}
