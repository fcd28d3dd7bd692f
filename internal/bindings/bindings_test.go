//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/obinnaokechukwu/snowgo/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetState clears the cached load outcome and restores it after the test.
func resetState(t *testing.T) {
	t.Helper()
	loadMu.Lock()
	wasLib, wasPath, wasLoaded, wasErr := lib, libPath, loaded, loadErr
	lib, libPath, loaded, loadErr = 0, "", false, nil
	loadMu.Unlock()

	t.Cleanup(func() {
		loadMu.Lock()
		lib, libPath, loaded, loadErr = wasLib, wasPath, wasLoaded, wasErr
		loadMu.Unlock()
	})
}

func TestLibrarySearchPaths(t *testing.T) {
	paths := LibrarySearchPaths()
	assert.NotEmpty(t, paths, "LibrarySearchPaths should return at least one path")
}

func TestLibrarySearchPaths_IncludesLoaderPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(platform.LoaderPathVar, dir)
	assert.Contains(t, LibrarySearchPaths(), dir)
}

func TestCandidatePaths_ExplicitLibrary(t *testing.T) {
	t.Setenv(EnvLibrary, "/opt/custom/libsnowboy.so")

	paths, err := candidatePaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/custom/libsnowboy.so"}, paths)
}

func TestCandidatePaths_RespectsLibraryDir(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, ExpectedLibraryName())
	require.NoError(t, os.WriteFile(fake, []byte("not a real library"), 0o644))

	t.Setenv(EnvLibrary, "")
	t.Setenv(EnvLibraryDir, dir)

	paths, err := candidatePaths()
	require.NoError(t, err)
	assert.Equal(t, []string{fake}, paths)
}

func TestCandidatePaths_LibraryDirNotFound(t *testing.T) {
	t.Setenv(EnvLibrary, "")
	t.Setenv(EnvLibraryDir, t.TempDir())

	_, err := candidatePaths()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLibraryNotFound)
	assert.Contains(t, err.Error(), EnvLibraryDir)
}

func TestCandidatePaths_FallsBackToBareNames(t *testing.T) {
	t.Setenv(EnvLibrary, "")
	t.Setenv(EnvLibraryDir, "")

	paths, err := candidatePaths()
	require.NoError(t, err)
	for _, name := range LibraryNames {
		assert.Contains(t, paths, platform.FormatLibraryName(name, 0))
	}
}

func TestFindIn(t *testing.T) {
	dir := t.TempDir()
	name := platform.FormatLibraryName("snowboydetect", 0)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))

	got, err := findIn([]string{t.TempDir(), dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, name), got)
}

func TestLoadPath_InvalidFile(t *testing.T) {
	resetState(t)

	fake := filepath.Join(t.TempDir(), ExpectedLibraryName())
	require.NoError(t, os.WriteFile(fake, []byte("not a real library"), 0o644))

	err := LoadPath(fake)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLibraryNotFound)
	assert.False(t, IsLoaded())
	assert.Contains(t, Status(), "not loaded")
}

func TestStatus_BeforeLoad(t *testing.T) {
	resetState(t)
	assert.Equal(t, "not loaded (Load() not called)", Status())
	assert.NoError(t, LoadError())
	assert.Empty(t, Path())
}

func TestNotLoadedCallsAreSafe(t *testing.T) {
	resetState(t)

	_, err := Construct("common.res", "model.pmdl")
	assert.ErrorIs(t, err, ErrNotLoaded)

	assert.Equal(t, ResultError, RunDetection(0, make([]int16, 160), false))
	assert.False(t, Reset(0))
	assert.Equal(t, Properties{}, DetectorProperties(0))
	Destruct(0)
	SetSensitivity(0, "0.5")
	SetAudioGain(0, 1)
}

func TestBuildInstructions(t *testing.T) {
	assert.NotEmpty(t, BuildInstructions())
}

// Integration test - only runs if Snowboy is available
func TestLoadSnowboy(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Snowboy load test in short mode")
	}
	resetState(t)

	if err := Load(); err != nil {
		t.Skipf("Snowboy not available: %v", err)
	}
	assert.True(t, IsLoaded())
	assert.NotEmpty(t, Path())
	t.Logf("Snowboy %s", Status())
}
