//go:build !ios && !android && (amd64 || arm64)

// Package bindings loads the Snowboy C wrapper library at runtime and
// registers its functions using purego.
//
// The library is searched for in the following locations (in order):
//  1. SNOWGO_LIBRARY (full path to the library file)
//  2. SNOWGO_LIBRARY_DIR (directory containing the library; exclusive when set)
//  3. LD_LIBRARY_PATH / DYLD_LIBRARY_PATH / PATH
//  4. Standard library paths (/usr/local/lib, /usr/lib, etc.)
//  5. Executable directory
//  6. The system loader's own search (bare library name)
package bindings

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/snowgo/internal/platform"
)

// Environment variables consulted by Load.
const (
	EnvLibrary    = "SNOWGO_LIBRARY"
	EnvLibraryDir = "SNOWGO_LIBRARY_DIR"
)

// LibraryNames lists the base names of the Snowboy C wrapper in preference order.
var LibraryNames = []string{"snowboy-detect-c-wrapper", "snowboydetect", "snowboy"}

var (
	lib      uintptr
	libPath  string
	loaded   bool
	loadErr  error
	loadMu   sync.Mutex
	attempts []string

	// Required symbols
	detectConstructor    func(resource, model string) uintptr
	detectDestructor     func(det uintptr)
	detectReset          func(det uintptr) bool
	detectRunDetection   func(det uintptr, data *int16, length int32, isEnd bool) int32
	detectSetSensitivity func(det uintptr, sensitivity string)
	detectSetAudioGain   func(det uintptr, gain float32)

	// Optional symbols (older wrapper builds lack some of them)
	detectApplyFrontend func(det uintptr, apply bool)
	detectNumHotwords   func(det uintptr) int32
	detectSampleRate    func(det uintptr) int32
	detectNumChannels   func(det uintptr) int32
	detectBitsPerSample func(det uintptr) int32
)

// IsLoaded returns true if the Snowboy library has been successfully loaded.
func IsLoaded() bool {
	loadMu.Lock()
	defer loadMu.Unlock()
	return loaded
}

// Load finds and loads the Snowboy library and registers all bindings.
// It is safe to call multiple times; the first outcome is cached.
func Load() error {
	loadMu.Lock()
	defer loadMu.Unlock()

	if loaded {
		return nil
	}
	if loadErr != nil {
		return loadErr
	}

	candidates, err := candidatePaths()
	if err != nil {
		loadErr = err
		return loadErr
	}

	attempts = attempts[:0]
	for _, path := range candidates {
		h, err := tryOpen(path)
		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		if err := registerBindings(h); err != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		lib = h
		libPath = path
		loaded = true
		return nil
	}

	loadErr = fmt.Errorf("%w (tried %d candidates)", ErrLibraryNotFound, len(candidates))
	return loadErr
}

// LoadPath loads the Snowboy library from an explicit path, bypassing the search.
func LoadPath(path string) error {
	loadMu.Lock()
	defer loadMu.Unlock()

	if loaded {
		return nil
	}

	h, err := tryOpen(path)
	if err != nil {
		loadErr = fmt.Errorf("%w: %s: %v", ErrLibraryNotFound, path, err)
		return loadErr
	}
	if err := registerBindings(h); err != nil {
		loadErr = fmt.Errorf("loading %s: %w", path, err)
		return loadErr
	}
	lib = h
	libPath = path
	loaded = true
	loadErr = nil
	return nil
}

// candidatePaths builds the ordered list of paths to try with dlopen.
func candidatePaths() ([]string, error) {
	if p := os.Getenv(EnvLibrary); p != "" {
		return []string{p}, nil
	}

	if dir := os.Getenv(EnvLibraryDir); dir != "" {
		path, err := findIn([]string{dir})
		if err != nil {
			return nil, fmt.Errorf("%w in %s=%s", ErrLibraryNotFound, EnvLibraryDir, dir)
		}
		return []string{path}, nil
	}

	var paths []string
	if path, err := FindLibrary(); err == nil {
		paths = append(paths, path)
	}
	// Let the system loader try the bare names as a last resort.
	for _, name := range LibraryNames {
		paths = append(paths, platform.FormatLibraryName(name, 0))
	}
	return paths, nil
}

// tryOpen attempts to open a library with RTLD_NOW | RTLD_GLOBAL.
func tryOpen(path string) (uintptr, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, err
	}
	return h, nil
}

func registerBindings(h uintptr) (err error) {
	defer func() {
		// purego.RegisterLibFunc panics if a symbol is missing
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSymbolMissing, r)
		}
	}()

	purego.RegisterLibFunc(&detectConstructor, h, "SnowboyDetectConstructor")
	purego.RegisterLibFunc(&detectDestructor, h, "SnowboyDetectDestructor")
	purego.RegisterLibFunc(&detectReset, h, "SnowboyDetectReset")
	purego.RegisterLibFunc(&detectRunDetection, h, "SnowboyDetectRunDetection")
	purego.RegisterLibFunc(&detectSetSensitivity, h, "SnowboyDetectSetSensitivity")
	purego.RegisterLibFunc(&detectSetAudioGain, h, "SnowboyDetectSetAudioGain")

	registerOptionalLibFunc(&detectApplyFrontend, h, "SnowboyDetectApplyFrontend")
	registerOptionalLibFunc(&detectNumHotwords, h, "SnowboyDetectNumHotwords")
	registerOptionalLibFunc(&detectSampleRate, h, "SnowboyDetectSampleRate")
	registerOptionalLibFunc(&detectNumChannels, h, "SnowboyDetectNumChannels")
	registerOptionalLibFunc(&detectBitsPerSample, h, "SnowboyDetectBitsPerSample")
	return nil
}

func registerOptionalLibFunc(fptr any, handle uintptr, name string) {
	defer func() {
		_ = recover()
	}()
	purego.RegisterLibFunc(fptr, handle, name)
}

// FindLibrary searches for the Snowboy library and returns its full path.
// This is useful for diagnostics; it does not load anything.
func FindLibrary() (string, error) {
	return findIn(LibrarySearchPaths())
}

func findIn(dirs []string) (string, error) {
	for _, dir := range dirs {
		for _, name := range LibraryNames {
			for _, ver := range []int{1, 0} {
				fullPath := filepath.Join(dir, platform.FormatLibraryName(name, ver))
				if _, err := os.Stat(fullPath); err == nil {
					return fullPath, nil
				}
			}
		}
	}
	return "", ErrLibraryNotFound
}

// LibrarySearchPaths returns platform-specific library search paths.
func LibrarySearchPaths() []string {
	paths := platform.LoaderPaths()

	switch runtime.GOOS {
	case "linux":
		paths = append(paths,
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib/aarch64-linux-gnu",
			"/usr/local/lib",
			"/usr/lib",
			"/lib/x86_64-linux-gnu",
			"/lib",
		)
	case "darwin":
		paths = append(paths,
			"/opt/homebrew/lib", // Apple Silicon
			"/usr/local/lib",    // Intel
		)
	case "windows":
		paths = append(paths, "C:\\snowboy\\lib")
	case "freebsd":
		paths = append(paths,
			"/usr/local/lib",
			"/usr/lib",
		)
	}

	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Dir(exe))
	}
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, wd)
	}

	return paths
}

// ExpectedLibraryName returns the preferred library filename for this platform.
func ExpectedLibraryName() string {
	return platform.FormatLibraryName(LibraryNames[0], 0)
}

// Path returns the path the library was loaded from, or "" if not loaded.
func Path() string {
	loadMu.Lock()
	defer loadMu.Unlock()
	return libPath
}

// LoadError returns the cached error from the last failed load, if any.
func LoadError() error {
	loadMu.Lock()
	defer loadMu.Unlock()
	return loadErr
}

// Status returns a human-readable status of the library.
func Status() string {
	loadMu.Lock()
	defer loadMu.Unlock()

	if loaded {
		return fmt.Sprintf("loaded from %s", libPath)
	}
	if loadErr != nil {
		if len(attempts) == 0 {
			return fmt.Sprintf("not loaded: %s", loadErr)
		}
		return fmt.Sprintf("not loaded: %s\n  %s", loadErr, strings.Join(attempts, "\n  "))
	}
	return "not loaded (Load() not called)"
}

// BuildInstructions returns platform-specific hints for obtaining the library.
func BuildInstructions() string {
	switch runtime.GOOS {
	case "linux", "darwin":
		return fmt.Sprintf(`To build the Snowboy C wrapper:
  1. Clone https://github.com/Kitt-AI/snowboy
  2. Build examples/C (links libsnowboy-detect.a and snowboy-detect-c-wrapper.cc)
     into a shared library named %s
  3. Install it or point %s at its directory`, ExpectedLibraryName(), EnvLibraryDir)
	default:
		return fmt.Sprintf("Snowboy does not ship binaries for %s/%s; the mock detector will be used", runtime.GOOS, runtime.GOARCH)
	}
}

func checkLoaded() bool {
	loadMu.Lock()
	defer loadMu.Unlock()
	return loaded
}

// Construct creates a native detector. The caller must check that the files
// exist first: the C++ constructor aborts the process on a bad path.
func Construct(resource, model string) (uintptr, error) {
	if !checkLoaded() {
		return 0, ErrNotLoaded
	}
	det := detectConstructor(resource, model)
	if det == 0 {
		return 0, ErrConstructFailed
	}
	return det, nil
}

// Destruct frees a native detector.
func Destruct(det uintptr) {
	if det == 0 || detectDestructor == nil {
		return
	}
	detectDestructor(det)
}

// Reset resets the detector's internal state.
func Reset(det uintptr) bool {
	if det == 0 || detectReset == nil {
		return false
	}
	return detectReset(det)
}

// RunDetection runs the detector over 16-bit PCM samples and returns its raw result.
func RunDetection(det uintptr, samples []int16, isEnd bool) int {
	if det == 0 || detectRunDetection == nil {
		return ResultError
	}
	var data *int16
	if len(samples) > 0 {
		data = &samples[0]
	}
	ret := detectRunDetection(det, data, int32(len(samples)), isEnd)
	runtime.KeepAlive(samples)
	return int(ret)
}

// SetSensitivity forwards a sensitivity string such as "0.5" or "0.4,0.6".
func SetSensitivity(det uintptr, sensitivity string) {
	if det == 0 || detectSetSensitivity == nil {
		return
	}
	detectSetSensitivity(det, sensitivity)
}

// SetAudioGain forwards the audio gain.
func SetAudioGain(det uintptr, gain float32) {
	if det == 0 || detectSetAudioGain == nil {
		return
	}
	detectSetAudioGain(det, gain)
}

// ApplyFrontend toggles the audio frontend (noise suppression and AGC).
func ApplyFrontend(det uintptr, apply bool) error {
	if det == 0 {
		return ErrNotLoaded
	}
	if detectApplyFrontend == nil {
		return fmt.Errorf("%w: SnowboyDetectApplyFrontend", ErrSymbolMissing)
	}
	detectApplyFrontend(det, apply)
	return nil
}

// Properties reports the detector's expected audio format and hotword count.
// Missing optional symbols yield zero values.
type Properties struct {
	SampleRate    int
	NumChannels   int
	BitsPerSample int
	NumHotwords   int
}

// DetectorProperties queries the optional property symbols.
func DetectorProperties(det uintptr) Properties {
	var p Properties
	if det == 0 {
		return p
	}
	if detectSampleRate != nil {
		p.SampleRate = int(detectSampleRate(det))
	}
	if detectNumChannels != nil {
		p.NumChannels = int(detectNumChannels(det))
	}
	if detectBitsPerSample != nil {
		p.BitsPerSample = int(detectBitsPerSample(det))
	}
	if detectNumHotwords != nil {
		p.NumHotwords = int(detectNumHotwords(det))
	}
	return p
}
