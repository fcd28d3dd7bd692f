package snowgo

import (
	"errors"

	"github.com/obinnaokechukwu/snowgo/internal/bindings"
)

// Common errors
var (
	// ErrNotLoaded indicates the Snowboy library is not loaded.
	ErrNotLoaded = bindings.ErrNotLoaded

	// ErrLibraryNotFound indicates the Snowboy library could not be found.
	ErrLibraryNotFound = bindings.ErrLibraryNotFound

	// ErrConstructFailed indicates the native constructor returned no detector.
	ErrConstructFailed = bindings.ErrConstructFailed

	// ErrUnsupportedPlatform indicates native loading is not possible on this target.
	ErrUnsupportedPlatform = bindings.ErrUnsupportedPlatform

	// ErrModelNotFound indicates a resource or model file does not exist.
	ErrModelNotFound = errors.New("snowgo: resource or model file not found")

	// ErrNoBackend indicates the registry has no real backend configured.
	ErrNoBackend = errors.New("snowgo: no detector backend")

	// ErrUnsupportedAudio indicates audio that is not 16-bit mono PCM.
	ErrUnsupportedAudio = errors.New("snowgo: unsupported audio format")
)

// Detection result constants. Positive results are 1-based keyword indices.
const (
	// ResultSilence is returned by detectors with VAD enabled for silent input.
	ResultSilence = -2

	// ResultError indicates the detector failed to process the buffer.
	ResultError = bindings.ResultError

	// ResultNone indicates no keyword was found.
	ResultNone = 0
)
