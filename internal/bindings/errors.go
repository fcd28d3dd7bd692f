package bindings

import "errors"

// ResultError is the value RunDetection returns when the detector reports a failure.
const ResultError = -1

var (
	// ErrNotLoaded is returned when detector functions are called before Load.
	ErrNotLoaded = errors.New("snowgo: Snowboy library not loaded; call snowgo.Init() first")

	// ErrLibraryNotFound is returned when the Snowboy library cannot be found.
	ErrLibraryNotFound = errors.New("snowgo: Snowboy library not found")

	// ErrSymbolMissing is returned when the library lacks a required symbol.
	ErrSymbolMissing = errors.New("snowgo: symbol not available in Snowboy library")

	// ErrConstructFailed is returned when the native constructor yields NULL.
	ErrConstructFailed = errors.New("snowgo: native detector construction failed")

	// ErrUnsupportedPlatform is returned on targets purego cannot serve.
	ErrUnsupportedPlatform = errors.New("snowgo: native loading unsupported on this platform")
)
