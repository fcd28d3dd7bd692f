// Package snowgo provides bindings to the Snowboy keyword-spotting engine
// without CGO, using purego, with an in-process mock fallback.
//
// Detectors are referenced through integer handles held by a Registry.
// Positive handles refer to real Snowboy detectors. When the Snowboy library
// or its model files are unavailable, Create still succeeds and returns a
// non-positive handle backed by a simple energy-threshold mock, so the calling
// audio loop keeps running. No registry operation ever fails: unknown and
// destroyed handles are silently treated as mock handles.
//
// Basic usage:
//
//	reg := snowgo.NewRegistry(snowgo.AutoBackend())
//	h := reg.Create("common.res", "snowboy.umdl")
//	defer reg.Destroy(h)
//	reg.SetSensitivity(h, "0.5")
//	for frame := range frames {
//		if kw := reg.RunDetection(h, frame); kw > 0 {
//			fmt.Println("keyword", kw)
//		}
//	}
package snowgo

import (
	"github.com/obinnaokechukwu/snowgo/internal/bindings"
)

// Init loads the Snowboy library. It is called by NativeBackend and may be
// called explicitly to check for errors. It is safe to call multiple times.
func Init() error {
	return bindings.Load()
}

// InitPath loads the Snowboy library from an explicit file path.
func InitPath(path string) error {
	return bindings.LoadPath(path)
}

// IsLoaded returns true if the Snowboy library has been successfully loaded.
func IsLoaded() bool {
	return bindings.IsLoaded()
}

// LibraryPath returns the path the library was loaded from, or "".
func LibraryPath() string {
	return bindings.Path()
}

// LibraryStatus returns a human-readable description of the load state.
func LibraryStatus() string {
	return bindings.Status()
}

// LibrarySearchPaths returns the directories searched for the library.
func LibrarySearchPaths() []string {
	return bindings.LibrarySearchPaths()
}

// BuildInstructions returns hints for obtaining the native library.
func BuildInstructions() string {
	return bindings.BuildInstructions()
}

// AutoBackend returns the native backend if the library loads, or nil, in
// which case a registry built from it runs in mock mode only.
func AutoBackend() Backend {
	b, err := NativeBackend()
	if err != nil {
		Logger().Warn("snowboy library unavailable, using mock detector", "error", err)
		return nil
	}
	return b
}
