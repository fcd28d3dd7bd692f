// Package platform describes the host platform as far as native library
// loading is concerned: library file naming and the loader search path
// variables.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"unsafe"
)

// Is64Bit is true on targets where the Snowboy wrapper can be dlopened.
const Is64Bit = unsafe.Sizeof(uintptr(0)) == 8

// LibraryExtension is the file extension for shared libraries on this platform.
var LibraryExtension string

// LibraryPrefix is the prefix for shared library names on this platform.
var LibraryPrefix string

// LoaderPathVar is the environment variable the dynamic loader consults.
var LoaderPathVar string

func init() {
	switch runtime.GOOS {
	case "darwin":
		LibraryExtension = ".dylib"
		LibraryPrefix = "lib"
		LoaderPathVar = "DYLD_LIBRARY_PATH"
	case "windows":
		LibraryExtension = ".dll"
		LibraryPrefix = ""
		LoaderPathVar = "PATH"
	default:
		LibraryExtension = ".so"
		LibraryPrefix = "lib"
		LoaderPathVar = "LD_LIBRARY_PATH"
	}
}

// FormatLibraryName builds the file name the loader expects for name.
// A version of zero or less yields the bare name, which is how the Snowboy
// wrapper is normally installed ("libsnowboy-detect-c-wrapper.so"); a
// positive version follows each OS's soname convention (".so.1" on Linux,
// ".1.dylib" on macOS, "-1.dll" on Windows).
func FormatLibraryName(name string, version int) string {
	if version <= 0 {
		return LibraryPrefix + name + LibraryExtension
	}
	switch runtime.GOOS {
	case "darwin":
		return fmt.Sprintf("%s%s.%d%s", LibraryPrefix, name, version, LibraryExtension)
	case "windows":
		return fmt.Sprintf("%s%s-%d%s", LibraryPrefix, name, version, LibraryExtension)
	default:
		return fmt.Sprintf("%s%s%s.%d", LibraryPrefix, name, LibraryExtension, version)
	}
}

// LoaderPaths splits the loader path variable into directories.
func LoaderPaths() []string {
	v := os.Getenv(LoaderPathVar)
	if v == "" {
		return nil
	}
	return filepath.SplitList(v)
}

// GOOS returns the current operating system.
func GOOS() string {
	return runtime.GOOS
}

// GOARCH returns the current architecture.
func GOARCH() string {
	return runtime.GOARCH
}
