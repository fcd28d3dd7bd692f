//go:build ios || android || !(amd64 || arm64)

package bindings

// LibraryNames lists the base names of the Snowboy C wrapper in preference order.
var LibraryNames = []string{"snowboy-detect-c-wrapper", "snowboydetect", "snowboy"}

// Properties reports the detector's expected audio format and hotword count.
type Properties struct {
	SampleRate    int
	NumChannels   int
	BitsPerSample int
	NumHotwords   int
}

func IsLoaded() bool                            { return false }
func Load() error                               { return ErrUnsupportedPlatform }
func LoadPath(string) error                     { return ErrUnsupportedPlatform }
func FindLibrary() (string, error)              { return "", ErrUnsupportedPlatform }
func LibrarySearchPaths() []string              { return nil }
func ExpectedLibraryName() string               { return "" }
func Path() string                              { return "" }
func LoadError() error                          { return ErrUnsupportedPlatform }
func Status() string                            { return "not loaded: " + ErrUnsupportedPlatform.Error() }
func BuildInstructions() string                 { return "native detection is unavailable on this platform" }
func Construct(string, string) (uintptr, error) { return 0, ErrUnsupportedPlatform }
func Destruct(uintptr)                          {}
func Reset(uintptr) bool                        { return false }
func RunDetection(uintptr, []int16, bool) int   { return ResultError }
func SetSensitivity(uintptr, string)            {}
func SetAudioGain(uintptr, float32)             {}
func ApplyFrontend(uintptr, bool) error         { return ErrUnsupportedPlatform }
func DetectorProperties(uintptr) Properties     { return Properties{} }
