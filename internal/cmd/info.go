package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/obinnaokechukwu/snowgo"
	"github.com/obinnaokechukwu/snowgo/internal/mic"
	"github.com/obinnaokechukwu/snowgo/internal/platform"
)

var (
	infoFormat   string
	infoDetector detectorFlags
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show native library status and detector properties",
	Long: `Show where snowgo looks for the Snowboy library, whether it loaded, and,
when a resource and model are configured, the audio format the detector expects.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoFormat, "format", "f", "text", "Output format: json, yaml, or text")
	infoDetector.register(infoCmd)
	rootCmd.AddCommand(infoCmd)
}

type detectorReport struct {
	Handle        string `json:"handle" yaml:"handle"`
	Mode          string `json:"mode" yaml:"mode"`
	SampleRate    int    `json:"sample_rate" yaml:"sample_rate"`
	NumChannels   int    `json:"num_channels" yaml:"num_channels"`
	BitsPerSample int    `json:"bits_per_sample" yaml:"bits_per_sample"`
	NumHotwords   int    `json:"num_hotwords" yaml:"num_hotwords"`
}

type infoReport struct {
	Version     string          `json:"version" yaml:"version"`
	Platform    string          `json:"platform" yaml:"platform"`
	Loaded      bool            `json:"loaded" yaml:"loaded"`
	Library     string          `json:"library,omitempty" yaml:"library,omitempty"`
	Status      string          `json:"status" yaml:"status"`
	SearchPaths []string        `json:"search_paths" yaml:"search_paths"`
	Detector    *detectorReport `json:"detector,omitempty" yaml:"detector,omitempty"`
	Devices     []mic.Device    `json:"devices,omitempty" yaml:"devices,omitempty"`
}

func (r *infoReport) ToJSON() interface{} { return r }

func (r *infoReport) ToText(w io.Writer, st styles) {
	fmt.Fprintf(w, "%s %s (%s)\n", st.header.Render("snowgo"), r.Version, r.Platform)

	loaded := st.warn.Render("not loaded (mock mode)")
	if r.Loaded {
		loaded = st.ok.Render("loaded")
	}
	fmt.Fprintf(w, "%s %s\n", st.label.Render("library:"), loaded)
	if r.Library != "" {
		fmt.Fprintf(w, "%s %s\n", st.label.Render("path:"), r.Library)
	}
	fmt.Fprintf(w, "%s\n", st.dim.Render(r.Status))

	fmt.Fprintln(w, st.label.Render("search paths:"))
	for _, p := range r.SearchPaths {
		fmt.Fprintf(w, "  %s\n", p)
	}

	if d := r.Detector; d != nil {
		fmt.Fprintf(w, "%s %s\n", st.label.Render("detector:"), d.Handle)
		fmt.Fprintf(w, "  %d Hz, %d channel(s), %d-bit, %d hotword(s)\n",
			d.SampleRate, d.NumChannels, d.BitsPerSample, d.NumHotwords)
	}

	if len(r.Devices) > 0 {
		fmt.Fprintln(w, st.label.Render("input devices:"))
		for _, dev := range r.Devices {
			marker := " "
			if dev.IsDefault {
				marker = "*"
			}
			fmt.Fprintf(w, " %s %d: %s\n", marker, dev.ID, dev.Name)
		}
	}
}

func runInfo(cmd *cobra.Command, _ []string) error {
	infoDetector.apply(cmd, &cfg.Detector)

	reg := newRegistry(cfg.Library)
	defer reg.Close()

	report := &infoReport{
		Version:     Version,
		Platform:    platform.GOOS() + "/" + platform.GOARCH(),
		Loaded:      snowgo.IsLoaded(),
		Library:     snowgo.LibraryPath(),
		Status:      snowgo.LibraryStatus(),
		SearchPaths: snowgo.LibrarySearchPaths(),
	}

	if cfg.Detector.Resource != "" && len(cfg.Detector.Models) > 0 {
		h := openDetector(reg, cfg.Detector)
		info := reg.Info(h)
		report.Detector = &detectorReport{
			Handle:        h.String(),
			Mode:          info.Mode.String(),
			SampleRate:    info.SampleRate,
			NumChannels:   info.NumChannels,
			BitsPerSample: info.BitsPerSample,
			NumHotwords:   info.NumHotwords,
		}
	}

	if devices, err := mic.ListDevices(); err == nil {
		report.Devices = devices
	} else {
		logger.Debug("listing input devices", "error", err)
	}

	return writeOutput(cmd.OutOrStdout(), report, infoFormat)
}
