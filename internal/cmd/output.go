package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/obinnaokechukwu/snowgo"
)

// Outputter is implemented by command results that support structured output.
type Outputter interface {
	// ToJSON returns the value marshaled for json and yaml output.
	ToJSON() interface{}
	// ToText writes the human-readable form.
	ToText(w io.Writer, st styles)
}

type styles struct {
	header  lipgloss.Style
	label   lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	keyword lipgloss.Style
	dim     lipgloss.Style
}

// newStyles returns colored styles when w is a terminal and plain ones otherwise.
func newStyles(w io.Writer) styles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain}
	}
	return styles{
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		keyword: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		dim:     lipgloss.NewStyle().Faint(true),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeOutput renders o in format (json, yaml or text).
func writeOutput(w io.Writer, o Outputter, format string) error {
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(o.ToJSON(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(o.ToJSON())
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "text", "":
		o.ToText(w, newStyles(w))
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use json, yaml or text)", format)
	}
}

// formatOffset renders a stream offset as mm:ss.mmm.
func formatOffset(d time.Duration) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}

// detectionLine formats one detection event.
func detectionLine(st styles, ev snowgo.Event) string {
	mode := st.ok.Render(ev.Mode)
	if ev.Mode == snowgo.ModeMock.String() {
		mode = st.warn.Render(ev.Mode)
	}
	return fmt.Sprintf("%s  %s %s  %s",
		st.dim.Render(formatOffset(ev.Offset)),
		st.label.Render("keyword"),
		st.keyword.Render(fmt.Sprint(ev.Keyword)),
		mode,
	)
}

func printStats(w io.Writer, st styles, stats snowgo.ListenerStats, sampleRate int) {
	audio := time.Duration(0)
	if sampleRate > 0 {
		audio = time.Duration(stats.Samples) * time.Second / time.Duration(sampleRate)
	}
	fmt.Fprintf(w, "%s %d detections in %s of audio (%d frames, %d errors)\n",
		st.header.Render("done:"),
		stats.Detections, formatOffset(audio), stats.Frames, stats.Errors)
}
