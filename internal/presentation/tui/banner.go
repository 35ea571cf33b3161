package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the dfakit banner with the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"      _  __       _    _ _   ", "#818cf8"},
		{"   __| |/ _| __ _| | _(_) |_ ", "#a78bfa"},
		{"  / _` | |_ / _` | |/ / | __|", "#c084fc"},
		{" | (_| |  _| (_| |   <| | |_ ", "#e879f9"},
		{"  \\__,_|_|  \\__,_|_|\\_\\_|\\__|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
