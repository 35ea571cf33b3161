package tui

import (
	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/muesli/termenv"
)

// Styler colours console output. The zero value uses the detected terminal profile.
type Styler struct {
	Profile termenv.Profile
}

// NewStyler detects the colour profile of the terminal.
// Plain output (no colours) is used when color is false.
func NewStyler(color bool) Styler {
	if !color {
		return Styler{Profile: termenv.Ascii}
	}
	return Styler{Profile: termenv.ColorProfile()}
}

// Verdict renders "Accepted" or "Rejected".
func (s Styler) Verdict(v domain.Verdict) string {
	if s.Profile == termenv.Ascii {
		if v == domain.Accepted {
			return "Accepted"
		}
		return "Rejected"
	}
	if v == domain.Accepted {
		return termenv.String("Accepted").Foreground(s.Profile.Color("#22c55e")).Bold().String()
	}
	return termenv.String("Rejected").Foreground(s.Profile.Color("#ef4444")).Bold().String()
}

// Notice renders a dimmed system message.
func (s Styler) Notice(msg string) string {
	if s.Profile == termenv.Ascii {
		return msg
	}
	return termenv.String(msg).Foreground(s.Profile.Color("#94a3b8")).String()
}
