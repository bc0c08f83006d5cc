package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// levelTagger renders padded level names in severity colors. Colors are
// dropped when w is not a terminal.
type levelTagger struct {
	alarm, err, warn, info, debug lipgloss.Style
}

func newLevelTagger(w io.Writer) *levelTagger {
	r := lipgloss.NewRenderer(w)
	return &levelTagger{
		alarm: r.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("196")).
			Bold(true), // white on red
		err:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		warn:  r.NewStyle().Foreground(lipgloss.Color("220")),
		info:  r.NewStyle().Foreground(lipgloss.Color("245")),
		debug: r.NewStyle().Foreground(lipgloss.Color("245")).Faint(true),
	}
}

func (t *levelTagger) Tag(level string) string {
	padded := fmt.Sprintf("%-9s", level)
	switch level {
	case "emergency", "alert", "critical":
		return t.alarm.Render(padded)
	case "error":
		return t.err.Render(padded)
	case "warning":
		return t.warn.Render(padded)
	case "debug":
		return t.debug.Render(padded)
	default:
		return t.info.Render(padded)
	}
}
