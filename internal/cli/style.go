package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles renders output for one writer; color is dropped when w is not a terminal.
type styles struct {
	success lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	warning lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		heading: r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		warning: r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}
