package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/fsurf/internal/theme"
)

// SplitPane lays the item list and a side panel out side by side.
type SplitPane struct {
	open   bool
	ratio  float64 // share of the width given to the main pane
	width  int
	height int
}

// NewSplitPane creates a closed split.
func NewSplitPane() SplitPane {
	return SplitPane{ratio: 0.6}
}

// SetSize updates the total dimensions.
func (sp *SplitPane) SetSize(w, h int) {
	sp.width = w
	sp.height = h
}

// Open shows the side pane.
func (sp *SplitPane) Open() { sp.open = true }

// Close hides the side pane.
func (sp *SplitPane) Close() { sp.open = false }

// IsOpen reports whether the side pane is shown.
func (sp *SplitPane) IsOpen() bool { return sp.open }

// MainSize returns the dimensions of the main pane.
func (sp *SplitPane) MainSize() (int, int) {
	if !sp.open {
		return sp.width, sp.height
	}
	return int(float64(sp.width)*sp.ratio) - 1, sp.height // divider
}

// SideSize returns the dimensions of the side pane, zero when closed.
func (sp *SplitPane) SideSize() (int, int) {
	if !sp.open {
		return 0, 0
	}
	main, _ := sp.MainSize()
	return sp.width - main - 1, sp.height
}

// Render joins the panes with a divider.
func (sp *SplitPane) Render(main, side string) string {
	if !sp.open {
		return main
	}
	w1, h := sp.MainSize()
	w2, _ := sp.SideSize()

	divider := lipgloss.NewStyle().
		Foreground(theme.Current.Border).
		Height(h).
		Render(repeatLines("│", h))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(w1).Height(h).Render(main),
		divider,
		lipgloss.NewStyle().Width(w2).Height(h).Render(side),
	)
}

func repeatLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	out := s
	for i := 1; i < n; i++ {
		out += "\n" + s
	}
	return out
}
