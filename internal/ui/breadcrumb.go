package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/fsurf/internal/navigation"
	"github.com/vidyasagar/fsurf/internal/theme"
)

// BreadcrumbBar shows the hostname followed by the visible trail. Segments
// are numbered so they can be jumped to with 1-9.
type BreadcrumbBar struct {
	host    string
	trail   []navigation.Entry
	forward int // hidden entries reachable by stepping forward
	width   int
}

// NewBreadcrumbBar creates an empty bar.
func NewBreadcrumbBar() BreadcrumbBar {
	return BreadcrumbBar{}
}

// SetWidth updates the bar width.
func (b *BreadcrumbBar) SetWidth(w int) {
	b.width = w
}

// SetHost sets the device name shown as the first segment.
func (b *BreadcrumbBar) SetHost(host string) {
	b.host = host
}

// SetHistory shows the visible prefix of h.
func (b *BreadcrumbBar) SetHistory(h navigation.History) {
	b.trail = h.Trail()
	b.forward = h.Len() - len(b.trail)
}

// Segments returns the plain-text segments, host first.
func (b *BreadcrumbBar) Segments() []string {
	segs := []string{b.hostLabel()}
	for i, e := range b.trail {
		segs = append(segs, fmt.Sprintf("%d %s", i+1, e.Label))
	}
	return segs
}

func (b *BreadcrumbBar) hostLabel() string {
	if b.host == "" {
		return "~"
	}
	return b.host
}

// View renders the bar. When the trail is too wide the oldest segments
// collapse into an ellipsis.
func (b *BreadcrumbBar) View() string {
	t := theme.Current

	bar := lipgloss.NewStyle().Background(t.Surface).Width(b.width)
	host := lipgloss.NewStyle().Foreground(t.Host).Background(t.Surface).Bold(true).Padding(0, 1)
	sep := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(" » ")
	idx := lipgloss.NewStyle().Foreground(t.CrumbIndex).Background(t.Surface)
	crumb := lipgloss.NewStyle().Foreground(t.Crumb).Background(t.Surface)
	last := crumb.Bold(true).Foreground(t.TextBright)
	fwd := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Padding(0, 1)

	parts := make([]string, len(b.trail))
	for i, e := range b.trail {
		style := crumb
		if i == len(b.trail)-1 {
			style = last
		}
		parts[i] = idx.Render(fmt.Sprintf("%d ", i+1)) + style.Render(e.Label)
	}

	right := ""
	if b.forward > 0 {
		right = fwd.Render(fmt.Sprintf("+%d →", b.forward))
	}

	head := host.Render(b.hostLabel())
	budget := b.width - lipgloss.Width(head) - lipgloss.Width(right)
	skipped := 0
	for skipped < len(parts) && trailWidth(parts[skipped:], sep, skipped > 0) > budget {
		skipped++
	}

	var sb strings.Builder
	sb.WriteString(head)
	if skipped > 0 {
		sb.WriteString(sep + crumb.Render("…"))
	}
	for _, p := range parts[skipped:] {
		sb.WriteString(sep + p)
	}

	line := sb.String()
	pad := b.width - lipgloss.Width(line) - lipgloss.Width(right)
	if pad > 0 {
		line += lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", pad))
	}
	return bar.Render(line + right)
}

func trailWidth(parts []string, sep string, ellipsis bool) int {
	w := 0
	if ellipsis {
		w += lipgloss.Width(sep) + 1
	}
	for _, p := range parts {
		w += lipgloss.Width(sep) + lipgloss.Width(p)
	}
	return w
}
