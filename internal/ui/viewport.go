package ui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// Cached glamour renderer, rebuilt only when the width changes.
var (
	cachedRenderer      *glamour.TermRenderer
	cachedRendererWidth int
	rendererMu          sync.Mutex
)

// RenderMarkdown renders markdown for the terminal at width columns.
func RenderMarkdown(markdown string, width int) (string, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	if cachedRenderer == nil || cachedRendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		cachedRenderer = r
		cachedRendererWidth = width
	}
	return cachedRenderer.Render(markdown)
}

// HelpView is a scrollable pane of rendered markdown.
type HelpView struct {
	viewport viewport.Model
	markdown string
	ready    bool
	visible  bool
}

// NewHelpView creates a help view; dimensions arrive with the first resize.
func NewHelpView(markdown string) HelpView {
	return HelpView{markdown: markdown}
}

// SetSize updates the dimensions and re-renders.
func (hv *HelpView) SetSize(width, height int) {
	if !hv.ready {
		hv.viewport = viewport.New(width, height)
		hv.viewport.MouseWheelEnabled = true
		hv.viewport.MouseWheelDelta = 3
		hv.ready = true
	} else {
		hv.viewport.Width = width
		hv.viewport.Height = height
	}
	hv.render()
}

func (hv *HelpView) render() {
	width := hv.viewport.Width - 2
	if width > 100 {
		width = 100
	}
	if width < 20 {
		width = 20
	}
	out, err := RenderMarkdown(hv.markdown, width)
	if err != nil {
		out = hv.markdown
	}
	hv.viewport.SetContent(out)
}

// Show opens the help at the top.
func (hv *HelpView) Show() {
	hv.visible = true
	if hv.ready {
		hv.viewport.GotoTop()
	}
}

// Hide closes the help.
func (hv *HelpView) Hide() { hv.visible = false }

// IsVisible reports whether the help is shown.
func (hv *HelpView) IsVisible() bool { return hv.visible }

// Update forwards scroll keys and mouse events to the viewport.
func (hv *HelpView) Update(msg tea.Msg) tea.Cmd {
	if !hv.ready {
		return nil
	}
	var cmd tea.Cmd
	hv.viewport, cmd = hv.viewport.Update(msg)
	return cmd
}

// ScrollInfo returns "TOP", "BOT" or a percentage.
func (hv *HelpView) ScrollInfo() string {
	if !hv.ready {
		return "TOP"
	}
	pct := hv.viewport.ScrollPercent()
	switch {
	case pct <= 0:
		return "TOP"
	case pct >= 1:
		return "BOT"
	default:
		return fmt.Sprintf("%d%%", int(pct*100))
	}
}

// View renders the pane.
func (hv *HelpView) View() string {
	if !hv.ready {
		return ""
	}
	return hv.viewport.View()
}
