package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/fsurf/internal/theme"
)

// Mode names shown in the status bar.
const (
	ModeNormal    = "NORMAL"
	ModeCommand   = "COMMAND"
	ModeFilter    = "FILTER"
	ModeRecent    = "RECENT"
	ModeBookmarks = "BOOKMARKS"
	ModeHelp      = "HELP"
)

// StatusBar shows mode, progress and listing info at the bottom of the screen.
type StatusBar struct {
	mode     string
	loading  bool
	spinner  string
	message  string
	isError  bool
	query    string
	position string
	width    int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{mode: ModeNormal}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetMode sets the current mode indicator.
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// Mode returns the current mode.
func (s *StatusBar) Mode() string {
	return s.mode
}

// SetLoading shows frame as a loading indicator while loading is true.
func (s *StatusBar) SetLoading(loading bool, frame string) {
	s.loading = loading
	s.spinner = frame
}

// SetMessage sets a status message.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
	s.isError = false
}

// SetError sets an error message.
func (s *StatusBar) SetError(err error) {
	if err == nil {
		s.message, s.isError = "", false
		return
	}
	s.message = err.Error()
	s.isError = true
}

// Message returns the current message.
func (s *StatusBar) Message() string {
	return s.message
}

// SetQuery describes the active folder query, e.g. "size ↓ hidden".
func (s *StatusBar) SetQuery(q string) {
	s.query = q
}

// SetPosition sets the cursor position text, e.g. "3/42".
func (s *StatusBar) SetPosition(pos string) {
	s.position = pos
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeBg := t.Primary
	switch s.mode {
	case ModeCommand:
		modeBg = t.Accent
	case ModeFilter:
		modeBg = t.Warning
	case ModeRecent, ModeBookmarks:
		modeBg = t.Folder
	case ModeHelp:
		modeBg = t.Success
	}
	mode := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Surface).
		Background(modeBg).
		Render(s.mode)

	dim := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface).
		Padding(0, 1)
	var right string
	if s.query != "" {
		right += dim.Render(s.query)
	}
	if s.position != "" {
		right += lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Crumb).
			Background(t.Surface).
			Padding(0, 1).
			Render(s.position)
	}

	var left string
	switch {
	case s.loading:
		left = lipgloss.NewStyle().
			Foreground(t.Warning).
			Background(t.Surface).
			Bold(true).
			Padding(0, 1).
			Render(strings.TrimSpace(s.spinner + " Loading..."))
	case s.message != "":
		fg := t.Text
		if s.isError {
			fg = t.Error
		}
		left = lipgloss.NewStyle().
			Foreground(fg).
			Background(t.Surface).
			Padding(0, 1).
			Render(truncate(s.message, s.width-lipgloss.Width(mode)-lipgloss.Width(right)-2))
	}

	spacerWidth := s.width - lipgloss.Width(mode) - lipgloss.Width(left) - lipgloss.Width(right)
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := lipgloss.NewStyle().
		Background(t.Surface).
		Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Render(mode + left + spacer + right)
}
