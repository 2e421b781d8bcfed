package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vidyasagar/fsurf/internal/theme"
)

// Location is a row of the location panel: a recent visit or a bookmark.
type Location struct {
	ID    int64 // visit id; zero for bookmarks
	Label string
	Path  string // empty for the device root
	When  time.Time
}

// LocationPanel lists recent locations or bookmarks with vim navigation.
type LocationPanel struct {
	title   string
	entries []Location
	cursor  listCursor
	width   int
	height  int
	visible bool
}

// NewLocationPanel creates a hidden panel.
func NewLocationPanel() LocationPanel {
	return LocationPanel{}
}

// SetEntries replaces the rows shown under title.
func (lp *LocationPanel) SetEntries(title string, entries []Location) {
	lp.title = title
	lp.entries = entries
	lp.cursor.reset(len(entries))
	lp.cursor.setRows(lp.rows())
}

// Title returns the panel heading.
func (lp *LocationPanel) Title() string { return lp.title }

// SetSize updates the panel dimensions.
func (lp *LocationPanel) SetSize(w, h int) {
	lp.width = w
	lp.height = h
	lp.cursor.setRows(lp.rows())
}

// Show makes the panel visible.
func (lp *LocationPanel) Show() {
	lp.visible = true
	lp.cursor.top()
}

// Hide closes the panel.
func (lp *LocationPanel) Hide() {
	lp.visible = false
	lp.cursor.lastGKey = false
}

// IsVisible reports whether the panel is shown.
func (lp *LocationPanel) IsVisible() bool {
	return lp.visible
}

func (lp *LocationPanel) CursorUp()     { lp.cursor.up() }
func (lp *LocationPanel) CursorDown()   { lp.cursor.down() }
func (lp *LocationPanel) GotoBottom()   { lp.cursor.bottom() }
func (lp *LocationPanel) HalfPageDown() { lp.cursor.halfPageDown() }
func (lp *LocationPanel) HalfPageUp()   { lp.cursor.halfPageUp() }

// HandleGKey returns true when gg is completed.
func (lp *LocationPanel) HandleGKey() bool { return lp.cursor.gKey() }

// ResetGKey forgets a pending g.
func (lp *LocationPanel) ResetGKey() { lp.cursor.lastGKey = false }

// Selected returns the row under the cursor.
func (lp *LocationPanel) Selected() (Location, bool) {
	if len(lp.entries) == 0 {
		return Location{}, false
	}
	return lp.entries[lp.cursor.pos], true
}

// RemoveSelected drops the row under the cursor.
func (lp *LocationPanel) RemoveSelected() {
	if len(lp.entries) == 0 {
		return
	}
	i := lp.cursor.pos
	lp.entries = append(lp.entries[:i:i], lp.entries[i+1:]...)
	lp.cursor.clamp(len(lp.entries))
}

// Header (title, rule) and footer hint take three lines; rows take two.
func (lp *LocationPanel) rows() int {
	return (lp.height - 3) / 2
}

// View renders the panel.
func (lp *LocationPanel) View() string {
	if !lp.visible {
		return ""
	}
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Width(lp.width).
		Padding(0, 1)
	label := lipgloss.NewStyle().Foreground(t.Text).Width(lp.width).Padding(0, 1)
	path := lipgloss.NewStyle().Foreground(t.TextDim).Width(lp.width).Padding(0, 1)
	selLabel := label.Foreground(t.TextBright).Background(t.Selection).Bold(true)
	selPath := path.Foreground(t.Folder).Background(t.Selection)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Padding(0, 1)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(lp.title))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", max(lp.width-2, 1))))
	sb.WriteString("\n")

	if len(lp.entries) == 0 {
		sb.WriteString(dim.Render("Nothing yet."))
		return lipgloss.NewStyle().Width(lp.width).Height(lp.height).Render(sb.String())
	}

	maxLen := max(lp.width-4, 10)
	start, end := lp.cursor.window()
	for i := start; i < end; i++ {
		e := lp.entries[i]
		where := e.Path
		if where == "" {
			where = "device root"
		}
		if !e.When.IsZero() {
			where = fmt.Sprintf("%s  %s", where, humanize.Time(e.When))
		}

		ls, ps, mark := label, path, "  "
		if i == lp.cursor.pos {
			ls, ps, mark = selLabel, selPath, "▸ "
		}
		sb.WriteString(ls.Render(mark + truncate(e.Label, maxLen)))
		sb.WriteString("\n")
		sb.WriteString(ps.Render("  " + truncate(where, maxLen)))
		sb.WriteString("\n")
	}

	used := 2 + (end-start)*2
	if pad := lp.height - used - 1; pad > 0 {
		sb.WriteString(strings.Repeat("\n", pad))
	}
	sb.WriteString(dim.Italic(true).Render("j/k:move  Enter:open  d:del  Esc:close"))

	return lipgloss.NewStyle().Width(lp.width).Height(lp.height).Render(sb.String())
}
