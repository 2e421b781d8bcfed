package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vidyasagar/fsurf/internal/listing"
	"github.com/vidyasagar/fsurf/internal/theme"
)

// ItemKind classifies a row of the item list.
type ItemKind int

const (
	ItemDrive ItemKind = iota
	ItemFolder
	ItemFile
)

// Item is one row of the item list.
type Item struct {
	Kind   ItemKind
	Name   string
	Path   string
	Detail string
	Drive  listing.Drive
}

// Navigable reports whether entering the item opens a listing.
func (it Item) Navigable() bool {
	return it.Kind != ItemFile
}

// Items flattens a listing into rows: drives, or folders then files.
func Items(l *listing.Listing) []Item {
	if l == nil {
		return nil
	}
	items := make([]Item, 0, l.Len())
	for _, d := range l.Drives {
		items = append(items, Item{Kind: ItemDrive, Name: d.Title(), Path: d.Path, Detail: d.Summary(), Drive: d})
	}
	for _, f := range l.Folders {
		items = append(items, Item{Kind: ItemFolder, Name: f.Name, Path: f.Path, Detail: f.Summary()})
	}
	for _, f := range l.Files {
		detail := f.Summary()
		if !f.Modified.IsZero() {
			detail += " | " + humanize.Time(f.Modified)
		}
		items = append(items, Item{Kind: ItemFile, Name: f.Name, Path: f.Path, Detail: detail})
	}
	return items
}

// ItemList shows the current listing with a cursor.
type ItemList struct {
	items  []Item
	cursor listCursor
	width  int
	height int
	empty  string
}

// NewItemList creates an empty item list.
func NewItemList() ItemList {
	return ItemList{empty: "Nothing here."}
}

// SetListing replaces the rows and moves the cursor to the top.
func (il *ItemList) SetListing(l *listing.Listing) {
	il.items = Items(l)
	il.cursor.reset(len(il.items))
	il.cursor.setRows(il.rows())
}

// SetEmptyText sets the text shown when there are no rows.
func (il *ItemList) SetEmptyText(s string) {
	il.empty = s
}

// SetSize updates the list dimensions.
func (il *ItemList) SetSize(w, h int) {
	il.width = w
	il.height = h
	il.cursor.setRows(il.rows())
}

// Len returns the number of rows.
func (il *ItemList) Len() int { return len(il.items) }

// Selected returns the row under the cursor.
func (il *ItemList) Selected() (Item, bool) {
	if len(il.items) == 0 {
		return Item{}, false
	}
	return il.items[il.cursor.pos], true
}

// SelectedIndex returns the cursor position.
func (il *ItemList) SelectedIndex() int { return il.cursor.pos }

// Select moves the cursor to the first row whose path is p.
func (il *ItemList) Select(p string) bool {
	for i, it := range il.items {
		if it.Path == p {
			il.cursor.pos = i
			il.cursor.ensureVisible()
			return true
		}
	}
	return false
}

func (il *ItemList) CursorUp()     { il.cursor.up() }
func (il *ItemList) CursorDown()   { il.cursor.down() }
func (il *ItemList) GotoTop()      { il.cursor.top() }
func (il *ItemList) GotoBottom()   { il.cursor.bottom() }
func (il *ItemList) HalfPageDown() { il.cursor.halfPageDown() }
func (il *ItemList) HalfPageUp()   { il.cursor.halfPageUp() }

// HandleGKey returns true when gg is completed.
func (il *ItemList) HandleGKey() bool { return il.cursor.gKey() }

// ResetGKey forgets a pending g.
func (il *ItemList) ResetGKey() { il.cursor.lastGKey = false }

// Each row takes two lines: name, then detail.
func (il *ItemList) rows() int {
	return il.height / 2
}

// Position returns "n/total" for the status bar.
func (il *ItemList) Position() string {
	if len(il.items) == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", il.cursor.pos+1, len(il.items))
}

// View renders the list.
func (il *ItemList) View() string {
	t := theme.Current

	box := lipgloss.NewStyle().Width(il.width).Height(il.height)
	if len(il.items) == 0 {
		return box.Render(lipgloss.NewStyle().Foreground(t.TextDim).Padding(1, 2).Render(il.empty))
	}

	nameMax := il.width - 6
	var sb strings.Builder
	start, end := il.cursor.window()
	for i := start; i < end; i++ {
		it := il.items[i]
		selected := i == il.cursor.pos

		colour := t.File
		icon := "  "
		switch it.Kind {
		case ItemDrive:
			colour, icon = t.Drive, "⛁ "
		case ItemFolder:
			colour, icon = t.Folder, "▸ "
		}

		name := lipgloss.NewStyle().Foreground(colour).Padding(0, 1)
		detail := lipgloss.NewStyle().Foreground(t.Size).Padding(0, 1)
		if it.Kind != ItemFile {
			name = name.Bold(true)
		}
		if selected {
			name = name.Background(t.Selection).Width(il.width)
			detail = detail.Background(t.Selection).Width(il.width)
		}

		prefix := "  "
		if selected {
			prefix = "› "
		}
		sb.WriteString(name.Render(prefix + icon + truncate(it.Name, nameMax)))
		sb.WriteString("\n")
		sb.WriteString(detail.Render("    " + truncate(it.Detail, nameMax)))
		if i < end-1 {
			sb.WriteString("\n")
		}
	}
	return box.Render(sb.String())
}
