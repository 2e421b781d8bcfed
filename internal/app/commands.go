package app

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidyasagar/fsurf/internal/explorer"
	"github.com/vidyasagar/fsurf/internal/navigation"
	"github.com/vidyasagar/fsurf/internal/theme"
	"github.com/vidyasagar/fsurf/internal/ui"
)

// commandNames are the : commands offered by Tab completion.
var commandNames = []string{
	"back", "bookmark", "bookmarks", "cd", "clearrecent", "filter", "forward",
	"help", "hidden", "jump", "open", "quit", "recent", "reload", "reverse",
	"root", "sort", "theme",
}

// completions offers the committed listing's entries: navigable paths for
// :open and names for the / filter.
func (m Model) completions() ui.Completions {
	comp := ui.Completions{
		Commands:     commandNames,
		PathCommands: []string{"open", "o", "cd"},
	}
	for _, it := range ui.Items(m.ctrl.Snapshot().Listing) {
		comp.Names = append(comp.Names, it.Name)
		if it.Navigable() {
			comp.Paths = append(comp.Paths, it.Path)
		}
	}
	return comp
}

// executeCommand runs a : command.
func (m Model) executeCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	arg := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "q", "quit":
		m.cancelLoad()
		return m, tea.Quit

	case "root", "~":
		return m.dispatch(navigation.Root())

	case "back", "b":
		return m.dispatch(navigation.Back())

	case "forward", "f":
		return m.dispatch(navigation.Forward())

	case "jump", "j":
		n, err := strconv.Atoi(arg)
		if err != nil {
			m.statusBar.SetMessage("Usage: :jump N (0 is the device root)")
			return m, nil
		}
		// Breadcrumbs are numbered from 1; 0 is the root.
		return m.dispatch(navigation.Jump(n - 1))

	case "open", "o", "cd":
		if arg == "" {
			m.statusBar.SetMessage("Usage: :open PATH")
			return m, nil
		}
		return m.dispatch(navigation.Navigate(arg, baseName(arg)))

	case "reload", "r":
		return m.reload()

	case "sort":
		key, err := explorer.ParseSortKey(arg)
		if err != nil {
			m.statusBar.SetError(err)
			return m, nil
		}
		return m.updateQuery(func(q *explorer.Query) { q.SortBy = key })

	case "reverse":
		return m.updateQuery(func(q *explorer.Query) { q.Reverse = !q.Reverse })

	case "hidden":
		return m.updateQuery(func(q *explorer.Query) { q.ShowHidden = !q.ShowHidden })

	case "filter":
		return m.updateQuery(func(q *explorer.Query) { q.Search = arg })

	case "theme":
		if arg == "" {
			m.statusBar.SetMessage(fmt.Sprintf("Themes: %s", strings.Join(theme.List(), ", ")))
			return m, nil
		}
		if !m.applyTheme(arg) {
			m.statusBar.SetMessage(fmt.Sprintf("Unknown theme: %s", arg))
			return m, nil
		}
		m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", arg))

	case "bookmark":
		m.toggleBookmark()

	case "bookmarks", "bm":
		m.showBookmarks()

	case "recent", "history":
		m.showRecent()

	case "clearrecent":
		if m.visits == nil {
			m.statusBar.SetMessage("Recent locations not available")
			return m, nil
		}
		if err := m.visits.Clear(m.server); err != nil {
			m.statusBar.SetError(err)
			return m, nil
		}
		m.statusBar.SetMessage("Recent locations cleared")

	case "help":
		m.help.Show()
		m.setMode(ModeHelp)

	default:
		m.statusBar.SetMessage(fmt.Sprintf("Unknown command: %s", parts[0]))
	}
	return m, nil
}

// updateQuery changes the folder query and reloads the latest folder, the
// one being opened if a fetch is in flight. At the device root the query
// is stored for the next folder.
func (m Model) updateQuery(change func(q *explorer.Query)) (tea.Model, tea.Cmd) {
	if m.querier == nil {
		m.statusBar.SetMessage("Sorting and filtering are not supported by this provider")
		return m, nil
	}
	q := m.querier.Query()
	change(&q)
	m.querier.SetQuery(q)
	m.cache.Purge()

	if m.config != nil {
		m.config.SortBy = string(q.SortBy)
		m.config.Reverse = q.Reverse
		m.config.ShowHidden = q.ShowHidden
		m.saveConfig()
	}

	m.syncStatusBar()
	if _, latest := m.ctrl.Latest(); latest.Root {
		m.statusBar.SetMessage(describeQuery(q))
		return m, nil
	}
	return m.start(m.ctrl.ReloadAction(), true)
}

// describeQuery renders q for the status bar, e.g. "size ↓ hidden /log".
func describeQuery(q explorer.Query) string {
	var sb strings.Builder
	sort := q.SortBy
	if sort == "" {
		sort = explorer.SortByName
	}
	sb.WriteString(string(sort))
	if q.Reverse {
		sb.WriteString(" ↓")
	} else {
		sb.WriteString(" ↑")
	}
	if q.ShowHidden {
		sb.WriteString(" hidden")
	}
	if q.Search != "" {
		sb.WriteString(" /" + q.Search)
	}
	return sb.String()
}

// baseName labels a path typed by the user: its last element, for either
// separator.
func baseName(p string) string {
	trimmed := strings.TrimRight(p, `/\`)
	if trimmed == "" {
		return p
	}
	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// toggleBookmark bookmarks the committed location, or removes its bookmark.
func (m *Model) toggleBookmark() {
	if m.bookmarks == nil {
		m.statusBar.SetMessage("Bookmarks not available")
		return
	}
	s := m.ctrl.Snapshot()
	if s.Listing == nil {
		m.statusBar.SetMessage("Nothing to bookmark yet")
		return
	}
	label := locationLabel(s)
	on, err := m.bookmarks.Toggle(m.server, s.Target.Path, label)
	switch {
	case err != nil:
		m.statusBar.SetError(err)
	case on:
		m.statusBar.SetMessage(fmt.Sprintf("Bookmarked: %s", label))
	default:
		m.statusBar.SetMessage(fmt.Sprintf("Removed bookmark: %s", label))
	}
}

func (m *Model) showBookmarks() {
	if m.bookmarks == nil {
		m.statusBar.SetMessage("Bookmarks not available")
		return
	}
	list, err := m.bookmarks.List(m.server)
	if err != nil {
		m.statusBar.SetError(err)
		return
	}
	locs := make([]ui.Location, len(list))
	for i, b := range list {
		locs[i] = ui.Location{Label: b.Label, Path: b.Path, When: b.CreatedAt}
	}
	m.openPanel(ModeBookmarks, "Bookmarks", locs)
}

func (m *Model) showRecent() {
	if m.visits == nil {
		m.statusBar.SetMessage("Recent locations not available")
		return
	}
	visits, err := m.visits.Recent(m.server, 0)
	if err != nil {
		m.statusBar.SetError(err)
		return
	}
	locs := make([]ui.Location, len(visits))
	for i, v := range visits {
		locs[i] = ui.Location{ID: v.ID, Label: v.Label, Path: v.Path, When: v.VisitedAt}
	}
	m.openPanel(ModeRecent, "Recent locations", locs)
}

func (m *Model) openPanel(mode Mode, title string, locs []ui.Location) {
	m.split.Open()
	m.layout()
	m.panel.SetEntries(title, locs)
	m.panel.Show()
	m.setMode(mode)
}

func (m *Model) removeSelectedLocation() {
	loc, ok := m.panel.Selected()
	if !ok {
		return
	}
	var err error
	switch m.mode {
	case ModeBookmarks:
		if m.bookmarks != nil {
			_, err = m.bookmarks.Remove(m.server, loc.Path)
		}
	case ModeRecent:
		if m.visits != nil {
			err = m.visits.Remove(loc.ID)
		}
	}
	if err != nil {
		m.statusBar.SetError(err)
		return
	}
	m.panel.RemoveSelected()
}
