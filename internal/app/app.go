// Package app is the fsurf terminal client: a bubbletea program that
// browses a listing server through a breadcrumb navigation controller.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/vidyasagar/fsurf/internal/client"
	"github.com/vidyasagar/fsurf/internal/explorer"
	"github.com/vidyasagar/fsurf/internal/listing"
	"github.com/vidyasagar/fsurf/internal/navigation"
	"github.com/vidyasagar/fsurf/internal/storage"
	"github.com/vidyasagar/fsurf/internal/theme"
	"github.com/vidyasagar/fsurf/internal/ui"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal    Mode = iota
	ModeCommand        // : command bar
	ModeFilter         // / filter bar
	ModeRecent         // recent locations panel
	ModeBookmarks      // bookmarks panel
	ModeHelp           // help pane
)

const defaultFetchTimeout = 30 * time.Second

// Querier is implemented by providers whose folder listings honour a query.
type Querier interface {
	Query() explorer.Query
	SetQuery(q explorer.Query)
}

// Options wires a Model to its provider and stores. Only Provider is
// required.
type Options struct {
	Provider navigation.Provider
	// Server keys bookmarks and visits; usually the service address.
	Server       string
	Bookmarks    *storage.BookmarkStore
	Visits       *storage.VisitStore
	Config       *storage.Config
	CacheSize    int
	CacheTTL     time.Duration
	FetchTimeout time.Duration
	Log          zerolog.Logger
}

// loadState is shared by every copy of the Model.
type loadState struct {
	cancel context.CancelFunc
}

// Model is the top-level bubbletea model for fsurf.
type Model struct {
	// UI components
	breadcrumb ui.BreadcrumbBar
	list       ui.ItemList
	panel      ui.LocationPanel
	split      ui.SplitPane
	help       ui.HelpView
	statusBar  ui.StatusBar
	commandBar ui.CommandBar
	spinner    spinner.Model

	ctrl    *navigation.Controller
	cache   *client.Cache
	querier Querier
	load    *loadState

	server       string
	bookmarks    *storage.BookmarkStore
	visits       *storage.VisitStore
	config       *storage.Config
	fetchTimeout time.Duration
	log          zerolog.Logger

	keys   KeyMap
	mode   Mode
	width  int
	height int
	ready  bool
}

// listingLoadedMsg carries a fetch result back to Update.
type listingLoadedMsg struct {
	gen     uint64
	action  navigation.Action
	from    string // path that was current when the fetch began
	listing *listing.Listing
	err     error
}

// New creates a Model.
func New(opts Options) Model {
	cache := client.NewCache(opts.Provider, opts.CacheSize, opts.CacheTTL)
	querier, _ := opts.Provider.(Querier)
	if querier != nil && opts.Config != nil {
		querier.SetQuery(opts.Config.Query())
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		breadcrumb:   ui.NewBreadcrumbBar(),
		list:         ui.NewItemList(),
		panel:        ui.NewLocationPanel(),
		split:        ui.NewSplitPane(),
		help:         ui.NewHelpView(helpMarkdown),
		statusBar:    ui.NewStatusBar(),
		commandBar:   ui.NewCommandBar(),
		spinner:      sp,
		ctrl:         navigation.NewController(cache),
		cache:        cache,
		querier:      querier,
		load:         &loadState{},
		server:       opts.Server,
		bookmarks:    opts.Bookmarks,
		visits:       opts.Visits,
		config:       opts.Config,
		fetchTimeout: opts.FetchTimeout,
		log:          opts.Log,
		keys:         DefaultKeyMap(),
		mode:         ModeNormal,
	}
}

// Controller exposes the navigation controller.
func (m Model) Controller() *navigation.Controller {
	return m.ctrl
}

// Init implements tea.Model. It loads the device root.
func (m Model) Init() tea.Cmd {
	cmd, err := m.begin(navigation.Root(), false)
	if err != nil {
		m.log.Error().Err(err).Msg("initial load")
		return nil
	}
	return cmd
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case listingLoadedMsg:
		return m.handleListingLoaded(msg)

	case spinner.TickMsg:
		if !m.ctrl.Snapshot().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.mode == ModeHelp {
		return m, m.help.Update(msg)
	}
	if m.commandBar.IsActive() {
		_, cmd := m.commandBar.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading fsurf..."
	}

	snap := m.ctrl.Snapshot()
	m.statusBar.SetLoading(snap.Loading, m.spinner.View())

	var main string
	if m.mode == ModeHelp {
		main = m.help.View()
	} else {
		main = m.split.Render(m.list.View(), m.panel.View())
	}

	sections := []string{m.breadcrumb.View(), main, m.statusBar.View()}
	if m.commandBar.IsActive() {
		sections = append(sections, m.commandBar.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.breadcrumb.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.commandBar.SetWidth(m.width)

	// breadcrumb + status bar
	bodyHeight := m.height - 2
	if m.commandBar.IsActive() {
		bodyHeight--
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	m.split.SetSize(m.width, bodyHeight)
	m.list.SetSize(m.split.MainSize())
	m.panel.SetSize(m.split.SideSize())
	m.help.SetSize(m.width, bodyHeight)
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	names := map[Mode]string{
		ModeNormal:    ui.ModeNormal,
		ModeCommand:   ui.ModeCommand,
		ModeFilter:    ui.ModeFilter,
		ModeRecent:    ui.ModeRecent,
		ModeBookmarks: ui.ModeBookmarks,
		ModeHelp:      ui.ModeHelp,
	}
	m.statusBar.SetMode(names[mode])
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.cancelLoad()
		return m, tea.Quit
	}

	switch m.mode {
	case ModeCommand, ModeFilter:
		return m.handleCommandMode(msg)
	case ModeRecent, ModeBookmarks:
		return m.handlePanelMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes keys while browsing the listing.
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "g" {
		m.list.ResetGKey()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelLoad()
		return m, tea.Quit

	case key.Matches(msg, m.keys.GotoTop):
		m.list.HandleGKey()
	case key.Matches(msg, m.keys.GotoBottom):
		m.list.GotoBottom()
	case key.Matches(msg, m.keys.Down):
		m.list.CursorDown()
	case key.Matches(msg, m.keys.Up):
		m.list.CursorUp()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.list.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.list.HalfPageUp()

	case key.Matches(msg, m.keys.Open):
		return m.openSelected()
	case key.Matches(msg, m.keys.Back):
		return m.dispatch(navigation.Back())
	case key.Matches(msg, m.keys.Forward):
		return m.dispatch(navigation.Forward())
	case key.Matches(msg, m.keys.Root):
		return m.dispatch(navigation.Root())
	case key.Matches(msg, m.keys.Jump):
		return m.jumpToSegment(int(msg.Runes[0] - '0'))
	case key.Matches(msg, m.keys.Reload):
		return m.reload()

	case key.Matches(msg, m.keys.ToggleHidden):
		return m.updateQuery(func(q *explorer.Query) { q.ShowHidden = !q.ShowHidden })
	case key.Matches(msg, m.keys.CycleSort):
		return m.updateQuery(func(q *explorer.Query) { q.SortBy = q.SortBy.Next() })
	case key.Matches(msg, m.keys.ReverseSort):
		return m.updateQuery(func(q *explorer.Query) { q.Reverse = !q.Reverse })
	case key.Matches(msg, m.keys.Filter):
		m.setMode(ModeFilter)
		m.commandBar.SetCompletions(m.completions())
		cmd := m.commandBar.Open(ui.CommandFilter)
		if m.querier != nil {
			m.commandBar.SetValue(m.querier.Query().Search)
		}
		m.layout()
		return m, cmd

	case key.Matches(msg, m.keys.Bookmark):
		m.toggleBookmark()
	case key.Matches(msg, m.keys.Bookmarks):
		m.showBookmarks()
	case key.Matches(msg, m.keys.Recent):
		m.showRecent()

	case key.Matches(msg, m.keys.CommandMode):
		m.setMode(ModeCommand)
		m.commandBar.SetCompletions(m.completions())
		cmd := m.commandBar.Open(ui.CommandEx)
		m.layout()
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.help.Show()
		m.setMode(ModeHelp)
	}

	m.syncStatusBar()
	return m, nil
}

// handleCommandMode processes keys while the command bar is open.
func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		result := m.commandBar.Submit()
		m.setMode(ModeNormal)
		m.layout()
		if result.Type == ui.CommandFilter {
			return m.updateQuery(func(q *explorer.Query) { q.Search = result.Value })
		}
		return m.executeCommand(result.Value)
	case tea.KeyEsc:
		m.commandBar.Close()
		m.setMode(ModeNormal)
		m.layout()
		return m, nil
	}

	_, cmd := m.commandBar.Update(msg)
	return m, cmd
}

// handlePanelMode processes keys while the recent or bookmarks panel is
// open.
func (m Model) handlePanelMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "g" {
		m.panel.ResetGKey()
	}

	switch msg.String() {
	case "j", "down":
		m.panel.CursorDown()
	case "k", "up":
		m.panel.CursorUp()
	case "g":
		m.panel.HandleGKey()
	case "G":
		m.panel.GotoBottom()
	case "ctrl+d":
		m.panel.HalfPageDown()
	case "ctrl+u":
		m.panel.HalfPageUp()

	case "d":
		m.removeSelectedLocation()

	case "enter":
		loc, ok := m.panel.Selected()
		m.closePanel()
		if !ok {
			return m, nil
		}
		if loc.Path == "" {
			return m.dispatch(navigation.Root())
		}
		return m.dispatch(navigation.Navigate(loc.Path, loc.Label))

	case "esc", "q", "R", "B":
		m.closePanel()
	}
	return m, nil
}

// handleHelpMode scrolls the help pane until it is dismissed.
func (m Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.help.Hide()
		m.setMode(ModeNormal)
		return m, nil
	}
	return m, m.help.Update(msg)
}

func (m *Model) closePanel() {
	m.panel.Hide()
	m.split.Close()
	m.setMode(ModeNormal)
	m.layout()
}

// syncStatusBar updates the status bar with the list position and query.
func (m *Model) syncStatusBar() {
	m.statusBar.SetPosition(m.list.Position())
	if m.querier == nil || m.ctrl.Snapshot().Target.Root {
		m.statusBar.SetQuery("")
		return
	}
	m.statusBar.SetQuery(describeQuery(m.querier.Query()))
}

// applyTheme switches the palette by name.
func (m *Model) applyTheme(name string) bool {
	if !theme.Set(name) {
		return false
	}
	if m.config != nil {
		m.config.Theme = name
		m.saveConfig()
	}
	return true
}

func (m *Model) saveConfig() {
	if m.config == nil {
		return
	}
	if err := m.config.Save(); err != nil {
		m.log.Warn().Err(err).Msg("saving config")
	}
}
