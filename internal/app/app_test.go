package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasagar/fsurf/internal/explorer"
	"github.com/vidyasagar/fsurf/internal/listing"
	"github.com/vidyasagar/fsurf/internal/navigation"
	"github.com/vidyasagar/fsurf/internal/storage"
)

// fakeFS serves a tiny tree and honours the query like the HTTP client.
type fakeFS struct {
	mu      sync.Mutex
	calls   map[string]int
	fail    map[string]error
	q       explorer.Query
	queries []explorer.Query
}

func newFakeFS() *fakeFS {
	return &fakeFS{calls: map[string]int{}, fail: map[string]error{}}
}

func (f *fakeFS) Query() explorer.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.q
}

func (f *fakeFS) SetQuery(q explorer.Query) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.q = q
}

func (f *fakeFS) Fetch(ctx context.Context, path string) (*listing.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[path]++
	f.queries = append(f.queries, f.q)
	if err := f.fail[path]; err != nil {
		return nil, err
	}
	switch path {
	case navigation.RootPath:
		return &listing.Listing{
			Device: &listing.Device{Hostname: "box", Platform: "Linux"},
			Drives: []listing.Drive{{Label: "/", Path: "/"}},
		}, nil
	case "/":
		return &listing.Listing{Folders: []listing.Folder{
			{Name: "home", Path: "/home"},
			{Name: "srv", Path: "/srv"},
		}}, nil
	case "/home":
		return &listing.Listing{
			Folders: []listing.Folder{{Name: "me", Path: "/home/me"}},
			Files:   []listing.File{{Name: "notes.txt", Path: "/home/notes.txt", Size: 10}},
		}, nil
	}
	return &listing.Listing{}, nil
}

func (f *fakeFS) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeFS) lastQuery() explorer.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

// collect runs cmd and any batched commands, returning their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds listing results back into the model until none are left.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		if lm, ok := msg.(listingLoadedMsg); ok {
			next, c := m.Update(lm)
			m = settle(t, next.(Model), c)
		}
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+h":
		return tea.KeyMsg{Type: tea.KeyCtrlH}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends keys and settles any navigation they start.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(keyMsg(k))
		m = next.(Model)
		if m.mode == ModeNormal {
			m = settle(t, m, cmd)
		}
	}
	return m
}

// typeText sends each rune of s to the open command bar.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		next, _ := m.Update(keyMsg(string(r)))
		m = next.(Model)
	}
	return m
}

func newTestModel(t *testing.T, fs *fakeFS, opts Options) Model {
	t.Helper()
	opts.Provider = fs
	opts.Log = zerolog.Nop()
	if opts.Server == "" {
		opts.Server = "box:8849"
	}
	m := New(opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	return settle(t, m, m.Init())
}

func trail(m Model) []string {
	return m.breadcrumb.Segments()
}

func selected(t *testing.T, m Model) string {
	t.Helper()
	it, ok := m.list.Selected()
	require.True(t, ok)
	return it.Path
}

func TestStartsAtDeviceRoot(t *testing.T) {
	fs := newFakeFS()
	m := newTestModel(t, fs, Options{})

	assert.Equal(t, []string{"box"}, trail(m))
	assert.Equal(t, "/", selected(t, m))
	assert.Equal(t, 1, fs.count(navigation.RootPath))
	assert.Contains(t, m.View(), "box")
}

func TestBrowseBackForwardJump(t *testing.T) {
	fs := newFakeFS()
	m := newTestModel(t, fs, Options{})

	m = press(t, m, "enter")
	assert.Equal(t, []string{"box", "1 /"}, trail(m))

	m = press(t, m, "j", "enter")
	assert.Equal(t, []string{"box", "1 /", "2 srv"}, trail(m))

	m = press(t, m, "H")
	assert.Equal(t, []string{"box", "1 /"}, trail(m))
	assert.Equal(t, "/srv", selected(t, m), "cursor returns to the folder we left")
	assert.Equal(t, 1, fs.count("/"), "back is served from the cache")

	m = press(t, m, "L")
	assert.Equal(t, []string{"box", "1 /", "2 srv"}, trail(m))

	m = press(t, m, "1")
	assert.Equal(t, []string{"box", "1 /"}, trail(m))
	assert.Equal(t, 2, m.ctrl.History().Len(), "jump keeps later entries")

	m = press(t, m, "~")
	assert.Equal(t, []string{"box"}, trail(m))
	assert.True(t, m.ctrl.Snapshot().Target.Root)

	m = press(t, m, "L", "L")
	assert.Equal(t, []string{"box", "1 /", "2 srv"}, trail(m))

	m = press(t, m, "left", "backspace")
	assert.Equal(t, []string{"box"}, trail(m))

	m = press(t, m, "H")
	assert.Equal(t, []string{"box"}, trail(m), "back at the root is a no-op")
}

func TestCtrlHGoesBack(t *testing.T) {
	fs := newFakeFS()
	m := newTestModel(t, fs, Options{})
	m = press(t, m, "enter", "enter")

	// Many terminals send ^H for Backspace.
	m = press(t, m, "ctrl+h")
	assert.Equal(t, []string{"box", "1 /"}, trail(m))
	assert.Equal(t, ModeNormal, m.mode)
}

func TestNavigatingTruncatesForwardEntries(t *testing.T) {
	fs := newFakeFS()
	m := newTestModel(t, fs, Options{})

	m = press(t, m, "enter", "j", "enter", "H")
	require.Equal(t, 2, m.ctrl.History().Len())

	m = press(t, m, "k", "enter")
	assert.Equal(t, []string{"box", "1 /", "2 home"}, trail(m))
	assert.Equal(t, 2, m.ctrl.History().Len())

	m = press(t, m, "L")
	assert.Equal(t, []string{"box", "1 /", "2 home"}, trail(m), "nothing left to step into")
}

func TestFilesAreNotNavigable(t *testing.T) {
	fs := newFakeFS()
	m := newTestModel(t, fs, Options{})
	m = press(t, m, "enter", "enter", "G", "enter")

	assert.Equal(t, []string{"box", "1 /", "2 home"}, trail(m))
	assert.Contains(t, m.statusBar.Message(), "notes.txt is a file")
}

func TestFailedFetchKeepsState(t *testing.T) {
	fs := newFakeFS()
	fs.fail["/srv"] = errors.New("connection refused")
	m := newTestModel(t, fs, Options{})

	m = press(t, m, "enter", "j", "enter")
	assert.Equal(t, []string{"box", "1 /"}, trail(m))
	assert.Equal(t, "/srv", selected(t, m))
	assert.Contains(t, m.statusBar.Message(), "listing unavailable for /srv")
	assert.False(t, m.ctrl.Snapshot().Loading)

	var unavailable *navigation.ListingUnavailableError
	assert.True(t, errors.As(m.ctrl.Snapshot().Err, &unavailable))

	delete(fs.fail, "/srv")
	m = press(t, m, "enter")
	assert.Equal(t, []string{"box", "1 /", "2 srv"}, trail(m))
	assert.Empty(t, m.statusBar.Message())
}

func TestStaleResponseIsDropped(t *testing.T) {
	fs := newFakeFS()
	m := newTestModel(t, fs, Options{})
	m = press(t, m, "enter")

	next, slow := m.Update(keyMsg("enter")) // into /home, left in flight
	m = next.(Model)
	next, fast := m.Update(keyMsg("~"))
	m = next.(Model)

	m = settle(t, m, fast)
	m = settle(t, m, slow)

	assert.Equal(t, []string{"box"}, trail(m))
	assert.True(t, m.ctrl.Snapshot().Target.Root)
	assert.Equal(t, 1, fs.count("/home"))

	m = press(t, m, "L", "L")
	assert.Equal(t, []string{"box", "1 /", "2 home"}, trail(m), "the interrupted descent is kept as forward history")
}

func TestQuickBackPressesAddUp(t *testing.T) {
	fs := newFakeFS()
	m := newTestModel(t, fs, Options{})
	m = press(t, m, "enter", "enter")
	require.Equal(t, []string{"box", "1 /", "2 home"}, trail(m))

	next, first := m.Update(keyMsg("H"))
	m = next.(Model)
	next, second := m.Update(keyMsg("H"))
	m = next.(Model)

	m = settle(t, m, first)
	m = settle(t, m, second)
	assert.Equal(t, []string{"box"}, trail(m))
	assert.True(t, m.ctrl.Snapshot().Target.Root)
	assert.Equal(t, "/", selected(t, m), "cursor lands on the drive we left")
}

func TestQueryChangeDuringDescentKeepsIt(t *testing.T) {
	fs := newFakeFS()
	m := newTestModel(t, fs, Options{})
	m = press(t, m, "enter")

	next, descend := m.Update(keyMsg("enter"))
	m = next.(Model)
	next, resort := m.Update(keyMsg("s"))
	m = next.(Model)

	m = settle(t, m, descend)
	m = settle(t, m, resort)
	assert.Equal(t, []string{"box", "1 /", "2 home"}, trail(m))
	assert.Equal(t, explorer.SortBySize, fs.lastQuery().SortBy)
	assert.Equal(t, 2, fs.count("/home"))
	assert.Empty(t, m.statusBar.Message())
}

func TestJumpKeyDuringFetchUsesLatestTrail(t *testing.T) {
	fs := newFakeFS()
	m := newTestModel(t, fs, Options{})
	m = press(t, m, "enter")

	next, descend := m.Update(keyMsg("enter"))
	m = next.(Model)
	next, jump := m.Update(keyMsg("2"))
	m = next.(Model)
	assert.Empty(t, m.statusBar.Message(), "breadcrumb 2 exists once the descent is counted")

	m = settle(t, m, descend)
	m = settle(t, m, jump)
	assert.Equal(t, []string{"box", "1 /", "2 home"}, trail(m))
}

func TestJumpOutOfRange(t *testing.T) {
	fs := newFakeFS()
	m := newTestModel(t, fs, Options{})

	m = press(t, m, "5")
	assert.Equal(t, "No breadcrumb 5", m.statusBar.Message())

	next, cmd := m.executeCommand("jump 9")
	m = settle(t, next.(Model), cmd)
	assert.Contains(t, m.statusBar.Message(), navigation.ErrIndexOutOfRange.Error())
}

func TestReloadBypassesCache(t *testing.T) {
	fs := newFakeFS()
	m := newTestModel(t, fs, Options{})
	m = press(t, m, "enter")
	require.Equal(t, 1, fs.count("/"))

	m = press(t, m, "r")
	assert.Equal(t, 2, fs.count("/"))
	assert.Equal(t, []string{"box", "1 /"}, trail(m))
}

func TestQueryKeysReloadFolder(t *testing.T) {
	fs := newFakeFS()
	m := newTestModel(t, fs, Options{})
	m = press(t, m, "enter")

	m = press(t, m, ".")
	assert.True(t, fs.lastQuery().ShowHidden)

	m = press(t, m, "s")
	assert.Equal(t, explorer.SortBySize, fs.lastQuery().SortBy)

	m = press(t, m, "S")
	assert.True(t, fs.lastQuery().Reverse)

	next, _ := m.Update(keyMsg("/"))
	m = next.(Model)
	require.Equal(t, ModeFilter, m.mode)
	m = typeText(t, m, "log")
	m = press(t, m, "enter")
	assert.Equal(t, "log", fs.lastQuery().Search)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 5, fs.count("/"))
}

func TestCommandMode(t *testing.T) {
	fs := newFakeFS()
	m := newTestModel(t, fs, Options{})
	m = press(t, m, "enter", "enter")

	next, _ := m.Update(keyMsg(":"))
	m = next.(Model)
	require.Equal(t, ModeCommand, m.mode)
	m = typeText(t, m, "jump 0")
	m = press(t, m, "enter")
	assert.Equal(t, []string{"box"}, trail(m))

	next, cmd := m.executeCommand("open /home/")
	m = settle(t, next.(Model), cmd)
	assert.Equal(t, []string{"box", "1 home"}, trail(m))

	next, _ = m.executeCommand("sort colour")
	m = next.(Model)
	assert.Contains(t, m.statusBar.Message(), "unknown sort key")

	next, _ = m.executeCommand("frobnicate")
	m = next.(Model)
	assert.Equal(t, "Unknown command: frobnicate", m.statusBar.Message())

	_, cmd = m.executeCommand("q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestOpenCompletesFromListing(t *testing.T) {
	fs := newFakeFS()
	m := newTestModel(t, fs, Options{})
	m = press(t, m, "enter")

	next, _ := m.Update(keyMsg(":"))
	m = next.(Model)
	m = typeText(t, m, "op")
	next, _ = m.Update(keyMsg("tab"))
	m = next.(Model)
	m = typeText(t, m, "/h")
	next, _ = m.Update(keyMsg("tab"))
	m = next.(Model)
	require.Equal(t, "open /home", m.commandBar.Value())

	m = press(t, m, "enter")
	assert.Equal(t, []string{"box", "1 /", "2 home"}, trail(m))
}

func TestBookmarksAndRecent(t *testing.T) {
	db, err := storage.OpenDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	fs := newFakeFS()
	bookmarks := storage.NewBookmarkStore(db)
	visits := storage.NewVisitStore(db, 0)
	m := newTestModel(t, fs, Options{Bookmarks: bookmarks, Visits: visits})

	m = press(t, m, "enter", "enter", "b")
	assert.True(t, bookmarks.Has("box:8849", "/home"))
	assert.Equal(t, "Bookmarked: home", m.statusBar.Message())

	recent, err := visits.Recent("box:8849", 0)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "/home", recent[0].Path)
	assert.Equal(t, "box", recent[2].Label)

	m = press(t, m, "~", "B")
	require.Equal(t, ModeBookmarks, m.mode)
	assert.True(t, m.split.IsOpen())
	m = press(t, m, "enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, []string{"box", "1 home"}, trail(m))

	m = press(t, m, "R")
	require.Equal(t, ModeRecent, m.mode)
	loc, ok := m.panel.Selected()
	require.True(t, ok)
	assert.Equal(t, "/home", loc.Path)
	m = press(t, m, "esc")
	assert.Equal(t, ModeNormal, m.mode)
	assert.False(t, m.split.IsOpen())

	m = press(t, m, "b")
	assert.False(t, bookmarks.Has("box:8849", "/home"))
}

func TestDescribeQueryAndBaseName(t *testing.T) {
	assert.Equal(t, "name ↑", describeQuery(explorer.Query{}))
	assert.Equal(t, "size ↓ hidden /log", describeQuery(explorer.Query{
		SortBy: explorer.SortBySize, Reverse: true, ShowHidden: true, Search: "log",
	}))

	assert.Equal(t, "me", baseName("/home/me/"))
	assert.Equal(t, "Users", baseName(`C:\Users`))
	assert.Equal(t, "/", baseName("/"))
	assert.Equal(t, "tmp", baseName("tmp"))
}

func TestHelpMode(t *testing.T) {
	m := newTestModel(t, newFakeFS(), Options{})
	m = press(t, m, "?")
	require.Equal(t, ModeHelp, m.mode)
	assert.Contains(t, m.View(), "breadcrumb")
	m = press(t, m, "esc")
	assert.Equal(t, ModeNormal, m.mode)
}
