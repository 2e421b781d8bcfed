package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasagar/fsurf/internal/listing"
	"github.com/vidyasagar/fsurf/internal/navigation"
)

func folderListing(n int) *listing.Listing {
	l := &listing.Listing{}
	for i := 0; i < n; i++ {
		name := string(rune('a' + i))
		l.Folders = append(l.Folders, listing.Folder{Name: name, Path: "/" + name, Size: listing.FolderSize{1, 2}})
	}
	l.Files = append(l.Files, listing.File{Name: "z.txt", Path: "/z.txt", Size: 1536})
	return l
}

func TestItemsOrder(t *testing.T) {
	root := &listing.Listing{
		Device: &listing.Device{Hostname: "box"},
		Drives: []listing.Drive{{Letter: "C", Label: "Local Disk", Path: `C:\`}},
	}
	items := Items(root)
	require.Len(t, items, 1)
	assert.Equal(t, ItemDrive, items[0].Kind)
	assert.Equal(t, "C: Local Disk", items[0].Name)
	assert.True(t, items[0].Navigable())

	items = Items(folderListing(2))
	require.Len(t, items, 3)
	assert.Equal(t, []ItemKind{ItemFolder, ItemFolder, ItemFile}, []ItemKind{items[0].Kind, items[1].Kind, items[2].Kind})
	assert.False(t, items[2].Navigable())
	assert.Equal(t, "File Size: 1.5 KiB", items[2].Detail)

	assert.Nil(t, Items(nil))
}

func TestItemListCursor(t *testing.T) {
	il := NewItemList()
	il.SetSize(40, 8) // four rows on screen
	il.SetListing(folderListing(9))
	require.Equal(t, 10, il.Len())

	it, ok := il.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", it.Name)

	il.GotoBottom()
	assert.Equal(t, "10/10", il.Position())
	it, _ = il.Selected()
	assert.Equal(t, "z.txt", it.Name)

	il.HalfPageUp()
	assert.Equal(t, 7, il.SelectedIndex())

	assert.False(t, il.HandleGKey())
	assert.True(t, il.HandleGKey())
	assert.Equal(t, 0, il.SelectedIndex())

	il.CursorUp()
	assert.Equal(t, 0, il.SelectedIndex())
	il.CursorDown()
	il.HalfPageDown()
	assert.Equal(t, 3, il.SelectedIndex())

	assert.True(t, il.Select("/e"))
	assert.Equal(t, 4, il.SelectedIndex())
	assert.False(t, il.Select("/nope"))

	il.SetListing(nil)
	_, ok = il.Selected()
	assert.False(t, ok)
	assert.Equal(t, "0/0", il.Position())
}

func TestItemListViewWindow(t *testing.T) {
	il := NewItemList()
	il.SetSize(40, 4)
	il.SetListing(folderListing(5))
	il.GotoBottom()

	out := il.View()
	assert.Contains(t, out, "z.txt")
	assert.NotContains(t, out, "▸ a")
}

func TestBreadcrumbBar(t *testing.T) {
	b := NewBreadcrumbBar()
	b.SetWidth(80)
	b.SetHost("box")

	h := navigation.NewHistory().Push("C:", `C:\`).Push("Users", `C:\Users`).Push("me", `C:\Users\me`).ShowThrough(1)
	b.SetHistory(h)

	assert.Equal(t, []string{"box", "1 C:", "2 Users"}, b.Segments())
	out := b.View()
	assert.Contains(t, out, "box")
	assert.Contains(t, out, "Users")
	assert.Contains(t, out, "+1")
	assert.NotContains(t, out, "me")

	b.SetHost("")
	assert.Equal(t, "~", b.Segments()[0])
}

func TestBreadcrumbCollapses(t *testing.T) {
	b := NewBreadcrumbBar()
	b.SetWidth(30)
	b.SetHost("box")
	h := navigation.NewHistory()
	for _, seg := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		h = h.Push(seg, "/"+seg)
	}
	b.SetHistory(h)

	out := b.View()
	assert.Contains(t, out, "…")
	assert.Contains(t, out, "echo")
	assert.NotContains(t, out, "alpha")
}

func TestLocationPanel(t *testing.T) {
	lp := NewLocationPanel()
	lp.SetSize(30, 20)
	lp.SetEntries("Recent", []Location{
		{Label: "box", Path: ""},
		{Label: "home", Path: "/home", When: time.Now()},
		{Label: "tmp", Path: "/tmp"},
	})
	lp.Show()
	require.True(t, lp.IsVisible())
	assert.Equal(t, "Recent", lp.Title())

	lp.CursorDown()
	sel, ok := lp.Selected()
	require.True(t, ok)
	assert.Equal(t, "/home", sel.Path)

	out := lp.View()
	assert.Contains(t, out, "device root")
	assert.Contains(t, out, "now")

	lp.GotoBottom()
	lp.RemoveSelected()
	sel, _ = lp.Selected()
	assert.Equal(t, "home", sel.Label)

	lp.Hide()
	assert.Empty(t, lp.View())
}

func TestStatusBar(t *testing.T) {
	s := NewStatusBar()
	s.SetWidth(60)
	assert.Equal(t, ModeNormal, s.Mode())

	s.SetError(errors.New("listing unavailable"))
	assert.Contains(t, s.View(), "listing unavailable")

	s.SetLoading(true, "⣾")
	assert.Contains(t, s.View(), "Loading")
	assert.NotContains(t, s.View(), "listing unavailable")

	s.SetLoading(false, "")
	s.SetError(nil)
	assert.Empty(t, s.Message())
}

func TestSplitPane(t *testing.T) {
	sp := NewSplitPane()
	sp.SetSize(100, 10)
	w, h := sp.MainSize()
	assert.Equal(t, 100, w)
	assert.Equal(t, 10, h)
	assert.Equal(t, "main", sp.Render("main", "side"))

	sp.Open()
	w1, _ := sp.MainSize()
	w2, _ := sp.SideSize()
	assert.Equal(t, 100, w1+w2+1)
	out := sp.Render("main", "side")
	assert.Contains(t, out, "│")
	assert.Equal(t, 10, strings.Count(out, "\n")+1)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "", truncate("abc", -1))
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Keys\n\n- `H` back\n", 40)
	require.NoError(t, err)
	assert.Contains(t, out, "Keys")
	assert.Contains(t, out, "back")
}

func TestCommandBarCompletion(t *testing.T) {
	cb := NewCommandBar()
	cb.SetWidth(80)
	cb.SetCompletions(Completions{
		Commands:     []string{"back", "bookmark", "bookmarks", "open"},
		PathCommands: []string{"open"},
		Paths:        []string{"/home", "/Home2", "/srv"},
		Names:        []string{"notes.txt", "Notebook"},
	})
	cb.Open(CommandEx)

	cb.SetValue("bo")
	assert.Equal(t, 2, cb.Complete())
	assert.Equal(t, "bookmark", cb.Value())
	assert.Contains(t, cb.View(), "2 matches")

	cb.SetValue("op")
	assert.Equal(t, 1, cb.Complete())
	assert.Equal(t, "open ", cb.Value(), "a unique command gets a trailing space")

	cb.SetValue("open /s")
	assert.Equal(t, 1, cb.Complete())
	assert.Equal(t, "open /srv", cb.Value())

	cb.SetValue("open /h")
	assert.Equal(t, 2, cb.Complete())
	assert.Equal(t, "open /home", cb.Value())

	cb.SetValue("theme g")
	assert.Equal(t, 0, cb.Complete(), "only path commands complete arguments")
	assert.Equal(t, "theme g", cb.Value())

	cb.Close()
	cb.Open(CommandFilter)
	cb.SetValue("note")
	assert.Equal(t, 2, cb.Complete())
	assert.Equal(t, "note", cb.Value())
	cb.SetValue("noteS")
	assert.Equal(t, 1, cb.Complete())
	assert.Equal(t, "notes.txt", cb.Value())
}

func TestCommandBarRecall(t *testing.T) {
	cb := NewCommandBar()
	for _, v := range []string{"root", "root", "jump 2"} {
		cb.Open(CommandEx)
		cb.SetValue(v)
		res := cb.Submit()
		assert.Equal(t, CommandResult{Type: CommandEx, Value: v}, res)
	}
	assert.False(t, cb.IsActive())

	cb.Open(CommandEx)
	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	cb.Update(up)
	assert.Equal(t, "jump 2", cb.Value())
	cb.Update(up)
	assert.Equal(t, "root", cb.Value())
	cb.Update(up)
	assert.Equal(t, "root", cb.Value(), "repeats are stored once")
	cb.Update(down)
	assert.Equal(t, "jump 2", cb.Value())
	cb.Update(down)
	assert.Equal(t, "", cb.Value())
}
