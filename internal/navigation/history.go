package navigation

// Entry is one recorded navigation step.
type Entry struct {
	Label   string `json:"label"`
	Path    string `json:"path"`
	Visible bool   `json:"visible"`
}

// History is an immutable breadcrumb history. Every method that changes it
// returns a new History; the receiver's backing array is never written.
//
// Visible entries always form a prefix of the history. Invisible entries
// after that prefix are the forward history.
type History struct {
	entries []Entry
}

// NewHistory builds a history from entries. The visible flags are
// normalised so the visible entries form a prefix: everything after the
// first invisible entry is hidden.
func NewHistory(entries ...Entry) History {
	out := make([]Entry, len(entries))
	copy(out, entries)
	hidden := false
	for i := range out {
		if !out[i].Visible {
			hidden = true
		}
		if hidden {
			out[i].Visible = false
		}
	}
	return History{entries: out}
}

// Len returns the number of entries, visible or not.
func (h History) Len() int {
	return len(h.entries)
}

// At returns the entry at index i.
func (h History) At(i int) (Entry, bool) {
	if i < 0 || i >= len(h.entries) {
		return Entry{}, false
	}
	return h.entries[i], true
}

// Entries returns a copy of all entries.
func (h History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Trail returns a copy of the visible entries, i.e. the breadcrumb trail.
func (h History) Trail() []Entry {
	n := h.LastVisible() + 1
	out := make([]Entry, n)
	copy(out, h.entries[:n])
	return out
}

// FirstInvisible returns the index of the first invisible entry, or -1.
func (h History) FirstInvisible() int {
	for i, e := range h.entries {
		if !e.Visible {
			return i
		}
	}
	return -1
}

// LastVisible returns the index of the last visible entry, or -1 when
// nothing is visible (the root view).
func (h History) LastVisible() int {
	last := -1
	for i, e := range h.entries {
		if !e.Visible {
			break
		}
		last = i
	}
	return last
}

// Current returns the entry the trail ends on. ok is false at the root.
func (h History) Current() (Entry, bool) {
	return h.At(h.LastVisible())
}

// CanGoBack reports whether a backward step would move.
func (h History) CanGoBack() bool {
	return h.LastVisible() >= 0
}

// CanGoForward reports whether a forward step would move.
func (h History) CanGoForward() bool {
	return h.FirstInvisible() >= 0
}

// Valid reports whether the visible entries form a prefix.
func (h History) Valid() bool {
	seenHidden := false
	for _, e := range h.entries {
		if !e.Visible {
			seenHidden = true
		} else if seenHidden {
			return false
		}
	}
	return true
}

// HideAll returns a copy with every entry invisible.
func (h History) HideAll() History {
	return h.showThrough(-1)
}

// ShowThrough returns a copy where entries 0..i are visible and every entry
// after i is invisible. i == -1 hides everything.
func (h History) ShowThrough(i int) History {
	if i >= len(h.entries) {
		i = len(h.entries) - 1
	}
	return h.showThrough(i)
}

func (h History) showThrough(i int) History {
	out := make([]Entry, len(h.entries))
	for j, e := range h.entries {
		e.Visible = j <= i
		out[j] = e
	}
	return History{entries: out}
}

// Push records a labelled navigation. Stale forward history, everything
// from the first invisible entry on, is discarded before the new visible
// entry is appended.
func (h History) Push(label, path string) History {
	keep := len(h.entries)
	if i := h.FirstInvisible(); i >= 0 {
		keep = i
	}
	out := make([]Entry, keep, keep+1)
	copy(out, h.entries[:keep])
	out = append(out, Entry{Label: label, Path: path, Visible: true})
	return History{entries: out}
}
