package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidyasagar/fsurf/internal/listing"
	"github.com/vidyasagar/fsurf/internal/navigation"
	"github.com/vidyasagar/fsurf/internal/ui"
)

// begin starts action a and returns the command that fetches its listing,
// or nil for a no-op. A begin while a fetch is in flight builds on that
// fetch's destination and cancels it; the controller discards its response
// if it still arrives.
func (m Model) begin(a navigation.Action, refresh bool) (tea.Cmd, error) {
	_, latest := m.ctrl.Latest()
	from := latest.Path
	req, ok, err := m.ctrl.Begin(a)
	if err != nil || !ok {
		return nil, err
	}

	m.cancelLoad()
	ctx, cancel := context.WithTimeout(context.Background(), m.fetchTimeout)
	m.load.cancel = cancel

	m.log.Debug().
		Uint64("gen", req.Gen).
		Stringer("action", req.Action).
		Str("path", req.Target.FetchPath()).
		Msg("navigation started")

	cache := m.cache
	path := req.Target.FetchPath()
	fetch := func() tea.Msg {
		defer cancel()
		var l *listing.Listing
		var err error
		if refresh {
			l, err = cache.Refresh(ctx, path)
		} else {
			l, err = cache.Fetch(ctx, path)
		}
		return listingLoadedMsg{gen: req.Gen, action: a, from: from, listing: l, err: err}
	}
	return tea.Batch(fetch, m.spinner.Tick), nil
}

// dispatch runs a through the controller and reports reducer errors.
func (m Model) dispatch(a navigation.Action) (tea.Model, tea.Cmd) {
	return m.start(a, false)
}

func (m Model) start(a navigation.Action, refresh bool) (tea.Model, tea.Cmd) {
	cmd, err := m.begin(a, refresh)
	if err != nil {
		m.statusBar.SetError(err)
		return m, nil
	}
	if cmd != nil {
		m.statusBar.SetMessage("")
	}
	return m, cmd
}

// reload fetches the current location again, bypassing the cache.
func (m Model) reload() (tea.Model, tea.Cmd) {
	return m.start(m.ctrl.ReloadAction(), true)
}

func (m Model) cancelLoad() {
	if m.load.cancel != nil {
		m.load.cancel()
		m.load.cancel = nil
	}
}

// handleListingLoaded commits a fetch result through the controller.
func (m Model) handleListingLoaded(msg listingLoadedMsg) (tea.Model, tea.Cmd) {
	err := m.ctrl.Resolve(msg.gen, msg.listing, msg.err)
	switch {
	case errors.Is(err, navigation.ErrStale):
		m.log.Debug().Uint64("gen", msg.gen).Msg("stale listing dropped")
		return m, nil
	case err != nil:
		m.log.Warn().Err(err).Stringer("action", msg.action).Msg("navigation failed")
		m.statusBar.SetError(err)
		return m, nil
	}

	snap := m.ctrl.Snapshot()
	if snap.Device != nil {
		m.breadcrumb.SetHost(snap.Device.Hostname)
	}
	m.breadcrumb.SetHistory(snap.History)

	m.list.SetListing(snap.Listing)
	if snap.Target.Root {
		m.list.SetEmptyText("No drives reported.")
	} else {
		m.list.SetEmptyText("Empty folder.")
	}
	// Keep the cursor on the folder we came back out of.
	if msg.from != "" {
		m.list.Select(msg.from)
	}
	m.syncStatusBar()
	m.recordVisit(snap)
	return m, nil
}

// openSelected descends into the drive or folder under the cursor.
func (m Model) openSelected() (tea.Model, tea.Cmd) {
	it, ok := m.list.Selected()
	if !ok {
		return m, nil
	}
	if !it.Navigable() {
		m.statusBar.SetMessage(fmt.Sprintf("%s is a file", it.Name))
		return m, nil
	}

	label := it.Name
	if it.Kind == ui.ItemDrive {
		platform := ""
		if d := m.ctrl.Snapshot().Device; d != nil {
			platform = d.Platform
		}
		label = listing.DriveLabel(platform, it.Drive)
	}
	return m.dispatch(navigation.Navigate(it.Path, label))
}

// jumpToSegment jumps to the n-th visible breadcrumb segment (1-based) of
// the latest history.
func (m Model) jumpToSegment(n int) (tea.Model, tea.Cmd) {
	h, _ := m.ctrl.Latest()
	trail := h.Trail()
	if n < 1 || n > len(trail) {
		m.statusBar.SetMessage(fmt.Sprintf("No breadcrumb %d", n))
		return m, nil
	}
	return m.dispatch(navigation.Jump(n - 1))
}

// locationLabel names the committed location for bookmarks and visits.
func locationLabel(s navigation.State) string {
	if e, ok := s.History.Current(); ok && !s.Target.Root {
		return e.Label
	}
	if s.Device != nil && s.Device.Hostname != "" {
		return s.Device.Hostname
	}
	if s.Target.Root {
		return "device root"
	}
	return s.Target.Path
}

func (m *Model) recordVisit(s navigation.State) {
	if m.visits == nil {
		return
	}
	if err := m.visits.Record(m.server, s.Target.Path, locationLabel(s)); err != nil {
		m.log.Warn().Err(err).Msg("recording visit")
	}
}
