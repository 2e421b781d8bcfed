// Package navigation keeps breadcrumb history for a filesystem browser and
// coordinates it with listing fetches.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vidyasagar/fsurf/internal/listing"
)

// ErrStale is returned by Resolve for a response that a newer navigation
// has superseded.
var ErrStale = errors.New("stale listing response")

// Provider fetches the listing for a path. RootPath asks for the device root.
type Provider interface {
	Fetch(ctx context.Context, path string) (*listing.Listing, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, path string) (*listing.Listing, error)

// Fetch calls f.
func (f ProviderFunc) Fetch(ctx context.Context, path string) (*listing.Listing, error) {
	return f(ctx, path)
}

// ListingUnavailableError reports a fetch that failed. The controller's
// committed state is unchanged when it is returned.
type ListingUnavailableError struct {
	Target Target
	Err    error
}

func (e *ListingUnavailableError) Error() string {
	if e.Target.Root {
		return fmt.Sprintf("listing unavailable for device root: %v", e.Err)
	}
	return fmt.Sprintf("listing unavailable for %s: %v", e.Target.Path, e.Err)
}

func (e *ListingUnavailableError) Unwrap() error { return e.Err }

// Request is a listing fetch the caller must perform and hand back to
// Resolve together with Gen.
type Request struct {
	Gen    uint64
	Action Action
	Target Target
}

// State is a snapshot of the controller.
type State struct {
	History History
	Listing *listing.Listing
	// Device is the most recently seen device. It survives folder
	// navigations so the breadcrumb can keep showing the hostname.
	Device *listing.Device
	Target Target
	Err    error
	// Loading is set between Begin and the matching Resolve.
	Loading bool
}

// Controller owns the breadcrumb history and the current listing. Each
// navigation is an atomic transition: it is computed by Begin and committed
// by Resolve only once its listing has arrived.
type Controller struct {
	mu       sync.Mutex
	provider Provider
	state    State
	gen      uint64
	pending  *Transition
}

// NewController creates a controller with an empty history.
func NewController(p Provider) *Controller {
	return &Controller{
		provider: p,
		state:    State{Target: Target{Root: true}},
	}
}

// Snapshot returns the committed state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// History returns the committed history.
func (c *Controller) History() History {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.History
}

// Begin reduces a against the latest history, the pending transition's
// when one is in flight, and records the result as the new pending
// transition. Quick successive actions therefore add up even though only
// the last one's listing is committed. ok is false for a no-op.
func (c *Controller) Begin(a Action) (req Request, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, _ := c.latest()
	t, err := Reduce(h, a)
	if err != nil {
		return Request{}, false, err
	}
	if t.NoOp {
		return Request{}, false, nil
	}

	c.gen++
	c.pending = &t
	c.state.Loading = true
	return Request{Gen: c.gen, Action: a, Target: t.Target}, true, nil
}

// Latest returns the history and target the controller is heading to: the
// pending transition's while a fetch is in flight, the committed ones
// otherwise.
func (c *Controller) Latest() (History, Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest()
}

func (c *Controller) latest() (History, Target) {
	if c.pending != nil {
		return c.pending.History, c.pending.Target
	}
	return c.state.History, c.state.Target
}

// Resolve completes the request with generation gen. It returns ErrStale
// when a newer request exists and a *ListingUnavailableError when fetchErr
// is set; in both cases the committed state is left as it was.
func (c *Controller) Resolve(gen uint64, l *listing.Listing, fetchErr error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.pending == nil {
		return ErrStale
	}
	t := *c.pending
	c.pending = nil
	c.state.Loading = false

	if fetchErr == nil && l == nil {
		fetchErr = errors.New("empty listing")
	}
	if fetchErr != nil {
		err := &ListingUnavailableError{Target: t.Target, Err: fetchErr}
		c.state.Err = err
		return err
	}

	c.state.History = t.History
	c.state.Listing = l
	c.state.Target = t.Target
	c.state.Err = nil
	if l.Device != nil {
		d := *l.Device
		c.state.Device = &d
	}
	return nil
}

// Do runs a through the provider synchronously. A no-op returns nil
// without fetching.
func (c *Controller) Do(ctx context.Context, a Action) error {
	req, ok, err := c.Begin(a)
	if err != nil || !ok {
		return err
	}
	l, fetchErr := c.provider.Fetch(ctx, req.Target.FetchPath())
	return c.Resolve(req.Gen, l, fetchErr)
}

// GoToRoot shows the device root and hides every breadcrumb.
func (c *Controller) GoToRoot(ctx context.Context) error {
	return c.Do(ctx, Root())
}

// NavigateInto loads path. A non-empty label records a breadcrumb entry.
func (c *Controller) NavigateInto(ctx context.Context, path, label string) error {
	return c.Do(ctx, Navigate(path, label))
}

// JumpTo rewinds to breadcrumb entry i, or the root for -1.
func (c *Controller) JumpTo(ctx context.Context, i int) error {
	return c.Do(ctx, Jump(i))
}

// Step moves one entry backward (-1) or forward (+1).
func (c *Controller) Step(ctx context.Context, direction int) error {
	return c.Do(ctx, Step(direction))
}

// Reload fetches the current location again without touching the history.
func (c *Controller) Reload(ctx context.Context) error {
	return c.Do(ctx, c.ReloadAction())
}

// ReloadAction returns the action that refreshes the latest location,
// which is the pending target while a fetch is in flight.
func (c *Controller) ReloadAction() Action {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, target := c.latest()
	if target.Root {
		return Root()
	}
	return Navigate(target.Path, "")
}
