package navigation

import (
	"errors"
	"fmt"
)

// RootPath is the path a Provider is asked for when the target is the
// device root.
const RootPath = ""

var (
	// ErrIndexOutOfRange is returned for a jump outside the history.
	ErrIndexOutOfRange = errors.New("breadcrumb index out of range")
	// ErrInvalidDirection is returned for a step other than +1 or -1.
	ErrInvalidDirection = errors.New("step direction must be +1 or -1")
)

// Kind identifies an action.
type Kind int

const (
	KindRoot     Kind = iota
	KindNavigate      // descend into a drive or folder, or reload a path
	KindJump          // rewind to a breadcrumb entry
	KindStep          // one step backward or forward
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindNavigate:
		return "navigate"
	case KindJump:
		return "jump"
	case KindStep:
		return "step"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Action is a request to move through the history.
type Action struct {
	Kind      Kind
	Path      string
	Label     string
	Index     int
	Direction int
}

// Root returns the action that shows the device root.
func Root() Action { return Action{Kind: KindRoot} }

// Navigate returns the action that descends into path. An empty label
// reloads path without recording a breadcrumb.
func Navigate(path, label string) Action {
	return Action{Kind: KindNavigate, Path: path, Label: label}
}

// Jump returns the action that rewinds to history entry i; -1 is the root.
func Jump(i int) Action { return Action{Kind: KindJump, Index: i} }

// Step returns the action that moves one entry backward (-1) or forward (+1).
func Step(direction int) Action { return Action{Kind: KindStep, Direction: direction} }

// Back is Step(-1).
func Back() Action { return Step(-1) }

// Forward is Step(+1).
func Forward() Action { return Step(+1) }

func (a Action) String() string {
	switch a.Kind {
	case KindNavigate:
		return fmt.Sprintf("navigate %q (%s)", a.Path, a.Label)
	case KindJump:
		return fmt.Sprintf("jump %d", a.Index)
	case KindStep:
		return fmt.Sprintf("step %+d", a.Direction)
	}
	return a.Kind.String()
}

// Target is the location whose listing a transition needs.
type Target struct {
	Root bool
	Path string
}

// FetchPath returns the path to hand to a Provider.
func (t Target) FetchPath() string {
	if t.Root {
		return RootPath
	}
	return t.Path
}

// Transition is the outcome of reducing an action.
type Transition struct {
	History History
	Target  Target
	// NoOp is set when the action does not move, e.g. stepping forward at
	// the newest entry. History and Target are then zero.
	NoOp bool
}

// Reduce applies a to h. It never mutates h.
func Reduce(h History, a Action) (Transition, error) {
	switch a.Kind {
	case KindRoot:
		return toRoot(h), nil

	case KindNavigate:
		next := h
		if a.Label != "" {
			next = h.Push(a.Label, a.Path)
		}
		return Transition{History: next, Target: Target{Path: a.Path}}, nil

	case KindJump:
		return jump(h, a.Index)

	case KindStep:
		switch a.Direction {
		case 1:
			i := h.FirstInvisible()
			if i == -1 {
				return Transition{NoOp: true}, nil
			}
			return Transition{
				History: h.ShowThrough(i),
				Target:  Target{Path: h.entries[i].Path},
			}, nil
		case -1:
			i := h.LastVisible()
			switch i {
			case -1:
				return Transition{NoOp: true}, nil
			case 0:
				return toRoot(h), nil
			default:
				return jump(h, i-1)
			}
		default:
			return Transition{}, fmt.Errorf("%w: got %d", ErrInvalidDirection, a.Direction)
		}
	}
	return Transition{}, fmt.Errorf("unknown action %s", a.Kind)
}

func toRoot(h History) Transition {
	return Transition{History: h.HideAll(), Target: Target{Root: true}}
}

func jump(h History, i int) (Transition, error) {
	if i == -1 {
		return toRoot(h), nil
	}
	if i < -1 || i >= h.Len() {
		return Transition{}, fmt.Errorf("%w: %d (history has %d entries)", ErrIndexOutOfRange, i, h.Len())
	}
	return Transition{
		History: h.ShowThrough(i),
		Target:  Target{Path: h.entries[i].Path},
	}, nil
}
