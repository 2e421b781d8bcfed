package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceRootHidesEverything(t *testing.T) {
	tr, err := Reduce(abc(), Root())
	require.NoError(t, err)
	assert.True(t, tr.Target.Root)
	assert.Equal(t, RootPath, tr.Target.FetchPath())
	assert.Equal(t, []bool{false, false, false}, visibility(tr.History))
}

func TestReduceNavigateWithoutLabelKeepsHistory(t *testing.T) {
	h := abc().ShowThrough(1)
	tr, err := Reduce(h, Navigate("/a/b", ""))
	require.NoError(t, err)
	assert.Equal(t, h.Entries(), tr.History.Entries())
	assert.Equal(t, "/a/b", tr.Target.Path)
}

func TestReduceJump(t *testing.T) {
	tr, err := Reduce(abc(), Jump(0))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, visibility(tr.History))
	assert.Equal(t, Target{Path: "/a"}, tr.Target)

	tr, err = Reduce(abc(), Jump(-1))
	require.NoError(t, err)
	assert.True(t, tr.Target.Root)
	assert.Equal(t, []bool{false, false, false}, visibility(tr.History))
}

func TestReduceJumpToForwardEntryRevealsPrefix(t *testing.T) {
	tr, err := Reduce(abc().HideAll(), Jump(1))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false}, visibility(tr.History))
	assert.Equal(t, "/a/b", tr.Target.Path)
}

func TestReduceJumpOutOfRange(t *testing.T) {
	for _, i := range []int{-2, 3, 10} {
		_, err := Reduce(abc(), Jump(i))
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", i)
	}
}

func TestReduceStepForward(t *testing.T) {
	tr, err := Reduce(abc().ShowThrough(0), Forward())
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false}, visibility(tr.History))
	assert.Equal(t, "/a/b", tr.Target.Path)
}

func TestReduceStepForwardAtNewestIsNoOp(t *testing.T) {
	tr, err := Reduce(abc(), Forward())
	require.NoError(t, err)
	assert.True(t, tr.NoOp)
}

func TestReduceStepBackWithNothingVisibleIsNoOp(t *testing.T) {
	tr, err := Reduce(abc().HideAll(), Back())
	require.NoError(t, err)
	assert.True(t, tr.NoOp)

	tr, err = Reduce(History{}, Back())
	require.NoError(t, err)
	assert.True(t, tr.NoOp)
}

func TestReduceStepBackFromFirstEntryGoesToRoot(t *testing.T) {
	tr, err := Reduce(abc().ShowThrough(0), Back())
	require.NoError(t, err)
	assert.True(t, tr.Target.Root)
	assert.Equal(t, []bool{false, false, false}, visibility(tr.History))
}

func TestReduceStepBackJumpsToPreviousEntry(t *testing.T) {
	tr, err := Reduce(abc(), Back())
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false}, visibility(tr.History))
	assert.Equal(t, "/a/b", tr.Target.Path)
}

func TestReduceInvalidDirection(t *testing.T) {
	for _, d := range []int{0, 2, -3} {
		_, err := Reduce(abc(), Step(d))
		assert.ErrorIs(t, err, ErrInvalidDirection)
	}
}

func TestReduceRootThenForwardRestoresFirstEntry(t *testing.T) {
	tr, err := Reduce(abc(), Jump(-1))
	require.NoError(t, err)
	tr, err = Reduce(tr.History, Forward())
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, visibility(tr.History))
	assert.Equal(t, "/a", tr.Target.Path)
}

func TestReduceRewindThenNavigateScenario(t *testing.T) {
	tr, err := Reduce(abc(), Jump(0))
	require.NoError(t, err)
	assert.Equal(t, "/a", tr.Target.Path)

	tr, err = Reduce(tr.History, Navigate("/x/d", "d"))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Label: "a", Path: "/a", Visible: true},
		{Label: "d", Path: "/x/d", Visible: true},
	}, tr.History.Entries())
}

func TestReduceNavigateFromRootDiscardsEverything(t *testing.T) {
	tr, err := Reduce(abc().HideAll(), Navigate("/z", "z"))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Label: "z", Path: "/z", Visible: true}}, tr.History.Entries())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "root", Root().String())
	assert.Equal(t, "jump 2", Jump(2).String())
	assert.Equal(t, "step -1", Back().String())
	assert.Equal(t, "step +1", Forward().String())
}
