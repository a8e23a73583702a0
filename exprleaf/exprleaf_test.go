package exprleaf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	behaviours "github.com/joeycumines/go-behaviours"
)

func TestPredicate_MapState(t *testing.T) {
	t.Parallel()

	pred, err := Predicate("count > 2")
	require.NoError(t, err)

	ok, err := pred(map[string]any{"count": 3})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = pred(map[string]any{"count": 1})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPredicate_BlackboardState(t *testing.T) {
	t.Parallel()

	bb := new(behaviours.Blackboard)
	bb.Set("battery", 35)

	pred, err := Predicate("battery > 20")
	require.NoError(t, err)

	ok, err := pred(bb)
	require.NoError(t, err)
	require.True(t, ok)

	bb.Set("battery", 10)
	ok, err = pred(bb)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPredicate_CompileError(t *testing.T) {
	t.Parallel()

	_, err := Predicate("count >")
	require.Error(t, err)
}

func TestPredicate_RunError(t *testing.T) {
	t.Parallel()

	pred, err := Predicate("missing.field > 1")
	require.NoError(t, err)

	_, err = pred(map[string]any{})
	require.Error(t, err)
}

func TestEval_InTree(t *testing.T) {
	t.Parallel()

	bb := new(behaviours.Blackboard)
	bb.Set("stop", false)
	bb.Set("count", 0)

	tree := behaviours.While("loop",
		Eval("not stopped", "!stop"),
		behaviours.Do("incr", func(state any) error {
			state.(*behaviours.Blackboard).Update("count", func(v any) any { return v.(int) + 1 })
			return nil
		}),
	)

	running, _ := tree.Tick(bb)
	require.True(t, running)
	bb.Set("stop", true)
	running, success := tree.Tick(bb)
	require.False(t, running)
	require.True(t, success)
	require.Equal(t, 2, bb.Get("count"))
}

func TestEval_PanicsOnBadSource(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { Eval("bad", "count >") })
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		value any
		want  bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{0, false},
		{1, true},
		{0.0, false},
		{2.5, true},
		{"", false},
		{"x", true},
		{[]int{}, false},
		{[]int{1}, true},
		{map[string]int{}, false},
		{map[string]int{"a": 1}, true},
	} {
		require.Equal(t, tc.want, truthy(tc.value), "truthy(%v)", tc.value)
	}
}

func TestProgramCache(t *testing.T) {
	t.Parallel()

	c := newLRU(2)
	for i := 0; i < 3; i++ {
		source := fmt.Sprintf("count > %d", i)
		p, err := compileInto(c, source)
		require.NoError(t, err)
		require.NotNil(t, p)
	}
	require.Equal(t, 2, c.len(), "oldest entry evicted")

	_, ok := c.get("count > 0")
	require.False(t, ok)
	_, ok = c.get("count > 2")
	require.True(t, ok)

	// Repeat compilation of a cached source is a hit, not a recompile.
	before, _ := c.get("count > 2")
	after, err := compileInto(c, "count > 2")
	require.NoError(t, err)
	require.Same(t, before, after)
}
