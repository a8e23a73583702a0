package jsleaf

import (
	"testing"

	"github.com/stretchr/testify/require"

	behaviours "github.com/joeycumines/go-behaviours"
)

func TestEffect_MutatesBlackboard(t *testing.T) {
	t.Parallel()

	r := New()
	bb := new(behaviours.Blackboard)
	bb.Set("count", int64(0))

	effect, err := r.Effect("incr", "state => state.set('count', state.get('count') + 1)")
	require.NoError(t, err)

	require.NoError(t, effect(bb))
	require.NoError(t, effect(bb))
	require.EqualValues(t, 2, bb.Get("count"))
}

func TestEffect_ThrowBecomesError(t *testing.T) {
	t.Parallel()

	r := New()
	effect, err := r.Effect("boom", "() => { throw new Error('nope') }")
	require.NoError(t, err)

	err = effect(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "nope")
}

func TestPredicate(t *testing.T) {
	t.Parallel()

	r := New()
	pred, err := r.Predicate("check", "state => state.get('ready')")
	require.NoError(t, err)

	bb := new(behaviours.Blackboard)
	bb.Set("ready", false)
	ok, err := pred(bb)
	require.NoError(t, err)
	require.False(t, ok)

	bb.Set("ready", true)
	ok, err = pred(bb)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	r := New()
	_, err := r.Effect("bad", "state =>")
	require.Error(t, err)

	_, err = r.Predicate("notfn", "42")
	require.Error(t, err)

	require.Panics(t, func() { r.Do("bad", "state =>") })
	require.Panics(t, func() { r.Eval("bad", "state =>") })
}

func TestLeavesInTree(t *testing.T) {
	t.Parallel()

	r := New()
	bb := new(behaviours.Blackboard)
	bb.Set("count", int64(0))
	bb.Set("stop", false)

	tree := behaviours.While("loop",
		r.Eval("not stopped", "state => !state.get('stop')"),
		r.Do("incr", "state => state.set('count', state.get('count') + 1)"),
	)

	running, _ := tree.Tick(bb)
	require.True(t, running)
	require.EqualValues(t, 1, bb.Get("count"))

	bb.Set("stop", true)
	running, success := tree.Tick(bb)
	require.False(t, running)
	require.True(t, success)
	require.EqualValues(t, 2, bb.Get("count"))
}

func TestDoLeaf_ErrorFoldsToFailure(t *testing.T) {
	t.Parallel()

	r := New()
	tree := r.Do("boom", "() => { throw new Error('nope') }")
	running, success := tree.Tick(nil)
	require.False(t, running)
	require.False(t, success)
}
