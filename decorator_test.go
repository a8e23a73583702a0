package behaviours

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNot(t *testing.T) {
	t.Parallel()

	running, success := Not(Eval("check", constPredicate(true))).Tick(nil)
	require.False(t, running)
	require.False(t, success)

	running, success = Not(Eval("check", constPredicate(false))).Tick(nil)
	require.False(t, running)
	require.True(t, success)
}

func TestNot_RunningChild(t *testing.T) {
	t.Parallel()

	// While the child runs, Not reports (true, true) regardless of the
	// child's interim success value; only the terminal value inverts.
	tree := Not(Sequence("s", Eval("fail", constPredicate(false)), Wait(1)))
	running, success := tree.Tick(nil)
	require.False(t, running)
	require.True(t, success)

	tree = Not(Wait(1))
	running, success = tree.Tick(nil)
	require.True(t, running)
	require.True(t, success)
	running, success = tree.Tick(nil)
	require.False(t, running)
	require.False(t, success)
}

func TestRepeat(t *testing.T) {
	t.Parallel()

	var target []int
	tree := Repeat(Do("success", appendEffect(&target, 1)))

	running, _ := tree.Tick(nil)
	require.True(t, running)
	require.Equal(t, []int{1}, target)

	running, _ = tree.Tick(nil)
	require.True(t, running)
	require.Equal(t, []int{1, 1}, target)
}

func TestRepeat_ChildFailure(t *testing.T) {
	t.Parallel()

	calls := 0
	tree := Repeat(Eval("flaky", func(any) (bool, error) {
		calls++
		return calls < 3, nil
	}))

	running, _ := tree.Tick(nil)
	require.True(t, running)
	running, _ = tree.Tick(nil)
	require.True(t, running)
	running, success := tree.Tick(nil)
	require.False(t, running)
	require.False(t, success)
}

func TestChance_Deterministic(t *testing.T) {
	t.Parallel()

	// Replays the same seed so the draw is known: a threshold above the
	// drawn value allows the child, one below denies it.
	draw := rand.New(rand.NewPCG(1, 2)).Float64()

	tree := ChanceSource(draw+(1-draw)/2, rand.New(rand.NewPCG(1, 2)),
		Eval("check", constPredicate(true)))
	running, success := tree.Tick(nil)
	require.False(t, running)
	require.True(t, success)

	tree = ChanceSource(draw/2, rand.New(rand.NewPCG(1, 2)),
		Eval("check", constPredicate(true)))
	running, success = tree.Tick(nil)
	require.False(t, running)
	require.False(t, success)

	// Allowed but the child fails: passthrough, not override.
	tree = ChanceSource(draw+(1-draw)/2, rand.New(rand.NewPCG(1, 2)),
		Eval("check", constPredicate(false)))
	running, success = tree.Tick(nil)
	require.False(t, running)
	require.False(t, success)
}

func TestChance_DeniedNeverTicksChild(t *testing.T) {
	t.Parallel()

	var target []int
	tree := Chance(-1, Do("never", appendEffect(&target, 1)))
	running, success := tree.Tick(nil)
	require.False(t, running)
	require.False(t, success)
	require.Empty(t, target)
}

type countingSource struct {
	draws int
	value uint64
}

func (s *countingSource) Uint64() uint64 {
	s.draws++
	return s.value
}

func TestChance_DrawsOncePerActivation(t *testing.T) {
	t.Parallel()

	source := &countingSource{} // always draws 0.0, so any non-negative threshold allows
	tree := ChanceSource(0.5, rand.New(source), Wait(2))

	running, _ := tree.Tick(nil)
	require.True(t, running)
	running, _ = tree.Tick(nil)
	require.True(t, running)
	running, success := tree.Tick(nil)
	require.False(t, running)
	require.True(t, success)
	require.Equal(t, 1, source.draws, "one draw for the whole activation")

	tree.Tick(nil)
	require.Equal(t, 2, source.draws, "re-activation re-rolls")
}
