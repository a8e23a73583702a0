package behaviours

import "fmt"

// Effect is a side-effecting operation executed by Do and Run leaves.
// The state argument is the value passed to the root Tick.
type Effect func(state any) error

// Predicate evaluates a condition against the shared state.
type Predicate func(state any) (bool, error)

type doLeaf struct {
	passiveExit
	node   *Node
	effect Effect
}

func (b *doLeaf) tick(state any) (running, success bool) {
	if err := b.effect(state); err != nil {
		logger().Error("effect failed", "node", b.node.Path(), "err", err)
		return false, false
	}
	return false, true
}

// Do executes effect(state) once, finishing immediately: (false, true)
// on success, (false, false) if the effect returns an error. The error
// is reported through the tick result only; it is never re-raised.
func Do(name string, effect Effect) *Node {
	if effect == nil {
		panic(fmt.Sprintf("behaviours: Do %q requires an effect", name))
	}
	return newNode(name, nil, func(n *Node) behaviour {
		return &doLeaf{node: n, effect: effect}
	})
}

type runLeaf struct {
	passiveExit
	effect Effect
	wait   bool
}

func (b *runLeaf) tick(state any) (running, success bool) {
	if b.wait {
		if err := b.effect(state); err != nil {
			// Deliberately unguarded, unlike Do: the error escapes the
			// tick call. See the Run doc comment.
			panic(err)
		}
		b.wait = false
		return true, true
	}
	return false, true
}

// Run executes effect(state) on the first tick of an activation and
// reports running; the second tick finishes with (false, true) without
// re-invoking the effect.
//
// Unlike Do, Run does not fold effect failures into the tick result: a
// non-nil error panics out of the Tick call. The asymmetry is
// historical and intentional; do not rely on it being unified.
func Run(name string, effect Effect) *Node {
	if effect == nil {
		panic(fmt.Sprintf("behaviours: Run %q requires an effect", name))
	}
	return newNode(name, nil, func(*Node) behaviour {
		return &runLeaf{effect: effect, wait: true}
	})
}

type waitLeaf struct {
	passiveExit
	count int
}

func (b *waitLeaf) tick(any) (running, success bool) {
	if b.count <= 0 {
		return false, true
	}
	b.count--
	return true, true
}

// Wait runs for steps ticks and then succeeds. Wait(0) finishes
// immediately. Each activation counts down from steps again.
func Wait(steps int) *Node {
	return newNode(fmt.Sprintf("wait %d", steps), nil, func(*Node) behaviour {
		return &waitLeaf{count: steps}
	})
}

type evalLeaf struct {
	passiveExit
	node *Node
	pred Predicate
}

func (b *evalLeaf) tick(state any) (running, success bool) {
	ok, err := b.pred(state)
	if err != nil {
		logger().Error("predicate failed", "node", b.node.Path(), "err", err)
		return false, false
	}
	return false, ok
}

// Eval invokes pred(state) once and finishes immediately with its
// result as the success value. A predicate error finishes with
// (false, false), like Do.
func Eval(name string, pred Predicate) *Node {
	if pred == nil {
		panic(fmt.Sprintf("behaviours: Eval %q requires a predicate", name))
	}
	return newNode(name, nil, func(n *Node) behaviour {
		return &evalLeaf{node: n, pred: pred}
	})
}
