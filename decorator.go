package behaviours

import (
	"fmt"
	"math/rand/v2"
)

type notDecorator struct {
	passiveExit
	node *Node
}

func (b *notDecorator) tick(state any) (running, success bool) {
	running, success = b.node.children[0].Tick(state)
	if running {
		// The in-progress success value is not inverted; running nodes
		// always report success until they finish.
		return true, true
	}
	return false, !success
}

// Not passes through the child's running state and negates its terminal
// success value.
func Not(child *Node) *Node {
	requireChild("Not", child)
	return newNode("not", []*Node{child}, func(n *Node) behaviour {
		return &notDecorator{node: n}
	})
}

type repeatDecorator struct {
	passiveExit
	node *Node
}

func (b *repeatDecorator) tick(state any) (running, success bool) {
	running, success = b.node.children[0].Tick(state)
	if !running && !success {
		return false, false
	}
	// The child cleared its own activation on finishing, so the next
	// tick re-activates it; that is the whole repetition mechanism.
	return true, true
}

// Repeat ticks the child forever, restarting each time it finishes,
// unless an activation ends in failure, which fails the repeat.
func Repeat(child *Node) *Node {
	requireChild("Repeat", child)
	return newNode("repeat", []*Node{child}, func(n *Node) behaviour {
		return &repeatDecorator{node: n}
	})
}

type chanceDecorator struct {
	passiveExit
	node    *Node
	allowed bool
}

func (b *chanceDecorator) tick(state any) (running, success bool) {
	if !b.allowed {
		return false, false
	}
	return b.node.children[0].Tick(state)
}

// Chance fails with probability 1-threshold, drawn once per activation
// from the shared process source; otherwise it is a passthrough for its
// child. The draw happens on activation, not per tick.
func Chance(threshold float64, child *Node) *Node {
	return ChanceSource(threshold, nil, child)
}

// ChanceSource is Chance with an explicit source, for deterministic
// trees. A nil source falls back to the shared process source.
func ChanceSource(threshold float64, source *rand.Rand, child *Node) *Node {
	requireChild("Chance", child)
	draw := rand.Float64
	if source != nil {
		draw = source.Float64
	}
	name := fmt.Sprintf("chance(%.2f)", threshold)
	return newNode(name, []*Node{child}, func(n *Node) behaviour {
		return &chanceDecorator{node: n, allowed: draw() <= threshold}
	})
}

func requireChild(kind string, child *Node) {
	if child == nil {
		panic("behaviours: " + kind + " requires a child node")
	}
}
