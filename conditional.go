package behaviours

import "fmt"

type conditionalComposite struct {
	passiveExit
	node *Node
	last *Node
}

func (b *conditionalComposite) tick(state any) (running, success bool) {
	running, success = b.node.children[0].Tick(state)
	if running {
		return true, true
	}

	selected := b.node.children[1]
	if !success {
		selected = b.node.children[2]
	}

	if selected != b.last {
		if b.last != nil {
			b.last.deactivate(state)
		}
		b.last = selected
	}

	return selected.Tick(state)
}

// Conditional re-evaluates condition on every tick and runs the true or
// false branch according to its result, propagating the branch's tick
// result. While the condition itself is running the conditional reports
// (true, true) without touching either branch.
//
// When the resolved branch changes between ticks, the previously
// selected branch is deactivated first, discarding whatever activation
// state it had accumulated. Switching away from a branch that had
// already finished is a no-op.
func Conditional(name string, condition, ifTrue, ifFalse *Node) *Node {
	for label, child := range map[string]*Node{"condition": condition, "true branch": ifTrue, "false branch": ifFalse} {
		if child == nil {
			panic(fmt.Sprintf("behaviours: Conditional %q requires a %s", name, label))
		}
	}
	return newNode(name, []*Node{condition, ifTrue, ifFalse}, func(n *Node) behaviour {
		return &conditionalComposite{node: n}
	})
}
