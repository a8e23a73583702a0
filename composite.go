package behaviours

type sequenceComposite struct {
	passiveExit
	node    *Node
	pointer int
}

func (b *sequenceComposite) tick(state any) (running, success bool) {
	for b.pointer < len(b.node.children) {
		running, success = b.node.children[b.pointer].Tick(state)
		if running {
			return true, success
		}
		if !success {
			return false, false
		}
		b.pointer++
	}
	return false, true
}

// Sequence ticks each child after the previous one finished, failing as
// soon as one fails and succeeding once all have succeeded. The
// progress pointer resets on every activation. An empty sequence
// succeeds immediately.
func Sequence(name string, children ...*Node) *Node {
	return newNode(name, children, func(n *Node) behaviour {
		return &sequenceComposite{node: n}
	})
}

type selectComposite struct {
	passiveExit
	node    *Node
	pointer int
}

func (b *selectComposite) tick(state any) (running, success bool) {
	for b.pointer < len(b.node.children) {
		running, success = b.node.children[b.pointer].Tick(state)
		if running {
			return true, success
		}
		if success {
			return false, true
		}
		b.pointer++
	}
	return false, false
}

// Select ticks each child after the previous one finished, succeeding
// as soon as one succeeds and failing once all have failed. An empty
// select fails immediately.
func Select(name string, children ...*Node) *Node {
	return newNode(name, children, func(n *Node) behaviour {
		return &selectComposite{node: n}
	})
}

type untilComposite struct {
	passiveExit
	node *Node
}

func (b *untilComposite) tick(state any) (running, success bool) {
	exit := false
	for _, child := range b.node.children {
		running, success = child.Tick(state)
		if !running {
			exit = exit || success
		}
	}
	if exit {
		return false, true
	}
	return true, true
}

// Until ticks every child each cycle, restarting finished ones, until
// one of them finishes with success. The composite holds no per-child
// completion memory: a child that finished re-activates on the next
// cycle purely through its own Node lifecycle.
func Until(name string, children ...*Node) *Node {
	requireChildren("Until", name, children)
	return newNode(name, children, func(n *Node) behaviour {
		return &untilComposite{node: n}
	})
}

type whileComposite struct {
	passiveExit
	node *Node
}

func (b *whileComposite) tick(state any) (running, success bool) {
	keep := true
	for _, child := range b.node.children {
		running, success = child.Tick(state)
		if !running {
			keep = keep && success
		}
	}
	if keep {
		return true, true
	}
	// Exit is always reported as success; a failed child only ends the
	// loop, it does not fail the composite.
	return false, true
}

// While ticks every child each cycle, restarting finished ones, until
// one of them finishes with failure. Children that are still running do
// not affect the decision; a cycle where no child finishes keeps the
// loop going.
func While(name string, children ...*Node) *Node {
	requireChildren("While", name, children)
	return newNode(name, children, func(n *Node) behaviour {
		return &whileComposite{node: n}
	})
}

func requireChildren(kind, name string, children []*Node) {
	if len(children) == 0 {
		panic("behaviours: " + kind + " " + name + " requires at least one child")
	}
}
