package behaviours

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
)

// behaviour is the per-activation execution state for a Node. A new
// instance is created when an idle Node is ticked, and discarded as
// soon as a tick reports not-running.
type behaviour interface {
	tick(state any) (running, success bool)

	// deactivate is invoked when the activation is discarded, whether
	// the node finished or an ancestor abandoned it (Conditional does
	// this when switching branches).
	deactivate(state any)
}

// passiveExit provides the no-op deactivation shared by behaviours
// holding no external resources.
type passiveExit struct{}

func (passiveExit) deactivate(any) {}

// Node is a single element of a behaviour tree: a name, an ordered set
// of children, and a factory for its per-activation state. Nodes are
// immutable after construction apart from the activation slot, and each
// Node belongs to at most one parent.
//
// A Node is not safe for concurrent use; a whole tree is ticked by one
// goroutine at a time.
type Node struct {
	name     string
	parent   *Node
	children []*Node
	activate func(*Node) behaviour
	active   behaviour
}

func newNode(name string, children []*Node, activate func(*Node) behaviour) *Node {
	n := &Node{name: name, children: children, activate: activate}
	for _, child := range children {
		if child == nil {
			panic(fmt.Sprintf("behaviours: node %q constructed with a nil child", name))
		}
		if child.parent != nil {
			panic(fmt.Sprintf("behaviours: node %q is already attached to %q", child.name, child.parent.name))
		}
		child.parent = n
	}
	return n
}

// Name returns the label the node was constructed with.
func (n *Node) Name() string { return n.name }

// Path returns the dotted path from the root to this node, with spaces
// in names replaced by underscores. Diagnostic use only.
func (n *Node) Path() string {
	name := strings.ReplaceAll(n.name, " ", "_")
	if n.parent == nil {
		return name
	}
	return n.parent.Path() + "." + name
}

// Active reports whether the node is mid-activation, i.e. its most
// recent tick returned running and no later tick has finished it.
func (n *Node) Active() bool { return n.active != nil }

// Tick performs one evaluation step. An idle node starts a new
// activation first; a tick that reports not-running discards it, so the
// next Tick always starts fresh. state is passed through unchanged to
// every descendant and leaf callable.
//
// A caller that simply stops ticking a running node abandons its
// activation state without any deactivation callback; there is no
// cancellation operation.
func (n *Node) Tick(state any) (running, success bool) {
	if n.active == nil {
		logger().Debug("enter", "node", n.Path())
		n.active = n.activate(n)
	}
	running, success = n.active.tick(state)
	if !running {
		logger().Debug("exit", "node", n.Path(), "success", success)
		n.deactivate(state)
	}
	return running, success
}

// deactivate discards the current activation, if any, invoking its
// deactivation hook. No-op on an idle node.
func (n *Node) deactivate(state any) {
	if n.active == nil {
		return
	}
	n.active.deactivate(state)
	n.active = nil
}

var pkgLogger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used for enter/exit trace events and
// leaf failure reports. Passing nil restores slog.Default. Safe for
// concurrent use with running tickers.
func SetLogger(l *slog.Logger) {
	pkgLogger.Store(l)
}

func logger() *slog.Logger {
	if l := pkgLogger.Load(); l != nil {
		return l
	}
	return slog.Default()
}
