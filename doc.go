// Package behaviours implements a tick-driven behaviour tree engine.
//
// A tree is assembled once from Nodes via the builder functions (Do,
// Sequence, Select, Conditional, ...) and then driven by repeatedly
// invoking Tick on the root. Every tick returns a (running, success)
// pair: running means the node's current activation is incomplete and
// the caller should tick again on its next cycle; success is the
// terminal outcome, meaningful once running is false.
//
// Execution is synchronous and single-threaded. A node "suspends" only
// by returning running, never by blocking; any blocking work belongs in
// caller-supplied effects broken up across ticks (see Run and Wait).
// The state value passed to Tick is opaque to the engine and is handed
// unchanged to every leaf callable in the tree; it is the sole channel
// for side effects and shared data.
package behaviours
