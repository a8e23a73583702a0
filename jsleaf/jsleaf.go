// Package jsleaf builds behaviour tree leaves from JavaScript
// functions, executed on an embedded goja runtime. JS is for leaves
// only; composites stay native, keeping the engine's control flow out
// of the script layer.
//
// Execution is synchronous: a leaf's function runs to completion inside
// the tick that invokes it, matching the engine's single-threaded
// cooperative model. There is no event loop and no Promise support;
// long-running script work should be decomposed across ticks like any
// other effect.
//
// A Runtime, and every leaf compiled from it, must be confined to the
// goroutine ticking the tree.
package jsleaf

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"

	behaviours "github.com/joeycumines/go-behaviours"
)

// Runtime wraps a goja runtime configured for leaf execution, with the
// node-style require registry and console enabled.
type Runtime struct {
	vm     *goja.Runtime
	states map[*behaviours.Blackboard]goja.Value
}

// New creates a Runtime.
func New() *Runtime {
	vm := goja.New()
	registry := new(require.Registry)
	registry.Enable(vm)
	console.Enable(vm)
	return &Runtime{vm: vm, states: make(map[*behaviours.Blackboard]goja.Value)}
}

// compile evaluates source, which must be a JS function expression
// (e.g. "state => state.set('x', 1)" or "function (state) { ... }").
func (r *Runtime) compile(name, source string) (goja.Callable, error) {
	v, err := r.vm.RunScript(name, "("+source+")")
	if err != nil {
		return nil, fmt.Errorf("jsleaf: compile %s: %w", name, err)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("jsleaf: %s is not a function", name)
	}
	return fn, nil
}

// stateValue maps the tick state into the VM. A *behaviours.Blackboard
// is exposed as an object with get/set/has/delete/keys accessors (built
// once per blackboard); anything else is converted by goja's default
// rules.
func (r *Runtime) stateValue(state any) goja.Value {
	bb, ok := state.(*behaviours.Blackboard)
	if !ok {
		return r.vm.ToValue(state)
	}
	if v, ok := r.states[bb]; ok {
		return v
	}
	obj := r.vm.NewObject()
	_ = obj.Set("get", bb.Get)
	_ = obj.Set("set", bb.Set)
	_ = obj.Set("has", bb.Has)
	_ = obj.Set("delete", bb.Delete)
	_ = obj.Set("keys", bb.Keys)
	r.states[bb] = obj
	return obj
}

// Effect compiles a JS function into a behaviours.Effect. The function
// receives the tick state as its sole argument; a thrown exception
// becomes the returned error, to be folded by Do or to escape Run.
func (r *Runtime) Effect(name, source string) (behaviours.Effect, error) {
	fn, err := r.compile(name, source)
	if err != nil {
		return nil, err
	}
	return func(state any) error {
		if _, err := fn(goja.Undefined(), r.stateValue(state)); err != nil {
			return fmt.Errorf("jsleaf: %s: %w", name, err)
		}
		return nil
	}, nil
}

// Predicate compiles a JS function into a behaviours.Predicate. The
// function's return value is converted with JavaScript truthiness.
func (r *Runtime) Predicate(name, source string) (behaviours.Predicate, error) {
	fn, err := r.compile(name, source)
	if err != nil {
		return nil, err
	}
	return func(state any) (bool, error) {
		v, err := fn(goja.Undefined(), r.stateValue(state))
		if err != nil {
			return false, fmt.Errorf("jsleaf: %s: %w", name, err)
		}
		return v.ToBoolean(), nil
	}, nil
}

// Do is a convenience wrapper building a Do leaf from JS source. It
// panics if the source does not compile.
func (r *Runtime) Do(name, source string) *behaviours.Node {
	effect, err := r.Effect(name, source)
	if err != nil {
		panic(err)
	}
	return behaviours.Do(name, effect)
}

// Eval is a convenience wrapper building an Eval leaf from JS source.
// It panics if the source does not compile.
func (r *Runtime) Eval(name, source string) *behaviours.Node {
	pred, err := r.Predicate(name, source)
	if err != nil {
		panic(err)
	}
	return behaviours.Eval(name, pred)
}
