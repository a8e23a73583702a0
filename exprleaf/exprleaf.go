// Package exprleaf builds behaviour tree leaves from expr-lang
// expressions, evaluated against the tick state as the expression
// environment. Compiled programs are cached in a bounded LRU keyed by
// source, so identical expressions across a large tree compile once.
package exprleaf

import (
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"

	behaviours "github.com/joeycumines/go-behaviours"
)

func compile(source string) (program, error) {
	return compileInto(programs, source)
}

func compileInto(cache *lru, source string) (program, error) {
	if p, ok := cache.get(source); ok {
		return p, nil
	}
	p, err := expr.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("exprleaf: compile %q: %w", source, err)
	}
	cache.put(source, p)
	return p, nil
}

// Predicate compiles source into a behaviours.Predicate. The tick state
// is the expression environment; a *behaviours.Blackboard state is
// presented as its snapshot, so expressions read keys directly, e.g.
// "battery > 20".
//
// The expression result is converted truthily: nil, false, zero
// numbers, empty strings and empty collections are false, everything
// else true.
func Predicate(source string) (behaviours.Predicate, error) {
	program, err := compile(source)
	if err != nil {
		return nil, err
	}
	return func(state any) (bool, error) {
		out, err := expr.Run(program, env(state))
		if err != nil {
			return false, fmt.Errorf("exprleaf: run %q: %w", source, err)
		}
		return truthy(out), nil
	}, nil
}

// Eval returns an Eval leaf whose predicate is the compiled source. A
// source that does not compile panics: malformed trees are
// construction-time errors, not tick results.
func Eval(name, source string) *behaviours.Node {
	pred, err := Predicate(source)
	if err != nil {
		panic(err)
	}
	return behaviours.Eval(name, pred)
}

func env(state any) any {
	if bb, ok := state.(*behaviours.Blackboard); ok {
		return bb.Snapshot()
	}
	return state
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case uint64:
		return v != 0
	case float64:
		return v != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() != 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
