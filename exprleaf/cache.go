package exprleaf

import (
	"container/list"
	"sync"

	"github.com/expr-lang/expr/vm"
)

type program = *vm.Program

// DefaultCacheSize bounds the shared compiled-program cache; the least
// recently used entry is evicted beyond it.
const DefaultCacheSize = 256

var programs = newLRU(DefaultCacheSize)

type lru struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used
	max     int
}

type lruEntry struct {
	source  string
	program program
}

func newLRU(max int) *lru {
	if max < 1 {
		max = 1
	}
	return &lru{
		entries: make(map[string]*list.Element, max),
		order:   list.New(),
		max:     max,
	}
}

func (c *lru) get(source string) (program, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[source]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*lruEntry).program, true
}

func (c *lru) put(source string, p program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[source]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*lruEntry).program = p
		return
	}
	c.entries[source] = c.order.PushFront(&lruEntry{source: source, program: p})
	for c.order.Len() > c.max {
		oldest := c.order.Back()
		delete(c.entries, oldest.Value.(*lruEntry).source)
		c.order.Remove(oldest)
	}
}

func (c *lru) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
