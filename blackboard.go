package behaviours

import "sync"

// Blackboard is a mutex-guarded key-value store, the conventional state
// payload for trees whose leaves share data. The engine itself never
// inspects tick state; Blackboard is a convenience for callers.
//
// The zero value is ready to use.
type Blackboard struct {
	mu   sync.RWMutex
	data map[string]any
}

// Get returns the value for key, or nil if absent.
func (b *Blackboard) Get(key string) any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.data[key]
}

// Set stores value under key.
func (b *Blackboard) Set(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		b.data = make(map[string]any)
	}
	b.data[key] = value
}

// Has reports whether key is present.
func (b *Blackboard) Has(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.data[key]
	return ok
}

// Delete removes key.
func (b *Blackboard) Delete(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
}

// Len returns the number of keys.
func (b *Blackboard) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// Keys returns all keys, in no particular order.
func (b *Blackboard) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	return keys
}

// Update applies fn to the current value for key and stores the result,
// all under the write lock. The usual shape of a read-modify-write leaf
// effect, e.g. incrementing a counter.
func (b *Blackboard) Update(key string, fn func(current any) any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		b.data = make(map[string]any)
	}
	b.data[key] = fn(b.data[key])
}

// Snapshot returns a shallow copy of the contents. Mutable values are
// shared with the blackboard; deep-copy them yourself if you need
// isolation.
func (b *Blackboard) Snapshot() map[string]any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]any, len(b.data))
	for k, v := range b.data {
		out[k] = v
	}
	return out
}
