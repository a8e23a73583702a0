package behaviours

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ticker drives a node at a fixed interval on its own goroutine until
// the tree finishes or the context is cancelled. It is the caller-side
// loop for trees that are not embedded in an existing frame/event
// cycle; the interval schedules tick invocations only, ticks themselves
// remain logical steps.
//
// Cancellation abandons any in-flight activation state without
// deactivation callbacks, exactly as a caller that stops invoking Tick
// would.
type Ticker struct {
	id     string
	node   *Node
	state  any
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	success bool
	err     error
}

// NewTicker starts ticking node every interval with the given state.
// The returned Ticker is already running.
func NewTicker(ctx context.Context, interval time.Duration, node *Node, state any) *Ticker {
	if node == nil {
		panic("behaviours: NewTicker requires a node")
	}
	if interval <= 0 {
		panic("behaviours: NewTicker requires a positive interval")
	}
	ctx, cancel := context.WithCancel(ctx)
	t := &Ticker{
		id:     uuid.NewString(),
		node:   node,
		state:  state,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go t.run(ctx, interval)
	return t
}

func (t *Ticker) run(ctx context.Context, interval time.Duration) {
	defer close(t.done)
	defer t.cancel()
	logger().Debug("ticker started", "ticker", t.id, "node", t.node.Path(), "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			t.mu.Lock()
			t.err = ctx.Err()
			t.mu.Unlock()
			logger().Debug("ticker cancelled", "ticker", t.id, "node", t.node.Path())
			return
		case <-ticker.C:
			running, success := t.node.Tick(t.state)
			if !running {
				t.mu.Lock()
				t.success = success
				t.mu.Unlock()
				logger().Debug("ticker finished", "ticker", t.id, "node", t.node.Path(), "success", success)
				return
			}
		}
	}
}

// ID returns the ticker's unique identifier, as carried in its log
// events.
func (t *Ticker) ID() string { return t.id }

// Done is closed once the ticker has stopped, for any reason.
func (t *Ticker) Done() <-chan struct{} { return t.done }

// Stop cancels the ticker. It does not wait; receive from Done for
// that. Stopping a finished ticker is a no-op.
func (t *Ticker) Stop() { t.cancel() }

// Result reports the tree's terminal success value. The error is
// non-nil if the ticker was cancelled before the tree finished, in
// which case success is meaningless. Valid once Done is closed.
func (t *Ticker) Result() (success bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.success, t.err
}

// Manager stops a set of tickers together.
type Manager struct {
	mu      sync.Mutex
	tickers []*Ticker
}

// Add registers a ticker with the manager.
func (m *Manager) Add(t *Ticker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickers = append(m.tickers, t)
}

// Stop cancels every registered ticker without waiting.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tickers {
		t.Stop()
	}
}

// Wait blocks until every registered ticker has stopped.
func (m *Manager) Wait() {
	m.mu.Lock()
	tickers := append([]*Ticker(nil), m.tickers...)
	m.mu.Unlock()
	for _, t := range tickers {
		<-t.Done()
	}
}
