package store

import "sync"

// Notifier broadcasts a payload-less change signal to subscribers. It
// replaces an ambient global event with an explicit subscribe/unsubscribe
// surface: each subscriber gets its own buffered channel, and broadcasts
// coalesce (a subscriber that hasn't drained yet is not blocked on and does
// not queue duplicates).
type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

// NewNotifier creates a new Notifier
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan struct{})}
}

// Subscribe registers a listener and returns its signal channel along with
// an unsubscribe function. Unsubscribe is idempotent.
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan struct{}, 1)
	n.subs[id] = ch

	unsubscribe := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
	return ch, unsubscribe
}

// Broadcast signals every subscriber without blocking.
func (n *Notifier) Broadcast() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
			// Subscriber already has a pending signal.
		}
	}
}
