package catalog

import "sync"

// notifier fans out change signals to subscribers. Signals are edge-
// triggered and coalesce: a subscriber that has not drained its channel
// misses nothing, it just sees one pending signal.
type notifier struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[chan struct{}]struct{})}
}

func (n *notifier) subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		delete(n.subs, ch)
		n.mu.Unlock()
	}
	return ch, cancel
}

func (n *notifier) notify() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
