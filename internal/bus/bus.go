// Package bus is a small in-process publish/subscribe hub. Surfaces (TUI,
// debounced saver, watcher plumbing) subscribe to planner changes instead of
// holding references to each other.
package bus

import "sync"

// Topic names a class of event.
type Topic string

const (
	// TopicCommand fires after every executed, undone, or redone command.
	TopicCommand Topic = "command.executed"

	// TopicStateSaved fires after a snapshot reaches the store.
	TopicStateSaved Topic = "state.saved"

	// TopicStateReloaded fires after an external change forced a full reload.
	TopicStateReloaded Topic = "state.reloaded"
)

// Event is one published notification.
type Event struct {
	Topic   Topic
	Payload any
}

// Bus fans events out to subscribers. Delivery is best-effort: a subscriber
// that stops draining its channel loses events rather than blocking the
// publisher.
type Bus struct {
	mu     sync.Mutex
	subs   map[Topic][]chan Event
	closed bool
}

func New() *Bus {
	return &Bus{subs: map[Topic][]chan Event{}}
}

// Subscribe returns a channel receiving events for the given topics. The
// channel is closed when the bus closes.
func (b *Bus) Subscribe(topics ...Topic) <-chan Event {
	ch := make(chan Event, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	for _, t := range topics {
		b.subs[t] = append(b.subs[t], ch)
	}
	return ch
}

// Publish delivers ev to every subscriber of its topic. Full channels are
// skipped; a subsequent refresh picks the change up.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs[ev.Topic] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close closes every subscriber channel. Publish after Close is a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	seen := map[chan Event]bool{}
	for _, chans := range b.subs {
		for _, ch := range chans {
			if !seen[ch] {
				seen[ch] = true
				close(ch)
			}
		}
	}
	b.subs = nil
}
