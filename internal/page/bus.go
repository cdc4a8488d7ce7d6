package page

import "sync"

// Message is a cross-document message as delivered on a page's bus: the
// sending window, the declared origin of that window's document, and the raw
// payload bytes. Nothing here is trusted; routing layers must check Source
// and Origin before acting on Data.
type Message struct {
	Source *Window
	Origin string
	Data   []byte
}

// Handler receives messages published on a bus.
type Handler func(Message)

// Subscription is the per-subscriber handle returned by Subscribe. Cancel is
// idempotent; after the first call the handler receives no further messages.
type Subscription struct {
	bus  *Bus
	id   uint64
	once sync.Once
}

// Cancel detaches the subscription from the bus. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.bus.unsubscribe(s.id)
	})
}

type busEntry struct {
	id uint64
	fn Handler
}

// Bus is a page-wide message channel. Delivery is synchronous and ordered:
// Publish invokes every current subscriber before returning, in subscription
// order, and messages published sequentially are observed in that sequence.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   []busEntry
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler and returns its cancellation handle.
func (b *Bus) Subscribe(fn Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{bus: b, id: b.nextID}
	b.subs = append(b.subs, busEntry{id: sub.id, fn: fn})
	return sub
}

// Publish delivers a message to every subscriber registered at the time of
// the call. The subscriber list is snapshotted first, so a handler cancelling
// its own subscription mid-delivery neither skips nor duplicates others.
func (b *Bus) Publish(msg Message) {
	b.mu.Lock()
	snapshot := make([]busEntry, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, entry := range snapshot {
		entry.fn(msg)
	}
}

func (b *Bus) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, entry := range b.subs {
		if entry.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}
