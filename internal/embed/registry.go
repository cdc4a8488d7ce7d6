package embed

import (
	"reflect"
	"sync"

	"github.com/flowframe/embed/internal/message"
)

// AnalyticsListener receives an analytics event's answer snapshot. Return
// values are not part of the analytics protocol, so there are none.
type AnalyticsListener func(answers message.Answers)

// RedirectListener receives a redirect's target URL and answer snapshot and
// casts a cancellation vote. Returning true vetoes the navigation; every
// registered listener still runs regardless of earlier votes.
type RedirectListener func(url string, answers message.Answers) bool

type analyticsEntry struct {
	key uintptr
	fn  AnalyticsListener
}

type redirectEntry struct {
	key uintptr
	fn  RedirectListener
}

// registry holds the per-instance listener sets: one ordered slice per
// supported analytics event plus one for redirect. A closed struct instead of
// a name-keyed map keeps dispatch exhaustive at compile time; an unsupported
// tag simply selects no slice.
type registry struct {
	mu sync.Mutex

	flowLoaded    []analyticsEntry
	flowClosed    []analyticsEntry
	flowFinalized []analyticsEntry
	stepLoaded    []analyticsEntry
	stepCompleted []analyticsEntry
	redirect      []redirectEntry
}

// slot returns the slice for a supported tag, nil otherwise.
func (r *registry) slot(event message.EventType) *[]analyticsEntry {
	switch event {
	case message.EventFlowLoaded:
		return &r.flowLoaded
	case message.EventFlowClosed:
		return &r.flowClosed
	case message.EventFlowFinalized:
		return &r.flowFinalized
	case message.EventStepLoaded:
		return &r.stepLoaded
	case message.EventStepCompleted:
		return &r.stepCompleted
	default:
		return nil
	}
}

func callbackKey(fn interface{}) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// add appends a listener for the event, preserving registration order.
// Unsupported tags are ignored.
func (r *registry) add(event message.EventType, fn AnalyticsListener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot := r.slot(event)
	if slot == nil {
		return
	}
	*slot = append(*slot, analyticsEntry{key: callbackKey(fn), fn: fn})
}

// remove deletes the first entry matching the callback's identity. Removing
// a callback that was never added is a no-op.
func (r *registry) remove(event message.EventType, fn AnalyticsListener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot := r.slot(event)
	if slot == nil {
		return
	}
	key := callbackKey(fn)
	for i, entry := range *slot {
		if entry.key == key {
			*slot = append((*slot)[:i], (*slot)[i+1:]...)
			return
		}
	}
}

func (r *registry) addRedirect(fn RedirectListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redirect = append(r.redirect, redirectEntry{key: callbackKey(fn), fn: fn})
}

func (r *registry) removeRedirect(fn RedirectListener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := callbackKey(fn)
	for i, entry := range r.redirect {
		if entry.key == key {
			r.redirect = append(r.redirect[:i], r.redirect[i+1:]...)
			return
		}
	}
}

// analyticsSnapshot copies the current listeners for a tag so dispatch
// survives a listener removing itself (or others) mid-iteration. Unsupported
// tags yield nil: zero listeners, no effect.
func (r *registry) analyticsSnapshot(event message.EventType) []AnalyticsListener {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot := r.slot(event)
	if slot == nil || len(*slot) == 0 {
		return nil
	}
	out := make([]AnalyticsListener, len(*slot))
	for i, entry := range *slot {
		out[i] = entry.fn
	}
	return out
}

func (r *registry) redirectSnapshot() []RedirectListener {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.redirect) == 0 {
		return nil
	}
	out := make([]RedirectListener, len(r.redirect))
	for i, entry := range r.redirect {
		out[i] = entry.fn
	}
	return out
}
