package embed

import (
	"github.com/flowframe/embed/internal/message"
)

// handleAnalytics dispatches an analytics event to its listener set. The
// flow-closure tag tears the channel down before any listener is notified,
// so a flow-closed listener always observes a dead channel and a detached
// frame. Tags outside the whitelist select zero listeners.
func (c *Controller) handleAnalytics(ev message.Event) {
	if ev.Type == message.EventFlowClosed {
		c.teardown()
	}

	for _, fn := range c.registry.analyticsSnapshot(ev.Type) {
		fn(ev.Answers)
	}
}
