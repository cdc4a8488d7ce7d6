package embed

import (
	"strings"

	"github.com/flowframe/embed/internal/message"
)

// handleRedirect runs the cancellation-vote protocol and, absent a veto,
// navigates the host page. Every listener is invoked even after an earlier
// one has voted to cancel: listeners may carry side effects that must run.
func (c *Controller) handleRedirect(ev message.Event) {
	cancelled := false
	for _, fn := range c.registry.redirectSnapshot() {
		if fn(ev.URL, ev.Answers) {
			cancelled = true
		}
	}
	if cancelled {
		return
	}

	// In-place history navigation only when enabled, the target stays on the
	// document origin (string prefix test), and the page has a history
	// mechanism. Anything else is a full top-level navigation.
	if c.opts.UseHistoryAPI && strings.HasPrefix(ev.URL, c.page.Origin()) && c.page.History() != nil {
		c.page.History().Push(ev.URL)
		return
	}

	c.page.Navigate(ev.URL)
}
