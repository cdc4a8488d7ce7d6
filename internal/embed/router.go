package embed

import (
	"github.com/flowframe/embed/internal/message"
	"github.com/flowframe/embed/internal/page"
)

// handleMessage is the channel entry point for one inbound cross-document
// message. The gate order is fixed: source, then origin, then shape. Every
// rejection is silent - no log, no error, no observable effect - and each
// message runs to completion before the bus delivers the next.
func (c *Controller) handleMessage(msg page.Message) {
	if msg.Source != c.frame.Window() {
		return
	}
	if msg.Origin != c.origin {
		return
	}

	ev := message.Classify(msg.Data)
	switch ev.Kind {
	case message.KindAnalytics:
		c.handleAnalytics(ev)
	case message.KindRedirect:
		c.handleRedirect(ev)
	case message.KindResize:
		if c.opts.AutoHeight {
			c.handleResize(ev)
		}
	}
}
