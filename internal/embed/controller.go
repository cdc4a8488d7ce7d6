package embed

import (
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/flowframe/embed/internal/flowurl"
	"github.com/flowframe/embed/internal/infrastructure/logging"
	"github.com/flowframe/embed/internal/message"
	"github.com/flowframe/embed/internal/page"
	"github.com/flowframe/embed/internal/shared/id"
)

// DefaultOrigin is the canonical flow host origin, trusted when no explicit
// origin is configured.
const DefaultOrigin = "https://flow.flowframe.dev"

// Style holds the frame's initial displayed dimensions.
type Style struct {
	Width  string
	Height string
}

// Options configures an embed instance.
type Options struct {
	// Origin is the single trusted origin for inbound messages.
	// Defaults to DefaultOrigin.
	Origin string

	// UseHistoryAPI enables in-place history navigation for redirects whose
	// target shares the document origin.
	UseHistoryAPI bool

	// AutoHeight enables the resize handler. Resize envelopes arriving while
	// disabled are discarded.
	AutoHeight bool

	// Style sets the frame's initial width and height.
	Style Style

	// Logger is used for lifecycle events only. Defaults to a no-op logger.
	Logger *logging.Logger
}

// Controller owns one embedded frame and its typed channel to the host page:
// it mounts the frame, subscribes to the page-wide bus, routes validated
// messages to the listener sets, and tears everything down exactly once.
type Controller struct {
	id       id.EmbedID
	page     *page.Page
	frame    *page.Frame
	origin   string
	opts     Options
	registry registry
	sub      *page.Subscription
	log      *logging.Logger

	closeOnce sync.Once
	closedFn  func()
}

// New mounts a frame on the page and opens the message channel.
func New(p *page.Page, opts Options) *Controller {
	if opts.Origin == "" {
		opts.Origin = DefaultOrigin
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	c := &Controller{
		id:     id.NewEmbedID(),
		page:   p,
		origin: opts.Origin,
		opts:   opts,
		log:    opts.Logger,
	}

	c.frame = p.CreateFrame()
	if opts.Style.Width != "" {
		c.frame.SetWidth(opts.Style.Width)
	}
	if opts.Style.Height != "" {
		c.frame.SetHeight(opts.Style.Height)
	}

	c.sub = p.Bus().Subscribe(c.handleMessage)

	c.log.Debug("embed mounted",
		zap.String("embed_id", c.id.String()),
		zap.String("origin", c.origin),
	)

	return c
}

// ID returns the instance identifier.
func (c *Controller) ID() id.EmbedID {
	return c.id
}

// Frame returns the owned frame element.
func (c *Controller) Frame() *page.Frame {
	return c.frame
}

// Origin returns the configured trusted origin.
func (c *Controller) Origin() string {
	return c.origin
}

// LoadFlow builds the frame's navigation target from client, flow, and
// optional variant labels plus extra query parameters, and assigns it.
func (c *Controller) LoadFlow(client, flow, variant string, params url.Values) error {
	target, err := flowurl.Build(c.origin, client, flow, variant, params)
	if err != nil {
		return err
	}
	c.frame.SetSrc(target)

	c.log.Debug("flow loaded",
		zap.String("embed_id", c.id.String()),
		zap.String("url", target),
	)
	return nil
}

// SetSize updates the frame's displayed dimensions.
func (c *Controller) SetSize(width, height string) {
	if width != "" {
		c.frame.SetWidth(width)
	}
	if height != "" {
		c.frame.SetHeight(height)
	}
}

// AddEventListener registers a listener for an analytics event. Listeners
// for one event run in registration order. Unsupported tags are ignored.
func (c *Controller) AddEventListener(event message.EventType, fn AnalyticsListener) {
	c.registry.add(event, fn)
}

// RemoveEventListener removes a previously added listener by identity.
// Removing an absent listener is a no-op.
func (c *Controller) RemoveEventListener(event message.EventType, fn AnalyticsListener) {
	c.registry.remove(event, fn)
}

// AddRedirectListener registers a redirect listener, which may veto the
// navigation by returning true.
func (c *Controller) AddRedirectListener(fn RedirectListener) {
	c.registry.addRedirect(fn)
}

// RemoveRedirectListener removes a redirect listener by identity.
func (c *Controller) RemoveRedirectListener(fn RedirectListener) {
	c.registry.removeRedirect(fn)
}

// OnClosed registers a hook invoked once at teardown, whether triggered by
// the flow signalling closure or by an explicit Close.
func (c *Controller) OnClosed(fn func()) {
	c.closedFn = fn
}

// Close tears down the channel and removes the frame. Idempotent.
func (c *Controller) Close() {
	c.teardown()
}

// Closed reports whether the instance has been torn down.
func (c *Controller) Closed() bool {
	return c.frame.Removed()
}

// teardown cancels the bus subscription and removes the frame, exactly once.
func (c *Controller) teardown() {
	c.closeOnce.Do(func() {
		c.sub.Cancel()
		c.frame.Remove()

		c.log.Debug("embed closed", zap.String("embed_id", c.id.String()))

		if c.closedFn != nil {
			c.closedFn()
		}
	})
}
