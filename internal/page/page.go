package page

import "sync"

// Navigator performs a full top-level navigation of the host page.
type Navigator interface {
	Assign(url string)
}

// History is the optional in-place navigation mechanism. A page without one
// falls back to full navigation for every redirect.
type History interface {
	Push(url string)
}

// Page models the host document: an origin, an optional history mechanism, a
// navigator, the set of mounted frames, and the page-wide message bus.
type Page struct {
	origin    string
	bus       *Bus
	history   History
	navigator Navigator

	mu       sync.Mutex
	frames   []*Frame
	location string
}

// Option configures a Page at construction.
type Option func(*Page)

// WithHistory attaches an in-place navigation mechanism.
func WithHistory(h History) Option {
	return func(p *Page) { p.history = h }
}

// WithNavigator replaces the default navigator, which only records the
// target URL.
func WithNavigator(n Navigator) Option {
	return func(p *Page) { p.navigator = n }
}

// New creates a page with the given document origin.
func New(origin string, opts ...Option) *Page {
	p := &Page{
		origin: origin,
		bus:    NewBus(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Origin returns the document origin (scheme+host+port).
func (p *Page) Origin() string {
	return p.origin
}

// Bus returns the page-wide message channel.
func (p *Page) Bus() *Bus {
	return p.bus
}

// History returns the page's history mechanism, or nil.
func (p *Page) History() History {
	return p.history
}

// Navigate performs a full top-level navigation. With no custom navigator the
// target is only recorded, retrievable via Location.
func (p *Page) Navigate(url string) {
	p.mu.Lock()
	p.location = url
	nav := p.navigator
	p.mu.Unlock()

	if nav != nil {
		nav.Assign(url)
	}
}

// Location returns the target of the most recent full navigation, or empty.
func (p *Page) Location() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.location
}

// Frames returns the currently mounted frames in mount order.
func (p *Page) Frames() []*Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Frame, len(p.frames))
	copy(out, p.frames)
	return out
}

func (p *Page) attach(f *Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, f)
}

func (p *Page) detach(f *Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, mounted := range p.frames {
		if mounted == f {
			p.frames = append(p.frames[:i], p.frames[i+1:]...)
			return
		}
	}
}
