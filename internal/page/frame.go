package page

import "sync"

// Frame is an embedded sub-document element mounted on a page. Exactly one
// embed controller owns a frame; removing it detaches it from the page and
// severs its window's access to the bus.
type Frame struct {
	window *Window

	mu      sync.Mutex
	page    *Page
	src     string
	width   string
	height  string
	removed bool
}

// Window is the content-side handle of a frame: the identity messages from
// that frame carry as their source.
type Window struct {
	frame *Frame
}

// CreateFrame mounts a new frame on the page and returns it.
func (p *Page) CreateFrame() *Frame {
	f := &Frame{page: p}
	f.window = &Window{frame: f}
	p.attach(f)
	return f
}

// Window returns the frame's content window handle.
func (f *Frame) Window() *Window {
	return f.window
}

// SetSrc assigns the frame's navigation target.
func (f *Frame) SetSrc(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.src = url
}

// Src returns the frame's current navigation target.
func (f *Frame) Src() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.src
}

// SetWidth updates the frame's displayed width style.
func (f *Frame) SetWidth(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width = v
}

// SetHeight updates the frame's displayed height style.
func (f *Frame) SetHeight(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.height = v
}

// Width returns the frame's displayed width style.
func (f *Frame) Width() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width
}

// Height returns the frame's displayed height style.
func (f *Frame) Height() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.height
}

// Remove detaches the frame from its page. Idempotent. A removed frame's
// window can no longer publish onto the page bus.
func (f *Frame) Remove() {
	f.mu.Lock()
	if f.removed {
		f.mu.Unlock()
		return
	}
	f.removed = true
	p := f.page
	f.page = nil
	f.mu.Unlock()

	if p != nil {
		p.detach(f)
	}
}

// Removed reports whether the frame has been detached from its page.
func (f *Frame) Removed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.removed
}

// Post delivers a cross-document message from this window onto the owning
// page's bus, tagged with the declared origin. Posting from a removed frame
// is a no-op.
func (w *Window) Post(origin string, data []byte) {
	w.frame.mu.Lock()
	p := w.frame.page
	w.frame.mu.Unlock()

	if p == nil {
		return
	}
	p.bus.Publish(Message{Source: w, Origin: origin, Data: data})
}
