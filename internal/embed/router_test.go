package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowframe/embed/internal/message"
	"github.com/flowframe/embed/internal/page"
)

const trustedOrigin = "https://flow.test"

func newTestController(t *testing.T, opts Options) (*page.Page, *Controller) {
	t.Helper()
	if opts.Origin == "" {
		opts.Origin = trustedOrigin
	}
	p := page.New("https://host.test")
	return p, New(p, opts)
}

func post(ctrl *Controller, origin, envelope string) {
	ctrl.Frame().Window().Post(origin, []byte(envelope))
}

func TestRouterDispatchesTrustedAnalytics(t *testing.T) {
	_, ctrl := newTestController(t, Options{})

	var got message.Answers
	ctrl.AddEventListener(message.EventStepLoaded, func(answers message.Answers) {
		got = answers
	})

	post(ctrl, trustedOrigin, `{"kind":"analytics","eventType":"step-loaded","answers":{"step":"2"}}`)

	assert.Equal(t, "2", got["step"])
}

func TestRouterDiscardsForeignOrigin(t *testing.T) {
	_, ctrl := newTestController(t, Options{})

	called := false
	ctrl.AddEventListener(message.EventStepLoaded, func(message.Answers) { called = true })

	post(ctrl, "https://evil.test", `{"kind":"analytics","eventType":"step-loaded"}`)
	post(ctrl, "https://flow.test/", `{"kind":"analytics","eventType":"step-loaded"}`) // not byte-equal

	assert.False(t, called)
}

func TestRouterDiscardsForeignSource(t *testing.T) {
	p, ctrl := newTestController(t, Options{})

	called := false
	ctrl.AddEventListener(message.EventStepLoaded, func(message.Answers) { called = true })

	// A second frame on the same page shares the bus but not the identity.
	other := p.CreateFrame()
	other.Window().Post(trustedOrigin, []byte(`{"kind":"analytics","eventType":"step-loaded"}`))

	assert.False(t, called)
}

func TestRouterDiscardsMalformedPayloads(t *testing.T) {
	_, ctrl := newTestController(t, Options{})

	called := false
	ctrl.AddEventListener(message.EventStepLoaded, func(message.Answers) { called = true })

	post(ctrl, trustedOrigin, `not json at all`)
	post(ctrl, trustedOrigin, `{"kind":"mystery"}`)
	post(ctrl, trustedOrigin, `{"eventType":"step-loaded"}`)

	assert.False(t, called)
}

func TestTwoInstancesOnOnePageDoNotCrossTalk(t *testing.T) {
	p := page.New("https://host.test")
	a := New(p, Options{Origin: trustedOrigin})
	b := New(p, Options{Origin: trustedOrigin})

	var hits []string
	a.AddEventListener(message.EventFlowLoaded, func(message.Answers) { hits = append(hits, "a") })
	b.AddEventListener(message.EventFlowLoaded, func(message.Answers) { hits = append(hits, "b") })

	post(a, trustedOrigin, `{"kind":"analytics","eventType":"flow-loaded"}`)

	assert.Equal(t, []string{"a"}, hits)
}

func TestUnsupportedAnalyticsTagHasNoEffect(t *testing.T) {
	_, ctrl := newTestController(t, Options{})

	called := false
	ctrl.AddEventListener(message.EventFlowLoaded, func(message.Answers) { called = true })

	assert.NotPanics(t, func() {
		post(ctrl, trustedOrigin, `{"kind":"analytics","eventType":"flow-opened"}`)
	})
	assert.False(t, called)
}
