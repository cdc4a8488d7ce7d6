package message

// Kind classifies a cross-document envelope.
type Kind int

const (
	// KindUnknown marks a payload that failed classification. Unknown
	// envelopes are inert: no handler ever sees one.
	KindUnknown Kind = iota
	KindAnalytics
	KindRedirect
	KindResize
)

// String returns the wire tag for the kind.
func (k Kind) String() string {
	switch k {
	case KindAnalytics:
		return "analytics"
	case KindRedirect:
		return "redirect"
	case KindResize:
		return "resize"
	default:
		return "unknown"
	}
}

// EventType names an analytics event emitted by flow content.
type EventType string

const (
	EventFlowLoaded    EventType = "flow-loaded"
	EventFlowClosed    EventType = "flow-closed"
	EventFlowFinalized EventType = "flow-finalized"
	EventStepLoaded    EventType = "step-loaded"
	EventStepCompleted EventType = "step-completed"
)

// SupportedEvents is the closed set of analytics event names. Tags outside
// this set are deliverable on the wire but never reach a listener.
var SupportedEvents = []EventType{
	EventFlowLoaded,
	EventFlowClosed,
	EventFlowFinalized,
	EventStepLoaded,
	EventStepCompleted,
}

// Supported reports whether the tag is in the analytics whitelist.
func (t EventType) Supported() bool {
	switch t {
	case EventFlowLoaded, EventFlowClosed, EventFlowFinalized, EventStepLoaded, EventStepCompleted:
		return true
	}
	return false
}

// Answers is the optional answer snapshot carried by analytics and redirect
// envelopes. The core passes it through to listeners without interpreting it.
type Answers map[string]interface{}

// Event is a classified envelope. Kind selects which fields are meaningful:
// Type and Answers for analytics, URL and Answers for redirect, Width and
// Height for resize. Width and Height hold a JSON number (float64) or string
// when present, nil when the dimension was absent.
type Event struct {
	Kind    Kind
	Type    EventType
	URL     string
	Answers Answers
	Width   interface{}
	Height  interface{}
}
