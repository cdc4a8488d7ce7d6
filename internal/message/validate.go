package message

import (
	"github.com/bytedance/sonic"
)

// Classify decodes an untrusted cross-document payload and matches it against
// the three recognized envelope shapes. Anything else - invalid JSON, a
// missing or foreign kind tag, a malformed body - comes back as KindUnknown.
// Classify never panics and never returns an error: rejection is silent by
// policy, and this is the only trust boundary between the wire and the rest
// of the system.
func Classify(data []byte) Event {
	var raw map[string]interface{}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return Event{Kind: KindUnknown}
	}

	kind, ok := raw["kind"].(string)
	if !ok {
		return Event{Kind: KindUnknown}
	}

	switch kind {
	case "analytics":
		return classifyAnalytics(raw)
	case "redirect":
		return classifyRedirect(raw)
	case "resize":
		return classifyResize(raw)
	default:
		return Event{Kind: KindUnknown}
	}
}

func classifyAnalytics(raw map[string]interface{}) Event {
	eventType, ok := raw["eventType"].(string)
	if !ok || eventType == "" {
		return Event{Kind: KindUnknown}
	}

	answers, ok := optionalAnswers(raw)
	if !ok {
		return Event{Kind: KindUnknown}
	}

	return Event{
		Kind:    KindAnalytics,
		Type:    EventType(eventType),
		Answers: answers,
	}
}

func classifyRedirect(raw map[string]interface{}) Event {
	url, ok := raw["payload"].(string)
	if !ok || url == "" {
		return Event{Kind: KindUnknown}
	}

	answers, ok := optionalAnswers(raw)
	if !ok {
		return Event{Kind: KindUnknown}
	}

	return Event{
		Kind:    KindRedirect,
		URL:     url,
		Answers: answers,
	}
}

func classifyResize(raw map[string]interface{}) Event {
	payload, ok := raw["payload"].(map[string]interface{})
	if !ok {
		return Event{Kind: KindUnknown}
	}

	width, ok := optionalDimension(payload, "width")
	if !ok {
		return Event{Kind: KindUnknown}
	}
	height, ok := optionalDimension(payload, "height")
	if !ok {
		return Event{Kind: KindUnknown}
	}

	return Event{
		Kind:   KindResize,
		Width:  width,
		Height: height,
	}
}

// optionalAnswers extracts the answer snapshot. Absent is fine; present but
// not an object rejects the envelope.
func optionalAnswers(raw map[string]interface{}) (Answers, bool) {
	v, present := raw["answers"]
	if !present || v == nil {
		return nil, true
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}
	return Answers(obj), true
}

// optionalDimension extracts a width or height value, which may be a JSON
// number or a string. Absent is fine; any other type rejects the envelope.
func optionalDimension(payload map[string]interface{}, key string) (interface{}, bool) {
	v, present := payload[key]
	if !present || v == nil {
		return nil, true
	}
	switch v.(type) {
	case float64, string:
		return v, true
	default:
		return nil, false
	}
}
