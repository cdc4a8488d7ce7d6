// Package message defines the cross-document wire envelope and the validator
// that classifies untrusted payloads into the closed set of typed events.
//
// The wire envelope is a JSON object with a kind tag and a kind-specific body:
//
//	{"kind": "analytics", "eventType": "step-completed", "answers": {...}}
//	{"kind": "redirect", "payload": "https://...", "answers": {...}}
//	{"kind": "resize", "payload": {"width": 640, "height": "480px"}}
//
// Classify is the sole trust boundary for inbound frame traffic. It returns a
// definite classification or KindUnknown, never an error: payloads that fail
// shape checks are discarded silently downstream.
package message
