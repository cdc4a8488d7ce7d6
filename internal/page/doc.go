// Package page models the host document side of the embed: pages, frames,
// content windows, and the page-wide cross-document message bus.
//
// A Page owns a Bus on which every mounted frame's Window posts origin-tagged
// messages. Delivery is synchronous and ordered; Subscribe returns an
// explicit per-subscriber handle whose Cancel is idempotent, so each embed
// instance controls its own lifecycle on a shared channel.
//
// The package is transport-agnostic on purpose: in the gateway the "frame
// content" is a WebSocket peer relaying envelopes, while tests post directly
// through a frame's window.
package page
