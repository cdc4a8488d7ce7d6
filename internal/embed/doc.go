// Package embed implements the validated, typed channel between a host page
// and an embedded flow frame.
//
// A Controller owns one frame and one subscription to the page-wide message
// bus. Every inbound message passes three gates - sender window, declared
// origin, envelope shape - before dispatch; anything that fails any gate is
// discarded with no observable effect. Validated events fan out to per-event
// listener sets (registration order preserved) or drive one of two
// side-effecting protocols:
//
//   - Redirect: all redirect listeners vote; any true vote suppresses
//     navigation, otherwise the page navigates (in-place via history when
//     enabled, same-origin, and available; full navigation otherwise).
//   - Resize: reported width/height are applied to the frame independently,
//     only while AutoHeight is enabled.
//
// The flow-closed analytics tag tears the channel down (subscription
// cancelled, frame removed) before its listeners run; after that, inbound
// messages are dead on arrival.
//
// Manager adds the gateway-side lifecycle: create/get/list/close of hosted
// instances, each on its own page.
package embed
