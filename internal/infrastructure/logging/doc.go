// Package logging provides the zap-based logger used across the gateway.
//
// The embed core never logs rejected channel traffic - discarding untrusted
// input must stay silent - so loggers here serve lifecycle and gateway
// concerns only.
package logging
