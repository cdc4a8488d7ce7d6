// Package version carries the embed library version, stamped into every
// flow URL so the flow host can tell embedded renders apart.
package version

// Version is the current release. Overridable at link time:
//
//	go build -ldflags "-X github.com/flowframe/embed/internal/version.Version=1.2.3"
var Version = "0.4.0"
