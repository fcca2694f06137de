// Package transport defines the inbound channels delivering raw MIDI
// messages to the control loop.
package transport

import (
	"github.com/midimiti/midirelay/pkg/midi"
)

// Transport is one inbound channel. All methods are non-blocking: the
// control loop calls them once per iteration and must never stall on a
// transport.
type Transport interface {
	// Name identifies the transport in logs and decoded events.
	Name() string
	// Ready reports whether the channel is usable (mounted, connected).
	Ready() bool
	// TryRead returns at most one pending message, or nil when none is
	// pending. A nil message is not an error.
	TryRead() (*midi.Raw, error)
	// Task performs per-iteration housekeeping such as stack servicing,
	// port rescans or reconnects.
	Task()
}
