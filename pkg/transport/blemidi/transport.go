// Package blemidi reads MIDI messages from a BLE-MIDI peripheral server.
package blemidi

import (
	"github.com/midimiti/midirelay/pkg/midi"
)

// Server is the BLE-MIDI peripheral collaborator. Implementations own the
// connection state; the transport only polls it.
type Server interface {
	// Connected reports whether a central is connected and subscribed.
	Connected() bool
	// StreamRead returns up to max bytes of one pending BLE-MIDI frame with
	// its 13-bit timestamp. ok is false when nothing is pending; that is not
	// an error.
	StreamRead(max int) (payload []byte, timestamp uint16, ok bool)
	// Task services the wireless stack.
	Task()
}

// Transport adapts a Server to the control loop. BLE-MIDI frames carry 1..3
// payload bytes; missing trailing bytes are zero-padded to form a full
// 3-byte message.
type Transport struct {
	server Server
}

// New creates the transport.
func New(server Server) *Transport {
	return &Transport{server: server}
}

// Name implements transport.Transport.
func (t *Transport) Name() string { return "ble" }

// Ready implements transport.Transport.
func (t *Transport) Ready() bool { return t.server.Connected() }

// Task implements transport.Transport.
func (t *Transport) Task() { t.server.Task() }

// TryRead implements transport.Transport.
func (t *Transport) TryRead() (*midi.Raw, error) {
	payload, _, ok := t.server.StreamRead(3)
	if !ok || len(payload) == 0 {
		return nil, nil
	}
	raw := midi.RawFrom(payload)
	return &raw, nil
}
