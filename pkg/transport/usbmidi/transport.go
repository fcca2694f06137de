// Package usbmidi reads MIDI messages framed as 4-byte USB-MIDI event
// packets from a mounted device.
package usbmidi

import (
	"github.com/midimiti/midirelay/pkg/midi"
)

// Driver is the USB device collaborator: a MIDI function delivering 4-byte
// USB-MIDI event packets while mounted.
type Driver interface {
	// Mounted reports whether the device is enumerated and usable.
	Mounted() bool
	// ReadPacket returns one pending packet, if any.
	ReadPacket() ([4]byte, bool)
	// Task services the USB stack. May cause mount state transitions.
	Task()
}

// Transport adapts a Driver to the control loop. Byte 0 of each packet is
// the USB-MIDI cable/CIN byte and is discarded; bytes 1..3 carry the MIDI
// message.
type Transport struct {
	driver Driver
}

// New creates the transport.
func New(driver Driver) *Transport {
	return &Transport{driver: driver}
}

// Name implements transport.Transport.
func (t *Transport) Name() string { return "usb" }

// Ready implements transport.Transport.
func (t *Transport) Ready() bool { return t.driver.Mounted() }

// Task implements transport.Transport.
func (t *Transport) Task() { t.driver.Task() }

// TryRead implements transport.Transport.
func (t *Transport) TryRead() (*midi.Raw, error) {
	pkt, ok := t.driver.ReadPacket()
	if !ok {
		return nil, nil
	}
	return &midi.Raw{Status: pkt[1], Data1: pkt[2], Data2: pkt[3]}, nil
}
