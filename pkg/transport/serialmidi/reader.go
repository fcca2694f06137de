// Package serialmidi reads DIN MIDI from a serial port at 31250 baud.
package serialmidi

import (
	"github.com/midimiti/midirelay/pkg/midi"
)

// Reader assembles MIDI messages from a raw byte stream, handling running
// status: a channel status byte latches and subsequent data bytes reuse it
// until another status byte arrives. Realtime bytes (0xF8..0xFF) are skipped
// without disturbing an in-progress message; other system messages clear the
// running status and are dropped. Data bytes without a latched status are
// dropped.
type Reader struct {
	status byte
	data   [2]byte
	have   int
	need   int
}

// Feed consumes one byte. It returns a complete message and true when the
// byte finishes one.
func (r *Reader) Feed(b byte) (midi.Raw, bool) {
	switch {
	case b >= 0xf8: // realtime
		return midi.Raw{}, false
	case b >= 0xf0: // system common, clears running status
		r.status, r.have = 0, 0
		return midi.Raw{}, false
	case b >= 0x80: // status
		r.status = b
		r.have = 0
		r.need = dataLen(b)
		return midi.Raw{}, false
	default: // data
		if r.status == 0 {
			return midi.Raw{}, false
		}
		r.data[r.have] = b
		r.have++
		if r.have < r.need {
			return midi.Raw{}, false
		}
		raw := midi.Raw{Status: r.status, Data1: r.data[0]}
		if r.need > 1 {
			raw.Data2 = r.data[1]
		}
		r.have = 0 // running status stays latched
		return raw, true
	}
}

// dataLen is the data byte count of a channel message: one for program
// change and channel pressure, two for everything else.
func dataLen(status byte) int {
	switch status & 0xf0 {
	case 0xc0, 0xd0:
		return 1
	}
	return 2
}
