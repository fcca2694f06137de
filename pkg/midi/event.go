package midi

// Status byte values of the channel messages understood by the relay core.
const (
	StatusNoteOff       byte = 0x80
	StatusNoteOn        byte = 0x90
	StatusControlChange byte = 0xB0
	StatusProgramChange byte = 0xC0
)

// Kind identifies the type of a decoded MIDI message.
type Kind int

// Message kinds.
const (
	KindUnknown Kind = iota
	KindNoteOff
	KindNoteOn
	KindControlChange
	KindProgramChange
)

// String returns a short name for logging.
func (k Kind) String() string {
	switch k {
	case KindNoteOff:
		return "note-off"
	case KindNoteOn:
		return "note-on"
	case KindControlChange:
		return "control-change"
	case KindProgramChange:
		return "program-change"
	}
	return "unknown"
}

// Raw is an undecoded 3-byte MIDI message as read from a transport.
type Raw struct {
	Status byte
	Data1  byte
	Data2  byte
}

// RawFrom builds a Raw from a 1..3 byte wire frame, zero-padding missing
// trailing bytes. Extra bytes beyond the third are ignored.
func RawFrom(frame []byte) (r Raw) {
	if len(frame) > 0 {
		r.Status = frame[0]
	}
	if len(frame) > 1 {
		r.Data1 = frame[1]
	}
	if len(frame) > 2 {
		r.Data2 = frame[2]
	}
	return
}

// Event is a decoded MIDI message.
type Event struct {
	Kind    Kind
	Channel byte // 0..15
	Data1   byte // note, controller or program number
	Data2   byte // velocity or controller value, unused for program change

	// Source names the transport the message arrived on. It is carried for
	// logging only and never affects mapping.
	Source string
}

// Decode decodes a 3-byte message. It has no failure path.
func Decode(b0, b1, b2 byte) Event {
	ev := Event{Channel: b0 & 0x0f, Data1: b1, Data2: b2}
	switch b0 & 0xf0 {
	case StatusNoteOff:
		ev.Kind = KindNoteOff
	case StatusNoteOn:
		ev.Kind = KindNoteOn
	case StatusControlChange:
		ev.Kind = KindControlChange
	case StatusProgramChange:
		ev.Kind = KindProgramChange
	default:
		ev.Kind = KindUnknown
	}
	return ev
}

// DecodeRaw decodes a Raw and tags the event with its source transport.
func DecodeRaw(raw Raw, source string) Event {
	ev := Decode(raw.Status, raw.Data1, raw.Data2)
	ev.Source = source
	return ev
}
