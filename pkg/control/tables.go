package control

// The mapping tables are kept separate from the dispatch logic so they can
// be iterated and verified exhaustively.

// NoteRelay maps MIDI note numbers to relay ids.
var NoteRelay = map[byte]int{
	60: 1, // C4
	61: 2, // C#4
	62: 3, // D4
	63: 4, // D#4
}

// Control-change mapping: controller numbers CCRelayFirst..CCRelayLast
// address relays 1..4 directly; values at or above CCOnThreshold switch the
// relay on, anything below switches it off.
const (
	CCRelayFirst  byte = 1
	CCRelayLast   byte = 4
	CCOnThreshold byte = 64
)

// ccRelay resolves a controller number to a relay id, 0 when unmapped.
func ccRelay(cc byte) int {
	if cc < CCRelayFirst || cc > CCRelayLast {
		return 0
	}
	return int(cc)
}
