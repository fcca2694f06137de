// Package control maps decoded MIDI events to relay operations and runs the
// transport polling loop.
package control

import (
	"github.com/golang/glog"

	"github.com/midimiti/midirelay/pkg/midi"
	"github.com/midimiti/midirelay/pkg/relay"
)

// Mapper translates decoded MIDI events into relay controller calls.
type Mapper struct {
	Relays *relay.Controller
}

// NewMapper creates a Mapper driving the given controller.
func NewMapper(relays *relay.Controller) *Mapper {
	return &Mapper{Relays: relays}
}

// Apply dispatches one event. It never fails: unmapped or unrecognized input
// is logged and dropped, it must not halt the loop.
func (m *Mapper) Apply(ev midi.Event) {
	switch {
	case ev.Kind == midi.KindNoteOn && ev.Data2 > 0:
		glog.V(1).Infof("[%s] note on: ch%d note %d vel %d", ev.Source, ev.Channel+1, ev.Data1, ev.Data2)
		m.applyNote(ev, true)
	case ev.Kind == midi.KindNoteOn || ev.Kind == midi.KindNoteOff:
		// Note on with velocity 0 is note off by MIDI convention.
		glog.V(1).Infof("[%s] note off: ch%d note %d", ev.Source, ev.Channel+1, ev.Data1)
		m.applyNote(ev, false)
	case ev.Kind == midi.KindControlChange:
		glog.V(1).Infof("[%s] cc: ch%d cc%d val %d", ev.Source, ev.Channel+1, ev.Data1, ev.Data2)
		if id := ccRelay(ev.Data1); id != 0 {
			m.Relays.Set(id, ev.Data2 >= CCOnThreshold)
		}
	case ev.Kind == midi.KindProgramChange:
		glog.V(1).Infof("[%s] program: ch%d prog %d", ev.Source, ev.Channel+1, ev.Data1)
		m.applyProgram(ev.Data1)
	default:
		glog.V(1).Infof("[%s] unknown midi: ch%d %02x %02x", ev.Source, ev.Channel+1, ev.Data1, ev.Data2)
	}
}

func (m *Mapper) applyNote(ev midi.Event, on bool) {
	id, ok := NoteRelay[ev.Data1]
	if !ok {
		if on {
			glog.V(1).Infof("[%s] note %d not mapped to relay", ev.Source, ev.Data1)
		}
		return
	}
	m.Relays.Set(id, on)
}

// applyProgram implements exclusive select: all relays are forced off with
// one Set call each, then the selected relay is switched on. Programs beyond
// the relay range leave everything off.
func (m *Mapper) applyProgram(program byte) {
	for id := 1; id <= relay.NumRelays; id++ {
		m.Relays.Set(id, false)
	}
	if int(program) < relay.NumRelays {
		m.Relays.Set(int(program)+1, true)
	}
}
