package serialmidi

import (
	"sync/atomic"

	"github.com/golang/glog"
	"go.bug.st/serial"

	"github.com/midimiti/midirelay/pkg/midi"
	"github.com/midimiti/midirelay/pkg/transport"
)

// MIDIBaud is the DIN MIDI line rate.
const MIDIBaud = 31250

// Transport reads DIN MIDI from a serial port. A reader goroutine feeds
// assembled messages through a bounded queue; the control loop side never
// blocks.
type Transport struct {
	device string
	port   serial.Port
	queue  *transport.Queue
	open   atomic.Bool
}

// Open opens the serial device and starts the reader.
func Open(device string, baud int) (*Transport, error) {
	if baud <= 0 {
		baud = MIDIBaud
	}
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, err
	}
	t := &Transport{
		device: device,
		port:   port,
		queue:  transport.NewQueue("serial", 0),
	}
	t.open.Store(true)
	glog.Infof("serial midi: opened %s at %d baud", device, baud)
	go t.readLoop()
	return t, nil
}

// Name implements transport.Transport.
func (t *Transport) Name() string { return "serial" }

// Ready implements transport.Transport.
func (t *Transport) Ready() bool { return t.open.Load() }

// Task implements transport.Transport.
func (t *Transport) Task() {}

// TryRead implements transport.Transport.
func (t *Transport) TryRead() (*midi.Raw, error) {
	return t.queue.TryRead()
}

// Close closes the port; the reader goroutine exits on the next read.
func (t *Transport) Close() error {
	t.open.Store(false)
	return t.port.Close()
}

func (t *Transport) readLoop() {
	var reader Reader
	buf := make([]byte, 64)
	for {
		n, err := t.port.Read(buf)
		if err != nil {
			if t.open.Swap(false) {
				glog.Errorf("serial midi: read %s: %v", t.device, err)
			}
			return
		}
		for _, b := range buf[:n] {
			if raw, ok := reader.Feed(b); ok {
				t.queue.Push(raw)
			}
		}
	}
}
