package usbmidi

import (
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

const rescanInterval = time.Second

// PortDriver implements Driver on top of a system MIDI input port. Incoming
// channel messages are re-framed as 4-byte USB-MIDI packets so the transport
// sees the same wire format as a directly attached device. The driver is
// hot-plug aware: Task rescans for the port and reconnects when it
// reappears.
type PortDriver struct {
	// PortName selects the input port by substring match. Empty matches the
	// first available port.
	PortName string

	drv     *rtmididrv.Driver
	packets chan [4]byte

	mu       sync.Mutex
	in       drivers.In
	stop     func()
	name     string
	mounted  bool
	lastScan time.Time
}

// NewPortDriver initializes the underlying rtmidi driver. Call Close when
// done.
func NewPortDriver(portName string) (*PortDriver, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, err
	}
	return &PortDriver{
		PortName: portName,
		drv:      drv,
		packets:  make(chan [4]byte, 64),
	}, nil
}

// Mounted implements Driver.
func (d *PortDriver) Mounted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mounted
}

// ReadPacket implements Driver.
func (d *PortDriver) ReadPacket() ([4]byte, bool) {
	select {
	case pkt := <-d.packets:
		return pkt, true
	default:
		return [4]byte{}, false
	}
}

// Task implements Driver. It scans for the configured port on an interval,
// connects when it appears and disconnects when it disappears.
func (d *PortDriver) Task() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if time.Since(d.lastScan) < rescanInterval {
		return
	}
	d.lastScan = time.Now()

	ins, err := d.drv.Ins()
	if err != nil {
		glog.Errorf("usb midi: list inputs: %v", err)
		return
	}

	if d.mounted {
		for _, in := range ins {
			if in.String() == d.name {
				return
			}
		}
		glog.Warningf("usb midi: port %q disappeared", d.name)
		d.unmountLocked()
		return
	}

	var found drivers.In
	for _, in := range ins {
		if d.PortName == "" || strings.Contains(in.String(), d.PortName) {
			found = in
			break
		}
	}
	if found == nil {
		return
	}
	if err := found.Open(); err != nil {
		glog.Warningf("usb midi: open %q: %v", found.String(), err)
		return
	}
	stop, err := gomidi.ListenTo(found, d.onMessage, gomidi.HandleError(d.onListenError))
	if err != nil {
		glog.Warningf("usb midi: listen %q: %v", found.String(), err)
		_ = found.Close()
		return
	}
	d.in, d.stop, d.name, d.mounted = found, stop, found.String(), true
	glog.Infof("usb midi: mounted %q", d.name)
}

// Close shuts down the active connection and the rtmidi driver.
func (d *PortDriver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mounted {
		d.unmountLocked()
	}
	_ = d.drv.Close()
}

func (d *PortDriver) onMessage(msg gomidi.Message, _ int32) {
	b := msg.Bytes()
	if len(b) == 0 || b[0] < 0x80 {
		return
	}
	// Cable 0, CIN derived from the status high nibble.
	pkt := [4]byte{b[0] >> 4}
	for i := 0; i < 3 && i < len(b); i++ {
		pkt[i+1] = b[i]
	}
	select {
	case d.packets <- pkt:
	default:
		glog.Warning("usb midi: packet buffer full, message dropped")
	}
}

func (d *PortDriver) onListenError(err error) {
	glog.Warningf("usb midi: listener: %v", err)
	// The listener callback must not re-enter the driver directly.
	go func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.mounted {
			d.unmountLocked()
		}
	}()
}

func (d *PortDriver) unmountLocked() {
	if d.stop != nil {
		d.stop()
		d.stop = nil
	}
	if d.in != nil {
		_ = d.in.Close()
		d.in = nil
	}
	d.mounted = false
	d.name = ""
	d.lastScan = time.Time{}
}
