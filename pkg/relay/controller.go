// Package relay owns the actuator state and drives the bound output lines.
package relay

import (
	"github.com/golang/glog"

	"github.com/midimiti/midirelay/pkg/gpio"
)

// NumRelays is the number of relays driven by a Controller.
const NumRelays = 4

// DefaultPins are the output pins the relays are bound to by default.
var DefaultPins = [NumRelays]int{16, 17, 18, 19}

// StateListener is notified with a state snapshot after every accepted Set.
type StateListener func(states [NumRelays]bool)

// Controller owns the relay state array and the output lines bound to it.
// It must only be used from the control loop goroutine; there is no locking
// because there is no concurrent writer.
type Controller struct {
	// Listener, when set, observes every state change for publishing.
	Listener StateListener

	outputs [NumRelays]gpio.Output
	states  [NumRelays]bool
}

// NewController binds a controller to its output lines. All relays start off.
func NewController(outputs [NumRelays]gpio.Output) *Controller {
	return &Controller{outputs: outputs}
}

// Set switches relay id (1..NumRelays) on or off. Ids out of range are
// ignored. The bound output is written unconditionally, even when the new
// state equals the old one, so every call causes one physical write.
func (c *Controller) Set(id int, on bool) {
	if id < 1 || id > NumRelays {
		glog.V(1).Infof("relay id %d out of range, ignored", id)
		return
	}
	c.states[id-1] = on
	if out := c.outputs[id-1]; out != nil {
		if err := out.Write(on); err != nil {
			glog.Errorf("relay %d: output write: %v", id, err)
		}
	}
	glog.Infof("relay %d: %s, states %s", id, onOff(on), FormatStates(c.states))
	if c.Listener != nil {
		c.Listener(c.states)
	}
}

// States returns a snapshot of all relay states.
func (c *Controller) States() [NumRelays]bool {
	return c.states
}

// FormatStates renders a state snapshot as a compact digit string, one digit
// per relay, e.g. "1010". The same form is used in logs and on the wire by
// the status publisher.
func FormatStates(states [NumRelays]bool) string {
	b := make([]byte, NumRelays)
	for i, on := range states {
		b[i] = '0'
		if on {
			b[i] = '1'
		}
	}
	return string(b)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
