// Package gpio abstracts the binary output lines driven by the relay
// controller.
package gpio

import (
	"github.com/golang/glog"
)

// Output is a single binary output line.
type Output interface {
	Write(on bool) error
}

// OutputFunc is the func form of Output.
type OutputFunc func(on bool) error

// Write implements Output.
func (f OutputFunc) Write(on bool) error { return f(on) }

// SimOutput is an in-memory output line used in tests and when running
// without hardware. It counts writes so redundant-write behavior can be
// verified.
type SimOutput struct {
	Pin    int
	On     bool
	Writes int
}

// Write implements Output.
func (o *SimOutput) Write(on bool) error {
	o.On = on
	o.Writes++
	glog.V(2).Infof("gpio %d <- %v", o.Pin, on)
	return nil
}
