package control

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/midimiti/midirelay/pkg/midi"
	"github.com/midimiti/midirelay/pkg/transport"
)

// DefaultInterval is the bounded sleep between polling iterations. It exists
// to bound CPU usage and loop frequency, not to guarantee latency.
const DefaultInterval = time.Millisecond

// Loop is the cooperative polling loop. Once per iteration it services every
// transport's housekeeping task and dispatches at most one message from each
// transport, so a burst on one channel cannot starve another. A dispatched
// message's relay effects complete fully before the next transport is
// polled.
type Loop struct {
	Transports []transport.Transport
	Mapper     *Mapper
	Interval   time.Duration
}

// NewLoop creates a Loop over the given transports.
func NewLoop(mapper *Mapper, transports ...transport.Transport) *Loop {
	return &Loop{
		Transports: transports,
		Mapper:     mapper,
		Interval:   DefaultInterval,
	}
}

// Run implements Runnable. It polls until the context is canceled.
func (l *Loop) Run(ctx context.Context) error {
	interval := l.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		l.RunOnce()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce executes a single polling iteration.
func (l *Loop) RunOnce() {
	for _, t := range l.Transports {
		t.Task()
		if !t.Ready() {
			continue
		}
		raw, err := t.TryRead()
		if err != nil {
			glog.Warningf("%s: read: %v", t.Name(), err)
			continue
		}
		if raw == nil {
			continue
		}
		l.Mapper.Apply(midi.DecodeRaw(*raw, t.Name()))
	}
}
