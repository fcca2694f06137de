package transport

import (
	"github.com/golang/glog"

	"github.com/midimiti/midirelay/pkg/midi"
)

// DefaultQueueDepth is the buffer depth used when none is specified.
const DefaultQueueDepth = 64

// Queue is a bounded hand-off buffer between a push-style driver goroutine
// and the single-threaded control loop. Push never blocks: when the buffer
// is full the message is dropped with a warning, since this layer does not
// buffer or resend beyond the queue depth.
type Queue struct {
	name string
	ch   chan midi.Raw
}

// NewQueue creates a queue. depth <= 0 selects DefaultQueueDepth.
func NewQueue(name string, depth int) *Queue {
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	return &Queue{name: name, ch: make(chan midi.Raw, depth)}
}

// Push hands one message to the control loop. Safe from any goroutine.
func (q *Queue) Push(raw midi.Raw) {
	select {
	case q.ch <- raw:
	default:
		glog.Warningf("%s: queue full, message dropped", q.name)
	}
}

// TryRead pops at most one message without blocking.
func (q *Queue) TryRead() (*midi.Raw, error) {
	select {
	case raw := <-q.ch:
		return &raw, nil
	default:
		return nil, nil
	}
}

// Len reports the number of buffered messages.
func (q *Queue) Len() int {
	return len(q.ch)
}
