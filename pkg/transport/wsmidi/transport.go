// Package wsmidi receives MIDI messages over a websocket connection, one
// message per binary frame.
package wsmidi

import (
	"sync"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/midimiti/midirelay/pkg/midi"
	"github.com/midimiti/midirelay/pkg/transport"
)

const redialInterval = time.Second

// Transport dials a websocket endpoint and reads binary frames of 1..3
// bytes, zero-padded to full messages. Task redials after the connection
// drops, on a bounded interval.
type Transport struct {
	URL    string
	Origin string

	queue *transport.Queue

	mu        sync.Mutex
	conn      *websocket.Conn
	dialing   bool
	connected bool
	lastDial  time.Time
}

// New creates the transport. The first dial happens on the first Task call.
func New(url string) *Transport {
	return &Transport{
		URL:    url,
		Origin: "http://localhost/",
		queue:  transport.NewQueue("ws", 0),
	}
}

// Name implements transport.Transport.
func (t *Transport) Name() string { return "ws" }

// Ready implements transport.Transport.
func (t *Transport) Ready() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

// TryRead implements transport.Transport.
func (t *Transport) TryRead() (*midi.Raw, error) {
	return t.queue.TryRead()
}

// Task implements transport.Transport. Dialing happens in the background so
// the control loop never waits on the network.
func (t *Transport) Task() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.connected || t.dialing || time.Since(t.lastDial) < redialInterval {
		return
	}
	t.dialing = true
	t.lastDial = time.Now()
	go t.dial()
}

// Close drops the active connection.
func (t *Transport) Close() {
	t.mu.Lock()
	conn := t.conn
	t.conn, t.connected = nil, false
	t.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
}

func (t *Transport) dial() {
	conn, err := websocket.Dial(t.URL, "", t.Origin)
	t.mu.Lock()
	t.dialing = false
	if err != nil {
		t.mu.Unlock()
		glog.V(1).Infof("ws: dial %s: %v", t.URL, err)
		return
	}
	t.conn, t.connected = conn, true
	t.mu.Unlock()
	glog.Infof("ws: connected to %s", t.URL)
	go t.readLoop(conn)
}

func (t *Transport) readLoop(conn *websocket.Conn) {
	for {
		var frame []byte
		if err := websocket.Message.Receive(conn, &frame); err != nil {
			glog.Warningf("ws: receive: %v", err)
			break
		}
		if len(frame) == 0 {
			continue
		}
		t.queue.Push(midi.RawFrom(frame))
	}
	t.mu.Lock()
	if t.conn == conn {
		t.conn, t.connected = nil, false
	}
	t.mu.Unlock()
	_ = conn.Close()
}
