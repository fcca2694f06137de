package blemidi

import (
	"sync"
)

// StubServer is an in-memory Server used in tests and when running without a
// BLE stack. The connected flag stays false until flipped explicitly by a
// driver or a test; nothing here guesses at connection state.
type StubServer struct {
	mu        sync.Mutex
	connected bool
	frames    [][]byte
	clock     uint16
}

// NewStubServer creates a disconnected stub.
func NewStubServer() *StubServer {
	return &StubServer{}
}

// SetConnected flips the connection flag.
func (s *StubServer) SetConnected(on bool) {
	s.mu.Lock()
	s.connected = on
	s.mu.Unlock()
}

// Push queues one inbound frame of 1..3 payload bytes.
func (s *StubServer) Push(frame ...byte) {
	s.mu.Lock()
	s.frames = append(s.frames, append([]byte(nil), frame...))
	s.clock++
	s.mu.Unlock()
}

// Connected implements Server.
func (s *StubServer) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// StreamRead implements Server.
func (s *StubServer) StreamRead(max int) ([]byte, uint16, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return nil, 0, false
	}
	frame := s.frames[0]
	s.frames = s.frames[1:]
	if len(frame) > max {
		frame = frame[:max]
	}
	return frame, s.clock, true
}

// Task implements Server.
func (s *StubServer) Task() {}
