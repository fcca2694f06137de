package control

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/midimiti/midirelay/pkg/midi"
	"github.com/midimiti/midirelay/pkg/relay"
)

type fakeTransport struct {
	name    string
	ready   bool
	pending []midi.Raw
	readErr error
	tasks   int
	reads   int
}

func (t *fakeTransport) Name() string { return t.name }
func (t *fakeTransport) Ready() bool  { return t.ready }
func (t *fakeTransport) Task()        { t.tasks++ }

func (t *fakeTransport) TryRead() (*midi.Raw, error) {
	t.reads++
	if t.readErr != nil {
		return nil, t.readErr
	}
	if len(t.pending) == 0 {
		return nil, nil
	}
	raw := t.pending[0]
	t.pending = t.pending[1:]
	return &raw, nil
}

func noteOn(note byte) midi.Raw  { return midi.Raw{Status: 0x90, Data1: note, Data2: 100} }
func program(prog byte) midi.Raw { return midi.Raw{Status: 0xc0, Data1: prog} }

func TestLoopFairness(t *testing.T) {
	usb := &fakeTransport{name: "usb", ready: true, pending: []midi.Raw{noteOn(60), noteOn(61)}}
	ble := &fakeTransport{name: "ble", ready: true, pending: []midi.Raw{noteOn(62)}}
	m, _ := testMapper()
	loop := NewLoop(m, usb, ble)

	// One iteration dispatches exactly one message from each transport,
	// even though usb has a burst pending.
	loop.RunOnce()
	require.Equal(t, [relay.NumRelays]bool{true, false, true, false}, m.Relays.States())
	require.Len(t, usb.pending, 1)

	loop.RunOnce()
	require.Equal(t, [relay.NumRelays]bool{true, true, true, false}, m.Relays.States())
	require.Empty(t, usb.pending)
}

func TestLoopEffectsCompleteBeforeNextTransport(t *testing.T) {
	usb := &fakeTransport{name: "usb", ready: true, pending: []midi.Raw{program(1)}}
	ble := &fakeTransport{name: "ble", ready: true, pending: []midi.Raw{noteOn(60)}}
	m, writes := testMapper()
	NewLoop(m, usb, ble).RunOnce()

	// The program change's five writes all land before the ble note-on's.
	require.Equal(t, []write{
		{1, false}, {2, false}, {3, false}, {4, false}, {2, true},
		{1, true},
	}, *writes)
}

func TestLoopServicesHousekeepingEveryIteration(t *testing.T) {
	usb := &fakeTransport{name: "usb", ready: true}
	ble := &fakeTransport{name: "ble"} // not ready
	m, _ := testMapper()
	loop := NewLoop(m, usb, ble)

	for i := 0; i < 3; i++ {
		loop.RunOnce()
	}
	require.Equal(t, 3, usb.tasks)
	require.Equal(t, 3, ble.tasks)
	// Empty reads are not errors and happen every iteration when ready.
	require.Equal(t, 3, usb.reads)
	// A transport that is not ready is never read.
	require.Zero(t, ble.reads)
}

func TestLoopReadErrorDoesNotStarveOthers(t *testing.T) {
	bad := &fakeTransport{name: "usb", ready: true, readErr: errors.New("transport gone")}
	good := &fakeTransport{name: "ble", ready: true, pending: []midi.Raw{noteOn(63)}}
	m, _ := testMapper()
	NewLoop(m, bad, good).RunOnce()

	require.Equal(t, [relay.NumRelays]bool{false, false, false, true}, m.Relays.States())
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	m, _ := testMapper()
	loop := NewLoop(m, &fakeTransport{name: "usb"})
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop on cancel")
	}
}
