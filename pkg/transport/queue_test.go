package transport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/midimiti/midirelay/pkg/midi"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue("test", 4)
	q.Push(midi.Raw{Status: 0x90, Data1: 60, Data2: 100})
	q.Push(midi.Raw{Status: 0x80, Data1: 60})

	raw, err := q.TryRead()
	require.NoError(t, err)
	require.NotNil(t, raw)
	require.Equal(t, byte(0x90), raw.Status)

	raw, err = q.TryRead()
	require.NoError(t, err)
	require.NotNil(t, raw)
	require.Equal(t, byte(0x80), raw.Status)
}

func TestQueueTryReadEmptyNonBlocking(t *testing.T) {
	q := NewQueue("test", 4)
	raw, err := q.TryRead()
	require.NoError(t, err)
	require.Nil(t, raw)
}

func TestQueueDropsNewestWhenFull(t *testing.T) {
	q := NewQueue("test", 2)
	q.Push(midi.Raw{Data1: 1})
	q.Push(midi.Raw{Data1: 2})
	q.Push(midi.Raw{Data1: 3}) // dropped
	require.Equal(t, 2, q.Len())

	raw, _ := q.TryRead()
	require.Equal(t, byte(1), raw.Data1)
	raw, _ = q.TryRead()
	require.Equal(t, byte(2), raw.Data1)
	raw, _ = q.TryRead()
	require.Nil(t, raw)
}
