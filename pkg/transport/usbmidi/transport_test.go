package usbmidi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeDriver struct {
	mounted bool
	packets [][4]byte
	tasks   int
}

func (d *fakeDriver) Mounted() bool { return d.mounted }
func (d *fakeDriver) Task()         { d.tasks++ }

func (d *fakeDriver) ReadPacket() ([4]byte, bool) {
	if len(d.packets) == 0 {
		return [4]byte{}, false
	}
	pkt := d.packets[0]
	d.packets = d.packets[1:]
	return pkt, true
}

func TestTryReadDiscardsFramingByte(t *testing.T) {
	d := &fakeDriver{mounted: true, packets: [][4]byte{{0x09, 0x90, 60, 100}}}
	tr := New(d)

	raw, err := tr.TryRead()
	require.NoError(t, err)
	require.NotNil(t, raw)
	require.Equal(t, byte(0x90), raw.Status)
	require.Equal(t, byte(60), raw.Data1)
	require.Equal(t, byte(100), raw.Data2)
}

func TestTryReadEmpty(t *testing.T) {
	tr := New(&fakeDriver{mounted: true})
	raw, err := tr.TryRead()
	require.NoError(t, err)
	require.Nil(t, raw)
}

func TestReadyTracksMount(t *testing.T) {
	d := &fakeDriver{}
	tr := New(d)
	require.False(t, tr.Ready())
	d.mounted = true
	require.True(t, tr.Ready())
}

func TestTaskServicesDriver(t *testing.T) {
	d := &fakeDriver{}
	tr := New(d)
	tr.Task()
	tr.Task()
	require.Equal(t, 2, d.tasks)
}
