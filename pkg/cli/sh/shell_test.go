package sh

import (
	"strings"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/require"
)

type publication struct {
	topic    string
	qos      byte
	retained bool
	payload  interface{}
}

// fakeClient records publishes. Methods not overridden panic via the nil
// embedded interface, which no test should reach.
type fakeClient struct {
	paho.Client
	published []publication
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.published = append(c.published, publication{topic, qos, retained, payload})
	return &fakeToken{}
}

type fakeToken struct{ err error }

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }

func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func testShell() (*Shell, *fakeClient) {
	client := &fakeClient{}
	return &Shell{Client: client, Prefix: "midirelay/dev1"}, client
}

func TestSendPublishesToMIDITopic(t *testing.T) {
	s, client := testShell()
	require.NoError(t, s.Send(0x90, 60, 100))
	require.Len(t, client.published, 1)
	pub := client.published[0]
	require.Equal(t, "midirelay/dev1/midi", pub.topic)
	require.Equal(t, byte(0), pub.qos)
	require.False(t, pub.retained)
	require.Equal(t, []byte{0x90, 60, 100}, pub.payload)
}

func TestMessageComposition(t *testing.T) {
	testCases := []struct {
		name string
		send func(s *Shell) error
		want []byte
	}{
		{"note on", func(s *Shell) error { return s.NoteOn(60, 127) }, []byte{0x90, 60, 127}},
		{"note off", func(s *Shell) error { return s.NoteOff(61) }, []byte{0x80, 61, 0}},
		{"control", func(s *Shell) error { return s.Control(2, 64) }, []byte{0xb0, 2, 64}},
		{"program", func(s *Shell) error { return s.Program(3) }, []byte{0xc0, 3, 0}},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			s, client := testShell()
			require.NoError(t, test.send(s))
			require.Len(t, client.published, 1)
			require.Equal(t, test.want, client.published[0].payload)
		})
	}
}

func TestMessagesStampedWithChannel(t *testing.T) {
	s, client := testShell()
	s.Channel = 2
	require.NoError(t, s.NoteOn(60, 100))
	require.NoError(t, s.Program(1))
	require.Equal(t, []byte{0x92, 60, 100}, client.published[0].payload)
	require.Equal(t, []byte{0xc2, 1, 0}, client.published[1].payload)
}

func TestRunNonInteractiveRequiresCommand(t *testing.T) {
	s, _ := testShell()
	s.Interactive = false
	require.EqualError(t, s.Run(), "command expected")
}

func TestClientID(t *testing.T) {
	require.Equal(t, "bench-3", clientID("bench-3"))
	require.True(t, strings.HasPrefix(clientID(""), "relayctl-"))
}

func TestArgByte(t *testing.T) {
	for _, test := range []struct {
		arg  string
		want byte
		bad  bool
	}{
		{arg: "0", want: 0},
		{arg: "64", want: 64},
		{arg: "127", want: 127},
		{arg: "128", bad: true},
		{arg: "-1", bad: true},
		{arg: "x", bad: true},
	} {
		v, err := argByte([]string{test.arg}, 0)
		if test.bad {
			require.Error(t, err, test.arg)
			continue
		}
		require.NoError(t, err, test.arg)
		require.Equal(t, test.want, v, test.arg)
	}
	_, err := argByte(nil, 0)
	require.Error(t, err)
}
