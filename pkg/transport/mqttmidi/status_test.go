package mqttmidi

import (
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/require"

	"github.com/midimiti/midirelay/pkg/relay"
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
	connected bool
	published []publication
}

func (c *fakeClient) IsConnectionOpen() bool { return c.connected }

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

func TestStateChangedPublishesRetainedSnapshot(t *testing.T) {
	client := &fakeClient{connected: true}
	p := NewStatusPublisher(client, "midirelay/dev1")

	p.StateChanged([relay.NumRelays]bool{true, false, true, false})
	require.Len(t, client.published, 1)
	pub := client.published[0]
	require.Equal(t, "midirelay/dev1/relays", pub.topic)
	require.Equal(t, byte(0), pub.qos)
	require.True(t, pub.retained)
	require.Equal(t, "1010", pub.payload)

	p.StateChanged([relay.NumRelays]bool{})
	require.Len(t, client.published, 2)
	require.Equal(t, "0000", client.published[1].payload)
}

func TestStateChangedSkipsWhenDisconnected(t *testing.T) {
	client := &fakeClient{}
	NewStatusPublisher(client, "midirelay/dev1").
		StateChanged([relay.NumRelays]bool{true, true, true, true})
	require.Empty(t, client.published)
}

func TestNewConfigClientID(t *testing.T) {
	saved := defaultConfig
	defer func() { defaultConfig = saved }()

	defaultConfig = Config{}
	conf := NewConfig()
	require.Empty(t, conf.ClientID)
	require.NotEmpty(t, conf.Prefix)

	defaultConfig.ClientID = "bench-3"
	require.Equal(t, "bench-3", NewConfig().ClientID)
}
