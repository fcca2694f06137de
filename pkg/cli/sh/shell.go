// Package sh provides the ishell backed interactive shell for sending MIDI
// control messages to a running relayd over MQTT.
package sh

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/abiosoft/ishell"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/midimiti/midirelay/pkg/midi"
	"github.com/midimiti/midirelay/pkg/transport/mqttmidi"
)

// Shell wraps ishell with the MQTT publishing state.
type Shell struct {
	Interactive bool

	Shell  *ishell.Shell
	Client paho.Client
	Prefix string

	// Channel is the MIDI channel (0..15) outgoing messages are stamped
	// with. The relay core ignores it, but other listeners may not.
	Channel byte
}

const shellKey = "$shell"

var (
	evalOnly bool

	commands []*ishell.Cmd
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// AddCmds registers commands during init.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a shell over a connected MQTT client.
func New(client paho.Client, prefix string) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Client:      client,
		Prefix:      prefix,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prefix + " > ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets the Shell from an ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Send publishes one 3-byte MIDI message to the daemon's topic.
func (s *Shell) Send(b0, b1, b2 byte) error {
	token := s.Client.Publish(s.Prefix+"/"+mqttmidi.MIDITopic, 0, false, []byte{b0, b1, b2})
	token.Wait()
	return token.Error()
}

// NoteOn sends a note-on stamped with the current channel.
func (s *Shell) NoteOn(note, velocity byte) error {
	return s.Send(midi.StatusNoteOn|s.Channel, note, velocity)
}

// NoteOff sends a note-off. The velocity is always zero.
func (s *Shell) NoteOff(note byte) error {
	return s.Send(midi.StatusNoteOff|s.Channel, note, 0)
}

// Control sends a control change.
func (s *Shell) Control(number, value byte) error {
	return s.Send(midi.StatusControlChange|s.Channel, number, value)
}

// Program sends a program change.
func (s *Shell) Program(program byte) error {
	return s.Send(midi.StatusProgramChange|s.Channel, program, 0)
}

// Run processes args when present, otherwise enters the interactive shell.
// Non-interactive mode with no arguments is an error.
func (s *Shell) Run(args ...string) error {
	if len(args) > 0 {
		return s.Shell.Process(args...)
	}
	if s.Interactive {
		s.Shell.Println("midirelay control shell, type 'help' for commands")
		s.Shell.Run()
		return nil
	}
	return errors.New("command expected")
}

// clientID picks the MQTT client id: the configured one when set, otherwise
// a per-process id so the shell never kicks the daemon off the broker.
func clientID(configured string) string {
	if configured != "" {
		return configured
	}
	return fmt.Sprintf("relayctl-%d", os.Getpid())
}

// Main is the entry point shared by cmd/relayctl.
func Main() {
	flag.Parse()
	defer glog.Flush()

	conf := mqttmidi.NewConfig()
	if conf.BrokerURL == "" {
		conf.BrokerURL = "tcp://localhost:1883"
	}
	opts := paho.NewClientOptions().
		AddBroker(conf.BrokerURL).
		SetClientID(clientID(conf.ClientID))
	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		glog.Exitf("mqtt connect %s: %v", conf.BrokerURL, token.Error())
	}
	defer client.Disconnect(250)

	if err := New(client, conf.Prefix).Run(flag.Args()...); err != nil {
		glog.Exitf("%v", err)
	}
}
