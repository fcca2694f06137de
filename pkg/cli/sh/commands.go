package sh

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"
	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/midimiti/midirelay/pkg/transport/mqttmidi"
)

var (
	// NoteOnCmd sends a note-on message.
	NoteOnCmd = ishell.Cmd{
		Name: "note",
		Help: "NOTE [VELOCITY] - send note on (notes 60-63 map to relays 1-4)",
		Func: func(c *ishell.Context) {
			note, err := argByte(c.Args, 0)
			if err != nil {
				c.Err(err)
				return
			}
			vel := byte(127)
			if len(c.Args) > 1 {
				if vel, err = argByte(c.Args, 1); err != nil {
					c.Err(err)
					return
				}
			}
			if err := ShellFrom(c).NoteOn(note, vel); err != nil {
				c.Err(err)
			}
		},
	}

	// NoteOffCmd sends a note-off message.
	NoteOffCmd = ishell.Cmd{
		Name: "off",
		Help: "NOTE - send note off",
		Func: func(c *ishell.Context) {
			note, err := argByte(c.Args, 0)
			if err != nil {
				c.Err(err)
				return
			}
			if err := ShellFrom(c).NoteOff(note); err != nil {
				c.Err(err)
			}
		},
	}

	// CCCmd sends a control-change message.
	CCCmd = ishell.Cmd{
		Name: "cc",
		Help: "NUMBER VALUE - send control change (cc 1-4, value >= 64 is on)",
		Func: func(c *ishell.Context) {
			num, err := argByte(c.Args, 0)
			if err != nil {
				c.Err(err)
				return
			}
			val, err := argByte(c.Args, 1)
			if err != nil {
				c.Err(err)
				return
			}
			if err := ShellFrom(c).Control(num, val); err != nil {
				c.Err(err)
			}
		},
	}

	// ProgramCmd sends a program-change message.
	ProgramCmd = ishell.Cmd{
		Name: "program",
		Help: "NUMBER - send program change (0-3 select one relay, others all off)",
		Func: func(c *ishell.Context) {
			prog, err := argByte(c.Args, 0)
			if err != nil {
				c.Err(err)
				return
			}
			if err := ShellFrom(c).Program(prog); err != nil {
				c.Err(err)
			}
		},
	}

	// RawCmd sends an arbitrary 3-byte message.
	RawCmd = ishell.Cmd{
		Name: "raw",
		Help: "B0 B1 B2 - send a raw message, bytes in hex",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 3 {
				c.Err(errors.New("three hex bytes required"))
				return
			}
			var b [3]byte
			for i, arg := range c.Args {
				v, err := strconv.ParseUint(arg, 16, 8)
				if err != nil {
					c.Err(fmt.Errorf("bad byte %q: %v", arg, err))
					return
				}
				b[i] = byte(v)
			}
			if err := ShellFrom(c).Send(b[0], b[1], b[2]); err != nil {
				c.Err(err)
			}
		},
	}

	// ChannelCmd sets the outgoing MIDI channel.
	ChannelCmd = ishell.Cmd{
		Name: "ch",
		Help: "CHANNEL - set outgoing MIDI channel (1-16)",
		Func: func(c *ishell.Context) {
			n, err := strconv.Atoi(argOr(c.Args, 0, ""))
			if err != nil || n < 1 || n > 16 {
				c.Err(errors.New("channel must be 1-16"))
				return
			}
			ShellFrom(c).Channel = byte(n - 1)
		},
	}

	// StatesCmd prints the retained relay status snapshot.
	StatesCmd = ishell.Cmd{
		Name: "states",
		Help: "print relay states reported by relayd",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			topic := s.Prefix + "/" + mqttmidi.StatusTopic
			ch := make(chan string, 1)
			token := s.Client.Subscribe(topic, 0, func(_ paho.Client, m paho.Message) {
				select {
				case ch <- string(m.Payload()):
				default:
				}
			})
			if token.Wait() && token.Error() != nil {
				c.Err(token.Error())
				return
			}
			defer s.Client.Unsubscribe(topic)
			select {
			case states := <-ch:
				c.Println(states)
			case <-time.After(2 * time.Second):
				c.Err(errors.New("no retained status, is relayd running with -mqtt-broker?"))
			}
		},
	}
)

func init() {
	AddCmds(
		&NoteOnCmd,
		&NoteOffCmd,
		&CCCmd,
		&ProgramCmd,
		&RawCmd,
		&ChannelCmd,
		&StatesCmd,
	)
}

func argOr(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}

// argByte parses a decimal 7-bit MIDI data byte argument.
func argByte(args []string, i int) (byte, error) {
	if i >= len(args) {
		return 0, errors.New("missing argument")
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 0 || n > 127 {
		return 0, fmt.Errorf("%q is not a value in 0-127", args[i])
	}
	return byte(n), nil
}
