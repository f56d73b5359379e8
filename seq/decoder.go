package seq

import (
	"context"
	"errors"

	charmlog "github.com/charmbracelet/log"
)

// Synth is what a decoder drives. The synthesizer engine implements it.
type Synth interface {
	StartNote(channel, note, velocity uint8)
	StopNote(channel, note uint8)
	Control(channel uint8, param uint16, value int32)
}

// Decoder consumes translated events.
type Decoder interface {
	Decode(*Event)
}

// LiveDecoder changes the state of the synth in real time. Only note and
// controller events are acted on, everything else is dropped.
type LiveDecoder struct {
	Synth Synth
}

func (d *LiveDecoder) Decode(ev *Event) {
	switch ev.Type {
	case NoteOn:
		d.Synth.StartNote(ev.Channel, ev.Note, ev.Velocity)
	case NoteOff:
		d.Synth.StopNote(ev.Channel, ev.Note)
	case Controller:
		d.Synth.Control(ev.Channel, ev.Param, ev.Value)
	}
}

// DumpDecoder logs every event without touching any synth state.
// Names, if set, labels controller numbers in the output (taken from the
// controllers section of the config).
type DumpDecoder struct {
	Logger *charmlog.Logger
	Names  map[uint16]string
}

func (d *DumpDecoder) Decode(ev *Event) {
	switch ev.Type {
	case NoteOn:
		d.Logger.Info("note  on", "tick", ev.Tick, "key", ev.Note, "vel", ev.Velocity, "ch", ev.Channel)
	case NoteOff:
		d.Logger.Info("note off", "tick", ev.Tick, "key", ev.Note, "vel", ev.OffVelocity, "duration", ev.Duration, "ch", ev.Channel)
	case Controller:
		if name, ok := d.Names[ev.Param]; ok {
			d.Logger.Info("control", "tick", ev.Tick, "param", name, "value", ev.Value, "ch", ev.Channel)
		} else {
			d.Logger.Info("control", "tick", ev.Tick, "param", ev.Param, "value", ev.Value, "ch", ev.Channel)
		}
	default:
		d.Logger.Info(ev.Type.String(), "tick", ev.Tick, "key", ev.Note, "value", ev.Value, "ch", ev.Channel)
	}
}

// Run pumps events from the listener into the decoder. Cancelling the
// context closes the listener, which ends the loop.
func Run(ctx context.Context, l *Listener, dec Decoder) error {
	logger := charmlog.FromContext(ctx)
	context.AfterFunc(ctx, func() {
		if err := l.Close(); err != nil {
			logger.Error(err)
		}
	})
	for {
		ev, err := l.ReadNext()
		if err != nil {
			if errors.Is(err, ErrClosed) {
				logger.Info("stop")
				return nil
			}
			return err
		}
		dec.Decode(ev)
	}
}
