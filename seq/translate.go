package seq

import (
	"time"

	charmlog "github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const TICKS = smf.MetricTicks(960)

type onset struct {
	at  int32 // milliseconds
	vel uint8
}

// Translator turns raw sequencer messages into Events. It owns the one
// output record: Translate overwrites it on every call, so the caller
// must consume the returned record before translating again.
type Translator struct {
	bpm    float64
	rec    Event
	onsets map[uint16]onset // channel<<8|note → pending note-on
	logger *charmlog.Logger
}

func NewTranslator(bpm float64, logger *charmlog.Logger) *Translator {
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	if logger == nil {
		logger = charmlog.Default()
	}
	return &Translator{
		bpm:    bpm,
		onsets: map[uint16]onset{},
		logger: logger,
	}
}

/*
	NoteOn         → note, velocity, channel; onset remembered
	NoteOff        → note, off-velocity, duration since onset, channel
	ControlChange  → param, value, channel
	anything else  → tag only, fields zeroed
*/

// Translate classifies msg and rewrites the shared record with its
// fields. absms is the driver timestamp in milliseconds since the
// listener started; it feeds both the wall-clock pair and the tick time.
func (t *Translator) Translate(msg midi.Message, absms int32) *Event {
	// stale fields from the previous event never survive
	t.rec = Event{
		Tick:     t.ticks(absms),
		TimeSec:  uint32(absms / 1000),
		TimeNano: uint32(absms%1000) * uint32(time.Millisecond),
	}
	rec := &t.rec

	var ch, key, vel uint8
	var prog, pressure uint8
	var rel int16
	var abs uint16
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		rec.Type = NoteOn
		rec.Channel = ch
		rec.Note = key
		rec.Velocity = vel
		t.onsets[noteKey(ch, key)] = onset{at: absms, vel: vel}
	case msg.GetNoteEnd(&ch, &key):
		msg.GetNoteOff(&ch, &key, &vel)
		rec.Type = NoteOff
		rec.Channel = ch
		rec.Note = key
		rec.OffVelocity = vel
		if on, ok := t.onsets[noteKey(ch, key)]; ok {
			rec.Velocity = on.vel
			rec.Duration = t.ticks(absms - on.at)
			delete(t.onsets, noteKey(ch, key))
		}
	case msg.GetControlChange(&ch, &key, &vel):
		rec.Type = Controller
		rec.Channel = ch
		rec.Param = uint16(key)
		rec.Value = int32(vel)
	case msg.GetProgramChange(&ch, &prog):
		rec.Type = ProgramChange
		rec.Channel = ch
		rec.Value = int32(prog)
	case msg.GetPitchBend(&ch, &rel, &abs):
		rec.Type = PitchBend
		rec.Channel = ch
		rec.Value = int32(rel)
	case msg.GetAfterTouch(&ch, &pressure):
		rec.Type = Aftertouch
		rec.Channel = ch
		rec.Value = int32(pressure)
	case msg.GetPolyAfterTouch(&ch, &key, &pressure):
		rec.Type = PolyAftertouch
		rec.Channel = ch
		rec.Note = key
		rec.Value = int32(pressure)
	default:
		rec.Type = Unknown
		t.logger.Debug("unhandled message", "msg", msg.String())
	}
	return rec
}

func (t *Translator) ticks(ms int32) uint32 {
	if ms <= 0 {
		return 0
	}
	return TICKS.Ticks(t.bpm, time.Duration(ms)*time.Millisecond)
}

func noteKey(ch, key uint8) uint16 {
	return uint16(ch)<<8 | uint16(key)
}
