package seq

import "fmt"

// EventType tags a translated sequencer event.
type EventType uint8

const (
	Unknown EventType = iota
	NoteOn
	NoteOff
	Controller
	ProgramChange
	PitchBend
	Aftertouch
	PolyAftertouch
)

func (t EventType) String() string {
	switch t {
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	case Controller:
		return "controller"
	case ProgramChange:
		return "program-change"
	case PitchBend:
		return "pitch-bend"
	case Aftertouch:
		return "aftertouch"
	case PolyAftertouch:
		return "poly-aftertouch"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Event is the flat record handed to the synth engine. Every variant's
// fields are present at once; Type decides which subset is meaningful,
// the rest is zero. The record is reused between reads and fully
// rewritten on each translation.
type Event struct {
	Type EventType

	// timestamp: sequencer ticks plus wall clock since the listener started
	Tick     uint32
	TimeSec  uint32
	TimeNano uint32

	// note events
	Note        uint8
	Velocity    uint8
	OffVelocity uint8
	Duration    uint32 // ticks between note-on and matching note-off

	// controller / program / bend / pressure events
	Param uint16
	Value int32

	Channel uint8
}

// TypedEvent is the decoded view of an Event: exactly one variant per
// record, carrying only the fields that variant actually has.
type TypedEvent interface {
	typedEvent()
}

type NoteOnEvent struct {
	Channel  uint8
	Note     uint8
	Velocity uint8
}

type NoteOffEvent struct {
	Channel     uint8
	Note        uint8
	OffVelocity uint8
	Duration    uint32
}

type ControllerEvent struct {
	Channel uint8
	Param   uint16
	Value   int32
}

type ProgramChangeEvent struct {
	Channel uint8
	Program uint8
}

type PitchBendEvent struct {
	Channel uint8
	Bend    int16
}

type AftertouchEvent struct {
	Channel  uint8
	Pressure uint8
}

type PolyAftertouchEvent struct {
	Channel  uint8
	Note     uint8
	Pressure uint8
}

type UnknownEvent struct {
	Channel uint8
}

func (NoteOnEvent) typedEvent()         {}
func (NoteOffEvent) typedEvent()        {}
func (ControllerEvent) typedEvent()     {}
func (ProgramChangeEvent) typedEvent()  {}
func (PitchBendEvent) typedEvent()      {}
func (AftertouchEvent) typedEvent()     {}
func (PolyAftertouchEvent) typedEvent() {}
func (UnknownEvent) typedEvent()        {}

// Typed returns the variant view of the record. The returned value is a
// copy and stays valid after the record is overwritten.
func (e *Event) Typed() TypedEvent {
	switch e.Type {
	case NoteOn:
		return NoteOnEvent{Channel: e.Channel, Note: e.Note, Velocity: e.Velocity}
	case NoteOff:
		return NoteOffEvent{Channel: e.Channel, Note: e.Note, OffVelocity: e.OffVelocity, Duration: e.Duration}
	case Controller:
		return ControllerEvent{Channel: e.Channel, Param: e.Param, Value: e.Value}
	case ProgramChange:
		return ProgramChangeEvent{Channel: e.Channel, Program: uint8(e.Value)}
	case PitchBend:
		return PitchBendEvent{Channel: e.Channel, Bend: int16(e.Value)}
	case Aftertouch:
		return AftertouchEvent{Channel: e.Channel, Pressure: uint8(e.Value)}
	case PolyAftertouch:
		return PolyAftertouchEvent{Channel: e.Channel, Note: e.Note, Pressure: uint8(e.Value)}
	default:
		return UnknownEvent{Channel: e.Channel}
	}
}
