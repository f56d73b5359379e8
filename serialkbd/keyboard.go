// Package serialkbd turns a serial keyboard into a MIDI event source.
//
// The keyboard firmware sends two bytes per key action: a status byte
// whose high bit is 0 for press and 1 for release, then the keycode.
package serialkbd

import (
	charmlog "github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2"
)

type KeyEvent struct {
	Code    int
	Pressed bool
}

// DecodeFrame decodes one two-byte frame from the keyboard.
func DecodeFrame(status, code byte) KeyEvent {
	return KeyEvent{Code: int(code), Pressed: status>>7 == 0}
}

// Keyboard tracks key and controller toggle state and maps key events to
// MIDI messages. Firmware key repeats are deduplicated.
type Keyboard struct {
	keymap Keymap
	state  [256]bool // key currently down
	ctrl   [256]bool // controller toggle state per keycode
	logger *charmlog.Logger
}

func NewKeyboard(keymap Keymap, logger *charmlog.Logger) *Keyboard {
	if logger == nil {
		logger = charmlog.Default()
	}
	return &Keyboard{keymap: keymap, logger: logger}
}

// Translate maps one key event to a MIDI message. The second return is
// false when the event produces nothing (repeat, unassigned key, or the
// release half of a controller toggle).
func (k *Keyboard) Translate(ev KeyEvent) (midi.Message, bool) {
	if ev.Code < 0 || ev.Code > 255 {
		return nil, false
	}
	if k.state[ev.Code] && ev.Pressed {
		return nil, false // key repeat
	}
	k.state[ev.Code] = ev.Pressed

	note, ok := k.keymap[ev.Code]
	if !ok {
		k.logger.Debug("unassigned key", "code", ev.Code)
		return nil, false
	}
	if note < 0 {
		if !ev.Pressed {
			return nil, false
		}
		var msg midi.Message
		if k.ctrl[ev.Code] {
			msg = midi.ControlChange(0, uint8(-note), 0)
		} else {
			msg = midi.ControlChange(0, uint8(-note), 64)
		}
		k.ctrl[ev.Code] = !k.ctrl[ev.Code]
		return msg, true
	}
	if note > 127 {
		return nil, false
	}
	if ev.Pressed {
		return midi.NoteOn(0, uint8(note), 64), true
	}
	return midi.NoteOff(0, uint8(note)), true
}
