package serialkbd

import (
	"strings"
	"testing"
)

func TestParseKeymap(t *testing.T) {
	km, err := ParseKeymap(strings.NewReader("1:60\n2:62\n# comment\n\n10:-64\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(km) != 3 {
		t.Fatalf("len = %d, want 3", len(km))
	}
	if km[1] != 60 || km[2] != 62 || km[10] != -64 {
		t.Errorf("keymap = %v", km)
	}
}

func TestParseKeymapBadLine(t *testing.T) {
	if _, err := ParseKeymap(strings.NewReader("not a mapping\n")); err == nil {
		t.Error("expected an error for a malformed line")
	}
	if _, err := ParseKeymap(strings.NewReader("a:60\n")); err == nil {
		t.Error("expected an error for a non-numeric keycode")
	}
}

func TestDecodeFrame(t *testing.T) {
	if ev := DecodeFrame(0x00, 5); !ev.Pressed || ev.Code != 5 {
		t.Errorf("press frame decoded to %+v", ev)
	}
	if ev := DecodeFrame(0x80, 5); ev.Pressed {
		t.Errorf("release frame decoded to %+v", ev)
	}
}

func TestKeyboardNotes(t *testing.T) {
	kb := NewKeyboard(Keymap{1: 60}, nil)

	msg, ok := kb.Translate(KeyEvent{Code: 1, Pressed: true})
	if !ok {
		t.Fatal("press produced nothing")
	}
	var ch, key, vel uint8
	if !msg.GetNoteOn(&ch, &key, &vel) || key != 60 || vel != 64 {
		t.Errorf("press = %v", msg)
	}

	if _, ok := kb.Translate(KeyEvent{Code: 1, Pressed: true}); ok {
		t.Error("key repeat must be dropped")
	}

	msg, ok = kb.Translate(KeyEvent{Code: 1, Pressed: false})
	if !ok {
		t.Fatal("release produced nothing")
	}
	if !msg.GetNoteEnd(&ch, &key) || key != 60 {
		t.Errorf("release = %v", msg)
	}
}

func TestKeyboardControllerToggle(t *testing.T) {
	kb := NewKeyboard(Keymap{10: -64}, nil)

	msg, ok := kb.Translate(KeyEvent{Code: 10, Pressed: true})
	if !ok {
		t.Fatal("toggle press produced nothing")
	}
	var ch, cc, val uint8
	if !msg.GetControlChange(&ch, &cc, &val) || cc != 64 || val != 64 {
		t.Errorf("first toggle = %v", msg)
	}

	if _, ok := kb.Translate(KeyEvent{Code: 10, Pressed: false}); ok {
		t.Error("toggle release must be silent")
	}

	msg, _ = kb.Translate(KeyEvent{Code: 10, Pressed: true})
	if !msg.GetControlChange(&ch, &cc, &val) || val != 0 {
		t.Errorf("second toggle = %v, want value 0", msg)
	}
}

func TestKeyboardUnassigned(t *testing.T) {
	kb := NewKeyboard(Keymap{}, nil)
	if _, ok := kb.Translate(KeyEvent{Code: 99, Pressed: true}); ok {
		t.Error("unassigned key must be dropped")
	}
}
