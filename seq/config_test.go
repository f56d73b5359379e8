package seq

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ClientName != "MIDI Listener" || cfg.PortName != "listen:in" {
		t.Errorf("defaults = %q/%q", cfg.ClientName, cfg.PortName)
	}
	if cfg.BPM != DefaultBPM {
		t.Errorf("bpm = %v, want %v", cfg.BPM, DefaultBPM)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `client_name: synth-frontend
input_port: "Synth input port"
bpm: 90
controllers:
  sustain: 64
  volume: 7
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ClientName != "synth-frontend" || cfg.PortName != "Synth input port" {
		t.Errorf("names = %q/%q", cfg.ClientName, cfg.PortName)
	}
	if cfg.BPM != 90 {
		t.Errorf("bpm = %v, want 90", cfg.BPM)
	}
	if cfg.Controllers["sustain"] != 64 {
		t.Errorf("controllers = %v", cfg.Controllers)
	}
	names := cfg.ControllerNames()
	if names[64] != "sustain" || names[7] != "volume" {
		t.Errorf("controller names = %v", names)
	}
}

func TestLoadConfigZeroBPMFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("bpm: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BPM != DefaultBPM {
		t.Errorf("bpm = %v, want default", cfg.BPM)
	}
}
