package seq

import (
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultBPM = float64(120)

type Config struct {
	ClientName  string           `yaml:"client_name"`
	PortName    string           `yaml:"input_port"`
	BPM         float64          `yaml:"bpm"`
	Controllers map[string]uint8 `yaml:"controllers"`
}

// ControllerNames inverts the controllers section for lookup by number.
func (c Config) ControllerNames() map[uint16]string {
	names := make(map[uint16]string, len(c.Controllers))
	for name, num := range c.Controllers {
		names[uint16(num)] = name
	}
	return names
}

func DefaultConfig() Config {
	return Config{
		ClientName: "MIDI Listener",
		PortName:   "listen:in",
		BPM:        DefaultBPM,
	}
}

// LoadConfig reads filename over the defaults. A missing file is not an
// error, the defaults are returned unchanged.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.BPM <= 0 {
		cfg.BPM = DefaultBPM
	}
	return cfg, nil
}
