package serialkbd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Keymap maps firmware keycodes to MIDI notes. A negative note means the
// key toggles controller number -note instead of playing.
type Keymap map[int]int

// ParseKeymap reads "keycode:note" lines. Blank lines and lines starting
// with # are skipped.
func ParseKeymap(r io.Reader) (Keymap, error) {
	keymap := Keymap{}
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s := strings.Split(line, ":")
		if len(s) != 2 {
			return nil, fmt.Errorf("keymap line %d: expected 'keycode:note', got %q", lineno, line)
		}
		key, err := strconv.Atoi(strings.TrimSpace(s[0]))
		if err != nil {
			return nil, fmt.Errorf("keymap line %d: %w", lineno, err)
		}
		val, err := strconv.Atoi(strings.TrimSpace(s[1]))
		if err != nil {
			return nil, fmt.Errorf("keymap line %d: %w", lineno, err)
		}
		keymap[key] = val
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return keymap, nil
}

func LoadKeymap(filename string) (Keymap, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseKeymap(file)
}
