package hotkeys

import (
	"fmt"
	"strings"
)

// KeyStateReader reports whether a key, named by keysym, is currently held.
type KeyStateReader interface {
	IsPressed(key string) (bool, error)
}

// Chord is a key combination that fires only when every key is held at
// the same time.
type Chord struct {
	Keys []string
}

// ParseChord parses a "+" separated keysym list such as "Control_L+s".
func ParseChord(sequence string) (Chord, error) {
	parts := strings.Split(sequence, "+")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return Chord{}, fmt.Errorf("invalid key sequence %q: empty key", sequence)
		}
		keys = append(keys, p)
	}
	return Chord{Keys: keys}, nil
}

// Pressed polls every key of the chord once. It stops at the first key that
// is up.
func (c Chord) Pressed(r KeyStateReader) (bool, error) {
	if len(c.Keys) == 0 {
		return false, nil
	}
	for _, key := range c.Keys {
		down, err := r.IsPressed(key)
		if err != nil {
			return false, err
		}
		if !down {
			return false, nil
		}
	}
	return true, nil
}

func (c Chord) String() string {
	return strings.Join(c.Keys, "+")
}
