// Package keymap maps decoded NEC and RC6 codes to logical keys.
//
// Remotes differ per deployment, so a Table is built from configuration
// rather than compiled in: from Bindings, from YAML, or from a Preset.
package keymap

import (
	"errors"
	"fmt"
	"strings"
)

type Key uint8

const (
	KeyNone Key = iota
	KeyEnter
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

var keyNames = [...]string{
	KeyNone:  "none",
	KeyEnter: "enter",
	KeyEsc:   "esc",
	KeyUp:    "up",
	KeyDown:  "down",
	KeyLeft:  "left",
	KeyRight: "right",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

var (
	ErrUnknownKey    = errors.New("keymap: unknown key")
	ErrNoCodes       = errors.New("keymap: binding has no codes")
	ErrZeroCode      = errors.New("keymap: code 0 cannot be matched")
	ErrTooManyCodes  = errors.New("keymap: more than two rc6 codes for one binding")
	ErrDuplicateCode = errors.New("keymap: code bound to more than one key")
)

// ParseKey returns the Key with the given name, case insensitively.
// "none" is not a valid name to bind.
func ParseKey(s string) (Key, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k := KeyEnter; int(k) < len(keyNames); k++ {
		if keyNames[k] == name {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// Binding ties the codes of one button to a key. NEC is 0 when the button
// has no NEC code. RC6 holds up to two codes, one per toggle bit state, when
// the remote's toggle bit lands inside the latched payload.
type Binding struct {
	Key Key
	NEC uint32
	RC6 []uint16
}

func (b Binding) validate() error {
	if b.Key == KeyNone || int(b.Key) >= len(keyNames) {
		return fmt.Errorf("%w: %d", ErrUnknownKey, b.Key)
	}
	if b.NEC == 0 && len(b.RC6) == 0 {
		return fmt.Errorf("%w: %s", ErrNoCodes, b.Key)
	}
	if len(b.RC6) > 2 {
		return fmt.Errorf("%w: %s", ErrTooManyCodes, b.Key)
	}
	for _, c := range b.RC6 {
		if c == 0 {
			return fmt.Errorf("%w: %s rc6", ErrZeroCode, b.Key)
		}
	}
	return nil
}

// Table is an immutable code table. The same key may appear in several
// bindings (several remotes in one deployment); a code may not map to two
// different keys.
type Table struct {
	nec      map[uint32]Key
	rc6      map[uint16]Key
	bindings []Binding
}

func New(bindings ...Binding) (*Table, error) {
	t := &Table{
		nec: make(map[uint32]Key),
		rc6: make(map[uint16]Key),
	}
	for _, b := range bindings {
		if err := b.validate(); err != nil {
			return nil, err
		}
		if b.NEC != 0 {
			if k, ok := t.nec[b.NEC]; ok && k != b.Key {
				return nil, fmt.Errorf("%w: nec 0x%08X is %s and %s", ErrDuplicateCode, b.NEC, k, b.Key)
			}
			t.nec[b.NEC] = b.Key
		}
		for _, c := range b.RC6 {
			if k, ok := t.rc6[c]; ok && k != b.Key {
				return nil, fmt.Errorf("%w: rc6 0x%04X is %s and %s", ErrDuplicateCode, c, k, b.Key)
			}
			t.rc6[c] = b.Key
		}
		b.RC6 = append([]uint16(nil), b.RC6...)
		t.bindings = append(t.bindings, b)
	}
	return t, nil
}

// MustNew is like New but panics on an invalid table.
func MustNew(bindings ...Binding) *Table {
	t, err := New(bindings...)
	if err != nil {
		panic(err)
	}
	return t
}

// NEC returns the key bound to an NEC code, or KeyNone.
func (t *Table) NEC(code uint32) Key {
	if t == nil || code == 0 {
		return KeyNone
	}
	return t.nec[code]
}

// RC6 returns the key bound to an RC6 code, or KeyNone.
func (t *Table) RC6(code uint16) Key {
	if t == nil || code == 0 {
		return KeyNone
	}
	return t.rc6[code]
}

// Bindings returns a copy of the bindings the table was built from.
func (t *Table) Bindings() []Binding {
	if t == nil {
		return nil
	}
	out := make([]Binding, len(t.bindings))
	for i, b := range t.bindings {
		b.RC6 = append([]uint16(nil), b.RC6...)
		out[i] = b
	}
	return out
}

// Len returns the number of distinct codes in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nec) + len(t.rc6)
}
