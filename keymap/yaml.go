package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sparques/irkey/nec"
)

var ErrConflictingNEC = errors.New("keymap: both nec and nec_lsb given")

// Entry is the YAML form of a Binding. Codes may be written in hex (0x...).
// NECLSB takes an NEC code recorded LSB first, as the legacy firmware and
// many dump tools print them, and converts it to latch order.
type Entry struct {
	Key    string   `yaml:"key"`
	NEC    uint32   `yaml:"nec,omitempty"`
	NECLSB uint32   `yaml:"nec_lsb,omitempty"`
	RC6    []uint16 `yaml:"rc6,omitempty"`
}

func (e Entry) Binding() (Binding, error) {
	k, err := ParseKey(e.Key)
	if err != nil {
		return Binding{}, err
	}
	b := Binding{Key: k, NEC: e.NEC, RC6: e.RC6}
	if e.NECLSB != 0 {
		if e.NEC != 0 {
			return Binding{}, fmt.Errorf("%w: %s", ErrConflictingNEC, k)
		}
		b.NEC = nec.FromLSBFirst(e.NECLSB)
	}
	return b, b.validate()
}

// Bindings converts entries, stopping at the first invalid one.
func Bindings(entries []Entry) ([]Binding, error) {
	out := make([]Binding, 0, len(entries))
	for i, e := range entries {
		b, err := e.Binding()
		if err != nil {
			return nil, fmt.Errorf("keys[%d]: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}

type file struct {
	Keys []Entry `yaml:"keys"`
}

// Parse reads a key file:
//
//	keys:
//	  - key: enter
//	    nec: 0xE0E016E9
//	    rc6: [0x3BFF, 0x3A00]
func Parse(r io.Reader) ([]Binding, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("keymap: parse: %w", err)
	}
	return Bindings(f.Keys)
}

// Load reads a key file from disk.
func Load(path string) ([]Binding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
