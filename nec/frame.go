package nec

import (
	"errors"
	"math/bits"
	"time"

	"github.com/sparques/irkey"
)

// NEC protocol references
// https://www.sbprojects.net/knowledge/ir/nec.php
// https://techdocs.altium.com/display/FPGA/NEC+Infrared+Transmission+Protocol

const (
	unit        = 562500 * time.Nanosecond // 562.5 us
	leadMark    = unit * 16                // 9 ms
	leadSpace   = unit * 8                 // 4.5 ms
	repeatSpace = unit * 4                 // 2.25 ms
	bitMark     = unit
	zeroSpace   = unit
	oneSpace    = unit * 3  // 1.687 ms
	trailSpace  = unit * 72 // ~40 ms of idle after the stop burst
)

var (
	// ErrFrameAlloc is returned when an attempt to unmarshal to a nil Frame is done--the frame must be allocated ahead of time
	ErrFrameAlloc = errors.New("tried to unmarshal to unallocated frame")
	// ErrInvalidCommand is returned when the command byte and its inverse disagree.
	ErrInvalidCommand = errors.New("nec: command does not match its inverse")
)

// Frame is the logical content of an NEC frame. Addresses below 0x100 are
// sent in the original 8-bit form, with the inverted address as high byte.
type Frame struct {
	Address uint16
	Command uint8
}

// Code returns the 32-bit value the Decoder latches for f. The decoder stores
// the first bit received in bit 31, while NEC sends each byte LSB first, so
// the code is the bit reversal of the on-air byte sequence
// { address low, address high, command, ^command }.
func (f Frame) Code() uint32 {
	lo, hi := splitAddress(f.Address)
	raw := uint32(lo) | uint32(hi)<<8 | uint32(f.Command)<<16 | uint32(^f.Command)<<24
	return bits.Reverse32(raw)
}

func (f *Frame) UnmarshalFrame(code uint32) error {
	if f == nil {
		return ErrFrameAlloc
	}
	raw := bits.Reverse32(code)
	lo, hi := byte(raw), byte(raw>>8)
	cmd, inv := byte(raw>>16), byte(raw>>24)
	if cmd != ^inv {
		return ErrInvalidCommand
	}
	f.Address = makeAddress(lo, hi)
	f.Command = cmd
	return nil
}

func (f Frame) MarshalFrame() []irkey.TimePair {
	return Code(f.Code()).MarshalFrame()
}

// FromLSBFirst converts a code recorded by a decoder that stores the first
// received bit in bit 0 (as many Arduino and LIRC dumps do) into the order
// this package latches.
func FromLSBFirst(code uint32) uint32 {
	return bits.Reverse32(code)
}

// Code is a raw 32-bit NEC code in latch order, bit 31 first on air.
type Code uint32

func (c Code) MarshalFrame() []irkey.TimePair {
	out := make([]irkey.TimePair, 0, 34)
	out = append(out, irkey.TimePair{leadMark, leadSpace})
	for bit := 31; bit >= 0; bit-- {
		if (c>>bit)&1 == 1 {
			out = append(out, irkey.TimePair{bitMark, oneSpace})
		} else {
			out = append(out, irkey.TimePair{bitMark, zeroSpace})
		}
	}
	// stop burst
	return append(out, irkey.TimePair{bitMark, trailSpace})
}

type repeatFrame struct{}

func (repeatFrame) MarshalFrame() []irkey.TimePair {
	return []irkey.TimePair{
		{leadMark, repeatSpace},
		{bitMark, trailSpace},
	}
}

// Repeat is the short frame a remote sends while a button is held.
// The Decoder never latches it.
var Repeat irkey.FrameMarshaller = repeatFrame{}

func splitAddress(address uint16) (lo, hi byte) {
	lo = byte(address & 0xff)
	hi = byte(address >> 8)
	if hi == 0 {
		hi = ^lo
	}
	return lo, hi
}

func makeAddress(lo, hi byte) uint16 {
	if hi == ^lo {
		// indistinguishable from an 8-bit address with inverse validation
		return uint16(lo)
	}
	return uint16(hi)<<8 | uint16(lo)
}
