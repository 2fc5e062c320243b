package nec

import (
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/sparques/irkey"
)

type frameTestData struct {
	Code    uint32
	Address uint16
	Command uint8
}

var frameTests = []frameTestData{
	// Samsung TV remote, address 0x0707
	{Code: 0xE0E016E9, Address: 0x0707, Command: 0x68},
	{Code: 0xE0E006F9, Address: 0x0707, Command: 0x60},
	{Code: 0xE0E046B9, Address: 0x0707, Command: 0x62},
	// 8-bit addresses carry their inverse as high byte
	{Code: 0x00FF48B7, Address: 0x0000, Command: 0x12},
	{Code: 0x20DF10EF, Address: 0x0004, Command: 0x08},
	// extended 16-bit address
	{Code: 0x2C48807F, Address: 0x1234, Command: 0x01},
}

func TestFrameCode(t *testing.T) {
	c := qt.New(t)

	for _, data := range frameTests {
		name := fmt.Sprintf("Encode:Code:%08x Addr:%04x Cmd:%02x", data.Code, data.Address, data.Command)
		c.Run(name, func(c *qt.C) {
			f := Frame{Address: data.Address, Command: data.Command}
			c.Assert(f.Code(), qt.Equals, data.Code)
		})
	}
}

func TestFrameUnmarshal(t *testing.T) {
	c := qt.New(t)

	for _, data := range frameTests {
		name := fmt.Sprintf("Decode:Code:%08x Addr:%04x Cmd:%02x", data.Code, data.Address, data.Command)
		c.Run(name, func(c *qt.C) {
			var f Frame
			c.Assert(f.UnmarshalFrame(data.Code), qt.IsNil)
			c.Assert(f.Address, qt.Equals, data.Address)
			c.Assert(f.Command, qt.Equals, data.Command)
		})
	}
}

func TestFrameUnmarshalErrors(t *testing.T) {
	c := qt.New(t)

	var f Frame
	c.Assert(f.UnmarshalFrame(0xE0E016E8), qt.ErrorIs, ErrInvalidCommand)

	var nilFrame *Frame
	c.Assert(nilFrame.UnmarshalFrame(0xE0E016E9), qt.ErrorIs, ErrFrameAlloc)
}

func TestFromLSBFirst(t *testing.T) {
	c := qt.New(t)

	// the same Samsung ENTER button as a bit-0-first decoder records it
	c.Assert(FromLSBFirst(0x97680707), qt.Equals, uint32(0xE0E016E9))
	c.Assert(FromLSBFirst(FromLSBFirst(0x12345678)), qt.Equals, uint32(0x12345678))
}

func TestMarshalFrame(t *testing.T) {
	c := qt.New(t)

	pairs := Code(0x80000001).MarshalFrame()
	c.Assert(pairs, qt.HasLen, 34)
	c.Assert(pairs[0], qt.Equals, irkey.TimePair{leadMark, leadSpace})
	c.Assert(pairs[1], qt.Equals, irkey.TimePair{bitMark, oneSpace})
	c.Assert(pairs[2], qt.Equals, irkey.TimePair{bitMark, zeroSpace})
	c.Assert(pairs[32], qt.Equals, irkey.TimePair{bitMark, oneSpace})
	c.Assert(pairs[33][0], qt.Equals, bitMark)

	c.Assert(Frame{Address: 0x0707, Command: 0x68}.MarshalFrame(), qt.DeepEquals, Code(0xE0E016E9).MarshalFrame())
}
