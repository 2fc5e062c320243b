package remote

import (
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/sparques/irkey"
	"github.com/sparques/irkey/keymap"
	"github.com/sparques/irkey/nec"
	"github.com/sparques/irkey/rc6"
)

// air replays frames on one timeline, leaving the line idle between them
// long enough for both decoders to give up on anything in progress.
type air struct {
	now uint16
	h   irkey.EdgeHandler
}

func (a *air) send(fm irkey.FrameMarshaller) {
	edges := irkey.Edges(a.now, fm.MarshalFrame())
	irkey.Feed(a.h, edges)
	a.now = edges[len(edges)-1].Timestamp + 1500
}

func TestDecodeOnce(t *testing.T) {
	c := qt.New(t)

	recv := New(keymap.Samsung)
	c.Assert(recv.Decode(), qt.Equals, keymap.KeyNone)
	c.Assert(recv.Decode(), qt.Equals, keymap.KeyNone)

	a := &air{now: 1000, h: recv}
	a.send(nec.Code(0xE0E016E9))
	c.Assert(recv.Decode(), qt.Equals, keymap.KeyEnter)
	c.Assert(recv.Decode(), qt.Equals, keymap.KeyNone)
	c.Assert(recv.Decode(), qt.Equals, keymap.KeyNone)
}

func TestDecodeSequence(t *testing.T) {
	c := qt.New(t)

	recv := New(keymap.Samsung)
	// the sequence crosses the 16-bit rollover
	a := &air{now: 60000, h: recv}

	for _, test := range []struct {
		code uint32
		key  keymap.Key
	}{
		{0xE0E0A659, keymap.KeyLeft},
		{0xE0E046B9, keymap.KeyRight},
		{0xE0E006F9, keymap.KeyUp},
		{0xE0E08679, keymap.KeyDown},
		{0xE0E016E9, keymap.KeyEnter},
	} {
		a.send(nec.Code(test.code))
		c.Assert(recv.Decode(), qt.Equals, test.key)
		c.Assert(recv.Decode(), qt.Equals, keymap.KeyNone)
	}
}

func TestDecodeRC6ToggleVariants(t *testing.T) {
	c := qt.New(t)

	recv := New(keymap.Samsung)
	a := &air{now: 1000, h: recv}

	for _, test := range []struct {
		code uint16
		key  keymap.Key
	}{
		{0x3BFF, keymap.KeyEnter},
		{0x3A00, keymap.KeyEnter},
		{0x5BFF, keymap.KeyLeft},
		{0x5A00, keymap.KeyLeft},
		{0xDBFF, keymap.KeyRight},
	} {
		for _, toggle := range []bool{false, true} {
			c.Run(fmt.Sprintf("%04X/toggle=%t", test.code, toggle), func(c *qt.C) {
				a.send(rc6.Frame{Code: test.code, Toggle: toggle})
				c.Assert(recv.Decode(), qt.Equals, test.key)
				c.Assert(recv.Decode(), qt.Equals, keymap.KeyNone)
			})
		}
	}
}

func TestDecodeNECFirst(t *testing.T) {
	c := qt.New(t)

	recv := New(keymap.Samsung)
	a := &air{now: 1000, h: recv}

	// both latched before the application polls
	a.send(rc6.Frame{Code: 0x1BFF})
	a.send(nec.Code(0xE0E08679))

	c.Assert(recv.Decode(), qt.Equals, keymap.KeyDown)
	// the RC6 code was consumed by the same Decode
	c.Assert(recv.Decode(), qt.Equals, keymap.KeyNone)
}

func TestDecodeUnboundFallsThrough(t *testing.T) {
	c := qt.New(t)

	recv := New(keymap.Samsung)
	a := &air{now: 1000, h: recv}

	a.send(nec.Code(0x00FF48B7))
	a.send(rc6.Frame{Code: 0x9A00})
	c.Assert(recv.Decode(), qt.Equals, keymap.KeyDown)
}

func TestTruncatedFrameYieldsNothing(t *testing.T) {
	c := qt.New(t)

	recv := New(keymap.Samsung)
	edges := irkey.Edges(1000, nec.Code(0xE0E016E9).MarshalFrame())
	irkey.Feed(recv, edges[:40])

	c.Assert(recv.ReadNEC(), qt.Equals, uint32(0))
	c.Assert(recv.Decode(), qt.Equals, keymap.KeyNone)

	// the line recovers for the next press
	a := &air{now: edges[39].Timestamp + 500, h: recv}
	a.send(nec.Code(0xE0E016E9))
	c.Assert(recv.Decode(), qt.Equals, keymap.KeyEnter)
}

func TestRawCodes(t *testing.T) {
	c := qt.New(t)

	recv := New(nil)
	a := &air{now: 1000, h: recv}

	a.send(nec.Frame{Address: 0x0004, Command: 0x08})
	a.send(rc6.Frame{Code: 0x1234})

	c.Assert(recv.Decode(), qt.Equals, keymap.KeyNone)

	a.send(nec.Frame{Address: 0x0004, Command: 0x08})
	a.send(rc6.Frame{Code: 0x1234})
	c.Assert(recv.ReadNEC(), qt.Equals, uint32(0x20DF10EF))
	c.Assert(recv.ReadNEC(), qt.Equals, uint32(0))
	c.Assert(recv.ReadRC6(), qt.Equals, uint16(0x1234))
	c.Assert(recv.ReadRC6(), qt.Equals, uint16(0))
}

func TestSetTable(t *testing.T) {
	c := qt.New(t)

	recv := New(nil)
	c.Assert(recv.Table(), qt.IsNil)

	custom := keymap.MustNew(keymap.Binding{Key: keymap.KeyEsc, NEC: 0x20DF10EF})
	recv.SetTable(custom)
	c.Assert(recv.Table(), qt.Equals, custom)

	a := &air{now: 1000, h: recv}
	a.send(nec.Frame{Address: 0x0004, Command: 0x08})
	c.Assert(recv.Decode(), qt.Equals, keymap.KeyEsc)

	a.send(nec.Code(0xE0E016E9))
	c.Assert(recv.Decode(), qt.Equals, keymap.KeyNone)
}

// Edges and polls run concurrently the way an interrupt and the main loop do.
func TestConcurrentPoll(t *testing.T) {
	c := qt.New(t)

	recv := New(keymap.Samsung)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		a := &air{now: 0, h: recv}
		for i := 0; i < 200; i++ {
			a.send(nec.Code(0xE0E006F9))
		}
	}()

	seen := map[keymap.Key]int{}
loop:
	for {
		seen[recv.Decode()]++
		select {
		case <-finished:
			break loop
		default:
		}
	}
	// a press latched after the loop's last Decode
	seen[recv.Decode()]++

	for k := range seen {
		c.Assert(k == keymap.KeyNone || k == keymap.KeyUp, qt.IsTrue, qt.Commentf("key %s", k))
	}
	c.Assert(seen[keymap.KeyUp] >= 1, qt.IsTrue)
}
