/*
Package rc6 decodes RC6 frames from receiver edge events.

RC6 is Manchester coded with a unit t of 444us. A frame is a 6t burst and
2t space (the leader), a start bit that is always 1, three mode bits, a
trailer (toggle) bit twice as wide as the others, and the payload bits.
Every bit has a transition in its middle; a 1 is burst then space, a 0 is
space then burst.

The Decoder does not reconstruct the waveform. It steps from one mid-bit
transition to the next: an interval of about 2t means the next bit's middle
was reached directly, an interval of about t is a bit-boundary transition
that must be followed by a second short one. The mid-bit flag remembers that
a boundary transition was seen. Mode bits and the toggle bit are stepped over
without being recorded; the 16 payload bits are latched LSB first, so the
first payload bit on air is bit 0 of the code.

With the 100us timebase a half bit is 5 ticks and a full bit 10.
*/
package rc6

import "github.com/sparques/irkey"

// Timeouts in 100us ticks.
const (
	staleTimeout   = 100
	start1Timeout  = 30 // leader burst
	start2Timeout  = 15 // leader space
	halfBit        = 5
	fullBit        = 10
	toggle1Timeout = 30
	toggle2Window  = 10
	fieldBitCount  = 3
	bitCount       = 16
)

type Phase uint8

const (
	PhaseInit Phase = iota
	PhaseStart1
	PhaseStart2
	PhaseStart3
	PhaseReadFieldWait
	PhaseReadToggle1
	PhaseReadToggle2
	PhaseReadGet
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseStart1:
		return "start-1"
	case PhaseStart2:
		return "start-2"
	case PhaseStart3:
		return "start-3"
	case PhaseReadFieldWait:
		return "read-field-wait"
	case PhaseReadToggle1:
		return "read-toggle-1"
	case PhaseReadToggle2:
		return "read-toggle-2"
	case PhaseReadGet:
		return "read-get"
	default:
		return "unknown"
	}
}

// toggleOutcome says what the edge that closes the toggle bit turned out to be.
type toggleOutcome uint8

const (
	// consumedToggleOnly: a boundary transition between the toggle bit and
	// the first payload bit. The payload bit's middle is still to come.
	consumedToggleOnly toggleOutcome = iota
	// beganFirstDataBit: no boundary transition, the edge already is the
	// middle of the first payload bit and must be read as one.
	beganFirstDataBit
)

// Decoder is the RC6 state machine. HandleEdge must only be called from one
// context at a time (normally the edge interrupt); Read may be called
// concurrently with it.
type Decoder struct {
	phase     Phase
	acc       uint16
	bitIndex  uint8
	fieldBits uint8
	midBit    bool
	last      uint16
	latch     irkey.Latch
}

func New() *Decoder {
	return &Decoder{}
}

// Reset drops any frame in progress. The latched code is kept.
func (d *Decoder) Reset() {
	d.phase = PhaseInit
	d.acc = 0
	d.bitIndex = 0
	d.fieldBits = 0
	d.midBit = false
}

func (d *Decoder) Phase() Phase {
	return d.phase
}

// Read returns the last completed payload and clears it. Zero means nothing
// new was decoded since the previous Read.
func (d *Decoder) Read() uint16 {
	return uint16(d.latch.Take())
}

// HandleEdge implements irkey.EdgeHandler.
func (d *Decoder) HandleEdge(ev irkey.EdgeEvent) {
	dt := irkey.Elapsed(d.last, ev.Timestamp)
	d.last = ev.Timestamp

	if dt > staleTimeout && d.phase != PhaseInit {
		d.Reset()
	}

	switch d.phase {
	case PhaseInit:
		if !ev.Level {
			d.phase = PhaseStart1
		}

	case PhaseStart1:
		switch {
		case dt > start1Timeout:
			d.Reset()
		case ev.Level:
			d.phase = PhaseStart2
		}

	case PhaseStart2:
		switch {
		case dt > start2Timeout:
			d.Reset()
		case !ev.Level:
			d.phase = PhaseStart3
		}

	case PhaseStart3:
		switch {
		case dt > halfBit:
			d.Reset()
		case ev.Level:
			// middle of the start bit
			d.midBit = false
			d.phase = PhaseReadFieldWait
		}

	case PhaseReadFieldWait:
		switch {
		case dt > fullBit:
			d.Reset()
		case dt > halfBit || d.midBit:
			d.midBit = false
			d.fieldBits++
			if d.fieldBits == fieldBitCount {
				d.fieldBits = 0
				d.phase = PhaseReadToggle1
			}
		default:
			d.midBit = true
		}

	case PhaseReadToggle1:
		switch {
		case dt > toggle1Timeout:
			d.Reset()
		case dt <= halfBit && !d.midBit:
			d.midBit = true
		default:
			// middle of the toggle bit
			d.phase = PhaseReadToggle2
		}

	case PhaseReadToggle2:
		if outcome, window := d.finishToggle(dt); outcome == beganFirstDataBit {
			d.readBit(window, ev.Level)
		}

	case PhaseReadGet:
		d.readBit(dt, ev.Level)
	}
}

// finishToggle handles the first edge after the middle of the toggle bit and
// prepares the payload accumulator. A toggle bit's second half is 2t wide, so
// an edge inside toggle2Window is the boundary transition into the first
// payload bit. A later edge is that bit's middle; it is then read as a full
// bit window regardless of how much longer than 2t it was.
func (d *Decoder) finishToggle(dt uint16) (toggleOutcome, uint16) {
	d.phase = PhaseReadGet
	d.bitIndex = 0
	d.acc = 0
	if dt < toggle2Window {
		return consumedToggleOnly, dt
	}
	return beganFirstDataBit, fullBit
}

func (d *Decoder) readBit(dt uint16, level bool) {
	switch {
	case dt > fullBit:
		d.Reset()
	case dt <= halfBit && !d.midBit && d.bitIndex != 0:
		d.midBit = true
	default:
		if level {
			d.acc |= 1 << d.bitIndex
		}
		d.bitIndex++
		d.midBit = false
		if d.bitIndex == bitCount {
			d.latch.Commit(uint32(d.acc))
			d.Reset()
		}
	}
}
