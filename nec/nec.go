// Package nec decodes NEC pulse-distance frames from receiver edge events.
//
// A frame is a 9ms burst and 4.5ms space, 32 bits of a fixed 562us burst
// followed by a short (0) or long (1) space, and a final stop burst. The
// Decoder classifies each interval on the 100us timebase and latches the
// 32-bit code only once the stop burst ends; anything out of tolerance drops
// the frame and waits for the next start burst.
package nec

import "github.com/sparques/irkey"

// Timeouts in 100us ticks.
const (
	staleTimeout = 300 // 30 ms; any frame in progress is abandoned
	startTimeout = 200
	burstTimeout = 10 // bit burst and stop burst
	bitTimeout   = 30
	zeroSpaceMax = 10 // longer spaces are ones
	bitCount     = 32
)

type Phase uint8

const (
	PhaseInit Phase = iota
	PhaseStart
	PhaseReadWait
	PhaseReadGet
	PhaseStop
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseStart:
		return "start"
	case PhaseReadWait:
		return "read-wait"
	case PhaseReadGet:
		return "read-get"
	case PhaseStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Decoder is the NEC state machine. HandleEdge must only be called from one
// context at a time (normally the edge interrupt); Read may be called
// concurrently with it.
type Decoder struct {
	phase    Phase
	acc      uint32
	bitIndex int8
	last     uint16
	latch    irkey.Latch
}

func New() *Decoder {
	d := &Decoder{}
	d.Reset()
	return d
}

// Reset drops any frame in progress. The latched code is kept.
func (d *Decoder) Reset() {
	d.phase = PhaseInit
	d.acc = 0
	d.bitIndex = bitCount - 1
}

func (d *Decoder) Phase() Phase {
	return d.phase
}

// Read returns the last completed code and clears it. Zero means nothing new
// was decoded since the previous Read.
func (d *Decoder) Read() uint32 {
	return d.latch.Take()
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
			d.phase = PhaseStart
		}

	case PhaseStart:
		switch {
		case dt > startTimeout:
			d.Reset()
		case !ev.Level:
			d.bitIndex = bitCount - 1
			d.acc = 0
			d.phase = PhaseReadWait
		}

	case PhaseReadWait:
		switch {
		case dt > burstTimeout:
			d.Reset()
		case ev.Level:
			d.phase = PhaseReadGet
		}

	case PhaseReadGet:
		switch {
		case dt > bitTimeout:
			d.Reset()
		case !ev.Level:
			// the space just ended; its length is the bit
			if dt > zeroSpaceMax {
				d.acc |= 1 << uint(d.bitIndex)
			} else {
				d.acc &^= 1 << uint(d.bitIndex)
			}
			d.bitIndex--
			if d.bitIndex < 0 {
				d.bitIndex = bitCount - 1
				d.phase = PhaseStop
			} else {
				d.phase = PhaseReadWait
			}
		}

	case PhaseStop:
		switch {
		case dt > burstTimeout:
			d.Reset()
		case ev.Level:
			d.latch.Commit(d.acc)
			d.Reset()
		}
	}
}
