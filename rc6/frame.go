package rc6

import (
	"time"

	"github.com/sparques/irkey"
)

const (
	unit       = 444 * time.Microsecond
	leadMark   = unit * 6
	leadSpace  = unit * 2
	signalFree = unit * 6
)

// Frame is an RC6 frame with a 16-bit payload, bit 0 sent first.
// Mode is the 3-bit mode field; the Decoder steps over it.
type Frame struct {
	Mode   uint8
	Toggle bool
	Code   uint16
}

// half is one run of the Manchester waveform: a burst (mark) or a space,
// n units long.
type half struct {
	mark bool
	n    int
}

func (f Frame) MarshalFrame() []irkey.TimePair {
	halves := make([]half, 0, 48)
	bit := func(one bool, n int) {
		// a 1 is burst then space, a 0 space then burst
		halves = append(halves, half{mark: one, n: n}, half{mark: !one, n: n})
	}

	halves = append(halves, half{mark: true, n: 6}, half{mark: false, n: 2})
	bit(true, 1) // start bit
	for i := 2; i >= 0; i-- {
		bit((f.Mode>>i)&1 == 1, 1)
	}
	bit(f.Toggle, 2)
	for i := 0; i < 16; i++ {
		bit((f.Code>>i)&1 == 1, 1)
	}

	return pairs(halves)
}

// pairs merges adjacent runs of the same kind and folds them into
// mark/space pairs, ending with the signal free time.
func pairs(halves []half) []irkey.TimePair {
	out := make([]irkey.TimePair, 0, len(halves)/2+1)
	var cur irkey.TimePair
	inSpace := false
	for _, h := range halves {
		d := time.Duration(h.n) * unit
		switch {
		case h.mark && inSpace:
			out = append(out, cur)
			cur = irkey.TimePair{d, 0}
			inSpace = false
		case h.mark:
			cur[0] += d
		default:
			cur[1] += d
			inSpace = true
		}
	}
	cur[1] += signalFree
	return append(out, cur)
}
