// Package remote runs the NEC and RC6 decoders side by side on one IR
// receiver and maps whatever they latch to keys.
//
// The two halves run in different contexts: HandleEdge is the edge callback
// (an interrupt on microcontrollers), Decode and the Read methods are polled
// from the application loop. The decoders' latches are the only state the two
// share.
//
//	recv := remote.New(keymap.Samsung)
//	rx := irkey.NewRxDevice(machine.GP15, recv)
//	rx.Start()
//	for {
//		switch recv.Decode() {
//		case keymap.KeyUp:
//			...
//		}
//		time.Sleep(10 * time.Millisecond)
//	}
package remote

import (
	"github.com/sparques/irkey"
	"github.com/sparques/irkey/keymap"
	"github.com/sparques/irkey/nec"
	"github.com/sparques/irkey/rc6"
)

type Receiver struct {
	nec   *nec.Decoder
	rc6   *rc6.Decoder
	table *keymap.Table
}

// New returns a Receiver matching codes against table. A nil table matches
// nothing; raw codes are still available through ReadNEC and ReadRC6.
func New(table *keymap.Table) *Receiver {
	return &Receiver{
		nec:   nec.New(),
		rc6:   rc6.New(),
		table: table,
	}
}

// HandleEdge implements irkey.EdgeHandler. Both decoders see every edge.
func (r *Receiver) HandleEdge(ev irkey.EdgeEvent) {
	r.nec.HandleEdge(ev)
	r.rc6.HandleEdge(ev)
}

// Decode reads and clears both latches, NEC first, and returns the key bound
// to the NEC code, else the key bound to the RC6 code, else KeyNone.
// KeyNone does not distinguish an idle remote from a frame that failed to
// decode.
func (r *Receiver) Decode() keymap.Key {
	necCode := r.nec.Read()
	rc6Code := r.rc6.Read()

	if k := r.table.NEC(necCode); k != keymap.KeyNone {
		return k
	}
	return r.table.RC6(rc6Code)
}

// ReadNEC returns the last NEC code and clears it.
func (r *Receiver) ReadNEC() uint32 {
	return r.nec.Read()
}

// ReadRC6 returns the last RC6 payload and clears it.
func (r *Receiver) ReadRC6() uint16 {
	return r.rc6.Read()
}

// SetTable replaces the code table. Call it from the goroutine that calls
// Decode.
func (r *Receiver) SetTable(t *keymap.Table) {
	r.table = t
}

func (r *Receiver) Table() *keymap.Table {
	return r.table
}
