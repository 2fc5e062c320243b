package irkey

import "sync/atomic"

// Latch holds the most recently completed code of a decoder. The decoder
// commits from interrupt context while the application takes from its poll
// loop; both are single atomic operations, so a take can never observe half
// of a commit. Zero means empty.
type Latch struct {
	v atomic.Uint32
}

// Commit replaces the latched code.
func (l *Latch) Commit(code uint32) {
	l.v.Store(code)
}

// Take returns the latched code and clears the latch.
func (l *Latch) Take() uint32 {
	return l.v.Swap(0)
}

// Peek returns the latched code without clearing it.
func (l *Latch) Peek() uint32 {
	return l.v.Load()
}
