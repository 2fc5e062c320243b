package irkey

import "time"

const (
	// Freq38Khz is the most commonly used frequency for IR remotes
	Freq38Khz = 38000

	// TickPeriod is the resolution of the edge timebase. Edge timestamps are
	// a free running 16-bit count of TickPeriods that wraps at 65536.
	TickPeriod = 100 * time.Microsecond
)

// EdgeEvent is a single transition on the output of a demodulating IR
// receiver. Level is the pin level after the transition; receivers idle high,
// so a falling edge (Level false) marks the start of a burst.
type EdgeEvent struct {
	Timestamp uint16
	Level     bool
}

// Elapsed returns the number of ticks from one timestamp to a later one.
// The subtraction wraps, so a pair straddling the counter rollover is exact
// as long as less than 65536 ticks separate them.
func Elapsed(from, to uint16) uint16 {
	return to - from
}

// Tick converts a duration measured from the timebase epoch into the
// wrapping 16-bit tick counter value.
func Tick(d time.Duration) uint16 {
	return uint16(d / TickPeriod)
}

// EdgeHandler consumes edge events. HandleEdge is called from interrupt
// context on microcontrollers, so implementations must not block.
type EdgeHandler interface {
	HandleEdge(EdgeEvent)
}

// EdgeHandlerFunc adapts a plain function to EdgeHandler.
type EdgeHandlerFunc func(EdgeEvent)

func (f EdgeHandlerFunc) HandleEdge(ev EdgeEvent) {
	f(ev)
}

type multiEdgeHandler []EdgeHandler

func (m multiEdgeHandler) HandleEdge(ev EdgeEvent) {
	for i := range m {
		m[i].HandleEdge(ev)
	}
}

// MultiEdgeHandler accepts a list of EdgeHandlers and returns an object that
// also implements EdgeHandler. Every edge is delivered to every handler, in
// order, so several protocol decoders can share a single IR receiver.
// E.G.:
//
//	mult := irkey.MultiEdgeHandler(nec.New(), rc6.New())
//	rxd := irkey.NewRxDevice(pin, mult)
func MultiEdgeHandler(handlers ...EdgeHandler) EdgeHandler {
	return multiEdgeHandler(handlers)
}

// TimePair encodes two durations: a mark (carrier on) followed by a space
// (carrier off).
type TimePair [2]time.Duration

// FrameMarshaller defines an interface for marshalling data to slice of TimePairs
type FrameMarshaller interface {
	MarshalFrame() []TimePair
}

// Edges converts mark/space timing into the edge events an active-low
// receiver would report, with the first mark starting at tick start.
// Each mark yields a falling edge at its start and a rising edge at its end;
// spaces only advance time. Time is accumulated before quantizing so tick
// rounding never drifts across a frame.
func Edges(start uint16, pairs []TimePair) []EdgeEvent {
	out := make([]EdgeEvent, 0, 2*len(pairs))
	var at time.Duration
	for _, p := range pairs {
		mark, space := p[0], p[1]
		if mark > 0 {
			out = append(out,
				EdgeEvent{Timestamp: start + Tick(at), Level: false},
				EdgeEvent{Timestamp: start + Tick(at+mark), Level: true},
			)
		}
		at += mark + space
	}
	return out
}

// Feed delivers events to h in order.
func Feed(h EdgeHandler, events []EdgeEvent) {
	for _, ev := range events {
		h.HandleEdge(ev)
	}
}
