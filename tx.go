//go:build tinygo

package irkey

import (
	"machine"
	"time"

	"github.com/sparques/pwm"
)

// TxDevice drives an IR LED with a 38kHz carrier. It replays the same
// mark/space timing the decoders consume, which makes it handy for loopback
// testing a receiver wired to the same board.
type TxDevice struct {
	pin    machine.Pin
	pgroup pwm.Group
	ch     uint8
	duty   uint32
	freq   uint64
}

func NewTxDevice(pin machine.Pin) (*TxDevice, error) {
	pin.Configure(machine.PinConfig{Mode: machine.PinPWM})
	pgroup := pwm.Get(pin)
	if err := pgroup.Configure(machine.PWMConfig{Period: uint64(1e9) / uint64(Freq38Khz)}); err != nil {
		return nil, err
	}
	ch, err := pgroup.Channel(pin)
	if err != nil {
		return nil, err
	}
	pgroup.Set(ch, 0)
	return &TxDevice{
		pin:    pin,
		pgroup: pgroup,
		ch:     ch,
		duty:   pgroup.Top() / 3,
		freq:   Freq38Khz,
	}, nil
}

func (tx *TxDevice) SendPair(pair TimePair) {
	tx.pgroup.Set(tx.ch, tx.duty)
	time.Sleep(pair[0])
	tx.pgroup.Set(tx.ch, 0)
	time.Sleep(pair[1])
}

func (tx *TxDevice) SendPairs(pairs ...TimePair) {
	for _, p := range pairs {
		tx.SendPair(p)
	}
}

func (tx *TxDevice) SendFrame(fm FrameMarshaller) {
	tx.SendPairs(fm.MarshalFrame()...)
}

func (tx *TxDevice) SendFrames(fms ...FrameMarshaller) {
	for _, fm := range fms {
		tx.SendFrame(fm)
	}
}
