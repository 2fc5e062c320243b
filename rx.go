//go:build tinygo

package irkey

import (
	"machine"
	"time"
)

// RxDevice turns pin change interrupts from a demodulating IR receiver into
// EdgeEvents on the 100us timebase.
type RxDevice struct {
	pin     machine.Pin
	epoch   time.Time
	handler EdgeHandler
}

// NewRxDevice configures pin as an input and returns a device that forwards
// every edge to h. Nothing happens until Start is called.
func NewRxDevice(pin machine.Pin, h EdgeHandler) *RxDevice {
	// the most common receivers have a pull up pin builtin
	// but in the future, may want to add the option to use PinInputPullup
	pin.Configure(machine.PinConfig{Mode: machine.PinInput})
	return &RxDevice{
		pin:     pin,
		epoch:   time.Now(),
		handler: h,
	}
}

func (rx *RxDevice) interruptHandler(interruptPin machine.Pin) {
	rx.handler.HandleEdge(EdgeEvent{
		Timestamp: Tick(time.Since(rx.epoch)),
		Level:     interruptPin.Get(),
	})
}

// Start sets the interrupt handler and thus starts processing signals.
func (rx *RxDevice) Start() error {
	globalLogger.Debug("irkey: rx started")
	return rx.pin.SetInterrupt(machine.PinToggle, rx.interruptHandler)
}

// Stop disables the interrupt handler.
func (rx *RxDevice) Stop() error {
	globalLogger.Debug("irkey: rx stopped")
	return rx.pin.SetInterrupt(machine.PinToggle, nil)
}
