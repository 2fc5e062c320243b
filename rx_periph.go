//go:build !tinygo

package irkey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var ErrPinNotFound = errors.New("irkey: gpio pin not found")

// PinRxDevice feeds edges from a periph.io GPIO pin into an EdgeHandler.
// Timestamps come from the host clock, so on Linux the timebase is only as
// good as the scheduler latency of the goroutine blocked in WaitForEdge.
type PinRxDevice struct {
	pin       gpio.PinIn
	handler   EdgeHandler
	clock     clockwork.Clock
	epoch     time.Time
	wait      time.Duration
	listening bool
}

type PinOption func(*PinRxDevice)

// WithClock sets the clock edges are timestamped with.
func WithClock(c clockwork.Clock) PinOption {
	return func(rx *PinRxDevice) {
		rx.clock = c
	}
}

// WithWaitTimeout bounds each WaitForEdge call, which is how often Run
// notices a cancelled context while the line is idle. Defaults to 100ms.
func WithWaitTimeout(d time.Duration) PinOption {
	return func(rx *PinRxDevice) {
		rx.wait = d
	}
}

func NewPinRxDevice(pin gpio.PinIn, h EdgeHandler, opts ...PinOption) *PinRxDevice {
	rx := &PinRxDevice{
		pin:     pin,
		handler: h,
		clock:   clockwork.NewRealClock(),
		wait:    100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(rx)
	}
	rx.epoch = rx.clock.Now()
	return rx
}

// OpenPin initializes the periph.io host drivers and opens the named pin
// (e.g. "GPIO17").
func OpenPin(name string, h EdgeHandler, opts ...PinOption) (*PinRxDevice, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph.io host: %w", err)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrPinNotFound, name)
	}
	return NewPinRxDevice(p, h, opts...), nil
}

// Listen configures the pin as a pulled up input reporting both edges.
// Run calls it when needed.
func (rx *PinRxDevice) Listen() error {
	if err := rx.pin.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return fmt.Errorf("failed to configure %s for edge detection: %w", rx.pin, err)
	}
	rx.listening = true
	globalLogger.Info("irkey: listening on " + rx.pin.String())
	return nil
}

// Run blocks delivering edges to the handler until ctx is cancelled.
// It returns ctx.Err() on cancellation.
func (rx *PinRxDevice) Run(ctx context.Context) error {
	if !rx.listening {
		if err := rx.Listen(); err != nil {
			return err
		}
	}
	defer rx.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !rx.pin.WaitForEdge(rx.wait) {
			continue
		}
		rx.handler.HandleEdge(EdgeEvent{
			Timestamp: Tick(rx.clock.Since(rx.epoch)),
			Level:     rx.pin.Read() == gpio.High,
		})
	}
}

func (rx *PinRxDevice) stop() {
	rx.listening = false
	if err := rx.pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		globalLogger.Warn("irkey: failed to disable edge detection: " + err.Error())
	}
	globalLogger.Info("irkey: stopped listening on " + rx.pin.String())
}

// Close halts the underlying pin.
func (rx *PinRxDevice) Close() error {
	return rx.pin.Halt()
}
