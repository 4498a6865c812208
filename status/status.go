// Package status drives the status LED.
//
// Every pattern is a blocking sequence of writes and sleeps on the caller's
// goroutine; nothing blinks in the background.
package status

import (
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

type State int

const (
	Connecting State = iota
	Connected
	Transferring
	Error
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Transferring:
		return "transferring"
	case Error:
		return "error"
	}
	return "unknown"
}

const (
	fastPulse     = 100 * time.Millisecond
	slowPulse     = 500 * time.Millisecond
	transferPause = 200 * time.Millisecond
	fadeStep      = 20 * time.Millisecond

	// the fade walks a 10-bit brightness scale in steps of 64
	fadeMax   = 1023
	fadeDelta = 64

	pwmFrequency = physic.KiloHertz
)

// Output is the part of gpio.PinOut the indicator needs.
type Output interface {
	Out(l gpio.Level) error
	PWM(duty gpio.Duty, f physic.Frequency) error
}

// Signaler is implemented by Indicator.
type Signaler interface {
	Signal(s State)
}

// Sleeper blocks for d. clockwork.Clock implements it.
type Sleeper interface {
	Sleep(d time.Duration)
}

type Indicator struct {
	pin   Output
	clock Sleeper
}

// New returns an indicator writing to pin. A nil pin discards writes and a
// nil clock uses the wall clock.
func New(pin Output, clock Sleeper) *Indicator {
	if pin == nil {
		pin = Nop{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Indicator{pin: pin, clock: clock}
}

// Signal plays the pattern for s and returns when it is done.
func (i *Indicator) Signal(s State) {
	switch s {
	case Connecting:
		i.blink(2, fastPulse)
	case Connected:
		i.blink(1, slowPulse)
	case Transferring:
		i.blink(2, fastPulse)
		i.clock.Sleep(transferPause)
	case Error:
		i.fade()
	}
}

func (i *Indicator) blink(n int, d time.Duration) {
	for k := 0; k < n; k++ {
		_ = i.pin.Out(gpio.High)
		i.clock.Sleep(d)
		_ = i.pin.Out(gpio.Low)
		i.clock.Sleep(d)
	}
}

func (i *Indicator) fade() {
	for v := 0; v <= fadeMax; v += fadeDelta {
		i.duty(v)
	}
	for v := fadeMax; v >= 0; v -= fadeDelta {
		i.duty(v)
	}
	_ = i.pin.Out(gpio.Low)
}

func (i *Indicator) duty(v int) {
	_ = i.pin.PWM(gpio.Duty(int64(v)*int64(gpio.DutyMax)/fadeMax), pwmFrequency)
	i.clock.Sleep(fadeStep)
}

// Nop discards every write. It stands in for a board without a status LED.
type Nop struct{}

func (Nop) Out(gpio.Level) error { return nil }
func (Nop) PWM(gpio.Duty, physic.Frequency) error { return nil }
