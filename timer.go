/*
Copyright 2024 Tim St. Pierre
Microsecond delays for the lcd1602 driver
*/
package lcd1602

import (
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/host/v3/cpu"
)

// CountDown is a single shot timer.
//
// Start arms the timer for d. Expired is polled until it reports true.
type CountDown interface {
	Start(d time.Duration) error
	Expired() (bool, error)
}

// Delay blocks for interval microseconds, busy polling the timer.
func (d *Dev) Delay(interval uint32) error {
	if err := d.timer.Start(time.Duration(interval) * time.Microsecond); err != nil {
		return timerError(err)
	}
	for {
		done, err := d.timer.Expired()
		if err != nil {
			return timerError(err)
		}
		if done {
			return nil
		}
	}
}

// spinStep bounds each busy wait between two clock reads.
const spinStep = 10 * time.Microsecond

var errNotStarted = errors.New("timer not started")

// ClockTimer is a CountDown that spins the CPU until its clock passes the
// deadline.
type ClockTimer struct {
	clock    clockwork.Clock
	deadline time.Time
	armed    bool
}

// NewClockTimer returns a ClockTimer reading c. A nil c uses the real clock.
func NewClockTimer(c clockwork.Clock) *ClockTimer {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	return &ClockTimer{clock: c}
}

// Start implements CountDown.
func (t *ClockTimer) Start(d time.Duration) error {
	if d < 0 {
		return errors.New("negative duration")
	}
	t.deadline = t.clock.Now().Add(d)
	t.armed = true
	return nil
}

// Expired implements CountDown.
func (t *ClockTimer) Expired() (bool, error) {
	if !t.armed {
		return false, errNotStarted
	}
	left := t.deadline.Sub(t.clock.Now())
	if left <= 0 {
		t.armed = false
		return true, nil
	}
	if left > spinStep {
		left = spinStep
	}
	cpu.Nanospin(left)
	return false, nil
}
