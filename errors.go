/*
Copyright 2024 Tim St. Pierre
Errors returned by the lcd1602 driver
*/
package lcd1602

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedBusWidth is returned when any bus width other than
	// FourBits is requested. Nothing is sent to the display.
	ErrUnsupportedBusWidth = errors.New("lcd1602: unsupported bus width")
	// ErrTimer wraps any failure reported by the CountDown.
	ErrTimer = errors.New("lcd1602: timer error")
	// ErrNoBacklight is returned by SetBacklight when no backlight line is wired.
	ErrNoBacklight = errors.New("lcd1602: no backlight line")
)

// PinError reports a failed level change on one of the display lines.
type PinError struct {
	Line string
	Err  error
}

func (e *PinError) Error() string {
	return fmt.Sprintf("lcd1602: line %s: %v", e.Line, e.Err)
}

func (e *PinError) Unwrap() error {
	return e.Err
}

func timerError(err error) error {
	return fmt.Errorf("%w: %w", ErrTimer, err)
}
