/*
Copyright 2024 Tim St. Pierre
Options for lcd1602 character display
*/
package lcd1602

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

type Opts struct {
	// The I²C slave address of the backpack, used by NewI2C
	I2CAddr uint16
	// GPIO line names used by NewGPIO
	EN string
	RS string
	D4 string
	D5 string
	D6 string
	D7 string
	// Optional backlight line for NewGPIO
	Backlight string
	// Timer used for protocol delays. nil uses the real clock.
	Timer CountDown
}

var DefaultOpts = Opts{
	I2CAddr: 0x27,
	EN:      "GPIO17",
	RS:      "GPIO4",
	D4:      "GPIO25",
	D5:      "GPIO22",
	D6:      "GPIO23",
	D7:      "GPIO24",
}

func (o *Opts) i2cAddr() (uint16, error) {
	switch o.I2CAddr {
	case 0:
		// Default address.
		return 0x27, nil
	case 0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27:
		return o.I2CAddr, nil
	case 0x38, 0x39, 0x3A, 0x3B, 0x3C, 0x3D, 0x3E, 0x3F:
		// PCF8574A
		return o.I2CAddr, nil
	default:
		return 0, errors.New("given address not supported by device")
	}
}

func (o *Opts) timer() CountDown {
	if o.Timer != nil {
		return o.Timer
	}
	return NewClockTimer(nil)
}

// pins resolves the display lines in New argument order.
func (o *Opts) pins() ([6]gpio.PinIO, error) {
	var pins [6]gpio.PinIO
	names := [6][2]string{
		{"EN", o.EN}, {"RS", o.RS},
		{"D4", o.D4}, {"D5", o.D5}, {"D6", o.D6}, {"D7", o.D7},
	}
	for i, n := range names {
		p, err := lookup(n[0], n[1])
		if err != nil {
			return pins, err
		}
		pins[i] = p
	}
	return pins, nil
}

func lookup(role, name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, fmt.Errorf("lcd1602: %s line is not configured", role)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("lcd1602: %s line %q not found", role, name)
	}
	return p, nil
}

// NewGPIO returns a display wired directly to host GPIO lines.
//
// Use default options if nil is used. host.Init() must have been called.
func NewGPIO(opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	pins, err := opts.pins()
	if err != nil {
		return nil, err
	}
	var bl gpio.PinIO
	if opts.Backlight != "" {
		if bl, err = lookup("BACKLIGHT", opts.Backlight); err != nil {
			return nil, err
		}
	}
	log.Debugf("lcd1602: using lines EN=%s RS=%s D4=%s D5=%s D6=%s D7=%s", pins[0], pins[1], pins[2], pins[3], pins[4], pins[5])
	d, err := New(pins[0], pins[1], pins[2], pins[3], pins[4], pins[5], opts.timer())
	if err != nil {
		return nil, err
	}
	if bl != nil {
		d.backlight = &line{"BACKLIGHT", bl}
		if err := d.SetBacklight(true); err != nil {
			return nil, err
		}
	}
	return d, nil
}
