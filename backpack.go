/*
Copyright 2024 Tim St. Pierre
PCF8574 I2C backpack exposing its outputs as display lines
Thanks to Dave Cheney for figuring out the registers!
*/
package lcd1602

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

// Backpack bit positions
const (
	RS        = 0
	WR        = 1
	EN        = 2
	BACKLIGHT = 3
	D4        = 4
	D5        = 5
	D6        = 6
	D7        = 7
)

// Backpack drives the eight outputs of a PCF8574 port expander. Every level
// change rewrites the whole port, so the other bits keep their last value.
type Backpack struct {
	c     i2c.Dev
	state byte
}

// NewBackpack returns a Backpack at addr with every output low.
func NewBackpack(b i2c.Bus, addr uint16) *Backpack {
	return &Backpack{c: i2c.Dev{Bus: b, Addr: addr}}
}

func (b *Backpack) String() string {
	return fmt.Sprintf("pcf8574{%s}", &b.c)
}

// Pin returns the output at bit as a display line.
func (b *Backpack) Pin(bit byte) OutputPin {
	return &backpackPin{b: b, bit: bit}
}

func (b *Backpack) set(bit byte, value bool) error {
	data := pinInterpret(bit, b.state, value)
	if _, err := b.c.Write([]byte{data}); err != nil {
		return err
	}
	b.state = data
	return nil
}

type backpackPin struct {
	b   *Backpack
	bit byte
}

func (p *backpackPin) String() string {
	return fmt.Sprintf("%s.P%d", p.b, p.bit)
}

func (p *backpackPin) Out(l gpio.Level) error {
	return p.b.set(p.bit, bool(l))
}

// NewI2C returns a display behind a PCF8574 backpack on b.
//
// Use default options if nil is used.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	addr, err := opts.i2cAddr()
	if err != nil {
		return nil, fmt.Errorf("lcd1602 %#x: %w", opts.I2CAddr, err)
	}
	bp := NewBackpack(b, addr)
	log.Debugf("lcd1602: using backpack %s", bp)
	d, err := New(bp.Pin(EN), bp.Pin(RS), bp.Pin(D4), bp.Pin(D5), bp.Pin(D6), bp.Pin(D7), opts.timer())
	if err != nil {
		return nil, err
	}
	d.backlight = &line{"BACKLIGHT", bp.Pin(BACKLIGHT)}
	if err := d.SetBacklight(true); err != nil {
		return nil, err
	}
	return d, nil
}

// pinInterpret sets or clears bit pin in data.
func pinInterpret(pin, data byte, value bool) byte {
	mask := byte(0x01) << pin
	if value {
		return data | mask
	}
	return data &^ mask
}
