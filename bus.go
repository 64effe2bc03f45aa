/*
Copyright 2024 Tim St. Pierre
4-bit parallel bus for HD44780 compatible controllers
*/
package lcd1602

import (
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

// OutputPin is the only thing the driver needs from a display line.
//
// Every periph.io gpio.PinOut satisfies it, as do the lines of a Backpack.
type OutputPin interface {
	Out(l gpio.Level) error
}

const (
	rsCommand = gpio.Low
	rsData    = gpio.High
)

// line is an OutputPin with the name used in errors.
type line struct {
	name string
	pin  OutputPin
}

func (l line) set(level gpio.Level) error {
	if err := l.pin.Out(level); err != nil {
		return &PinError{Line: l.name, Err: err}
	}
	return nil
}

// writeBus latches the low four bits of nibble into the controller with one
// enable pulse. Timing is up to the caller.
func (d *Dev) writeBus(nibble byte) error {
	if err := d.en.set(gpio.Low); err != nil {
		return err
	}
	for i, l := range d.data {
		if err := l.set(nibble&(1<<i) != 0); err != nil {
			return err
		}
	}
	if err := d.en.set(gpio.High); err != nil {
		return err
	}
	return d.en.set(gpio.Low)
}

func (d *Dev) command(cmd byte) error {
	log.Tracef("lcd1602: command %#02x", cmd)
	return d.write(cmd, rsCommand)
}

func (d *Dev) writeChar(ch byte) error {
	log.Tracef("lcd1602: data %#02x %q", ch, ch)
	return d.write(ch, rsData)
}

// write sends data high nibble first with RS set to rs.
func (d *Dev) write(data byte, rs gpio.Level) error {
	if err := d.rs.set(rs); err != nil {
		return err
	}
	if err := d.writeBus((data & 0xF0) >> 4); err != nil {
		return err
	}
	return d.writeBus(data & 0x0F)
}
