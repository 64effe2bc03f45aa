/*
Copyright 2024 Tim St. Pierre
*/
package lcd1602

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

// latched decodes the nibbles clocked in by the recorded port writes.
func latched(ops []i2ctest.IO) []op {
	var out []op
	var prev byte
	for _, io := range ops {
		b := io.W[0]
		if prev&(1<<EN) != 0 && b&(1<<EN) == 0 {
			out = append(out, nib(gpio.Level(prev&(1<<RS) != 0), prev>>4))
		}
		prev = b
	}
	return out
}

func newBackpackDev(t *testing.T) (*Dev, *i2ctest.Record) {
	t.Helper()
	bus := &i2ctest.Record{}
	d, err := NewI2C(bus, &Opts{I2CAddr: 0x3F, Timer: &recTimer{t: &trace{}}})
	if err != nil {
		t.Fatal(err)
	}
	return d, bus
}

func TestNewI2C(t *testing.T) {
	d, bus := newBackpackDev(t)
	for i, io := range bus.Ops {
		if io.Addr != 0x3F {
			t.Fatalf("op %d went to %#x", i, io.Addr)
		}
		if len(io.W) != 1 {
			t.Fatalf("op %d wrote %d bytes, want 1", i, len(io.W))
		}
		if io.W[0]&(1<<WR) != 0 {
			t.Fatalf("op %d raised WR", i)
		}
	}
	want := seq(nib(gpio.Low, 0x02), cmdOps(0x0C), cmdOps(0x01), cmdOps(0x06))
	if diff := cmp.Diff(want, latched(bus.Ops)); diff != "" {
		t.Errorf("init sequence mismatch (-want +got):\n%s", diff)
	}
	last := bus.Ops[len(bus.Ops)-1].W[0]
	if last&(1<<BACKLIGHT) == 0 {
		t.Error("backlight should be on after NewI2C")
	}
	if s := d.String(); s != "lcd1602{pcf8574{record(63)}.P2}" {
		t.Errorf("String() = %q", s)
	}
}

func TestBackpackKeepsBacklight(t *testing.T) {
	d, bus := newBackpackDev(t)
	bus.Ops = nil
	if err := d.Print("A"); err != nil {
		t.Fatal(err)
	}
	for i, io := range bus.Ops {
		if io.W[0]&(1<<BACKLIGHT) == 0 {
			t.Errorf("op %d dropped the backlight bit", i)
		}
	}
	if diff := cmp.Diff(charOps('A'), latched(bus.Ops)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	bus.Ops = nil
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	last := bus.Ops[len(bus.Ops)-1].W[0]
	if last&(1<<BACKLIGHT) != 0 {
		t.Error("Halt should turn the backlight off")
	}
}

func TestNewI2CAddress(t *testing.T) {
	cases := []struct {
		addr uint16
		want uint16
		ok   bool
	}{
		{0, 0x27, true},
		{0x20, 0x20, true},
		{0x3A, 0x3A, true},
		{0x1F, 0, false},
		{0x50, 0, false},
	}
	for _, tc := range cases {
		bus := &i2ctest.Record{}
		_, err := NewI2C(bus, &Opts{I2CAddr: tc.addr, Timer: &recTimer{t: &trace{}}})
		if tc.ok {
			if err != nil {
				t.Errorf("addr %#x: %v", tc.addr, err)
				continue
			}
			if got := bus.Ops[0].Addr; got != tc.want {
				t.Errorf("addr %#x: wrote to %#x, want %#x", tc.addr, got, tc.want)
			}
			continue
		}
		if err == nil {
			t.Errorf("addr %#x: expected error", tc.addr)
		}
		if len(bus.Ops) != 0 {
			t.Errorf("addr %#x: %d writes before failing", tc.addr, len(bus.Ops))
		}
	}
}

func TestPinInterpret(t *testing.T) {
	cases := []struct {
		pin   byte
		data  byte
		value bool
		want  byte
	}{
		{0, 0x00, true, 0x01},
		{3, 0x01, true, 0x09},
		{3, 0x09, false, 0x01},
		{7, 0xFF, false, 0x7F},
		{7, 0x7F, false, 0x7F},
	}
	for _, tc := range cases {
		if got := pinInterpret(tc.pin, tc.data, tc.value); got != tc.want {
			t.Errorf("pinInterpret(%d, %#x, %t) = %#x, want %#x", tc.pin, tc.data, tc.value, got, tc.want)
		}
	}
}
