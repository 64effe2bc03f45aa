/*
Copyright 2024 Tim St. Pierre
Controls a 1602 character LCD display over a 4-bit parallel bus
*/
package lcd1602

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

const (
	// Commands
	CMD_Clear_Display   = 0x01
	CMD_Return_Home     = 0x02
	CMD_Entry_Mode      = 0x04
	CMD_Display_Control = 0x08

	// Options
	OPT_Increment      = 0x02 // CMD_Entry_Mode
	OPT_Cursor_Shift   = 0x01 // CMD_Entry_Mode
	OPT_Enable_Display = 0x04 // CMD_Display_Control

	// Sent as a single nibble to switch the controller to the 4-bit interface
	NIB_Four_Bit_Bus = 0x02

	// Display on, cursor off, blink off
	displayMode = CMD_Display_Control | OPT_Enable_Display
)

// Delays in microseconds.
const (
	delayPowerOn = 50000
	delayShort   = 39
	delayLong    = 1530
	delayChar    = 320
)

// Println stops writing once this column has been reached.
const lastColumn = 15

type BusWidth int

const (
	FourBits BusWidth = iota
	EightBits
)

func (b BusWidth) String() string {
	switch b {
	case FourBits:
		return "4-bit"
	case EightBits:
		return "8-bit"
	}
	return fmt.Sprintf("BusWidth(%d)", int(b))
}

type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// Dev is a character display on a 4-bit bus. It owns its lines and timer and
// is not safe for concurrent use.
type Dev struct {
	en        line
	rs        line
	data      [4]line
	backlight *line
	timer     CountDown
	charCount uint
}

// New initializes the display connected to the given lines and returns it
// ready for text.
//
// No Dev is returned if any step of the power on sequence fails.
func New(en, rs, d4, d5, d6, d7 OutputPin, timer CountDown) (*Dev, error) {
	d := &Dev{
		en: line{"EN", en},
		rs: line{"RS", rs},
		data: [4]line{
			{"D4", d4},
			{"D5", d5},
			{"D6", d6},
			{"D7", d7},
		},
		timer: timer,
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) init() error {
	log.Debug("lcd1602: waiting for power on")
	if err := d.Delay(delayPowerOn); err != nil {
		return err
	}
	log.Debug("lcd1602: switching to 4-bit bus")
	if err := d.SetBusWidth(FourBits); err != nil {
		return err
	}
	log.Debug("lcd1602: writing display mode")
	if err := d.command(displayMode); err != nil {
		return err
	}
	if err := d.Clear(); err != nil {
		return err
	}
	return d.SetEntryMode(RightToLeft, false)
}

func (d *Dev) String() string {
	return fmt.Sprintf("lcd1602{%v}", d.en.pin)
}

// SetBusWidth switches the controller interface. Only FourBits is supported.
func (d *Dev) SetBusWidth(w BusWidth) error {
	if w != FourBits {
		return fmt.Errorf("%w: %s", ErrUnsupportedBusWidth, w)
	}
	if err := d.writeBus(NIB_Four_Bit_Bus); err != nil {
		return err
	}
	return d.Delay(delayShort)
}

// SetEntryMode sets the cursor direction and whether the display shifts
// with it. RightToLeft sets the controller's increment flag.
func (d *Dev) SetEntryMode(dir Direction, shift bool) error {
	option := byte(CMD_Entry_Mode)
	if dir == RightToLeft {
		option = option | OPT_Increment
	}
	if shift {
		option = option | OPT_Cursor_Shift
	}
	if err := d.command(option); err != nil {
		return err
	}
	return d.Delay(delayShort)
}

// Clear blanks the display and resets the column count.
func (d *Dev) Clear() error {
	log.Debug("lcd1602: clear")
	if err := d.command(CMD_Clear_Display); err != nil {
		return err
	}
	d.charCount = 0
	return d.Delay(delayLong)
}

// Home returns the cursor to the first position. The column count is kept.
func (d *Dev) Home() error {
	log.Debug("lcd1602: home")
	if err := d.command(CMD_Return_Home); err != nil {
		return err
	}
	return d.Delay(delayLong)
}

// NextLine rewrites the display mode and resets the column count. It does
// not move the controller's write address.
func (d *Dev) NextLine() error {
	log.Debug("lcd1602: next line")
	if err := d.rs.set(rsCommand); err != nil {
		return err
	}
	if err := d.en.set(gpio.Low); err != nil {
		return err
	}
	if err := d.command(displayMode); err != nil {
		return err
	}
	d.charCount = 0
	return d.Delay(delayLong)
}

// Print writes the low byte of each rune in s. The column count is not
// updated and the display width is not enforced.
func (d *Dev) Print(s string) error {
	for _, r := range s {
		if err := d.putc(byte(r)); err != nil {
			return err
		}
	}
	return nil
}

// Println writes s like Print and counts the characters written. Nothing is
// written if the column count is at the last column when called.
func (d *Dev) Println(s string) error {
	if d.charCount == lastColumn {
		log.Debugf("lcd1602: column %d reached, dropping %q", d.charCount, s)
		return nil
	}
	for _, r := range s {
		if err := d.putc(byte(r)); err != nil {
			return err
		}
		d.charCount++
	}
	return nil
}

// Write implements io.Writer with Print semantics.
func (d *Dev) Write(buf []byte) (int, error) {
	for i, c := range buf {
		if err := d.putc(c); err != nil {
			return i, err
		}
	}
	return len(buf), nil
}

func (d *Dev) putc(c byte) error {
	if err := d.Delay(delayChar); err != nil {
		return err
	}
	return d.writeChar(c)
}

// CharCount returns the number of characters written by Println since the
// last Clear or NextLine.
func (d *Dev) CharCount() uint {
	return d.charCount
}

// SetBacklight switches the backlight line, if one is wired.
func (d *Dev) SetBacklight(on bool) error {
	if d.backlight == nil {
		return ErrNoBacklight
	}
	return d.backlight.set(gpio.Level(on))
}

// Halt clears the display and turns the backlight off.
func (d *Dev) Halt() error {
	if err := d.Clear(); err != nil {
		return err
	}
	if d.backlight == nil {
		return nil
	}
	return d.SetBacklight(false)
}

var _ conn.Resource = &Dev{}
