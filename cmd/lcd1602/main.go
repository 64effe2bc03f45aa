/*
Copyright 2024 Tim St. Pierre
Writes lines of text to a 1602 character LCD
*/
package main

import (
	"flag"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	lcd1602 "github.com/tstpierre-tc/lcd1602gpio"
)

var (
	i2cBus = flag.String("i2c", "", "I²C bus name; when set the display is driven through a PCF8574 backpack")
	addr   = flag.Uint("addr", uint(lcd1602.DefaultOpts.I2CAddr), "backpack I²C address")
	en     = flag.String("en", lcd1602.DefaultOpts.EN, "EN line")
	rs     = flag.String("rs", lcd1602.DefaultOpts.RS, "RS line")
	d4     = flag.String("d4", lcd1602.DefaultOpts.D4, "D4 line")
	d5     = flag.String("d5", lcd1602.DefaultOpts.D5, "D5 line")
	d6     = flag.String("d6", lcd1602.DefaultOpts.D6, "D6 line")
	d7     = flag.String("d7", lcd1602.DefaultOpts.D7, "D7 line")
	bl     = flag.String("bl", "", "optional backlight line")
	level  = flag.String("v", "info", "log level")
)

func main() {
	flag.Parse()

	lvl, err := log.ParseLevel(*level)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(lvl)

	if _, err := host.Init(); err != nil {
		log.Fatalf("periph host init: %v", err)
	}

	opts := lcd1602.Opts{
		I2CAddr:   uint16(*addr),
		EN:        *en,
		RS:        *rs,
		D4:        *d4,
		D5:        *d5,
		D6:        *d6,
		D7:        *d7,
		Backlight: *bl,
	}

	var dev *lcd1602.Dev
	if *i2cBus != "" {
		bus, err := i2creg.Open(*i2cBus)
		if err != nil {
			log.Fatalf("failed to open I²C: %v", err)
		}
		defer bus.Close()
		dev, err = lcd1602.NewI2C(bus, &opts)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		dev, err = lcd1602.NewGPIO(&opts)
		if err != nil {
			log.Fatal(err)
		}
	}
	log.Infof("initialized %s", dev)

	for i, text := range flag.Args() {
		if i > 0 {
			if err := dev.NextLine(); err != nil {
				log.Fatal(err)
			}
		}
		if err := dev.Println(text); err != nil {
			log.Fatal(err)
		}
		log.WithField("column", dev.CharCount()).Infof("wrote %q", text)
	}
}
