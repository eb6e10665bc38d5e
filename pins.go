// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdbackpack

import "fmt"

// RWDisabled marks the read/write line as not wired to the expander.
// Boards that tie R/W to ground save an expander pin but cannot read
// the busy flag back from the display.
const RWDisabled = -1

// Default assignment of the LCD control lines to the PCF8574 outputs,
// as wired on the common LCD1602/LCD2004 backpack boards.
const (
	DefaultRSPin        = 0
	DefaultRWPin        = 1
	DefaultENPin        = 2
	DefaultBacklightPin = 3
	DefaultD4Pin        = 4
	DefaultD5Pin        = 5
	DefaultD6Pin        = 6
	DefaultD7Pin        = 7
)

// PinConfig maps each LCD control line to an output of the I2C
// expander. Build one starting from DefaultPins and chain the setters
// for the lines your board wires differently:
//
//	pins := lcdbackpack.DefaultPins().EN(4).Backlight(7)
//
// Each setter requires a position in [0,7] and records the first
// violation; New and Validate report it. RW additionally accepts
// RWDisabled to declare that the read path is not wired.
//
// Positions are not checked for distinctness. Assigning two lines to
// the same expander output makes the later write win; verify the
// wiring of unusual boards before overriding the defaults.
type PinConfig struct {
	rs        int
	rw        int
	en        int
	backlight int
	d4        int
	d5        int
	d6        int
	d7        int
	err       error
}

// DefaultPins returns the pin assignment used by the common 8-pin
// PCF8574 backpack boards.
func DefaultPins() PinConfig {
	return PinConfig{
		rs:        DefaultRSPin,
		rw:        DefaultRWPin,
		en:        DefaultENPin,
		backlight: DefaultBacklightPin,
		d4:        DefaultD4Pin,
		d5:        DefaultD5Pin,
		d6:        DefaultD6Pin,
		d7:        DefaultD7Pin,
	}
}

func (p PinConfig) check(line string, pin int) PinConfig {
	if (pin < 0 || pin > 7) && p.err == nil {
		p.err = fmt.Errorf("lcdbackpack: %s pin %d out of range [0,7]", line, pin)
	}
	return p
}

// RS assigns the register-select line.
func (p PinConfig) RS(pin int) PinConfig {
	p = p.check("RS", pin)
	p.rs = pin
	return p
}

// RW assigns the read/write line, or disables reads when passed
// RWDisabled.
func (p PinConfig) RW(pin int) PinConfig {
	if pin != RWDisabled {
		p = p.check("RW", pin)
	}
	p.rw = pin
	return p
}

// EN assigns the enable line.
func (p PinConfig) EN(pin int) PinConfig {
	p = p.check("EN", pin)
	p.en = pin
	return p
}

// Backlight assigns the backlight control line.
func (p PinConfig) Backlight(pin int) PinConfig {
	p = p.check("backlight", pin)
	p.backlight = pin
	return p
}

// D4 assigns the data line for bit 4 of the LCD data bus.
func (p PinConfig) D4(pin int) PinConfig {
	p = p.check("D4", pin)
	p.d4 = pin
	return p
}

// D5 assigns the data line for bit 5 of the LCD data bus.
func (p PinConfig) D5(pin int) PinConfig {
	p = p.check("D5", pin)
	p.d5 = pin
	return p
}

// D6 assigns the data line for bit 6 of the LCD data bus.
func (p PinConfig) D6(pin int) PinConfig {
	p = p.check("D6", pin)
	p.d6 = pin
	return p
}

// D7 assigns the data line for bit 7 of the LCD data bus.
func (p PinConfig) D7(pin int) PinConfig {
	p = p.check("D7", pin)
	p.d7 = pin
	return p
}

// Validate returns the first out-of-range assignment recorded by the
// setters, or nil if the configuration is usable.
func (p PinConfig) Validate() error {
	return p.err
}

// RSPin returns the expander output assigned to the register-select
// line.
func (p PinConfig) RSPin() int { return p.rs }

// RWPin returns the expander output assigned to the read/write line,
// or RWDisabled.
func (p PinConfig) RWPin() int { return p.rw }

// ENPin returns the expander output assigned to the enable line.
func (p PinConfig) ENPin() int { return p.en }

// BacklightPin returns the expander output assigned to the backlight
// control line.
func (p PinConfig) BacklightPin() int { return p.backlight }

// D4Pin returns the expander output assigned to LCD data bit 4.
func (p PinConfig) D4Pin() int { return p.d4 }

// D5Pin returns the expander output assigned to LCD data bit 5.
func (p PinConfig) D5Pin() int { return p.d5 }

// D6Pin returns the expander output assigned to LCD data bit 6.
func (p PinConfig) D6Pin() int { return p.d6 }

// D7Pin returns the expander output assigned to LCD data bit 7.
func (p PinConfig) D7Pin() int { return p.d7 }

func (p PinConfig) String() string {
	rw := "none"
	if p.rw != RWDisabled {
		rw = fmt.Sprintf("%d", p.rw)
	}
	return fmt.Sprintf("PinConfig{RS:%d RW:%s EN:%d BL:%d D4-D7:%d,%d,%d,%d}",
		p.rs, rw, p.en, p.backlight, p.d4, p.d5, p.d6, p.d7)
}
