// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdbackpack

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// DefaultAddress is the address of a PCF8574 backpack with all three
// address jumpers open. PCF8574A based boards answer at 0x3f instead.
const DefaultAddress uint16 = 0x27

// ErrReadUnsupported is returned when the read path is exercised on a
// backpack whose read/write line was configured as RWDisabled.
var ErrReadUnsupported = errors.New("lcdbackpack: R/W line not wired, cannot read from display")

// Mode describes the width of the data bus between the adapter and the
// LCD controller.
type Mode int

const (
	// Mode4Bit transfers each byte as two nibbles on D4-D7.
	Mode4Bit Mode = 4
	// Mode8Bit transfers whole bytes on D0-D7. Present for callers
	// that switch on the mode; this adapter never operates in it.
	Mode8Bit Mode = 8
)

// Dev is an LCD backpack on an I2C bus.
//
// Dev holds one byte of desired output state. The control-line setters
// (RS, Enable, Data, RW) only flip bits in that byte; nothing reaches
// the device until Apply transmits the whole byte in one I2C write.
// SetBacklight is the exception and flushes immediately.
//
// Dev is not safe for concurrent use. Drive it from the single
// goroutine running the controller driver's command sequence.
type Dev struct {
	d     *i2c.Dev
	pins  PinConfig
	state byte
}

// New returns a backpack adapter for the device at the given address
// using the common board pin assignment.
func New(bus i2c.Bus, address uint16) (*Dev, error) {
	return NewWithPins(bus, address, DefaultPins())
}

// NewWithPins returns a backpack adapter using a custom pin
// assignment. It fails if any of the PinConfig setters recorded an
// out-of-range position.
func NewWithPins(bus i2c.Bus, address uint16, pins PinConfig) (*Dev, error) {
	if err := pins.Validate(); err != nil {
		return nil, err
	}
	return &Dev{d: &i2c.Dev{Bus: bus, Addr: address}, pins: pins}, nil
}

func (d *Dev) set(pin int, level bool) {
	if level {
		d.state |= 1 << pin
	} else {
		d.state &^= 1 << pin
	}
}

// RS sets the register-select line: low selects the instruction
// register, high the data register. In-memory only until Apply.
func (d *Dev) RS(level bool) {
	d.set(d.pins.rs, level)
}

// Enable sets the enable line. The controller driver pulses it high
// then low around each nibble; the display latches on the falling
// edge. In-memory only until Apply.
func (d *Dev) Enable(level bool) {
	d.set(d.pins.en, level)
}

// Data places the low nibble of data on the D4-D7 lines. In-memory
// only until Apply.
func (d *Dev) Data(data byte) {
	d.set(d.pins.d4, data&0x01 != 0)
	d.set(d.pins.d5, data&0x02 != 0)
	d.set(d.pins.d6, data&0x04 != 0)
	d.set(d.pins.d7, data&0x08 != 0)
}

// Mode returns Mode4Bit. The expander has exactly eight lines and all
// of them are spoken for by RS, R/W, EN, the backlight and D4-D7, so
// the 8-bit bus is never an option on this hardware.
func (d *Dev) Mode() Mode {
	return Mode4Bit
}

// CanRead reports whether the read/write line is wired and the busy
// flag and display RAM can be read back.
func (d *Dev) CanRead() bool {
	return d.pins.rw != RWDisabled
}

// RW sets the read/write line: low for writes, high for reads.
// Driving it high also raises all four data lines, since the expander
// can only sense an input on a line it is currently driving high.
// Returns ErrReadUnsupported when the line is not wired. In-memory
// only until Apply.
func (d *Dev) RW(level bool) error {
	if d.pins.rw == RWDisabled {
		return ErrReadUnsupported
	}
	if level {
		// Release the data lines so the display can drive them.
		d.Data(0x0f)
	}
	d.set(d.pins.rw, level)
	return nil
}

// Apply transmits the accumulated output state to the expander in a
// single I2C write. The state byte is retained; it is desired line
// levels, not a one-shot buffer.
func (d *Dev) Apply() error {
	if err := d.d.Tx([]byte{d.state}, nil); err != nil {
		return fmt.Errorf("lcdbackpack: %w", err)
	}
	return nil
}

// ReadData reads one byte from the expander and decodes the levels of
// the four data lines into bits 0-3 of the result, the inverse of
// Data. The caller must have driven the read/write line high and
// applied the state first.
func (d *Dev) ReadData() (byte, error) {
	if d.pins.rw == RWDisabled {
		return 0, ErrReadUnsupported
	}
	var buf [1]byte
	if err := d.d.Tx(nil, buf[:]); err != nil {
		return 0, fmt.Errorf("lcdbackpack: %w", err)
	}
	var data byte
	if buf[0]&(1<<d.pins.d4) != 0 {
		data |= 0x01
	}
	if buf[0]&(1<<d.pins.d5) != 0 {
		data |= 0x02
	}
	if buf[0]&(1<<d.pins.d6) != 0 {
		data |= 0x04
	}
	if buf[0]&(1<<d.pins.d7) != 0 {
		data |= 0x08
	}
	return data, nil
}

// SetBacklight switches the backlight and flushes immediately with a
// single I2C write. Unlike the control-line setters it is not
// deferred: the backlight is toggled standalone, outside the
// controller's command framing. All other line levels are preserved.
func (d *Dev) SetBacklight(on bool) error {
	d.set(d.pins.backlight, on)
	return d.Apply()
}

// Halt drives every expander line low, turning the backlight off and
// releasing the control lines.
func (d *Dev) Halt() error {
	d.state = 0
	return d.Apply()
}

func (d *Dev) String() string {
	return fmt.Sprintf("LCDBackpack_%x", d.d.Addr)
}

var _ Hardware = &Dev{}
var _ Backlight = &Dev{}
var _ conn.Resource = &Dev{}
