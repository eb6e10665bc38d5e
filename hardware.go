// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdbackpack

// Hardware is the control-line surface a 4-bit HD44780 style
// controller driver needs from the board wiring underneath it. The
// driver sets a number of lines, then calls Apply to make the levels
// take effect; reads require CanRead to be true and an RW(true) +
// Apply before ReadData.
type Hardware interface {
	// RS sets the register-select line.
	RS(level bool)
	// Enable sets the enable line.
	Enable(level bool)
	// Data places a nibble on the four data lines.
	Data(data byte)
	// RW sets the read/write line.
	RW(level bool) error
	// ReadData returns the nibble currently on the four data lines.
	ReadData() (byte, error)
	// CanRead reports whether RW and ReadData are usable.
	CanRead() bool
	// Mode reports the data bus width the wiring supports.
	Mode() Mode
	// Apply makes the accumulated line levels take effect.
	Apply() error
}

// Backlight is implemented by hardware with a switchable backlight.
type Backlight interface {
	// SetBacklight switches the backlight with immediate effect.
	SetBacklight(on bool) error
}
