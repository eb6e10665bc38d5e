// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdbackpack adapts the PCF8574/PCF8574A I2C "backpack" boards
// commonly soldered to HD44780 compatible character LCD modules
// (LCD1602, LCD2004) into the control-line surface a 4-bit LCD
// controller driver expects.
//
// The expander exposes eight undifferentiated quasi-bidirectional
// lines as a single byte. This package maps the LCD control lines
// (register select, read/write, enable, data bits 4-7, backlight) onto
// expander outputs through a configurable PinConfig, accumulates the
// desired line levels in one output byte, and transmits that byte in a
// single I2C write per Apply. Inbound bytes are decoded through the
// same assignment in reverse.
//
// The display's timing state machine (initialization handshake, enable
// pulse widths, busy polling) belongs to the controller driver sitting
// on top; this package only moves line levels over the bus.
//
// The lcdsim subpackage emulates the backpack and display on a
// terminal for development without hardware.
//
// # Datasheet
//
// https://www.nxp.com/docs/en/data-sheet/PCF8574_PCF8574A.pdf
//
// A good description of the backpack wiring:
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
package lcdbackpack
