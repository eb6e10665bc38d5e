// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdsim emulates a PCF8574 LCD backpack with an HD44780
// character display behind it, rendering the visible text to the
// terminal (stdout) using ANSI color codes.
//
// It implements i2c.Bus, so it drops in wherever the real bus goes.
// Useful while you are waiting for your LCD module to come by mail,
// and as a bit-exact harness for exercising the backpack adapter's
// pin mapping without hardware.
//
// The emulation covers the 4-bit bus protocol (nibbles latched on the
// enable falling edge, paired into bytes after the function-set
// handshake) and the basic HD44780 command set: clear, home, entry
// mode, display on/off, function set, DDRAM addressing and data
// writes. Bus reads answer with the busy flag (always idle) and the
// address counter, placed on the configured data-line positions one
// nibble at a time.
package lcdsim

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/lcdbackpack"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Opts represents the options available for the emulated backpack.
type Opts struct {
	// Addr is the I2C address the emulated expander answers at.
	Addr uint16
	// Rows and Cols give the display geometry, e.g. 2x16 or 4x20.
	Rows int
	Cols int
	// Pins is the backpack wiring being emulated.
	Pins lcdbackpack.PinConfig
	// Backlight is the color rendered when the backlight line is high.
	Backlight color.NRGBA
	// Palette selects the terminal palette. Default is
	// ansi256.Default.
	Palette *ansi256.Palette
	// W receives the rendered display. Default is a colorable stdout.
	// Pass a bytes.Buffer to run headless.
	W io.Writer

	_ struct{}
}

// DefaultOpts emulates the common 16x2 module with a blue backlight at
// the PCF8574 default address and the common board wiring.
var DefaultOpts = Opts{
	Addr:      lcdbackpack.DefaultAddress,
	Rows:      2,
	Cols:      16,
	Pins:      lcdbackpack.DefaultPins(),
	Backlight: color.NRGBA{R: 0x20, G: 0x60, B: 0xff, A: 0xff},
}

// backlightOff is the swatch color rendered while the backlight line
// is low.
var backlightOff = color.NRGBA{R: 0x28, G: 0x28, B: 0x28, A: 0xff}

// Dev is an emulated backpack+display pair that outputs to the
// console. It implements i2c.Bus.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	blColor color.NRGBA
	addr    uint16
	pins    lcdbackpack.PinConfig
	rows    int
	cols    int

	// Expander side.
	last      byte // last byte written to the expander
	backlight bool

	// 4-bit bus decode.
	fourBit  bool
	haveHigh bool
	high     byte
	readHigh bool

	// HD44780 side.
	ddram     [128]byte
	ac        int
	cgMode    bool
	entryInc  bool
	displayOn bool

	rendered bool
	buf      bytes.Buffer
}

// New returns an emulated backpack described by opts.
func New(opts *Opts) (*Dev, error) {
	if opts.Rows < 1 || opts.Rows > 4 {
		return nil, fmt.Errorf("lcdsim: unsupported row count %d", opts.Rows)
	}
	if opts.Cols < 1 || opts.Cols > 40 {
		return nil, fmt.Errorf("lcdsim: unsupported column count %d", opts.Cols)
	}
	if err := opts.Pins.Validate(); err != nil {
		return nil, err
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	d := &Dev{
		w:        w,
		palette:  *p,
		blColor:  opts.Backlight,
		addr:     opts.Addr,
		pins:     opts.Pins,
		rows:     opts.Rows,
		cols:     opts.Cols,
		entryInc: true,
	}
	for i := range d.ddram {
		d.ddram[i] = ' '
	}
	return d, nil
}

// Tx implements i2c.Bus. Writes feed the expander decode, reads return
// the busy-flag/address-counter nibbles on the data-line positions.
func (d *Dev) Tx(addr uint16, w, r []byte) error {
	if addr != d.addr {
		return fmt.Errorf("lcdsim: no device at address %#02x", addr)
	}
	for _, b := range w {
		if err := d.step(b); err != nil {
			return err
		}
	}
	for i := range r {
		r[i] = d.readByte()
	}
	return nil
}

// SetSpeed implements i2c.Bus. The emulated bus runs as fast as your
// terminal.
func (d *Dev) SetSpeed(f physic.Frequency) error {
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("LCDSim_%x(%dx%d)", d.addr, d.cols, d.rows)
}

// Halt implements conn.Resource. It resets the terminal attributes so
// the console is not left corrupted.
func (d *Dev) Halt() error {
	if !d.rendered {
		return nil
	}
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Text returns the characters currently addressed by the visible rows.
func (d *Dev) Text() []string {
	rows := make([]string, d.rows)
	for i := range rows {
		off := d.rowOffset(i)
		rows[i] = string(d.ddram[off : off+d.cols])
	}
	return rows
}

// Backlight reports the level of the backlight line.
func (d *Dev) Backlight() bool {
	return d.backlight
}

// AddressCounter returns the DDRAM address counter, as a busy-flag
// read would report it.
func (d *Dev) AddressCounter() int {
	return d.ac
}

// step consumes one byte written to the expander. The display latches
// the data and register-select levels present while enable was high on
// the enable falling edge.
func (d *Dev) step(b byte) error {
	enWas := d.last&(1<<d.pins.ENPin()) != 0
	enNow := b&(1<<d.pins.ENPin()) != 0

	if rw := d.pins.RWPin(); rw != lcdbackpack.RWDisabled {
		rwWas := d.last&(1<<rw) != 0
		rwNow := b&(1<<rw) != 0
		if rwNow && !rwWas {
			// A fresh read sequence starts with the high nibble.
			d.readHigh = true
		}
	}

	err := d.setBacklight(b&(1<<d.pins.BacklightPin()) != 0)

	if enWas && !enNow && !d.lineHigh(d.last, d.pins.RWPin()) {
		rs := d.last&(1<<d.pins.RSPin()) != 0
		if lerr := d.latch(rs, d.nibbleOf(d.last)); lerr != nil && err == nil {
			err = lerr
		}
	}
	d.last = b
	return err
}

func (d *Dev) lineHigh(b byte, pin int) bool {
	if pin == lcdbackpack.RWDisabled {
		return false
	}
	return b&(1<<pin) != 0
}

func (d *Dev) nibbleOf(b byte) byte {
	var n byte
	if b&(1<<d.pins.D4Pin()) != 0 {
		n |= 0x01
	}
	if b&(1<<d.pins.D5Pin()) != 0 {
		n |= 0x02
	}
	if b&(1<<d.pins.D6Pin()) != 0 {
		n |= 0x04
	}
	if b&(1<<d.pins.D7Pin()) != 0 {
		n |= 0x08
	}
	return n
}

// latch consumes one nibble clocked in by an enable pulse. The
// controller powers up in 8-bit mode where every pulse carries the
// high half of an instruction; the function-set handshake switches it
// to paired nibbles.
func (d *Dev) latch(rs bool, nibble byte) error {
	if !d.fourBit {
		return d.exec(rs, nibble<<4)
	}
	if !d.haveHigh {
		d.high = nibble
		d.haveHigh = true
		return nil
	}
	d.haveHigh = false
	return d.exec(rs, d.high<<4|nibble)
}

func (d *Dev) exec(rs bool, b byte) error {
	if rs {
		if d.cgMode {
			// Custom glyphs are not rendered; swallow the write.
			return nil
		}
		d.ddram[d.ac&0x7f] = b
		if d.entryInc {
			d.ac = (d.ac + 1) & 0x7f
		} else {
			d.ac = (d.ac - 1) & 0x7f
		}
		return d.render()
	}
	switch {
	case b >= 0x80: // set DDRAM address
		d.ac = int(b & 0x7f)
		d.cgMode = false
	case b >= 0x40: // set CGRAM address
		d.cgMode = true
	case b >= 0x20: // function set
		d.fourBit = b&0x10 == 0
		d.haveHigh = false
	case b >= 0x10: // cursor/display shift, not rendered
	case b >= 0x08: // display control
		d.displayOn = b&0x04 != 0
		return d.render()
	case b >= 0x04: // entry mode set
		d.entryInc = b&0x02 != 0
	case b >= 0x02: // return home
		d.ac = 0
		d.cgMode = false
	case b >= 0x01: // clear display
		for i := range d.ddram {
			d.ddram[i] = ' '
		}
		d.ac = 0
		d.entryInc = true
		return d.render()
	}
	return nil
}

// readByte answers a bus read: the busy flag (always idle here) and
// the address counter, high nibble first, on the data-line positions.
// Non-data lines read back at their last driven levels, the way the
// expander's quasi-bidirectional outputs do.
func (d *Dev) readByte() byte {
	bfac := byte(d.ac) & 0x7f
	n := bfac & 0x0f
	if d.readHigh {
		n = bfac >> 4
	}
	d.readHigh = !d.readHigh

	dataMask := byte(1<<d.pins.D4Pin() | 1<<d.pins.D5Pin() | 1<<d.pins.D6Pin() | 1<<d.pins.D7Pin())
	b := d.last &^ dataMask
	if n&0x01 != 0 {
		b |= 1 << d.pins.D4Pin()
	}
	if n&0x02 != 0 {
		b |= 1 << d.pins.D5Pin()
	}
	if n&0x04 != 0 {
		b |= 1 << d.pins.D6Pin()
	}
	if n&0x08 != 0 {
		b |= 1 << d.pins.D7Pin()
	}
	return b
}

func (d *Dev) setBacklight(on bool) error {
	if on == d.backlight {
		return nil
	}
	d.backlight = on
	return d.render()
}

// rowOffset maps a visible row to its DDRAM base address. Odd rows
// start at 0x40; rows 3 and 4 continue their pair by one row width.
func (d *Dev) rowOffset(row int) int {
	off := 0
	if row%2 == 1 {
		off = 0x40
	}
	if row >= 2 {
		off += d.cols
	}
	return off
}

// render redraws all rows, minimizing the memory allocated per call.
func (d *Dev) render() error {
	d.buf.Reset()
	if d.rendered {
		// Back up over the previous frame.
		fmt.Fprintf(&d.buf, "\033[%dF", d.rows)
	}
	swatch := backlightOff
	if d.backlight {
		swatch = d.blColor
	}
	block := d.palette.Block(swatch)
	for row := 0; row < d.rows; row++ {
		_, _ = d.buf.WriteString(block)
		_, _ = d.buf.WriteString("\033[0m|")
		if d.displayOn {
			off := d.rowOffset(row)
			_, _ = d.buf.Write(d.ddram[off : off+d.cols])
		} else {
			for i := 0; i < d.cols; i++ {
				_ = d.buf.WriteByte(' ')
			}
		}
		_, _ = d.buf.WriteString("|\n")
	}
	d.rendered = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ i2c.Bus = &Dev{}
var _ fmt.Stringer = &Dev{}
