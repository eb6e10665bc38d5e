// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdbackpack

import (
	"strings"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestDefaultPins(t *testing.T) {
	pins := DefaultPins()
	if err := pins.Validate(); err != nil {
		t.Fatal(err)
	}
	checks := []struct {
		name string
		got  int
		want int
	}{
		{"RS", pins.RSPin(), DefaultRSPin},
		{"RW", pins.RWPin(), DefaultRWPin},
		{"EN", pins.ENPin(), DefaultENPin},
		{"backlight", pins.BacklightPin(), DefaultBacklightPin},
		{"D4", pins.D4Pin(), DefaultD4Pin},
		{"D5", pins.D5Pin(), DefaultD5Pin},
		{"D6", pins.D6Pin(), DefaultD6Pin},
		{"D7", pins.D7Pin(), DefaultD7Pin},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s pin = %d, want %d", c.name, c.got, c.want)
		}
	}
}

func TestPinConfigValidation(t *testing.T) {
	bad := []struct {
		name string
		pins PinConfig
	}{
		{"RS", DefaultPins().RS(8)},
		{"RW", DefaultPins().RW(8)},
		{"EN", DefaultPins().EN(255)},
		{"backlight", DefaultPins().Backlight(-1)},
		{"D4", DefaultPins().D4(8)},
		{"D5", DefaultPins().D5(9)},
		{"D6", DefaultPins().D6(-2)},
		{"D7", DefaultPins().D7(100)},
	}
	for _, c := range bad {
		err := c.pins.Validate()
		if err == nil {
			t.Errorf("%s: out-of-range pin accepted", c.name)
			continue
		}
		if !strings.Contains(err.Error(), "out of range") {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		// Construction must not complete with a bad assignment.
		bus := &i2ctest.Playback{}
		if _, err := NewWithPins(bus, DefaultAddress, c.pins); err == nil {
			t.Errorf("%s: NewWithPins accepted an invalid PinConfig", c.name)
		}
	}
}

func TestPinConfigFirstErrorSticks(t *testing.T) {
	pins := DefaultPins().EN(12).EN(2)
	err := pins.Validate()
	if err == nil {
		t.Fatal("error from EN(12) lost after a later valid assignment")
	}
	if !strings.Contains(err.Error(), "EN pin 12") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPinConfigRWDisabled(t *testing.T) {
	pins := DefaultPins().RW(RWDisabled)
	if err := pins.Validate(); err != nil {
		t.Fatalf("RW(RWDisabled) rejected: %v", err)
	}
	if pins.RWPin() != RWDisabled {
		t.Errorf("RWPin() = %d, want RWDisabled", pins.RWPin())
	}
	if !strings.Contains(pins.String(), "RW:none") {
		t.Errorf("String() = %q", pins.String())
	}
}

func TestPinConfigOverride(t *testing.T) {
	// Swapped data lines plus relocated control lines.
	pins := DefaultPins().RS(7).EN(6).Backlight(5).RW(4).D4(3).D5(2).D6(1).D7(0)
	if err := pins.Validate(); err != nil {
		t.Fatal(err)
	}
	if pins.RSPin() != 7 || pins.ENPin() != 6 || pins.BacklightPin() != 5 || pins.RWPin() != 4 {
		t.Errorf("control line override lost: %s", pins)
	}
	if pins.D4Pin() != 3 || pins.D5Pin() != 2 || pins.D6Pin() != 1 || pins.D7Pin() != 0 {
		t.Errorf("data line override lost: %s", pins)
	}
}
