// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/lcdbackpack"
	"github.com/GermanBionicSystems/lcdbackpack/lcdsim"
)

// The emulator implements i2c.Bus, so the backpack adapter drives it
// exactly as it would drive the real expander. Everything a controller
// driver sends ends up on your terminal instead of the LCD glass.
func Example() {
	sim, err := lcdsim.New(&lcdsim.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	defer sim.Halt()

	lcd, err := lcdbackpack.New(sim, lcdbackpack.DefaultAddress)
	if err != nil {
		log.Fatalln(err)
	}

	if err := lcd.SetBacklight(true); err != nil {
		log.Fatalln(err)
	}

	fmt.Printf("%s backlight=%t\n", sim, sim.Backlight())
}
