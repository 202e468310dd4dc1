// This file is part of emotion2k.
//
// emotion2k is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// emotion2k is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with emotion2k.  If not, see <https://www.gnu.org/licenses/>.

// Package instance defines those parts of the emulation that might change
// from instance to instance of the console type, but are not the console
// itself. Particularly useful when running more than one instance of the
// emulation in parallel (e.g. a headless instance validating a savestate
// alongside the interactive one that produced it).
package instance

import (
	"github.com/retroswitch/emotion2k/hardware/preferences"
	"github.com/retroswitch/emotion2k/random"
)

// Instance defines those parts of the emulation that might change between
// different instantiations of the console type.
type Instance struct {
	Prefs  *preferences.Preferences
	Random *random.Random
}

// NewInstance is the preferred method of initialisation for the Instance
// type. src supplies the cycle count used to seed the replay-stable random
// generator; it is normally the hardware/scheduler attached to this same
// instance.
func NewInstance(src random.CycleSource) (*Instance, error) {
	ins := &Instance{
		Random: random.NewRandom(src),
	}

	var err error

	ins.Prefs, err = preferences.NewPreferences()
	if err != nil {
		return nil, err
	}

	return ins, nil
}

// Normalise puts the instance into a known default state, for regression
// tests that require identical starting conditions on every run.
func (ins *Instance) Normalise() {
	ins.Random.ZeroSeed = true
	ins.Prefs.SetDefaults()
}
