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

// Package preferences collects the emulator-wide switches that are too
// small to deserve their own package but too load-bearing to hardcode:
// whether uninitialised state starts at zero or pseudo-random values,
// how strictly TLB misses and CDVD out-of-bounds seeks are reported, and
// the SDL front end's scale and vsync settings.
package preferences

import (
	"github.com/retroswitch/emotion2k/paths"
	"github.com/retroswitch/emotion2k/prefs"
)

// Preferences is the persisted set of emulator-wide switches.
type Preferences struct {
	dsk *prefs.Disk

	// RandomState controls whether uninitialised GPRs and the first 4 KiB
	// page of main RAM start at zero (false, the deterministic default used by
	// regression tests) or at pseudo-random values seeded from the
	// scheduler's cycle count (true).
	RandomState prefs.Bool

	// TLBStrict controls whether a TLB miss on an unmapped address halts
	// emulation (true) or is logged and serviced as a read of zero /
	// discarded write (false, the default - many titles probe addresses
	// speculatively).
	TLBStrict prefs.Bool

	// CDVDSeekErrorBit controls whether a seek past the end of the disc
	// image sets the sticky CDVD error-status bit described in
	// hardware/cdvd (true, the default, matching real firmware) or is
	// silently serviced as a zeroed sector (false).
	CDVDSeekErrorBit prefs.Bool

	// DisplayScale is the integer scale factor applied by the SDL front
	// end when blitting the finished GS framebuffer.
	DisplayScale prefs.Float

	// VSync controls whether the SDL front end synchronises presentation
	// to the display's refresh rate.
	VSync prefs.Bool
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. It loads any existing preferences file and applies
// defaults to any preference not present in it.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}

	pth, err := paths.ResourcePath("", "preferences.prefs")
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	// set defaults before binding so that Add only overrides a default
	// when the preferences file already has a value for that key.
	p.SetDefaults()

	if err := p.dsk.Add("random.state", &p.RandomState); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("tlb.strict", &p.TLBStrict); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("cdvd.seek_error_bit", &p.CDVDSeekErrorBit); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("display.scale", &p.DisplayScale); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("display.vsync", &p.VSync); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults resets every preference to its out-of-the-box value. Used
// both to seed a freshly created preferences file and by regression tests
// that need a known starting state.
func (p *Preferences) SetDefaults() {
	_ = p.RandomState.Set(false)
	_ = p.TLBStrict.Set(false)
	_ = p.CDVDSeekErrorBit.Set(true)
	_ = p.DisplayScale.Set(2.0)
	_ = p.VSync.Set(true)
}

// Save writes the current preference values to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
