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

// Package display holds the presentation-side adjustments applied to the
// scanout buffer before it reaches the window: integer scaling, vsync, and
// the brightness/scanline treatment in effects.go. These are preferences,
// not emulation state - the GS never sees them.
package display

import (
	"github.com/retroswitch/emotion2k/paths"
	"github.com/retroswitch/emotion2k/prefs"
)

// Preferences for the display window.
type Preferences struct {
	dsk *prefs.Disk

	Scale      prefs.Int
	VSync      prefs.Bool
	Scanlines  prefs.Bool
	Brightness prefs.Float
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	pth, err := paths.ResourcePath("", "preferences.prefs")
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	for key, pref := range map[string]prefs.Pref{
		"display.scale":      &p.Scale,
		"display.vsync":      &p.VSync,
		"display.scanlines":  &p.Scanlines,
		"display.brightness": &p.Brightness,
	} {
		if err := p.dsk.Add(key, pref); err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all display preferences to default values.
func (p *Preferences) SetDefaults() {
	_ = p.Scale.Set("2")
	_ = p.VSync.Set("true")
	_ = p.Scanlines.Set("false")
	_ = p.Brightness.Set("1.0")
}

// Save current display preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
