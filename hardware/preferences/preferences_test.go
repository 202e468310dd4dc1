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

package preferences_test

import (
	"testing"

	"github.com/retroswitch/emotion2k/hardware/preferences"
	"github.com/retroswitch/emotion2k/test"
)

func TestDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := preferences.NewPreferences()
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, p.RandomState.Get(), false)
	test.ExpectEquality(t, p.TLBStrict.Get(), false)
	test.ExpectEquality(t, p.CDVDSeekErrorBit.Get(), true)
	test.ExpectEquality(t, p.VSync.Get(), true)
}

func TestPersistsAcrossInstances(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := preferences.NewPreferences()
	test.ExpectSuccess(t, err)

	err = p.RandomState.Set(true)
	test.ExpectSuccess(t, err)
	err = p.DisplayScale.Set(4.0)
	test.ExpectSuccess(t, err)

	err = p.Save()
	test.ExpectSuccess(t, err)

	q, err := preferences.NewPreferences()
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, q.RandomState.Get(), true)
	test.ExpectEquality(t, q.DisplayScale.Get(), 4.0)
}
