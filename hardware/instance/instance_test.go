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

package instance_test

import (
	"testing"

	"github.com/retroswitch/emotion2k/hardware/instance"
	"github.com/retroswitch/emotion2k/test"
)

type fixedCycle struct{ n uint64 }

func (f fixedCycle) EECycle() uint64 { return f.n }

func TestNewInstance(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	ins, err := instance.NewInstance(fixedCycle{0})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ins.Prefs != nil, true)
	test.ExpectEquality(t, ins.Random != nil, true)
}

func TestNormalise(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	ins, err := instance.NewInstance(fixedCycle{0})
	test.ExpectSuccess(t, err)

	err = ins.Prefs.RandomState.Set(true)
	test.ExpectSuccess(t, err)

	ins.Normalise()

	test.ExpectEquality(t, ins.Random.ZeroSeed, true)
	test.ExpectEquality(t, ins.Prefs.RandomState.Get(), false)
}
