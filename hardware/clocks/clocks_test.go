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

package clocks_test

import (
	"testing"

	"github.com/retroswitch/emotion2k/hardware/clocks"
	"github.com/retroswitch/emotion2k/test"
)

func TestDerivedClockSpeeds(t *testing.T) {
	test.ExpectEquality(t, clocks.BusHz, clocks.EEHz/2)
	test.ExpectEquality(t, clocks.IOPHz, clocks.EEHz/8)
}

func TestCycleConversionIsExact(t *testing.T) {
	test.ExpectEquality(t, clocks.BusCycles(16), uint64(8))
	test.ExpectEquality(t, clocks.IOPCycles(16), uint64(2))
	test.ExpectEquality(t, clocks.BusCycles(17), uint64(8))
}
