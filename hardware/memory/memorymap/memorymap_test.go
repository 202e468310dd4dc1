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

package memorymap_test

import (
	"testing"

	"github.com/retroswitch/emotion2k/hardware/memory/memorymap"
	"github.com/retroswitch/emotion2k/test"
)

func TestMainRAMBothSegments(t *testing.T) {
	r, off := memorymap.Decode(0x00100000)
	test.ExpectEquality(t, r, memorymap.MainRAM)
	test.ExpectEquality(t, off, uint32(0x00100000))

	r, off = memorymap.Decode(0x80100000)
	test.ExpectEquality(t, r, memorymap.MainRAM)
	test.ExpectEquality(t, off, uint32(0x00100000))
}

func TestScratchpadIsVirtualOnly(t *testing.T) {
	r, off := memorymap.Decode(0x70000010)
	test.ExpectEquality(t, r, memorymap.Scratchpad)
	test.ExpectEquality(t, off, uint32(0x10))
}

func TestBIOS(t *testing.T) {
	r, _ := memorymap.Decode(0x1FC00000)
	test.ExpectEquality(t, r, memorymap.BIOS)

	r, _ = memorymap.Decode(0x9FC00000)
	test.ExpectEquality(t, r, memorymap.BIOS)
}

func TestINTCRegisters(t *testing.T) {
	r, _ := memorymap.Decode(memorymap.INTCStatAddr)
	test.ExpectEquality(t, r, memorymap.INTCStat)

	r, _ = memorymap.Decode(memorymap.INTCMaskAddr)
	test.ExpectEquality(t, r, memorymap.INTCMask)
}

func TestGSPrivileged(t *testing.T) {
	r, off := memorymap.Decode(0x12001000)
	test.ExpectEquality(t, r, memorymap.GSPrivileged)
	test.ExpectEquality(t, off, uint32(0x1000))
}

func TestUnmappedIsTotal(t *testing.T) {
	r, _ := memorymap.Decode(0x0FFFFFFF)
	test.ExpectEquality(t, r, memorymap.Unmapped)
}
