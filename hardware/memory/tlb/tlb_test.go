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

package tlb_test

import (
	"testing"

	"github.com/retroswitch/emotion2k/hardware/memory/tlb"
	"github.com/retroswitch/emotion2k/test"
)

func TestKernelSegmentsAreIdentityMappedAtConstruction(t *testing.T) {
	vt := tlb.New()

	paddr, ok := vt.Lookup(tlb.Kernel, 0x80100000)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, paddr, uint32(0x00100000))

	paddr, ok = vt.Lookup(tlb.Kernel, 0xA0100000)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, paddr, uint32(0x00100000))
}

func TestUnmappedUserPageMisses(t *testing.T) {
	vt := tlb.New()
	_, ok := vt.Lookup(tlb.User, 0x00100000)
	test.ExpectEquality(t, ok, false)
}

func TestWriteInstallsIdentityMapping(t *testing.T) {
	vt := tlb.New()

	entry := tlb.Entry{
		VPN2:     0x00100000 >> 13,
		PageSize: tlb.Size4KiB,
		Even:     tlb.HalfEntry{PFN: 0x00100000 >> 12, Valid: true},
		Odd:      tlb.HalfEntry{PFN: 0x00101000 >> 12, Valid: true},
	}
	vt.Write(0, entry)

	paddr, ok := vt.Lookup(tlb.User, 0x00100000)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, paddr, uint32(0x00100000))

	paddr, ok = vt.Lookup(tlb.User, 0x00101000)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, paddr, uint32(0x00101000))
}

func TestWriteUnmapsPreviousOccupant(t *testing.T) {
	vt := tlb.New()

	first := tlb.Entry{
		VPN2:     0x00100000 >> 13,
		PageSize: tlb.Size4KiB,
		Even:     tlb.HalfEntry{PFN: 0x00100000 >> 12, Valid: true},
	}
	vt.Write(0, first)

	second := tlb.Entry{
		VPN2:     0x00200000 >> 13,
		PageSize: tlb.Size4KiB,
		Even:     tlb.HalfEntry{PFN: 0x00200000 >> 12, Valid: true},
	}
	vt.Write(0, second)

	_, ok := vt.Lookup(tlb.User, 0x00100000)
	test.ExpectEquality(t, ok, false)

	paddr, ok := vt.Lookup(tlb.User, 0x00200000)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, paddr, uint32(0x00200000))
}

func TestProbeFindsMatchingRow(t *testing.T) {
	vt := tlb.New()

	vt.Write(3, tlb.Entry{VPN2: 7, ASID: 2, PageSize: tlb.Size4KiB})

	idx, ok := vt.Probe(7, 2)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, idx, 3)

	_, ok = vt.Probe(7, 9)
	test.ExpectEquality(t, ok, false)
}
