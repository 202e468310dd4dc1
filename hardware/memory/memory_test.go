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

package memory_test

import (
	"testing"

	"github.com/retroswitch/emotion2k/hardware/memory"
	"github.com/retroswitch/emotion2k/test"
)

func TestRAMRoundTrip32(t *testing.T) {
	m := memory.New()

	err := m.Write32(0x00001000, 0xDEADBEEF)
	test.ExpectSuccess(t, err)

	v, err := m.Read32(0x00001000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0xDEADBEEF))
}

func TestRAMAccessibleViaBothDirectMappedSegments(t *testing.T) {
	m := memory.New()

	err := m.Write32(0x00002000, 0x12345678)
	test.ExpectSuccess(t, err)

	v, err := m.Read32(0x80002000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x12345678))
}

func TestQuadwordRoundTrip(t *testing.T) {
	m := memory.New()

	err := m.Write128(0x00004000, 0x1111111111111111, 0x2222222222222222)
	test.ExpectSuccess(t, err)

	lo, hi, err := m.Read128(0x00004000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, lo, uint64(0x1111111111111111))
	test.ExpectEquality(t, hi, uint64(0x2222222222222222))
}

func TestScratchpadIsIndependentOfRAM(t *testing.T) {
	m := memory.New()

	err := m.Write32(0x70000000, 0xCAFEBABE)
	test.ExpectSuccess(t, err)

	v, err := m.Read32(0x00000000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0))

	v, err = m.Read32(0x70000000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0xCAFEBABE))
}

func TestUnmappedLoadReturnsZero(t *testing.T) {
	m := memory.New()

	v, err := m.Read32(0x0FFFFFFF)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0))
}

func TestUnmappedStoreIsDiscarded(t *testing.T) {
	m := memory.New()

	err := m.Write32(0x0FFFFFFF, 0xFFFFFFFF)
	test.ExpectSuccess(t, err)

	v, err := m.Read32(0x0FFFFFFF)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0))
}

func TestINTCStatWriteOneToClear(t *testing.T) {
	m := memory.New()

	m.AssertINT1()

	v, err := m.Read32(0x1000F000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v&0x2, uint32(0x2))

	err = m.Write32(0x1000F000, 0x2)
	test.ExpectSuccess(t, err)

	v, err = m.Read32(0x1000F000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v&0x2, uint32(0))
}

type stubInterruptLatch struct{ asserted int }

func (s *stubInterruptLatch) AssertINT1() { s.asserted++ }

func TestAssertINT1ForwardsWhenUnmasked(t *testing.T) {
	m := memory.New()
	latch := &stubInterruptLatch{}
	m.AttachInterruptController(latch)

	// unmask DMAC's INT1 bit (bit 1) via write-one-to-flip
	err := m.Write32(0x1000F010, 0x2)
	test.ExpectSuccess(t, err)

	m.AssertINT1()

	test.ExpectEquality(t, latch.asserted, 1)
}

func TestBIOSIsReadOnly(t *testing.T) {
	m := memory.New()
	m.LoadBIOS([]byte{0xAA, 0xBB, 0xCC, 0xDD})

	v, err := m.Read32(0x1FC00000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0xDDCCBBAA))

	err = m.Write32(0x1FC00000, 0)
	test.ExpectSuccess(t, err)

	v, err = m.Read32(0x1FC00000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0xDDCCBBAA))
}
