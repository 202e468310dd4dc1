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

package cop0_test

import (
	"testing"

	"github.com/retroswitch/emotion2k/hardware/cpu/cop0"
	"github.com/retroswitch/emotion2k/hardware/memory/tlb"
	"github.com/retroswitch/emotion2k/test"
)

func TestCauseIsReadOnly(t *testing.T) {
	c := cop0.New(tlb.New())

	c.Write(cop0.RegCause, 0xFFFFFFFF)
	test.ExpectEquality(t, c.Cause(), uint32(0))
}

func TestTLBWIInstallsMapping(t *testing.T) {
	tt := tlb.New()
	c := cop0.New(tt)

	// map virtual page 0xC0000 (vaddr 0xC0000000) to physical
	// page 0x100: EntryHi carries VPN2, EntryLo0 the even page
	c.Write(cop0.RegIndex, 3)
	c.Write(cop0.RegEntryHi, (0xC0000000>>13)<<13)
	c.Write(cop0.RegEntryLo0, 0x100<<6|1<<1) // PFN 0x100, valid
	c.Write(cop0.RegEntryLo1, 0)
	c.Write(cop0.RegPageMask, 0)
	c.TLBWI()

	paddr, ok := tt.Lookup(tlb.Kernel, 0xC0000123)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, paddr, uint32(0x100<<12|0x123))
}

func TestTLBPReportsIndex(t *testing.T) {
	c := cop0.New(tlb.New())

	c.Write(cop0.RegIndex, 7)
	c.Write(cop0.RegEntryHi, (0xC0000000>>13)<<13)
	c.Write(cop0.RegEntryLo0, 1<<1)
	c.TLBWI()

	c.Write(cop0.RegEntryHi, (0xC0000000>>13)<<13)
	c.TLBP()
	test.ExpectEquality(t, c.Read(cop0.RegIndex), uint32(7))

	// no match sets the probe-failure bit
	c.Write(cop0.RegEntryHi, (0xD0000000>>13)<<13)
	c.TLBP()
	test.ExpectEquality(t, c.Read(cop0.RegIndex)>>31, uint32(1))
}

func TestExceptionEntryAndReturn(t *testing.T) {
	c := cop0.New(tlb.New())

	// BEV clear: the common vector
	vector := c.RaiseException(cop0.ExcSyscall, 0x00200000, false)
	test.ExpectEquality(t, vector, uint32(0x80000080))
	test.ExpectEquality(t, c.EPC(), uint32(0x00200000))
	test.ExpectEquality(t, c.Cause()>>2&0x1F, uint32(cop0.ExcSyscall))

	// EXL set blocks further interrupts
	test.ExpectEquality(t, c.IntEnabled(), false)

	resume := c.ExceptionReturn()
	test.ExpectEquality(t, resume, uint32(0x00200000))
}

func TestDelaySlotExceptionBacksUpEPC(t *testing.T) {
	c := cop0.New(tlb.New())

	c.RaiseException(cop0.ExcInterrupt, 0x1004, true)
	test.ExpectEquality(t, c.EPC(), uint32(0x1000))
	test.ExpectEquality(t, c.Cause()>>31, uint32(1))
}
