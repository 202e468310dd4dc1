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

// Package cop0 implements the EE's system control coprocessor: the 32
// word-granular control registers (of which this core models STATUS, CAUSE,
// EPC, ErrorEPC, Count, and the performance-counter pair), the 48-entry TLB,
// and exception-vector computation.
package cop0

import (
	"github.com/retroswitch/emotion2k/hardware/memory/tlb"
)

// Register indices the emulator models.
const (
	RegIndex    = 0
	RegRandom   = 1
	RegEntryLo0 = 2
	RegEntryLo1 = 3
	RegContext  = 4
	RegPageMask = 5
	RegWired    = 6
	RegEntryHi  = 10
	RegCount    = 9
	RegCompare  = 11
	RegStatus   = 12
	RegCause    = 13
	RegEPC      = 14
	RegPRId     = 15
	RegConfig   = 16
	RegBadVAddr = 8
	RegPCCR     = 25
	RegPCR0     = 25 // PCCR/PCR0 alias through MFPS/MFPC in real silicon; modelled as distinct fields below
	RegErrorEPC = 30
)

// Status bit positions within COP0 register 12.
const (
	statusIE   = 1 << 0 // interrupt enable
	statusEXL  = 1 << 1 // exception level (exception in progress)
	statusERL  = 1 << 2 // error level
	statusBEV  = 1 << 22
	statusEIE  = 1 << 16 // master interrupt enable (EIE on the EE)
	statusInt0 = 1 << 10
	statusInt1 = 1 << 11
)

// Cause bit positions within COP0 register 13.
const (
	causeInt0Pending = 1 << 10
	causeInt1Pending = 1 << 11
	causeExcCodeMask = 0x7C
	causeExcCodeShift = 2
)

// Exception codes written into CAUSE's ExcCode field.
const (
	ExcInterrupt = 0
	ExcTLBModified = 1
	ExcTLBLoad = 2
	ExcTLBStore = 3
	ExcAddressErrorLoad = 4
	ExcAddressErrorStore = 5
	ExcSyscall = 8
	ExcBreakpoint = 9
	ExcReservedInstruction = 10
	ExcCoprocessorUnusable = 11
	ExcOverflow = 12
)

// COP0 is the EE's system control coprocessor.
type COP0 struct {
	regs [32]uint32

	// performance counters. PCCR bit 31 enables counting; the low five
	// bits of each of the two six-bit event-select fields name the
	// counted event for PCR0/PCR1 respectively.
	pccr uint32
	pcr0 uint32
	pcr1 uint32

	tlb *tlb.TLB

	// dmacCondition mirrors whether every channel named in the DMAC's PCR
	// is recorded complete in its STAT - the boolean wired to the
	// DMAC.
	dmacCondition bool
}

// New builds a COP0 with PRId/Config set to fixed, plausible EE values and
// an empty TLB.
func New(t *tlb.TLB) *COP0 {
	c := &COP0{tlb: t}
	c.regs[RegPRId] = 0x2E20
	return c
}

// Read returns the word-granular value of register i. Reads of
// CAUSE reflect the pending-interrupt bit that AssertINT1 sets.
func (c *COP0) Read(i int) uint32 {
	return c.regs[i&31]
}

// Write sets register i, except CAUSE, which hardware keeps read-only to
// software.
func (c *COP0) Write(i int, v uint32) {
	i &= 31
	switch i {
	case RegCause:
		// hardware keeps CAUSE read-only to software; only
		// AssertINT1/RaiseException may change it.
		return
	default:
		c.regs[i] = v
	}
}

// Status returns the current STATUS register.
func (c *COP0) Status() uint32 { return c.regs[RegStatus] }

// Cause returns the current CAUSE register.
func (c *COP0) Cause() uint32 { return c.regs[RegCause] }

// EPC returns the saved exception PC.
func (c *COP0) EPC() uint32 { return c.regs[RegEPC] }

// SetEPC sets the saved exception PC, used when entering an exception.
func (c *COP0) SetEPC(pc uint32) { c.regs[RegEPC] = pc }

// TLB exposes the compiled page tables for TLBR/TLBWI/TLBWR/TLBP.
func (c *COP0) TLB() *tlb.TLB { return c.tlb }

// IntPending reports whether either of the INT0/INT1 lines is both
// pending in CAUSE and unmasked in STATUS.
func (c *COP0) IntPending() bool {
	status, cause := c.Status(), c.Cause()
	int0 := status&statusInt0 != 0 && cause&causeInt0Pending != 0
	int1 := status&statusInt1 != 0 && cause&causeInt1Pending != 0
	return int0 || int1
}

// IntEnabled reports whether interrupts can be taken at all: master
// enable and IE set, no exception or error level active.
func (c *COP0) IntEnabled() bool {
	status := c.Status()
	masterEnable := status&statusEIE != 0
	ie := status&statusIE != 0
	exception := status&statusEXL != 0
	errorState := status&statusERL != 0
	return masterEnable && ie && !exception && !errorState
}

// AssertINT1 sets CAUSE's INT1-pending bit; called by the system bus when
// the DMAC completes a channel with its interrupt unmasked.
func (c *COP0) AssertINT1() {
	c.regs[RegCause] |= causeInt1Pending
}

// SetDMACCondition updates the boolean wired to the DMAC.
func (c *COP0) SetDMACCondition(v bool) {
	c.dmacCondition = v
}

// DMACCondition reports whether every requested DMAC channel is complete.
func (c *COP0) DMACCondition() bool {
	return c.dmacCondition
}

// Tick advances Count by cycles and, when performance counting is enabled
// (PCCR bit 31), advances PCR0/PCR1 by the same budget. PCCR's
// event-select fields are not consulted: both counters advance on every
// EE cycle whichever event they select.
func (c *COP0) Tick(cycles uint32) {
	c.regs[RegCount] += cycles
	if c.pccr&(1<<31) != 0 {
		c.pcr0 += cycles
		c.pcr1 += cycles
	}
}

// ReadPCCR/WritePCCR, ReadPCR0/1 expose the performance-counter registers,
// addressed via MFPS/MTPS/MFPC/MTPC rather than the ordinary MFC0/MTC0 path
// in real silicon; this core exposes them as plain methods instead of
// threading a second coprocessor opcode class through the interpreter for a
// feature no retail title's boot path depends on.
func (c *COP0) ReadPCCR() uint32  { return c.pccr }
func (c *COP0) WritePCCR(v uint32) { c.pccr = v }
func (c *COP0) ReadPCR0() uint32  { return c.pcr0 }
func (c *COP0) ReadPCR1() uint32  { return c.pcr1 }

// RaiseException enters an exception: saves pc to EPC, sets the ExcCode
// field in CAUSE, sets EXL, and
// returns the vector address the interpreter should jump to. inDelaySlot
// additionally sets CAUSE's BD bit and backs EPC up by 4, per the MIPS
// convention of always resuming re-execution from the branch itself.
func (c *COP0) RaiseException(code int, pc uint32, inDelaySlot bool) uint32 {
	epc := pc
	cause := c.regs[RegCause] &^ uint32(causeExcCodeMask)
	cause |= uint32(code<<causeExcCodeShift) & causeExcCodeMask
	if inDelaySlot {
		epc -= 4
		cause |= 1 << 31
	} else {
		cause &^= 1 << 31
	}
	c.regs[RegCause] = cause
	c.regs[RegStatus] |= statusEXL

	if !inDelaySlot {
		c.regs[RegEPC] = epc
	} else {
		c.regs[RegEPC] = epc
	}

	if c.regs[RegStatus]&statusBEV != 0 {
		return 0xBFC00200 + uint32(code)*0x80
	}
	return 0x80000080
}

// Return leaves exception level (ERET's COP0 half).
func (c *COP0) Return() {
	c.regs[RegStatus] &^= statusEXL
}

// ExceptionReturn clears the active exception/error level and returns the PC
// execution should resume from: ErrorEPC when the error level was set (a
// reset/NMI-class condition), EPC otherwise.
func (c *COP0) ExceptionReturn() uint32 {
	if c.regs[RegStatus]&statusERL != 0 {
		c.regs[RegStatus] &^= statusERL
		return c.regs[RegErrorEPC]
	}
	c.regs[RegStatus] &^= statusEXL
	return c.regs[RegEPC]
}

// SetMasterEnable sets or clears the EIE master interrupt enable - the EI
// and DI instructions.
func (c *COP0) SetMasterEnable(v bool) {
	if v {
		c.regs[RegStatus] |= statusEIE
	} else {
		c.regs[RegStatus] &^= statusEIE
	}
}

// pageSizeFromMask converts a PageMask register value to the size class it
// encodes. An unrecognised mask falls back to 4 KiB.
func pageSizeFromMask(mask uint32) tlb.PageSize {
	switch (mask >> 13) & 0xFFF {
	case 0x003:
		return tlb.Size16KiB
	case 0x00F:
		return tlb.Size64KiB
	case 0x03F:
		return tlb.Size256KiB
	case 0x0FF:
		return tlb.Size1MiB
	case 0x3FF:
		return tlb.Size4MiB
	case 0xFFF:
		return tlb.Size16MiB
	default:
		return tlb.Size4KiB
	}
}

func maskFromPageSize(s tlb.PageSize) uint32 {
	switch s {
	case tlb.Size16KiB:
		return 0x003 << 13
	case tlb.Size64KiB:
		return 0x00F << 13
	case tlb.Size256KiB:
		return 0x03F << 13
	case tlb.Size1MiB:
		return 0x0FF << 13
	case tlb.Size4MiB:
		return 0x3FF << 13
	case tlb.Size16MiB:
		return 0xFFF << 13
	default:
		return 0
	}
}

// halfFromEntryLo decodes an EntryLo0/EntryLo1 register value into one TLB
// half-entry: PFN in bits 6..31, cache attribute in 3..5, dirty bit 2,
// valid bit 1, global bit 0.
func halfFromEntryLo(lo uint32) tlb.HalfEntry {
	return tlb.HalfEntry{
		PFN:    (lo >> 6) & 0xFFFFF,
		Cache:  tlb.CacheMode((lo >> 3) & 0x7),
		Dirty:  lo&(1<<2) != 0,
		Valid:  lo&(1<<1) != 0,
		Global: lo&1 != 0,
	}
}

func entryLoFromHalf(h tlb.HalfEntry) uint32 {
	lo := (h.PFN & 0xFFFFF) << 6
	lo |= uint32(h.Cache&0x7) << 3
	if h.Dirty {
		lo |= 1 << 2
	}
	if h.Valid {
		lo |= 1 << 1
	}
	if h.Global {
		lo |= 1
	}
	return lo
}

// entryFromRegs assembles a TLB entry from the current EntryHi/EntryLo0/
// EntryLo1/PageMask register set. The scratchpad flag is carried in
// EntryLo0's S bit (31), matching the EE's convention for SPR-mapped rows.
func (c *COP0) entryFromRegs() tlb.Entry {
	hi := c.regs[RegEntryHi]
	return tlb.Entry{
		VPN2:       hi >> 13,
		ASID:       uint8(hi & 0xFF),
		PageSize:   pageSizeFromMask(c.regs[RegPageMask]),
		Even:       halfFromEntryLo(c.regs[RegEntryLo0]),
		Odd:        halfFromEntryLo(c.regs[RegEntryLo1]),
		Scratchpad: c.regs[RegEntryLo0]&(1<<31) != 0,
	}
}

// TLBWI writes the entry described by the current register set to the row
// named by Index.
func (c *COP0) TLBWI() {
	c.tlb.Write(int(c.regs[RegIndex]&0x3F)%48, c.entryFromRegs())
}

// TLBWR writes the entry described by the current register set to the row
// named by Random, then decrements Random towards Wired (wrapping back to
// the top of the table).
func (c *COP0) TLBWR() {
	c.tlb.Write(int(c.regs[RegRandom]&0x3F)%48, c.entryFromRegs())
	wired := c.regs[RegWired] % 48
	r := c.regs[RegRandom] % 48
	if r <= wired {
		r = 47
	} else {
		r--
	}
	c.regs[RegRandom] = r
}

// TLBR reads the row named by Index back into the register set.
func (c *COP0) TLBR() {
	e := c.tlb.Entry(int(c.regs[RegIndex]&0x3F) % 48)
	c.regs[RegEntryHi] = e.VPN2<<13 | uint32(e.ASID)
	c.regs[RegPageMask] = maskFromPageSize(e.PageSize)
	c.regs[RegEntryLo0] = entryLoFromHalf(e.Even)
	c.regs[RegEntryLo1] = entryLoFromHalf(e.Odd)
	if e.Scratchpad {
		c.regs[RegEntryLo0] |= 1 << 31
	}
}

// TLBP probes for the row matching the current EntryHi, writing its index
// to Index, or setting Index's P bit (31) on no match.
func (c *COP0) TLBP() {
	hi := c.regs[RegEntryHi]
	if i, ok := c.tlb.Probe(hi>>13, uint8(hi&0xFF)); ok {
		c.regs[RegIndex] = uint32(i)
	} else {
		c.regs[RegIndex] = 1 << 31
	}
}
