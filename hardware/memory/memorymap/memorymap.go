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

// Package memorymap decodes a 32-bit address - virtual, from the EE's point
// of view - to the physical region of console state it refers to. It is a
// pure function package: no state, so that hardware/memory and the TLB can
// both consult it without sharing a lock.
package memorymap

// Region identifies which piece of console state an address decodes to.
type Region int

const (
	Unmapped Region = iota
	Scratchpad
	MainRAM
	VIFRegisters
	IPUGIFVURegisters
	DMACChannels
	INTCStat
	INTCMask
	Stdout
	MemoryController
	VUMemory
	GSPrivileged
	IOPRAM
	BIOS
)

// String names a Region for logging.
func (r Region) String() string {
	switch r {
	case Scratchpad:
		return "scratchpad"
	case MainRAM:
		return "main RAM"
	case VIFRegisters:
		return "VIF registers"
	case IPUGIFVURegisters:
		return "IPU/GIF/VU registers"
	case DMACChannels:
		return "DMAC channels"
	case INTCStat:
		return "INTC_STAT"
	case INTCMask:
		return "INTC_MASK"
	case Stdout:
		return "STDOUT"
	case MemoryController:
		return "memory controller"
	case VUMemory:
		return "VU code/data memory"
	case GSPrivileged:
		return "GS privileged registers"
	case IOPRAM:
		return "IOP RAM window"
	case BIOS:
		return "BIOS ROM"
	default:
		return "unmapped"
	}
}

// Address ranges of physical console state. Scratchpad is virtual-only and
// handled before the physical mask is applied; every other range is
// expressed as a physical address, post-mask.
const (
	ScratchpadBase = 0x70000000
	ScratchpadTop  = 0x70004000

	MainRAMBase = 0x00000000
	MainRAMTop  = 0x02000000

	VIFRegistersBase = 0x10000000
	VIFRegistersTop  = 0x10002000

	IPUGIFVUBase = 0x10002000
	IPUGIFVUTop  = 0x10008000

	DMACChannelsBase = 0x10008000
	DMACChannelsTop  = 0x1000F000

	INTCStatAddr = 0x1000F000
	INTCMaskAddr = 0x1000F010
	StdoutAddr   = 0x1000F180

	MemoryControllerBase = 0x1000F400
	MemoryControllerTop  = 0x1000F500

	VUMemoryBase = 0x11000000
	VUMemoryTop  = 0x11010000

	GSPrivilegedBase = 0x12000000
	GSPrivilegedTop  = 0x13000000

	IOPRAMBase = 0x1C000000
	IOPRAMTop  = 0x1C200000

	BIOSBase = 0x1FC00000
	BIOSTop  = 0x20000000
)

// physicalMask reduces a KUSEG/KSEG0/KSEG1 virtual address to its physical
// twin. Regions 0x00000000..0x80000000 (KUSEG) and 0x80000000..0xC0000000
// (KSEG0/KSEG1) both direct-map to the low 512 MiB of physical space.
const physicalMask = 0x1FFFFFFF

// Decode resolves a virtual address to the region it falls within and the
// physical (or, for Scratchpad, the 14-bit internal) address to use within
// that region. Every 32-bit input produces exactly one Region, possibly
// Unmapped - Decode never fails.
func Decode(vaddr uint32) (Region, uint32) {
	// Addresses above 0x30000000 that aren't part of the direct-mapped
	// KUSEG/KSEG window are rebased downward by the same mask before the
	// range tests below, matching how the real bus decodes access through
	// the uncached/cached KSEG mirrors.
	if vaddr >= ScratchpadBase && vaddr < ScratchpadTop {
		return Scratchpad, vaddr - ScratchpadBase
	}

	phys := vaddr & physicalMask

	switch {
	case phys >= MainRAMBase && phys < MainRAMTop:
		return MainRAM, phys - MainRAMBase
	case phys >= VIFRegistersBase && phys < VIFRegistersTop:
		return VIFRegisters, phys - VIFRegistersBase
	case phys >= IPUGIFVUBase && phys < IPUGIFVUTop:
		return IPUGIFVURegisters, phys - IPUGIFVUBase
	case phys == INTCStatAddr:
		return INTCStat, 0
	case phys == INTCMaskAddr:
		return INTCMask, 0
	case phys == StdoutAddr:
		return Stdout, 0
	case phys >= DMACChannelsBase && phys < DMACChannelsTop:
		return DMACChannels, phys - DMACChannelsBase
	case phys >= MemoryControllerBase && phys < MemoryControllerTop:
		return MemoryController, phys - MemoryControllerBase
	case phys >= VUMemoryBase && phys < VUMemoryTop:
		return VUMemory, phys - VUMemoryBase
	case phys >= GSPrivilegedBase && phys < GSPrivilegedTop:
		return GSPrivileged, phys - GSPrivilegedBase
	case phys >= IOPRAMBase && phys < IOPRAMTop:
		return IOPRAM, phys - IOPRAMBase
	case phys >= BIOSBase && phys < BIOSTop:
		return BIOS, phys - BIOSBase
	default:
		return Unmapped, phys
	}
}
