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

// Package memory is the system bus: it decodes a 32-bit address into the
// region of console state it names (see hardware/memory/memorymap) and
// dispatches a typed 8/16/32/64/128-bit load or store to that region,
// routing MMIO ranges to the device that owns them. It is the single type
// the EE interpreter, the DMAC and the GIF all read and write through - see
// hardware/memory/bus for the interfaces it implements.
//
// An address that decodes to no region logs and returns zero on load, and
// logs and discards the write - this is deliberately not fatal, matching
// the error taxonomy's address-decode-miss classification.
package memory

import (
	"github.com/retroswitch/emotion2k/errors"
	"github.com/retroswitch/emotion2k/hardware/memory/memorymap"
	"github.com/retroswitch/emotion2k/hardware/memory/tlb"
	"github.com/retroswitch/emotion2k/logger"
)

const (
	mainRAMSize   = memorymap.MainRAMTop - memorymap.MainRAMBase
	biosSize      = memorymap.BIOSTop - memorymap.BIOSBase
	scratchpadSize = memorymap.ScratchpadTop - memorymap.ScratchpadBase
	iopRAMSize    = memorymap.IOPRAMTop - memorymap.IOPRAMBase
	vuMemorySize  = memorymap.VUMemoryTop - memorymap.VUMemoryBase

	kseg2Base = 0xC0000000
)

// Peripheral is implemented by a 32-bit-register MMIO device (the DMAC's
// channel registers, the combined VIF/GIF/IPU/VU register block). The
// device is handed an offset relative to the base of its own region and is
// responsible for its own internal sub-dispatch.
type Peripheral interface {
	ReadWord(offset uint32) (uint32, error)
	WriteWord(offset uint32, value uint32) error
}

// WideRegisterBus is implemented by a 64-bit-register MMIO device - in
// practice, the GS privileged register bank, whose registers are written
// 64 bits at a time.
type WideRegisterBus interface {
	ReadDouble(offset uint32) (uint64, error)
	WriteDouble(offset uint32, value uint64) error
}

// InterruptLatch receives the DMAC's completion interrupt (INT1) so the bus
// can fold it into CAUSE without the DMAC needing to know about COP0.
type InterruptLatch interface {
	AssertINT1()
}

// Memory is the system bus.
type Memory struct {
	ram        [mainRAMSize]byte
	bios       [biosSize]byte
	scratchpad [scratchpadSize]byte
	iopRAM     [iopRAMSize]byte
	vuMemory   [vuMemorySize]byte

	vif0, vif1   Peripheral
	ipuGifVu     Peripheral
	dmac         Peripheral
	gsPrivileged WideRegisterBus
	intc         InterruptLatch

	intcStat uint32
	intcMask uint32

	// memory controller (MCH_RICM/MCH_DRD) RDRAM-detection stub; BIOS
	// startup polls this to size installed RAM.
	mchRicm uint32
	mchDrd  uint32

	tlb *tlb.TLB

	// TLBStrict, when true, turns an unmapped kseg2 access into a fatal
	// TLB-miss error instead of a logged, zero-filled read.
	TLBStrict bool
}

// New builds a Memory instance with an empty RAM/BIOS image and a fresh
// TLB. BIOS and RAM contents are loaded separately via LoadBIOS/LoadRAM.
func New() *Memory {
	return &Memory{
		tlb: tlb.New(),
	}
}

// TLB exposes the compiled page tables for COP0's TLBR/TLBWI/TLBWR/TLBP.
func (m *Memory) TLB() *tlb.TLB {
	return m.tlb
}

// AttachVIF wires the VIF0/VIF1 register blocks.
func (m *Memory) AttachVIF(vif0, vif1 Peripheral) {
	m.vif0, m.vif1 = vif0, vif1
}

// AttachIPUGIFVU wires the combined IPU/GIF/VU register block.
func (m *Memory) AttachIPUGIFVU(p Peripheral) {
	m.ipuGifVu = p
}

// AttachDMAC wires the DMAC's channel register block.
func (m *Memory) AttachDMAC(p Peripheral) {
	m.dmac = p
}

// AttachGSPrivileged wires the GS privileged register bank.
func (m *Memory) AttachGSPrivileged(w WideRegisterBus) {
	m.gsPrivileged = w
}

// AttachInterruptController wires the recipient of DMAC completion
// interrupts.
func (m *Memory) AttachInterruptController(i InterruptLatch) {
	m.intc = i
}

// LoadBIOS copies a BIOS image into ROM, truncating or zero-padding to fit.
func (m *Memory) LoadBIOS(data []byte) {
	copy(m.bios[:], data)
}

// LoadRAM copies data into main RAM starting at physical offset base.
func (m *Memory) LoadRAM(base uint32, data []byte) {
	copy(m.ram[base:], data)
}

// resolve maps a virtual address to the region and region-relative offset
// it names. Addresses below kseg2 are direct-mapped; addresses at
// or above 0xC0000000 (kseg2/kseg3, kernel-mapped segments) go through the
// TLB. An unmapped page is a TLB miss: logged and serviced as Unmapped by
// default, or returned as an error when TLBStrict is set, which stops the
// interpreter at the faulting access.
func (m *Memory) resolve(vaddr uint32) (memorymap.Region, uint32, error) {
	if vaddr >= kseg2Base {
		paddr, ok := m.tlb.Lookup(tlb.Kernel, vaddr)
		if !ok {
			err := errors.Errorf(errors.TLBMiss, vaddr)
			if m.TLBStrict {
				return memorymap.Unmapped, 0, err
			}
			logger.Logf("memory", "%v (continuing)", err)
			return memorymap.Unmapped, 0, nil
		}
		r, off := memorymap.Decode(paddr)
		return r, off, nil
	}
	r, off := memorymap.Decode(vaddr)
	return r, off, nil
}

func (m *Memory) decodeMiss(op string, vaddr uint32) {
	logger.Logf("memory", "%v: %s at 0x%08x", errors.Errorf(errors.AddressDecodeMiss, vaddr), op, vaddr)
}
