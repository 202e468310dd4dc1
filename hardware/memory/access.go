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

package memory

import (
	"encoding/binary"

	"github.com/retroswitch/emotion2k/hardware/memory/memorymap"
	"github.com/retroswitch/emotion2k/logger"
)

// The EE is little-endian throughout.

func load8(b []byte, off uint32) uint8 {
	if int(off) >= len(b) {
		return 0
	}
	return b[off]
}

func store8(b []byte, off uint32, v uint8) {
	if int(off) < len(b) {
		b[off] = v
	}
}

func load16(b []byte, off uint32) uint16 {
	if int(off)+2 > len(b) {
		return 0
	}
	return binary.LittleEndian.Uint16(b[off:])
}

func store16(b []byte, off uint32, v uint16) {
	if int(off)+2 <= len(b) {
		binary.LittleEndian.PutUint16(b[off:], v)
	}
}

func load32(b []byte, off uint32) uint32 {
	if int(off)+4 > len(b) {
		return 0
	}
	return binary.LittleEndian.Uint32(b[off:])
}

func store32(b []byte, off uint32, v uint32) {
	if int(off)+4 <= len(b) {
		binary.LittleEndian.PutUint32(b[off:], v)
	}
}

func load64(b []byte, off uint32) uint64 {
	if int(off)+8 > len(b) {
		return 0
	}
	return binary.LittleEndian.Uint64(b[off:])
}

func store64(b []byte, off uint32, v uint64) {
	if int(off)+8 <= len(b) {
		binary.LittleEndian.PutUint64(b[off:], v)
	}
}

func load128(b []byte, off uint32) (lo, hi uint64) {
	return load64(b, off), load64(b, off+8)
}

func store128(b []byte, off uint32, lo, hi uint64) {
	store64(b, off, lo)
	store64(b, off+8, hi)
}

// bytesFor returns the backing slice for byte-addressable regions, or nil
// for regions serviced by a Peripheral/WideRegisterBus instead.
func (m *Memory) bytesFor(region memorymap.Region) []byte {
	switch region {
	case memorymap.MainRAM:
		return m.ram[:]
	case memorymap.BIOS:
		return m.bios[:]
	case memorymap.Scratchpad:
		return m.scratchpad[:]
	case memorymap.IOPRAM:
		return m.iopRAM[:]
	case memorymap.VUMemory:
		return m.vuMemory[:]
	default:
		return nil
	}
}

// Read8 implements bus.CPUBus.
func (m *Memory) Read8(vaddr uint32) (uint8, error) {
	region, off, err := m.resolve(vaddr)
	if err != nil {
		return 0, err
	}
	if b := m.bytesFor(region); b != nil {
		return load8(b, off), nil
	}
	if region == memorymap.Unmapped {
		m.decodeMiss("read8", vaddr)
		return 0, nil
	}
	v, err := m.readWordRegion(region, off)
	return uint8(v), err
}

// Write8 implements bus.CPUBus.
func (m *Memory) Write8(vaddr uint32, data uint8) error {
	region, off, err := m.resolve(vaddr)
	if err != nil {
		return err
	}
	if region == memorymap.BIOS {
		logger.Logf("memory", "discarded write to read-only BIOS at 0x%08x", vaddr)
		return nil
	}
	if b := m.bytesFor(region); b != nil {
		store8(b, off, data)
		return nil
	}
	if region == memorymap.Stdout {
		logger.Logf("stdout", "%c", data)
		return nil
	}
	if region == memorymap.Unmapped {
		m.decodeMiss("write8", vaddr)
		return nil
	}
	return m.writeWordRegion(region, off, uint32(data))
}

// Read16 implements bus.CPUBus.
func (m *Memory) Read16(vaddr uint32) (uint16, error) {
	region, off, err := m.resolve(vaddr)
	if err != nil {
		return 0, err
	}
	if b := m.bytesFor(region); b != nil {
		return load16(b, off), nil
	}
	if region == memorymap.Unmapped {
		m.decodeMiss("read16", vaddr)
		return 0, nil
	}
	v, err := m.readWordRegion(region, off)
	return uint16(v), err
}

// Write16 implements bus.CPUBus.
func (m *Memory) Write16(vaddr uint32, data uint16) error {
	region, off, err := m.resolve(vaddr)
	if err != nil {
		return err
	}
	if region == memorymap.BIOS {
		logger.Logf("memory", "discarded write to read-only BIOS at 0x%08x", vaddr)
		return nil
	}
	if b := m.bytesFor(region); b != nil {
		store16(b, off, data)
		return nil
	}
	if region == memorymap.Unmapped {
		m.decodeMiss("write16", vaddr)
		return nil
	}
	return m.writeWordRegion(region, off, uint32(data))
}

// Read32 implements bus.CPUBus.
func (m *Memory) Read32(vaddr uint32) (uint32, error) {
	region, off, err := m.resolve(vaddr)
	if err != nil {
		return 0, err
	}
	if b := m.bytesFor(region); b != nil {
		return load32(b, off), nil
	}
	if region == memorymap.Unmapped {
		m.decodeMiss("read32", vaddr)
		return 0, nil
	}
	return m.readWordRegion(region, off)
}

// Write32 implements bus.CPUBus.
func (m *Memory) Write32(vaddr uint32, data uint32) error {
	region, off, err := m.resolve(vaddr)
	if err != nil {
		return err
	}
	if region == memorymap.BIOS {
		logger.Logf("memory", "discarded write to read-only BIOS at 0x%08x", vaddr)
		return nil
	}
	if b := m.bytesFor(region); b != nil {
		store32(b, off, data)
		return nil
	}
	if region == memorymap.Unmapped {
		m.decodeMiss("write32", vaddr)
		return nil
	}
	return m.writeWordRegion(region, off, data)
}

// Read64 implements bus.CPUBus.
func (m *Memory) Read64(vaddr uint32) (uint64, error) {
	region, off, err := m.resolve(vaddr)
	if err != nil {
		return 0, err
	}
	if b := m.bytesFor(region); b != nil {
		return load64(b, off), nil
	}
	if region == memorymap.GSPrivileged && m.gsPrivileged != nil {
		return m.gsPrivileged.ReadDouble(off)
	}
	if region == memorymap.Unmapped {
		m.decodeMiss("read64", vaddr)
		return 0, nil
	}
	lo, err := m.readWordRegion(region, off)
	return uint64(lo), err
}

// Write64 implements bus.CPUBus.
func (m *Memory) Write64(vaddr uint32, data uint64) error {
	region, off, err := m.resolve(vaddr)
	if err != nil {
		return err
	}
	if region == memorymap.BIOS {
		logger.Logf("memory", "discarded write to read-only BIOS at 0x%08x", vaddr)
		return nil
	}
	if b := m.bytesFor(region); b != nil {
		store64(b, off, data)
		return nil
	}
	if region == memorymap.GSPrivileged && m.gsPrivileged != nil {
		return m.gsPrivileged.WriteDouble(off, data)
	}
	if region == memorymap.Unmapped {
		m.decodeMiss("write64", vaddr)
		return nil
	}
	return m.writeWordRegion(region, off, uint32(data))
}

// Read128 implements bus.CPUBus: used by LQ and by the DMAC/GIF's
// quadword-granular transfers.
func (m *Memory) Read128(vaddr uint32) (lo, hi uint64, err error) {
	region, off, err := m.resolve(vaddr)
	if err != nil {
		return 0, 0, err
	}
	if b := m.bytesFor(region); b != nil {
		lo, hi = load128(b, off)
		return lo, hi, nil
	}
	if region == memorymap.Unmapped {
		m.decodeMiss("read128", vaddr)
		return 0, 0, nil
	}
	v, err := m.readWordRegion(region, off)
	return uint64(v), 0, err
}

// Write128 implements bus.CPUBus.
func (m *Memory) Write128(vaddr uint32, lo, hi uint64) error {
	region, off, err := m.resolve(vaddr)
	if err != nil {
		return err
	}
	if region == memorymap.BIOS {
		logger.Logf("memory", "discarded write to read-only BIOS at 0x%08x", vaddr)
		return nil
	}
	if b := m.bytesFor(region); b != nil {
		store128(b, off, lo, hi)
		return nil
	}
	if region == memorymap.Unmapped {
		m.decodeMiss("write128", vaddr)
		return nil
	}
	return m.writeWordRegion(region, off, uint32(lo))
}

// DeviceReadQuadword implements bus.DeviceBus. An address with its top bit
// set names the scratchpad rather than main RAM, matching the SPR bit the
// DMAC carries in its address registers and chain tags.
func (m *Memory) DeviceReadQuadword(addr uint32) (lo, hi uint64, err error) {
	if addr&(1<<31) != 0 {
		lo, hi = load128(m.scratchpad[:], (addr&^(1<<31))%scratchpadSize)
		return lo, hi, nil
	}
	return m.Read128(addr)
}

// DeviceWriteQuadword implements bus.DeviceBus.
func (m *Memory) DeviceWriteQuadword(addr uint32, lo, hi uint64) error {
	if addr&(1<<31) != 0 {
		store128(m.scratchpad[:], (addr&^(1<<31))%scratchpadSize, lo, hi)
		return nil
	}
	return m.Write128(addr, lo, hi)
}

// readWordRegion and writeWordRegion service the register-backed regions:
// VIF0/VIF1, the combined IPU/GIF/VU block, the DMAC channels, INTC, and
// the memory controller stub.
func (m *Memory) readWordRegion(region memorymap.Region, off uint32) (uint32, error) {
	switch region {
	case memorymap.VIFRegisters:
		if off < 0x1000 {
			if m.vif0 != nil {
				return m.vif0.ReadWord(off)
			}
		} else if m.vif1 != nil {
			return m.vif1.ReadWord(off - 0x1000)
		}
		return 0, nil
	case memorymap.IPUGIFVURegisters:
		if m.ipuGifVu != nil {
			return m.ipuGifVu.ReadWord(off)
		}
		return 0, nil
	case memorymap.DMACChannels:
		if m.dmac != nil {
			return m.dmac.ReadWord(off)
		}
		return 0, nil
	case memorymap.INTCStat:
		return m.intcStat, nil
	case memorymap.INTCMask:
		return m.intcMask, nil
	case memorymap.MemoryController:
		return m.readMemoryController(off)
	default:
		return 0, nil
	}
}

func (m *Memory) writeWordRegion(region memorymap.Region, off uint32, value uint32) error {
	switch region {
	case memorymap.VIFRegisters:
		if off < 0x1000 {
			if m.vif0 != nil {
				return m.vif0.WriteWord(off, value)
			}
		} else if m.vif1 != nil {
			return m.vif1.WriteWord(off-0x1000, value)
		}
		return nil
	case memorymap.IPUGIFVURegisters:
		if m.ipuGifVu != nil {
			return m.ipuGifVu.WriteWord(off, value)
		}
		return nil
	case memorymap.DMACChannels:
		if m.dmac != nil {
			return m.dmac.WriteWord(off, value)
		}
		return nil
	case memorymap.INTCStat:
		// write-one-to-clear
		m.intcStat &^= value
		return nil
	case memorymap.INTCMask:
		// write-one-to-flip
		m.intcMask ^= value
		return nil
	case memorymap.MemoryController:
		return m.writeMemoryController(off, value)
	default:
		return nil
	}
}

// AssertINT1 sets the DMAC's bit in INTC_STAT and forwards the interrupt to
// COP0 if it isn't masked off. Called by
// the DMAC when a channel completes with its interrupt enabled.
func (m *Memory) AssertINT1() {
	const dmacBit = 1 << 1
	m.intcStat |= dmacBit
	if m.intcMask&dmacBit != 0 && m.intc != nil {
		m.intc.AssertINT1()
	}
}

// readMemoryController and writeMemoryController implement the minimal
// MCH_RICM/MCH_DRD RDRAM-initialisation handshake the BIOS polls during
// early boot: RICM's busy bit (31) is reported clear immediately after any
// write, and DRD echoes back a fixed "16 MB module present" reading for the
// SDEVID probe sequence the BIOS uses to size installed RDRAM.
func (m *Memory) readMemoryController(off uint32) (uint32, error) {
	switch off {
	case 0x00: // MCH_RICM
		return m.mchRicm &^ (1 << 31), nil
	case 0x10: // MCH_DRD
		return m.mchDrd, nil
	default:
		return 0, nil
	}
}

func (m *Memory) writeMemoryController(off uint32, value uint32) error {
	switch off {
	case 0x00:
		m.mchRicm = value
		sop := (value >> 6) & 0xF
		sa := (value >> 16) & 0xFFF
		if sop == 0 && sa == 0x21 {
			m.mchDrd = 0x0200
		} else {
			m.mchDrd = 0
		}
	case 0x10:
		m.mchDrd = value
	}
	return nil
}
