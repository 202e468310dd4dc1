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

// Package bus defines the memory bus concept: the set of interfaces through
// which a physical address is turned into a read or write against some
// region of console state. For an explanation of why this is broken out of
// hardware/memory as its own package see that package's documentation.
package bus

// CPUBus defines the typed load/store operations the EE interpreter issues
// against the memory map. Every mapped region implements this interface;
// hardware/memory.Memory itself also implements it, decoding the address to
// the correct region so the CPU need not care which device backs it.
type CPUBus interface {
	Read8(address uint32) (uint8, error)
	Read16(address uint32) (uint16, error)
	Read32(address uint32) (uint32, error)
	Read64(address uint32) (uint64, error)
	Read128(address uint32) (lo, hi uint64, err error)

	Write8(address uint32, data uint8) error
	Write16(address uint32, data uint16) error
	Write32(address uint32, data uint32) error
	Write64(address uint32, data uint64) error
	Write128(address uint32, lo, hi uint64) error
}

// DeviceBus defines the operations for the memory system when accessed by a
// device other than the CPU (the DMAC moving quadwords into the GIF FIFO,
// the GIF writing GS registers). Kept distinct from CPUBus so a region can
// restrict device-side access to the quadword granularity DMA actually
// uses, without weakening the CPU's typed byte/half/word/double/quad API.
type DeviceBus interface {
	DeviceReadQuadword(address uint32) (lo, hi uint64, err error)
	DeviceWriteQuadword(address uint32, lo, hi uint64) error
}

// DebuggerBus defines the meta-operations used by the debugger and by
// savestate code: reads and writes that bypass side effects (FIFO draining,
// write-one-to-clear registers) that a normal CPUBus access would trigger.
type DebuggerBus interface {
	PeekByte(address uint32) (uint8, error)
	PokeByte(address uint32, data uint8) error
}
