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

package cpu

import "math/bits"

// MMI function codes (low 6 bits when the primary opcode is 0x1C). The
// MMI0/MMI2/MMI1/MMI3 entries fan out again on the shamt field.
const (
	mmiMADD   = 0x00
	mmiMADDU  = 0x01
	mmiPLZCW  = 0x04
	mmiMMI0   = 0x08
	mmiMMI2   = 0x09
	mmiMFHI1  = 0x10
	mmiMTHI1  = 0x11
	mmiMFLO1  = 0x12
	mmiMTLO1  = 0x13
	mmiMULT1  = 0x18
	mmiMULTU1 = 0x19
	mmiDIV1   = 0x1A
	mmiDIVU1  = 0x1B
	mmiMADD1  = 0x20
	mmiMADDU1 = 0x21
	mmiMMI1   = 0x28
	mmiMMI3   = 0x29
)

// MMI0 shamt-field selectors.
const (
	mmi0PADDW  = 0x00
	mmi0PSUBW  = 0x01
	mmi0PADDH  = 0x04
	mmi0PSUBH  = 0x05
	mmi0PADDB  = 0x08
	mmi0PSUBB  = 0x09
	mmi0PEXTLW = 0x12
)

// MMI2 shamt-field selectors.
const (
	mmi2PCPYLD = 0x0E
	mmi2PAND   = 0x12
	mmi2PXOR   = 0x13
)

// MMI3 shamt-field selectors.
const (
	mmi3PCPYUD = 0x0E
	mmi3POR    = 0x12
	mmi3PNOR   = 0x13
	mmi3PCPYH  = 0x1B
)

// execMMI handles the multimedia secondary tables: the pipe-1 accumulator
// bank, multiply-add, and the parallel (128-bit SIMD) integer ops.
func (c *CPU) execMMI(i instruction) error {
	switch i.funct() {
	case mmiMADD:
		acc := int64(c.HI)<<32 | int64(uint32(c.LO))
		acc += int64(int32(c.GPR.GetWord(i.rs()))) * int64(int32(c.GPR.GetWord(i.rt())))
		c.LO = uint64(int64(int32(acc)))
		c.HI = uint64(int64(int32(acc >> 32)))
		c.GPR.SetLo64(i.rd(), c.LO)
	case mmiMADDU:
		acc := uint64(uint32(c.HI))<<32 | uint64(uint32(c.LO))
		acc += uint64(c.GPR.GetWord(i.rs())) * uint64(c.GPR.GetWord(i.rt()))
		c.LO = uint64(int64(int32(acc)))
		c.HI = uint64(int64(int32(acc >> 32)))
		c.GPR.SetLo64(i.rd(), c.LO)
	case mmiMADD1:
		acc := int64(c.HI1)<<32 | int64(uint32(c.LO1))
		acc += int64(int32(c.GPR.GetWord(i.rs()))) * int64(int32(c.GPR.GetWord(i.rt())))
		c.LO1 = uint64(int64(int32(acc)))
		c.HI1 = uint64(int64(int32(acc >> 32)))
		c.GPR.SetLo64(i.rd(), c.LO1)
	case mmiMADDU1:
		acc := uint64(uint32(c.HI1))<<32 | uint64(uint32(c.LO1))
		acc += uint64(c.GPR.GetWord(i.rs())) * uint64(c.GPR.GetWord(i.rt()))
		c.LO1 = uint64(int64(int32(acc)))
		c.HI1 = uint64(int64(int32(acc >> 32)))
		c.GPR.SetLo64(i.rd(), c.LO1)

	case mmiPLZCW:
		rs := c.GPR.Get(i.rs())
		lo := uint64(leadingSignBits(uint32(rs.Lo)))
		hi := uint64(leadingSignBits(uint32(rs.Lo >> 32)))
		c.GPR.SetLo64(i.rd(), hi<<32|lo)

	case mmiMFHI1:
		c.GPR.SetLo64(i.rd(), c.HI1)
	case mmiMTHI1:
		c.HI1 = c.GPR.GetLo64(i.rs())
	case mmiMFLO1:
		c.GPR.SetLo64(i.rd(), c.LO1)
	case mmiMTLO1:
		c.LO1 = c.GPR.GetLo64(i.rs())

	case mmiMULT1:
		prod := int64(int32(c.GPR.GetWord(i.rs()))) * int64(int32(c.GPR.GetWord(i.rt())))
		c.LO1 = uint64(int64(int32(prod)))
		c.HI1 = uint64(int64(int32(prod >> 32)))
		c.GPR.SetLo64(i.rd(), c.LO1)
	case mmiMULTU1:
		prod := uint64(c.GPR.GetWord(i.rs())) * uint64(c.GPR.GetWord(i.rt()))
		c.LO1 = uint64(int64(int32(prod)))
		c.HI1 = uint64(int64(int32(prod >> 32)))
		c.GPR.SetLo64(i.rd(), c.LO1)
	case mmiDIV1:
		return c.div(i.rs(), i.rt(), &c.LO1, &c.HI1, "div1")
	case mmiDIVU1:
		return c.divu(i.rs(), i.rt(), &c.LO1, &c.HI1, "divu1")

	case mmiMMI0:
		return c.execMMI0(i)
	case mmiMMI2:
		return c.execMMI2(i)
	case mmiMMI3:
		return c.execMMI3(i)

	default:
		return c.unimplemented(i.word, c.PC)
	}
	return nil
}

// leadingSignBits counts the bits below the sign bit that match it - the
// per-word result PLZCW produces.
func leadingSignBits(v uint32) uint32 {
	if v>>31 != 0 {
		v = ^v
	}
	return uint32(bits.LeadingZeros32(v)) - 1
}

func (c *CPU) execMMI0(i instruction) error {
	rs, rt := c.GPR.Get(i.rs()), c.GPR.Get(i.rt())

	switch i.shamt() {
	case mmi0PADDW:
		c.GPR.Set(i.rd(), mapWords(rs, rt, func(a, b uint32) uint32 { return a + b }))
	case mmi0PSUBW:
		c.GPR.Set(i.rd(), mapWords(rs, rt, func(a, b uint32) uint32 { return a - b }))
	case mmi0PADDH:
		c.GPR.Set(i.rd(), mapHalves(rs, rt, func(a, b uint16) uint16 { return a + b }))
	case mmi0PSUBH:
		c.GPR.Set(i.rd(), mapHalves(rs, rt, func(a, b uint16) uint16 { return a - b }))
	case mmi0PADDB:
		c.GPR.Set(i.rd(), mapBytes(rs, rt, func(a, b uint8) uint8 { return a + b }))
	case mmi0PSUBB:
		c.GPR.Set(i.rd(), mapBytes(rs, rt, func(a, b uint8) uint8 { return a - b }))
	case mmi0PEXTLW:
		// interleave the low doubleword's words of rt and rs
		c.GPR.Set(i.rd(), Reg128{
			Lo: uint64(uint32(rt.Lo)) | uint64(uint32(rs.Lo))<<32,
			Hi: rt.Lo>>32 | rs.Lo&0xFFFFFFFF00000000,
		})
	default:
		return c.unimplemented(i.word, c.PC)
	}
	return nil
}

func (c *CPU) execMMI2(i instruction) error {
	rs, rt := c.GPR.Get(i.rs()), c.GPR.Get(i.rt())

	switch i.shamt() {
	case mmi2PCPYLD:
		c.GPR.Set(i.rd(), Reg128{Lo: rt.Lo, Hi: rs.Lo})
	case mmi2PAND:
		c.GPR.Set(i.rd(), Reg128{Lo: rs.Lo & rt.Lo, Hi: rs.Hi & rt.Hi})
	case mmi2PXOR:
		c.GPR.Set(i.rd(), Reg128{Lo: rs.Lo ^ rt.Lo, Hi: rs.Hi ^ rt.Hi})
	default:
		return c.unimplemented(i.word, c.PC)
	}
	return nil
}

func (c *CPU) execMMI3(i instruction) error {
	rs, rt := c.GPR.Get(i.rs()), c.GPR.Get(i.rt())

	switch i.shamt() {
	case mmi3PCPYUD:
		c.GPR.Set(i.rd(), Reg128{Lo: rs.Hi, Hi: rt.Hi})
	case mmi3POR:
		c.GPR.Set(i.rd(), Reg128{Lo: rs.Lo | rt.Lo, Hi: rs.Hi | rt.Hi})
	case mmi3PNOR:
		c.GPR.Set(i.rd(), Reg128{Lo: ^(rs.Lo | rt.Lo), Hi: ^(rs.Hi | rt.Hi)})
	case mmi3PCPYH:
		lo := rt.Lo & 0xFFFF
		hi := rt.Hi & 0xFFFF
		c.GPR.Set(i.rd(), Reg128{
			Lo: lo | lo<<16 | lo<<32 | lo<<48,
			Hi: hi | hi<<16 | hi<<32 | hi<<48,
		})
	default:
		return c.unimplemented(i.word, c.PC)
	}
	return nil
}

// mapWords applies f to each of the four 32-bit lanes of both halves.
func mapWords(a, b Reg128, f func(uint32, uint32) uint32) Reg128 {
	return Reg128{
		Lo: uint64(f(uint32(a.Lo), uint32(b.Lo))) | uint64(f(uint32(a.Lo>>32), uint32(b.Lo>>32)))<<32,
		Hi: uint64(f(uint32(a.Hi), uint32(b.Hi))) | uint64(f(uint32(a.Hi>>32), uint32(b.Hi>>32)))<<32,
	}
}

// mapHalves applies f to each of the eight 16-bit lanes.
func mapHalves(a, b Reg128, f func(uint16, uint16) uint16) Reg128 {
	lane := func(x, y uint64) uint64 {
		var out uint64
		for n := 0; n < 64; n += 16 {
			out |= uint64(f(uint16(x>>n), uint16(y>>n))) << n
		}
		return out
	}
	return Reg128{Lo: lane(a.Lo, b.Lo), Hi: lane(a.Hi, b.Hi)}
}

// mapBytes applies f to each of the sixteen 8-bit lanes.
func mapBytes(a, b Reg128, f func(uint8, uint8) uint8) Reg128 {
	lane := func(x, y uint64) uint64 {
		var out uint64
		for n := 0; n < 64; n += 8 {
			out |= uint64(f(uint8(x>>n), uint8(y>>n))) << n
		}
		return out
	}
	return Reg128{Lo: lane(a.Lo, b.Lo), Hi: lane(a.Hi, b.Hi)}
}
