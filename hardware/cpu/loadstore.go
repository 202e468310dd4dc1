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

// effective computes the load/store effective address: base register plus
// sign-extended 16-bit immediate, truncated to the 32-bit bus width.
func (c *CPU) effective(i instruction) uint32 {
	return uint32(int32(c.GPR.GetWord(i.rs())) + i.simm16())
}

// Merge tables for the unaligned load/store word instructions, indexed by
// the low two bits of the effective address (little-endian layout).
var (
	lwlMask  = [4]uint32{0x00FFFFFF, 0x0000FFFF, 0x000000FF, 0x00000000}
	lwlShift = [4]uint32{24, 16, 8, 0}
	lwrMask  = [4]uint32{0x00000000, 0xFF000000, 0xFFFF0000, 0xFFFFFF00}
	lwrShift = [4]uint32{0, 8, 16, 24}
	swlMask  = [4]uint32{0xFFFFFF00, 0xFFFF0000, 0xFF000000, 0x00000000}
	swlShift = [4]uint32{24, 16, 8, 0}
	swrMask  = [4]uint32{0x00000000, 0x000000FF, 0x0000FFFF, 0x00FFFFFF}
	swrShift = [4]uint32{0, 8, 16, 24}
)

// Doubleword merge tables for LDL/LDR/SDL/SDR, indexed by the low three
// bits of the effective address.
var (
	ldlMask  = [8]uint64{0x00FFFFFFFFFFFFFF, 0x0000FFFFFFFFFFFF, 0x000000FFFFFFFFFF, 0x00000000FFFFFFFF, 0x00000000_00FFFFFF, 0x00000000_0000FFFF, 0x00000000_000000FF, 0x00000000_00000000}
	ldlShift = [8]uint32{56, 48, 40, 32, 24, 16, 8, 0}
	ldrMask  = [8]uint64{0x0000000000000000, 0xFF00000000000000, 0xFFFF000000000000, 0xFFFFFF0000000000, 0xFFFFFFFF00000000, 0xFFFFFFFFFF000000, 0xFFFFFFFFFFFF0000, 0xFFFFFFFFFFFFFF00}
	ldrShift = [8]uint32{0, 8, 16, 24, 32, 40, 48, 56}
)

// execLoadStore handles every primary-table load and store, the FPU's
// LWC1/SWC1, and the hint-class instructions (CACHE/PREF) that this core
// treats as no-ops.
func (c *CPU) execLoadStore(i instruction) error {
	addr := c.effective(i)

	switch i.op() {
	case opLB:
		v, err := c.Mem.Read8(addr)
		if err != nil {
			return err
		}
		c.GPR.SetLo64(i.rt(), uint64(int64(int8(v))))
	case opLBU:
		v, err := c.Mem.Read8(addr)
		if err != nil {
			return err
		}
		c.GPR.SetLo64(i.rt(), uint64(v))
	case opLH:
		v, err := c.Mem.Read16(addr)
		if err != nil {
			return err
		}
		c.GPR.SetLo64(i.rt(), uint64(int64(int16(v))))
	case opLHU:
		v, err := c.Mem.Read16(addr)
		if err != nil {
			return err
		}
		c.GPR.SetLo64(i.rt(), uint64(v))
	case opLW:
		v, err := c.Mem.Read32(addr)
		if err != nil {
			return err
		}
		c.GPR.SetLo64Signed(i.rt(), int32(v))
	case opLWU:
		v, err := c.Mem.Read32(addr)
		if err != nil {
			return err
		}
		c.GPR.SetLo64(i.rt(), uint64(v))
	case opLD:
		v, err := c.Mem.Read64(addr)
		if err != nil {
			return err
		}
		c.GPR.SetLo64(i.rt(), v)
	case opLQ:
		lo, hi, err := c.Mem.Read128(addr &^ 15)
		if err != nil {
			return err
		}
		c.GPR.Set(i.rt(), Reg128{Lo: lo, Hi: hi})

	case opSB:
		return c.Mem.Write8(addr, uint8(c.GPR.GetWord(i.rt())))
	case opSH:
		return c.Mem.Write16(addr, uint16(c.GPR.GetWord(i.rt())))
	case opSW:
		return c.Mem.Write32(addr, c.GPR.GetWord(i.rt()))
	case opSD:
		return c.Mem.Write64(addr, c.GPR.GetLo64(i.rt()))
	case opSQ:
		v := c.GPR.Get(i.rt())
		return c.Mem.Write128(addr&^15, v.Lo, v.Hi)

	case opLWL:
		mem, err := c.Mem.Read32(addr &^ 3)
		if err != nil {
			return err
		}
		sh := addr & 3
		v := c.GPR.GetWord(i.rt())&lwlMask[sh] | mem<<lwlShift[sh]
		c.GPR.SetLo64Signed(i.rt(), int32(v))
	case opLWR:
		mem, err := c.Mem.Read32(addr &^ 3)
		if err != nil {
			return err
		}
		sh := addr & 3
		v := c.GPR.GetWord(i.rt())&lwrMask[sh] | mem>>lwrShift[sh]
		if sh == 0 {
			// a full-word LWR sign-extends like LW; partial merges keep
			// the register's upper half untouched
			c.GPR.SetLo64Signed(i.rt(), int32(v))
		} else {
			c.GPR.SetLo64(i.rt(), c.GPR.GetLo64(i.rt())&^0xFFFFFFFF|uint64(v))
		}
	case opSWL:
		mem, err := c.Mem.Read32(addr &^ 3)
		if err != nil {
			return err
		}
		sh := addr & 3
		return c.Mem.Write32(addr&^3, mem&swlMask[sh]|c.GPR.GetWord(i.rt())>>swlShift[sh])
	case opSWR:
		mem, err := c.Mem.Read32(addr &^ 3)
		if err != nil {
			return err
		}
		sh := addr & 3
		return c.Mem.Write32(addr&^3, mem&swrMask[sh]|c.GPR.GetWord(i.rt())<<swrShift[sh])

	case opLDL:
		mem, err := c.Mem.Read64(addr &^ 7)
		if err != nil {
			return err
		}
		sh := addr & 7
		c.GPR.SetLo64(i.rt(), c.GPR.GetLo64(i.rt())&ldlMask[sh]|mem<<ldlShift[sh])
	case opLDR:
		mem, err := c.Mem.Read64(addr &^ 7)
		if err != nil {
			return err
		}
		sh := addr & 7
		c.GPR.SetLo64(i.rt(), c.GPR.GetLo64(i.rt())&ldrMask[sh]|mem>>ldrShift[sh])
	case opSDL:
		mem, err := c.Mem.Read64(addr &^ 7)
		if err != nil {
			return err
		}
		sh := addr & 7
		return c.Mem.Write64(addr&^7, mem&^(^uint64(0)>>ldlShift[sh])|c.GPR.GetLo64(i.rt())>>ldlShift[sh])
	case opSDR:
		mem, err := c.Mem.Read64(addr &^ 7)
		if err != nil {
			return err
		}
		sh := addr & 7
		return c.Mem.Write64(addr&^7, mem&^(^uint64(0)<<ldrShift[sh])|c.GPR.GetLo64(i.rt())<<ldrShift[sh])

	case opLWC1:
		v, err := c.Mem.Read32(addr)
		if err != nil {
			return err
		}
		c.COP1.SetRaw(i.rt(), v)
	case opSWC1:
		return c.Mem.Write32(addr, c.COP1.Raw(i.rt()))

	case opCACHE, opPREF:
		// cache management and prefetch hints have no effect in a core
		// without a modelled cache
	case opLQC2, opSQC2:
		// VU0 macro-mode register file is out of core scope; the transfer
		// is decoded and dropped

	default:
		return c.unimplemented(i.word, c.PC)
	}
	return nil
}
