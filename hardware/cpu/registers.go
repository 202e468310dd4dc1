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

// Reg128 is one 128-bit general-purpose register, split into 64-bit halves
// for convenient interop with the many instructions that only touch the
// low half. A typed accessor surface rather than byte-array punning, so
// the zero register's no-op store can be enforced in one place.
type Reg128 struct {
	Lo uint64
	Hi uint64
}

// GPRFile is the EE's 32 x 128-bit general register file. Register 0 is
// hardwired zero: the no-op enforcement lives here, in the accessor layer,
// rather than at every call site that might write it.
type GPRFile struct {
	regs [32]Reg128
}

// Get returns the full 128-bit value of register i.
func (g *GPRFile) Get(i int) Reg128 {
	return g.regs[i&31]
}

// Set stores v into register i, except register 0 which silently discards
// the write.
func (g *GPRFile) Set(i int, v Reg128) {
	if i&31 == 0 {
		return
	}
	g.regs[i&31] = v
}

// GetLo64 returns the low 64 bits of register i.
func (g *GPRFile) GetLo64(i int) uint64 {
	return g.regs[i&31].Lo
}

// SetLo64 stores v into the low 64 bits of register i and zeroes the high
// half, matching every 64-bit-result EE instruction's sign/zero-extension
// into the full 128-bit register.
func (g *GPRFile) SetLo64(i int, v uint64) {
	if i&31 == 0 {
		return
	}
	g.regs[i&31] = Reg128{Lo: v}
}

// SetLo64Signed stores the sign-extension of a 32-bit result into the low
// 64 bits of register i (ADDU/SUBU/ADD/SUB/loads narrower than 64 bits all
// go through this).
func (g *GPRFile) SetLo64Signed(i int, v32 int32) {
	g.SetLo64(i, uint64(int64(v32)))
}

// GetWord returns the low 32 bits of register i, for instructions that only
// ever consume a 32-bit operand (shifts, most ALU ops).
func (g *GPRFile) GetWord(i int) uint32 {
	return uint32(g.regs[i&31].Lo)
}

