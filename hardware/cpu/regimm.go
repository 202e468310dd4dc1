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

// REGIMM rt-field selectors.
const (
	riBLTZ    = 0x00
	riBGEZ    = 0x01
	riBLTZL   = 0x02
	riBGEZL   = 0x03
	riBLTZAL  = 0x10
	riBGEZAL  = 0x11
	riBLTZALL = 0x12
	riBGEZALL = 0x13
	riMTSAB   = 0x18
	riMTSAH   = 0x19
)

// execRegimm handles the REGIMM secondary table: compare-against-zero
// branches (plus their linking and branch-likely variants) and the SA
// register loads.
func (c *CPU) execRegimm(i instruction) error {
	rs := int64(c.GPR.GetLo64(i.rs()))

	switch i.rt() {
	case riBLTZ:
		return c.branchCond(i, rs < 0, false)
	case riBGEZ:
		return c.branchCond(i, rs >= 0, false)
	case riBLTZL:
		return c.branchCond(i, rs < 0, true)
	case riBGEZL:
		return c.branchCond(i, rs >= 0, true)

	case riBLTZAL:
		c.GPR.SetLo64Signed(31, int32(c.PC+8))
		return c.branchCond(i, rs < 0, false)
	case riBGEZAL:
		c.GPR.SetLo64Signed(31, int32(c.PC+8))
		return c.branchCond(i, rs >= 0, false)
	case riBLTZALL:
		c.GPR.SetLo64Signed(31, int32(c.PC+8))
		return c.branchCond(i, rs < 0, true)
	case riBGEZALL:
		c.GPR.SetLo64Signed(31, int32(c.PC+8))
		return c.branchCond(i, rs >= 0, true)

	case riMTSAB:
		c.SA = ((c.GPR.GetWord(i.rs()) & 0xF) ^ (i.imm16() & 0xF)) * 8
	case riMTSAH:
		c.SA = ((c.GPR.GetWord(i.rs()) & 0x7) ^ (i.imm16() & 0x7)) * 16

	default:
		return c.unimplemented(i.word, c.PC)
	}
	return nil
}
