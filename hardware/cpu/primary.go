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

import "github.com/retroswitch/emotion2k/logger"

// execPrimary dispatches every top-level opcode that isn't SPECIAL,
// REGIMM, MMI or one of the three coprocessor opcodes: jumps, branches,
// immediate ALU ops, and loads/stores.
func (c *CPU) execPrimary(i instruction) error {
	switch i.op() {
	case opJ:
		c.armBranch(jumpTarget(c.PC, i.target26()))
		return nil
	case opJAL:
		c.GPR.SetLo64Signed(31, int32(c.PC+8))
		c.armBranch(jumpTarget(c.PC, i.target26()))
		return nil

	case opBEQ:
		return c.branchCond(i, c.GPR.GetLo64(i.rs()) == c.GPR.GetLo64(i.rt()), false)
	case opBNE:
		return c.branchCond(i, c.GPR.GetLo64(i.rs()) != c.GPR.GetLo64(i.rt()), false)
	case opBLEZ:
		return c.branchCond(i, int64(c.GPR.GetLo64(i.rs())) <= 0, false)
	case opBGTZ:
		return c.branchCond(i, int64(c.GPR.GetLo64(i.rs())) > 0, false)
	case opBEQL:
		return c.branchCond(i, c.GPR.GetLo64(i.rs()) == c.GPR.GetLo64(i.rt()), true)
	case opBNEL:
		return c.branchCond(i, c.GPR.GetLo64(i.rs()) != c.GPR.GetLo64(i.rt()), true)
	case opBLEZL:
		return c.branchCond(i, int64(c.GPR.GetLo64(i.rs())) <= 0, true)
	case opBGTZL:
		return c.branchCond(i, int64(c.GPR.GetLo64(i.rs())) > 0, true)

	case opADDI, opADDIU:
		// ADDI traps on overflow in silicon; this core wraps and logs the
		// first occurrence instead (see DESIGN.md).
		rs := int32(c.GPR.GetWord(i.rs()))
		res := rs + i.simm16()
		if i.op() == opADDI {
			c.warnOnOverflowOnce("addi", int64(rs)+int64(i.simm16()), int64(res))
		}
		c.GPR.SetLo64Signed(i.rt(), res)
		return nil
	case opDADDI, opDADDIU:
		rs := int64(c.GPR.GetLo64(i.rs()))
		res := rs + int64(i.simm16())
		c.GPR.SetLo64(i.rt(), uint64(res))
		return nil
	case opSLTI:
		v := int32(0)
		if int64(int32(c.GPR.GetWord(i.rs()))) < int64(i.simm16()) {
			v = 1
		}
		c.GPR.SetLo64Signed(i.rt(), v)
		return nil
	case opSLTIU:
		v := int32(0)
		if c.GPR.GetLo64(i.rs()) < uint64(int64(i.simm16())) {
			v = 1
		}
		c.GPR.SetLo64Signed(i.rt(), v)
		return nil
	case opANDI:
		c.GPR.SetLo64(i.rt(), c.GPR.GetLo64(i.rs())&uint64(i.imm16()))
		return nil
	case opORI:
		c.GPR.SetLo64(i.rt(), c.GPR.GetLo64(i.rs())|uint64(i.imm16()))
		return nil
	case opXORI:
		c.GPR.SetLo64(i.rt(), c.GPR.GetLo64(i.rs())^uint64(i.imm16()))
		return nil
	case opLUI:
		c.GPR.SetLo64Signed(i.rt(), int32(i.imm16()<<16))
		return nil

	default:
		return c.execLoadStore(i)
	}
}

// branchCond implements the shared conditional-branch and branch-likely
// state machine: on a taken branch, arm the one-slot delay; on a
// not-taken branch-likely, skip the delay slot entirely instead of letting
// it execute.
func (c *CPU) branchCond(i instruction, taken, likely bool) error {
	if taken {
		c.armBranch(branchTarget(c.PC, i.imm16()))
		return nil
	}
	if likely {
		c.skipDelaySlot()
	}
	return nil
}

// warnOnOverflowOnce logs the first time a trapping ADD/ADDI/SUB's result
// would have overflowed. Silicon raises the Overflow exception; this core
// wraps, so the discrepancy is made visible without being fatal.
func (c *CPU) warnOnOverflowOnce(site string, wide, narrow int64) {
	if c.overflowWarned || wide == narrow {
		return
	}
	c.overflowWarned = true
	logger.Logf("cpu", "signed overflow in %s wrapped rather than trapped", site)
}
