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

import (
	"math"

	"github.com/retroswitch/emotion2k/errors"
	"github.com/retroswitch/emotion2k/hardware/cpu/cop0"
)

// SPECIAL function codes (low 6 bits when the primary opcode is zero).
const (
	fnSLL     = 0x00
	fnSRL     = 0x02
	fnSRA     = 0x03
	fnSLLV    = 0x04
	fnSRLV    = 0x06
	fnSRAV    = 0x07
	fnJR      = 0x08
	fnJALR    = 0x09
	fnMOVZ    = 0x0A
	fnMOVN    = 0x0B
	fnSYSCALL = 0x0C
	fnBREAK   = 0x0D
	fnSYNC    = 0x0F
	fnMFHI    = 0x10
	fnMTHI    = 0x11
	fnMFLO    = 0x12
	fnMTLO    = 0x13
	fnDSLLV   = 0x14
	fnDSRLV   = 0x16
	fnDSRAV   = 0x17
	fnMULT    = 0x18
	fnMULTU   = 0x19
	fnDIV     = 0x1A
	fnDIVU    = 0x1B
	fnADD     = 0x20
	fnADDU    = 0x21
	fnSUB     = 0x22
	fnSUBU    = 0x23
	fnAND     = 0x24
	fnOR      = 0x25
	fnXOR     = 0x26
	fnNOR     = 0x27
	fnMFSA    = 0x28
	fnMTSA    = 0x29
	fnSLT     = 0x2A
	fnSLTU    = 0x2B
	fnDADD    = 0x2C
	fnDADDU   = 0x2D
	fnDSUB    = 0x2E
	fnDSUBU   = 0x2F
	fnDSLL    = 0x38
	fnDSRL    = 0x3A
	fnDSRA    = 0x3B
	fnDSLL32  = 0x3C
	fnDSRL32  = 0x3E
	fnDSRA32  = 0x3F
)

// execSpecial handles the SPECIAL secondary table: register-register ALU
// ops, shifts, multiply/divide, register jumps, and SYSCALL/BREAK.
func (c *CPU) execSpecial(i instruction) error {
	switch i.funct() {
	case fnSLL:
		c.GPR.SetLo64Signed(i.rd(), int32(c.GPR.GetWord(i.rt())<<i.shamt()))
	case fnSRL:
		c.GPR.SetLo64Signed(i.rd(), int32(c.GPR.GetWord(i.rt())>>i.shamt()))
	case fnSRA:
		c.GPR.SetLo64Signed(i.rd(), int32(c.GPR.GetWord(i.rt()))>>i.shamt())
	case fnSLLV:
		c.GPR.SetLo64Signed(i.rd(), int32(c.GPR.GetWord(i.rt())<<(c.GPR.GetWord(i.rs())&31)))
	case fnSRLV:
		c.GPR.SetLo64Signed(i.rd(), int32(c.GPR.GetWord(i.rt())>>(c.GPR.GetWord(i.rs())&31)))
	case fnSRAV:
		c.GPR.SetLo64Signed(i.rd(), int32(c.GPR.GetWord(i.rt()))>>(c.GPR.GetWord(i.rs())&31))

	case fnJR:
		c.armBranch(uint32(c.GPR.GetLo64(i.rs())))
	case fnJALR:
		target := uint32(c.GPR.GetLo64(i.rs()))
		c.GPR.SetLo64Signed(i.rd(), int32(c.PC+8))
		c.armBranch(target)

	case fnMOVZ:
		if c.GPR.GetLo64(i.rt()) == 0 {
			c.GPR.SetLo64(i.rd(), c.GPR.GetLo64(i.rs()))
		}
	case fnMOVN:
		if c.GPR.GetLo64(i.rt()) != 0 {
			c.GPR.SetLo64(i.rd(), c.GPR.GetLo64(i.rs()))
		}

	case fnSYSCALL:
		return c.syscall()
	case fnBREAK:
		vector := c.COP0.RaiseException(cop0.ExcBreakpoint, c.PC, c.inDelaySlot)
		c.enterException(vector)
	case fnSYNC:
		// memory ordering is already sequential in this core

	case fnMFHI:
		c.GPR.SetLo64(i.rd(), c.HI)
	case fnMTHI:
		c.HI = c.GPR.GetLo64(i.rs())
	case fnMFLO:
		c.GPR.SetLo64(i.rd(), c.LO)
	case fnMTLO:
		c.LO = c.GPR.GetLo64(i.rs())

	case fnDSLLV:
		c.GPR.SetLo64(i.rd(), c.GPR.GetLo64(i.rt())<<(c.GPR.GetWord(i.rs())&63))
	case fnDSRLV:
		c.GPR.SetLo64(i.rd(), c.GPR.GetLo64(i.rt())>>(c.GPR.GetWord(i.rs())&63))
	case fnDSRAV:
		c.GPR.SetLo64(i.rd(), uint64(int64(c.GPR.GetLo64(i.rt()))>>(c.GPR.GetWord(i.rs())&63)))

	case fnMULT:
		prod := int64(int32(c.GPR.GetWord(i.rs()))) * int64(int32(c.GPR.GetWord(i.rt())))
		c.LO = uint64(int64(int32(prod)))
		c.HI = uint64(int64(int32(prod >> 32)))
		// the EE's three-operand MULT also writes LO to rd
		c.GPR.SetLo64(i.rd(), c.LO)
	case fnMULTU:
		prod := uint64(c.GPR.GetWord(i.rs())) * uint64(c.GPR.GetWord(i.rt()))
		c.LO = uint64(int64(int32(prod)))
		c.HI = uint64(int64(int32(prod >> 32)))
		c.GPR.SetLo64(i.rd(), c.LO)
	case fnDIV:
		return c.div(i.rs(), i.rt(), &c.LO, &c.HI, "div")
	case fnDIVU:
		return c.divu(i.rs(), i.rt(), &c.LO, &c.HI, "divu")

	case fnADD, fnADDU:
		rs, rt := int32(c.GPR.GetWord(i.rs())), int32(c.GPR.GetWord(i.rt()))
		res := rs + rt
		if i.funct() == fnADD {
			c.warnOnOverflowOnce("add", int64(rs)+int64(rt), int64(res))
		}
		c.GPR.SetLo64Signed(i.rd(), res)
	case fnSUB, fnSUBU:
		rs, rt := int32(c.GPR.GetWord(i.rs())), int32(c.GPR.GetWord(i.rt()))
		res := rs - rt
		if i.funct() == fnSUB {
			c.warnOnOverflowOnce("sub", int64(rs)-int64(rt), int64(res))
		}
		c.GPR.SetLo64Signed(i.rd(), res)

	case fnAND:
		c.GPR.SetLo64(i.rd(), c.GPR.GetLo64(i.rs())&c.GPR.GetLo64(i.rt()))
	case fnOR:
		c.GPR.SetLo64(i.rd(), c.GPR.GetLo64(i.rs())|c.GPR.GetLo64(i.rt()))
	case fnXOR:
		c.GPR.SetLo64(i.rd(), c.GPR.GetLo64(i.rs())^c.GPR.GetLo64(i.rt()))
	case fnNOR:
		c.GPR.SetLo64(i.rd(), ^(c.GPR.GetLo64(i.rs()) | c.GPR.GetLo64(i.rt())))

	case fnMFSA:
		c.GPR.SetLo64(i.rd(), uint64(c.SA))
	case fnMTSA:
		c.SA = c.GPR.GetWord(i.rs())

	case fnSLT:
		v := uint64(0)
		if int64(c.GPR.GetLo64(i.rs())) < int64(c.GPR.GetLo64(i.rt())) {
			v = 1
		}
		c.GPR.SetLo64(i.rd(), v)
	case fnSLTU:
		v := uint64(0)
		if c.GPR.GetLo64(i.rs()) < c.GPR.GetLo64(i.rt()) {
			v = 1
		}
		c.GPR.SetLo64(i.rd(), v)

	case fnDADD, fnDADDU:
		c.GPR.SetLo64(i.rd(), c.GPR.GetLo64(i.rs())+c.GPR.GetLo64(i.rt()))
	case fnDSUB, fnDSUBU:
		c.GPR.SetLo64(i.rd(), c.GPR.GetLo64(i.rs())-c.GPR.GetLo64(i.rt()))

	case fnDSLL:
		c.GPR.SetLo64(i.rd(), c.GPR.GetLo64(i.rt())<<i.shamt())
	case fnDSRL:
		c.GPR.SetLo64(i.rd(), c.GPR.GetLo64(i.rt())>>i.shamt())
	case fnDSRA:
		c.GPR.SetLo64(i.rd(), uint64(int64(c.GPR.GetLo64(i.rt()))>>i.shamt()))
	case fnDSLL32:
		c.GPR.SetLo64(i.rd(), c.GPR.GetLo64(i.rt())<<(i.shamt()+32))
	case fnDSRL32:
		c.GPR.SetLo64(i.rd(), c.GPR.GetLo64(i.rt())>>(i.shamt()+32))
	case fnDSRA32:
		c.GPR.SetLo64(i.rd(), uint64(int64(c.GPR.GetLo64(i.rt()))>>(i.shamt()+32)))

	default:
		return c.unimplemented(i.word, c.PC)
	}
	return nil
}

// div implements signed 32-bit division into the given accumulator bank.
// Division by zero produces the fixed sentinel outputs the error taxonomy
// calls for: LO holds ±1 by the dividend's sign, HI holds the dividend.
func (c *CPU) div(rs, rt int, lo, hi *uint64, site string) error {
	n := int32(c.GPR.GetWord(rs))
	d := int32(c.GPR.GetWord(rt))
	switch {
	case d == 0:
		if n >= 0 {
			*lo = ^uint64(0)
		} else {
			*lo = 1
		}
		*hi = uint64(int64(n))
		return errors.Errorf(errors.DivideByZero, site)
	case n == math.MinInt32 && d == -1:
		*lo = uint64(int64(n))
		*hi = 0
	default:
		*lo = uint64(int64(n / d))
		*hi = uint64(int64(n % d))
	}
	return nil
}

// divu is div's unsigned counterpart; its divide-by-zero sentinel is an
// all-ones quotient.
func (c *CPU) divu(rs, rt int, lo, hi *uint64, site string) error {
	n := c.GPR.GetWord(rs)
	d := c.GPR.GetWord(rt)
	if d == 0 {
		*lo = ^uint64(0)
		*hi = uint64(int64(int32(n)))
		return errors.Errorf(errors.DivideByZero, site)
	}
	*lo = uint64(int64(int32(n / d)))
	*hi = uint64(int64(int32(n % d)))
	return nil
}

// syscall gives the BIOS-HLE table first refusal; anything it doesn't
// service enters the guest's own exception handler through the standard
// vector.
func (c *CPU) syscall() error {
	if c.Syscall != nil {
		// the EE's syscall convention carries the call number in v1,
		// negated for some kernel entry points
		num := int32(c.GPR.GetWord(3))
		if num < 0 {
			num = -num
		}
		if c.Syscall.Handle(c, num) {
			return nil
		}
	}
	vector := c.COP0.RaiseException(cop0.ExcSyscall, c.PC, c.inDelaySlot)
	c.enterException(vector)
	return nil
}
