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

// Coprocessor sub-opcode selectors in the rs field.
const (
	copMF = 0x00
	copCF = 0x02
	copMT = 0x04
	copCT = 0x06
	copBC = 0x08
	copCO = 0x10
	copFmtS = 0x10
	copFmtW = 0x14
)

// COP0 CO-format function codes.
const (
	c0TLBR  = 0x01
	c0TLBWI = 0x02
	c0TLBWR = 0x06
	c0TLBP  = 0x08
	c0ERET  = 0x18
	c0EI    = 0x38
	c0DI    = 0x39
)

// execCOP0 handles MFC0/MTC0, the BC0 branches (which consult the DMAC
// all-channels-complete condition), and the CO-format TLB and exception
// management instructions.
func (c *CPU) execCOP0(i instruction) error {
	switch i.rs() {
	case copMF:
		c.GPR.SetLo64Signed(i.rt(), int32(c.COP0.Read(i.rd())))
	case copMT:
		c.COP0.Write(i.rd(), c.GPR.GetWord(i.rt()))

	case copBC:
		cond := c.COP0.DMACCondition()
		switch i.rt() {
		case 0x00: // BC0F
			return c.branchCond(i, !cond, false)
		case 0x01: // BC0T
			return c.branchCond(i, cond, false)
		case 0x02: // BC0FL
			return c.branchCond(i, !cond, true)
		case 0x03: // BC0TL
			return c.branchCond(i, cond, true)
		default:
			return c.unimplemented(i.word, c.PC)
		}

	case copCO:
		switch i.funct() {
		case c0TLBR:
			c.COP0.TLBR()
		case c0TLBWI:
			c.COP0.TLBWI()
		case c0TLBWR:
			c.COP0.TLBWR()
		case c0TLBP:
			c.COP0.TLBP()
		case c0ERET:
			c.PC = c.COP0.ExceptionReturn() - 4
			c.branchPending = false
			c.delay = 0
		case c0EI:
			c.COP0.SetMasterEnable(true)
		case c0DI:
			c.COP0.SetMasterEnable(false)
		default:
			return c.unimplemented(i.word, c.PC)
		}

	default:
		return c.unimplemented(i.word, c.PC)
	}
	return nil
}

// COP1 S-format function codes.
const (
	fpADD   = 0x00
	fpSUB   = 0x01
	fpMUL   = 0x02
	fpDIV   = 0x03
	fpSQRT  = 0x04
	fpABS   = 0x05
	fpMOV   = 0x06
	fpNEG   = 0x07
	fpRSQRT = 0x16
	fpADDA  = 0x18
	fpSUBA  = 0x19
	fpMULA  = 0x1A
	fpMADD  = 0x1C
	fpMSUB  = 0x1D
	fpCVTW  = 0x24
	fpMAX   = 0x28
	fpMIN   = 0x29
	fpCF    = 0x30
	fpCEQ   = 0x32
	fpCLT   = 0x34
	fpCLE   = 0x36
)

// execCOP1 handles register moves across the CPU/FPU boundary, the BC1
// branches, and the S/W-format arithmetic tables. The FPU field layout
// reuses the R-format slots: fd sits in the shamt field, fs in rd, ft in
// rt.
func (c *CPU) execCOP1(i instruction) error {
	fd, fs, ft := i.shamt(), i.rd(), i.rt()

	switch i.rs() {
	case copMF:
		c.GPR.SetLo64Signed(i.rt(), c.COP1.Int(fs))
	case copCF:
		if fs == 31 {
			c.GPR.SetLo64Signed(i.rt(), int32(c.COP1.ControlStatus()))
		} else {
			c.GPR.SetLo64(i.rt(), 0)
		}
	case copMT:
		c.COP1.SetRaw(fs, c.GPR.GetWord(i.rt()))
	case copCT:
		if fs == 31 {
			c.COP1.SetCondition(c.GPR.GetWord(i.rt())&(1<<23) != 0)
		}

	case copBC:
		switch i.rt() {
		case 0x00: // BC1F
			return c.branchCond(i, !c.COP1.Condition(), false)
		case 0x01: // BC1T
			return c.branchCond(i, c.COP1.Condition(), false)
		case 0x02: // BC1FL
			return c.branchCond(i, !c.COP1.Condition(), true)
		case 0x03: // BC1TL
			return c.branchCond(i, c.COP1.Condition(), true)
		default:
			return c.unimplemented(i.word, c.PC)
		}

	case copFmtS:
		switch i.funct() {
		case fpADD:
			c.COP1.Add(fd, fs, ft)
		case fpSUB:
			c.COP1.Sub(fd, fs, ft)
		case fpMUL:
			c.COP1.Mul(fd, fs, ft)
		case fpDIV:
			c.COP1.Div(fd, fs, ft)
		case fpSQRT:
			c.COP1.Sqrt(fd, ft)
		case fpABS:
			c.COP1.Abs(fd, fs)
		case fpMOV:
			c.COP1.Mov(fd, fs)
		case fpNEG:
			c.COP1.Neg(fd, fs)
		case fpRSQRT:
			c.COP1.RSqrt(fd, fs, ft)
		case fpADDA:
			c.COP1.Adda(fs, ft)
		case fpSUBA:
			c.COP1.Suba(fs, ft)
		case fpMULA:
			c.COP1.Mula(fs, ft)
		case fpMADD:
			c.COP1.Madd(fd, fs, ft)
		case fpMSUB:
			c.COP1.Msub(fd, fs, ft)
		case fpCVTW:
			c.COP1.CvtWS(fd, fs)
		case fpMAX:
			c.COP1.Max(fd, fs, ft)
		case fpMIN:
			c.COP1.Min(fd, fs, ft)
		case fpCF:
			c.COP1.SetCondition(false)
		case fpCEQ:
			c.COP1.CompareEQ(fs, ft)
		case fpCLT:
			c.COP1.CompareLT(fs, ft)
		case fpCLE:
			c.COP1.CompareLE(fs, ft)
		default:
			return c.unimplemented(i.word, c.PC)
		}

	case copFmtW:
		if i.funct() == 0x20 { // cvt.s.w
			c.COP1.CvtSW(fd, fs)
			return nil
		}
		return c.unimplemented(i.word, c.PC)

	default:
		return c.unimplemented(i.word, c.PC)
	}
	return nil
}
