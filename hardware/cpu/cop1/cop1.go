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

// Package cop1 implements the EE's floating point coprocessor: 32 slots
// each reinterpretable as an IEEE-754 single or a signed/unsigned 32-bit
// integer, plus one boolean condition flag consulted by BC1T/BC1F.
package cop1

import "math"

// COP1 is the EE's FPU.
type COP1 struct {
	regs      [32]uint32
	condition bool

	// acc is the dedicated accumulator register written by ADDA/SUBA/MULA
	// and consumed by MADD/MSUB.
	acc uint32
}

// New builds a zeroed FPU.
func New() *COP1 {
	return &COP1{}
}

// Raw returns register i's bit pattern, unreinterpreted.
func (c *COP1) Raw(i int) uint32 { return c.regs[i&31] }

// SetRaw stores a raw 32-bit pattern into register i - used by mtc1/lwc1.
func (c *COP1) SetRaw(i int, v uint32) { c.regs[i&31] = v }

// Float reinterprets register i's bits as a single-precision float.
func (c *COP1) Float(i int) float32 {
	return math.Float32frombits(c.regs[i&31])
}

// SetFloat stores f into register i as its IEEE-754 bit pattern.
func (c *COP1) SetFloat(i int, f float32) {
	c.regs[i&31] = math.Float32bits(f)
}

// Int reinterprets register i's bits as a signed 32-bit integer.
func (c *COP1) Int(i int) int32 {
	return int32(c.regs[i&31])
}

// SetInt stores n into register i as its raw bit pattern.
func (c *COP1) SetInt(i int, n int32) {
	c.regs[i&31] = uint32(n)
}

// Condition returns the FPU's single condition flag, consulted by
// BC1T/BC1F/BC1TL/BC1FL.
func (c *COP1) Condition() bool { return c.condition }

// SetCondition sets the condition flag directly - used by CTC1 writing the
// control/status word, whose only modelled bit is this one.
func (c *COP1) SetCondition(v bool) { c.condition = v }

// ControlStatus packs the condition flag into the bit position MIPS-IV FPUs
// place it at (bit 23), for CFC1 reads of the control word.
func (c *COP1) ControlStatus() uint32 {
	if c.condition {
		return 1 << 23
	}
	return 0
}

// CvtSW converts the source register's bit pattern, read as a signed
// 32-bit integer, to single precision - cvt.s.w, using truncation
// (the EE's initial/only rounding mode modelled here).
func (c *COP1) CvtSW(dst, src int) {
	n := c.Int(src)
	f := float32(n)
	// the conversion rounds to nearest; step back toward zero where that
	// rounded the magnitude up
	if math.Abs(float64(f)) > math.Abs(float64(n)) {
		f = math.Nextafter32(f, 0)
	}
	c.SetFloat(dst, f)
}

// CvtWS converts a single-precision register to a signed 32-bit integer by
// truncation (cvt.w.s).
func (c *COP1) CvtWS(dst, src int) {
	c.SetInt(dst, int32(c.Float(src)))
}

// Add implements add.s: fd = fs + ft.
func (c *COP1) Add(fd, fs, ft int) { c.SetFloat(fd, c.Float(fs)+c.Float(ft)) }

// Sub implements sub.s: fd = fs - ft.
func (c *COP1) Sub(fd, fs, ft int) { c.SetFloat(fd, c.Float(fs)-c.Float(ft)) }

// Mul implements mul.s: fd = fs * ft.
func (c *COP1) Mul(fd, fs, ft int) { c.SetFloat(fd, c.Float(fs)*c.Float(ft)) }

// Div implements div.s: fd = fs / ft. Division by zero follows Go's
// float32 semantics (signed infinity/NaN) rather than trapping; undefined
// arithmetic results are non-fatal in this core.
func (c *COP1) Div(fd, fs, ft int) { c.SetFloat(fd, c.Float(fs)/c.Float(ft)) }

// Acc returns the accumulator's value as a float.
func (c *COP1) Acc() float32 { return math.Float32frombits(c.acc) }

func (c *COP1) setAcc(f float32) { c.acc = math.Float32bits(f) }

// Adda implements adda.s: acc = fs + ft.
func (c *COP1) Adda(fs, ft int) { c.setAcc(c.Float(fs) + c.Float(ft)) }

// Suba implements suba.s: acc = fs - ft.
func (c *COP1) Suba(fs, ft int) { c.setAcc(c.Float(fs) - c.Float(ft)) }

// Mula implements mula.s: acc = fs * ft.
func (c *COP1) Mula(fs, ft int) { c.setAcc(c.Float(fs) * c.Float(ft)) }

// Madd implements madd.s: fd = acc + fs*ft.
func (c *COP1) Madd(fd, fs, ft int) { c.SetFloat(fd, c.Acc()+c.Float(fs)*c.Float(ft)) }

// Msub implements msub.s: fd = acc - fs*ft.
func (c *COP1) Msub(fd, fs, ft int) { c.SetFloat(fd, c.Acc()-c.Float(fs)*c.Float(ft)) }

// Sqrt implements sqrt.s: fd = √ft.
func (c *COP1) Sqrt(fd, ft int) {
	c.SetFloat(fd, float32(math.Sqrt(float64(c.Float(ft)))))
}

// RSqrt implements rsqrt.s: fd = fs / √ft.
func (c *COP1) RSqrt(fd, fs, ft int) {
	c.SetFloat(fd, c.Float(fs)/float32(math.Sqrt(float64(c.Float(ft)))))
}

// Max implements max.s: fd = max(fs, ft).
func (c *COP1) Max(fd, fs, ft int) {
	a, b := c.Float(fs), c.Float(ft)
	if b > a {
		a = b
	}
	c.SetFloat(fd, a)
}

// Min implements min.s: fd = min(fs, ft).
func (c *COP1) Min(fd, fs, ft int) {
	a, b := c.Float(fs), c.Float(ft)
	if b < a {
		a = b
	}
	c.SetFloat(fd, a)
}

// Neg implements neg.s: fd = -fs.
func (c *COP1) Neg(fd, fs int) { c.SetFloat(fd, -c.Float(fs)) }

// Mov implements mov.s: fd = fs.
func (c *COP1) Mov(fd, fs int) { c.regs[fd&31] = c.regs[fs&31] }

// Abs implements abs.s: fd = |fs|.
func (c *COP1) Abs(fd, fs int) {
	f := c.Float(fs)
	if f < 0 {
		f = -f
	}
	c.SetFloat(fd, f)
}

// CompareLT implements c.lt.s: condition = fs < ft.
func (c *COP1) CompareLT(fs, ft int) { c.condition = c.Float(fs) < c.Float(ft) }

// CompareEQ implements c.eq.s: condition = fs == ft.
func (c *COP1) CompareEQ(fs, ft int) { c.condition = c.Float(fs) == c.Float(ft) }

// CompareLE implements c.le.s: condition = fs <= ft.
func (c *COP1) CompareLE(fs, ft int) { c.condition = c.Float(fs) <= c.Float(ft) }
