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

import "github.com/retroswitch/emotion2k/errors"

// Primary opcodes (top 6 bits).
const (
	opSpecial = 0x00
	opRegimm  = 0x01
	opJ       = 0x02
	opJAL     = 0x03
	opBEQ     = 0x04
	opBNE     = 0x05
	opBLEZ    = 0x06
	opBGTZ    = 0x07
	opADDI    = 0x08
	opADDIU   = 0x09
	opSLTI    = 0x0A
	opSLTIU   = 0x0B
	opANDI    = 0x0C
	opORI     = 0x0D
	opXORI    = 0x0E
	opLUI     = 0x0F
	opCOP0    = 0x10
	opCOP1    = 0x11
	opCOP2    = 0x12
	opBEQL    = 0x14
	opBNEL    = 0x15
	opBLEZL   = 0x16
	opBGTZL   = 0x17
	opDADDI   = 0x18
	opDADDIU  = 0x19
	opLDL     = 0x1A
	opLDR     = 0x1B
	opMMI     = 0x1C
	opLQ      = 0x1E
	opSQ      = 0x1F
	opLB      = 0x20
	opLH      = 0x21
	opLWL     = 0x22
	opLW      = 0x23
	opLBU     = 0x24
	opLHU     = 0x25
	opLWR     = 0x26
	opLWU     = 0x27
	opSB      = 0x28
	opSH      = 0x29
	opSWL     = 0x2A
	opSW      = 0x2B
	opSDL     = 0x2C
	opSDR     = 0x2D
	opSWR     = 0x2E
	opCACHE   = 0x2F
	opLWC1    = 0x31
	opPREF    = 0x33
	opLQC2    = 0x36
	opLD      = 0x37
	opSWC1    = 0x39
	opSQC2    = 0x3E
	opSD      = 0x3F
)

// instruction decomposes a 32-bit word into the fields every format
// (R/I/J) needs; unused fields for a given format are simply ignored by
// the handler.
type instruction struct {
	word uint32
}

func (i instruction) op() uint32     { return i.word >> 26 }
func (i instruction) rs() int        { return int(i.word>>21) & 0x1F }
func (i instruction) rt() int        { return int(i.word>>16) & 0x1F }
func (i instruction) rd() int        { return int(i.word>>11) & 0x1F }
func (i instruction) shamt() int     { return int(i.word>>6) & 0x1F }
func (i instruction) funct() uint32  { return i.word & 0x3F }
func (i instruction) imm16() uint32  { return i.word & 0xFFFF }
func (i instruction) simm16() int32  { return int32(int16(i.word & 0xFFFF)) }
func (i instruction) target26() uint32 { return i.word & 0x03FFFFFF }

// execute decodes and dispatches one instruction word. Unknown primary or
// secondary opcodes are a fatal decode failure - surfaced as a
// curated error rather than a process-wide panic/longjmp.
func (c *CPU) execute(word uint32) error {
	i := instruction{word: word}

	switch i.op() {
	case opSpecial:
		return c.execSpecial(i)
	case opRegimm:
		return c.execRegimm(i)
	case opMMI:
		return c.execMMI(i)
	case opCOP0:
		return c.execCOP0(i)
	case opCOP1:
		return c.execCOP1(i)
	case opCOP2:
		// VU0 macro mode is out of core scope; COP2 instructions
		// are decoded and silently treated as no-ops so BIOS code that
		// probes for VU0 presence doesn't halt the core.
		return nil
	default:
		return c.execPrimary(i)
	}
}

func (c *CPU) unimplemented(word, pc uint32) error {
	return errors.Errorf(errors.UnimplementedOpcode, word, pc)
}
