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

// Package gif implements the Graphics Interface: the arbiter between the
// three GS input paths (VU1 direct, VIF1 direct, DMA) and the GIFtag
// parser that turns the winning path's quadword stream into GS register
// writes.
package gif

import (
	"github.com/retroswitch/emotion2k/errors"
	"github.com/retroswitch/emotion2k/logger"
)

// GSPort is the register-write surface the GIF dispatches into: the GS
// drawing-register bank addressed by the 8-bit register numbers carried in
// GIFtags.
type GSPort interface {
	WriteRegister(reg uint8, value uint64) error
}

// Path identifies one of the three physical GIF inputs.
type Path int

const (
	PathNone Path = iota
	Path1         // VU1 XGKICK
	Path2         // VIF1 DIRECT
	Path3         // DMAC GIF channel
)

func (p Path) String() string {
	switch p {
	case Path1:
		return "PATH1"
	case Path2:
		return "PATH2"
	case Path3:
		return "PATH3"
	default:
		return "idle"
	}
}

// GIFtag payload formats.
const (
	FormatPacked  = 0
	FormatReglist = 1
	FormatImage   = 2
	FormatDisable = 3
)

// PACKED-format register selectors (the 4-bit values packed into a tag's
// REGS descriptor).
const (
	selPRIM  = 0x0
	selRGBAQ = 0x1
	selST    = 0x2
	selUV    = 0x3
	selXYZF2 = 0x4
	selXYZ2  = 0x5
	selTEX01 = 0x6
	selTEX02 = 0x7
	selCLAMP1 = 0x8
	selCLAMP2 = 0x9
	selFOG   = 0xA
	selXYZF3 = 0xC
	selXYZ3  = 0xD
	selAD    = 0xE
	selNOP   = 0xF
)

// GS drawing-register numbers the packed selectors resolve to.
const (
	regPRIM  = 0x00
	regRGBAQ = 0x01
	regST    = 0x02
	regUV    = 0x03
	regXYZF2 = 0x04
	regXYZ2  = 0x05
	regTEX01 = 0x06
	regTEX02 = 0x07
	regCLAMP1 = 0x08
	regCLAMP2 = 0x09
	regFOG   = 0x0A
	regXYZF3 = 0x0C
	regXYZ3  = 0x0D
	regHWREG = 0x54
)

// qOne is the bit pattern of float32(1.0), the Q value every GIFtag
// boundary resets to.
const qOne = 0x3F800000

// fifoCapacity bounds the internal PATH3 queue used while PATH3 is masked.
const fifoCapacity = 16

// tag is the parsed form of a 128-bit GIFtag.
type tag struct {
	nloop  int
	eop    bool
	pre    bool
	prim   uint64
	format int
	nreg   int
	regs   uint64

	dataLeft int
	regsLeft int
}

// selector returns the 4-bit register selector for the current position in
// the REGS descriptor.
func (t *tag) selector() int {
	return int(t.regs>>(4*(t.nreg-t.regsLeft))) & 0xF
}

// advanceReg steps the regs/data counters after one register slot has been
// consumed. It reports whether the tag's payload is exhausted.
func (t *tag) advanceReg() bool {
	t.regsLeft--
	if t.regsLeft == 0 {
		t.regsLeft = t.nreg
		t.dataLeft--
	}
	return t.dataLeft == 0
}

// GIF is the Graphics Interface.
type GIF struct {
	gs GSPort

	active  Path
	tag     tag
	inTag   bool

	// q is the current Q value (raw float bits), updated by packed ST
	// slots and folded into packed RGBAQ writes
	q uint32

	// fifo holds PATH3 quadwords queued while PATH3 is masked
	fifo [][2]uint64

	path3VIFMask  bool
	path3ModeMask bool

	// register file (CTRL/MODE/STAT)
	mode uint32
}

// New builds a GIF dispatching into gs.
func New(gs GSPort) *GIF {
	return &GIF{gs: gs, q: qOne}
}

// Reset drops all arbitration, tag and FIFO state.
func (g *GIF) Reset() {
	g.active = PathNone
	g.inTag = false
	g.q = qOne
	g.fifo = nil
	g.path3VIFMask = false
	g.path3ModeMask = false
	g.mode = 0
}

// Expecting reports whether the GIF is between tags ("expect tag" state),
// and on which path. Used by tests and the debugger.
func (g *GIF) Expecting() (Path, bool) {
	return g.active, !g.inTag
}

// SetPath3VIFMask is driven by VIF1's MSKPATH3 command. Unmasking drains
// any quadwords that queued while the mask was up.
func (g *GIF) SetPath3VIFMask(masked bool) {
	g.path3VIFMask = masked
	if !masked {
		g.drainFIFO()
	}
}

func (g *GIF) path3Masked() bool {
	return g.path3VIFMask || g.path3ModeMask
}

// SubmitPath1 hands over a complete XGKICK packet: PATH1 has highest
// priority and is consumed synchronously.
func (g *GIF) SubmitPath1(quads [][2]uint64) error {
	for _, q := range quads {
		if err := g.consume(Path1, q[0], q[1]); err != nil {
			return err
		}
	}
	return nil
}

// SubmitPath2Quadword accepts one quadword of VIF1 DIRECT data.
func (g *GIF) SubmitPath2Quadword(lo, hi uint64) error {
	return g.consume(Path2, lo, hi)
}

// IngestQuadword implements dmac.Device: the DMAC's GIF channel feeds
// PATH3 through this port.
func (g *GIF) IngestQuadword(lo, hi uint64) error {
	if g.path3Masked() || (g.active != PathNone && g.active != Path3) {
		if len(g.fifo) >= fifoCapacity {
			return errors.Errorf(errors.MessageRingFull)
		}
		g.fifo = append(g.fifo, [2]uint64{lo, hi})
		return nil
	}
	return g.consume(Path3, lo, hi)
}

// CanIngest implements dmac.Staller: the DMAC holds off while the PATH3
// queue is full.
func (g *GIF) CanIngest() bool {
	if g.path3Masked() || (g.active != PathNone && g.active != Path3) {
		return len(g.fifo) < fifoCapacity
	}
	return true
}

// drainFIFO replays queued PATH3 quadwords once the path is unmasked and
// free.
func (g *GIF) drainFIFO() {
	for len(g.fifo) > 0 && !g.path3Masked() && (g.active == PathNone || g.active == Path3) {
		q := g.fifo[0]
		g.fifo = g.fifo[1:]
		if err := g.consume(Path3, q[0], q[1]); err != nil {
			logger.Logf("gif", "%v", err)
			return
		}
	}
}

// consume feeds one quadword from the given path through the tag state
// machine.
func (g *GIF) consume(path Path, lo, hi uint64) error {
	if g.active == PathNone {
		g.active = path
	} else if g.active != path {
		// a lower-priority path tried to barge in mid-packet
		return errors.Errorf("gif: %s submitted while %s active", path, g.active)
	}

	if !g.inTag {
		return g.beginTag(lo, hi)
	}

	switch g.tag.format {
	case FormatPacked:
		return g.consumePacked(lo, hi)
	case FormatReglist:
		return g.consumeReglist(lo, hi)
	case FormatImage, FormatDisable:
		if g.tag.format == FormatImage {
			if err := g.gs.WriteRegister(regHWREG, lo); err != nil {
				return err
			}
			if err := g.gs.WriteRegister(regHWREG, hi); err != nil {
				return err
			}
		}
		g.tag.dataLeft--
		if g.tag.dataLeft == 0 {
			g.endTag()
		}
		return nil
	default:
		return errors.Errorf(errors.UnrecognisedGIFFormat, g.tag.format)
	}
}

// beginTag parses a 128-bit GIFtag and primes the payload counters. Q is
// reset to 1.0 on every tag boundary.
func (g *GIF) beginTag(lo, hi uint64) error {
	g.tag = tag{
		nloop:  int(lo & 0x7FFF),
		eop:    lo&(1<<15) != 0,
		pre:    lo&(1<<46) != 0,
		prim:   (lo >> 47) & 0x7FF,
		format: int(lo>>58) & 0x3,
		nreg:   int(lo>>60) & 0xF,
		regs:   hi,
	}
	if g.tag.nreg == 0 {
		g.tag.nreg = 16
	}
	g.tag.dataLeft = g.tag.nloop
	g.tag.regsLeft = g.tag.nreg
	g.q = qOne

	if g.tag.pre {
		if err := g.gs.WriteRegister(regPRIM, g.tag.prim); err != nil {
			return err
		}
	}

	if g.tag.nloop == 0 {
		// nothing to consume; the tag only carried PRIM/EOP
		g.endTag()
		return nil
	}
	g.inTag = true
	return nil
}

// endTag returns to expect-tag state and, on EOP, releases arbitration.
func (g *GIF) endTag() {
	g.inTag = false
	if g.tag.eop {
		g.active = PathNone
		g.drainFIFO()
	}
}

// consumePacked decodes one PACKED-format quadword per the current REGS
// selector.
func (g *GIF) consumePacked(lo, hi uint64) error {
	var err error

	switch g.tag.selector() {
	case selPRIM:
		err = g.gs.WriteRegister(regPRIM, lo)
	case selRGBAQ:
		r := lo & 0xFF
		gg := (lo >> 32) & 0xFF
		b := hi & 0xFF
		a := (hi >> 32) & 0xFF
		err = g.gs.WriteRegister(regRGBAQ, r|gg<<8|b<<16|a<<24|uint64(g.q)<<32)
	case selST:
		g.q = uint32(hi)
		err = g.gs.WriteRegister(regST, lo)
	case selUV:
		u := lo & 0x3FFF
		v := (lo >> 32) & 0x3FFF
		err = g.gs.WriteRegister(regUV, u|v<<16)
	case selXYZF2:
		x := lo & 0xFFFF
		y := (lo >> 32) & 0xFFFF
		z := (hi >> 4) & 0xFFFFFF
		f := (hi >> 36) & 0xFF
		reg := uint8(regXYZF2)
		if hi&(1<<47) != 0 { // ADC: no drawing kick
			reg = regXYZF3
		}
		err = g.gs.WriteRegister(reg, x|y<<16|z<<32|f<<56)
	case selXYZ2:
		// same X/Y/Z layout as XYZF2, minus the fog byte
		x := lo & 0xFFFF
		y := (lo >> 32) & 0xFFFF
		z := (hi >> 4) & 0xFFFFFF
		reg := uint8(regXYZ2)
		if hi&(1<<47) != 0 {
			reg = regXYZ3
		}
		err = g.gs.WriteRegister(reg, x|y<<16|z<<32)
	case selTEX01:
		err = g.gs.WriteRegister(regTEX01, lo)
	case selTEX02:
		err = g.gs.WriteRegister(regTEX02, lo)
	case selCLAMP1:
		err = g.gs.WriteRegister(regCLAMP1, lo)
	case selCLAMP2:
		err = g.gs.WriteRegister(regCLAMP2, lo)
	case selFOG:
		err = g.gs.WriteRegister(regFOG, (hi>>36&0xFF)<<56)
	case selXYZF3:
		err = g.gs.WriteRegister(regXYZF3, lo)
	case selXYZ3:
		err = g.gs.WriteRegister(regXYZ3, lo)
	case selAD:
		err = g.gs.WriteRegister(uint8(hi&0xFF), lo)
	case selNOP:
		// consumed, no write
	default:
		logger.Logf("gif", "reserved packed selector %#x ignored", g.tag.selector())
	}
	if err != nil {
		return err
	}

	if g.tag.advanceReg() {
		g.endTag()
	}
	return nil
}

// GIF register offsets, relative to the register block at 0x10003000.
const (
	offCTRL = 0x00
	offMODE = 0x10
	offSTAT = 0x20
)

// ReadWord exposes the GIF's CTRL/MODE/STAT registers to the system bus
// (the memory aggregate routes the 0x10003000 block here).
func (g *GIF) ReadWord(offset uint32) (uint32, error) {
	switch offset {
	case offMODE:
		return g.mode, nil
	case offSTAT:
		var stat uint32
		if g.path3ModeMask {
			stat |= 1 // M3R
		}
		if g.path3VIFMask {
			stat |= 1 << 1 // M3P
		}
		if g.active != PathNone {
			stat |= uint32(g.active) << 10 // APATH
		}
		stat |= uint32(len(g.fifo)) << 24 // FQC
		return stat, nil
	default:
		return 0, nil
	}
}

// WriteWord services CTRL (reset/pause) and MODE (the explicit PATH3 mask).
func (g *GIF) WriteWord(offset uint32, value uint32) error {
	switch offset {
	case offCTRL:
		if value&1 != 0 {
			g.Reset()
		}
	case offMODE:
		g.mode = value
		g.path3ModeMask = value&1 != 0
		if !g.path3ModeMask {
			g.drainFIFO()
		}
	}
	return nil
}

// consumeReglist writes both 64-bit halves to the registers the REGS
// descriptor names. When NREG x NLOOP is odd, the final quadword's upper
// half is discarded.
func (g *GIF) consumeReglist(lo, hi uint64) error {
	if err := g.gs.WriteRegister(uint8(g.tag.selector()), lo); err != nil {
		return err
	}
	if g.tag.advanceReg() {
		g.endTag()
		return nil
	}
	if err := g.gs.WriteRegister(uint8(g.tag.selector()), hi); err != nil {
		return err
	}
	if g.tag.advanceReg() {
		g.endTag()
	}
	return nil
}
