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

// Package gs implements the Graphics Synthesizer: the privileged
// (display/CRTC) and drawing register banks, the three-entry vertex queue
// and its kick protocol, the software rasterizer, the block-swizzled 4 MiB
// local memory, and the host/local transfer engine. The Engine type wraps
// a GS in the consumer goroutine and message ring the concurrency model
// calls for; the GS type itself is synchronous and single-owner.
package gs

import (
	"math"

	"github.com/retroswitch/emotion2k/errors"
	"github.com/retroswitch/emotion2k/logger"
)

// Drawing register numbers (the 8-bit addresses used by GIFtags and A+D
// writes).
const (
	RegPRIM       = 0x00
	RegRGBAQ      = 0x01
	RegST         = 0x02
	RegUV         = 0x03
	RegXYZF2      = 0x04
	RegXYZ2       = 0x05
	RegTEX01      = 0x06
	RegTEX02      = 0x07
	RegCLAMP1     = 0x08
	RegCLAMP2     = 0x09
	RegFOG        = 0x0A
	RegXYZF3      = 0x0C
	RegXYZ3       = 0x0D
	RegTEX11      = 0x14
	RegTEX12      = 0x15
	RegTEX21      = 0x16
	RegTEX22      = 0x17
	RegXYOFFSET1  = 0x18
	RegXYOFFSET2  = 0x19
	RegPRMODECONT = 0x1A
	RegPRMODE     = 0x1B
	RegTEXCLUT    = 0x1C
	RegSCANMSK    = 0x22
	RegTEXA       = 0x3B
	RegFOGCOL     = 0x3D
	RegTEXFLUSH   = 0x3F
	RegSCISSOR1   = 0x40
	RegSCISSOR2   = 0x41
	RegALPHA1     = 0x42
	RegALPHA2     = 0x43
	RegDIMX       = 0x44
	RegDTHE       = 0x45
	RegCOLCLAMP   = 0x46
	RegTEST1      = 0x47
	RegTEST2      = 0x48
	RegPABE       = 0x49
	RegFBA1       = 0x4A
	RegFBA2       = 0x4B
	RegFRAME1     = 0x4C
	RegFRAME2     = 0x4D
	RegZBUF1      = 0x4E
	RegZBUF2      = 0x4F
	RegBITBLTBUF  = 0x50
	RegTRXPOS     = 0x51
	RegTRXREG     = 0x52
	RegTRXDIR     = 0x53
	RegHWREG      = 0x54
	RegSIGNAL     = 0x60
	RegFINISH     = 0x61
	RegLABEL      = 0x62
)

// Privileged register offsets within the 0x12000000 region.
const (
	PrivPMODE    = 0x0000
	PrivSMODE2   = 0x0020
	PrivDISPFB1  = 0x0070
	PrivDISPLAY1 = 0x0080
	PrivDISPFB2  = 0x0090
	PrivDISPLAY2 = 0x00A0
	PrivBGCOLOR  = 0x00E0
	PrivCSR      = 0x1000
	PrivIMR      = 0x1010
	PrivBUSDIR   = 0x1040
	PrivSIGLBLID = 0x1080
)

// CSR status bits.
const (
	csrSIGNAL = 1 << 0
	csrFINISH = 1 << 1
	csrVSYNC  = 1 << 3
	csrRESET  = 1 << 9
)

// Vertex is one entry of the vertex queue: screen position in 4-bit fixed
// point, 24/32-bit depth, and the colour/texture attributes snapshotted at
// kick time.
type Vertex struct {
	X, Y int32
	Z    uint32

	R, G, B, A uint8
	Q          float32
	S, T       float32
	U, V       uint32
	Fog        uint8
}

// GS is the Graphics Synthesizer's complete architectural state.
type GS struct {
	Mem *LocalMem

	ctx [2]Context

	prim       PRIM
	prmode     PRIM
	prmodecont uint64

	// current attribute state snapshotted into vertices at kick time
	r, g, b, a uint8
	q          float32
	s, t       float32
	u, v       uint32
	fog        uint8

	working Vertex

	vq    [3]Vertex
	vqLen int

	texclut TEXCLUT
	texa    uint64
	fogcol  uint64
	dimx    uint64
	dthe    uint64
	colclamp uint64
	pabe    uint64
	scanmsk uint64

	trx transferState

	// privileged bank
	pmode    uint64
	smode2   uint64
	dispfb   [2]uint64
	display  [2]uint64
	bgcolor  uint64
	csr      uint64
	imr      uint64
	busdir   uint64
	siglblid uint64
}

// New builds a GS with zeroed local memory and idle transfer state.
func New() *GS {
	g := &GS{Mem: &LocalMem{}}
	g.trx.dir = trxIdle
	g.q = 1.0
	return g
}

// Reset returns all register and queue state to power-on values. Local
// memory contents survive, matching hardware.
func (g *GS) Reset() {
	mem := g.Mem
	*g = GS{Mem: mem}
	g.trx.dir = trxIdle
	g.q = 1.0
}

// Prim returns the decoded PRIM register, for tests and the debugger.
func (g *GS) Prim() PRIM { return g.prim }

// Context returns a copy of drawing context i (0 or 1).
func (g *GS) Context(i int) Context { return g.ctx[i&1] }

// IMR returns the interrupt mask register, for the BIOS-HLE GsGetIMR stub.
func (g *GS) IMR() uint64 { return g.imr }

// SetIMR sets the interrupt mask register (GsPutIMR).
func (g *GS) SetIMR(v uint64) { g.imr = v }

// SetCRT applies a SetGsCrt-style display mode request.
func (g *GS) SetCRT(interlaced bool, mode int, frameMode bool) {
	g.smode2 = 0
	if interlaced {
		g.smode2 |= 1
	}
	if frameMode {
		g.smode2 |= 2
	}
}

// WriteRegister services one drawing-register write; it is the surface the
// GIF dispatches into.
func (g *GS) WriteRegister(reg uint8, v uint64) error {
	switch reg {
	case RegPRIM:
		g.prim = decodePRIM(v)
		g.vqLen = 0
	case RegRGBAQ:
		g.r = uint8(v)
		g.g = uint8(v >> 8)
		g.b = uint8(v >> 16)
		g.a = uint8(v >> 24)
		g.q = math.Float32frombits(uint32(v >> 32))
	case RegST:
		g.s = math.Float32frombits(uint32(v))
		g.t = math.Float32frombits(uint32(v >> 32))
	case RegUV:
		g.u = uint32(v) & 0x3FFF
		g.v = uint32(v>>16) & 0x3FFF

	case RegXYZF2, RegXYZF3:
		g.working.X = int32(v & 0xFFFF)
		g.working.Y = int32(v >> 16 & 0xFFFF)
		g.working.Z = uint32(v>>32) & 0xFFFFFF
		g.fog = uint8(v >> 56)
		return g.vertexKick(reg == RegXYZF2)
	case RegXYZ2, RegXYZ3:
		g.working.X = int32(v & 0xFFFF)
		g.working.Y = int32(v >> 16 & 0xFFFF)
		g.working.Z = uint32(v >> 32)
		return g.vertexKick(reg == RegXYZ2)

	case RegTEX01:
		g.ctx[0].Tex0 = decodeTEX0(v)
	case RegTEX02:
		g.ctx[1].Tex0 = decodeTEX0(v)
	case RegCLAMP1:
		g.ctx[0].Clamp = decodeCLAMP(v)
	case RegCLAMP2:
		g.ctx[1].Clamp = decodeCLAMP(v)
	case RegFOG:
		g.fog = uint8(v >> 56)

	case RegTEX11:
		g.ctx[0].Tex1 = v
	case RegTEX12:
		g.ctx[1].Tex1 = v
	case RegTEX21, RegTEX22:
		// TEX2 rewrites only the CLUT-related fields of TEX0
		c := &g.ctx[reg-RegTEX21]
		t := decodeTEX0(v)
		c.Tex0.Format = t.Format
		c.Tex0.CLUTBase = t.CLUTBase
		c.Tex0.CLUTFormat = t.CLUTFormat
		c.Tex0.CSM2 = t.CSM2
		c.Tex0.CLUTOffset = t.CLUTOffset

	case RegXYOFFSET1:
		g.ctx[0].XYOffset = decodeXYOFFSET(v)
	case RegXYOFFSET2:
		g.ctx[1].XYOffset = decodeXYOFFSET(v)
	case RegPRMODECONT:
		g.prmodecont = v
	case RegPRMODE:
		g.prmode = decodePRIM(v &^ 0x7)
	case RegTEXCLUT:
		g.texclut = decodeTEXCLUT(v)
	case RegSCANMSK:
		g.scanmsk = v
	case RegTEXA:
		g.texa = v
	case RegFOGCOL:
		g.fogcol = v
	case RegTEXFLUSH:
		// texture caching is not modelled; the flush is a no-op

	case RegSCISSOR1:
		g.ctx[0].Scissor = decodeSCISSOR(v)
	case RegSCISSOR2:
		g.ctx[1].Scissor = decodeSCISSOR(v)
	case RegALPHA1:
		g.ctx[0].Alpha = decodeALPHA(v)
	case RegALPHA2:
		g.ctx[1].Alpha = decodeALPHA(v)
	case RegDIMX:
		g.dimx = v
	case RegDTHE:
		g.dthe = v
	case RegCOLCLAMP:
		g.colclamp = v
	case RegTEST1:
		g.ctx[0].Test = decodeTEST(v)
	case RegTEST2:
		g.ctx[1].Test = decodeTEST(v)
	case RegPABE:
		g.pabe = v
	case RegFBA1:
		g.ctx[0].FBA = uint32(v & 1)
	case RegFBA2:
		g.ctx[1].FBA = uint32(v & 1)
	case RegFRAME1:
		g.ctx[0].Frame = decodeFRAME(v)
	case RegFRAME2:
		g.ctx[1].Frame = decodeFRAME(v)
	case RegZBUF1:
		g.ctx[0].ZBuf = decodeZBUF(v)
	case RegZBUF2:
		g.ctx[1].ZBuf = decodeZBUF(v)

	case RegBITBLTBUF:
		g.trx.bitbltbuf = v
	case RegTRXPOS:
		g.trx.trxpos = v
	case RegTRXREG:
		g.trx.trxreg = v
	case RegTRXDIR:
		return g.beginTransfer(int(v & 0x3))
	case RegHWREG:
		g.hostWrite(v)

	case RegSIGNAL:
		g.siglblid = g.siglblid&0xFFFFFFFF00000000 | v&0xFFFFFFFF
		g.csr |= csrSIGNAL
	case RegFINISH:
		g.csr |= csrFINISH
	case RegLABEL:
		g.siglblid = g.siglblid&0xFFFFFFFF | v<<32

	default:
		logger.Logf("gs", "%v", errors.Errorf(errors.UnrecognisedGSRegister, int(reg)))
	}
	return nil
}

// WriteDouble implements the privileged register bank (the system bus
// routes the 0x12000000 region here).
func (g *GS) WriteDouble(offset uint32, v uint64) error {
	switch offset & 0xFFFF {
	case PrivPMODE:
		g.pmode = v
	case PrivSMODE2:
		g.smode2 = v
	case PrivDISPFB1:
		g.dispfb[0] = v
	case PrivDISPLAY1:
		g.display[0] = v
	case PrivDISPFB2:
		g.dispfb[1] = v
	case PrivDISPLAY2:
		g.display[1] = v
	case PrivBGCOLOR:
		g.bgcolor = v
	case PrivCSR:
		// writing 1 clears the latched SIGNAL/FINISH events; the reset
		// bit reinitialises the drawing state
		g.csr &^= v & (csrSIGNAL | csrFINISH | csrVSYNC)
		if v&csrRESET != 0 {
			g.Reset()
		}
	case PrivIMR:
		g.imr = v
	case PrivBUSDIR:
		g.busdir = v
	case PrivSIGLBLID:
		g.siglblid = v
	default:
		logger.Logf("gs", "write to unrecognised privileged offset %#04x", offset)
	}
	return nil
}

// ReadDouble implements the privileged register bank's read side.
func (g *GS) ReadDouble(offset uint32) (uint64, error) {
	switch offset & 0xFFFF {
	case PrivPMODE:
		return g.pmode, nil
	case PrivSMODE2:
		return g.smode2, nil
	case PrivDISPFB1:
		return g.dispfb[0], nil
	case PrivDISPLAY1:
		return g.display[0], nil
	case PrivDISPFB2:
		return g.dispfb[1], nil
	case PrivDISPLAY2:
		return g.display[1], nil
	case PrivBGCOLOR:
		return g.bgcolor, nil
	case PrivCSR:
		// report the FIFO empty and no-reset state boot code polls for
		return g.csr | 1<<13, nil
	case PrivIMR:
		return g.imr, nil
	case PrivBUSDIR:
		return g.busdir, nil
	case PrivSIGLBLID:
		return g.siglblid, nil
	default:
		return 0, nil
	}
}

// SetVSync latches the vertical-sync interrupt event in CSR; called by the
// frame pacing loop.
func (g *GS) SetVSync() {
	g.csr |= csrVSYNC
}
