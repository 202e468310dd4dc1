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

package gs

// TEX0 is a context's decoded texture descriptor.
type TEX0 struct {
	Base   uint32 // byte address of texture data
	Width  uint32 // buffer width in pixels
	Format int

	// log2 dimensions as written; TexW/TexH are the expanded pixel sizes
	TexW uint32
	TexH uint32

	UseAlpha bool
	Function int // 0 modulate, 1 decal, 2 highlight, 3 highlight2

	CLUTBase   uint32 // byte address of CLUT data
	CLUTFormat int
	CSM2       bool
	CLUTOffset uint32 // entry offset within the CLUT
}

func decodeTEX0(v uint64) TEX0 {
	return TEX0{
		Base:       uint32(v&0x3FFF) * 256,
		Width:      uint32(v>>14&0x3F) * 64,
		Format:     int(v >> 20 & 0x3F),
		TexW:       1 << (v >> 26 & 0xF),
		TexH:       1 << (v >> 30 & 0xF),
		UseAlpha:   v>>34&1 != 0,
		Function:   int(v >> 35 & 0x3),
		CLUTBase:   uint32(v>>37&0x3FFF) * 256,
		CLUTFormat: int(v >> 51 & 0xF),
		CSM2:       v>>55&1 != 0,
		CLUTOffset: uint32(v>>56&0x1F) * 16,
	}
}

// CLAMP is a context's texture wrap mode.
type CLAMP struct {
	WrapS int // 0 repeat, 1 clamp, 2 region clamp, 3 region repeat
	WrapT int
	MinU  uint32
	MaxU  uint32
	MinV  uint32
	MaxV  uint32
}

func decodeCLAMP(v uint64) CLAMP {
	return CLAMP{
		WrapS: int(v & 0x3),
		WrapT: int(v >> 2 & 0x3),
		MinU:  uint32(v >> 4 & 0x3FF),
		MaxU:  uint32(v >> 14 & 0x3FF),
		MinV:  uint32(v >> 24 & 0x3FF),
		MaxV:  uint32(v >> 34 & 0x3FF),
	}
}

// FRAME is a context's framebuffer descriptor.
type FRAME struct {
	Base   uint32 // byte address
	Width  uint32 // pixels
	Format int
	Mask   uint32 // per-bit write mask (set bits are NOT updated)
}

func decodeFRAME(v uint64) FRAME {
	return FRAME{
		Base:   uint32(v&0x1FF) * pageBytes,
		Width:  uint32(v>>16&0x3F) * 64,
		Format: int(v >> 24 & 0x3F),
		Mask:   uint32(v >> 32),
	}
}

// ZBUF is a context's depth-buffer descriptor.
type ZBUF struct {
	Base     uint32
	Format   int
	NoUpdate bool
}

func decodeZBUF(v uint64) ZBUF {
	return ZBUF{
		Base:     uint32(v&0x1FF) * pageBytes,
		Format:   int(v>>24&0xF) | 0x30,
		NoUpdate: v>>32&1 != 0,
	}
}

// Alpha-test methods.
const (
	ATestNever = iota
	ATestAlways
	ATestLess
	ATestLEqual
	ATestEqual
	ATestGEqual
	ATestGreater
	ATestNotEqual
)

// Alpha-test fail actions.
const (
	AFailKeep    = iota // skip the pixel entirely
	AFailFBOnly         // update frame, skip z
	AFailZBOnly         // update z, skip frame
	AFailRGBOnly        // update RGB, skip z and alpha
)

// Depth-test methods.
const (
	ZTestNever = iota
	ZTestAlways
	ZTestGEqual
	ZTestGreater
)

// TEST is a context's per-pixel test configuration.
type TEST struct {
	AlphaTest     bool
	AlphaMethod   int
	AlphaRef      uint32
	AlphaFail     int
	DestAlphaTest bool
	DestAlphaMode bool
	DepthTest     bool
	DepthMethod   int
}

func decodeTEST(v uint64) TEST {
	return TEST{
		AlphaTest:     v&1 != 0,
		AlphaMethod:   int(v >> 1 & 0x7),
		AlphaRef:      uint32(v >> 4 & 0xFF),
		AlphaFail:     int(v >> 12 & 0x3),
		DestAlphaTest: v>>14&1 != 0,
		DestAlphaMode: v>>15&1 != 0,
		DepthTest:     v>>16&1 != 0,
		DepthMethod:   int(v >> 17 & 0x3),
	}
}

// ALPHA is a context's blend specification: out = ((A - B) * C >> 7) + D.
type ALPHA struct {
	A, B, C, D int
	Fix        uint32
}

func decodeALPHA(v uint64) ALPHA {
	return ALPHA{
		A:   int(v & 0x3),
		B:   int(v >> 2 & 0x3),
		C:   int(v >> 4 & 0x3),
		D:   int(v >> 6 & 0x3),
		Fix: uint32(v >> 32 & 0xFF),
	}
}

// SCISSOR is a context's scissor box in pixel coordinates, inclusive.
type SCISSOR struct {
	X0, X1 uint32
	Y0, Y1 uint32
}

func decodeSCISSOR(v uint64) SCISSOR {
	return SCISSOR{
		X0: uint32(v & 0x7FF),
		X1: uint32(v >> 16 & 0x7FF),
		Y0: uint32(v >> 32 & 0x7FF),
		Y1: uint32(v >> 48 & 0x7FF),
	}
}

// XYOFFSET is a context's screen-space offset in 4-bit fixed point.
type XYOFFSET struct {
	X uint32
	Y uint32
}

func decodeXYOFFSET(v uint64) XYOFFSET {
	return XYOFFSET{
		X: uint32(v & 0xFFFF),
		Y: uint32(v >> 32 & 0xFFFF),
	}
}

// Context is one of the two independent drawing contexts selected
// per-primitive by PRIM.Context.
type Context struct {
	Tex0     TEX0
	Clamp    CLAMP
	Tex1     uint64 // filtering/mipmap controls; held raw, sampling is point-sampled
	XYOffset XYOFFSET
	Scissor  SCISSOR
	Alpha    ALPHA
	Test     TEST
	FBA      uint32
	Frame    FRAME
	ZBuf     ZBUF
}

// PRIM is the decoded primitive-attribute register. The same layout
// decodes the PRMODE register (whose type field is ignored).
type PRIM struct {
	Type         int
	Gouraud      bool
	Textured     bool
	Fog          bool
	AlphaBlend   bool
	Antialias    bool
	UseUV        bool // FST: UV fixed-point addressing instead of ST/Q
	Context      int  // 0 or 1
	FixFragments bool
}

func decodePRIM(v uint64) PRIM {
	return PRIM{
		Type:         int(v & 0x7),
		Gouraud:      v>>3&1 != 0,
		Textured:     v>>4&1 != 0,
		Fog:          v>>5&1 != 0,
		AlphaBlend:   v>>6&1 != 0,
		Antialias:    v>>7&1 != 0,
		UseUV:        v>>8&1 != 0,
		Context:      int(v >> 9 & 0x1),
		FixFragments: v>>10&1 != 0,
	}
}

// TEXCLUT describes the palette strip used when TEX0.CSM2 is set.
type TEXCLUT struct {
	Width   uint32 // pixels
	OffsetU uint32
	OffsetV uint32
}

func decodeTEXCLUT(v uint64) TEXCLUT {
	return TEXCLUT{
		Width:   uint32(v&0x3F) * 64,
		OffsetU: uint32(v>>6&0x3F) * 16,
		OffsetV: uint32(v >> 12 & 0x3FF),
	}
}

// activeAttributes resolves the attribute source for the next primitive:
// when PRMODECONT.AC is set the last-written PRIM register supplies the
// shading/texture/fog/blend attributes; when clear, PRMODE supplies them
// (with PRIM still supplying the primitive type).
func (g *GS) activeAttributes() PRIM {
	if g.prmodecont&1 != 0 {
		return g.prim
	}
	attr := g.prmode
	attr.Type = g.prim.Type
	return attr
}
