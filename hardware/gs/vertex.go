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

import "github.com/retroswitch/emotion2k/errors"

// Primitive types.
const (
	PrimPoint = iota
	PrimLineList
	PrimLineStrip
	PrimTriList
	PrimTriStrip
	PrimTriFan
	PrimSprite
	PrimProhibited
)

// verticesPerPrim is how many queue entries each primitive type needs
// before a kick rasterizes.
var verticesPerPrim = [8]int{1, 2, 2, 3, 3, 3, 2, 0}

// QueueLen reports the vertex queue's current fill, for tests and the
// debugger.
func (g *GS) QueueLen() int { return g.vqLen }

// vertexKick commits the working vertex: current colour/ST/UV/fog are
// snapshotted, the queue shifts down, and - if the queue now holds a full
// primitive - the rasterizer runs. drawing is false for the XYZ3/XYZF3
// variants, which insert without rasterizing.
func (g *GS) vertexKick(drawing bool) error {
	v := g.working
	v.R, v.G, v.B, v.A = g.r, g.g, g.b, g.a
	v.Q = g.q
	v.S, v.T = g.s, g.t
	v.U, v.V = g.u, g.v
	v.Fog = g.fog

	g.vq[2] = g.vq[1]
	g.vq[1] = g.vq[0]
	g.vq[0] = v
	if g.vqLen < 3 {
		g.vqLen++
	}

	attr := g.activeAttributes()
	if attr.Type == PrimProhibited {
		g.vqLen = 0
		return errors.Errorf(errors.ProhibitedPrimitive)
	}
	if g.vqLen < verticesPerPrim[attr.Type] {
		return nil
	}

	if drawing {
		g.rasterize(attr)
	}

	// queue retention per primitive type: strips keep their tail, fans
	// keep the hub vertex plus the tail
	switch attr.Type {
	case PrimLineStrip:
		g.vqLen = 1
	case PrimTriStrip:
		g.vqLen = 2
	case PrimTriFan:
		g.vq[1] = g.vq[2]
		g.vqLen = 2
	default:
		g.vqLen = 0
	}
	return nil
}

// rasterize dispatches the queue's primitive to the appropriate fill
// routine. Queue order: vq[2] is the oldest vertex, vq[0] the newest.
func (g *GS) rasterize(attr PRIM) {
	ctx := &g.ctx[attr.Context]

	switch attr.Type {
	case PrimPoint:
		g.drawPoint(ctx, attr, g.vq[0])
	case PrimLineList, PrimLineStrip:
		g.drawLine(ctx, attr, g.vq[1], g.vq[0])
	case PrimTriList, PrimTriStrip, PrimTriFan:
		g.drawTriangle(ctx, attr, g.vq[2], g.vq[1], g.vq[0])
	case PrimSprite:
		g.drawSprite(ctx, attr, g.vq[1], g.vq[0])
	}
}
