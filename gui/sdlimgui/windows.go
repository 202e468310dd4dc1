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

package sdlimgui

import (
	"fmt"

	"github.com/inkyblackness/imgui-go/v4"

	"github.com/retroswitch/emotion2k/hardware/dmac"
)

var gprNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// drawWindows builds this frame's inspector windows. The console is read
// without synchronisation: the values are a best-effort snapshot of a
// machine that is usually paused while the inspector is interesting.
func (insp *Inspector) drawWindows() {
	insp.drawEE()
	insp.drawCOP0()
	insp.drawDMAC()
	insp.drawGS()
}

func (insp *Inspector) drawEE() {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.BeginV("EE registers", nil, 0)

	c := insp.console.CPU
	imgui.Text(fmt.Sprintf("pc  %08x", c.PC))
	imgui.Separator()
	for i := 0; i < 32; i += 2 {
		imgui.Text(fmt.Sprintf("%-4s %016x   %-4s %016x",
			gprNames[i], c.GPR.GetLo64(i), gprNames[i+1], c.GPR.GetLo64(i+1)))
	}
	imgui.Separator()
	imgui.Text(fmt.Sprintf("hi   %016x   lo   %016x", c.HI, c.LO))
	imgui.Text(fmt.Sprintf("hi1  %016x   lo1  %016x", c.HI1, c.LO1))

	imgui.End()
}

func (insp *Inspector) drawCOP0() {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 420}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.BeginV("COP0", nil, 0)

	c := insp.console.COP0
	imgui.Text(fmt.Sprintf("status %08x  cause %08x", c.Status(), c.Cause()))
	imgui.Text(fmt.Sprintf("epc    %08x  count %08x", c.EPC(), c.Read(9)))
	imgui.Text(fmt.Sprintf("int pending %v  enabled %v", c.IntPending(), c.IntEnabled()))

	imgui.End()
}

func (insp *Inspector) drawDMAC() {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 520}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.BeginV("DMAC", nil, 0)

	for ch := dmac.ChVIF0; ch < dmac.NumChannels; ch++ {
		state := "idle"
		if insp.console.DMAC.ChannelBusy(ch) {
			state = "busy"
		}
		imgui.Text(fmt.Sprintf("%-9s %s", ch, state))
	}

	imgui.End()
}

func (insp *Inspector) drawGS() {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 280, Y: 520}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.BeginV("GS", nil, 0)

	core := insp.console.GS.GS()
	prim := core.Prim()
	ctx := core.Context(prim.Context)

	imgui.Text(fmt.Sprintf("prim type %d ctx %d", prim.Type, prim.Context))
	imgui.Text(fmt.Sprintf("textured %v blend %v gouraud %v", prim.Textured, prim.AlphaBlend, prim.Gouraud))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("frame %#07x w %d fmt %#02x", ctx.Frame.Base, ctx.Frame.Width, ctx.Frame.Format))
	imgui.Text(fmt.Sprintf("zbuf  %#07x fmt %#02x", ctx.ZBuf.Base, ctx.ZBuf.Format))
	imgui.Text(fmt.Sprintf("scissor %d..%d x %d..%d",
		ctx.Scissor.X0, ctx.Scissor.X1, ctx.Scissor.Y0, ctx.Scissor.Y1))
	imgui.Text(fmt.Sprintf("queue %d", core.QueueLen()))

	imgui.End()
}
