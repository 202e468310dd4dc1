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

// Package sdlimgui is the immediate-mode register inspector: a second SDL
// window with an OpenGL 2.1 context, drawing Dear ImGui tables of the EE
// register file, COP0, the DMAC channels, and the active GS drawing
// context. It refreshes once per call to Service, normally once per
// scanout.
package sdlimgui

import (
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/retroswitch/emotion2k/errors"
	"github.com/retroswitch/emotion2k/hardware"
)

// Inspector is the debug overlay window.
type Inspector struct {
	console *hardware.PS2

	window    *sdl.Window
	glContext sdl.GLContext

	imguiCtx *imgui.Context
	io       imgui.IO
	renderer *gl21

	lastTime uint64
	open     bool
}

// NewInspector creates the inspector window. Must be called, and
// subsequently Serviced, from the main goroutine.
func NewInspector(console *hardware.PS2) (*Inspector, error) {
	insp := &Inspector{console: console}

	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 2)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)

	var err error
	insp.window, err = sdl.CreateWindow("emotion2k inspector",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		560, 720, sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, errors.Errorf("sdlimgui: %v", err)
	}

	insp.glContext, err = insp.window.GLCreateContext()
	if err != nil {
		insp.window.Destroy()
		return nil, errors.Errorf("sdlimgui: %v", err)
	}

	insp.imguiCtx = imgui.CreateContext(nil)
	insp.io = imgui.CurrentIO()

	insp.renderer = newRenderer()
	if err := insp.renderer.start(insp.io); err != nil {
		insp.Destroy()
		return nil, err
	}

	insp.open = true
	return insp, nil
}

// Destroy releases the window, GL context and imgui context.
func (insp *Inspector) Destroy() {
	if insp.renderer != nil {
		insp.renderer.destroy()
	}
	if insp.imguiCtx != nil {
		insp.imguiCtx.Destroy()
	}
	if insp.glContext != nil {
		sdl.GLDeleteContext(insp.glContext)
	}
	if insp.window != nil {
		_ = insp.window.Destroy()
	}
}

// Service draws one frame of the inspector. Returns false once the window
// has been closed.
func (insp *Inspector) Service() bool {
	if !insp.open {
		return false
	}

	if err := insp.window.GLMakeCurrent(insp.glContext); err != nil {
		return false
	}

	w, h := insp.window.GetSize()
	insp.io.SetDisplaySize(imgui.Vec2{X: float32(w), Y: float32(h)})

	// imgui wants wall-clock delta between frames
	now := sdl.GetPerformanceCounter()
	if insp.lastTime > 0 {
		insp.io.SetDeltaTime(float32(now-insp.lastTime) / float32(sdl.GetPerformanceFrequency()))
	} else {
		insp.io.SetDeltaTime(1.0 / 60.0)
	}
	insp.lastTime = now

	mx, my, buttons := sdl.GetMouseState()
	insp.io.SetMousePosition(imgui.Vec2{X: float32(mx), Y: float32(my)})
	insp.io.SetMouseButtonDown(0, buttons&sdl.ButtonLMask() != 0)
	insp.io.SetMouseButtonDown(1, buttons&sdl.ButtonRMask() != 0)

	imgui.NewFrame()
	insp.drawWindows()
	imgui.Render()

	fbw, fbh := insp.window.GLGetDrawableSize()
	insp.renderer.preRender()
	insp.renderer.render(float32(w), float32(h), float32(fbw), float32(fbh))
	insp.window.GLSwap()

	return true
}

// WindowID identifies the inspector's window within the shared SDL event
// queue; the primary GUI loop forwards close requests for it to Close.
func (insp *Inspector) WindowID() uint32 {
	id, err := insp.window.GetID()
	if err != nil {
		return 0
	}
	return id
}

// Close hides the inspector; subsequent Service calls return false.
func (insp *Inspector) Close() {
	insp.open = false
}
