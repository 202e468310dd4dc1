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

// Package sdl is the windowed GUI: an SDL2 window with a streaming texture
// fed by the emulation's scanout frames. All SDL calls happen on the
// goroutine that runs Service (the main goroutine); feature requests from
// the emulation goroutine cross over on a channel.
package sdl

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/retroswitch/emotion2k/errors"
	"github.com/retroswitch/emotion2k/gui"
	"github.com/retroswitch/emotion2k/gui/display"
	"github.com/retroswitch/emotion2k/logger"
)

// featureRequest carries a SetFeature call across to the service
// goroutine.
type featureRequest struct {
	request gui.FeatureReq
	args    []gui.FeatureReqData
}

// GUI is the SDL implementation of the gui.GUI interface.
type GUI struct {
	prefs *display.Preferences

	window   *sdl.Window
	renderer *sdl.Renderer
	screen   *screen

	events   chan gui.Event
	requests chan featureRequest

	// AuxWindowClose is called when a close request arrives for a window
	// this GUI doesn't own (the imgui inspector shares the event queue).
	AuxWindowClose func(windowID uint32)

	quit bool
}

// NewGUI creates the SDL window. Must be called from the goroutine that
// will run Service.
func NewGUI(prefs *display.Preferences) (*GUI, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Errorf("sdl: %v", err)
	}

	g := &GUI{
		prefs:    prefs,
		events:   make(chan gui.Event, 8),
		requests: make(chan featureRequest, 8),
	}

	scale := int32(prefs.Scale.Get())
	if scale < 1 {
		scale = 1
	}

	var err error
	g.window, err = sdl.CreateWindow("emotion2k",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		640*scale, 448*scale,
		sdl.WINDOW_RESIZABLE|sdl.WINDOW_HIDDEN)
	if err != nil {
		return nil, errors.Errorf("sdl: %v", err)
	}

	flags := uint32(sdl.RENDERER_ACCELERATED)
	if prefs.VSync.Get() {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}
	g.renderer, err = sdl.CreateRenderer(g.window, -1, flags)
	if err != nil {
		return nil, errors.Errorf("sdl: %v", err)
	}

	g.screen = newScreen(g.renderer, prefs)

	return g, nil
}

// Destroy releases the window and its renderer.
func (g *GUI) Destroy() {
	g.screen.destroy()
	if g.renderer != nil {
		_ = g.renderer.Destroy()
	}
	if g.window != nil {
		_ = g.window.Destroy()
	}
	sdl.Quit()
}

// Events implements gui.GUI.
func (g *GUI) Events() chan gui.Event {
	return g.events
}

// SetFeature implements gui.GUI. Safe to call from any goroutine; the
// request is applied asynchronously by the next Service pass and any
// failure is logged rather than returned.
func (g *GUI) SetFeature(request gui.FeatureReq, args ...gui.FeatureReqData) error {
	g.requests <- featureRequest{request: request, args: args}
	return nil
}

// Service runs one iteration of the GUI loop: SDL event polling, feature
// request servicing, and a redraw. It returns false once the GUI has shut
// down and the loop should stop.
func (g *GUI) Service() bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			g.postEvent(gui.EventQuit)
		case *sdl.WindowEvent:
			if ev.Event == sdl.WINDOWEVENT_CLOSE {
				if id, err := g.window.GetID(); err == nil && ev.WindowID == id {
					g.postEvent(gui.EventQuit)
				} else if g.AuxWindowClose != nil {
					g.AuxWindowClose(ev.WindowID)
				}
			}
		case *sdl.KeyboardEvent:
			if ev.Type != sdl.KEYDOWN {
				break
			}
			switch ev.Keysym.Sym {
			case sdl.K_ESCAPE:
				g.postEvent(gui.EventQuit)
			case sdl.K_SPACE:
				g.postEvent(gui.EventPauseToggle)
			case sdl.K_F12:
				g.postEvent(gui.EventScreenshot)
			}
		}
	}

	select {
	case fr := <-g.requests:
		if err := g.serviceRequest(fr); err != nil {
			logger.Logf("sdl", "%v", err)
		}
	default:
	}

	if g.quit {
		return false
	}

	g.screen.render()
	g.renderer.Present()
	return true
}

// postEvent delivers an input event without ever blocking the GUI loop.
func (g *GUI) postEvent(ev gui.Event) {
	select {
	case g.events <- ev:
	default:
		logger.Log("sdl", "input event dropped: emulation not listening")
	}
}
