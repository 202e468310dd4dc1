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

package sdl

import (
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/retroswitch/emotion2k/gui/display"
)

// screen owns the streaming texture the scanout frames land in. The
// texture is recreated whenever the incoming frame geometry changes (CRTC
// mode switches do this mid-session).
type screen struct {
	renderer *sdl.Renderer
	prefs    *display.Preferences

	texture *sdl.Texture
	w, h    int

	// pending is the most recent frame not yet uploaded; crit protects it
	// against the emulation goroutine replacing it mid-upload
	crit    sync.Mutex
	pending []byte
	pw, ph  int
}

func newScreen(renderer *sdl.Renderer, prefs *display.Preferences) *screen {
	return &screen{renderer: renderer, prefs: prefs}
}

func (s *screen) destroy() {
	if s.texture != nil {
		_ = s.texture.Destroy()
	}
}

// setFrame stages a frame for the next render pass. Called from the
// emulation goroutine.
func (s *screen) setFrame(pix []byte, w, h int) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.pending = pix
	s.pw, s.ph = w, h
}

// render uploads any staged frame and draws the texture scaled to the
// window. Called from the GUI goroutine.
func (s *screen) render() {
	s.crit.Lock()
	pix, w, h := s.pending, s.pw, s.ph
	s.pending = nil
	s.crit.Unlock()

	if pix != nil {
		s.prefs.Apply(pix, w, h)

		if s.texture == nil || w != s.w || h != s.h {
			if s.texture != nil {
				_ = s.texture.Destroy()
			}
			var err error
			s.texture, err = s.renderer.CreateTexture(
				sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING,
				int32(w), int32(h))
			if err != nil {
				return
			}
			s.w, s.h = w, h
		}

		_ = s.texture.Update(nil, pix, w*4)
	}

	_ = s.renderer.SetDrawColor(0, 0, 0, 255)
	_ = s.renderer.Clear()
	if s.texture != nil {
		_ = s.renderer.Copy(s.texture, nil, nil)
	}
}
