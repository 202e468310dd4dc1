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
	"github.com/retroswitch/emotion2k/errors"
	"github.com/retroswitch/emotion2k/gui"
)

// serviceRequest runs on the GUI goroutine and applies one feature
// request.
func (g *GUI) serviceRequest(fr featureRequest) error {
	switch fr.request {
	case gui.ReqSetVisibility:
		if len(fr.args) != 1 {
			return errors.Errorf(gui.UnsupportedGUIFeature, fr.request)
		}
		if visible, ok := fr.args[0].(bool); ok && visible {
			g.window.Show()
		} else {
			g.window.Hide()
		}
		return nil

	case gui.ReqSetFrame:
		if len(fr.args) != 1 {
			return errors.Errorf(gui.UnsupportedGUIFeature, fr.request)
		}
		frame, ok := fr.args[0].(gui.Frame)
		if !ok {
			return errors.Errorf(gui.UnsupportedGUIFeature, fr.request)
		}
		g.screen.setFrame(frame.Pix, frame.Width, frame.Height)
		return nil

	case gui.ReqSetEmulationState:
		// nothing to reflect yet; the window title stays constant
		return nil

	case gui.ReqEnd:
		g.quit = true
		return nil

	default:
		return errors.Errorf(gui.UnsupportedGUIFeature, fr.request)
	}
}

// SetFrame implements emulation.Display directly, bypassing the feature
// request path for the per-frame hot path.
func (g *GUI) SetFrame(pix []byte, w, h int) error {
	g.screen.setFrame(pix, w, h)
	return nil
}
