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

// Package gui defines the surface between the emulation and whatever is
// displaying it: a feature-request mechanism for the emulation to drive
// the display, and an event channel for user input flowing the other way.
// The concrete implementations are gui/sdl (windowed) and the Stub
// (headless).
package gui

import "github.com/retroswitch/emotion2k/errors"

// GUI defines the operations that can be performed on a user interface.
type GUI interface {
	// SetFeature requests the setting of a GUI attribute. Thread-safe.
	SetFeature(request FeatureReq, args ...FeatureReqData) error

	// Events returns the channel user-input events are delivered on.
	Events() chan Event
}

// FeatureReq identifies a settable GUI attribute.
type FeatureReq string

// FeatureReqData is the argument payload of a feature request; the
// expected underlying type is documented per request value.
type FeatureReqData interface{}

// List of valid feature requests.
const (
	// ReqSetVisibility shows or hides the window. Argument: bool.
	ReqSetVisibility FeatureReq = "ReqSetVisibility"

	// ReqSetFrame delivers a finished frame. Argument: Frame.
	ReqSetFrame FeatureReq = "ReqSetFrame"

	// ReqSetEmulationState tells the GUI what the emulation is doing.
	// Argument: int (an emulation.State value).
	ReqSetEmulationState FeatureReq = "ReqSetEmulationState"

	// ReqEnd asks the GUI to shut down. No argument.
	ReqEnd FeatureReq = "ReqEnd"
)

// Frame is the payload of a ReqSetFrame request: flat RGBA pixels.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
}

// Event is a user-input event flowing from the GUI to the emulation.
type Event int

// List of user-input events.
const (
	EventQuit Event = iota
	EventPauseToggle
	EventScreenshot
)

// UnsupportedGUIFeature is the curated error pattern returned when a GUI
// implementation does not service a request.
const UnsupportedGUIFeature = "gui: unsupported feature: %v"

// Stub is the headless GUI: requests succeed silently and no events ever
// arrive.
type Stub struct {
	events chan Event
}

// NewStub is the preferred method of initialisation for the Stub type.
func NewStub() *Stub {
	return &Stub{events: make(chan Event)}
}

// SetFeature implements the GUI interface.
func (s *Stub) SetFeature(request FeatureReq, args ...FeatureReqData) error {
	switch request {
	case ReqSetFrame, ReqSetVisibility, ReqSetEmulationState, ReqEnd:
		return nil
	default:
		return errors.Errorf(UnsupportedGUIFeature, request)
	}
}

// Events implements the GUI interface.
func (s *Stub) Events() chan Event {
	return s.events
}
