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

// Package emulation defines the emulation driver: the frame loop that
// steps the console, hands finished frames to the GUI, and services pause
// and quit requests. The interfaces at the top of the file exist mainly so
// the gui and debugger packages can talk about the emulation without a
// circular import to hardware.
package emulation

import (
	"github.com/retroswitch/emotion2k/environment"
	"github.com/retroswitch/emotion2k/hardware"
	"github.com/retroswitch/emotion2k/logger"
)

// State indicates the emulation's state.
type State int

// List of possible emulation states.
const (
	Initialising State = iota
	Running
	Paused
	Stepping
	Ending
)

// Console is a minimal abstraction of the console hardware. Exists mainly
// to avoid a circular import to the hardware package. The only likely
// implementation is the hardware.PS2 type.
type Console interface {
	Step() error
	RunFrame() (pix []byte, w, h int, err error)
}

// Display receives finished frames. The only likely implementation is
// gui/sdl's GUI; the headless gui.Stub does not implement it.
type Display interface {
	SetFrame(pix []byte, w, h int) error
}

// Emulation defines the public functions a GUI implementation needs to
// interface with the underlying emulator.
type Emulation interface {
	State() State
	Pause(set bool)
	End()
}

// Emulator is the concrete driver: it owns the console and the frame loop.
type Emulator struct {
	Console *hardware.PS2
	Env     *environment.Environment

	display Display
	state   State

	// pause/end requests arrive from the GUI goroutine
	requests chan func()
}

// NewEmulator wires a console to a display.
func NewEmulator(console *hardware.PS2, env *environment.Environment, display Display) *Emulator {
	return &Emulator{
		Console:  console,
		Env:      env,
		display:  display,
		state:    Initialising,
		requests: make(chan func(), 8),
	}
}

// State implements Emulation. It is answered from the emulation
// goroutine's last published value and is approximate by nature.
func (emu *Emulator) State() State {
	return emu.state
}

// Pause implements Emulation.
func (emu *Emulator) Pause(set bool) {
	emu.requests <- func() {
		if set {
			emu.state = Paused
		} else {
			emu.state = Running
		}
	}
}

// End implements Emulation: the frame loop exits after the current frame.
func (emu *Emulator) End() {
	emu.requests <- func() {
		emu.state = Ending
	}
}

// Run is the frame loop. It returns when End is requested or the console
// halts on a fatal emulation error.
func (emu *Emulator) Run() error {
	emu.Console.Start()
	defer emu.Console.Stop()

	emu.state = Running

	for emu.state != Ending {
		select {
		case f := <-emu.requests:
			f()
			continue
		default:
		}

		if emu.state == Paused {
			// blocking receive: nothing to do until the next request
			f := <-emu.requests
			f()
			continue
		}

		pix, w, h, err := emu.Console.RunFrame()
		if err != nil {
			logger.Logf("emulation", "halted: %v", err)
			return err
		}

		if emu.display != nil && pix != nil {
			if err := emu.display.SetFrame(pix, w, h); err != nil {
				return err
			}
		}
	}

	return nil
}
