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

// Package terminal defines the operations required for the debugger's
// command-line interface. The two implementations are plainterm (cooked
// mode, no frills) and colorterm (raw mode with line editing and colour).
package terminal

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroswitch/emotion2k/gui"
)

// Input defines the operations required by an interface that allows input.
type Input interface {
	// TermRead returns the next line of user input. If possible the
	// implementation should regularly check the ReadEvents channels for
	// activity while waiting for keyboard input.
	TermRead(prompt Prompt, events *ReadEvents) (string, error)

	// IsInteractive reports whether input arrives from a real user rather
	// than a script.
	IsInteractive() bool
}

// Sentinel errors controlling program exit.
var (
	UserSignal    = errors.New("user signal")
	UserQuit      = fmt.Errorf("%w: quit", UserSignal)
	UserInterrupt = fmt.Errorf("%w: interrupt", UserSignal)
)

// ReadEvents should be monitored during a TermRead.
type ReadEvents struct {
	// user-input events arriving from the GUI window
	GUIEvents       chan gui.Event
	GUIEventHandler func(gui.Event) error

	// signals from the operating system
	Signal        chan os.Signal
	SignalHandler func(os.Signal) error
}

// Output defines the operations required by an interface that allows
// output.
type Output interface {
	TermPrintLine(Style, string)
}

// Terminal defines the operations required by the debugger's command line
// interface.
type Terminal interface {
	Input
	Output

	// Initialise the terminal. Not all implementations need do anything.
	Initialise() error

	// CleanUp restores the terminal to its original state, if possible.
	CleanUp()

	// Silence all input and output except error messages.
	Silence(silenced bool)
}
