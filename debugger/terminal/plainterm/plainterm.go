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

// Package plainterm implements the Terminal interface for the debugger.
// It is as simple as simple can be and offers no special features: the
// terminal stays in whatever mode it started in, probably cooked mode.
package plainterm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/retroswitch/emotion2k/debugger/terminal"
)

// PlainTerminal is the default, most basic terminal interface.
type PlainTerminal struct {
	input    *bufio.Scanner
	output   io.Writer
	silenced bool
}

// Initialise implements terminal.Terminal.
func (pt *PlainTerminal) Initialise() error {
	pt.input = bufio.NewScanner(os.Stdin)
	pt.output = os.Stdout
	return nil
}

// CleanUp implements terminal.Terminal.
func (pt *PlainTerminal) CleanUp() {
}

// Silence implements terminal.Terminal.
func (pt *PlainTerminal) Silence(silenced bool) {
	pt.silenced = silenced
}

// TermPrintLine implements terminal.Output.
func (pt *PlainTerminal) TermPrintLine(style terminal.Style, s string) {
	if pt.silenced && style != terminal.StyleError {
		return
	}

	switch style {
	case terminal.StyleError:
		s = fmt.Sprintf("* %s", s)
	case terminal.StyleHelp:
		s = fmt.Sprintf("  %s", s)
	}

	fmt.Fprintln(pt.output, s)
}

// TermRead implements terminal.Input. The ReadEvents channels are not
// monitored: a blocked Scanner cannot be interrupted without raw-mode
// support, which is the colorterm implementation's whole reason to exist.
func (pt *PlainTerminal) TermRead(prompt terminal.Prompt, _ *terminal.ReadEvents) (string, error) {
	if pt.silenced {
		return "", nil
	}

	fmt.Fprint(pt.output, prompt.String())

	if !pt.input.Scan() {
		if err := pt.input.Err(); err != nil {
			return "", err
		}
		return "", terminal.UserQuit
	}
	return pt.input.Text(), nil
}

// IsInteractive implements terminal.Input.
func (pt *PlainTerminal) IsInteractive() bool {
	return true
}
