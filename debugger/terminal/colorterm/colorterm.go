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

// Package colorterm implements the Terminal interface for the debugger
// with a raw-mode ANSI terminal: coloured output per style, a line editor
// with history, and event-channel polling while waiting for input.
package colorterm

import (
	"os"

	"github.com/retroswitch/emotion2k/debugger/terminal/colorterm/easyterm"
)

// ColorTerminal implements the debugger's Terminal interface with a basic
// ANSI terminal.
type ColorTerminal struct {
	easyterm.EasyTerm

	reader   runeReader
	silenced bool

	history    []string
	historyIdx int
}

// Initialise implements terminal.Terminal.
func (ct *ColorTerminal) Initialise() error {
	if err := ct.EasyTerm.Initialise(os.Stdin, os.Stdout); err != nil {
		return err
	}
	ct.reader = initRuneReader(os.Stdin)
	ct.historyIdx = -1
	return nil
}

// CleanUp implements terminal.Terminal.
func (ct *ColorTerminal) CleanUp() {
	ct.EasyTerm.TermPrint("\r")
	_ = ct.Flush()
	ct.EasyTerm.CleanUp()
}

// Silence implements terminal.Terminal.
func (ct *ColorTerminal) Silence(silenced bool) {
	ct.silenced = silenced
}

// IsInteractive implements terminal.Input.
func (ct *ColorTerminal) IsInteractive() bool {
	return true
}

func (ct *ColorTerminal) pushHistory(s string) {
	if s == "" {
		return
	}
	if len(ct.history) > 0 && ct.history[len(ct.history)-1] == s {
		return
	}
	ct.history = append(ct.history, s)
	if len(ct.history) > 256 {
		ct.history = ct.history[1:]
	}
}
