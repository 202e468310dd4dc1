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

package colorterm

import (
	"unicode"

	"github.com/retroswitch/emotion2k/debugger/terminal"
	"github.com/retroswitch/emotion2k/debugger/terminal/colorterm/easyterm"
	"github.com/retroswitch/emotion2k/debugger/terminal/colorterm/easyterm/ansi"
)

// TermRead implements terminal.Input: a raw-mode line editor with history,
// polling the ReadEvents channels between keypresses so GUI events and OS
// signals are serviced while the debugger waits for a command.
func (ct *ColorTerminal) TermRead(prompt terminal.Prompt, events *terminal.ReadEvents) (string, error) {
	if ct.silenced {
		return "", nil
	}

	ct.RawMode()
	defer ct.CanonicalMode()

	line := make([]rune, 0, 128)
	cursor := 0
	ct.historyIdx = len(ct.history)

	redraw := func() {
		ct.EasyTerm.TermPrint("\r")
		ct.EasyTerm.TermPrint(ansi.ClearLine)
		ct.EasyTerm.TermPrint(ansi.PenStyles["bold"])
		ct.EasyTerm.TermPrint(prompt.String())
		ct.EasyTerm.TermPrint(ansi.NormalPen)
		ct.EasyTerm.TermPrint(string(line))
		if back := len(line) - cursor; back > 0 {
			ct.EasyTerm.TermPrint(ansi.CursorMove(-back))
		}
		_ = ct.Flush()
	}
	redraw()

	for {
		var rr readRune

		if events == nil {
			rr = <-ct.reader
		} else {
			select {
			case rr = <-ct.reader:

			case ev := <-events.GUIEvents:
				if events.GUIEventHandler != nil {
					if err := events.GUIEventHandler(ev); err != nil {
						return "", err
					}
				}
				continue

			case sig := <-events.Signal:
				if events.SignalHandler != nil {
					if err := events.SignalHandler(sig); err != nil {
						return "", err
					}
				}
				redraw()
				continue
			}
		}

		if rr.err != nil {
			return "", rr.err
		}

		switch rr.r {
		case easyterm.KeyInterrupt:
			ct.EasyTerm.TermPrint("\n")
			return "", terminal.UserInterrupt

		case easyterm.KeySuspend:
			ct.CanonicalMode()
			easyterm.SuspendProcess()
			ct.RawMode()
			redraw()

		case easyterm.KeyCarriageReturn:
			ct.EasyTerm.TermPrint("\n")
			s := string(line)
			ct.pushHistory(s)
			return s, nil

		case easyterm.KeyBackspace, easyterm.KeyCtrlH:
			if cursor > 0 {
				line = append(line[:cursor-1], line[cursor:]...)
				cursor--
				redraw()
			}

		case easyterm.KeyTab:
			// no tab completion in this implementation

		case easyterm.KeyEsc:
			interim := <-ct.reader
			if interim.err != nil {
				return "", interim.err
			}
			if interim.r != easyterm.EscCursor {
				break
			}
			code := <-ct.reader
			if code.err != nil {
				return "", code.err
			}
			switch code.r {
			case easyterm.CursorUp:
				if ct.historyIdx > 0 {
					ct.historyIdx--
					line = []rune(ct.history[ct.historyIdx])
					cursor = len(line)
					redraw()
				}
			case easyterm.CursorDown:
				if ct.historyIdx < len(ct.history)-1 {
					ct.historyIdx++
					line = []rune(ct.history[ct.historyIdx])
					cursor = len(line)
				} else {
					ct.historyIdx = len(ct.history)
					line = line[:0]
					cursor = 0
				}
				redraw()
			case easyterm.CursorForward:
				if cursor < len(line) {
					cursor++
					ct.EasyTerm.TermPrint(ansi.CursorForwardOne)
					_ = ct.Flush()
				}
			case easyterm.CursorBackward:
				if cursor > 0 {
					cursor--
					ct.EasyTerm.TermPrint(ansi.CursorBackwardOne)
					_ = ct.Flush()
				}
			}

		default:
			if unicode.IsPrint(rr.r) {
				line = append(line[:cursor], append([]rune{rr.r}, line[cursor:]...)...)
				cursor++
				redraw()
			}
		}
	}
}
