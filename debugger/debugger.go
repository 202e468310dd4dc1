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

// Package debugger is the REPL wrapped around the console: single
// stepping, register and memory inspection, breakpoints, and the DMA
// chain visualiser. It owns the console while active - the free-running
// emulation loop and the debugger never drive the hardware at the same
// time.
package debugger

import (
	goerrors "errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/retroswitch/emotion2k/debugger/dbgmem"
	"github.com/retroswitch/emotion2k/debugger/terminal"
	"github.com/retroswitch/emotion2k/gui"
	"github.com/retroswitch/emotion2k/hardware"
	"github.com/retroswitch/emotion2k/logger"
)

// Debugger is the REPL state.
type Debugger struct {
	console *hardware.PS2
	term    terminal.Terminal
	mem     *dbgmem.DbgMem

	breakpoints map[uint32]bool

	events *terminal.ReadEvents

	running bool
}

// New is the preferred method of initialisation for the Debugger type.
func New(console *hardware.PS2, term terminal.Terminal, events chan gui.Event) *Debugger {
	dbg := &Debugger{
		console:     console,
		term:        term,
		mem:         &dbgmem.DbgMem{Mem: console.Mem},
		breakpoints: make(map[uint32]bool),
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT)

	dbg.events = &terminal.ReadEvents{
		GUIEvents: events,
		GUIEventHandler: func(ev gui.Event) error {
			if ev == gui.EventQuit {
				return terminal.UserQuit
			}
			return nil
		},
		Signal: sig,
		SignalHandler: func(os.Signal) error {
			dbg.running = false
			return nil
		},
	}

	return dbg
}

// Start runs the input loop until the user quits.
func (dbg *Debugger) Start() error {
	if err := dbg.term.Initialise(); err != nil {
		return err
	}
	defer dbg.term.CleanUp()

	dbg.console.Start()
	defer dbg.console.Stop()

	dbg.printLine(terminal.StyleHelp, "emotion2k debugger. type HELP for commands")

	for {
		prompt := terminal.Prompt{
			Content: fmt.Sprintf("pc %08x", dbg.console.CPU.PC),
			Type:    terminal.PromptTypeStep,
			Halted:  dbg.console.CPU.Halted() != nil,
		}

		input, err := dbg.term.TermRead(prompt, dbg.events)
		if err != nil {
			if goerrors.Is(err, terminal.UserInterrupt) {
				continue
			}
			if goerrors.Is(err, terminal.UserSignal) {
				return nil
			}
			return err
		}

		if quit, err := dbg.parseCommand(input); quit {
			return err
		}
	}
}

func (dbg *Debugger) printLine(style terminal.Style, format string, args ...interface{}) {
	dbg.term.TermPrintLine(style, fmt.Sprintf(format, args...))
}

// parseCommand executes one debugger command. The boolean return means
// quit.
func (dbg *Debugger) parseCommand(input string) (bool, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false, nil
	}
	cmd := strings.ToUpper(fields[0])
	args := fields[1:]

	switch cmd {
	case "HELP":
		for _, h := range []string{
			"STEP [n]       execute n instructions (default 1)",
			"RUN            run until breakpoint, halt or interrupt",
			"FRAME          run a whole video frame",
			"REGS           show EE general registers",
			"COP0           show system control registers",
			"FPU            show floating point registers",
			"GS             show GS drawing state",
			"MEM addr [n]   hex dump n rows at addr",
			"CHAIN tadr     write DMA chain graph to chain.dot",
			"BREAK addr     toggle a breakpoint",
			"LOG            dump the log buffer",
			"QUIT           leave the debugger",
		} {
			dbg.printLine(terminal.StyleHelp, h)
		}

	case "STEP", "S":
		n := 1
		if len(args) > 0 {
			if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
				n = v
			}
		}
		for i := 0; i < n; i++ {
			if err := dbg.console.Step(); err != nil {
				dbg.printLine(terminal.StyleError, "%v", err)
				break
			}
		}
		dbg.printStep()

	case "RUN", "R":
		dbg.running = true
		for dbg.running {
			select {
			case sig := <-dbg.events.Signal:
				_ = dbg.events.SignalHandler(sig)
				continue
			default:
			}
			if err := dbg.console.Step(); err != nil {
				dbg.printLine(terminal.StyleError, "%v", err)
				break
			}
			if dbg.breakpoints[dbg.console.CPU.PC] {
				dbg.printLine(terminal.StyleFeedback, "breakpoint at %08x", dbg.console.CPU.PC)
				break
			}
		}
		dbg.printStep()

	case "FRAME", "F":
		if _, _, _, err := dbg.console.RunFrame(); err != nil {
			dbg.printLine(terminal.StyleError, "%v", err)
		}
		dbg.printStep()

	case "REGS":
		dbg.printRegs()

	case "COP0":
		dbg.printCOP0()

	case "FPU":
		dbg.printFPU()

	case "GS":
		dbg.printGS()

	case "MEM":
		if len(args) == 0 {
			dbg.printLine(terminal.StyleError, "MEM requires an address")
			break
		}
		addr, err := dbgmem.ParseAddress(args[0])
		if err != nil {
			dbg.printLine(terminal.StyleError, "%v", err)
			break
		}
		rows := 4
		if len(args) > 1 {
			if v, err := strconv.Atoi(args[1]); err == nil && v > 0 {
				rows = v
			}
		}
		var b strings.Builder
		if err := dbg.mem.Dump(&b, addr, rows); err != nil {
			dbg.printLine(terminal.StyleError, "%v", err)
			break
		}
		for _, line := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
			dbg.printLine(terminal.StyleInstrument, "%s", line)
		}

	case "CHAIN":
		if len(args) == 0 {
			dbg.printLine(terminal.StyleError, "CHAIN requires a tag address")
			break
		}
		tadr, err := dbgmem.ParseAddress(args[0])
		if err != nil {
			dbg.printLine(terminal.StyleError, "%v", err)
			break
		}
		f, err := os.Create("chain.dot")
		if err != nil {
			dbg.printLine(terminal.StyleError, "%v", err)
			break
		}
		err = dbgmem.DumpChain(f, dbg.console.Mem, tadr)
		_ = f.Close()
		if err != nil {
			dbg.printLine(terminal.StyleError, "%v", err)
			break
		}
		dbg.printLine(terminal.StyleFeedback, "chain graph written to chain.dot")

	case "BREAK", "B":
		if len(args) == 0 {
			dbg.printLine(terminal.StyleError, "BREAK requires an address")
			break
		}
		addr, err := dbgmem.ParseAddress(args[0])
		if err != nil {
			dbg.printLine(terminal.StyleError, "%v", err)
			break
		}
		if dbg.breakpoints[addr] {
			delete(dbg.breakpoints, addr)
			dbg.printLine(terminal.StyleFeedback, "breakpoint cleared at %08x", addr)
		} else {
			dbg.breakpoints[addr] = true
			dbg.printLine(terminal.StyleFeedback, "breakpoint set at %08x", addr)
		}

	case "LOG":
		var b strings.Builder
		logger.Tail(&b, 50)
		for _, line := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
			if line != "" {
				dbg.printLine(terminal.StyleLog, "%s", line)
			}
		}

	case "QUIT", "Q", "EXIT":
		return true, nil

	default:
		dbg.printLine(terminal.StyleError, "unknown command %s (try HELP)", cmd)
	}

	return false, nil
}

// printStep summarises the machine at the current instruction boundary.
func (dbg *Debugger) printStep() {
	c := dbg.console.CPU
	word, err := c.Mem.Read32(c.PC)
	if err != nil {
		dbg.printLine(terminal.StyleError, "%v", err)
		return
	}
	dbg.printLine(terminal.StyleInstructionStep, "pc %08x: %08x", c.PC, word)
}

func (dbg *Debugger) printRegs() {
	names := [32]string{
		"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
		"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
		"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
		"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
	}
	c := dbg.console.CPU
	for i := 0; i < 32; i += 2 {
		dbg.printLine(terminal.StyleInstrument, "%-4s %016x  %-4s %016x",
			names[i], c.GPR.GetLo64(i), names[i+1], c.GPR.GetLo64(i+1))
	}
	dbg.printLine(terminal.StyleInstrument, "hi   %016x  lo   %016x", c.HI, c.LO)
	dbg.printLine(terminal.StyleInstrument, "hi1  %016x  lo1  %016x", c.HI1, c.LO1)
}

func (dbg *Debugger) printCOP0() {
	c := dbg.console.COP0
	dbg.printLine(terminal.StyleInstrument, "status %08x  cause %08x", c.Status(), c.Cause())
	dbg.printLine(terminal.StyleInstrument, "epc    %08x  count %08x", c.EPC(), c.Read(9))
	dbg.printLine(terminal.StyleInstrument, "interrupts pending %v enabled %v", c.IntPending(), c.IntEnabled())
}

func (dbg *Debugger) printFPU() {
	c := dbg.console.COP1
	for i := 0; i < 32; i += 4 {
		dbg.printLine(terminal.StyleInstrument, "f%02d % 12g  f%02d % 12g  f%02d % 12g  f%02d % 12g",
			i, c.Float(i), i+1, c.Float(i+1), i+2, c.Float(i+2), i+3, c.Float(i+3))
	}
	dbg.printLine(terminal.StyleInstrument, "condition %v", c.Condition())
}

func (dbg *Debugger) printGS() {
	core := dbg.console.GS.GS()
	prim := core.Prim()
	dbg.printLine(terminal.StyleInstrument, "prim type %d ctx %d textured %v blend %v",
		prim.Type, prim.Context, prim.Textured, prim.AlphaBlend)
	ctx := core.Context(prim.Context)
	dbg.printLine(terminal.StyleInstrument, "frame base %#x width %d fmt %#x",
		ctx.Frame.Base, ctx.Frame.Width, ctx.Frame.Format)
	dbg.printLine(terminal.StyleInstrument, "zbuf base %#x fmt %#x noupdate %v",
		ctx.ZBuf.Base, ctx.ZBuf.Format, ctx.ZBuf.NoUpdate)
	dbg.printLine(terminal.StyleInstrument, "vertex queue %d", core.QueueLen())
}
