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

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/retroswitch/emotion2k/debugger"
	"github.com/retroswitch/emotion2k/debugger/terminal"
	"github.com/retroswitch/emotion2k/debugger/terminal/colorterm"
	"github.com/retroswitch/emotion2k/debugger/terminal/plainterm"
	"github.com/retroswitch/emotion2k/emulation"
	"github.com/retroswitch/emotion2k/environment"
	"github.com/retroswitch/emotion2k/gui"
	"github.com/retroswitch/emotion2k/gui/display"
	"github.com/retroswitch/emotion2k/gui/sdl"
	"github.com/retroswitch/emotion2k/gui/sdlimgui"
	"github.com/retroswitch/emotion2k/gui/stats"
	"github.com/retroswitch/emotion2k/hardware"
	"github.com/retroswitch/emotion2k/hardware/instance"
	"github.com/retroswitch/emotion2k/hardware/memcard"
	"github.com/retroswitch/emotion2k/loader"
	"github.com/retroswitch/emotion2k/logger"
	"github.com/retroswitch/emotion2k/modalflag"
	"github.com/retroswitch/emotion2k/paths"
	"github.com/retroswitch/emotion2k/prefs"
)

// the BIOS reset vector: where execution begins when booting a disc.
const resetVector = 0xBFC00000

func main() {
	// SDL requires its window and event calls to stay on one OS thread
	runtime.LockOSThread()

	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "DEBUG")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = emulate(md, false)
	case "DEBUG":
		err = emulate(md, true)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		logger.Tail(os.Stderr, 20)
		os.Exit(10)
	}
}

// emulate services both the RUN and DEBUG modes: the same console
// construction and program loading, differing in what drives it
// afterwards.
func emulate(md *modalflag.Modes, debug bool) error {
	md.NewMode()

	biosPath := md.AddString("bios", "", "path to BIOS image (required for disc boot)")
	prefsOverride := md.AddString("prefs", "", "preference overrides: key::value;key::value")
	statsServer := md.AddBool("stats", false, "launch live stats dashboard")
	inspector := md.AddBool("inspector", false, "open the register inspector window")
	termType := md.AddString("term", "COLOR", "terminal type for DEBUG mode: COLOR, PLAIN")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("%s mode expects a single <elf|iso> argument", md)
	}
	filename := md.RemainingArgs()[0]

	if *prefsOverride != "" {
		prefs.PushCommandLineStack(*prefsOverride)
		defer func() {
			if s := prefs.PopCommandLineStack(); s != "" {
				logger.Logf("main", "unused preference overrides: %s", s)
			}
		}()
	}

	console := hardware.NewPS2(nil)
	ins, err := instance.NewInstance(console.Scheduler)
	if err != nil {
		return err
	}
	console.Instance = ins
	env := environment.NewEnvironment(environment.MainEmulation, ins)

	entry, err := load(console, filename, *biosPath)
	if err != nil {
		return err
	}
	console.Reset(entry)
	console.ApplyPreferences()

	if cardPath, err := paths.ResourcePath("memcard", "card0.mc2"); err == nil {
		card, err := memcard.Open(cardPath)
		if err != nil {
			logger.Logf("main", "memory card unavailable: %v", err)
		} else {
			console.Memcard = card
			defer func() {
				if err := card.Save(); err != nil {
					logger.Logf("main", "%v", err)
				}
			}()
		}
	}

	if *statsServer {
		stats.Launch(console)
	}

	if debug {
		return runDebugger(console, *termType)
	}
	return runPlay(console, env, *inspector)
}

// load attaches the guest program: an ELF straight into RAM, a disc image
// behind the CDVD drive (booted through the BIOS), or a bare BIOS image.
func load(console *hardware.PS2, filename string, biosPath string) (entry uint32, err error) {
	if biosPath != "" {
		bios, err := os.ReadFile(biosPath)
		if err != nil {
			return 0, err
		}
		console.Mem.LoadBIOS(bios)
	}

	ld, err := loader.NewLoader(filename)
	if err != nil {
		return 0, err
	}
	logger.Logf("main", "loading %s as %s", ld.Name, ld.Kind)

	switch ld.Kind {
	case loader.KindELF:
		elf, err := loader.LoadELF(filename)
		if err != nil {
			return 0, err
		}
		for _, seg := range elf.Segments {
			console.Mem.LoadRAM(seg.Addr, seg.Data)
		}
		return elf.Entry, nil

	case loader.KindISO:
		img, err := loader.OpenISO(filename)
		if err != nil {
			return 0, err
		}
		console.CDVD.Mount(img)
		if biosPath == "" {
			return 0, fmt.Errorf("disc boot requires a BIOS image (-bios)")
		}
		return resetVector, nil

	case loader.KindBIOS:
		bios, err := os.ReadFile(filename)
		if err != nil {
			return 0, err
		}
		console.Mem.LoadBIOS(bios)
		return resetVector, nil

	default:
		return 0, fmt.Errorf("cannot load %s", filename)
	}
}

// runPlay is the windowed free-running mode: emulation in its own
// goroutine, the SDL service loop on this (main) one.
func runPlay(console *hardware.PS2, env *environment.Environment, inspector bool) error {
	dispPrefs, err := display.NewPreferences()
	if err != nil {
		return err
	}

	g, err := sdl.NewGUI(dispPrefs)
	if err != nil {
		return err
	}
	defer g.Destroy()

	var insp *sdlimgui.Inspector
	if inspector {
		insp, err = sdlimgui.NewInspector(console)
		if err != nil {
			logger.Logf("main", "inspector unavailable: %v", err)
		} else {
			defer insp.Destroy()
			g.AuxWindowClose = func(id uint32) {
				if insp != nil && id == insp.WindowID() {
					insp.Close()
				}
			}
		}
	}

	if err := g.SetFeature(gui.ReqSetVisibility, true); err != nil {
		return err
	}

	emu := emulation.NewEmulator(console, env, g)

	done := make(chan error, 1)
	go func() {
		done <- emu.Run()
	}()

	paused := false
	for g.Service() {
		select {
		case ev := <-g.Events():
			switch ev {
			case gui.EventQuit:
				emu.End()
				err := <-done
				return err
			case gui.EventPauseToggle:
				paused = !paused
				emu.Pause(paused)
			}
		case err := <-done:
			return err
		default:
		}

		if insp != nil {
			insp.Service()
		}
	}

	emu.End()
	return <-done
}

// runDebugger is the terminal REPL mode: no window, the console driven a
// step at a time from the prompt.
func runDebugger(console *hardware.PS2, termType string) error {
	var term terminal.Terminal
	switch termType {
	case "PLAIN":
		term = &plainterm.PlainTerminal{}
	default:
		term = &colorterm.ColorTerminal{}
	}

	events := make(chan gui.Event)
	dbg := debugger.New(console, term, events)

	return dbg.Start()
}
