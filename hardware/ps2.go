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

package hardware

import (
	"github.com/retroswitch/emotion2k/hardware/cdvd"
	"github.com/retroswitch/emotion2k/hardware/clocks"
	"github.com/retroswitch/emotion2k/hardware/cpu"
	"github.com/retroswitch/emotion2k/hardware/cpu/cop0"
	"github.com/retroswitch/emotion2k/hardware/cpu/cop1"
	"github.com/retroswitch/emotion2k/hardware/dmac"
	"github.com/retroswitch/emotion2k/hardware/gif"
	"github.com/retroswitch/emotion2k/hardware/gs"
	"github.com/retroswitch/emotion2k/hardware/instance"
	"github.com/retroswitch/emotion2k/hardware/memcard"
	"github.com/retroswitch/emotion2k/hardware/memory"
	"github.com/retroswitch/emotion2k/hardware/scheduler"
)

// Stepping granularity: how many instructions run between DMAC/interrupt
// service visits, and how many EE cycles one instruction is charged.
const (
	cyclesPerInstruction = 2
	dmacServiceInterval  = 32
	dmacQuadwordBudget   = 64
)

// PS2 is the console: every hardware subsystem wired together. All state
// behind this type is owned by the emulation goroutine, except the GS,
// whose engine runs its own consumer goroutine.
type PS2 struct {
	Instance *instance.Instance

	Mem       *memory.Memory
	CPU       *cpu.CPU
	COP0      *cop0.COP0
	COP1      *cop1.COP1
	DMAC      *dmac.DMAC
	GIF       *gif.GIF
	GS        *gs.Engine
	CDVD      *cdvd.CDVD
	Scheduler *scheduler.Scheduler

	// Memcard is the mounted memory card image, if any. Sector access is
	// driven by the SIF-side pad/memcard protocol, which is out of core
	// scope; the image is mounted here so savestate and UI code have one
	// place to find it.
	Memcard *memcard.Card

	// instruction counter, used to pace the DMAC service interval
	steps uint64
}

// NewPS2 builds and wires a console. The BIOS image and any disc are
// attached afterwards, before Reset.
func NewPS2(ins *instance.Instance) *PS2 {
	p := &PS2{
		Instance:  ins,
		Scheduler: scheduler.New(),
	}

	p.Mem = memory.New()
	p.COP0 = cop0.New(p.Mem.TLB())
	p.COP1 = cop1.New()
	p.CPU = cpu.New(p.Mem, p.COP0, p.COP1)

	p.GS = gs.NewEngine()
	p.GIF = gif.New(p.GS)
	p.DMAC = dmac.New(p.Mem)
	p.CDVD = cdvd.New(p.Scheduler)

	p.DMAC.AttachDevice(dmac.ChGIF, p.GIF)
	p.DMAC.AttachInterruptLine(p.Mem)

	p.Mem.AttachDMAC(p.DMAC)
	p.Mem.AttachGSPrivileged(p.GS)
	p.Mem.AttachInterruptController(p.COP0)
	p.Mem.AttachIPUGIFVU(&ipuGifVuBlock{gif: p.GIF})

	core := p.GS.GS()
	p.CPU.Syscall = &cpu.BIOSHLE{
		SetCRT: func(m cpu.CRTMode) { core.SetCRT(m.Interlaced, m.Mode, m.FrameMode) },
		GetIMR: core.IMR,
		PutIMR: core.SetIMR,
	}

	return p
}

// ApplyPreferences pushes the instance's preference switches into the
// subsystems that consume them. Call after Reset, once the Instance field
// is set - Reset clears the register state randomisation would otherwise
// have seeded.
func (p *PS2) ApplyPreferences() {
	if p.Instance == nil {
		return
	}
	p.Mem.TLBStrict = p.Instance.Prefs.TLBStrict.Get()
	p.CDVD.SeekErrorBit = p.Instance.Prefs.CDVDSeekErrorBit.Get()

	if p.Instance.Prefs.RandomState.Get() {
		// scatter pseudo-random values through the low pages of RAM, the
		// area boot code most often reads before writing
		page := make([]byte, 4096)
		for i := range page {
			page[i] = byte(p.Instance.Random.Rewindable(256))
		}
		p.Mem.LoadRAM(0, page)
		for i := 1; i < 32; i++ {
			p.CPU.GPR.SetLo64(i, uint64(p.Instance.Random.Rewindable(1<<30)))
		}
	}
}

// Start launches the GS consumer goroutine. Separated from construction so
// tests can drive the GS synchronously.
func (p *PS2) Start() {
	p.GS.Start()
}

// Stop terminates the GS consumer goroutine.
func (p *PS2) Stop() {
	p.GS.Stop()
}

// Reset returns the whole console to power-on state at the given entry
// point, reinitialising every subsystem from scratch.
func (p *PS2) Reset(pc uint32) {
	p.Scheduler.Reset()
	p.CPU.Reset(pc)
	p.DMAC.Reset()
	p.GIF.Reset()
	p.GS.Reset()
	p.steps = 0
}

// Step executes one EE instruction and services the devices that hang off
// the instruction clock: the scheduler's event queue every step, the DMAC
// on its coarser interval, and the interrupt check at the boundary.
func (p *PS2) Step() error {
	if err := p.CPU.Step(); err != nil {
		return err
	}
	p.steps++
	p.Scheduler.Advance(cyclesPerInstruction)

	if p.steps%dmacServiceInterval == 0 {
		p.DMAC.Step(dmacQuadwordBudget)
		p.COP0.SetDMACCondition(p.DMAC.Condition())
	}

	p.CPU.CheckInterrupts()
	return nil
}

// StepsPerFrame is the instruction budget of one 60 Hz video frame.
const StepsPerFrame = clocks.EEHz / cyclesPerInstruction / 60

// RunFrame executes a frame's worth of instructions, then scans out the
// display. The returned pixel buffer is in flat RGBA order; it is nil when
// no display circuit is enabled.
func (p *PS2) RunFrame() (pix []byte, w, h int, err error) {
	for i := 0; i < StepsPerFrame; i++ {
		if err := p.Step(); err != nil {
			return nil, 0, 0, err
		}
	}

	// drain any DMA the frame's tail left behind before scanout
	p.DMAC.Step(dmacQuadwordBudget)

	pix, w, h = p.GS.RenderCRT()
	p.GS.GS().SetVSync()
	return pix, w, h, nil
}

// ipuGifVuBlock routes the combined IPU/GIF/VU register region. Only the
// GIF's registers are backed; the IPU and VU register files are out of
// core scope and read as zero.
type ipuGifVuBlock struct {
	gif *gif.GIF
}

// Register block offsets within the region starting at 0x10002000.
const (
	gifBlockBase = 0x1000 // 0x10003000
	gifBlockTop  = 0x2000
)

func (b *ipuGifVuBlock) ReadWord(offset uint32) (uint32, error) {
	if offset >= gifBlockBase && offset < gifBlockTop {
		return b.gif.ReadWord(offset - gifBlockBase)
	}
	return 0, nil
}

func (b *ipuGifVuBlock) WriteWord(offset uint32, value uint32) error {
	if offset >= gifBlockBase && offset < gifBlockTop {
		return b.gif.WriteWord(offset-gifBlockBase, value)
	}
	return nil
}
