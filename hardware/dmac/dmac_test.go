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

package dmac_test

import (
	"encoding/binary"
	"testing"

	"github.com/retroswitch/emotion2k/hardware/dmac"
	"github.com/retroswitch/emotion2k/test"
)

// quadRAM is a flat quadword-addressable RAM standing in for the system
// bus.
type quadRAM struct {
	mem [0x10000]byte
}

func (r *quadRAM) DeviceReadQuadword(addr uint32) (lo, hi uint64, err error) {
	addr &^= 1 << 31
	lo = binary.LittleEndian.Uint64(r.mem[addr:])
	hi = binary.LittleEndian.Uint64(r.mem[addr+8:])
	return lo, hi, nil
}

func (r *quadRAM) DeviceWriteQuadword(addr uint32, lo, hi uint64) error {
	addr &^= 1 << 31
	binary.LittleEndian.PutUint64(r.mem[addr:], lo)
	binary.LittleEndian.PutUint64(r.mem[addr+8:], hi)
	return nil
}

func (r *quadRAM) putQuad(addr uint32, lo, hi uint64) {
	_ = r.DeviceWriteQuadword(addr, lo, hi)
}

// captureDevice records every quadword pushed into it.
type captureDevice struct {
	quads [][2]uint64
}

func (c *captureDevice) IngestQuadword(lo, hi uint64) error {
	c.quads = append(c.quads, [2]uint64{lo, hi})
	return nil
}

// interruptCounter counts INT1 assertions.
type interruptCounter struct {
	n int
}

func (i *interruptCounter) AssertINT1() { i.n++ }

// Channel register offsets used by the tests (GIF channel block base
// 0x2000 relative to the DMAC region).
const (
	gifCHCR = 0x2000
	gifMADR = 0x2010
	gifQWC  = 0x2020
	gifTADR = 0x2030
	dCTRL   = 0x6000
	dSTAT   = 0x6010
	dPCR    = 0x6020
)

func TestNormalModeTransfer(t *testing.T) {
	ram := &quadRAM{}
	d := dmac.New(ram)
	gif := &captureDevice{}
	irq := &interruptCounter{}
	d.AttachDevice(dmac.ChGIF, gif)
	d.AttachInterruptLine(irq)

	const base = 0x4000
	ram.putQuad(base, 0x1111, 0xAAAA)
	ram.putQuad(base+16, 0x2222, 0xBBBB)

	test.ExpectSuccess(t, d.WriteWord(dCTRL, 1))
	test.ExpectSuccess(t, d.WriteWord(gifMADR, base))
	test.ExpectSuccess(t, d.WriteWord(gifQWC, 2))
	// direction: from memory; mode: normal; start
	test.ExpectSuccess(t, d.WriteWord(gifCHCR, 0x101))

	d.Step(64)

	test.ExpectEquality(t, len(gif.quads), 2)
	test.ExpectEquality(t, gif.quads[0], [2]uint64{0x1111, 0xAAAA})
	test.ExpectEquality(t, gif.quads[1], [2]uint64{0x2222, 0xBBBB})

	madr, _ := d.ReadWord(gifMADR)
	qwc, _ := d.ReadWord(gifQWC)
	chcr, _ := d.ReadWord(gifCHCR)
	stat, _ := d.ReadWord(dSTAT)
	test.ExpectEquality(t, madr, uint32(base+32))
	test.ExpectEquality(t, qwc, uint32(0))
	test.ExpectEquality(t, chcr&0x100, uint32(0))
	test.ExpectEquality(t, stat&(1<<uint(dmac.ChGIF)), uint32(1)<<uint(dmac.ChGIF))
	test.ExpectEquality(t, irq.n, 1)
}

func TestMasterEnableGatesTransfers(t *testing.T) {
	ram := &quadRAM{}
	d := dmac.New(ram)
	gif := &captureDevice{}
	d.AttachDevice(dmac.ChGIF, gif)

	test.ExpectSuccess(t, d.WriteWord(gifMADR, 0x4000))
	test.ExpectSuccess(t, d.WriteWord(gifQWC, 1))
	test.ExpectSuccess(t, d.WriteWord(gifCHCR, 0x101))

	// D_CTRL.MEN clear: nothing moves
	d.Step(64)
	test.ExpectEquality(t, len(gif.quads), 0)

	test.ExpectSuccess(t, d.WriteWord(dCTRL, 1))
	d.Step(64)
	test.ExpectEquality(t, len(gif.quads), 1)
}

func TestSourceChainRefThenEnd(t *testing.T) {
	ram := &quadRAM{}
	d := dmac.New(ram)
	gif := &captureDevice{}
	d.AttachDevice(dmac.ChGIF, gif)

	const payloadA = 0x5000
	const chain = 0x6000
	ram.putQuad(payloadA, 0xA0, 0xA1)
	ram.putQuad(payloadA+16, 0xB0, 0xB1)

	// REF tag: 2 qwords at payloadA; then an END tag with 1 inline qword
	refTag := uint64(2) | uint64(tagID(3))<<28 | uint64(payloadA)<<32
	ram.putQuad(chain, refTag, 0)
	endTag := uint64(1) | uint64(tagID(7))<<28
	ram.putQuad(chain+16, endTag, 0)
	ram.putQuad(chain+32, 0xC0, 0xC1)

	test.ExpectSuccess(t, d.WriteWord(dCTRL, 1))
	test.ExpectSuccess(t, d.WriteWord(gifTADR, chain))
	test.ExpectSuccess(t, d.WriteWord(gifQWC, 0))
	// direction: from memory; mode: chain; start
	test.ExpectSuccess(t, d.WriteWord(gifCHCR, 0x105))

	d.Step(64)

	test.ExpectEquality(t, len(gif.quads), 3)
	test.ExpectEquality(t, gif.quads[0], [2]uint64{0xA0, 0xA1})
	test.ExpectEquality(t, gif.quads[1], [2]uint64{0xB0, 0xB1})
	test.ExpectEquality(t, gif.quads[2], [2]uint64{0xC0, 0xC1})

	chcr, _ := d.ReadWord(gifCHCR)
	test.ExpectEquality(t, chcr&0x100, uint32(0))
}

func tagID(id int) uint32 { return uint32(id) }

func TestConditionTracksRequestedChannels(t *testing.T) {
	ram := &quadRAM{}
	d := dmac.New(ram)
	gif := &captureDevice{}
	d.AttachDevice(dmac.ChGIF, gif)

	// request completion of the GIF channel
	test.ExpectSuccess(t, d.WriteWord(dPCR, 1<<uint(dmac.ChGIF)))
	test.ExpectEquality(t, d.Condition(), false)

	ram.putQuad(0x4000, 1, 2)
	test.ExpectSuccess(t, d.WriteWord(dCTRL, 1))
	test.ExpectSuccess(t, d.WriteWord(gifMADR, 0x4000))
	test.ExpectSuccess(t, d.WriteWord(gifQWC, 1))
	test.ExpectSuccess(t, d.WriteWord(gifCHCR, 0x101))
	d.Step(64)

	test.ExpectEquality(t, d.Condition(), true)
}
