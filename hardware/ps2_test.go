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

package hardware_test

import (
	"encoding/binary"
	"testing"

	"github.com/retroswitch/emotion2k/hardware"
	"github.com/retroswitch/emotion2k/logger"
	"github.com/retroswitch/emotion2k/test"
)

func newConsole(t *testing.T) *hardware.PS2 {
	t.Helper()
	// the console runs headless with the GS driven synchronously: Start is
	// deliberately not called
	return hardware.NewPS2(nil)
}

func TestStoreLoadThroughSystemBus(t *testing.T) {
	p := newConsole(t)

	program := make([]byte, 0, 32)
	word := func(w uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], w)
		program = append(program, b[:]...)
	}

	// lui r8, 0x1234; ori r8, r8, 0x5678; sw r8, 0x100(r0); lw r9, 0x100(r0)
	word(0x0F<<26 | 8<<16 | 0x1234) // lui
	word(0x0D<<26 | 8<<21 | 8<<16 | 0x5678)
	word(0x2B<<26 | 0<<21 | 8<<16 | 0x100)
	word(0x23<<26 | 0<<21 | 9<<16 | 0x100)

	p.Mem.LoadRAM(0x1000, program)
	p.Reset(0x1000)

	for i := 0; i < 4; i++ {
		test.ExpectSuccess(t, p.Step())
	}

	test.ExpectEquality(t, p.CPU.GPR.GetLo64(9), uint64(0x12345678))
	v, err := p.Mem.Read32(0x100)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x12345678))
}

func TestDMAFeedsGIFtagToGS(t *testing.T) {
	p := newConsole(t)
	p.Reset(0x1000)

	// a PACKED A+D packet setting PRIM to 0x1, placed at 0x4000
	packet := make([]byte, 32)
	// GIFtag: NLOOP=1, EOP, FMT=PACKED, NREG=1, REGS=0xE
	binary.LittleEndian.PutUint64(packet[0:], 1|1<<15|1<<60)
	binary.LittleEndian.PutUint64(packet[8:], 0xE)
	// payload: value 1 -> register 0 (PRIM)
	binary.LittleEndian.PutUint64(packet[16:], 0x1)
	binary.LittleEndian.PutUint64(packet[24:], 0x00)
	p.Mem.LoadRAM(0x4000, packet)

	// an idle loop for the CPU to spin in while the DMAC works
	loop := make([]byte, 8)
	binary.LittleEndian.PutUint32(loop[0:], 0x04<<26|0xFFFF) // beq r0,r0,-1
	binary.LittleEndian.PutUint32(loop[4:], 0)               // nop
	p.Mem.LoadRAM(0x1000, loop)

	// program the GIF channel: MADR=0x4000, QWC=2, normal mode, from
	// memory, start; then master-enable the DMAC
	test.ExpectSuccess(t, p.Mem.Write32(0x1000A010, 0x4000)) // MADR
	test.ExpectSuccess(t, p.Mem.Write32(0x1000A020, 2))      // QWC
	test.ExpectSuccess(t, p.Mem.Write32(0x1000A000, 0x101))  // CHCR
	test.ExpectSuccess(t, p.Mem.Write32(0x1000E000, 1))      // D_CTRL

	for i := 0; i < 256; i++ {
		test.ExpectSuccess(t, p.Step())
	}

	test.ExpectEquality(t, p.GS.GS().Prim().Type, 1)

	// channel completion is visible in D_STAT
	stat, err := p.Mem.Read32(0x1000E010)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, stat&(1<<2), uint32(1<<2))
}

func TestSTDOUTWritesAreLogged(t *testing.T) {
	p := newConsole(t)
	p.Reset(0x1000)

	// a byte written to the STDOUT address must not fault, and lands in the
	// log under the stdout domain
	test.ExpectSuccess(t, p.Mem.Write8(0x1000F180, 'A'))

	w := &test.Writer{}
	logger.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "stdout: A\n")
}
