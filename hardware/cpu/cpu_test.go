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

package cpu_test

import (
	"encoding/binary"
	"testing"

	"github.com/retroswitch/emotion2k/hardware/cpu"
	"github.com/retroswitch/emotion2k/hardware/cpu/cop0"
	"github.com/retroswitch/emotion2k/hardware/cpu/cop1"
	"github.com/retroswitch/emotion2k/hardware/memory/tlb"
	"github.com/retroswitch/emotion2k/test"
)

// testBus is a flat 64 KiB RAM with no address decode, mapped from zero.
type testBus struct {
	mem [0x10000]byte
}

func (b *testBus) Read8(a uint32) (uint8, error)  { return b.mem[a%uint32(len(b.mem))], nil }
func (b *testBus) Read16(a uint32) (uint16, error) {
	return binary.LittleEndian.Uint16(b.mem[a%uint32(len(b.mem)):]), nil
}
func (b *testBus) Read32(a uint32) (uint32, error) {
	return binary.LittleEndian.Uint32(b.mem[a%uint32(len(b.mem)):]), nil
}
func (b *testBus) Read64(a uint32) (uint64, error) {
	return binary.LittleEndian.Uint64(b.mem[a%uint32(len(b.mem)):]), nil
}
func (b *testBus) Read128(a uint32) (uint64, uint64, error) {
	lo, _ := b.Read64(a)
	hi, _ := b.Read64(a + 8)
	return lo, hi, nil
}
func (b *testBus) Write8(a uint32, v uint8) error { b.mem[a%uint32(len(b.mem))] = v; return nil }
func (b *testBus) Write16(a uint32, v uint16) error {
	binary.LittleEndian.PutUint16(b.mem[a%uint32(len(b.mem)):], v)
	return nil
}
func (b *testBus) Write32(a uint32, v uint32) error {
	binary.LittleEndian.PutUint32(b.mem[a%uint32(len(b.mem)):], v)
	return nil
}
func (b *testBus) Write64(a uint32, v uint64) error {
	binary.LittleEndian.PutUint64(b.mem[a%uint32(len(b.mem)):], v)
	return nil
}
func (b *testBus) Write128(a uint32, lo, hi uint64) error {
	_ = b.Write64(a, lo)
	return b.Write64(a+8, hi)
}

func newTestCPU() (*cpu.CPU, *testBus) {
	b := &testBus{}
	c := cpu.New(b, cop0.New(tlb.New()), cop1.New())
	c.Reset(0x1000)
	return c, b
}

// program writes a sequence of instruction words starting at addr.
func program(b *testBus, addr uint32, words ...uint32) {
	for n, w := range words {
		_ = b.Write32(addr+uint32(n)*4, w)
	}
}

// encoders for the handful of instructions the tests assemble by hand

func ori(rt, rs int, imm uint32) uint32 {
	return 0x0D<<26 | uint32(rs)<<21 | uint32(rt)<<16 | imm&0xFFFF
}

func addu(rd, rs, rt int) uint32 {
	return uint32(rs)<<21 | uint32(rt)<<16 | uint32(rd)<<11 | 0x21
}

func beq(rs, rt int, off int16) uint32 {
	return 0x04<<26 | uint32(rs)<<21 | uint32(rt)<<16 | uint32(uint16(off))
}

func beql(rs, rt int, off int16) uint32 {
	return 0x14<<26 | uint32(rs)<<21 | uint32(rt)<<16 | uint32(uint16(off))
}

func lq(rt, base int, off int16) uint32 {
	return 0x1E<<26 | uint32(base)<<21 | uint32(rt)<<16 | uint32(uint16(off))
}

func sq(rt, base int, off int16) uint32 {
	return 0x1F<<26 | uint32(base)<<21 | uint32(rt)<<16 | uint32(uint16(off))
}

func TestZeroRegisterIsImmutable(t *testing.T) {
	c, b := newTestCPU()

	// ori r0, r0, 0xFFFF
	program(b, 0x1000, ori(0, 0, 0xFFFF))
	test.ExpectSuccess(t, c.Step())
	test.ExpectEquality(t, c.GPR.GetLo64(0), uint64(0))

	c.GPR.SetLo64(0, 0x1234)
	test.ExpectEquality(t, c.GPR.GetLo64(0), uint64(0))

	c.GPR.Set(0, cpu.Reg128{Lo: 1, Hi: 2})
	test.ExpectEquality(t, c.GPR.Get(0), cpu.Reg128{})
}

func TestADDUWrapsAndSignExtends(t *testing.T) {
	c, b := newTestCPU()

	c.GPR.SetLo64(5, 0xFFFFFFFF)
	c.GPR.SetLo64(6, 1)
	program(b, 0x1000, addu(4, 5, 6))
	test.ExpectSuccess(t, c.Step())

	// 32-bit wrap of 0xFFFFFFFF+1 is 0, sign-extended to a full zero
	test.ExpectEquality(t, c.GPR.GetLo64(4), uint64(0))
}

func TestBranchDelaySlot(t *testing.T) {
	c, b := newTestCPU()

	program(b, 0x1000,
		beq(0, 0, 2),    // branch to 0x100C
		ori(4, 0, 0x11), // delay slot: executes
		ori(4, 0, 0x22), // skipped by the branch
		ori(4, 0, 0x33), // branch target
	)

	for c.PC != 0x1010 {
		test.ExpectSuccess(t, c.Step())
	}
	test.ExpectEquality(t, c.GPR.GetLo64(4), uint64(0x33))
}

func TestBranchDelaySlotExecutes(t *testing.T) {
	c, b := newTestCPU()

	program(b, 0x1000,
		beq(0, 0, 2),
		ori(5, 0, 0xA1), // delay slot must execute before redirect
		ori(5, 0, 0xA2),
		ori(6, 0, 0xA3),
	)

	test.ExpectSuccess(t, c.Step()) // branch
	test.ExpectSuccess(t, c.Step()) // delay slot
	test.ExpectEquality(t, c.GPR.GetLo64(5), uint64(0xA1))

	test.ExpectSuccess(t, c.Step()) // target instruction at 0x100C
	test.ExpectEquality(t, c.GPR.GetLo64(6), uint64(0xA3))
	test.ExpectEquality(t, c.GPR.GetLo64(5), uint64(0xA1))
}

func TestBranchLikelyNotTakenSkipsDelaySlot(t *testing.T) {
	c, b := newTestCPU()

	c.GPR.SetLo64(1, 1)
	program(b, 0x1000,
		beql(0, 1, 2),   // not taken: r0 != r1
		ori(4, 0, 0xAA), // delay slot: must NOT execute
		ori(4, 0, 0xBB),
	)

	test.ExpectSuccess(t, c.Step())
	test.ExpectEquality(t, c.PC, uint32(0x1008))

	test.ExpectSuccess(t, c.Step())
	test.ExpectEquality(t, c.GPR.GetLo64(4), uint64(0xBB))
}

func TestBranchLikelyTaken(t *testing.T) {
	c, b := newTestCPU()

	program(b, 0x1000,
		beql(0, 0, 2),   // taken
		ori(4, 0, 0xAA), // delay slot executes as for a plain branch
		ori(4, 0, 0xBB),
		ori(5, 0, 0xCC),
	)

	test.ExpectSuccess(t, c.Step())
	test.ExpectSuccess(t, c.Step())
	test.ExpectEquality(t, c.GPR.GetLo64(4), uint64(0xAA))

	test.ExpectSuccess(t, c.Step())
	test.ExpectEquality(t, c.GPR.GetLo64(5), uint64(0xCC))
	test.ExpectEquality(t, c.GPR.GetLo64(4), uint64(0xAA))
}

func TestLQSQRoundTrip(t *testing.T) {
	c, b := newTestCPU()

	c.GPR.Set(7, cpu.Reg128{Lo: 0x0123456789ABCDEF, Hi: 0xFEDCBA9876543210})
	c.GPR.SetLo64(8, 0x2000)
	program(b, 0x1000,
		sq(7, 8, 0x100),
		lq(9, 8, 0x100),
	)

	test.ExpectSuccess(t, c.Step())
	test.ExpectSuccess(t, c.Step())
	test.ExpectEquality(t, c.GPR.Get(9), c.GPR.Get(7))
}

func TestJALLinksPastDelaySlot(t *testing.T) {
	c, b := newTestCPU()

	// jal 0x2000
	program(b, 0x1000, 0x03<<26|0x2000>>2, ori(4, 0, 1))
	test.ExpectSuccess(t, c.Step())
	test.ExpectEquality(t, c.GPR.GetLo64(31), uint64(0x1008))

	test.ExpectSuccess(t, c.Step()) // delay slot
	test.ExpectSuccess(t, c.Step()) // first instruction at target
	test.ExpectEquality(t, c.PC, uint32(0x2004))
}

func TestDivideByZeroSentinels(t *testing.T) {
	c, b := newTestCPU()

	c.GPR.SetLo64(5, 100)
	// div r0, r5, r0 (divisor zero)
	program(b, 0x1000, uint32(5)<<21|uint32(0)<<16|0x1A)

	// divide by zero is logged, not fatal
	test.ExpectSuccess(t, c.Step())
	test.ExpectEquality(t, c.LO, uint64(0xFFFFFFFFFFFFFFFF))
	test.ExpectEquality(t, c.HI, uint64(100))
	test.ExpectSuccess(t, c.Halted())
}

func TestUnknownOpcodeHaltsCore(t *testing.T) {
	c, b := newTestCPU()

	// primary opcode 0x13 is unassigned on the EE
	program(b, 0x1000, 0x13<<26)

	test.ExpectFailure(t, c.Step())
	test.ExpectFailure(t, c.Halted())

	// further steps refuse to run until Reset
	test.ExpectFailure(t, c.Step())
	c.Reset(0x1000)
	test.ExpectSuccess(t, c.Halted())
}
