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

// Package cpu implements the Emotion Engine interpreter: instruction fetch,
// decode and dispatch over the primary/SPECIAL/REGIMM/COPn/MMI opcode
// tables, delay-slot-aware branching, and the 128-bit GPR file.
package cpu

import (
	"github.com/retroswitch/emotion2k/errors"
	"github.com/retroswitch/emotion2k/hardware/cpu/cop0"
	"github.com/retroswitch/emotion2k/hardware/cpu/cop1"
	"github.com/retroswitch/emotion2k/hardware/memory/bus"
	"github.com/retroswitch/emotion2k/logger"
)

// Syscall is implemented by the BIOS-HLE stub table (see bioshle.go) that
// services the handful of syscalls needed to reach a usable BIOS splash.
// Handle returns false when the syscall number is not one it services, in
// which case the interpreter falls back to the guest's exception vector.
type Syscall interface {
	Handle(cpu *CPU, number int32) bool
}

// CPU is the Emotion Engine interpreter's complete architectural state.
type CPU struct {
	GPR GPRFile

	// HI/LO hold the low-order multiply/divide accumulator; HI1/LO1 are
	// the "1" halves written by MMI's pipe-1 multiplies/divides.
	HI, LO   uint64
	HI1, LO1 uint64

	// SA is the shift-amount register written by MTSAB/MTSAH and read by
	// MFSA. Held in bit units.
	SA uint32

	// PC is the address of the instruction about to be fetched this step.
	// nextPC/branchPending/delay implement the one-slot delay-branch
	// state machine.
	PC            uint32
	nextPC        uint32
	branchPending bool
	delay         int

	// inDelaySlot is true for the duration of Step() whenever the
	// instruction currently executing sits in the delay slot of a prior
	// branch - consulted by exception entry to set CAUSE's BD bit and
	// back EPC up by 4.
	inDelaySlot bool

	COP0 *cop0.COP0
	COP1 *cop1.COP1
	Mem  bus.CPUBus

	Syscall Syscall

	// haltError is set by a fatal decode failure; once non-nil, Step
	// refuses to execute further instructions until Reset.
	haltError error

	// overflowWarned latches the first signed-overflow warning on a
	// trapping opcode (see DESIGN.md for the trap-vs-wrap decision).
	overflowWarned bool
}

// New builds a CPU wired to the given bus and coprocessors. PC must be set
// separately (normally to the BIOS reset vector or an ELF's entry point)
// before the first Step.
func New(mem bus.CPUBus, c0 *cop0.COP0, c1 *cop1.COP1) *CPU {
	return &CPU{
		Mem:  mem,
		COP0: c0,
		COP1: c1,
	}
}

// Reset clears architectural state and sets PC to the given entry point.
func (c *CPU) Reset(pc uint32) {
	c.GPR = GPRFile{}
	c.HI, c.LO, c.HI1, c.LO1 = 0, 0, 0, 0
	c.SA = 0
	c.PC = pc
	c.nextPC = 0
	c.branchPending = false
	c.delay = 0
	c.inDelaySlot = false
	c.haltError = nil
}

// Halted reports whether a fatal decode failure has stopped the core.
func (c *CPU) Halted() error {
	return c.haltError
}

// Step executes exactly one instruction: resolve any pending branch,
// fetch, decode+execute, advance PC, tick COP0's cycle count. A fatal
// decode failure is recorded and returned;
// subsequent Step calls are no-ops until Reset.
func (c *CPU) Step() error {
	if c.haltError != nil {
		return c.haltError
	}

	c.inDelaySlot = c.delay > 0
	if c.delay > 0 {
		c.delay--
	} else if c.branchPending {
		c.PC = c.nextPC
		c.branchPending = false
	}

	word, err := c.Mem.Read32(c.PC)
	if err != nil {
		return err
	}

	if err := c.execute(word); err != nil {
		if errors.IsFatal(err) {
			logger.Logf("cpu", "halting: %v", err)
			c.haltError = err
			return err
		}
		logger.Logf("cpu", "%v", err)
	}

	c.PC += 4
	c.COP0.Tick(1)
	return nil
}

// armBranch records a taken branch: the next instruction (the delay slot)
// still executes; the instruction after that is the one new_PC redirects
// to.
func (c *CPU) armBranch(target uint32) {
	c.branchPending = true
	c.nextPC = target
	c.delay = 1
}

// skipDelaySlot implements the branch-likely-not-taken case: the delay
// slot must not execute at all, so PC is advanced an extra 4 here, on top
// of Step's own unconditional +4, landing directly on the instruction
// after the delay slot.
func (c *CPU) skipDelaySlot() {
	c.PC += 4
}

// branchTarget computes a conditional/REGIMM branch's target: PC+4 (the
// delay slot) plus the sign-extended, word-shifted 16-bit immediate.
func branchTarget(pc uint32, imm16 uint32) uint32 {
	offset := int32(int16(imm16)) << 2
	return uint32(int32(pc+4) + offset)
}

// jumpTarget computes a J/JAL target: the top 4 bits of PC+4 combined with
// the 26-bit immediate shifted left by 2.
func jumpTarget(pc uint32, imm26 uint32) uint32 {
	return (pc+4)&0xF0000000 | (imm26 << 2)
}

// enterException redirects execution to an exception vector, abandoning any
// branch that was pending when the exception was raised. The -4 compensates
// for Step's unconditional post-execute advance.
func (c *CPU) enterException(vector uint32) {
	c.branchPending = false
	c.delay = 0
	c.PC = vector - 4
}

// CheckInterrupts raises an interrupt exception at an instruction boundary
// when COP0 reports one both pending and enabled. Deferred while a branch
// is in flight so the delay-slot pairing is never torn apart.
func (c *CPU) CheckInterrupts() {
	if c.branchPending || c.delay > 0 {
		return
	}
	if !c.COP0.IntEnabled() || !c.COP0.IntPending() {
		return
	}
	c.PC = c.COP0.RaiseException(cop0.ExcInterrupt, c.PC, false)
}
