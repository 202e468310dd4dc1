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

// Package scheduler advances the console's three independently-paced clocks
// (EE, bus, IOP - see hardware/clocks) in lockstep and dispatches timestamped
// events against the EE cycle count. The CDVD drive (hardware/cdvd) is the
// primary event producer: a seek or sector read posts an event some number
// of EE cycles in the future, and the scheduler's Advance fires it once the
// running cycle count reaches that timestamp.
package scheduler

import (
	"sort"

	"github.com/retroswitch/emotion2k/hardware/clocks"
)

// MaxStep bounds how far Advance will move the clock in a single call, so a
// caller stepping the interpreter one instruction at a time never skips past
// an event scheduled to fire partway through a larger requested step.
const MaxStep = 512

// Event is a callback scheduled to fire once the EE cycle count reaches At.
type Event struct {
	At       uint64
	Callback func()

	// name is used only for logging/debugging; it has no effect on
	// ordering or firing.
	name string
}

// Scheduler owns the running EE cycle count and the list of pending events.
// It implements random.CycleSource so the emulator's pseudo-random streams
// can be reseeded from the current point in time.
type Scheduler struct {
	eeCycle uint64

	events []Event
}

// New is the preferred method of initialisation for the Scheduler type.
func New() *Scheduler {
	return &Scheduler{}
}

// EECycle implements random.CycleSource.
func (s *Scheduler) EECycle() uint64 {
	return s.eeCycle
}

// BusCycle returns the current bus-clock cycle count, derived from the EE
// cycle count per the fixed lockstep ratio.
func (s *Scheduler) BusCycle() uint64 {
	return clocks.BusCycles(s.eeCycle)
}

// IOPCycle returns the current IOP-clock cycle count, derived the same way.
func (s *Scheduler) IOPCycle() uint64 {
	return clocks.IOPCycles(s.eeCycle)
}

// Schedule posts a new event, to fire once the EE cycle count reaches
// s.EECycle()+delay.
func (s *Scheduler) Schedule(delay uint64, name string, callback func()) {
	s.events = append(s.events, Event{At: s.eeCycle + delay, Callback: callback, name: name})
	sort.Slice(s.events, func(i, j int) bool { return s.events[i].At < s.events[j].At })
}

// Pending reports the number of outstanding events, for the debugger/stats
// dashboard.
func (s *Scheduler) Pending() int {
	return len(s.events)
}

// Advance moves the EE cycle count forward by requested cycles, firing (in
// timestamp order) any event whose target has been reached or passed, and
// never advancing further in one call than MaxStep - so that a caller
// driving the interpreter instruction-by-instruction sees events fire
// promptly rather than batched arbitrarily far in the future.
func (s *Scheduler) Advance(requested uint64) {
	for requested > 0 {
		step := requested
		if step > MaxStep {
			step = MaxStep
		}
		if len(s.events) > 0 {
			if until := s.events[0].At - s.eeCycle; until < step {
				step = until
			}
		}
		if step == 0 {
			step = 1
		}

		s.eeCycle += step
		requested -= step

		for len(s.events) > 0 && s.events[0].At <= s.eeCycle {
			ev := s.events[0]
			s.events = s.events[1:]
			if ev.Callback != nil {
				ev.Callback()
			}
		}
	}
}

// Reset clears the cycle count and all pending events, matching the "reset
// whenever a new ELF or disc image is loaded" ownership rule.
func (s *Scheduler) Reset() {
	s.eeCycle = 0
	s.events = nil
}
