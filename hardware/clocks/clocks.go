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

// Package clocks defines the relative clock speeds of the console's three
// independently-paced units. The scheduler (hardware/scheduler) advances all
// three in lockstep from a single EE cycle count: the bus clock runs at
// exactly half the EE clock, and the IOP clock at exactly one eighth, per
// the lockstep rule worked out for event scheduling.
package clocks

// EEHz is the Emotion Engine core clock, in Hz.
const EEHz = 294912000

// BusRatio and IOPRatio express the bus and IOP clocks as the EE clock
// divided by these ratios. Kept as divisors, rather than separate Hz
// constants, so that BusCycles/IOPCycles below stay exact integer
// arithmetic for any EE cycle count - the scheduler's lockstep advance
// depends on that exactness to avoid drift across a long run.
const (
	BusRatio = 2
	IOPRatio = 8
)

// BusHz and IOPHz are the derived clock speeds, in Hz.
const (
	BusHz = EEHz / BusRatio
	IOPHz = EEHz / IOPRatio
)

// BusCycles converts a count of EE cycles to the equivalent (integer,
// floor-rounded) count of bus cycles.
func BusCycles(eeCycles uint64) uint64 {
	return eeCycles / BusRatio
}

// IOPCycles converts a count of EE cycles to the equivalent (integer,
// floor-rounded) count of IOP cycles.
func IOPCycles(eeCycles uint64) uint64 {
	return eeCycles / IOPRatio
}
