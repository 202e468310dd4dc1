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

// Package hardware is the top of the console: the PS2 type wires the
// Emotion Engine, its coprocessors, the system bus, the DMA controller,
// the Graphics Interface, the Graphics Synthesizer and the CDVD drive
// together and paces them against the scheduler. Everything below this
// package is a single subsystem; everything above it (emulation loop,
// debugger, GUI) drives the console through the PS2 type alone.
//
// All console state is owned by the goroutine calling Step, with one
// exception: the GS runs behind a message ring on its own consumer
// goroutine (see hardware/gs).
package hardware
