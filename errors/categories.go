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

package errors

// Curated error patterns. Each is passed to Errorf as the leading pattern
// and matched against with Is/Has/Head elsewhere in the module.
const (
	// EE interpreter decode failures (fatal)
	UnimplementedOpcode = "ee: unimplemented opcode %#08x at pc %#08x"
	ProhibitedPrimitive = "gs: prohibited primitive type kicked"

	// DMAC / GIF / GS decode failures
	UnrecognisedDMAMode     = "dmac: unrecognised chain tag id %d on channel %s"
	UnrecognisedGSRegister  = "gs: write to unrecognised register offset %#04x"
	UnrecognisedGIFFormat   = "gif: unrecognised tag format %d"

	// non-fatal address-decode / TLB conditions
	AddressDecodeMiss = "mmu: no mapped region for address %#08x"
	TLBMiss           = "tlb: miss for vaddr %#08x asid %d"

	// arithmetic
	DivideByZero = "ee: divide by zero in %s"

	// peripherals
	DiscReadPastEnd = "cdvd: read past end of disc image at sector %d"
	MessageRingFull = "gif: gs message ring full, yielding"

	// loader / persistence
	LoaderError        = "loader: %v"
	MemcardError       = "memcard: %v"
	SavestateError     = "savestate: %v"
	UnsupportedImage   = "loader: unsupported image format %q"
)
