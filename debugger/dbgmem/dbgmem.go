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

// Package dbgmem sits between the debugger and the system bus: address
// parsing, side-effect-free hex dumps through the debugger bus, and the
// DMA chain visualiser in chain.go.
package dbgmem

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroswitch/emotion2k/errors"
	"github.com/retroswitch/emotion2k/hardware/memory/bus"
	"github.com/retroswitch/emotion2k/hardware/memory/memorymap"
)

// DbgMem is the debugger's view of the memory system.
type DbgMem struct {
	Mem bus.DebuggerBus
}

// ParseAddress converts a debugger-typed address: hex with or without an
// 0x prefix, or decimal with a # prefix.
func ParseAddress(s string) (uint32, error) {
	s = strings.TrimSpace(s)

	base := 16
	if strings.HasPrefix(s, "#") {
		s = s[1:]
		base = 10
	} else {
		s = strings.TrimPrefix(strings.ToLower(s), "0x")
	}

	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, errors.Errorf("dbgmem: cannot parse address %q", s)
	}
	return uint32(v), nil
}

// Dump writes rows of a canonical 16-bytes-per-line hex dump starting at
// addr, using side-effect-free peeks.
func (dm *DbgMem) Dump(w io.Writer, addr uint32, rows int) error {
	addr &^= 0xF

	for r := 0; r < rows; r++ {
		line := addr + uint32(r)*16

		region, _ := memorymap.Decode(line)
		var hexpart strings.Builder
		var ascpart strings.Builder

		for i := uint32(0); i < 16; i++ {
			b, err := dm.Mem.PeekByte(line + i)
			if err != nil {
				return err
			}
			fmt.Fprintf(&hexpart, "%02x ", b)
			if b >= 0x20 && b < 0x7F {
				ascpart.WriteByte(b)
			} else {
				ascpart.WriteByte('.')
			}
			if i == 7 {
				hexpart.WriteByte(' ')
			}
		}

		fmt.Fprintf(w, "%08x  %s |%s|  %s\n", line, hexpart.String(), ascpart.String(), region)
	}
	return nil
}
