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

package loader

import (
	"debug/elf"
	"io"

	"github.com/retroswitch/emotion2k/errors"
)

// Segment is one loadable span of an ELF image, in physical address terms.
type Segment struct {
	Addr uint32
	Data []byte
}

// ELF is a parsed guest executable.
type ELF struct {
	Entry    uint32
	Segments []Segment
}

// LoadELF parses the named file's program headers. Only MIPS little-endian
// executables are accepted.
func LoadELF(filename string) (*ELF, error) {
	f, err := elf.Open(filename)
	if err != nil {
		return nil, errors.Errorf(errors.LoaderError, err)
	}
	defer f.Close()

	if f.Machine != elf.EM_MIPS || f.Data != elf.ELFDATA2LSB {
		return nil, errors.Errorf(errors.LoaderError, "not a little-endian MIPS executable")
	}

	out := &ELF{Entry: uint32(f.Entry)}

	for _, p := range f.Progs {
		if p.Type != elf.PT_LOAD || p.Filesz == 0 {
			continue
		}
		data := make([]byte, p.Memsz)
		if _, err := io.ReadFull(p.Open(), data[:p.Filesz]); err != nil {
			return nil, errors.Errorf(errors.LoaderError, err)
		}
		out.Segments = append(out.Segments, Segment{
			// load addresses arrive as virtual KSEG/KUSEG pointers
			Addr: uint32(p.Paddr) & 0x1FFFFFFF,
			Data: data,
		})
	}

	if len(out.Segments) == 0 {
		return nil, errors.Errorf(errors.LoaderError, "no loadable segments")
	}
	return out, nil
}
