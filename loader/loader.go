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

// Package loader abstracts the ways a guest program reaches the console:
// a raw ELF injected into main RAM, or a disc image mounted behind the
// CDVD drive's sector interface. Fingerprinting looks at content first
// and falls back to the file extension.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/retroswitch/emotion2k/errors"
)

// Kind is the detected payload type.
type Kind int

const (
	KindUnknown Kind = iota
	KindELF
	KindISO
	KindBIOS
)

func (k Kind) String() string {
	switch k {
	case KindELF:
		return "ELF"
	case KindISO:
		return "ISO"
	case KindBIOS:
		return "BIOS"
	default:
		return "unknown"
	}
}

// Loader describes one loadable file.
type Loader struct {
	Filename string
	Name     string
	Kind     Kind
}

// NewLoader fingerprints the named file. The file is opened briefly for
// the content sniff but not held open.
func NewLoader(filename string) (Loader, error) {
	ld := Loader{
		Filename: filename,
		Name:     strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)),
	}

	f, err := os.Open(filename)
	if err != nil {
		return ld, errors.Errorf(errors.LoaderError, err)
	}
	defer f.Close()

	var magic [4]byte
	if _, err := f.Read(magic[:]); err == nil && magic == [4]byte{0x7F, 'E', 'L', 'F'} {
		ld.Kind = KindELF
		return ld, nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".iso", ".bin", ".img":
		ld.Kind = KindISO
	case ".elf", ".irx":
		ld.Kind = KindELF
	case ".rom":
		ld.Kind = KindBIOS
	default:
		// a 4 MiB file with no ELF magic is almost certainly a BIOS dump
		if fi, err := f.Stat(); err == nil && fi.Size() == 4<<20 {
			ld.Kind = KindBIOS
			return ld, nil
		}
		return ld, errors.Errorf(errors.UnsupportedImage, filepath.Ext(filename))
	}
	return ld, nil
}
