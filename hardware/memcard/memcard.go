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

// Package memcard persists the memory card image: a flat file of 16384
// sectors, each 512 data bytes followed by 16 ECC bytes, 8 MiB of payload
// in total.
package memcard

import (
	"os"

	"github.com/retroswitch/emotion2k/errors"
)

// Geometry of the card.
const (
	DataBytes  = 512
	ECCBytes   = 16
	SectorSize = DataBytes + ECCBytes
	Sectors    = 16384
)

// Card is an open memory card image. Writes are buffered in memory until
// Save.
type Card struct {
	path  string
	image []byte
	dirty bool
}

// Open loads the card image at path, creating a freshly formatted (all
// 0xFF, as flash erases to) image if the file doesn't exist.
func Open(path string) (*Card, error) {
	c := &Card{path: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		c.image = make([]byte, Sectors*SectorSize)
		for i := range c.image {
			c.image[i] = 0xFF
		}
		for s := 0; s < Sectors; s++ {
			c.stampECC(s)
		}
		c.dirty = true
	case err != nil:
		return nil, errors.Errorf(errors.MemcardError, err)
	case len(data) != Sectors*SectorSize:
		return nil, errors.Errorf(errors.MemcardError, "image has wrong size")
	default:
		c.image = data
	}

	return c, nil
}

// ReadSector returns sector n's data payload and whether its stored ECC
// matches the data.
func (c *Card) ReadSector(n int) (data []byte, eccOK bool, err error) {
	if n < 0 || n >= Sectors {
		return nil, false, errors.Errorf(errors.MemcardError, "sector out of range")
	}
	off := n * SectorSize
	data = make([]byte, DataBytes)
	copy(data, c.image[off:])

	var want [ECCBytes]byte
	computeECC(want[:], data)
	eccOK = true
	for i := range want {
		if c.image[off+DataBytes+i] != want[i] {
			eccOK = false
			break
		}
	}
	return data, eccOK, nil
}

// WriteSector replaces sector n's payload and recomputes its ECC.
func (c *Card) WriteSector(n int, data []byte) error {
	if n < 0 || n >= Sectors {
		return errors.Errorf(errors.MemcardError, "sector out of range")
	}
	if len(data) != DataBytes {
		return errors.Errorf(errors.MemcardError, "sector payload must be 512 bytes")
	}
	off := n * SectorSize
	copy(c.image[off:], data)
	c.stampECC(n)
	c.dirty = true
	return nil
}

func (c *Card) stampECC(n int) {
	off := n * SectorSize
	computeECC(c.image[off+DataBytes:off+SectorSize], c.image[off:off+DataBytes])
}

// Save writes the image back to disk if any sector changed.
func (c *Card) Save() error {
	if !c.dirty {
		return nil
	}
	if err := os.WriteFile(c.path, c.image, 0644); err != nil {
		return errors.Errorf(errors.MemcardError, err)
	}
	c.dirty = false
	return nil
}

// computeECC fills ecc with the sector's error-correction bytes: each
// 128-byte chunk contributes a column parity byte and two line parity
// bytes (even and odd bit-line XOR), the 3-byte grouping the card format
// reserves 4 bytes per chunk for.
func computeECC(ecc []byte, data []byte) {
	for i := range ecc {
		ecc[i] = 0
	}
	for chunk := 0; chunk < 4; chunk++ {
		var column byte
		var lineEven, lineOdd byte
		for i, b := range data[chunk*128 : chunk*128+128] {
			column ^= b
			if i&1 == 0 {
				lineEven ^= b
			} else {
				lineOdd ^= b
			}
		}
		ecc[chunk*4] = column
		ecc[chunk*4+1] = lineEven
		ecc[chunk*4+2] = lineOdd
		ecc[chunk*4+3] = 0
	}
}
