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
	"os"

	"github.com/retroswitch/emotion2k/errors"
	"github.com/retroswitch/emotion2k/logger"
)

// isoSectorSize matches the CDVD drive's data payload.
const isoSectorSize = 2048

// ISOImage is a flat 2048-byte-sector disc image, implementing the CDVD
// drive's SectorReader. Raw BIN images with 2352-byte sectors are reduced
// to their data payload on read.
type ISOImage struct {
	f          *os.File
	sectors    uint32
	rawSectors bool
}

// OpenISO opens a disc image and sniffs its sector layout from the file
// size.
func OpenISO(filename string) (*ISOImage, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Errorf(errors.LoaderError, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Errorf(errors.LoaderError, err)
	}

	img := &ISOImage{f: f}
	if fi.Size()%2352 == 0 && fi.Size()%isoSectorSize != 0 {
		img.rawSectors = true
		img.sectors = uint32(fi.Size() / 2352)
	} else {
		img.sectors = uint32(fi.Size() / isoSectorSize)
	}

	return img, nil
}

// Close releases the underlying file.
func (img *ISOImage) Close() error {
	return img.f.Close()
}

// Sectors implements cdvd.SectorReader.
func (img *ISOImage) Sectors() uint32 {
	return img.sectors
}

// ReadSector implements cdvd.SectorReader.
func (img *ISOImage) ReadSector(lba uint32, buf []byte) error {
	if lba >= img.sectors {
		// past-the-end reads deliver zeroes; the drive latches its own
		// error status
		logger.Logf("loader", "%v", errors.Errorf(errors.DiscReadPastEnd, int(lba)))
		for i := range buf {
			buf[i] = 0
		}
		return nil
	}

	offset := int64(lba) * isoSectorSize
	if img.rawSectors {
		// skip the 16-byte sync/header prefix of a raw 2352-byte sector
		offset = int64(lba)*2352 + 16
	}

	if _, err := img.f.ReadAt(buf[:isoSectorSize], offset); err != nil {
		return errors.Errorf(errors.LoaderError, err)
	}
	return nil
}
