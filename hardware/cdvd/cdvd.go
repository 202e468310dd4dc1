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

// Package cdvd models the CD/DVD drive's timing and data path: reads are
// split into a seek event followed by per-block read events posted against
// the scheduler, and each block's arrival raises the drive's DMA request
// line. The disc itself is abstracted behind SectorReader, so container
// parsing lives with the loader rather than here.
package cdvd

import (
	"github.com/retroswitch/emotion2k/errors"
	"github.com/retroswitch/emotion2k/hardware/clocks"
	"github.com/retroswitch/emotion2k/hardware/scheduler"
	"github.com/retroswitch/emotion2k/logger"
)

// SectorSize is the data payload of one disc sector.
const SectorSize = 2048

// SectorReader is the byte-addressable view of a mounted disc image.
type SectorReader interface {
	// ReadSector fills buf with sector lba's payload. Reading past the end
	// of the image is reported as an error; the drive substitutes zeroes.
	ReadSector(lba uint32, buf []byte) error

	// Sectors reports the image size.
	Sectors() uint32
}

// Seek and read timing in EE cycles, derived from wall-clock figures: a
// cold seek is a third of a second, a short hop tens of milliseconds.
const (
	coldSeekCycles  = clocks.EEHz / 3
	shortSeekCycles = clocks.EEHz * 30 / 1000
	longSeekCycles  = clocks.EEHz * 100 / 1000

	// shortSeekSectors is the distance below which a seek counts as short
	shortSeekSectors = 1024

	// sectorReadCycles approximates a 4x DVD drive's per-sector pace
	sectorReadCycles = clocks.EEHz / (4 * 1350000 / SectorSize)
)

// Status bits reported by Status.
const (
	StatusSpinning = 1 << 0
	StatusReading  = 1 << 1
	StatusSeekErr  = 1 << 5
)

// CDVD is the drive.
type CDVD struct {
	sched *scheduler.Scheduler
	disc  SectorReader

	// position is the head's current sector, used to classify seeks
	position uint32
	spunUp   bool

	status uint32

	// pending read state
	reading   bool
	nextLBA   uint32
	remaining uint32

	sectorBuf [SectorSize]byte

	// BlockReady is called as each sector's data arrives; it stands in
	// for the DMA request line the IOP-side DMAC would sample.
	BlockReady func(lba uint32, data []byte)

	// SeekErrorBit controls whether out-of-range reads latch the sticky
	// error status bit, or only log.
	SeekErrorBit bool
}

// New builds a drive posting its events against sched.
func New(sched *scheduler.Scheduler) *CDVD {
	return &CDVD{sched: sched, SeekErrorBit: true}
}

// Mount inserts a disc image. The drive spins down, so the next read pays
// the cold-seek cost.
func (c *CDVD) Mount(disc SectorReader) {
	c.disc = disc
	c.spunUp = false
	c.position = 0
	c.status = 0
	c.reading = false
}

// Status reports the drive status register, including the sticky seek
// error bit. Reading clears the error.
func (c *CDVD) Status() uint32 {
	s := c.status
	c.status &^= StatusSeekErr
	return s
}

// Busy reports whether a read sequence is still in flight.
func (c *CDVD) Busy() bool { return c.reading }

// Read posts a seek followed by per-block read events for count sectors
// starting at lba.
func (c *CDVD) Read(lba, count uint32) error {
	if c.disc == nil {
		return errors.Errorf("cdvd: no disc mounted")
	}
	if c.reading {
		return errors.Errorf("cdvd: read issued while busy")
	}

	c.reading = true
	c.nextLBA = lba
	c.remaining = count
	c.status |= StatusSpinning

	delay := c.seekCycles(lba)
	c.position = lba
	c.sched.Schedule(delay, "cdvd seek", c.seekDone)
	return nil
}

// seekCycles classifies the head movement: cold spin-up, short hop, or a
// full stroke.
func (c *CDVD) seekCycles(lba uint32) uint64 {
	if !c.spunUp {
		c.spunUp = true
		return coldSeekCycles
	}
	distance := int64(lba) - int64(c.position)
	if distance < 0 {
		distance = -distance
	}
	if distance < shortSeekSectors {
		return shortSeekCycles
	}
	return longSeekCycles
}

func (c *CDVD) seekDone() {
	c.status |= StatusReading
	c.sched.Schedule(sectorReadCycles, "cdvd read", c.blockDone)
}

// blockDone delivers one sector and schedules the next.
func (c *CDVD) blockDone() {
	lba := c.nextLBA

	for i := range c.sectorBuf {
		c.sectorBuf[i] = 0
	}
	if lba >= c.disc.Sectors() {
		// out-of-range reads deliver zeroes and latch the error status
		logger.Logf("cdvd", "%v", errors.Errorf(errors.DiscReadPastEnd, int(lba)))
		if c.SeekErrorBit {
			c.status |= StatusSeekErr
		}
	} else if err := c.disc.ReadSector(lba, c.sectorBuf[:]); err != nil {
		logger.Logf("cdvd", "%v", err)
		if c.SeekErrorBit {
			c.status |= StatusSeekErr
		}
	}

	if c.BlockReady != nil {
		c.BlockReady(lba, c.sectorBuf[:])
	}

	c.nextLBA++
	c.remaining--
	c.position = lba
	if c.remaining == 0 {
		c.reading = false
		c.status &^= StatusReading
		return
	}
	c.sched.Schedule(sectorReadCycles, "cdvd read", c.blockDone)
}
