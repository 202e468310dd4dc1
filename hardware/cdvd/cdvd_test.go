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

package cdvd_test

import (
	"testing"

	"github.com/retroswitch/emotion2k/hardware/cdvd"
	"github.com/retroswitch/emotion2k/hardware/clocks"
	"github.com/retroswitch/emotion2k/hardware/scheduler"
	"github.com/retroswitch/emotion2k/test"
)

// patternDisc serves sectors whose first byte is the LBA.
type patternDisc struct {
	sectors uint32
}

func (d *patternDisc) ReadSector(lba uint32, buf []byte) error {
	buf[0] = byte(lba)
	return nil
}

func (d *patternDisc) Sectors() uint32 { return d.sectors }

func TestReadDeliversBlocksInOrder(t *testing.T) {
	sched := scheduler.New()
	drive := cdvd.New(sched)
	drive.Mount(&patternDisc{sectors: 100})

	var got []uint32
	drive.BlockReady = func(lba uint32, data []byte) {
		got = append(got, lba)
		test.ExpectEquality(t, data[0], byte(lba))
	}

	test.ExpectSuccess(t, drive.Read(10, 3))
	test.ExpectEquality(t, drive.Busy(), true)

	// nothing arrives before the seek has elapsed
	sched.Advance(1000)
	test.ExpectEquality(t, len(got), 0)

	// a second's worth of cycles is ample for a cold seek and three blocks
	sched.Advance(clocks.EEHz)
	test.ExpectEquality(t, len(got), 3)
	test.ExpectEquality(t, got[0], uint32(10))
	test.ExpectEquality(t, got[2], uint32(12))
	test.ExpectEquality(t, drive.Busy(), false)
}

func TestReadPastEndSetsErrorStatus(t *testing.T) {
	sched := scheduler.New()
	drive := cdvd.New(sched)
	drive.Mount(&patternDisc{sectors: 4})

	var zeroed bool
	drive.BlockReady = func(lba uint32, data []byte) {
		zeroed = data[0] == 0
	}

	test.ExpectSuccess(t, drive.Read(50, 1))
	sched.Advance(clocks.EEHz)

	test.ExpectEquality(t, zeroed, true)
	test.ExpectEquality(t, drive.Status()&cdvd.StatusSeekErr, uint32(cdvd.StatusSeekErr))
	// the error bit is sticky until read
	test.ExpectEquality(t, drive.Status()&cdvd.StatusSeekErr, uint32(0))
}

func TestReadWhileBusyIsRejected(t *testing.T) {
	sched := scheduler.New()
	drive := cdvd.New(sched)
	drive.Mount(&patternDisc{sectors: 100})

	test.ExpectSuccess(t, drive.Read(0, 1))
	test.ExpectFailure(t, drive.Read(1, 1))
}
