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

package logger_test

import (
	"strings"
	"testing"

	"github.com/retroswitch/emotion2k/logger"
	"github.com/retroswitch/emotion2k/test"
)

func TestDefaultLogger(t *testing.T) {
	w := &test.Writer{}

	logger.Log("mmu", "unmapped read at 0x12345678")
	logger.Write(w)
	test.ExpectContains(t, w.String(), "mmu: unmapped read at 0x12345678")
}

func TestCentralLogger(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	log.Log(logger.Allow, "tlb", "miss at vaddr 0x70000000")
	log.Log(logger.Allow, "dmac", "unrecognised chain tag ID 7")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tlb: miss at vaddr 0x70000000\ndmac: unrecognised chain tag ID 7\n")

	// a third entry rolls the oldest off the ring
	log.Log(logger.Allow, "gs", "write to unmapped register offset 0x200")
	w.Reset()
	log.Write(w)
	test.ExpectEquality(t, w.String(), "dmac: unrecognised chain tag ID 7\ngs: write to unmapped register offset 0x200\n")

	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "gs: write to unmapped register offset 0x200\n")

	w.Reset()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "dmac: unrecognised chain tag ID 7\ngs: write to unmapped register offset 0x200\n")
}

func TestDeniedLogDoesNotAppend(t *testing.T) {
	log := logger.NewLogger(4)
	w := &strings.Builder{}

	log.Log(logger.Deny, "cdvd", "should not appear")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")
}
