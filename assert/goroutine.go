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

// Package assert provides debugging-only helpers for checking the
// thread-ownership rules: GS local memory belongs exclusively to
// the GS consumer goroutine and must never be touched from the emulator
// goroutine, and vice versa for EE state.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns an identifier for the calling goroutine. It is
// (a) different between goroutines and (b) consistent for a given
// goroutine. Only ever use this for debugging or testing purposes.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Owner records which goroutine is allowed to touch a particular piece of
// state and panics if a different goroutine calls Check. Zero value is
// "unowned" - the first caller claims ownership.
type Owner struct {
	id uint64
}

// Claim records the calling goroutine as the owner.
func (o *Owner) Claim() {
	o.id = GetGoRoutineID()
}

// Check panics if the calling goroutine is not the owner recorded by Claim.
// A zero owner (Claim never called) always passes, so this is safe to use
// in code paths exercised by single-goroutine unit tests.
func (o *Owner) Check(what string) {
	if o.id == 0 {
		return
	}
	if GetGoRoutineID() != o.id {
		panic("assert: " + what + " accessed from the wrong goroutine")
	}
}
