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

// Package test provides small assertion helpers shared by the rest of the
// module's test suites, in place of a third-party assertion library.
package test

import (
	"strings"
	"testing"
)

// Writer is an io.Writer that buffers everything written to it and can be
// compared against an expected string. Useful for testing anything that
// writes to the logger or to a terminal.
type Writer struct {
	buf strings.Builder
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// String returns everything written so far.
func (w *Writer) String() string {
	return w.buf.String()
}

// Compare returns true if s equals everything written so far.
func (w *Writer) Compare(s string) bool {
	return w.buf.String() == s
}

// Clear empties the buffer.
func (w *Writer) Clear() {
	w.buf.Reset()
}

// ExpectEquality fails the test if got != want.
func ExpectEquality(t *testing.T, got, want any) {
	t.Helper()
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// ExpectFailure fails the test unless err is non-nil.
func ExpectFailure(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Errorf("expected an error, got nil")
	}
}

// ExpectSuccess fails the test unless err is nil.
func ExpectSuccess(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// ExpectContains fails the test unless substr appears in s.
func ExpectContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("expected %q to contain %q", s, substr)
	}
}
