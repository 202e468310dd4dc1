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

// Package errors implements "curated" errors: an error value that carries a
// fixed pattern string (one of the constants in categories.go) plus
// formatting arguments, so callers can match on the pattern with Is/Has
// instead of on error identity. This is how the emulator's error taxonomy
// (decode failure, address-decode miss, TLB miss, ...) is represented: each
// condition is a distinct pattern, and the emulation driver decides whether
// a given pattern is fatal by calling Is() against the small set of
// decode-failure patterns.
package errors
