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

// Package paths resolves filesystem locations for the emulator's on-disk
// state: preferences, memory card images, and savestates all live under a
// single dotted directory in the user's home directory.
package paths

import (
	"os"
	"path/filepath"
)

// baseDir is the dotted directory name under the user's home directory.
const baseDir = ".emotion2k"

// ResourcePath builds a path of the form ~/.emotion2k/<subdir>/<file>,
// omitting either component when empty, and ensures the directory portion
// exists.
func ResourcePath(subdir string, file string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	p := filepath.Join(home, baseDir)
	if subdir != "" {
		p = filepath.Join(p, subdir)
	}

	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}

	if file != "" {
		p = filepath.Join(p, file)
	}

	return p, nil
}
