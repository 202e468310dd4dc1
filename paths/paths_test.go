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

package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/retroswitch/emotion2k/paths"
	"github.com/retroswitch/emotion2k/test"
)

func TestResourcePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	pth, err := paths.ResourcePath("memcards", "card0.mcd")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(home, ".emotion2k", "memcards", "card0.mcd"))

	pth, err = paths.ResourcePath("", "prefs")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(home, ".emotion2k", "prefs"))
}
