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

package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroswitch/emotion2k/loader"
	"github.com/retroswitch/emotion2k/test"
)

func write(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestELFFingerprintByMagic(t *testing.T) {
	// the magic wins even with a misleading extension
	path := write(t, "game.bin", []byte{0x7F, 'E', 'L', 'F', 1, 1, 1})

	ld, err := loader.NewLoader(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ld.Kind, loader.KindELF)
	test.ExpectEquality(t, ld.Name, "game")
}

func TestISOFingerprintByExtension(t *testing.T) {
	path := write(t, "game.iso", make([]byte, 2048))

	ld, err := loader.NewLoader(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ld.Kind, loader.KindISO)
}

func TestUnknownExtensionFails(t *testing.T) {
	path := write(t, "whatever.txt", []byte("not a disc"))

	_, err := loader.NewLoader(path)
	test.ExpectFailure(t, err)
}

func TestISOImageSectorReads(t *testing.T) {
	data := make([]byte, 3*2048)
	data[2048] = 0xAB // first byte of sector 1

	img, err := loader.OpenISO(write(t, "tiny.iso", data))
	test.ExpectSuccess(t, err)
	defer img.Close()

	test.ExpectEquality(t, img.Sectors(), uint32(3))

	buf := make([]byte, 2048)
	test.ExpectSuccess(t, img.ReadSector(1, buf))
	test.ExpectEquality(t, buf[0], uint8(0xAB))

	// past-the-end reads zero the buffer without error
	test.ExpectSuccess(t, img.ReadSector(10, buf))
	test.ExpectEquality(t, buf[0], uint8(0))
}
