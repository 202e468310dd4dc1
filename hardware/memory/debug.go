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

package memory

// PeekByte implements bus.DebuggerBus: a byte-addressable region read that
// never triggers the side effects (FIFO draining, write-one-to-clear
// registers) a normal CPU access would.
func (m *Memory) PeekByte(vaddr uint32) (uint8, error) {
	region, off, err := m.resolve(vaddr)
	if err != nil {
		return 0, err
	}
	if b := m.bytesFor(region); b != nil {
		return load8(b, off), nil
	}
	return 0, nil
}

// PokeByte implements bus.DebuggerBus.
func (m *Memory) PokeByte(vaddr uint32, data uint8) error {
	region, off, err := m.resolve(vaddr)
	if err != nil {
		return err
	}
	if b := m.bytesFor(region); b != nil {
		store8(b, off, data)
	}
	return nil
}
