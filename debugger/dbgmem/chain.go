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

package dbgmem

import (
	"fmt"
	"io"

	"github.com/bradleyjkemp/memviz"

	"github.com/retroswitch/emotion2k/errors"
	"github.com/retroswitch/emotion2k/hardware/memory/bus"
)

// ChainNode is one DMA source-chain tag, linked the way the chain links:
// NEXT/REF tags point at a single successor, CALL tags also record the
// called subchain. The node graph feeds memviz for a dot-format dump.
type ChainNode struct {
	Tag  string
	QWC  uint16
	Addr string

	Next *ChainNode
	Call *ChainNode
}

var chainTagNames = [8]string{"REFE", "CNT", "NEXT", "REF", "REFS", "CALL", "RET", "END"}

// chainLimit bounds the walk so a looping chain still terminates.
const chainLimit = 64

// WalkChain reads the source chain starting at tadr and builds its node
// graph.
func WalkChain(mem bus.DeviceBus, tadr uint32) (*ChainNode, error) {
	return walkChain(mem, tadr, chainLimit)
}

func walkChain(mem bus.DeviceBus, tadr uint32, limit int) (*ChainNode, error) {
	if limit <= 0 {
		return &ChainNode{Tag: "...", Addr: "walk limit reached"}, nil
	}

	lo, _, err := mem.DeviceReadQuadword(tadr)
	if err != nil {
		return nil, err
	}

	qwc := uint16(lo)
	id := int(lo>>28) & 0x7
	addr := uint32(lo>>32) &^ 0xF

	node := &ChainNode{
		Tag:  chainTagNames[id],
		QWC:  qwc,
		Addr: fmt.Sprintf("%#08x", tadr),
	}

	switch id {
	case 0, 7: // REFE, END terminate
	case 6: // RET: successor depends on run-time stack state
	case 5: // CALL
		node.Call, err = walkChain(mem, addr, limit-1)
		if err != nil {
			return nil, err
		}
		node.Next, err = walkChain(mem, tadr+16+uint32(qwc)*16, limit-1)
		if err != nil {
			return nil, err
		}
	case 2: // NEXT
		node.Next, err = walkChain(mem, addr, limit-1)
		if err != nil {
			return nil, err
		}
	case 3, 4: // REF, REFS: tags are sequential
		node.Next, err = walkChain(mem, tadr+16, limit-1)
		if err != nil {
			return nil, err
		}
	case 1: // CNT: next tag follows the payload
		node.Next, err = walkChain(mem, tadr+16+uint32(qwc)*16, limit-1)
		if err != nil {
			return nil, err
		}
	}

	return node, nil
}

// DumpChain writes a dot-format graph of the source chain at tadr, for
// visualising a stalled or looping chain during development.
func DumpChain(w io.Writer, mem bus.DeviceBus, tadr uint32) error {
	root, err := WalkChain(mem, tadr)
	if err != nil {
		return errors.Errorf("dbgmem: %v", err)
	}
	memviz.Map(w, root)
	return nil
}
