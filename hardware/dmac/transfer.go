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

package dmac

import (
	"github.com/retroswitch/emotion2k/errors"
	"github.com/retroswitch/emotion2k/logger"
)

// Source-chain tag IDs, decoded from bits 28..30 of a chain tag.
const (
	tagREFE = 0
	tagCNT  = 1
	tagNEXT = 2
	tagREF  = 3
	tagREFS = 4
	tagCALL = 5
	tagRET  = 6
	tagEND  = 7
)

// Step runs the DMA scheduler for up to budget quadwords, visiting active
// channels in fixed priority order. It returns the number of quadwords
// actually moved, which may be less than budget when channels stall on
// device backpressure.
func (d *DMAC) Step(budget int) int {
	if !d.Enabled() {
		return 0
	}

	moved := 0
	for i := range d.channels {
		if budget <= 0 {
			break
		}
		ch := &d.channels[i]
		if !ch.active() {
			continue
		}
		n, err := d.runChannel(ch, budget)
		moved += n
		budget -= n
		if err != nil {
			if errors.IsFatal(err) {
				// decode failure: drop the channel so it can't wedge the
				// scheduler, and leave the error in the log for the
				// emulation driver
				ch.chcr &^= chcrSTR
			}
			logger.Logf("dmac", "%v", err)
		}
	}
	return moved
}

// runChannel moves up to budget quadwords for one channel.
func (d *DMAC) runChannel(ch *channel, budget int) (int, error) {
	switch ch.mode() {
	case modeNormal:
		return d.runNormal(ch, budget)
	case modeChain:
		if ch.fromMemory() {
			return d.runSourceChain(ch, budget)
		}
		return d.runDestChain(ch, budget)
	case modeInterleave:
		return d.runInterleave(ch, budget)
	default:
		ch.chcr &^= chcrSTR
		return 0, errors.Errorf(errors.UnrecognisedDMAMode, int(ch.mode()), ch.id.String())
	}
}

// moveQuadword transfers a single quadword in the channel's direction,
// returning false on device backpressure.
func (d *DMAC) moveQuadword(ch *channel) (bool, error) {
	if ch.fromMemory() {
		dev := d.devices[ch.id]
		if dev == nil {
			return false, errors.Errorf("dmac: channel %s has no attached device", ch.id)
		}
		if s, ok := dev.(Staller); ok && !s.CanIngest() {
			return false, nil
		}
		lo, hi, err := d.mem.DeviceReadQuadword(ch.madr)
		if err != nil {
			return false, err
		}
		if err := dev.IngestQuadword(lo, hi); err != nil {
			return false, err
		}
	} else {
		src := d.sources[ch.id]
		if src == nil {
			return false, errors.Errorf("dmac: channel %s has no attached source", ch.id)
		}
		lo, hi, ok := src.DrainQuadword()
		if !ok {
			return false, nil
		}
		if err := d.mem.DeviceWriteQuadword(ch.madr, lo, hi); err != nil {
			return false, err
		}
	}
	ch.madr += 16
	ch.qwc--
	return true, nil
}

// runNormal drains the channel's quadword count; on reaching zero the
// channel completes.
func (d *DMAC) runNormal(ch *channel, budget int) (int, error) {
	moved := 0
	for budget > 0 && ch.qwc > 0 {
		ok, err := d.moveQuadword(ch)
		if err != nil || !ok {
			return moved, err
		}
		moved++
		budget--
	}
	if ch.qwc == 0 {
		d.complete(ch)
	}
	return moved, nil
}

// runSourceChain walks DMA tags in memory, transferring each tag's payload
// until an end-class tag's payload drains.
func (d *DMAC) runSourceChain(ch *channel, budget int) (int, error) {
	moved := 0
	for budget > 0 {
		if ch.qwc == 0 {
			if ch.tagEnd || (ch.tagIRQ && ch.chcr&chcrTIE != 0) {
				d.complete(ch)
				return moved, nil
			}
			n, err := d.readSourceTag(ch)
			moved += n
			budget -= n
			if err != nil {
				return moved, err
			}
			continue
		}
		ok, err := d.moveQuadword(ch)
		if err != nil || !ok {
			return moved, err
		}
		moved++
		budget--
	}
	// an end-class tag whose payload drained exactly at the budget edge
	// still completes this step
	if ch.qwc == 0 && (ch.tagEnd || (ch.tagIRQ && ch.chcr&chcrTIE != 0)) {
		d.complete(ch)
	}
	return moved, nil
}

// readSourceTag fetches and applies the 128-bit chain tag at TADR. The
// returned count is 1 when TTE pushed the tag's payload half to the device.
func (d *DMAC) readSourceTag(ch *channel) (int, error) {
	lo, hi, err := d.mem.DeviceReadQuadword(ch.tadr)
	if err != nil {
		return 0, err
	}

	qwc := uint32(lo & 0xFFFF)
	id := int(lo>>28) & 0x7
	irq := lo&(1<<31) != 0
	addr := uint32(lo>>32) &^ 0xF
	spr := lo&(1<<63) != 0
	if spr {
		addr |= 1 << 31
	}

	// CHCR's upper half mirrors the most recent tag
	ch.chcr = ch.chcr&0xFFFF | uint32(lo)&0xFFFF0000
	ch.tagIRQ = irq
	ch.qwc = qwc

	switch id {
	case tagREFE:
		ch.madr = addr
		ch.tadr += 16
		ch.tagEnd = true
	case tagCNT:
		ch.madr = ch.tadr + 16
		ch.tadr = ch.madr + qwc*16
	case tagNEXT:
		ch.madr = ch.tadr + 16
		ch.tadr = addr
	case tagREF, tagREFS:
		ch.madr = addr
		ch.tadr += 16
	case tagCALL:
		ch.madr = ch.tadr + 16
		if ch.asp >= len(ch.asr) {
			ch.chcr &^= chcrSTR
			return 0, errors.Errorf("dmac: %s chain CALL overflows the address stack", ch.id)
		}
		ch.asr[ch.asp] = ch.madr + qwc*16
		ch.asp++
		ch.tadr = addr
	case tagRET:
		ch.madr = ch.tadr + 16
		if ch.asp > 0 {
			ch.asp--
			ch.tadr = ch.asr[ch.asp]
		} else {
			ch.tagEnd = true
		}
	case tagEND:
		ch.madr = ch.tadr + 16
		ch.tagEnd = true
	default:
		ch.chcr &^= chcrSTR
		return 0, errors.Errorf(errors.UnrecognisedDMAMode, id, ch.id.String())
	}

	// with tag-transfer enabled, the tag's high 64 bits go to the device
	// as data
	if ch.chcr&chcrTTE != 0 {
		if dev := d.devices[ch.id]; dev != nil {
			if err := dev.IngestQuadword(hi, 0); err != nil {
				return 0, err
			}
			return 1, nil
		}
	}
	return 0, nil
}

// runDestChain pulls tags and payload from the device stream (SIF0-style)
// and scatters the payload into memory.
func (d *DMAC) runDestChain(ch *channel, budget int) (int, error) {
	src := d.sources[ch.id]
	if src == nil {
		return 0, errors.Errorf("dmac: channel %s has no attached source", ch.id)
	}

	moved := 0
	for budget > 0 {
		if ch.qwc == 0 {
			if ch.tagEnd {
				d.complete(ch)
				return moved, nil
			}
			lo, _, ok := src.DrainQuadword()
			if !ok {
				return moved, nil
			}
			qwc := uint32(lo & 0xFFFF)
			id := int(lo>>28) & 0x7
			addr := uint32(lo>>32) &^ 0xF

			ch.qwc = qwc
			ch.madr = addr
			ch.tagIRQ = lo&(1<<31) != 0
			if id == tagEND || (ch.tagIRQ && ch.chcr&chcrTIE != 0) {
				ch.tagEnd = true
			}
			continue
		}
		ok, err := d.moveQuadword(ch)
		if err != nil || !ok {
			return moved, err
		}
		moved++
		budget--
	}
	if ch.qwc == 0 && ch.tagEnd {
		d.complete(ch)
	}
	return moved, nil
}

// runInterleave services the scratchpad channels: bursts of TQWC quadwords
// with SQWC-quadword gaps in the memory walk, per D_SQWC.
func (d *DMAC) runInterleave(ch *channel, budget int) (int, error) {
	tqwc := d.sqwc & 0xFF
	skip := (d.sqwc >> 16) & 0xFF
	if tqwc == 0 {
		tqwc = 1
	}

	moved := 0
	for budget > 0 && ch.qwc > 0 {
		if ch.ileaveRun == 0 {
			ch.ileaveRun = tqwc
		}

		// interleave moves between main RAM (MADR) and scratchpad (SADR)
		if ch.id == ChSPRTo {
			lo, hi, err := d.mem.DeviceReadQuadword(ch.madr)
			if err != nil {
				return moved, err
			}
			if err := d.mem.DeviceWriteQuadword(ch.sadr|1<<31, lo, hi); err != nil {
				return moved, err
			}
		} else {
			lo, hi, err := d.mem.DeviceReadQuadword(ch.sadr | 1<<31)
			if err != nil {
				return moved, err
			}
			if err := d.mem.DeviceWriteQuadword(ch.madr, lo, hi); err != nil {
				return moved, err
			}
		}
		ch.madr += 16
		ch.sadr += 16
		ch.qwc--
		ch.ileaveRun--
		moved++
		budget--

		if ch.ileaveRun == 0 {
			ch.madr += skip * 16
		}
	}
	if ch.qwc == 0 {
		d.complete(ch)
	}
	return moved, nil
}

// complete clears the channel's start bit, records completion in D_STAT,
// and raises INT1 when the channel's mask bit permits.
func (d *DMAC) complete(ch *channel) {
	ch.chcr &^= chcrSTR
	bit := uint32(1) << uint(ch.id)
	d.stat |= bit

	logger.Logf("dmac", "%s complete", ch.id)

	if d.stat>>16&bit == 0 && d.irq != nil {
		d.irq.AssertINT1()
	}
}
