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

package gs

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/retroswitch/emotion2k/assert"
	"github.com/retroswitch/emotion2k/logger"
)

// message kinds carried by the ring.
const (
	msgWriteRegister = iota
	msgWriteDouble
	msgReadDouble
	msgRenderCRT
	msgReadHostQuad
	msgReset
	msgQuit
)

// message is one unit of work handed from the emulator goroutine to the GS
// consumer goroutine. Requests that need an answer carry a reply channel;
// the emulator goroutine blocks on it, which is what serialises
// local-to-host reads and frame scanout against the preceding register
// writes.
type message struct {
	kind   int
	reg    uint8
	offset uint32
	value  uint64
	reply  chan reply
}

type reply struct {
	value uint64
	hi    uint64
	ok    bool
	pix   []byte
	w, h  int
}

// ringCapacity is the fixed size of the SPSC message ring. Must be a power
// of two.
const ringCapacity = 4096

// ring is a lock-free single-producer/single-consumer queue. head is
// advanced only by the consumer, tail only by the producer.
type ring struct {
	buf  [ringCapacity]message
	head atomic.Uint64
	tail atomic.Uint64
}

func (r *ring) push(m message) bool {
	tail := r.tail.Load()
	if tail-r.head.Load() >= ringCapacity {
		return false
	}
	r.buf[tail&(ringCapacity-1)] = m
	r.tail.Store(tail + 1)
	return true
}

func (r *ring) pop() (message, bool) {
	head := r.head.Load()
	if head == r.tail.Load() {
		return message{}, false
	}
	m := r.buf[head&(ringCapacity-1)]
	r.head.Store(head + 1)
	return m, true
}

// Engine wraps a GS in its consumer goroutine. The emulator goroutine
// talks to the GS exclusively through Engine methods; local memory is
// owned by the consumer goroutine and never touched directly.
type Engine struct {
	gs   *GS
	ring ring

	// owner asserts that only the consumer goroutine touches the wrapped
	// GS once Start has run
	owner assert.Owner

	wake chan struct{}
	done sync.WaitGroup

	running bool
}

// NewEngine builds an Engine around a fresh GS. Start must be called
// before any messages are submitted.
func NewEngine() *Engine {
	return &Engine{
		gs:   New(),
		wake: make(chan struct{}, 1),
	}
}

// GS exposes the wrapped synchronous core for tests and for single-
// threaded use before Start.
func (e *Engine) GS() *GS { return e.gs }

// Start launches the consumer goroutine.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	e.done.Add(1)
	go e.consume()
}

// Stop drains the ring and terminates the consumer goroutine.
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	e.submit(message{kind: msgQuit})
	e.done.Wait()
	e.running = false
}

// Reset drains both sides and reinitialises the GS from scratch.
func (e *Engine) Reset() {
	if !e.running {
		e.gs.Reset()
		return
	}
	r := make(chan reply, 1)
	e.submit(message{kind: msgReset, reply: r})
	<-r
}

// submit pushes a message, yielding to the consumer while the ring is
// full.
func (e *Engine) submit(m message) {
	for !e.ring.push(m) {
		e.signal()
		runtime.Gosched()
	}
	e.signal()
}

func (e *Engine) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// consume is the GS goroutine: it applies messages strictly in submission
// order and sleeps when the ring is empty.
func (e *Engine) consume() {
	defer e.done.Done()
	e.owner.Claim()

	for {
		m, ok := e.ring.pop()
		if !ok {
			<-e.wake
			continue
		}

		e.owner.Check("gs engine")

		switch m.kind {
		case msgWriteRegister:
			if err := e.gs.WriteRegister(m.reg, m.value); err != nil {
				logger.Logf("gs", "%v", err)
			}
		case msgWriteDouble:
			_ = e.gs.WriteDouble(m.offset, m.value)
		case msgReadDouble:
			v, _ := e.gs.ReadDouble(m.offset)
			m.reply <- reply{value: v}
		case msgRenderCRT:
			pix, w, h := e.gs.RenderCRT()
			m.reply <- reply{pix: pix, w: w, h: h}
		case msgReadHostQuad:
			lo, hi, ok := e.gs.ReadHostQuadword()
			m.reply <- reply{value: lo, hi: hi, ok: ok}
		case msgReset:
			e.gs.Reset()
			m.reply <- reply{}
		case msgQuit:
			return
		}
	}
}

// WriteRegister implements gif.GSPort on the emulator-goroutine side.
func (e *Engine) WriteRegister(reg uint8, value uint64) error {
	if !e.running {
		return e.gs.WriteRegister(reg, value)
	}
	e.submit(message{kind: msgWriteRegister, reg: reg, value: value})
	return nil
}

// WriteDouble implements the privileged register bank, forwarded in order
// with the drawing traffic.
func (e *Engine) WriteDouble(offset uint32, value uint64) error {
	if !e.running {
		return e.gs.WriteDouble(offset, value)
	}
	e.submit(message{kind: msgWriteDouble, offset: offset, value: value})
	return nil
}

// ReadDouble is synchronous: the reply arrives only after every preceding
// message has been applied.
func (e *Engine) ReadDouble(offset uint32) (uint64, error) {
	if !e.running {
		return e.gs.ReadDouble(offset)
	}
	r := make(chan reply, 1)
	e.submit(message{kind: msgReadDouble, offset: offset, reply: r})
	return (<-r).value, nil
}

// RenderCRT requests a frame scanout; all register writes submitted before
// this call are applied before the framebuffer is read.
func (e *Engine) RenderCRT() (pix []byte, w, h int) {
	if !e.running {
		return e.gs.RenderCRT()
	}
	r := make(chan reply, 1)
	e.submit(message{kind: msgRenderCRT, reply: r})
	rep := <-r
	return rep.pix, rep.w, rep.h
}

// ReadHostQuadword drains local-to-host transfer data. The emulator
// goroutine blocks until the payload is produced, preserving the ordering
// guarantee for readback.
func (e *Engine) ReadHostQuadword() (lo, hi uint64, ok bool) {
	if !e.running {
		return e.gs.ReadHostQuadword()
	}
	r := make(chan reply, 1)
	e.submit(message{kind: msgReadHostQuad, reply: r})
	rep := <-r
	return rep.value, rep.hi, rep.ok
}
