// Package json implements a compact, reference-counted JSON document tree
// backed by a slab allocator for small blocks, with a streaming parser and
// compact/pretty serialization.
package json

import (
	"encoding/binary"
	"sync"
)

// Slab size classes. A block carries an 8-byte header: byte 0 is the class
// tag, bytes 4..8 hold the payload length. User data begins at offset 8 and
// is always NUL-terminated.
const (
	headerSize = 8

	class24  = 0 // payload <= 24 bytes, 32-byte block
	class56  = 1 // payload <= 56 bytes, 64-byte block
	class120 = 2 // payload <= 120 bytes, 128-byte block
	classBig = 3 // anything larger, exact-size block

	maxFreePerClass = 4095
	maxFreeMem      = 4095
)

var classCap = [3]int{32, 64, 128}

// jalloc recycles small string blocks and mem records. A single process-wide
// instance guarded by a mutex; the free lists are bounded so a burst of large
// documents cannot pin memory forever.
type jalloc struct {
	mu   sync.Mutex
	free [3][][]byte
	mems []*mem

	// live block accounting, used by tests to check refcount balance
	liveBlocks int64
	liveMems   int64
}

var ja jalloc

// alloc returns a block with at least n usable bytes at offsets 8..8+n.
// The class tag is stamped at byte 0.
func (a *jalloc) alloc(n int) []byte {
	var c int
	switch {
	case n <= 24:
		c = class24
	case n <= 56:
		c = class56
	case n <= 120:
		c = class120
	default:
		c = classBig
	}

	a.mu.Lock()
	a.liveBlocks++
	if c < classBig {
		if l := len(a.free[c]); l > 0 {
			b := a.free[c][l-1]
			a.free[c] = a.free[c][:l-1]
			a.mu.Unlock()
			return b
		}
		a.mu.Unlock()
		b := make([]byte, classCap[c])
		b[0] = byte(c)
		return b
	}
	a.mu.Unlock()
	b := make([]byte, n+headerSize)
	b[0] = classBig
	return b
}

// dealloc returns a block to its class free list, or drops it for the
// garbage collector when the list is full or the block is oversize.
func (a *jalloc) dealloc(b []byte) {
	c := int(b[0])
	a.mu.Lock()
	a.liveBlocks--
	if c < classBig && len(a.free[c]) < maxFreePerClass {
		a.free[c] = append(a.free[c], b)
	}
	a.mu.Unlock()
}

// allocMem returns a cleared mem record, recycling released ones.
func (a *jalloc) allocMem() *mem {
	a.mu.Lock()
	a.liveMems++
	if l := len(a.mems); l > 0 {
		m := a.mems[l-1]
		a.mems = a.mems[:l-1]
		a.mu.Unlock()
		return m
	}
	a.mu.Unlock()
	return &mem{}
}

// deallocMem clears m and returns it to the record free list. The element
// and key slices keep their capacity so rebuilt documents reuse them.
func (a *jalloc) deallocMem(m *mem) {
	m.typ = 0
	m.refn = 0
	m.i = 0
	m.f = 0
	m.b = false
	m.s = nil
	m.elems = m.elems[:0]
	m.keys = m.keys[:0]

	a.mu.Lock()
	a.liveMems--
	if len(a.mems) < maxFreeMem {
		a.mems = append(a.mems, m)
	}
	a.mu.Unlock()
}

// reset drops every cached block and record so the garbage collector can
// reclaim them. The live counters are left unchanged. Nothing in the package
// calls it outside tests.
func (a *jalloc) reset() {
	a.mu.Lock()
	for c := range a.free {
		a.free[c] = nil
	}
	a.mems = nil
	a.mu.Unlock()
}

func (a *jalloc) live() (blocks, mems int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.liveBlocks, a.liveMems
}

// newBlock copies p into a freshly allocated block, stamps the length and
// appends the NUL terminator.
func (a *jalloc) newBlock(p []byte) []byte {
	b := a.alloc(len(p) + 1)
	binary.LittleEndian.PutUint32(b[4:8], uint32(len(p)))
	copy(b[headerSize:], p)
	b[headerSize+len(p)] = 0
	return b
}

// blockBytes returns the payload view of a block.
func blockBytes(b []byte) []byte {
	n := binary.LittleEndian.Uint32(b[4:8])
	return b[headerSize : headerSize+int(n)]
}
