package cpu

import (
	"encoding/binary"
)

// DefaultMemorySize is the initial capacity of a data image.
const DefaultMemorySize = 1024

// Memory is a byte-addressable, big-endian data image. Writes past the end
// grow the image; the gap is zero-filled. Offsets must not be negative.
type Memory struct {
	data []byte
}

// NewMemory creates an empty image with room for size bytes before growing.
func NewMemory(size int) *Memory {
	if size <= 0 {
		size = DefaultMemorySize
	}
	return &Memory{
		data: make([]byte, 0, size),
	}
}

// ensure makes [off, off+n) addressable.
func (m *Memory) ensure(off, n int) {
	end := off + n
	if end <= len(m.data) {
		return
	}
	if end > cap(m.data) {
		c := cap(m.data) * 2
		if c < end {
			c = end
		}
		grown := make([]byte, len(m.data), c)
		copy(grown, m.data)
		m.data = grown
	}
	m.data = m.data[:end]
}

// Store writes one byte at off.
func (m *Memory) Store(b byte, off int) {
	m.ensure(off, 1)
	m.data[off] = b
}

// StoreHalf writes a 16-bit value big-endian at off.
func (m *Memory) StoreHalf(v int16, off int) {
	m.ensure(off, 2)
	binary.BigEndian.PutUint16(m.data[off:], uint16(v))
}

// StoreWord writes a 32-bit value big-endian at off.
func (m *Memory) StoreWord(v int32, off int) {
	m.ensure(off, 4)
	binary.BigEndian.PutUint32(m.data[off:], uint32(v))
}

// StoreString writes the raw bytes of s at off and returns how many were written.
func (m *Memory) StoreString(s string, off int) int {
	m.ensure(off, len(s))
	return copy(m.data[off:], s)
}

// Load reads one byte. Unwritten addresses read as zero.
func (m *Memory) Load(off int) byte {
	if off < 0 || off >= len(m.data) {
		return 0
	}
	return m.data[off]
}

// LoadHalf reads a big-endian 16-bit value.
func (m *Memory) LoadHalf(off int) int16 {
	return int16(uint16(m.Load(off))<<8 | uint16(m.Load(off+1)))
}

// LoadWord reads a big-endian 32-bit value.
func (m *Memory) LoadWord(off int) int32 {
	var b [4]byte
	for i := range b {
		b[i] = m.Load(off + i)
	}
	return int32(binary.BigEndian.Uint32(b[:]))
}

// Len is the number of addressable bytes written so far.
func (m *Memory) Len() int {
	return len(m.data)
}

// Bytes returns a copy of the image.
func (m *Memory) Bytes() []byte {
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}

// Reset empties the image. Capacity is kept and zeroed, so bytes exposed
// by later growth read as zero.
func (m *Memory) Reset() {
	clear(m.data)
	m.data = m.data[:0]
}
