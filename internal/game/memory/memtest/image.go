// Package memtest provides an in-memory process image for tests.
package memtest

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/sjzar/trophylodge/internal/errors"
	"github.com/sjzar/trophylodge/internal/game/memory"
)

// Image is a sparse byte addressable memory. Unwritten bytes are unmapped and
// any read touching them fails.
type Image struct {
	mu    sync.RWMutex
	bytes map[memory.Address]byte
	reads map[memory.Address]int
}

func NewImage() *Image {
	return &Image{
		bytes: make(map[memory.Address]byte),
		reads: make(map[memory.Address]int),
	}
}

func (m *Image) ReadMemory(addr memory.Address, size int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads[addr]++
	out := make([]byte, size)
	for i := 0; i < size; i++ {
		b, ok := m.bytes[addr+memory.Address(i)]
		if !ok {
			return nil, errors.ReadMemoryFailed(uint64(addr), errors.ErrAddressInvalid)
		}
		out[i] = b
	}
	return out, nil
}

// Reads returns how many reads started at addr.
func (m *Image) Reads(addr memory.Address) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads[addr]
}

func (m *Image) PutBytes(addr memory.Address, b []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, v := range b {
		m.bytes[addr+memory.Address(i)] = v
	}
}

// Unmap removes size bytes starting at addr.
func (m *Image) Unmap(addr memory.Address, size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < size; i++ {
		delete(m.bytes, addr+memory.Address(i))
	}
}

func (m *Image) PutByte(addr memory.Address, v uint8) {
	m.PutBytes(addr, []byte{v})
}

func (m *Image) PutUint32(addr memory.Address, v uint32) {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	m.PutBytes(addr, b)
}

func (m *Image) PutInt32(addr memory.Address, v int32) {
	m.PutUint32(addr, uint32(v))
}

func (m *Image) PutFloat32(addr memory.Address, v float32) {
	m.PutUint32(addr, math.Float32bits(v))
}

func (m *Image) PutPointer(addr memory.Address, v memory.Address) {
	b := make([]byte, memory.PointerSize)
	binary.LittleEndian.PutUint64(b, uint64(v))
	m.PutBytes(addr, b)
}

// PutString writes s followed by a terminating zero byte.
func (m *Image) PutString(addr memory.Address, s string) {
	m.PutBytes(addr, append([]byte(s), 0))
}

// Zero maps size zero bytes at addr.
func (m *Image) Zero(addr memory.Address, size int) {
	m.PutBytes(addr, make([]byte, size))
}
