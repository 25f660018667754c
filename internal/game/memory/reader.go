// Package memory reads typed values out of a foreign process image. Every read
// is total: a failed read yields the zero value of the requested type.
package memory

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// Address is a location in the target's address space.
type Address uint64

func (a Address) String() string {
	return fmt.Sprintf("0x%X", uint64(a))
}

// PointerSize is the width of a pointer in the target process.
const PointerSize = 8

// MaxStringLength bounds a null terminated byte run.
const MaxStringLength = 256

// Source is the raw read capability of a process handle.
type Source interface {
	ReadMemory(addr Address, size int) ([]byte, error)
}

type Reader struct {
	src Source
}

func NewReader(src Source) *Reader {
	return &Reader{src: src}
}

// Bytes reads size bytes at addr+offset. It returns nil when the read fails
// or comes back short.
func (r *Reader) Bytes(addr Address, offset uint64, size int) []byte {
	if addr == 0 || size <= 0 {
		return nil
	}
	at := addr + Address(offset)
	buf, err := r.src.ReadMemory(at, size)
	if err != nil {
		log.Trace().Err(err).Str("addr", at.String()).Int("size", size).Msg("read failed")
		return nil
	}
	if len(buf) < size {
		log.Trace().Str("addr", at.String()).Int("size", size).Int("got", len(buf)).Msg("short read")
		return nil
	}
	return buf[:size]
}

func (r *Reader) Byte(addr Address, offset uint64) uint8 {
	b := r.Bytes(addr, offset, 1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) Int32(addr Address, offset uint64) int32 {
	return int32(r.Uint32(addr, offset))
}

func (r *Reader) Uint32(addr Address, offset uint64) uint32 {
	b := r.Bytes(addr, offset, 4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *Reader) Float32(addr Address, offset uint64) float32 {
	b := r.Bytes(addr, offset, 4)
	if b == nil {
		return 0
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// Pointer reads a pointer sized word; zero on error.
func (r *Reader) Pointer(addr Address, offset uint64) Address {
	b := r.Bytes(addr, offset, PointerSize)
	if b == nil {
		return 0
	}
	return Address(binary.LittleEndian.Uint64(b))
}

// RawString scans forward one byte at a time until a zero byte, a failed read
// or MaxStringLength. The bytes are returned untouched, ready for identifier
// matching.
func (r *Reader) RawString(addr Address, offset uint64) string {
	if addr == 0 {
		return ""
	}
	buf := make([]byte, 0, 32)
	for i := uint64(0); i < MaxStringLength; i++ {
		b := r.Bytes(addr, offset+i, 1)
		if b == nil || b[0] == 0 {
			break
		}
		buf = append(buf, b[0])
	}
	return string(buf)
}
