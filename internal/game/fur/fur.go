// Package fur recovers fur display names from the game's keyed lookup tables.
//
// Each table is a flat array of fixed stride records holding a fur key and an
// offset into a shared string pool. Tables are scanned linearly up to their
// known record count; not finding a key is normal. Unmapped or zero-filled
// slots are skipped, and a match whose name cannot be read does not end the
// scan.
package fur

import (
	"encoding/binary"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/trophylodge/internal/game/memory"
	"github.com/sjzar/trophylodge/internal/game/offsets"
)

const Unknown = "Unknown"

type Resolver struct {
	reader *memory.Reader
	tables []offsets.FurTable
	pool   memory.Chain
}

func NewResolver(reader *memory.Reader) *Resolver {
	return NewResolverWithLayout(reader, offsets.FurTables, offsets.FurStrings)
}

func NewResolverWithLayout(reader *memory.Reader, tables []offsets.FurTable, pool memory.Chain) *Resolver {
	return &Resolver{reader: reader, tables: tables, pool: pool}
}

// Resolve returns the fur name for key, probing tables in order, or Unknown.
func (f *Resolver) Resolve(module memory.Address, key uint32) string {
	for _, t := range f.tables {
		if name, ok := f.scan(module, t, key); ok {
			log.Debug().Str("table", t.Name).Uint32("key", key).Str("fur", name).Msg("fur resolved")
			return name
		}
	}
	log.Debug().Uint32("key", key).Msg("fur key not found")
	return Unknown
}

func (f *Resolver) scan(module memory.Address, t offsets.FurTable, key uint32) (string, bool) {
	if t.Stride < t.KeyOffset+4 || t.Stride < t.NameOffset+4 {
		return "", false
	}
	base := f.reader.Resolve(module, t.Chain)
	if base == 0 {
		return "", false
	}
	var pool memory.Address
	for i := 0; i < t.MaxRecords; i++ {
		rec := f.reader.Bytes(base, uint64(i)*t.Stride, int(t.Stride))
		if rec == nil || blank(rec) {
			continue
		}
		if binary.LittleEndian.Uint32(rec[t.KeyOffset:]) != key {
			continue
		}
		if pool == 0 {
			pool = f.reader.Resolve(module, f.pool)
		}
		nameOffset := binary.LittleEndian.Uint32(rec[t.NameOffset:])
		if name := f.reader.DisplayString(pool, uint64(nameOffset)); name != "" {
			return name, true
		}
	}
	return "", false
}

// blank reports a zero-filled slot. Such slots carry key 0 and must not match.
func blank(rec []byte) bool {
	for _, b := range rec {
		if b != 0 {
			return false
		}
	}
	return true
}
