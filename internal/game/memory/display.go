package memory

import "github.com/sjzar/trophylodge/pkg/util"

// DisplayString is RawString normalised for humans: separators become spaces
// and words are title cased. Never use it for identifier lookups.
func (r *Reader) DisplayString(addr Address, offset uint64) string {
	return util.DisplayName(r.RawString(addr, offset))
}
