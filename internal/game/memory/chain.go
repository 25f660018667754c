package memory

import "fmt"

// Chain is a pointer path from a base address. Each offset is added to the
// current address and the pointer stored there becomes the new current
// address. Tail is added to the final address without dereferencing, for
// chains whose last hop lands inside a record instead of on a pointer.
type Chain struct {
	Name    string
	Offsets []uint64
	Tail    uint64
}

func (c Chain) String() string {
	s := c.Name + "["
	for i, o := range c.Offsets {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("0x%X", o)
	}
	s += "]"
	if c.Tail != 0 {
		s += fmt.Sprintf("+0x%X", c.Tail)
	}
	return s
}

// Resolve walks c from base. A broken link yields 0, never base+Tail, so
// reads against the result fall back to defaults.
func (r *Reader) Resolve(base Address, c Chain) Address {
	cur := base
	for _, off := range c.Offsets {
		if cur == 0 {
			return 0
		}
		cur = r.Pointer(cur, off)
	}
	if cur == 0 {
		return 0
	}
	return cur + Address(c.Tail)
}
