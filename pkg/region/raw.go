package region

import "unsafe"

// Raw is the bridge from externally supplied raw addresses to a byte view.
// It is for memory the environment has already mapped into the process at
// a fixed address; all unsafe address arithmetic in the module lives here.
type Raw struct {
	start uintptr
	end   uintptr
}

// NewRaw returns a region over [start, end). The caller vouches that the
// range is mapped, writable, and end >= start.
func NewRaw(start, end uintptr) *Raw {
	return &Raw{start: start, end: end}
}

// Bytes re-derives the view from the stored bounds.
func (r *Raw) Bytes() []byte {
	//nolint:govet // the address is an external constant, not a Go pointer
	return unsafe.Slice((*byte)(unsafe.Pointer(r.start)), r.end-r.start)
}
