// Package region resolves the fixed memory range that holds the persistent
// fault record into a bounds-checked byte view.
//
// The region's bounds are external constants owned by the environment
// (link configuration, a reserved range of a character device, or a plain
// file during development). Accessors re-derive the view on every call
// rather than caching a slice header, and nothing outside this package
// touches raw addresses. The deployment contract, not checked at runtime,
// is that the region is at least codec.HeaderSize bytes and that its
// backing memory keeps its bit pattern across the warm reset in use.
package region

// Accessor resolves the persistent region into a mutable byte view over
// [start, end). Implementations have no side effects.
type Accessor interface {
	Bytes() []byte
}

// Static is a region over a process-owned buffer. It backs tests and soft
// deployments where the record only needs to survive a process restart
// managed by a supervisor, not a machine reset.
type Static struct {
	buf []byte
}

// NewStatic returns a zeroed static region of the given size.
func NewStatic(size int) *Static {
	return &Static{buf: make([]byte, size)}
}

// Bytes returns the region view.
func (s *Static) Bytes() []byte {
	return s.buf
}
