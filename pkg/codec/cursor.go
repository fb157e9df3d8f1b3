package codec

// Cursor is a saturating text sink over a fixed byte buffer. Writes that
// would overrun the buffer are silently truncated to whatever fits; the
// write itself always succeeds. It exists so the fault-time path can format
// text with no failure mode and no allocation beyond what fmt itself does.
//
// Cursor is single-writer and does no locking.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor returns a cursor writing into buf starting at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Write copies min(len(p), remaining capacity) bytes into the buffer and
// advances the offset by the bytes actually copied. It always reports the
// full input length and a nil error so callers like fmt.Fprintf keep
// formatting instead of aborting mid-message.
func (c *Cursor) Write(p []byte) (int, error) {
	c.off += copy(c.buf[c.off:], p)
	return len(p), nil
}

// WriteString is Write for strings, avoiding a []byte conversion.
func (c *Cursor) WriteString(s string) (int, error) {
	c.off += copy(c.buf[c.off:], s)
	return len(s), nil
}

// Len returns the number of bytes actually stored in the buffer, which is
// at most the buffer's capacity regardless of how much was written.
func (c *Cursor) Len() int {
	return c.off
}
