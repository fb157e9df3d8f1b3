package codec

import (
	"encoding/binary"
	"io"
)

const (
	// HeaderSize is the fixed size of the record header at the start of
	// the region.
	HeaderSize = 12

	// MaxFilename is the longest filename the header can describe.
	MaxFilename = 255

	// maxMessage is the longest message the 16-bit length field can
	// describe; larger regions simply leave the tail unused.
	maxMessage = 1<<16 - 1
)

// Header field offsets within the region.
const (
	offFilenameLen = 0
	offLine        = 1
	offColumn      = 5
	offMessageLen  = 9
	offChecksum    = 11
)

// Location identifies the source position of a fault. Column is zero when
// the platform does not report columns.
type Location struct {
	File   string
	Line   uint32
	Column uint32
}

// Record is a fault record decoded out of a region. Header fields are
// copied by value at decode time; the text accessors read the payload
// bytes out of the region, which stay in place after consumption (only the
// header is zeroed).
type Record struct {
	FilenameLen uint8
	Line        uint32
	Column      uint32
	MessageLen  uint16
	Checksum    uint8

	region []byte
}

// Encode writes a fault record into region in a single forward pass. It
// never fails and never writes outside the region.
//
// The filename is clamped to MaxFilename bytes and to the region's
// remaining capacity. When writeMessage is non-nil it is handed a
// saturating writer positioned directly after the filename; the bytes it
// manages to store become the message. A nil writeMessage is minimal mode:
// no message is formatted and MessageLen stays zero.
//
// The checksum is computed over every byte after the header, including
// stale trailing bytes, and the completed header is written to the start
// of the region as one block.
//
// A region shorter than HeaderSize is outside the deployment contract;
// Encode leaves it untouched rather than corrupt adjacent memory.
func Encode(region []byte, loc *Location, writeMessage func(io.Writer)) {
	if len(region) < HeaderSize {
		return
	}

	var hdr [HeaderSize]byte

	filenameLen := 0
	if loc != nil {
		filenameLen = copy(region[HeaderSize:], clampFilename(loc.File))
		hdr[offFilenameLen] = uint8(filenameLen)
		binary.NativeEndian.PutUint32(hdr[offLine:], loc.Line)
		binary.NativeEndian.PutUint32(hdr[offColumn:], loc.Column)
	}

	if writeMessage != nil {
		message := region[HeaderSize+filenameLen:]
		if len(message) > maxMessage {
			message = message[:maxMessage]
		}
		cursor := NewCursor(message)
		writeMessage(cursor)
		binary.NativeEndian.PutUint16(hdr[offMessageLen:], uint16(cursor.Len()))
	}

	hdr[offChecksum] = checksum(region)
	copy(region, hdr[:])
}

// DetectAndConsume reads the record at the start of region, reporting
// whether a valid one was present. On a checksum match it copies the
// header fields out, zeroes the header in place so the next call reports
// absence, and returns the record. A mismatch means either no fault
// occurred or the stored bytes changed since the write; the two are
// deliberately indistinguishable.
//
// Note that an all-zero region matches an all-zero header and decodes as a
// valid empty record.
func DetectAndConsume(region []byte) (*Record, bool) {
	if len(region) < HeaderSize {
		return nil, false
	}

	r := &Record{
		FilenameLen: region[offFilenameLen],
		Line:        binary.NativeEndian.Uint32(region[offLine:]),
		Column:      binary.NativeEndian.Uint32(region[offColumn:]),
		MessageLen:  binary.NativeEndian.Uint16(region[offMessageLen:]),
		Checksum:    region[offChecksum],
		region:      region,
	}
	if checksum(region) != r.Checksum {
		return nil, false
	}

	for i := 0; i < HeaderSize; i++ {
		region[i] = 0
	}
	return r, true
}

// Filename returns the recorded source filename. The bytes are trusted to
// be the ones the encode path wrote and are not re-validated.
func (r *Record) Filename() string {
	return string(r.payload(HeaderSize, int(r.FilenameLen)))
}

// Message returns the recorded fault message, empty in minimal mode.
func (r *Record) Message() string {
	return string(r.payload(HeaderSize+int(r.FilenameLen), int(r.MessageLen)))
}

// Size returns the number of region bytes the record occupies.
func (r *Record) Size() int {
	return HeaderSize + int(r.FilenameLen) + int(r.MessageLen)
}

// payload slices n bytes of the region starting at off, clamped to the
// region so a checksum-colliding garbage header cannot cause an
// out-of-range panic.
func (r *Record) payload(off, n int) []byte {
	if off > len(r.region) {
		return nil
	}
	if rest := len(r.region) - off; n > rest {
		n = rest
	}
	return r.region[off : off+n]
}

// checksum XORs every region byte after the header.
func checksum(region []byte) uint8 {
	var x uint8
	for _, b := range region[HeaderSize:] {
		x ^= b
	}
	return x
}

// clampFilename truncates a filename to MaxFilename bytes.
func clampFilename(name string) string {
	if len(name) > MaxFilename {
		return name[:MaxFilename]
	}
	return name
}
