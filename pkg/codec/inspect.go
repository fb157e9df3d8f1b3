package codec

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Report is the result of a validating decode. Unlike Record it copies the
// text out of the region and carries no reference to it.
type Report struct {
	Filename   string
	Line       uint32
	Column     uint32
	Message    string
	Occupied   int
	RegionSize int

	// Empty reports an all-zero header, which is indistinguishable from
	// freshly zeroed memory.
	Empty bool
}

// Inspect performs a validating, non-consuming decode of region. It is the
// untrusted-input counterpart to DetectAndConsume, meant for host-side
// tooling reading raw region dumps: on top of the checksum it verifies
// that the declared lengths fit the region and that the stored text is
// valid UTF-8. The region is never modified.
func Inspect(region []byte) (*Report, error) {
	if len(region) < HeaderSize {
		return nil, fmt.Errorf("region too short for record header: %d < %d", len(region), HeaderSize)
	}

	filenameLen := int(region[offFilenameLen])
	messageLen := int(binary.NativeEndian.Uint16(region[offMessageLen:]))
	stored := region[offChecksum]

	if computed := checksum(region); computed != stored {
		return nil, fmt.Errorf("checksum mismatch: computed 0x%02x, stored 0x%02x", computed, stored)
	}

	occupied := HeaderSize + filenameLen + messageLen
	if occupied > len(region) {
		return nil, fmt.Errorf("record lengths exceed region: %d > %d", occupied, len(region))
	}

	filename := region[HeaderSize : HeaderSize+filenameLen]
	message := region[HeaderSize+filenameLen : occupied]
	if !utf8.Valid(filename) {
		return nil, fmt.Errorf("filename is not valid UTF-8: %q", filename)
	}
	if !utf8.Valid(message) {
		return nil, fmt.Errorf("message is not valid UTF-8: %q", message)
	}

	r := &Report{
		Filename:   string(filename),
		Line:       binary.NativeEndian.Uint32(region[offLine:]),
		Column:     binary.NativeEndian.Uint32(region[offColumn:]),
		Message:    string(message),
		Occupied:   occupied,
		RegionSize: len(region),
	}
	r.Empty = filenameLen == 0 && messageLen == 0 && r.Line == 0 && r.Column == 0 && stored == 0
	return r, nil
}

// Render formats the report for human consumption.
func (r *Report) Render() string {
	var b strings.Builder
	if r.Empty {
		b.WriteString("fault record: empty (indistinguishable from zeroed memory)\n")
	} else {
		b.WriteString("fault record: valid\n")
		fmt.Fprintf(&b, "  source:   %s:%d:%d\n", r.Filename, r.Line, r.Column)
		if r.Message == "" {
			b.WriteString("  message:  (none)\n")
		} else {
			fmt.Fprintf(&b, "  message:  %s\n", r.Message)
		}
	}
	fmt.Fprintf(&b, "  occupied: %d of %d bytes\n", r.Occupied, r.RegionSize)
	return b.String()
}
