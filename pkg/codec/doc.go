// Package codec implements the persistent fault-record format for Muninn.
//
// A single record lives at the start of a fixed memory region that survives
// warm reset. The region layout is:
//
//	[FilenameLen(1)][Line(4)][Column(4)][MessageLen(2)][Checksum(1)][Filename][Message]
//
// Fields:
//   - FilenameLen: 8-bit length of the filename bytes following the header (max 255)
//   - Line: 32-bit source line of the fault site (native byte order)
//   - Column: 32-bit source column of the fault site (native byte order)
//   - MessageLen: 16-bit length of the message bytes following the filename
//   - Checksum: XOR of every region byte after the header
//
// Multi-byte fields use the device's native byte order. The record is
// written and read on the same CPU across a warm reset, so no endianness
// conversion is performed; anything leaving the device goes through the
// agent's JSON surface instead.
//
// # Checksum
//
// The checksum covers the whole region tail, from the end of the header to
// the end of the region. That includes the filename bytes, the message
// bytes, and any stale trailing bytes left over from earlier use. Validity
// therefore depends on the entire tail being unchanged between write and
// read, not just the logical payload.
//
// An all-zero region XORs to zero and matches an all-zero header, so a
// freshly zeroed region decodes as a valid empty record. This ambiguity is
// inherent to the format and is preserved; Inspect flags it for host-side
// tooling.
//
// # Fault-time constraints
//
// Encode runs while the process is already failing. It performs no
// allocation in its own pass, never returns an error, and never writes
// outside the region. The Cursor it uses for message text saturates at
// capacity instead of failing. DetectAndConsume likewise has no error
// path: a corrupted record and an absent record are indistinguishable and
// both report absence.
//
// Record accessors trust the encode path and decode stored bytes without
// re-validating them. Consumers that cannot trust the producer (host-side
// viewers reading a raw dump) should use Inspect, which validates bounds,
// checksum, and UTF-8 before surfacing any text.
package codec
