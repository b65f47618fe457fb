package asyncbridge

import "slices"

// A Buffer is an append-only byte sequence.
//
// Bytes are only ever appended, never truncated or reordered.
// A Buffer must have a single writer; it is not safe for concurrent use.
//
// The zero value of Buffer is an empty buffer ready for use.
type Buffer struct {
	b []byte
}

// Write appends a copy of chunk to b.
// b does not retain chunk after Write returns.
func (b *Buffer) Write(chunk []byte) {
	b.b = append(b.b, chunk...)
}

// Len returns the number of bytes written to b.
func (b *Buffer) Len() int {
	return len(b.b)
}

// Bytes returns a copy of the content of b.
func (b *Buffer) Bytes() []byte {
	return slices.Clone(b.b)
}
