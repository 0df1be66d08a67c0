// Package buf contains helpers for endian-safe decoding routines.
package buf

import "encoding/binary"

// U32LE reads a little-endian uint32 from b. Returns 0 when b is too short.
func U32LE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// PutU32LE writes v to b in little-endian order. No-op when b is too short.
func PutU32LE(b []byte, v uint32) {
	if len(b) < 4 {
		return
	}
	binary.LittleEndian.PutUint32(b, v)
}

// FitsList reports whether count elements of elemSize bytes starting at
// offset lie inside a buffer of bufLen bytes, without overflowing.
func FitsList(bufLen, offset, count, elemSize int) bool {
	if offset < 0 || count < 0 || elemSize < 0 || offset > bufLen {
		return false
	}
	if elemSize != 0 && count > (bufLen-offset)/elemSize {
		return false
	}
	return true
}
