// Package crc contains the checksum used by PNG chunks.
package crc

import (
	"hash/crc32"
)

// Checksum computes the CRC-32/ISO-HDLC of the concatenation of parts.
// This is the same CRC used by zlib and PNG.
func Checksum(parts ...[]byte) uint32 {
	var c uint32
	for _, p := range parts {
		c = crc32.Update(c, crc32.IEEETable, p)
	}
	return c
}

// Verify checks that the CRC of the concatenation of parts equals expected.
func Verify(expected uint32, parts ...[]byte) bool {
	return Checksum(parts...) == expected
}
