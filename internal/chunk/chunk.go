// Package chunk contains the PNG chunk codec.
package chunk

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/bluenviron/pngme/internal/crc"
)

const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// HeaderSize is the size of the fields that precede chunk data.
	HeaderSize = lengthSize + typeSize

	// Overhead is the size of a chunk without its data.
	Overhead = HeaderSize + crcSize

	// MaxLength is the maximum length of chunk data.
	MaxLength = 1<<31 - 1
)

// Chunk is a PNG chunk.
type Chunk struct {
	length uint32
	typ    Type
	data   []byte
	crc    uint32
}

// New allocates a Chunk. The chunk takes ownership of data.
//
// The length of data is not checked against MaxLength.
func New(typ Type, data []byte) *Chunk {
	return &Chunk{
		length: uint32(len(data)),
		typ:    typ,
		data:   data,
		crc:    crc.Checksum(typ[:], data),
	}
}

// Unmarshal decodes a chunk.
// buf must contain exactly one chunk, CRC included.
func Unmarshal(buf []byte) (*Chunk, error) {
	if len(buf) < lengthSize {
		return nil, ErrBufferTooShort
	}

	length := binary.BigEndian.Uint32(buf)
	if length > MaxLength {
		return nil, &LengthTooLargeError{Length: length}
	}

	if len(buf) < HeaderSize {
		return nil, ErrBufferTooShort
	}

	var typ Type
	copy(typ[:], buf[lengthSize:HeaderSize])

	dataEnd := uint64(HeaderSize) + uint64(length)
	if uint64(len(buf)) < dataEnd {
		return nil, &IncorrectLengthError{Length: length}
	}

	rest := buf[dataEnd:]
	if len(rest) != crcSize {
		return nil, &CRCFieldSizeError{Size: len(rest)}
	}

	data := buf[HeaderSize:dataEnd]
	stored := binary.BigEndian.Uint32(rest)

	if !crc.Verify(stored, typ[:], data) {
		return nil, &CRCMismatchError{Expected: stored, Calculated: crc.Checksum(typ[:], data)}
	}

	return &Chunk{
		length: length,
		typ:    typ,
		data:   append([]byte(nil), data...),
		crc:    stored,
	}, nil
}

// Marshal encodes the chunk.
func (c *Chunk) Marshal() []byte {
	buf := make([]byte, Overhead+len(c.data))
	binary.BigEndian.PutUint32(buf, c.length)
	copy(buf[lengthSize:], c.typ[:])
	copy(buf[HeaderSize:], c.data)
	binary.BigEndian.PutUint32(buf[HeaderSize+len(c.data):], c.crc)
	return buf
}

// Length returns the declared length of chunk data.
func (c *Chunk) Length() uint32 {
	return c.length
}

// Type returns the chunk type.
func (c *Chunk) Type() Type {
	return c.typ
}

// Data returns chunk data. It must not be modified.
func (c *Chunk) Data() []byte {
	return c.data
}

// CRC returns the chunk CRC.
func (c *Chunk) CRC() uint32 {
	return c.crc
}

// DataAsString returns chunk data as text.
func (c *Chunk) DataAsString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", ErrInvalidUTF8
	}
	return string(c.data), nil
}

// String implements fmt.Stringer.
func (c *Chunk) String() string {
	return fmt.Sprintf("Chunk length: %d\nChunk type: %s\nCRC: %d\n", c.length, c.typ, c.crc)
}
