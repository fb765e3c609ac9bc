// Package png contains a PNG container made of a signature and a sequence of chunks.
package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/bluenviron/pngme/internal/bytecounter"
	"github.com/bluenviron/pngme/internal/chunk"
)

// Signature is the signature that starts every PNG file.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const endType = "IEND"

// ErrInvalidSignature is returned when data does not start with Signature.
var ErrInvalidSignature = errors.New("invalid PNG signature")

// ErrChunkNotFound is returned when there's no chunk with the requested type.
var ErrChunkNotFound = errors.New("chunk not found")

// PNG is a PNG file.
type PNG struct {
	chunks []*chunk.Chunk
}

// New allocates a PNG with the given chunks.
func New(chunks []*chunk.Chunk) *PNG {
	return &PNG{
		chunks: chunks,
	}
}

// Unmarshal decodes a PNG file.
func Unmarshal(buf []byte) (*PNG, error) {
	return Read(bytes.NewReader(buf))
}

// Read reads a PNG file.
func Read(r io.Reader) (*PNG, error) {
	br := bytecounter.NewReader(r)

	var sig [8]byte
	_, err := io.ReadFull(br, sig[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrInvalidSignature
		}
		return nil, err
	}

	if sig != Signature {
		return nil, ErrInvalidSignature
	}

	p := &PNG{}

	for {
		offset := br.Count()

		c, err := readChunk(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid chunk at offset %d: %w", offset, err)
		}

		p.chunks = append(p.chunks, c)
	}

	return p, nil
}

// readChunk slices the next chunk out of r and decodes it.
// It returns io.EOF when r ends at a chunk boundary.
func readChunk(r io.Reader) (*chunk.Chunk, error) {
	header := make([]byte, chunk.HeaderSize)
	n, err := io.ReadFull(r, header)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			_, err = chunk.Unmarshal(header[:n])
		}
		return nil, err
	}

	length := binary.BigEndian.Uint32(header)
	if length > chunk.MaxLength {
		return nil, &chunk.LengthTooLargeError{Length: length}
	}

	// data is copied progressively, in order not to allocate
	// the declared length before knowing whether the data is there.
	var buf bytes.Buffer
	buf.Write(header)
	_, err = io.CopyN(&buf, r, int64(length)+chunk.Overhead-chunk.HeaderSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return chunk.Unmarshal(buf.Bytes())
}

// Chunks returns the chunks of the file.
func (p *PNG) Chunks() []*chunk.Chunk {
	return p.chunks
}

// ChunkByType returns the first chunk with the given type, or nil.
func (p *PNG) ChunkByType(typ string) *chunk.Chunk {
	for _, c := range p.chunks {
		if c.Type().String() == typ {
			return c
		}
	}
	return nil
}

// AppendChunk adds a chunk before the IEND chunk, or at the end if there's no IEND chunk.
func (p *PNG) AppendChunk(c *chunk.Chunk) {
	for i := len(p.chunks) - 1; i >= 0; i-- {
		if p.chunks[i].Type().String() == endType {
			p.chunks = slices.Insert(p.chunks, i, c)
			return
		}
	}
	p.chunks = append(p.chunks, c)
}

// RemoveFirstChunk removes the first chunk with the given type and returns it.
func (p *PNG) RemoveFirstChunk(typ string) (*chunk.Chunk, error) {
	for i, c := range p.chunks {
		if c.Type().String() == typ {
			p.chunks = slices.Delete(p.chunks, i, i+1)
			return c, nil
		}
	}
	return nil, ErrChunkNotFound
}

// Size returns the size of the encoded file.
func (p *PNG) Size() int {
	n := len(Signature)
	for _, c := range p.chunks {
		n += chunk.Overhead + len(c.Data())
	}
	return n
}

// Marshal encodes the file.
func (p *PNG) Marshal() []byte {
	buf := make([]byte, 0, p.Size())
	buf = append(buf, Signature[:]...)
	for _, c := range p.chunks {
		buf = append(buf, c.Marshal()...)
	}
	return buf
}

// String implements fmt.Stringer.
func (p *PNG) String() string {
	var b strings.Builder
	for i, c := range p.chunks {
		if i != 0 {
			b.WriteByte('\n')
		}
		b.WriteString(c.String())
	}
	return b.String()
}
