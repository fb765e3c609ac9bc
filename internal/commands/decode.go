package commands

import (
	"fmt"

	"github.com/bluenviron/pngme/internal/chunk"
	"github.com/bluenviron/pngme/internal/png"
)

// DecodeParams are the parameters of Decode.
type DecodeParams struct {
	FilePath  string
	ChunkType string
}

// Decode returns the message stored in the first chunk with the given type.
func (c *Commands) Decode(params DecodeParams) (string, error) {
	typ, err := chunk.ParseType(params.ChunkType)
	if err != nil {
		return "", err
	}

	p, err := c.readFile(params.FilePath)
	if err != nil {
		return "", err
	}

	ch := p.ChunkByType(typ.String())
	if ch == nil {
		return "", fmt.Errorf("%s: %w", typ, png.ErrChunkNotFound)
	}

	return ch.DataAsString()
}
