package commands

import (
	"context"
	"fmt"

	"github.com/bluenviron/pngme/internal/chunk"
	"github.com/bluenviron/pngme/internal/logger"
)

// RemoveParams are the parameters of Remove.
type RemoveParams struct {
	FilePath  string
	ChunkType string
}

// Remove removes the first chunk with the given type and returns it.
func (c *Commands) Remove(ctx context.Context, params RemoveParams) (*chunk.Chunk, error) {
	typ, err := chunk.ParseType(params.ChunkType)
	if err != nil {
		return nil, err
	}

	p, err := c.readFile(params.FilePath)
	if err != nil {
		return nil, err
	}

	ch, err := p.RemoveFirstChunk(typ.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", typ, err)
	}

	err = c.writeFile(ctx, params.FilePath, p, typ)
	if err != nil {
		return nil, err
	}

	c.Log(logger.Info, "removed chunk %s from %s", typ, params.FilePath)
	return ch, nil
}
