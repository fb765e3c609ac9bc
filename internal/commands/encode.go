package commands

import (
	"context"

	"github.com/bluenviron/pngme/internal/chunk"
	"github.com/bluenviron/pngme/internal/logger"
)

// EncodeParams are the parameters of Encode.
type EncodeParams struct {
	FilePath   string
	ChunkType  string
	Message    string
	OutputPath string
}

// Encode stores a message into a new chunk.
// The result is written into OutputPath, or into FilePath when OutputPath is empty.
func (c *Commands) Encode(ctx context.Context, params EncodeParams) error {
	typ, err := chunk.ParseType(params.ChunkType)
	if err != nil {
		return err
	}

	p, err := c.readFile(params.FilePath)
	if err != nil {
		return err
	}

	ch := chunk.New(typ, []byte(params.Message))
	p.AppendChunk(ch)

	out := params.OutputPath
	if out == "" {
		out = params.FilePath
	}

	err = c.writeFile(ctx, out, p, typ)
	if err != nil {
		return err
	}

	c.Log(logger.Info, "encoded a %d-byte message into chunk %s of %s", ch.Length(), typ, out)
	return nil
}
