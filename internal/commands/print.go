package commands

import (
	"fmt"
	"io"

	"code.cloudfoundry.org/bytefmt"
)

// PrintParams are the parameters of Print.
type PrintParams struct {
	FilePath string
	Output   io.Writer
}

// Print writes a description of every chunk of a file.
func (c *Commands) Print(params PrintParams) error {
	p, err := c.readFile(params.FilePath)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(params.Output, "File: %s (%s, %d chunks)\n\n%s",
		params.FilePath, bytefmt.ByteSize(uint64(p.Size())), len(p.Chunks()), p)
	return err
}
