// Package commands contains the operations that can be performed on PNG files.
package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/bluenviron/pngme/internal/chunk"
	"github.com/bluenviron/pngme/internal/externalcmd"
	"github.com/bluenviron/pngme/internal/logger"
	"github.com/bluenviron/pngme/internal/png"
)

// FileTooLargeError is returned when a file exceeds the maximum allowed size.
type FileTooLargeError struct {
	Size    uint64
	MaxSize uint64
}

// Error implements the error interface.
func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file size (%d bytes) exceeds maximum allowed size (%d bytes)", e.Size, e.MaxSize)
}

// Commands performs operations on PNG files.
type Commands struct {
	MaxFileSize uint64
	RunOnWrite  string
	HookStdout  io.Writer
	Parent      logger.Writer
}

// Log implements logger.Writer.
func (c *Commands) Log(level logger.Level, format string, args ...interface{}) {
	c.Parent.Log(level, format, args...)
}

func (c *Commands) readFile(fpath string) (*png.PNG, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	if c.MaxFileSize != 0 && uint64(fi.Size()) > c.MaxFileSize {
		return nil, &FileTooLargeError{Size: uint64(fi.Size()), MaxSize: c.MaxFileSize}
	}

	c.Log(logger.Debug, "reading %s (%d bytes)", fpath, fi.Size())

	p, err := png.Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fpath, err)
	}

	return p, nil
}

// writeFile writes into a temporary file that is then renamed,
// in order not to leave a partially written file behind.
func (c *Commands) writeFile(ctx context.Context, fpath string, p *png.PNG, typ chunk.Type) error {
	perm := os.FileMode(0o644)
	if fi, err := os.Stat(fpath); err == nil {
		perm = fi.Mode().Perm()
	}

	tmpPath := fpath + "." + uuid.NewString() + ".tmp"

	err := os.WriteFile(tmpPath, p.Marshal(), perm)
	if err != nil {
		return err
	}

	err = os.Rename(tmpPath, fpath)
	if err != nil {
		os.Remove(tmpPath) //nolint:errcheck
		return err
	}

	c.Log(logger.Debug, "wrote %s", fpath)

	if c.RunOnWrite != "" {
		c.Log(logger.Info, "runOnWrite command started")

		cmd := &externalcmd.Cmd{
			CmdStr: c.RunOnWrite,
			Env: externalcmd.Environment{
				"PNGME_FILE":       fpath,
				"PNGME_CHUNK_TYPE": typ.String(),
			},
			Stdout: c.HookStdout,
		}
		err = cmd.Run(ctx)
		if err != nil {
			return fmt.Errorf("runOnWrite: %w", err)
		}
	}

	return nil
}
