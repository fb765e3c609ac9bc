package logger

import (
	"bytes"
	"fmt"
	"os"
	"time"
)

// destinationFile appends uncolored lines to the log file,
// which is shared between successive pngme invocations.
type destinationFile struct {
	f    *os.File
	line bytes.Buffer
}

func newDestinationFile(fpath string) (destination, error) {
	f, err := os.OpenFile(fpath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}

	return &destinationFile{f: f}, nil
}

func (d *destinationFile) log(t time.Time, level Level, format string, args ...interface{}) {
	d.line.Reset()
	writeTime(&d.line, t, false)
	writeLevel(&d.line, level, false)
	writeContent(&d.line, format, args)

	// a single write per line keeps lines of concurrent invocations whole
	d.line.WriteTo(d.f) //nolint:errcheck
}

func (d *destinationFile) close() {
	d.f.Sync() //nolint:errcheck
	d.f.Close()
}
