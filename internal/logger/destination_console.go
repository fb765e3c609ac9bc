package logger

import (
	"bytes"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

type destinationConsole struct {
	w        io.Writer
	useColor bool
	buf      bytes.Buffer
}

func newDestinationConsole(w io.Writer) destination {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = term.IsTerminal(int(f.Fd()))
	}

	return &destinationConsole{
		w:        w,
		useColor: useColor,
	}
}

func (d *destinationConsole) log(t time.Time, level Level, format string, args ...interface{}) {
	d.buf.Reset()
	writeTime(&d.buf, t, d.useColor)
	writeLevel(&d.buf, level, d.useColor)
	writeContent(&d.buf, format, args)
	d.w.Write(d.buf.Bytes()) //nolint:errcheck
}

func (d *destinationConsole) close() {
}
