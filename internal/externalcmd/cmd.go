// Package externalcmd allows to launch external commands.
package externalcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
)

var errTerminated = errors.New("terminated")

// Environment is a Cmd environment.
type Environment map[string]string

// Cmd is an external command.
type Cmd struct {
	CmdStr string
	Env    Environment
	Stdout io.Writer
	Stderr io.Writer
}

// Run runs the command and waits for its termination.
// When ctx is canceled, the command and its subprocesses are killed.
func (e *Cmd) Run(ctx context.Context) error {
	if e.Stdout == nil {
		e.Stdout = os.Stdout
	}
	if e.Stderr == nil {
		e.Stderr = os.Stderr
	}

	env := append([]string(nil), os.Environ()...)
	for key, val := range e.Env {
		env = append(env, key+"="+val)
	}

	return e.runOSSpecific(ctx, env)
}

// expand replaces variables in both Linux and Windows, in order to allow
// using the same commands on both of them.
func (e *Cmd) expand(s string) string {
	for key, val := range e.Env {
		s = strings.ReplaceAll(s, "$"+key, val)
	}
	return s
}

// args splits the command line and then replaces variables inside each
// argument, so that a file path containing spaces or quotes stays a single
// argument.
func (e *Cmd) args() ([]string, error) {
	parts, err := shellquote.Split(e.CmdStr)
	if err != nil {
		return nil, err
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	for i, part := range parts {
		parts[i] = e.expand(part)
	}

	return parts, nil
}
