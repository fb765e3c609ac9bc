// Package core contains the main struct of the software.
package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/bluenviron/pngme/internal/commands"
	"github.com/bluenviron/pngme/internal/conf"
	"github.com/bluenviron/pngme/internal/filewatcher"
	"github.com/bluenviron/pngme/internal/logger"
)

var version = "v0.0.0"

var defaultConfPaths = []string{
	"pngme.yml",
	"/usr/local/etc/pngme.yml",
	"/usr/etc/pngme.yml",
	"/etc/pngme/pngme.yml",
}

type encodeCmd struct {
	File      string `arg:"" type:"existingfile" help:"PNG file."`
	ChunkType string `arg:"" help:"Chunk type, 4 ASCII letters."`
	Message   string `arg:"" help:"Message to hide."`
	Output    string `short:"o" help:"Output file. The input file is overwritten when omitted."`
}

func (c *encodeCmd) Run(p *Core) error {
	return p.commands.Encode(p.ctx, commands.EncodeParams{
		FilePath:   c.File,
		ChunkType:  c.ChunkType,
		Message:    c.Message,
		OutputPath: c.Output,
	})
}

type decodeCmd struct {
	File      string `arg:"" type:"existingfile" help:"PNG file."`
	ChunkType string `arg:"" help:"Chunk type, 4 ASCII letters."`
}

func (c *decodeCmd) Run(p *Core) error {
	msg, err := p.commands.Decode(commands.DecodeParams{
		FilePath:  c.File,
		ChunkType: c.ChunkType,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(p.stdout, msg)
	return err
}

type removeCmd struct {
	File      string `arg:"" type:"existingfile" help:"PNG file."`
	ChunkType string `arg:"" help:"Chunk type, 4 ASCII letters."`
}

func (c *removeCmd) Run(p *Core) error {
	ch, err := p.commands.Remove(p.ctx, commands.RemoveParams{
		FilePath:  c.File,
		ChunkType: c.ChunkType,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(p.stdout, "Removed chunk:\n%s", ch)
	return err
}

type printCmd struct {
	File  string `arg:"" type:"existingfile" help:"PNG file."`
	Watch bool   `short:"w" help:"Print again every time the file is written."`
}

func (c *printCmd) Run(p *Core) error {
	params := commands.PrintParams{
		FilePath: c.File,
		Output:   p.stdout,
	}

	err := p.commands.Print(params)
	if err != nil || !c.Watch {
		return err
	}

	w := &filewatcher.FileWatcher{FilePath: c.File}
	err = w.Initialize()
	if err != nil {
		return err
	}
	defer w.Close()

	p.Log(logger.Info, "watching %s", c.File)

	for {
		select {
		case _, ok := <-w.Watch():
			if !ok {
				return fmt.Errorf("file watcher stopped")
			}

			fmt.Fprintln(p.stdout) //nolint:errcheck

			err = p.commands.Print(params)
			if err != nil {
				p.Log(logger.Error, "%s", err)
			}

		case <-p.ctx.Done():
			return nil
		}
	}
}

type cli struct {
	Version kong.VersionFlag `help:"Print version."`
	Conf    string           `help:"Path to a config file." placeholder:"PATH"`

	Encode encodeCmd `cmd:"" help:"Hide a message into a new chunk."`
	Decode decodeCmd `cmd:"" help:"Print the message hidden in a chunk."`
	Remove removeCmd `cmd:"" help:"Remove a chunk."`
	Print  printCmd  `cmd:"" help:"Print all chunks."`
}

// Core is an instance of pngme.
type Core struct {
	ctx       context.Context
	ctxCancel func()
	conf      *conf.Conf
	logger    *logger.Logger
	commands  *commands.Commands
	stdout    io.Writer
	stderr    io.Writer
	exit      func(int)
}

// Run runs pngme with the given command line arguments and returns the exit code.
func Run(args []string) int {
	p := &Core{
		stdout: os.Stdout,
		stderr: os.Stderr,
		exit:   os.Exit,
	}
	return p.run(args)
}

// Log is the main logging function.
func (p *Core) Log(level logger.Level, format string, args ...interface{}) {
	p.logger.Log(level, format, args...)
}

func (p *Core) run(args []string) int {
	var c cli

	parser, err := kong.New(&c,
		kong.Name("pngme"),
		kong.Description("pngme "+version+", hides messages inside PNG files"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Writers(p.stdout, p.stderr),
		kong.Exit(p.exit))
	if err != nil {
		panic(err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.FatalIfErrorf(err)
		return 1
	}

	var confPath string
	p.conf, confPath, err = conf.Load(c.Conf, defaultConfPaths)
	if err != nil {
		fmt.Fprintf(p.stderr, "ERR: %s\n", err)
		return 1
	}

	p.logger = &logger.Logger{
		Level:        logger.Level(p.conf.LogLevel),
		Destinations: p.conf.LogDestinations,
		File:         p.conf.LogFile,
	}
	err = p.logger.Initialize()
	if err != nil {
		fmt.Fprintf(p.stderr, "ERR: %s\n", err)
		return 1
	}
	defer p.logger.Close()

	if confPath != "" {
		p.Log(logger.Debug, "configuration loaded from %s", confPath)
	}

	p.ctx, p.ctxCancel = signal.NotifyContext(context.Background(), os.Interrupt)
	defer p.ctxCancel()

	p.commands = &commands.Commands{
		MaxFileSize: uint64(p.conf.MaxFileSize),
		RunOnWrite:  p.conf.RunOnWrite,
		Parent:      p,
	}

	err = kctx.Run(p)
	if err != nil {
		p.Log(logger.Error, "%s", err)
		return 1
	}

	return 0
}
