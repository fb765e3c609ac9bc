//go:build !windows

package externalcmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCmdRun(t *testing.T) {
	var stdout bytes.Buffer

	c := &Cmd{
		CmdStr: `sh -c 'echo "$PNGME_FILE" $PNGME_CHUNK_TYPE'`,
		Env: Environment{
			"PNGME_FILE":       "/tmp/image.png",
			"PNGME_CHUNK_TYPE": "RuSt",
		},
		Stdout: &stdout,
	}
	err := c.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/tmp/image.png RuSt\n", stdout.String())
}

func TestCmdRunPathWithSpaces(t *testing.T) {
	var stdout bytes.Buffer

	c := &Cmd{
		CmdStr: `sh -c 'printf "%s|" "$@"' sh $PNGME_FILE`,
		Env: Environment{
			"PNGME_FILE": `/tmp/my "holiday" image's copy.png`,
		},
		Stdout: &stdout,
	}
	err := c.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, `/tmp/my "holiday" image's copy.png|`, stdout.String())
}

func TestCmdExitCode(t *testing.T) {
	c := &Cmd{
		CmdStr: "sh -c 'exit 3'",
	}
	err := c.Run(context.Background())
	require.EqualError(t, err, "command exited with code 3")
}

func TestCmdInvalid(t *testing.T) {
	c := &Cmd{
		CmdStr: "sh -c 'unterminated",
	}
	err := c.Run(context.Background())
	require.Error(t, err)

	c = &Cmd{
		CmdStr: "",
	}
	err = c.Run(context.Background())
	require.EqualError(t, err, "empty command")
}

func TestCmdTerminate(t *testing.T) {
	ctx, ctxCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer ctxCancel()

	c := &Cmd{
		CmdStr: "sleep 10",
	}
	start := time.Now()
	err := c.Run(ctx)
	require.ErrorIs(t, err, errTerminated)
	require.Less(t, time.Since(start), 5*time.Second)
}
