//go:build windows

package externalcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// taken from
// https://gist.github.com/hallazzang/76f3970bfc949831808bbebc8ca15209
func createProcessGroup() (windows.Handle, error) {
	h, err := windows.CreateJobObject(nil, nil)
	if err != nil {
		return 0, err
	}

	info := windows.JOBOBJECT_EXTENDED_LIMIT_INFORMATION{
		BasicLimitInformation: windows.JOBOBJECT_BASIC_LIMIT_INFORMATION{
			LimitFlags: windows.JOB_OBJECT_LIMIT_KILL_ON_JOB_CLOSE,
		},
	}
	_, err = windows.SetInformationJobObject(
		h,
		windows.JobObjectExtendedLimitInformation,
		uintptr(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)))
	if err != nil {
		windows.CloseHandle(h) //nolint:errcheck
		return 0, err
	}

	return h, nil
}

func addProcessToGroup(h windows.Handle, p *os.Process) error {
	access := uint32(windows.PROCESS_SET_QUOTA | windows.PROCESS_TERMINATE)

	processHandle, err := windows.OpenProcess(access, false, uint32(p.Pid))
	if err != nil {
		return fmt.Errorf("failed to open process: %w", err)
	}
	defer windows.CloseHandle(processHandle) //nolint:errcheck

	err = windows.AssignProcessToJobObject(h, processHandle)
	if err != nil {
		return fmt.Errorf("failed to assign process to job object: %w", err)
	}

	return nil
}

func (e *Cmd) runOSSpecific(ctx context.Context, env []string) error {
	var cmd *exec.Cmd

	// cmd.exe has its own unquoting algorithm, therefore the command line
	// is passed as is.
	if strings.HasPrefix(e.CmdStr, "cmd ") || strings.HasPrefix(e.CmdStr, "cmd.exe ") {
		args := e.expand(strings.TrimPrefix(strings.TrimPrefix(e.CmdStr, "cmd "), "cmd.exe "))

		cmd = exec.Command("cmd.exe")
		cmd.SysProcAttr = &syscall.SysProcAttr{
			CmdLine: args,
		}
	} else {
		cmdParts, err := e.args()
		if err != nil {
			return err
		}

		cmd = exec.Command(cmdParts[0], cmdParts[1:]...)
	}

	cmd.Env = env
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	// create a process group to kill all subprocesses
	g, err := createProcessGroup()
	if err != nil {
		return err
	}
	defer windows.CloseHandle(g) //nolint:errcheck

	err = cmd.Start()
	if err != nil {
		return err
	}

	err = addProcessToGroup(g, cmd.Process)
	if err != nil {
		return err
	}

	cmdDone := make(chan int)
	go func() {
		cmdDone <- func() int {
			err := cmd.Wait()
			if err == nil {
				return 0
			}
			var ee *exec.ExitError
			if errors.As(err, &ee) {
				return ee.ExitCode()
			}
			return 0
		}()
	}()

	select {
	case <-ctx.Done():
		windows.TerminateJobObject(g, 1) //nolint:errcheck
		<-cmdDone
		return errTerminated

	case c := <-cmdDone:
		if c != 0 {
			return fmt.Errorf("command exited with code %d", c)
		}
		return nil
	}
}
