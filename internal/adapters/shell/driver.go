package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/creack/pty"
	"go.trai.ch/taker/internal/adapters/detector"
	"go.trai.ch/taker/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildDriver = (*Driver)(nil)

// Driver runs make either on a pseudo-terminal or with plain pipes.
type Driver struct {
	mode   detector.DriverMode
	stdout io.Writer
	stderr io.Writer
}

// NewDriver creates a Driver writing to the process's stdout and stderr.
func NewDriver(mode detector.DriverMode) *Driver {
	return NewDriverWithOutput(mode, os.Stdout, os.Stderr)
}

// NewDriverWithOutput creates a Driver writing to the given streams.
func NewDriverWithOutput(mode detector.DriverMode, stdout, stderr io.Writer) *Driver {
	if mode == detector.ModeAuto {
		mode = detector.DetectEnvironment()
	}
	return &Driver{mode: mode, stdout: stdout, stderr: stderr}
}

// Args returns the driver's command-line arguments for req.
func Args(req ports.BuildRequest) []string {
	var args []string
	if req.Jobs > 0 {
		args = append(args, "-j", strconv.Itoa(req.Jobs))
	}
	if req.Target != "" {
		args = append(args, req.Target)
	}
	return args
}

// Run executes the driver in req.Dir and waits for it. A non-zero exit is
// reported with its exit code.
func (d *Driver) Run(ctx context.Context, req ports.BuildRequest) error {
	cmd := exec.CommandContext(ctx, req.Program, Args(req)...) //nolint:gosec // program comes from the settings
	cmd.Dir = req.Dir
	cmd.Env = os.Environ()

	var err error
	if d.mode == detector.ModePTY {
		err = d.runPTY(cmd)
	} else {
		cmd.Stdout = d.stdout
		cmd.Stderr = d.stderr
		err = cmd.Run()
	}
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return zerr.With(zerr.With(zerr.Wrap(err, "make exited with an error"), "exit_code", exitCode), "dir", req.Dir)
}

func (d *Driver) runPTY(cmd *exec.Cmd) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// The pty merges stdout and stderr.
		_, _ = io.Copy(d.stdout, ptmx)
	}()

	err = cmd.Wait()
	<-ioDone
	return err
}
