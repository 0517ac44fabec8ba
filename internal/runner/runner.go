package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/kingsword09/frontpl/internal/logging"
)

// Runner runs external commands.
type Runner interface {
	// Run executes name with args in dir, streaming output to the terminal.
	Run(ctx context.Context, dir, name string, args ...string) bool
	// Capture executes name with args in dir and returns its stdout.
	Capture(ctx context.Context, dir, name string, args ...string) (string, bool)
}

// Exec is the os/exec backed Runner.
type Exec struct {
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Log    *logging.Logger
}

// New returns an Exec wired to the process stdio.
func New(log *logging.Logger) *Exec {
	return &Exec{Log: log.WithComponent("runner")}
}

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, dir, name string, args ...string) bool {
	stdout := e.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	_, ok := e.exec(ctx, dir, stdout, name, args)
	return ok
}

// Capture implements Runner.
func (e *Exec) Capture(ctx context.Context, dir, name string, args ...string) (string, bool) {
	return e.exec(ctx, dir, nil, name, args)
}

func (e *Exec) exec(ctx context.Context, dir string, stream io.Writer, name string, args []string) (string, bool) {
	log := e.Log
	if log == nil {
		log = logging.Discard()
	}

	bin, err := exec.LookPath(Resolve(name))
	if err != nil {
		log.Debug("executable not found", "name", name, "error", err)
		return "", false
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	stdin := e.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stderr := e.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stdoutBuf bytes.Buffer
	if stream != nil {
		cmd.Stdin = stdin
		cmd.Stdout = io.MultiWriter(stream, &stdoutBuf)
		cmd.Stderr = stderr
	} else {
		cmd.Stdout = &stdoutBuf
	}

	log.Debug("running", "cmd", Format(name, args...), "dir", dir)
	err = cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Debug("command failed", "cmd", name, "exit", exitErr.ExitCode())
		} else {
			log.Debug("command did not start", "cmd", name, "error", err)
		}
		return stdoutBuf.String(), false
	}
	return stdoutBuf.String(), true
}

// Resolve maps a command name to the executable to look up. On Windows the
// Node package managers are installed as .cmd shims.
func Resolve(name string) string {
	return resolveFor(runtime.GOOS, name)
}

func resolveFor(goos, name string) string {
	if goos != "windows" {
		return name
	}
	switch name {
	case "npm", "pnpm", "yarn":
		return name + ".cmd"
	}
	return name
}

// Format renders a command line for display.
func Format(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
