package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kingsword09/frontpl/internal/config"
	"github.com/kingsword09/frontpl/internal/logging"
	"github.com/kingsword09/frontpl/internal/project"
	"github.com/kingsword09/frontpl/internal/prompt"
	"github.com/kingsword09/frontpl/internal/runner"
)

// app is what a command needs from the outside world. Tests build one with
// scripted prompts and a fake runner.
type app struct {
	dir     string
	ui      *prompt.Session
	prompts prompt.Source
	runner  runner.Runner
	log     *logging.Logger
}

// newApp wires a command to the process: the --cwd directory, stdio, the
// terminal (or defaults under --yes) and real subprocesses.
var newApp = func(cmd *cobra.Command, yes bool) (*app, error) {
	dir, err := workingDir()
	if err != nil {
		return nil, err
	}
	log := logging.Default()

	var src prompt.Source = prompt.Defaults{}
	if !yes {
		if f, ok := cmd.InOrStdin().(*os.File); ok && !prompt.IsInteractive(f) {
			log.Debug("stdin is not a terminal, reading answers line by line")
		}
		src = prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	return &app{
		dir:     dir,
		ui:      prompt.NewSession(cmd.OutOrStdout()),
		prompts: src,
		runner:  runner.New(log),
		log:     log,
	}, nil
}

func workingDir() (string, error) {
	dir := cwdFlag
	if dir == "" {
		return os.Getwd()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving --cwd: %w", err)
	}
	return abs, nil
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// fail prints msg as the closing line of the session and returns err marked
// as reported, so the command exits 1 without printing it again.
func (a *app) fail(msg string, err error) error {
	a.ui.Cancel(msg)
	return &reportedError{err: err}
}

// finish closes the session for a command error. Cancellation prints the
// cancel line and is turned into a clean exit by execute.
func (a *app) finish(err error) error {
	if errors.Is(err, prompt.ErrCancelled) {
		a.ui.Cancel("Cancelled")
	}
	return err
}

// preferredPackageManager is the configured fallback when detection fails.
func preferredPackageManager() project.PackageManager {
	pm, err := project.Parse(config.PackageManager())
	if err != nil {
		return project.PNPM
	}
	return pm
}

func confirm(ctx context.Context, src prompt.Source, name, message string, def bool) (bool, error) {
	return src.Confirm(ctx, prompt.Confirm{Name: name, Message: message, Default: def})
}

func packageManagerOptions() []prompt.Option {
	var opts []prompt.Option
	for _, pm := range project.All() {
		opts = append(opts, prompt.Option{Value: pm.String(), Label: pm.String()})
	}
	return opts
}
