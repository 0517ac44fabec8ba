package migrate

import (
	"context"
	"fmt"

	"github.com/kingsword09/frontpl/internal/project"
	"github.com/kingsword09/frontpl/internal/prompt"
)

// InstallResult is the outcome of the dependency install step.
type InstallResult int

const (
	InstallSkipped InstallResult = iota
	InstallSkippedDeno
	InstallDone
	InstallFailed
)

// Install offers to install dependencies with the engine's package manager.
// Deno projects are never installed. A failed install is not an error.
func (e *Engine) Install(ctx context.Context, auto bool) (InstallResult, error) {
	pm := e.PackageManager
	if pm == project.Deno {
		return InstallSkippedDeno, nil
	}
	if pm == "" {
		pm = project.PNPM
	}

	ok, err := e.confirm(ctx, auto, prompt.Confirm{
		Name:    QuestionInstall,
		Message: fmt.Sprintf("Install dependencies now with %s?", pm),
		Default: true,
	})
	if err != nil {
		return InstallSkipped, err
	}
	if !ok {
		return InstallSkipped, nil
	}

	name, args := pm.InstallArgs()
	if !e.Runner.Run(ctx, e.Dir, name, args...) {
		e.logger().Warn("install failed", "package_manager", pm)
		return InstallFailed, nil
	}
	return InstallDone, nil
}
