package scaffold

import (
	"errors"
	"path/filepath"

	"github.com/kingsword09/frontpl/internal/platform"
	"github.com/kingsword09/frontpl/internal/templates"
)

// ErrCISkipped is returned by WriteWorkflows when the user keeps an existing
// CI workflow. Nothing else is written in that case.
var ErrCISkipped = errors.New("skipped CI workflow")

// Workflow file locations, relative to the repository root.
const (
	CIWorkflowPath      = ".github/workflows/ci.yml"
	ReleaseWorkflowPath = ".github/workflows/release.yml"
	DependabotPath      = ".github/dependabot.yml"
)

// WorkflowOptions describes the GitHub files of a project. CI carries the
// package manager, Node version and working directory shared by all files.
type WorkflowOptions struct {
	CI                templates.CIOptions
	Release           bool
	ReleaseMode       templates.ReleaseMode
	TrustedPublishing bool
	Dependabot        bool
}

func (o WorkflowOptions) files() []file {
	files := []file{{CIWorkflowPath, templates.CIWorkflow(o.CI)}}
	if o.Release {
		files = append(files, file{ReleaseWorkflowPath, templates.ReleaseWorkflow(templates.ReleaseOptions{
			Mode:              o.ReleaseMode,
			PackageManager:    o.CI.PackageManager,
			NodeVersion:       o.CI.NodeVersion,
			WorkingDirectory:  o.CI.WorkingDirectory,
			TrustedPublishing: o.TrustedPublishing,
			Workflows:         o.CI.Workflows,
		})})
	}
	if o.Dependabot {
		files = append(files, file{DependabotPath, templates.Dependabot(templates.DependabotOptions{
			PackageManager:   o.CI.PackageManager,
			WorkingDirectory: o.CI.WorkingDirectory,
		})})
	}
	return files
}

// WriteWorkflows writes the workflow files into the repository at dir. When
// a file already exists overwrite is asked with its relative path; declining
// keeps that file. Declining the CI workflow stops with ErrCISkipped.
func WriteWorkflows(dir string, opts WorkflowOptions, overwrite func(label string) (bool, error)) ([]string, error) {
	var written []string
	for i, f := range opts.files() {
		target := filepath.Join(dir, filepath.FromSlash(f.rel))
		if platform.PathExists(target) {
			ok, err := overwrite(f.rel)
			if err != nil {
				return written, err
			}
			if !ok {
				if i == 0 {
					return nil, ErrCISkipped
				}
				continue
			}
		}
		if err := platform.WriteText(target, f.data); err != nil {
			return written, err
		}
		written = append(written, f.rel)
	}
	return written, nil
}
