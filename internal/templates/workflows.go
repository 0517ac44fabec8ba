package templates

import (
	"fmt"

	"github.com/kingsword09/frontpl/internal/branding"
)

// Workflows pins the reusable workflows repository. Empty fields fall back
// to the embedded branding defaults.
type Workflows struct {
	Repo    string
	Ref     string
	Version string
}

func (w Workflows) resolve() Workflows {
	if w.Repo == "" {
		w.Repo = branding.WorkflowsRepo()
	}
	if w.Ref == "" {
		w.Ref = branding.WorkflowsRef()
	}
	if w.Version == "" {
		w.Version = branding.WorkflowsVersion()
	}
	return w
}

// CIOptions parameterizes .github/workflows/ci.yml.
type CIOptions struct {
	PackageManager     string
	NodeVersion        int
	WorkingDirectory   string
	RunLint            bool
	RunFormatCheck     bool
	RunTests           bool
	LintCommand        string
	FormatCheckCommand string
	TestCommand        string
	Workflows          Workflows
}

type ciData struct {
	CIOptions
	WorkflowsRepo    string
	WorkflowsRef     string
	WorkflowsVersion string
}

// CIWorkflow renders the CI workflow calling the reusable cli-ci workflow.
func CIWorkflow(opts CIOptions) []byte {
	w := opts.Workflows.resolve()
	if opts.WorkingDirectory == "" {
		opts.WorkingDirectory = "."
	}
	return mustRender("ci.yml", ciData{
		CIOptions:        opts,
		WorkflowsRepo:    w.Repo,
		WorkflowsRef:     w.Ref,
		WorkflowsVersion: w.Version,
	})
}

// ReleaseMode selects which release trigger the workflow reacts to.
type ReleaseMode string

const (
	ReleaseTag    ReleaseMode = "tag"
	ReleaseCommit ReleaseMode = "commit"
	ReleaseBoth   ReleaseMode = "both"
)

// ParseReleaseMode validates a release mode name.
func ParseReleaseMode(s string) (ReleaseMode, error) {
	switch ReleaseMode(s) {
	case ReleaseTag, ReleaseCommit, ReleaseBoth:
		return ReleaseMode(s), nil
	}
	return "", fmt.Errorf("unknown release mode %q (want tag, commit or both)", s)
}

// ReleaseOptions parameterizes .github/workflows/release.yml.
type ReleaseOptions struct {
	Mode              ReleaseMode
	PackageManager    string
	NodeVersion       int
	WorkingDirectory  string
	TrustedPublishing bool
	Workflows         Workflows
}

type releaseData struct {
	ReleaseOptions
	PublishesToNpm   bool
	WorkflowsRepo    string
	WorkflowsRef     string
	WorkflowsVersion string
}

// ReleaseWorkflow renders the release workflow for the selected mode.
func ReleaseWorkflow(opts ReleaseOptions) []byte {
	w := opts.Workflows.resolve()
	if opts.WorkingDirectory == "" {
		opts.WorkingDirectory = "."
	}
	name := "release-tag.yml"
	switch opts.Mode {
	case ReleaseCommit:
		name = "release-commit.yml"
	case ReleaseBoth:
		name = "release-both.yml"
	}
	return mustRender(name, releaseData{
		ReleaseOptions:   opts,
		PublishesToNpm:   opts.PackageManager != "deno",
		WorkflowsRepo:    w.Repo,
		WorkflowsRef:     w.Ref,
		WorkflowsVersion: w.Version,
	})
}

// DependabotOptions parameterizes .github/dependabot.yml.
type DependabotOptions struct {
	PackageManager   string
	WorkingDirectory string
}

// Dependabot renders weekly grouped updates for npm packages and actions.
// Deno projects only get the github-actions entry.
func Dependabot(opts DependabotOptions) []byte {
	return mustRender("dependabot.yml", struct {
		UpdatesNpm bool
		Directory  string
	}{
		UpdatesNpm: opts.PackageManager != "deno",
		Directory:  WorkingDirectoryPath(opts.WorkingDirectory),
	})
}
