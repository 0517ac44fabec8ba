// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is baked into the binary with //go:embed. Forks edit it to
// rename the command, move the settings directory, or point generated GitHub
// workflows at their own reusable-workflow repository.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName          string `yaml:"cli_name"`
	DisplayName      string `yaml:"display_name"`
	Description      string `yaml:"description"`
	HomeDir          string `yaml:"home_dir"`
	EnvPrefix        string `yaml:"env_prefix"`
	GoModule         string `yaml:"go_module"`
	WorkflowsRepo    string `yaml:"workflows_repo"`
	WorkflowsRef     string `yaml:"workflows_ref"`
	WorkflowsVersion string `yaml:"workflows_version"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:          "frontpl",
			DisplayName:      "frontpl",
			Description:      "Scaffold standardized frontend templates",
			HomeDir:          ".frontpl",
			EnvPrefix:        "FRONTPL",
			GoModule:         "github.com/kingsword09/frontpl",
			WorkflowsRepo:    "kingsword09/workflows",
			WorkflowsRef:     "7320d30bcd47cee17cc2d8d28250ba1ab1f742b8",
			WorkflowsVersion: "v1.0.3",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "frontpl").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".frontpl").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "FRONTPL").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// WorkflowsRepo returns the "owner/repo" hosting the reusable GitHub workflows
// that generated ci.yml and release.yml call into.
func WorkflowsRepo() string { load(); return defaults.WorkflowsRepo }

// WorkflowsRef returns the pinned commit of WorkflowsRepo.
func WorkflowsRef() string { load(); return defaults.WorkflowsRef }

// WorkflowsVersion returns the release tag matching WorkflowsRef. It is only
// written as a trailing comment next to the pinned ref.
func WorkflowsVersion() string { load(); return defaults.WorkflowsVersion }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "FRONTPL_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
