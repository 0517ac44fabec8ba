package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingsword09/frontpl/internal/config"
	"github.com/kingsword09/frontpl/internal/manifest"
	"github.com/kingsword09/frontpl/internal/platform"
	"github.com/kingsword09/frontpl/internal/project"
	"github.com/kingsword09/frontpl/internal/prompt"
	"github.com/kingsword09/frontpl/internal/scaffold"
	"github.com/kingsword09/frontpl/internal/templates"
)

var ciYes bool

func init() {
	ciCmd.Flags().BoolVarP(&ciYes, "yes", "y", false, "Accept every default without asking")
	rootCmd.AddCommand(ciCmd)
}

var ciCmd = &cobra.Command{
	Use:   "ci",
	Short: "Add CI/release workflows to an existing project",
	Long: `Generate .github/workflows/ci.yml, an optional release workflow and an
optional Dependabot config for the project in the current directory. Existing
files are only replaced after confirmation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, ciYes)
		if err != nil {
			return err
		}
		return a.finish(runCI(cmd.Context(), a))
	},
}

// parseMajor reads a Node.js major version as users type it: "22", "22.4"
// or "v20".
func parseMajor(s string) (int, error) {
	major, ok := project.ParseMajor(s)
	if !ok {
		return 0, errors.New("enter a valid major version (e.g. 22)")
	}
	return major, nil
}

func validateMajor(s string) error {
	_, err := parseMajor(s)
	return err
}

func validateCommand(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("command is required")
	}
	return nil
}

func runCI(ctx context.Context, a *app) error {
	a.ui.Intro("frontpl (ci)")
	src := a.prompts

	message := "Package manager"
	def := preferredPackageManager()
	if detected, ok := project.Detect(a.dir); ok {
		message = fmt.Sprintf("Package manager (detected: %s)", detected)
		def = detected
	}
	pmName, err := src.Select(ctx, prompt.Select{
		Name:    "package-manager",
		Message: message,
		Options: packageManagerOptions(),
		Default: def.String(),
	})
	if err != nil {
		return err
	}
	pm, err := project.Parse(pmName)
	if err != nil {
		return err
	}

	candidates := project.Candidates(a.dir, pm)
	if len(candidates) == 0 {
		return a.fail("No package found. Run this command in a project root (with package.json or deno.json).", scaffold.ErrNoPackage)
	}
	workingDir := candidates[0]
	if len(candidates) > 1 {
		options := make([]prompt.Option, 0, len(candidates))
		for _, c := range candidates {
			options = append(options, prompt.Option{Value: c, Label: c})
		}
		workingDir, err = src.Select(ctx, prompt.Select{
			Name:    "working-directory",
			Message: "Working directory (package folder)",
			Options: options,
			Default: project.InferWorkingDirectory(a.dir, candidates),
		})
		if err != nil {
			return err
		}
	}

	nodeDefault, ok := project.NodeMajor(a.dir)
	if !ok {
		nodeDefault = config.NodeVersion()
	}
	nodeText, err := src.Text(ctx, prompt.Text{
		Name:     "node-version",
		Message:  "Node.js major version (for GitHub Actions)",
		Default:  strconv.Itoa(nodeDefault),
		Validate: validateMajor,
	})
	if err != nil {
		return err
	}
	nodeVersion, _ := parseMajor(nodeText)

	ci := templates.CIOptions{
		PackageManager:   pm.String(),
		NodeVersion:      nodeVersion,
		WorkingDirectory: workingDir,
		Workflows:        configuredWorkflows(),
	}
	if err := resolveCICommands(ctx, a, pm, &ci); err != nil {
		return err
	}

	opts := scaffold.WorkflowOptions{CI: ci}
	if opts.Release, err = confirm(ctx, src, "release", "Add release workflow too?", true); err != nil {
		return err
	}
	if opts.Release {
		if opts.ReleaseMode, err = askReleaseMode(ctx, src); err != nil {
			return err
		}
		if pm != project.Deno {
			if opts.TrustedPublishing, err = confirm(ctx, src, "trusted-publishing", "Release: npm trusted publishing (OIDC)?", true); err != nil {
				return err
			}
		}
	}
	if platform.PathExists(filepath.Join(a.dir, ".git")) {
		if opts.Dependabot, err = confirm(ctx, src, "dependabot", "Add/update Dependabot config (.github/dependabot.yml)?", true); err != nil {
			return err
		}
	}

	written, err := scaffold.WriteWorkflows(a.dir, opts, func(label string) (bool, error) {
		return confirm(ctx, src, "overwrite", fmt.Sprintf("Overwrite existing %s?", label), true)
	})
	if errors.Is(err, scaffold.ErrCISkipped) {
		a.ui.Cancel("Skipped CI workflow")
		return nil
	}
	if err != nil {
		return err
	}
	for _, f := range written {
		a.ui.Step("wrote %s", f)
	}

	if opts.Release {
		a.ui.Outro("Done. Generated CI + release workflows (and optional Dependabot).")
	} else {
		a.ui.Outro("Done. Generated CI workflow (and optional Dependabot).")
	}
	return nil
}

// resolveCICommands decides which checks CI runs. Defaults follow the scripts
// of the package; a check without a script asks for its command. Deno
// projects run every check through the reusable workflow's own tasks.
func resolveCICommands(ctx context.Context, a *app, pm project.PackageManager, ci *templates.CIOptions) error {
	if pm == project.Deno {
		ci.RunLint, ci.RunFormatCheck, ci.RunTests = true, true, true
		return nil
	}

	pkgDir := filepath.Join(a.dir, filepath.FromSlash(ci.WorkingDirectory))
	m, ok := manifest.Load(pkgDir)
	if !ok {
		return a.fail("Missing package.json in "+ci.WorkingDirectory, scaffold.ErrNoPackage)
	}

	formatScript := ""
	for _, s := range []string{"format:check", "fmt:check"} {
		if _, ok := m.Script(s); ok {
			formatScript = s
			break
		}
	}

	checks := []struct {
		name    string
		label   string
		missing string
		script  string
		prompt  string
		run     *bool
		command *string
	}{
		{"run-lint", "CI: run lint", " (no lint script detected)", scriptIf(m, "lint"), "Lint command", &ci.RunLint, &ci.LintCommand},
		{"run-format-check", "CI: run format check", " (no format check script detected)", formatScript, "Format check command", &ci.RunFormatCheck, &ci.FormatCheckCommand},
		{"run-tests", "CI: run tests", " (no test script detected)", scriptIf(m, "test"), "Test command", &ci.RunTests, &ci.TestCommand},
	}

	var err error
	for _, c := range checks {
		message := c.label
		if c.script == "" {
			message += c.missing
		}
		if *c.run, err = confirm(ctx, a.prompts, c.name, message, c.script != ""); err != nil {
			return err
		}
	}

	defaults := []string{"lint", "format:check", "test"}
	for i, c := range checks {
		if !*c.run {
			continue
		}
		if c.script != "" {
			*c.command = pm.RunScript(c.script)
			continue
		}
		cmd, err := a.prompts.Text(ctx, prompt.Text{
			Name:     c.name + "-command",
			Message:  c.prompt,
			Default:  pm.RunScript(defaults[i]),
			Validate: validateCommand,
		})
		if err != nil {
			return err
		}
		*c.command = strings.TrimSpace(cmd)
	}
	return nil
}

func scriptIf(m *manifest.Manifest, name string) string {
	if _, ok := m.Script(name); ok {
		return name
	}
	return ""
}
