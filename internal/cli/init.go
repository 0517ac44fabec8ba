package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingsword09/frontpl/internal/branding"
	"github.com/kingsword09/frontpl/internal/config"
	"github.com/kingsword09/frontpl/internal/project"
	"github.com/kingsword09/frontpl/internal/prompt"
	"github.com/kingsword09/frontpl/internal/scaffold"
	"github.com/kingsword09/frontpl/internal/templates"
)

var initYes bool

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Accept every default without asking")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Scaffold a new project",
	Long: `Scaffold a TypeScript library in ./<name>: package.json, tsconfig, editor
and git settings, and optionally oxlint, oxfmt, Vitest, tsdown, a pnpm
workspace, GitHub Actions workflows and Dependabot.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInitCmd,
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, initYes)
	if err != nil {
		return err
	}
	var name string
	if len(args) > 0 {
		name = args[0]
	}
	return a.finish(runInit(cmd.Context(), a, name))
}

func releaseModeOptions() []prompt.Option {
	return []prompt.Option{
		{Value: string(templates.ReleaseTag), Label: "Tag push (vX.Y.Z), recommended"},
		{Value: string(templates.ReleaseCommit), Label: "Release commit (chore(release): vX.Y.Z), legacy"},
		{Value: string(templates.ReleaseBoth), Label: "Both (tag + commit)"},
	}
}

func askReleaseMode(ctx context.Context, src prompt.Source) (templates.ReleaseMode, error) {
	mode, err := src.Select(ctx, prompt.Select{
		Name:    "release-mode",
		Message: "Release workflows",
		Options: releaseModeOptions(),
		Default: string(templates.ReleaseTag),
	})
	if err != nil {
		return "", err
	}
	return templates.ParseReleaseMode(mode)
}

func configuredWorkflows() templates.Workflows {
	return templates.Workflows{
		Repo:    config.WorkflowsRepo(),
		Ref:     config.WorkflowsRef(),
		Version: config.WorkflowsVersion(),
	}
}

func runInit(ctx context.Context, a *app, nameArg string) error {
	a.ui.Intro(branding.CLIName())
	src := a.prompts

	if nameArg == "" {
		nameArg = "my-frontend"
	}
	name, err := src.Text(ctx, prompt.Text{
		Name:     "name",
		Message:  "Project name",
		Default:  nameArg,
		Validate: scaffold.ValidateName,
	})
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	pmName, err := src.Select(ctx, prompt.Select{
		Name:    "package-manager",
		Message: "Package manager",
		Options: packageManagerOptions(),
		Default: preferredPackageManager().String(),
	})
	if err != nil {
		return err
	}
	pm, err := project.Parse(pmName)
	if err != nil {
		return err
	}

	opts := scaffold.Options{
		Name:           name,
		PackageManager: pm,
		NodeVersion:    config.NodeVersion(),
		Workflows:      configuredWorkflows(),
	}
	if pm == project.PNPM {
		if opts.PnpmWorkspace, err = confirm(ctx, src, "pnpm-workspace", "pnpm workspace mode (monorepo skeleton)?", false); err != nil {
			return err
		}
	}

	toggles := []struct {
		target  *bool
		name    string
		message string
		def     bool
	}{
		{&opts.UseOxlint, "oxlint", "Enable oxlint (@kingsword/lint-config preset)?", true},
		{&opts.UseOxfmt, "oxfmt", "Enable oxfmt (code formatting)?", true},
		{&opts.UseVitest, "vitest", "Add Vitest?", false},
		{&opts.UseTsdown, "tsdown", "Add tsdown build?", true},
		{&opts.InitGit, "git", "Initialize a git repository?", true},
	}
	for _, tg := range toggles {
		if *tg.target, err = confirm(ctx, src, tg.name, tg.message, tg.def); err != nil {
			return err
		}
	}

	actions, err := src.Select(ctx, prompt.Select{
		Name:    "actions",
		Message: "GitHub Actions workflows",
		Options: []prompt.Option{
			{Value: string(scaffold.ActionsNone), Label: "None"},
			{Value: string(scaffold.ActionsCI), Label: "CI only"},
			{Value: string(scaffold.ActionsRelease), Label: "CI + release"},
		},
		Default: string(scaffold.ActionsCI),
	})
	if err != nil {
		return err
	}
	opts.Actions = scaffold.Actions(actions)

	if opts.Actions == scaffold.ActionsRelease {
		if opts.ReleaseMode, err = askReleaseMode(ctx, src); err != nil {
			return err
		}
	}
	if opts.InitGit && opts.Actions != scaffold.ActionsNone {
		if opts.Dependabot, err = confirm(ctx, src, "dependabot", "Add Dependabot config (.github/dependabot.yml)?", true); err != nil {
			return err
		}
	}
	if opts.Actions == scaffold.ActionsRelease && pm != project.Deno {
		if opts.TrustedPublishing, err = confirm(ctx, src, "trusted-publishing", "Release: npm trusted publishing (OIDC)?", true); err != nil {
			return err
		}
	}

	target := filepath.Join(a.dir, name)
	gen := &scaffold.Generator{Runner: a.runner, Log: a.log}
	res, err := gen.Scaffold(ctx, target, opts)
	if errors.Is(err, scaffold.ErrDirectoryExists) {
		return a.fail("Directory already exists: "+target, err)
	}
	if err != nil {
		return err
	}

	a.ui.Step("Created %d files in %s", len(res.Files), target)
	for _, w := range res.Warnings {
		a.ui.Warn("%s", w)
	}

	next := []string{"Done. Next:", "cd " + name}
	switch res.Install {
	case scaffold.InstallUnavailable:
		next = append(next, fmt.Sprintf("(%s not found, run install manually)", pm))
	case scaffold.InstallFailed:
		next = append(next, fmt.Sprintf("(%s install failed, run install manually)", pm))
	}
	next = append(next, pm.NextStep())
	a.ui.Outro(strings.Join(next, "\n"))
	return nil
}
