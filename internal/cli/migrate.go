package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingsword09/frontpl/internal/migrate"
	"github.com/kingsword09/frontpl/internal/project"
	"github.com/kingsword09/frontpl/internal/toolset"
)

var (
	oxlintYes bool
	oxfmtYes  bool
)

func init() {
	oxlintCmd.Flags().BoolVarP(&oxlintYes, "yes", "y", false, "Skip prompts: replace ESLint and confirm every step")
	oxfmtCmd.Flags().BoolVarP(&oxfmtYes, "yes", "y", false, "Skip prompts: rebuild .oxfmtrc.json and confirm every step")
	rootCmd.AddCommand(oxlintCmd)
	rootCmd.AddCommand(oxfmtCmd)
}

var oxlintCmd = &cobra.Command{
	Use:   "oxlint",
	Short: "Add or migrate to oxlint in the current project",
	Long: `Install the type-aware oxlint scripts, add oxlint, oxlint-tsgolint and
@kingsword/lint-config to devDependencies and write oxlint.config.ts.

The migrate strategy keeps ESLint installed alongside; replace removes ESLint
packages, package.json#eslintConfig and ESLint config files.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrationCmd(cmd, toolset.Oxlint, oxlintYes)
	},
}

var oxfmtCmd = &cobra.Command{
	Use:   "oxfmt",
	Short: "Add or migrate to oxfmt in the current project",
	Long: `Install the oxfmt format scripts, add oxfmt to devDependencies and create
.oxfmtrc.json, either by converting the Prettier config with
"oxfmt --migrate=prettier" or by writing defaults. Prettier packages, the
package.json#prettier key and Prettier config files can be removed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrationCmd(cmd, toolset.Oxfmt, oxfmtYes)
	},
}

func runMigrationCmd(cmd *cobra.Command, tool *toolset.Tool, yes bool) error {
	a, err := newApp(cmd, yes)
	if err != nil {
		return err
	}
	return a.finish(runMigration(cmd.Context(), a, tool, yes))
}

func runMigration(ctx context.Context, a *app, tool *toolset.Tool, yes bool) error {
	a.ui.Intro("frontpl (" + tool.Name + ")")

	engine := &migrate.Engine{
		Dir:            a.dir,
		Runner:         a.runner,
		Prompts:        a.prompts,
		PackageManager: project.DetectOr(a.dir, preferredPackageManager()),
		Log:            a.log,
	}
	stats, err := engine.Run(ctx, tool, yes)
	if errors.Is(err, migrate.ErrMissingManifest) {
		return a.fail("Missing package.json. Run this command in a Node project root.", err)
	}
	if err != nil {
		if stats != nil {
			a.ui.Warn("Stopped after package.json was written:")
			for _, line := range stats.Summary() {
				a.ui.Step("%s", line)
			}
		}
		return err
	}

	lines := append([]string{stats.Headline()}, stats.Summary()...)
	a.ui.Outro(strings.Join(lines, "\n"))
	return nil
}
