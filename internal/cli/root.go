package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kingsword09/frontpl/internal/branding"
	"github.com/kingsword09/frontpl/internal/config"
	"github.com/kingsword09/frontpl/internal/logging"
	"github.com/kingsword09/frontpl/internal/prompt"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	cwdFlag     string
	verboseFlag bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cwdFlag, "cwd", "C", "", "Run as if started in this directory")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Accept every default without asking")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [name]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds TypeScript libraries wired for oxlint, oxfmt, tsdown and
GitHub Actions, and migrates existing projects from ESLint and Prettier.

Run without a subcommand to scaffold a new project.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		level := logging.ParseLevel(config.LogLevel())
		if verboseFlag {
			level = logging.LevelDebug
		}
		logging.SetDefault(logging.NewWithWriter(cmd.ErrOrStderr(), level))
	},
	RunE: runInitCmd,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, os.Args[1:])
}

// execute runs args against the command tree. Cancellation is a clean exit;
// other errors are printed once unless the command already reported them.
func execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err == nil || errors.Is(err, prompt.ErrCancelled) {
		return nil
	}
	var reported *reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}
