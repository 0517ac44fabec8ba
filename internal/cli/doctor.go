package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingsword09/frontpl/internal/branding"
	"github.com/kingsword09/frontpl/internal/manifest"
	"github.com/kingsword09/frontpl/internal/platform"
	"github.com/kingsword09/frontpl/internal/project"
	"github.com/kingsword09/frontpl/internal/runner"
	"github.com/kingsword09/frontpl/internal/toolset"
)

// minNodeVersion is the oldest Node.js the generated toolchain supports.
const minNodeVersion = "20.0.0"

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the toolchain and the current project",
	Long: `Report which runtimes and package managers are installed, then check
package.json and .oxfmtrc.json of the current directory against their schemas
and show whether oxlint and oxfmt are set up.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		return runDoctor(cmd.Context(), a.ui.Writer(), a)
	},
}

func runDoctor(ctx context.Context, w io.Writer, a *app) error {
	runRuntimeCheck(ctx, w, a.runner)
	runPackageManagerCheck(ctx, w, a.runner, a.dir)

	if !platform.PathExists(filepath.Join(a.dir, manifest.FileName)) {
		fmt.Fprintf(w, "\nProject check:\n  [INFO] no package.json in %s\n", a.dir)
		return nil
	}
	return runProjectCheck(w, a.dir)
}

func runRuntimeCheck(ctx context.Context, w io.Writer, r runner.Runner) {
	fmt.Fprintln(w, "Runtime check:")

	out, ok := r.Capture(ctx, "", "node", "--version")
	node := strings.TrimSpace(out)
	switch {
	case !ok:
		fmt.Fprintln(w, "  [MISS] node not found")
	case !project.AtLeast(node, minNodeVersion):
		fmt.Fprintf(w, "  [WARN] node %s is older than %s\n", node, minNodeVersion)
	default:
		fmt.Fprintf(w, "  [ OK ] node %s\n", node)
	}

	out, ok = r.Capture(ctx, "", "git", "--version")
	if !ok {
		fmt.Fprintln(w, "  [MISS] git not found")
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s\n", strings.TrimSpace(out))
}

func runPackageManagerCheck(ctx context.Context, w io.Writer, r runner.Runner, dir string) {
	fmt.Fprintln(w, "\nPackage managers:")
	for _, pm := range project.All() {
		if version, ok := project.ProbeVersion(ctx, r, pm); ok {
			fmt.Fprintf(w, "  [ OK ] %s %s\n", pm, version)
		} else {
			fmt.Fprintf(w, "  [MISS] %s not found\n", pm)
		}
	}
	if pm, ok := project.Detect(dir); ok {
		fmt.Fprintf(w, "  [INFO] project uses %s\n", pm)
	} else {
		fmt.Fprintf(w, "  [INFO] project package manager not detected (falling back to %s)\n", preferredPackageManager())
	}
}

func runProjectCheck(w io.Writer, dir string) error {
	fmt.Fprintln(w, "\nProject check:")

	failures := 0
	for _, doc := range []struct {
		file   string
		schema manifest.Schema
	}{
		{manifest.FileName, manifest.PackageSchema},
		{toolset.Oxfmt.ConfigFile, manifest.FormatterSchema},
	} {
		path := filepath.Join(dir, doc.file)
		if !platform.PathExists(path) {
			continue
		}
		result, err := manifest.ValidateFile(path, doc.schema)
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", doc.file, err)
			failures++
			continue
		}
		if result.Valid {
			fmt.Fprintf(w, "  [ OK ] %s is valid\n", doc.file)
			continue
		}
		fmt.Fprintf(w, "  [FAIL] %s: %d validation issue(s):\n", doc.file, len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "    - %s\n", issue)
		}
		failures++
	}

	if m, ok := manifest.Load(dir); ok {
		for _, tool := range []*toolset.Tool{toolset.Oxlint, toolset.Oxfmt} {
			reportTool(w, dir, m, tool)
		}
	}

	if failures > 0 {
		return &reportedError{err: fmt.Errorf("%d project file(s) failed validation", failures)}
	}
	return nil
}

// reportTool shows whether a project is set up for tool and whether the
// legacy tool it replaces is still around.
func reportTool(w io.Writer, dir string, m *manifest.Manifest, tool *toolset.Tool) {
	var missing []string
	for _, s := range tool.Scripts {
		if cmd, ok := m.Script(s.Name); !ok || cmd != s.Command {
			missing = append(missing, s.Name)
		}
	}
	for _, dep := range tool.Dependencies {
		if !m.HasDependency(dep) {
			missing = append(missing, dep)
		}
	}
	if !platform.PathExists(filepath.Join(dir, tool.ConfigFile)) {
		missing = append(missing, tool.ConfigFile)
	}

	if len(missing) == 0 {
		fmt.Fprintf(w, "  [ OK ] %s is set up\n", tool.Name)
	} else {
		fmt.Fprintf(w, "  [WARN] %s: missing %s (run `%s %s`)\n", tool.Name, strings.Join(missing, ", "), branding.CLIName(), tool.Name)
	}

	var legacy []string
	if tool.LegacyManifestKey != "" && m.Has(tool.LegacyManifestKey) {
		legacy = append(legacy, "package.json#"+tool.LegacyManifestKey)
	}
	legacy = append(legacy, platform.ExistingFiles(dir, tool.LegacyConfigFiles)...)
	if len(legacy) > 0 {
		fmt.Fprintf(w, "  [INFO] %s assets still present: %s\n", tool.Legacy, strings.Join(legacy, ", "))
	}
}
