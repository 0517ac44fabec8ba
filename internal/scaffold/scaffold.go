package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kingsword09/frontpl/internal/logging"
	"github.com/kingsword09/frontpl/internal/manifest"
	"github.com/kingsword09/frontpl/internal/platform"
	"github.com/kingsword09/frontpl/internal/project"
	"github.com/kingsword09/frontpl/internal/runner"
	"github.com/kingsword09/frontpl/internal/templates"
)

var (
	// ErrDirectoryExists is returned when the scaffold target already exists.
	ErrDirectoryExists = errors.New("directory already exists")
	// ErrNoPackage is returned when a directory holds no package to add
	// workflows to.
	ErrNoPackage = errors.New("no package found")
)

// Actions selects which GitHub Actions workflows are generated.
type Actions string

const (
	ActionsNone    Actions = "none"
	ActionsCI      Actions = "ci"
	ActionsRelease Actions = "ci+release"
)

// DefaultNodeVersion is the Node major used by generated workflows.
const DefaultNodeVersion = 22

// Options describes the project to generate.
type Options struct {
	Name           string
	PackageManager project.PackageManager
	// PnpmWorkspace places the package under packages/<name> with a
	// workspace root. Only honoured for pnpm.
	PnpmWorkspace bool

	UseOxlint bool
	UseOxfmt  bool
	UseVitest bool
	UseTsdown bool

	InitGit           bool
	Actions           Actions
	ReleaseMode       templates.ReleaseMode
	Dependabot        bool
	TrustedPublishing bool
	NodeVersion       int
	Workflows         templates.Workflows
}

// InstallStatus is the outcome of the post-generation install.
type InstallStatus int

const (
	// InstallUnavailable means the package manager was not found.
	InstallUnavailable InstallStatus = iota
	InstallOK
	InstallFailed
)

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir      string
	PackageDir     string
	Files          []string
	Warnings       []string
	PackageManager project.PackageManager
	// PackageManagerVersion is empty when the package manager was not found.
	PackageManagerVersion string
	Install               InstallStatus
	GitInitialized        bool
}

// Generator creates projects on disk.
type Generator struct {
	Runner runner.Runner
	Log    *logging.Logger
}

type file struct {
	rel  string
	data []byte
}

// Scaffold generates a project at targetDir, which must not exist yet.
func (g *Generator) Scaffold(ctx context.Context, targetDir string, opts Options) (*Result, error) {
	if err := ValidateName(opts.Name); err != nil {
		return nil, err
	}
	if platform.PathExists(targetDir) {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryExists, targetDir)
	}
	log := g.logger()
	if opts.PackageManager == "" {
		opts.PackageManager = project.PNPM
	}
	if opts.PackageManager != project.PNPM {
		opts.PnpmWorkspace = false
	}
	if opts.NodeVersion == 0 {
		opts.NodeVersion = DefaultNodeVersion
	}
	pm := opts.PackageManager

	version, _ := project.ProbeVersion(ctx, g.Runner, pm)
	pmField := project.Field(pm, version)
	log.Debug("package manager probed", "package_manager", pm, "version", version)

	pkgRel := "."
	if opts.PnpmWorkspace {
		pkgRel = path.Join("packages", opts.Name)
	}
	res := &Result{
		OutputDir:             targetDir,
		PackageDir:            filepath.Join(targetDir, filepath.FromSlash(pkgRel)),
		PackageManager:        pm,
		PackageManagerVersion: version,
	}

	if err := os.MkdirAll(filepath.Join(res.PackageDir, "src"), platform.DirPerm); err != nil {
		return nil, fmt.Errorf("creating project directory: %w", err)
	}

	pkg, err := templates.PackageJSON(templates.PackageOptions{
		Name:           opts.Name,
		PackageManager: pmField,
		UseOxlint:      opts.UseOxlint,
		UseOxfmt:       opts.UseOxfmt,
		UseVitest:      opts.UseVitest,
		UseTsdown:      opts.UseTsdown,
	})
	if err != nil {
		return nil, fmt.Errorf("building package.json: %w", err)
	}

	baseline := []file{
		{".editorconfig", templates.Editorconfig()},
		{".gitignore", templates.Gitignore()},
		{".gitattributes", templates.Gitattributes()},
		{path.Join(pkgRel, "README.md"), readme(opts.Name, pm, pkg)},
		{path.Join(pkgRel, "src/index.ts"), templates.SrcIndex()},
		{path.Join(pkgRel, "tsconfig.json"), templates.Tsconfig()},
		{path.Join(pkgRel, manifest.FileName), pkg.Bytes()},
	}
	if err := writeConcurrently(ctx, targetDir, baseline); err != nil {
		return nil, err
	}
	res.add(baseline...)

	optional, err := optionalFiles(opts, pkgRel, pmField)
	if err != nil {
		return nil, err
	}
	for _, f := range optional {
		if err := platform.WriteText(filepath.Join(targetDir, filepath.FromSlash(f.rel)), f.data); err != nil {
			return nil, err
		}
	}
	res.add(optional...)
	res.Warnings = append(res.Warnings, validate(append(baseline, optional...))...)
	sort.Strings(res.Files)

	if version != "" {
		name, args := pm.InstallArgs()
		if g.Runner.Run(ctx, targetDir, name, args...) {
			res.Install = InstallOK
		} else {
			res.Install = InstallFailed
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s install failed", pm))
		}
	}

	if opts.InitGit {
		res.GitInitialized = g.Runner.Run(ctx, targetDir, "git", "init")
		if !res.GitInitialized {
			res.Warnings = append(res.Warnings, "git init failed")
		}
	}

	log.Info("project generated", "dir", targetDir, "files", len(res.Files), "warnings", len(res.Warnings))
	return res, nil
}

func (g *Generator) logger() *logging.Logger {
	if g.Log == nil {
		return logging.Discard()
	}
	return g.Log.WithComponent("scaffold")
}

func (r *Result) add(files ...file) {
	for _, f := range files {
		r.Files = append(r.Files, path.Clean(f.rel))
	}
}

// writeConcurrently writes files with disjoint paths in parallel.
func writeConcurrently(ctx context.Context, root string, files []file) error {
	g, _ := errgroup.WithContext(ctx)
	for _, f := range files {
		g.Go(func() error {
			return platform.WriteText(filepath.Join(root, filepath.FromSlash(f.rel)), f.data)
		})
	}
	return g.Wait()
}

func optionalFiles(opts Options, pkgRel, pmField string) ([]file, error) {
	var files []file
	if opts.PnpmWorkspace {
		ws, err := templates.PnpmWorkspace("packages/*")
		if err != nil {
			return nil, err
		}
		root, err := templates.WorkspaceRootPackage(opts.Name, pmField)
		if err != nil {
			return nil, err
		}
		files = append(files,
			file{"pnpm-workspace.yaml", ws},
			file{manifest.FileName, root.Bytes()},
		)
	}
	if opts.UseOxlint {
		files = append(files, file{path.Join(pkgRel, "oxlint.config.ts"), templates.OxlintConfig(templates.OxlintOptions{UseVitest: opts.UseVitest})})
	}
	if opts.UseOxfmt {
		files = append(files, file{path.Join(pkgRel, ".oxfmtrc.json"), templates.OxfmtConfig()})
	}
	if opts.UseVitest {
		files = append(files, file{path.Join(pkgRel, "src/index.test.ts"), templates.SrcVitest()})
	}
	if opts.UseTsdown {
		files = append(files, file{path.Join(pkgRel, "tsdown.config.ts"), templates.TsdownConfig()})
	}
	if opts.PackageManager == project.Deno {
		deno, err := templates.DenoJSON()
		if err != nil {
			return nil, err
		}
		files = append(files, file{"deno.json", deno})
	}

	if opts.Actions == ActionsCI || opts.Actions == ActionsRelease {
		wf := workflowOptionsFor(opts, pkgRel)
		files = append(files, wf.files()...)
	}
	return files, nil
}

// workflowOptionsFor derives the workflow set of a freshly generated project.
// Deno projects get no explicit commands since the reusable workflow runs
// their tasks itself.
func workflowOptionsFor(opts Options, pkgRel string) WorkflowOptions {
	pm := opts.PackageManager
	ci := templates.CIOptions{
		PackageManager:   pm.String(),
		NodeVersion:      opts.NodeVersion,
		WorkingDirectory: pkgRel,
		RunLint:          opts.UseOxlint,
		RunFormatCheck:   opts.UseOxfmt,
		RunTests:         opts.UseVitest,
		Workflows:        opts.Workflows,
	}
	if pm != project.Deno {
		if opts.UseOxlint {
			ci.LintCommand = pm.RunScript("lint")
		}
		if opts.UseOxfmt {
			ci.FormatCheckCommand = pm.RunScript("format:check")
		}
		if opts.UseVitest {
			ci.TestCommand = pm.RunScript("test")
		}
	}
	return WorkflowOptions{
		CI:                ci,
		Release:           opts.Actions == ActionsRelease,
		ReleaseMode:       opts.ReleaseMode,
		TrustedPublishing: opts.TrustedPublishing,
		Dependabot:        opts.Dependabot,
	}
}

func readme(name string, pm project.PackageManager, pkg *manifest.Manifest) []byte {
	install, args := pm.InstallArgs()
	opts := templates.ReadmeOptions{Name: name, Install: runner.Format(install, args...)}
	for _, s := range pkg.Names(manifest.Scripts) {
		opts.Scripts = append(opts.Scripts, pm.RunScript(s))
	}
	return templates.Readme(opts)
}

// validate checks generated documents: package.json and .oxfmtrc.json
// against their schemas, YAML files for syntax.
func validate(files []file) []string {
	var warnings []string
	for _, f := range files {
		var schema manifest.Schema
		switch path.Base(f.rel) {
		case manifest.FileName:
			schema = manifest.PackageSchema
		case ".oxfmtrc.json":
			schema = manifest.FormatterSchema
		}
		if schema != "" {
			res, err := manifest.Validate(f.data, schema)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("%s: could not validate: %v", f.rel, err))
				continue
			}
			for _, issue := range res.Issues {
				warnings = append(warnings, fmt.Sprintf("%s: %s", f.rel, issue))
			}
			continue
		}
		if ext := path.Ext(f.rel); ext == ".yml" || ext == ".yaml" {
			if err := templates.ValidYAML(f.data); err != nil {
				warnings = append(warnings, fmt.Sprintf("%s: %v", f.rel, err))
			}
		}
	}
	return warnings
}
