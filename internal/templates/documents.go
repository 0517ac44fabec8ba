package templates

import (
	"bytes"
	"fmt"

	"github.com/kingsword09/frontpl/internal/manifest"
	"go.yaml.in/yaml/v3"
)

// PackageOptions parameterizes the generated package.json. Empty version
// fields default to "latest".
type PackageOptions struct {
	Name                       string
	PackageManager             string
	TypescriptVersion          string
	UseOxlint                  bool
	OxlintVersion              string
	OxlintTsgolintVersion      string
	KingswordLintConfigVersion string
	UseOxfmt                   bool
	OxfmtVersion               string
	UseVitest                  bool
	VitestVersion              string
	UseTsdown                  bool
	TsdownVersion              string
}

func orLatest(v string) string {
	if v == "" {
		return "latest"
	}
	return v
}

// PackageJSON builds the package.json of a new project. Without oxlint the
// project gets a tsc typecheck script instead of the type-aware lint scripts.
func PackageJSON(opts PackageOptions) (*manifest.Manifest, error) {
	m := manifest.New()

	top := []struct {
		key   string
		value any
	}{
		{"name", opts.Name},
		{"version", "0.0.0"},
		{"private", true},
		{"type", "module"},
		{"packageManager", opts.PackageManager},
	}
	for _, kv := range top {
		if err := m.Set(kv.key, kv.value); err != nil {
			return nil, err
		}
	}
	if opts.UseTsdown {
		if err := m.Set("files", []string{"dist"}); err != nil {
			return nil, err
		}
	}

	var scripts []manifest.Entry
	if opts.UseTsdown {
		scripts = append(scripts, manifest.Entry{Name: "build", Value: "tsdown"})
	}
	if opts.UseOxlint {
		scripts = append(scripts,
			manifest.Entry{Name: "lint", Value: "oxlint --type-aware --type-check"},
			manifest.Entry{Name: "lint:fix", Value: "oxlint --type-aware --type-check --fix"},
		)
	} else {
		scripts = append(scripts, manifest.Entry{Name: "typecheck", Value: "tsc --noEmit"})
	}
	if opts.UseOxfmt {
		scripts = append(scripts,
			manifest.Entry{Name: "format", Value: "oxfmt"},
			manifest.Entry{Name: "format:check", Value: "oxfmt --check"},
		)
	}
	if opts.UseVitest {
		scripts = append(scripts, manifest.Entry{Name: "test", Value: "vitest run"})
	}

	deps := []manifest.Entry{{Name: "typescript", Value: orLatest(opts.TypescriptVersion)}}
	if opts.UseOxlint {
		deps = append(deps,
			manifest.Entry{Name: "oxlint", Value: orLatest(opts.OxlintVersion)},
			manifest.Entry{Name: "oxlint-tsgolint", Value: orLatest(opts.OxlintTsgolintVersion)},
			manifest.Entry{Name: "@kingsword/lint-config", Value: orLatest(opts.KingswordLintConfigVersion)},
		)
	}
	if opts.UseOxfmt {
		deps = append(deps, manifest.Entry{Name: "oxfmt", Value: orLatest(opts.OxfmtVersion)})
	}
	if opts.UseVitest {
		deps = append(deps, manifest.Entry{Name: "vitest", Value: orLatest(opts.VitestVersion)})
	}
	if opts.UseTsdown {
		deps = append(deps, manifest.Entry{Name: "tsdown", Value: orLatest(opts.TsdownVersion)})
	}

	for _, s := range scripts {
		if err := m.SetEntry(manifest.Scripts, s.Name, s.Value); err != nil {
			return nil, err
		}
	}
	for _, d := range deps {
		if err := m.SetEntry(manifest.DevDependencies, d.Name, d.Value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// WorkspaceRootPackage builds the private root package.json of a pnpm workspace.
func WorkspaceRootPackage(name, packageManager string) (*manifest.Manifest, error) {
	m := manifest.New()
	for _, kv := range []struct {
		key   string
		value any
	}{
		{"name", name},
		{"private", true},
		{"packageManager", packageManager},
	} {
		if err := m.Set(kv.key, kv.value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DenoJSON returns deno.json enabling a local node_modules directory.
func DenoJSON() ([]byte, error) {
	m := manifest.New()
	if err := m.Set("nodeModulesDir", "auto"); err != nil {
		return nil, err
	}
	return m.Bytes(), nil
}

type pnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// PnpmWorkspace returns pnpm-workspace.yaml listing the package globs.
func PnpmWorkspace(globs ...string) ([]byte, error) {
	if len(globs) == 0 {
		globs = []string{"packages/*"}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	var node yaml.Node
	if err := node.Encode(pnpmWorkspace{Packages: globs}); err != nil {
		return nil, fmt.Errorf("encoding pnpm workspace: %w", err)
	}
	quoteScalars(&node)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("encoding pnpm workspace: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding pnpm workspace: %w", err)
	}
	return buf.Bytes(), nil
}

// quoteScalars double-quotes every sequence item so globs stay strings.
func quoteScalars(n *yaml.Node) {
	if n.Kind == yaml.SequenceNode {
		for _, item := range n.Content {
			if item.Kind == yaml.ScalarNode {
				item.Style = yaml.DoubleQuotedStyle
			}
		}
	}
	for _, child := range n.Content {
		quoteScalars(child)
	}
}

// ValidYAML reports whether data parses as YAML.
func ValidYAML(data []byte) error {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	return nil
}
