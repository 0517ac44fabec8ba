package templates

import (
	"regexp"
	"strings"
	"testing"

	"github.com/kingsword09/frontpl/internal/manifest"
	"go.yaml.in/yaml/v3"
)

func TestOxlintConfigUsesKingswordPreset(t *testing.T) {
	cfg := string(OxlintConfig(OxlintOptions{UseVitest: false}))

	for _, want := range []string{
		`import { defineConfig } from "oxlint";`,
		`import { oxlint } from "@kingsword/lint-config/config";`,
		`profile: "lib"`,
		`test: "none"`,
		`level: "recommended"`,
	} {
		if !strings.Contains(cfg, want) {
			t.Errorf("config missing %q:\n%s", want, cfg)
		}
	}

	cfg = string(OxlintConfig(OxlintOptions{UseVitest: true}))
	if !strings.Contains(cfg, `test: "vitest"`) {
		t.Errorf("expected vitest test runner:\n%s", cfg)
	}
}

func TestPackageJSONWithOxlint(t *testing.T) {
	m, err := PackageJSON(PackageOptions{
		Name:                       "demo-app",
		PackageManager:             "pnpm@10.28.1",
		UseOxlint:                  true,
		KingswordLintConfigVersion: "^0.1.1",
		UseVitest:                  true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := m.Script("typecheck"); ok {
		t.Error("typecheck script should be absent when oxlint is enabled")
	}
	if v, _ := m.Script("lint"); v != "oxlint --type-aware --type-check" {
		t.Errorf("lint = %q", v)
	}
	if v, _ := m.Script("lint:fix"); v != "oxlint --type-aware --type-check --fix" {
		t.Errorf("lint:fix = %q", v)
	}
	checks := map[string]string{
		"oxlint":                 "latest",
		"@kingsword/lint-config": "^0.1.1",
		"oxlint-tsgolint":        "latest",
	}
	for name, want := range checks {
		if got, _ := m.Lookup(manifest.DevDependencies, name); got != want {
			t.Errorf("devDependencies[%s] = %q, want %q", name, got, want)
		}
	}

	result, err := m.Validate()
	if err != nil {
		t.Fatal(err)
	}
	if !result.Valid {
		t.Errorf("generated package.json invalid: %v", result.Issues)
	}
}

func TestPackageJSONFallsBackToTypecheck(t *testing.T) {
	m, err := PackageJSON(PackageOptions{Name: "demo-app", PackageManager: "pnpm@10.28.1"})
	if err != nil {
		t.Fatal(err)
	}

	if v, _ := m.Script("typecheck"); v != "tsc --noEmit" {
		t.Errorf("typecheck = %q", v)
	}
	if _, ok := m.Script("lint"); ok {
		t.Error("lint script should be absent")
	}
	for _, name := range []string{"oxlint", "@kingsword/lint-config"} {
		if m.HasDependency(name) {
			t.Errorf("unexpected dependency %s", name)
		}
	}
}

func TestPackageJSONKeyOrder(t *testing.T) {
	m, err := PackageJSON(PackageOptions{Name: "demo", PackageManager: "npm@latest", UseTsdown: true})
	if err != nil {
		t.Fatal(err)
	}
	out := string(m.Bytes())
	order := []string{`"name"`, `"version"`, `"private"`, `"type"`, `"packageManager"`, `"files"`, `"scripts"`, `"devDependencies"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, key)
		if idx <= last {
			t.Fatalf("key %s out of order in:\n%s", key, out)
		}
		last = idx
	}
}

func TestCIWorkflowPinsCommands(t *testing.T) {
	wf := string(CIWorkflow(CIOptions{
		PackageManager:     "pnpm",
		NodeVersion:        22,
		WorkingDirectory:   ".",
		RunLint:            true,
		RunFormatCheck:     true,
		RunTests:           true,
		LintCommand:        "pnpm run lint",
		FormatCheckCommand: "pnpm run format:check",
		TestCommand:        "pnpm run test",
	}))

	uses := regexp.MustCompile(`uses: kingsword09/workflows/\.github/workflows/cli-ci\.yml@7320d30bcd47cee17cc2d8d28250ba1ab1f742b8 # v1\.0\.3`)
	if !uses.MatchString(wf) {
		t.Errorf("missing pinned uses line:\n%s", wf)
	}
	for _, want := range []string{
		`lintCommand: "pnpm run lint"`,
		`formatCheckCommand: "pnpm run format:check"`,
		`testCommand: "pnpm run test"`,
		"${{ github.workflow }}",
	} {
		if !strings.Contains(wf, want) {
			t.Errorf("workflow missing %q", want)
		}
	}
	if err := ValidYAML([]byte(wf)); err != nil {
		t.Error(err)
	}
}

func TestCIWorkflowCustomRef(t *testing.T) {
	wf := string(CIWorkflow(CIOptions{
		PackageManager: "pnpm",
		NodeVersion:    22,
		RunLint:        true,
		Workflows:      Workflows{Ref: "deadbeef", Version: "v9.9.9"},
	}))

	if !strings.Contains(wf, "cli-ci.yml@deadbeef # v9.9.9") {
		t.Errorf("custom ref not applied:\n%s", wf)
	}
	if strings.Contains(wf, "lintCommand") {
		t.Error("lintCommand should be omitted when empty")
	}
}

func TestReleaseWorkflowModes(t *testing.T) {
	tests := []struct {
		mode    ReleaseMode
		pm      string
		trusted bool
		want    []string
		absent  []string
	}{
		{ReleaseTag, "pnpm", true, []string{"cli-release-tag.yml@", "trustedPublishing: true", `- "v*.*.*"`}, []string{"NPM_TOKEN"}},
		{ReleaseCommit, "npm", false, []string{"cli-release.yml@", "chore(release): v", "${{ secrets.NPM_TOKEN }}"}, []string{"cli-release-tag.yml"}},
		{ReleaseBoth, "pnpm", true, []string{"release-tag:", "release-commit:", "cli-release-tag.yml@", "cli-release.yml@"}, nil},
		{ReleaseTag, "deno", false, []string{"cli-release-tag.yml@"}, []string{"trustedPublishing", "NPM_TOKEN"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode)+"-"+tt.pm, func(t *testing.T) {
			wf := string(ReleaseWorkflow(ReleaseOptions{
				Mode:              tt.mode,
				PackageManager:    tt.pm,
				NodeVersion:       22,
				TrustedPublishing: tt.trusted,
			}))
			for _, want := range tt.want {
				if !strings.Contains(wf, want) {
					t.Errorf("missing %q in:\n%s", want, wf)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(wf, bad) {
					t.Errorf("unexpected %q in:\n%s", bad, wf)
				}
			}
			if err := ValidYAML([]byte(wf)); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestParseReleaseMode(t *testing.T) {
	if m, err := ParseReleaseMode("both"); err != nil || m != ReleaseBoth {
		t.Errorf("ParseReleaseMode(both) = %q, %v", m, err)
	}
	if _, err := ParseReleaseMode("nightly"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestDependabot(t *testing.T) {
	cfg := string(Dependabot(DependabotOptions{PackageManager: "pnpm", WorkingDirectory: "."}))
	for _, want := range []string{`package-ecosystem: "npm"`, `directory: "/"`, "dependencies:", "github-actions:"} {
		if !strings.Contains(cfg, want) {
			t.Errorf("missing %q in:\n%s", want, cfg)
		}
	}

	cfg = string(Dependabot(DependabotOptions{PackageManager: "pnpm", WorkingDirectory: "packages/web"}))
	if !strings.Contains(cfg, `directory: "/packages/web"`) {
		t.Errorf("monorepo directory not mapped:\n%s", cfg)
	}

	cfg = string(Dependabot(DependabotOptions{PackageManager: "deno", WorkingDirectory: "."}))
	if strings.Contains(cfg, `package-ecosystem: "npm"`) {
		t.Error("deno config should not update npm")
	}
	if !strings.Contains(cfg, `package-ecosystem: "github-actions"`) {
		t.Error("deno config should keep github-actions updates")
	}
	if err := ValidYAML([]byte(cfg)); err != nil {
		t.Error(err)
	}
}

func TestPnpmWorkspace(t *testing.T) {
	out, err := PnpmWorkspace()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `"packages/*"`) {
		t.Errorf("glob not quoted:\n%s", out)
	}
	var doc struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Packages) != 1 || doc.Packages[0] != "packages/*" {
		t.Errorf("packages = %v", doc.Packages)
	}
}

func TestDenoJSON(t *testing.T) {
	out, err := DenoJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "{\n  \"nodeModulesDir\": \"auto\"\n}\n" {
		t.Errorf("DenoJSON() = %q", out)
	}
}

func TestOxfmtConfigIsValid(t *testing.T) {
	result, err := manifest.Validate(OxfmtConfig(), manifest.FormatterSchema)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Valid {
		t.Errorf("issues: %v", result.Issues)
	}
}

func TestWorkingDirectoryPath(t *testing.T) {
	tests := map[string]string{
		".":              "/",
		"":               "/",
		"packages/web":   "/packages/web",
		"./apps/site/":   "/apps/site",
		`packages\admin`: "/packages/admin",
	}
	for in, want := range tests {
		if got := WorkingDirectoryPath(in); got != want {
			t.Errorf("WorkingDirectoryPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReadme(t *testing.T) {
	out := string(Readme(ReadmeOptions{Name: "demo", Install: "pnpm install", Scripts: []string{"pnpm run lint"}}))
	if !strings.HasPrefix(out, "# demo\n") || !strings.Contains(out, "pnpm run lint") {
		t.Errorf("Readme() =\n%s", out)
	}
}
