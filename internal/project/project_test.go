package project

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kingsword09/frontpl/internal/runner"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestParse(t *testing.T) {
	for _, name := range []string{"npm", "pnpm", "yarn", "bun", "deno", " PNPM "} {
		if _, err := Parse(name); err != nil {
			t.Errorf("Parse(%q) error: %v", name, err)
		}
	}
	if _, err := Parse("rush"); err == nil {
		t.Error("expected error for unknown package manager")
	}
}

func TestRunScript(t *testing.T) {
	tests := map[PackageManager]string{
		NPM:  "npm run lint",
		PNPM: "pnpm run lint",
		Yarn: "yarn lint",
		Bun:  "bun run lint",
		Deno: "lint",
	}
	for pm, want := range tests {
		if got := pm.RunScript("lint"); got != want {
			t.Errorf("%s.RunScript() = %q, want %q", pm, got, want)
		}
	}
}

func TestExecArgs(t *testing.T) {
	tests := []struct {
		pm       PackageManager
		wantName string
		wantArgs []string
	}{
		{PNPM, "pnpm", []string{"exec", "oxfmt", "--migrate=prettier"}},
		{NPM, "npm", []string{"exec", "oxfmt", "--", "--migrate=prettier"}},
		{Yarn, "yarn", []string{"dlx", "oxfmt", "--migrate=prettier"}},
		{Bun, "bun", []string{"x", "oxfmt", "--migrate=prettier"}},
		{Deno, "deno", []string{"run", "-A", "npm:oxfmt", "--migrate=prettier"}},
	}
	for _, tt := range tests {
		name, args := tt.pm.ExecArgs("oxfmt", "--migrate=prettier")
		if name != tt.wantName || !reflect.DeepEqual(args, tt.wantArgs) {
			t.Errorf("%s.ExecArgs() = %s %v", tt.pm, name, args)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		want   PackageManager
		wantOK bool
	}{
		{"packageManager field", map[string]string{"package.json": `{"packageManager":"yarn@4.1.0"}`, "pnpm-lock.yaml": ""}, Yarn, true},
		{"unknown field falls back to lockfile", map[string]string{"package.json": `{"packageManager":"rush@5"}`, "package-lock.json": "{}"}, NPM, true},
		{"single lockfile", map[string]string{"pnpm-lock.yaml": ""}, PNPM, true},
		{"both bun lockfiles", map[string]string{"bun.lockb": "", "bun.lock": ""}, Bun, true},
		{"deno config", map[string]string{"deno.jsonc": "{}"}, Deno, true},
		{"ambiguous lockfiles", map[string]string{"pnpm-lock.yaml": "", "yarn.lock": ""}, "", false},
		{"nothing", map[string]string{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, filepath.Join(dir, name), content)
			}
			got, ok := Detect(dir)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Detect() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDetectOr(t *testing.T) {
	if got := DetectOr(t.TempDir(), PNPM); got != PNPM {
		t.Errorf("DetectOr() = %q", got)
	}
}

func TestProbeVersion(t *testing.T) {
	r := runner.NewFake("pnpm --version", "deno --version", "yarn --version")
	r.Output["pnpm --version"] = "10.28.1\n"
	r.Output["deno --version"] = "deno 2.2.0 (stable, release, x86_64-unknown-linux-gnu)\nv8 13.4\n"
	r.Output["yarn --version"] = "not a version\n"

	ctx := context.Background()
	if v, ok := ProbeVersion(ctx, r, PNPM); !ok || v != "10.28.1" {
		t.Errorf("ProbeVersion(pnpm) = %q, %v", v, ok)
	}
	if v, ok := ProbeVersion(ctx, r, Deno); !ok || v != "2.2.0" {
		t.Errorf("ProbeVersion(deno) = %q, %v", v, ok)
	}
	if _, ok := ProbeVersion(ctx, r, Yarn); ok {
		t.Error("expected garbage output to be rejected")
	}
	if _, ok := ProbeVersion(ctx, r, Bun); ok {
		t.Error("expected missing binary to fail")
	}
}

func TestField(t *testing.T) {
	if got := Field(PNPM, "10.28.1"); got != "pnpm@10.28.1" {
		t.Errorf("Field() = %q", got)
	}
	if got := Field(Bun, ""); got != "bun@latest" {
		t.Errorf("Field() = %q", got)
	}
}

func TestAtLeast(t *testing.T) {
	if !AtLeast("v1.2.3", "1.0.0") {
		t.Error("1.2.3 >= 1.0.0")
	}
	if AtLeast("0.9.0", "1.0.0") {
		t.Error("0.9.0 < 1.0.0")
	}
	if AtLeast("garbage", "1.0.0") {
		t.Error("unparseable versions never satisfy")
	}
}

func TestParseMajor(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"v20.11.1", 20, true},
		{"22", 22, true},
		{"18.x", 18, true},
		{"lts/iron", 0, false},
		{"0.12.0", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseMajor(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMajor(%q) = %d, %v", tt.in, got, ok)
		}
	}
}

func TestNodeMajor(t *testing.T) {
	t.Run("nvmrc wins", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".nvmrc"), "v20.11.1\n")
		writeFile(t, filepath.Join(dir, ".node-version"), "18\n")
		writeFile(t, filepath.Join(dir, "package.json"), `{"engines":{"node":">=22"}}`)
		if got, ok := NodeMajor(dir); !ok || got != 20 {
			t.Errorf("NodeMajor() = %d, %v", got, ok)
		}
	})

	t.Run("unparseable nvmrc falls through", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".nvmrc"), "lts/*\n")
		writeFile(t, filepath.Join(dir, ".node-version"), "18.19.0\n")
		if got, ok := NodeMajor(dir); !ok || got != 18 {
			t.Errorf("NodeMajor() = %d, %v", got, ok)
		}
	})

	t.Run("engines", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"engines":{"node":"^22.0.0 || >=24"}}`)
		if got, ok := NodeMajor(dir); !ok || got != 22 {
			t.Errorf("NodeMajor() = %d, %v", got, ok)
		}
	})

	t.Run("none", func(t *testing.T) {
		if _, ok := NodeMajor(t.TempDir()); ok {
			t.Error("expected no version")
		}
	})
}

func TestCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"name":"root"}`)
	writeFile(t, filepath.Join(dir, "packages", "web", "package.json"), `{}`)
	writeFile(t, filepath.Join(dir, "packages", "docs", "README.md"), "")
	writeFile(t, filepath.Join(dir, "apps", "site", "package.json"), `{}`)
	writeFile(t, filepath.Join(dir, "packages", "notes.txt"), "")

	got := Candidates(dir, PNPM)
	want := []string{".", "packages/web", "apps/site"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}
}

func TestCandidatesDenoRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "deno.json"), `{}`)

	if got := Candidates(dir, Deno); !reflect.DeepEqual(got, []string{"."}) {
		t.Errorf("Candidates(deno) = %v", got)
	}
	if got := Candidates(dir, NPM); len(got) != 0 {
		t.Errorf("Candidates(npm) = %v", got)
	}
}

func TestInferWorkingDirectory(t *testing.T) {
	t.Run("single candidate", func(t *testing.T) {
		if got := InferWorkingDirectory(t.TempDir(), []string{"packages/web"}); got != "packages/web" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("root without scripts and one package", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"private":true}`)
		if got := InferWorkingDirectory(dir, []string{".", "packages/web"}); got != "packages/web" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("root with scripts", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"scripts":{"lint":"oxlint"}}`)
		if got := InferWorkingDirectory(dir, []string{".", "packages/web"}); got != "." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("several packages", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{}`)
		if got := InferWorkingDirectory(dir, []string{".", "packages/a", "packages/b"}); got != "." {
			t.Errorf("got %q", got)
		}
	})
}
