package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kingsword09/frontpl/internal/manifest"
	"github.com/kingsword09/frontpl/internal/platform"
)

// PackageManager identifies a JavaScript package manager.
type PackageManager string

const (
	NPM  PackageManager = "npm"
	PNPM PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
	Bun  PackageManager = "bun"
	Deno PackageManager = "deno"
)

// All lists the supported package managers in menu order.
func All() []PackageManager {
	return []PackageManager{NPM, Yarn, PNPM, Bun, Deno}
}

// FallbackOrder is the order in which package managers are tried when
// running a tool that is not on PATH.
func FallbackOrder() []PackageManager {
	return []PackageManager{PNPM, NPM, Yarn, Bun, Deno}
}

// Parse validates a package manager name.
func Parse(s string) (PackageManager, error) {
	pm := PackageManager(strings.ToLower(strings.TrimSpace(s)))
	switch pm {
	case NPM, PNPM, Yarn, Bun, Deno:
		return pm, nil
	}
	return "", fmt.Errorf("unknown package manager %q (want npm, pnpm, yarn, bun or deno)", s)
}

// String implements fmt.Stringer.
func (pm PackageManager) String() string {
	return string(pm)
}

// RunScript returns the command line that runs a package.json script.
// Deno projects use tasks and get the bare script name.
func (pm PackageManager) RunScript(script string) string {
	switch pm {
	case NPM, PNPM, Bun:
		return string(pm) + " run " + script
	case Yarn:
		return "yarn " + script
	default:
		return script
	}
}

// ExecArgs returns the command that runs tool once through pm, downloading
// it when it is not installed locally.
func (pm PackageManager) ExecArgs(tool string, args ...string) (string, []string) {
	switch pm {
	case PNPM:
		return "pnpm", append([]string{"exec", tool}, args...)
	case NPM:
		return "npm", append([]string{"exec", tool, "--"}, args...)
	case Yarn:
		return "yarn", append([]string{"dlx", tool}, args...)
	case Bun:
		return "bun", append([]string{"x", tool}, args...)
	default:
		return "deno", append([]string{"run", "-A", "npm:" + tool}, args...)
	}
}

// InstallArgs returns the dependency install command.
func (pm PackageManager) InstallArgs() (string, []string) {
	return string(pm), []string{"install"}
}

// NextStep returns the hint printed after scaffolding.
func (pm PackageManager) NextStep() string {
	if pm == Deno {
		return "deno task lint  # (or run the package.json scripts with your preferred runner)"
	}
	return pm.RunScript("lint")
}

// lockfiles maps lockfile names to the manager that writes them.
var lockfiles = []struct {
	name string
	pm   PackageManager
}{
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"package-lock.json", NPM},
	{"bun.lockb", Bun},
	{"bun.lock", Bun},
	{"deno.json", Deno},
	{"deno.jsonc", Deno},
}

// Detect infers the package manager of the project at dir. The packageManager
// field of package.json wins; otherwise exactly one manager's lockfiles must
// be present.
func Detect(dir string) (PackageManager, bool) {
	if m, ok := manifest.Load(dir); ok {
		if field := m.PackageManagerField(); field != "" {
			name, _, _ := strings.Cut(field, "@")
			if pm, err := Parse(name); err == nil {
				return pm, true
			}
		}
	}

	var found []PackageManager
	for _, lf := range lockfiles {
		if !platform.PathExists(filepath.Join(dir, lf.name)) {
			continue
		}
		if len(found) > 0 && found[len(found)-1] == lf.pm {
			continue
		}
		found = append(found, lf.pm)
	}
	if len(found) != 1 {
		return "", false
	}
	return found[0], true
}

// DetectOr returns the detected package manager or fallback.
func DetectOr(dir string, fallback PackageManager) PackageManager {
	if pm, ok := Detect(dir); ok {
		return pm
	}
	return fallback
}
