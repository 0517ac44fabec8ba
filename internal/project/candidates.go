package project

import (
	"os"
	"path"
	"path/filepath"

	"github.com/kingsword09/frontpl/internal/manifest"
	"github.com/kingsword09/frontpl/internal/platform"
)

// workspaceBases are the folders scanned for workspace packages.
var workspaceBases = []string{"packages", "apps"}

// Candidates lists the folders (relative, slash separated) that hold a
// package: "." when the root has a package.json (or deno.json for deno),
// then packages/* and apps/* entries with a package.json.
func Candidates(dir string, pm PackageManager) []string {
	var out []string
	if platform.PathExists(filepath.Join(dir, manifest.FileName)) ||
		(pm == Deno && (platform.PathExists(filepath.Join(dir, "deno.json")) ||
			platform.PathExists(filepath.Join(dir, "deno.jsonc")))) {
		out = append(out, ".")
	}

	for _, base := range workspaceBases {
		entries, err := os.ReadDir(filepath.Join(dir, base))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if platform.PathExists(filepath.Join(dir, base, entry.Name(), manifest.FileName)) {
				out = append(out, path.Join(base, entry.Name()))
			}
		}
	}
	return out
}

// InferWorkingDirectory picks the default CI working directory. A single
// candidate wins; a root without scripts and exactly one workspace package
// selects that package; otherwise the root.
func InferWorkingDirectory(dir string, candidates []string) string {
	if len(candidates) == 1 {
		return candidates[0]
	}

	rootHasScripts := false
	if m, ok := manifest.Load(dir); ok {
		rootHasScripts = len(m.Names(manifest.Scripts)) > 0
	}

	var nonRoot []string
	for _, c := range candidates {
		if c != "." {
			nonRoot = append(nonRoot, c)
		}
	}
	if !rootHasScripts && len(nonRoot) == 1 {
		return nonRoot[0]
	}
	return "."
}
