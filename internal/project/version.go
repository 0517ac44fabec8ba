package project

import (
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/kingsword09/frontpl/internal/runner"
)

var denoVersionPattern = regexp.MustCompile(`deno\s+([0-9]+\.[0-9]+\.[0-9]+)`)

// ProbeVersion asks pm for its version. ok is false when the binary is missing
// or prints something that is not a version.
func ProbeVersion(ctx context.Context, r runner.Runner, pm PackageManager) (string, bool) {
	out, ok := r.Capture(ctx, os.TempDir(), string(pm), "--version")
	if !ok {
		return "", false
	}
	out = strings.TrimSpace(out)
	if pm == Deno {
		first, _, _ := strings.Cut(out, "\n")
		match := denoVersionPattern.FindStringSubmatch(first)
		if match == nil {
			return "", false
		}
		return match[1], true
	}
	if out == "" {
		return "", false
	}
	if _, err := parseSemver(out); err != nil {
		return "", false
	}
	return out, true
}

// Field returns the packageManager field value for pm, pinned to version when
// known.
func Field(pm PackageManager, version string) string {
	if version == "" {
		return string(pm) + "@latest"
	}
	return string(pm) + "@" + version
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}

// AtLeast reports whether version satisfies ">= min".
func AtLeast(version, min string) bool {
	v, err := parseSemver(version)
	if err != nil {
		return false
	}
	c, err := semver.NewConstraint(">= " + min)
	if err != nil {
		return false
	}
	return c.Check(v)
}
