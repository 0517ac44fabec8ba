package project

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/kingsword09/frontpl/internal/manifest"
	"github.com/kingsword09/frontpl/internal/platform"
)

var engineMajorPattern = regexp.MustCompile(`([0-9]{2,})`)

// NodeMajor returns the Node.js major version the project targets, read from
// .nvmrc, .node-version, then package.json engines.node.
func NodeMajor(dir string) (int, bool) {
	for _, name := range []string{".nvmrc", ".node-version"} {
		line, ok := platform.FirstLine(filepath.Join(dir, name))
		if !ok {
			continue
		}
		if major, ok := ParseMajor(line); ok {
			return major, true
		}
	}

	m, ok := manifest.Load(dir)
	if !ok {
		return 0, false
	}
	match := engineMajorPattern.FindStringSubmatch(m.EnginesNode())
	if match == nil {
		return 0, false
	}
	major, err := strconv.Atoi(match[1])
	if err != nil || major <= 0 {
		return 0, false
	}
	return major, true
}

// ParseMajor extracts the major component of a version such as "v20.11.1",
// "22" or "18.x".
func ParseMajor(s string) (int, bool) {
	if v, err := parseSemver(s); err == nil {
		if v.Major() == 0 {
			return 0, false
		}
		return int(v.Major()), true
	}
	head, _, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(s), "v"), ".")
	major, err := strconv.Atoi(head)
	if err != nil || major <= 0 {
		return 0, false
	}
	return major, true
}
