package scaffold

import (
	"errors"
	"regexp"
	"strings"
)

// MaxNameLength is the npm limit on package names.
const MaxNameLength = 214

var namePattern = regexp.MustCompile(`^[a-z0-9._-]+$`)

// ValidateName checks that name can be used as a directory and npm package name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return errors.New("project name is required")
	case len(name) > MaxNameLength:
		return errors.New("project name is too long")
	case strings.HasPrefix(name, "."):
		return errors.New("project name cannot start with '.'")
	case strings.HasPrefix(name, "_"):
		return errors.New("project name cannot start with '_'")
	case strings.ToLower(name) != name:
		return errors.New("use lowercase letters only")
	case !namePattern.MatchString(name):
		return errors.New("use letters, numbers, '.', '_' or '-'")
	}
	return nil
}
