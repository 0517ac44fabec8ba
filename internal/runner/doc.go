// Package runner executes external programs (package managers, git, oxfmt)
// on behalf of the CLI. A run only reports whether the program exited with
// status zero; spawn failures and non-zero exits look the same to callers.
package runner
