// Package cli defines the Cobra command tree of frontpl. Each file registers
// one top-level command (init, ci, oxlint, oxfmt, doctor, config, version)
// with the root command. Commands parse flags, ask questions through a
// prompt.Source and print the session; the work itself lives in the
// scaffold, migrate and project packages.
package cli
