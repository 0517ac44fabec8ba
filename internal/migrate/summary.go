package migrate

import (
	"fmt"
	"strings"

	"github.com/kingsword09/frontpl/internal/toolset"
)

// Summary returns the itemized report of a migration, one line per change.
func (s *Stats) Summary() []string {
	tool := s.Tool
	legacy := strings.ToLower(tool.Legacy)

	lines := []string{"strategy: " + tool.Choice(s.Strategy).Summary}

	switch {
	case len(s.ScriptsUpdated) > 0 && len(s.ScriptsKept) > 0:
		lines = append(lines,
			"updated scripts: "+strings.Join(s.ScriptsUpdated, ", "),
			"kept existing scripts: "+strings.Join(s.ScriptsKept, ", "))
	case len(s.ScriptsUpdated) > 0:
		lines = append(lines, "updated scripts: "+strings.Join(s.ScriptsUpdated, ", "))
	case len(s.ScriptsKept) > 0:
		lines = append(lines, "kept existing scripts: "+strings.Join(s.ScriptsKept, ", "))
	default:
		lines = append(lines, "scripts already aligned")
	}

	for _, name := range s.RedundantRemoved {
		lines = append(lines, fmt.Sprintf("removed redundant %s script (%s)", name, redundantCommand(tool, name)))
	}
	for _, name := range s.RedundantKept {
		lines = append(lines, fmt.Sprintf("kept %s script", name))
	}

	if len(s.DepsAdded) > 0 {
		lines = append(lines, "added devDependencies: "+strings.Join(s.DepsAdded, ", "))
	} else {
		lines = append(lines, fmt.Sprintf("required %s devDependencies already present", tool.Name))
	}

	if s.RemovedLegacy {
		if len(s.DepsRemoved) > 0 {
			lines = append(lines, fmt.Sprintf("removed %s deps: %s", legacy, strings.Join(s.DepsRemoved, ", ")))
		} else {
			lines = append(lines, fmt.Sprintf("no %s deps removed", legacy))
		}
		if tool.LegacyManifestKey != "" {
			if s.LegacyKeyRemoved {
				lines = append(lines, "removed package.json#"+tool.LegacyManifestKey)
			} else {
				lines = append(lines, fmt.Sprintf("no package.json#%s removed", tool.LegacyManifestKey))
			}
		}
		if len(s.ConfigFilesRemoved) > 0 {
			lines = append(lines, fmt.Sprintf("removed %s config files: %s", legacy, strings.Join(s.ConfigFilesRemoved, ", ")))
		} else {
			lines = append(lines, fmt.Sprintf("no %s config files removed", legacy))
		}
	}

	lines = append(lines, configLine(tool, s.Config))

	switch s.Install {
	case InstallSkippedDeno:
		lines = append(lines, "skipped dependency install (deno project)")
	case InstallDone:
		lines = append(lines, "installed dependencies with "+s.PackageManager.String())
	case InstallFailed:
		lines = append(lines, "dependency install failed with "+s.PackageManager.String())
	default:
		lines = append(lines, "skipped dependency install")
	}
	return lines
}

// Headline is the first line of the closing message.
func (s *Stats) Headline() string {
	return fmt.Sprintf("Done. Applied %s migration.", s.Tool.Name)
}

func configLine(tool *toolset.Tool, action toolset.ConfigAction) string {
	switch action {
	case toolset.ConfigWritten:
		return "wrote " + tool.ConfigFile
	case toolset.ConfigMigrated:
		return fmt.Sprintf("migrated %s from %s", tool.ConfigFile, strings.ToLower(tool.Legacy))
	case toolset.ConfigRebuilt:
		return "rebuilt " + tool.ConfigFile
	default:
		return "kept existing " + tool.ConfigFile
	}
}

func redundantCommand(tool *toolset.Tool, name string) string {
	for _, s := range tool.RedundantScripts {
		if s.Name == name {
			return s.Command
		}
	}
	return ""
}
