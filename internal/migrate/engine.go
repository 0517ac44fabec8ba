package migrate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kingsword09/frontpl/internal/logging"
	"github.com/kingsword09/frontpl/internal/manifest"
	"github.com/kingsword09/frontpl/internal/platform"
	"github.com/kingsword09/frontpl/internal/project"
	"github.com/kingsword09/frontpl/internal/prompt"
	"github.com/kingsword09/frontpl/internal/runner"
	"github.com/kingsword09/frontpl/internal/toolset"
)

// ErrMissingManifest is returned when the working directory has no readable
// package.json.
var ErrMissingManifest = errors.New("missing package.json")

// Question names, usable as keys of a prompt.Scripted source.
const (
	QuestionStrategy         = "strategy"
	QuestionOverwriteScripts = "overwrite-scripts"
	QuestionRemoveRedundant  = "remove-redundant-scripts"
	QuestionRemoveLegacy     = "remove-legacy"
	QuestionOverwriteConfig  = "overwrite-config"
	QuestionFallbackRebuild  = "fallback-rebuild"
	QuestionInstall          = "install"
)

// Stats accumulates what a migration changed. It only feeds the summary.
type Stats struct {
	Tool     *toolset.Tool
	Strategy toolset.Strategy

	ScriptsUpdated   []string
	ScriptsKept      []string
	RedundantRemoved []string
	RedundantKept    []string
	DepsAdded        []string

	RemovedLegacy      bool
	DepsRemoved        []string
	LegacyKeyRemoved   bool
	ConfigFilesRemoved []string

	Config         toolset.ConfigAction
	PackageManager project.PackageManager
	Install        InstallResult
}

// Engine applies a tool policy to the project in Dir.
type Engine struct {
	Dir            string
	Runner         runner.Runner
	Prompts        prompt.Source
	PackageManager project.PackageManager
	Log            *logging.Logger
}

func (e *Engine) logger() *logging.Logger {
	if e.Log == nil {
		return logging.Discard()
	}
	return e.Log
}

// Run loads the manifest, picks a strategy, migrates and finally offers to
// install dependencies.
func (e *Engine) Run(ctx context.Context, tool *toolset.Tool, auto bool) (*Stats, error) {
	m, ok := manifest.Load(e.Dir)
	if !ok {
		return nil, ErrMissingManifest
	}
	if e.PackageManager == "" {
		e.PackageManager = project.DetectOr(e.Dir, project.PNPM)
	}

	strategy, err := e.ChooseStrategy(ctx, m, tool, auto)
	if err != nil {
		return nil, err
	}

	stats, err := e.Migrate(ctx, m, tool, strategy, auto)
	if err != nil {
		return stats, err
	}

	stats.PackageManager = e.PackageManager
	stats.Install, err = e.Install(ctx, auto)
	return stats, err
}

// DetectLegacy reports whether the project still carries assets of the tool
// being replaced.
func (e *Engine) DetectLegacy(m *manifest.Manifest, tool *toolset.Tool) bool {
	if tool.LegacyManifestKey != "" && m.Has(tool.LegacyManifestKey) {
		return true
	}
	if len(platform.ExistingFiles(e.Dir, tool.LegacyConfigFiles)) > 0 {
		return true
	}
	if tool.DetectByDependencies {
		return len(legacyDependencies(m, tool)) > 0
	}
	return false
}

// ChooseStrategy asks how legacy assets are handled. Under auto the tool's
// AutoStrategy is used without asking.
func (e *Engine) ChooseStrategy(ctx context.Context, m *manifest.Manifest, tool *toolset.Tool, auto bool) (toolset.Strategy, error) {
	if auto {
		return tool.AutoStrategy, nil
	}

	def := tool.AutoStrategy
	if e.DetectLegacy(m, tool) {
		def = toolset.StrategyMigrate
	}

	options := make([]prompt.Option, 0, len(tool.Choices))
	for _, c := range tool.Choices {
		options = append(options, prompt.Option{Value: string(c.Strategy), Label: c.Label})
	}
	answer, err := e.Prompts.Select(ctx, prompt.Select{
		Name:    QuestionStrategy,
		Message: tool.StrategyQuestion,
		Options: options,
		Default: string(def),
	})
	if err != nil {
		return "", err
	}
	return toolset.Strategy(answer), nil
}

// Migrate applies tool to m and persists it. Steps run in a fixed order since
// later steps read state written by earlier ones.
func (e *Engine) Migrate(ctx context.Context, m *manifest.Manifest, tool *toolset.Tool, strategy toolset.Strategy, auto bool) (*Stats, error) {
	log := e.logger().WithTool(tool.Name)
	stats := &Stats{Tool: tool, Strategy: strategy}

	if err := e.applyScripts(ctx, m, tool, auto, stats); err != nil {
		return nil, err
	}
	if err := e.removeRedundant(ctx, m, tool, auto, stats); err != nil {
		return nil, err
	}
	for _, dep := range tool.Dependencies {
		if m.HasDependency(dep) {
			continue
		}
		if err := m.SetEntry(manifest.DevDependencies, dep, "latest"); err != nil {
			return nil, err
		}
		stats.DepsAdded = append(stats.DepsAdded, dep)
	}

	removeLegacy, err := e.decideRemoval(ctx, tool, strategy, auto)
	if err != nil {
		return nil, err
	}
	stats.RemovedLegacy = removeLegacy

	stats.Config, err = e.writeConfig(ctx, m, tool, strategy, auto)
	if err != nil {
		return nil, err
	}
	log.Debug("config decided", "file", tool.ConfigFile, "action", stats.Config)

	var legacyFiles []string
	if removeLegacy {
		if legacyFiles, err = e.stripLegacy(m, tool, stats); err != nil {
			return nil, err
		}
	}

	if m.Path() == "" {
		if err := m.WriteTo(filepath.Join(e.Dir, manifest.FileName)); err != nil {
			return nil, err
		}
	} else if err := m.Save(); err != nil {
		return nil, err
	}
	log.Debug("manifest written", "updated", len(stats.ScriptsUpdated), "added", len(stats.DepsAdded))

	for _, name := range legacyFiles {
		removed, err := platform.RemoveFile(filepath.Join(e.Dir, name))
		if err != nil {
			return stats, fmt.Errorf("removing legacy config: %w", err)
		}
		if removed {
			stats.ConfigFilesRemoved = append(stats.ConfigFilesRemoved, name)
		}
	}
	return stats, nil
}

func (e *Engine) applyScripts(ctx context.Context, m *manifest.Manifest, tool *toolset.Tool, auto bool, stats *Stats) error {
	var conflicts []string
	for _, s := range tool.Scripts {
		if current, ok := m.Script(s.Name); ok && current != s.Command {
			conflicts = append(conflicts, s.Name)
		}
	}

	overwrite := true
	if len(conflicts) > 0 && !auto {
		var err error
		overwrite, err = e.Prompts.Confirm(ctx, prompt.Confirm{
			Name:    QuestionOverwriteScripts,
			Message: fmt.Sprintf("Overwrite conflicting scripts (%s) with %s?", strings.Join(conflicts, ", "), tool.Name),
			Default: true,
		})
		if err != nil {
			return err
		}
	}

	for _, s := range tool.Scripts {
		if current, ok := m.Script(s.Name); ok && current == s.Command {
			continue
		}
		if !overwrite && m.Contains(manifest.Scripts, s.Name) {
			stats.ScriptsKept = append(stats.ScriptsKept, s.Name)
			continue
		}
		if err := m.SetEntry(manifest.Scripts, s.Name, s.Command); err != nil {
			return err
		}
		stats.ScriptsUpdated = append(stats.ScriptsUpdated, s.Name)
	}
	return nil
}

func (e *Engine) removeRedundant(ctx context.Context, m *manifest.Manifest, tool *toolset.Tool, auto bool, stats *Stats) error {
	for _, s := range tool.RedundantScripts {
		if current, ok := m.Script(s.Name); !ok || current != s.Command {
			continue
		}
		remove, err := e.confirm(ctx, auto, prompt.Confirm{
			Name:    QuestionRemoveRedundant,
			Message: fmt.Sprintf("Remove redundant %s script (%s)?", s.Name, s.Command),
			Default: true,
		})
		if err != nil {
			return err
		}
		if !remove {
			stats.RedundantKept = append(stats.RedundantKept, s.Name)
			continue
		}
		if _, err := m.DeleteEntry(manifest.Scripts, s.Name); err != nil {
			return err
		}
		stats.RedundantRemoved = append(stats.RedundantRemoved, s.Name)
	}
	return nil
}

func (e *Engine) decideRemoval(ctx context.Context, tool *toolset.Tool, strategy toolset.Strategy, auto bool) (bool, error) {
	if tool.Removal == toolset.RemoveOnReplace {
		return strategy == toolset.StrategyReplace, nil
	}
	return e.confirm(ctx, auto, prompt.Confirm{
		Name:    QuestionRemoveLegacy,
		Message: tool.RemovalQuestion,
		Default: true,
	})
}

func (e *Engine) writeConfig(ctx context.Context, m *manifest.Manifest, tool *toolset.Tool, strategy toolset.Strategy, auto bool) (toolset.ConfigAction, error) {
	path := filepath.Join(e.Dir, tool.ConfigFile)
	if !platform.PathExists(path) {
		return tool.FreshConfig, platform.WriteText(path, tool.RenderConfig(m))
	}

	delegate := strategy == toolset.StrategyMigrate && tool.Delegate != nil
	message := fmt.Sprintf("Overwrite existing %s?", tool.ConfigFile)
	if delegate {
		message = fmt.Sprintf("Overwrite existing %s via %s migration?", tool.ConfigFile, strings.ToLower(tool.Legacy))
	}
	overwrite, err := e.confirm(ctx, auto, prompt.Confirm{
		Name:    QuestionOverwriteConfig,
		Message: message,
		Default: true,
	})
	if err != nil || !overwrite {
		return toolset.ConfigKeptExisting, err
	}

	if delegate {
		if RunDelegate(ctx, e.Runner, e.Dir, e.PackageManager, tool.Delegate.Tool, tool.Delegate.Args...) {
			return toolset.ConfigMigrated, nil
		}
		e.logger().Warn("delegate migration failed", "tool", tool.Delegate.Tool)
		rebuild, err := e.confirm(ctx, auto, prompt.Confirm{
			Name:    QuestionFallbackRebuild,
			Message: fmt.Sprintf("Migration failed. Rebuild %s with defaults instead?", tool.ConfigFile),
			Default: true,
		})
		if err != nil || !rebuild {
			return toolset.ConfigKeptExisting, err
		}
		return toolset.ConfigRebuilt, platform.WriteText(path, tool.RenderConfig(m))
	}
	return tool.FreshConfig, platform.WriteText(path, tool.RenderConfig(m))
}

// stripLegacy removes legacy dependencies and the legacy manifest key, and
// returns the legacy config files to unlink once the manifest is saved.
func (e *Engine) stripLegacy(m *manifest.Manifest, tool *toolset.Tool, stats *Stats) ([]string, error) {
	for _, b := range manifest.DependencyBuckets {
		for _, name := range m.Names(b) {
			if !tool.IsLegacyDependency(name) {
				continue
			}
			if _, err := m.DeleteEntry(b, name); err != nil {
				return nil, err
			}
			stats.DepsRemoved = appendUnique(stats.DepsRemoved, name)
		}
	}

	if tool.LegacyManifestKey != "" {
		removed, err := m.Delete(tool.LegacyManifestKey)
		if err != nil {
			return nil, err
		}
		stats.LegacyKeyRemoved = removed
	}

	for _, b := range manifest.DependencyBuckets {
		if _, err := m.PruneEmpty(b); err != nil {
			return nil, err
		}
	}
	return platform.ExistingFiles(e.Dir, tool.LegacyConfigFiles), nil
}

func (e *Engine) confirm(ctx context.Context, auto bool, q prompt.Confirm) (bool, error) {
	if auto {
		return true, nil
	}
	return e.Prompts.Confirm(ctx, q)
}

func legacyDependencies(m *manifest.Manifest, tool *toolset.Tool) []string {
	var found []string
	for _, b := range manifest.DependencyBuckets {
		for _, name := range m.Names(b) {
			if tool.IsLegacyDependency(name) {
				found = appendUnique(found, name)
			}
		}
	}
	return found
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
