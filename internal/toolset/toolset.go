// Package toolset declares what adopting oxlint or oxfmt means for a project:
// the scripts to install, the packages to require, the legacy tool being
// replaced and the config file to generate. The migration engine is generic
// over these tables.
package toolset

import (
	"regexp"
	"strings"

	"github.com/kingsword09/frontpl/internal/manifest"
	"github.com/kingsword09/frontpl/internal/templates"
)

// Strategy is how legacy assets are treated.
type Strategy string

const (
	// StrategyMigrate keeps legacy assets (linter) or converts them (formatter).
	StrategyMigrate Strategy = "migrate"
	StrategyReplace Strategy = "replace"
	StrategyRebuild Strategy = "rebuild"
)

// Removal controls when legacy dependencies, keys and files are removed.
type Removal int

const (
	// RemoveOnReplace removes legacy assets only under the replace strategy.
	RemoveOnReplace Removal = iota
	// RemoveOnConfirm asks before removing, whatever the strategy.
	RemoveOnConfirm
)

// ConfigAction records what happened to the tool's config file.
type ConfigAction string

const (
	ConfigWritten      ConfigAction = "written"
	ConfigMigrated     ConfigAction = "migrated"
	ConfigRebuilt      ConfigAction = "rebuilt"
	ConfigKeptExisting ConfigAction = "kept-existing"
)

// Script is a desired package.json script.
type Script struct {
	Name    string
	Command string
}

// Delegate is the tool's own migration command.
type Delegate struct {
	Tool string
	Args []string
}

// Choice is one option of the strategy question.
type Choice struct {
	Strategy Strategy
	Label    string
	Summary  string
}

// Tool is the adoption policy for one tool.
type Tool struct {
	Name   string
	Legacy string // display name of the tool being replaced, e.g. "ESLint"

	Scripts          []Script
	RedundantScripts []Script
	Dependencies     []string

	IsLegacyDependency func(name string) bool
	LegacyManifestKey  string
	LegacyConfigFiles  []string
	// DetectByDependencies makes legacy dependencies count as legacy assets
	// when choosing the default strategy.
	DetectByDependencies bool

	ConfigFile   string
	RenderConfig func(m *manifest.Manifest) []byte
	FreshConfig  ConfigAction
	Delegate     *Delegate

	Removal         Removal
	RemovalQuestion string

	StrategyQuestion string
	Choices          []Choice // first entry is StrategyMigrate
	// AutoStrategy is applied when every question is auto-confirmed.
	AutoStrategy Strategy
}

// Choice returns the option for s.
func (t *Tool) Choice(s Strategy) Choice {
	for _, c := range t.Choices {
		if c.Strategy == s {
			return c
		}
	}
	return Choice{Strategy: s, Label: string(s), Summary: string(s)}
}

var eslintPluginPattern = regexp.MustCompile(`(^|/)eslint-(plugin|config|import-resolver)-`)

// IsESLintDependency reports whether a package belongs to the ESLint ecosystem.
func IsESLintDependency(name string) bool {
	return name == "eslint" ||
		name == "typescript-eslint" ||
		strings.HasPrefix(name, "@eslint/") ||
		strings.HasPrefix(name, "@typescript-eslint/") ||
		strings.HasPrefix(name, "eslint-") ||
		eslintPluginPattern.MatchString(name)
}

var prettierPluginPattern = regexp.MustCompile(`(^|/)prettier-plugin-`)

// IsPrettierDependency reports whether a package belongs to the Prettier ecosystem.
func IsPrettierDependency(name string) bool {
	return name == "prettier" ||
		prettierPluginPattern.MatchString(name) ||
		strings.HasPrefix(name, "@prettier/plugin-")
}

// ESLintConfigFiles are the ESLint config file names probed at the project root.
var ESLintConfigFiles = []string{
	".eslintrc",
	".eslintrc.js",
	".eslintrc.cjs",
	".eslintrc.mjs",
	".eslintrc.json",
	".eslintrc.yaml",
	".eslintrc.yml",
	".eslintrc.ts",
	".eslintrc.cts",
	".eslintrc.mts",
	"eslint.config.js",
	"eslint.config.cjs",
	"eslint.config.mjs",
	"eslint.config.ts",
	"eslint.config.cts",
	"eslint.config.mts",
}

// PrettierConfigFiles are the Prettier config file names probed at the project root.
var PrettierConfigFiles = []string{
	".prettierrc",
	".prettierrc.json",
	".prettierrc.json5",
	".prettierrc.yaml",
	".prettierrc.yml",
	".prettierrc.toml",
	".prettierrc.js",
	".prettierrc.cjs",
	".prettierrc.mjs",
	".prettierrc.ts",
	".prettierrc.cts",
	".prettierrc.mts",
	"prettier.config.js",
	"prettier.config.cjs",
	"prettier.config.mjs",
	"prettier.config.ts",
	"prettier.config.cts",
	"prettier.config.mts",
}

// OxlintCommand is the type-aware lint invocation.
const OxlintCommand = "oxlint --type-aware --type-check"

// Oxlint is the policy for replacing ESLint with oxlint.
var Oxlint = &Tool{
	Name:   "oxlint",
	Legacy: "ESLint",
	Scripts: []Script{
		{Name: "lint", Command: OxlintCommand},
		{Name: "lint:fix", Command: OxlintCommand + " --fix"},
	},
	RedundantScripts: []Script{
		{Name: "typecheck", Command: "tsc --noEmit"},
	},
	Dependencies:         []string{"oxlint", "oxlint-tsgolint", "@kingsword/lint-config"},
	IsLegacyDependency:   IsESLintDependency,
	LegacyManifestKey:    "eslintConfig",
	LegacyConfigFiles:    ESLintConfigFiles,
	DetectByDependencies: true,
	ConfigFile:           "oxlint.config.ts",
	RenderConfig: func(m *manifest.Manifest) []byte {
		return templates.OxlintConfig(templates.OxlintOptions{UseVitest: UsesVitest(m)})
	},
	FreshConfig:      ConfigWritten,
	Removal:          RemoveOnReplace,
	StrategyQuestion: "ESLint strategy",
	Choices: []Choice{
		{Strategy: StrategyMigrate, Label: "Migrate gradually (keep ESLint assets)", Summary: "migrate (keep ESLint assets)"},
		{Strategy: StrategyReplace, Label: "Replace ESLint directly", Summary: "replace ESLint assets"},
	},
	AutoStrategy: StrategyReplace,
}

// Oxfmt is the policy for replacing Prettier with oxfmt.
var Oxfmt = &Tool{
	Name:   "oxfmt",
	Legacy: "Prettier",
	Scripts: []Script{
		{Name: "format", Command: "oxfmt"},
		{Name: "format:check", Command: "oxfmt --check"},
		{Name: "fmt", Command: "oxfmt"},
		{Name: "fmt:check", Command: "oxfmt --check"},
	},
	Dependencies:       []string{"oxfmt"},
	IsLegacyDependency: IsPrettierDependency,
	LegacyManifestKey:  "prettier",
	LegacyConfigFiles:  PrettierConfigFiles,
	ConfigFile:         ".oxfmtrc.json",
	RenderConfig: func(*manifest.Manifest) []byte {
		return templates.OxfmtConfig()
	},
	FreshConfig:      ConfigRebuilt,
	Delegate:         &Delegate{Tool: "oxfmt", Args: []string{"--migrate=prettier"}},
	Removal:          RemoveOnConfirm,
	RemovalQuestion:  "Remove prettier dependencies and config files?",
	StrategyQuestion: "Prettier config strategy",
	Choices: []Choice{
		{Strategy: StrategyMigrate, Label: "Migrate from Prettier (oxfmt --migrate=prettier)", Summary: "migrate Prettier config"},
		{Strategy: StrategyRebuild, Label: "Rebuild .oxfmtrc.json", Summary: "rebuild .oxfmtrc.json"},
	},
	AutoStrategy: StrategyRebuild,
}

// UsesVitest reports whether the test script runs vitest.
func UsesVitest(m *manifest.Manifest) bool {
	test, ok := m.Script("test")
	return ok && strings.Contains(test, "vitest")
}
