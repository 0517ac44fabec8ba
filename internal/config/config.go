package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/kingsword09/frontpl/internal/branding"
	"github.com/kingsword09/frontpl/internal/platform"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known setting keys.
const (
	KeyPackageManager   = "package_manager"
	KeyNodeVersion      = "node_version"
	KeyWorkflowsRepo    = "workflows_repo"
	KeyWorkflowsRef     = "workflows_ref"
	KeyWorkflowsVersion = "workflows_version"
	KeyLogLevel         = "log_level"
)

// Keys lists every supported setting in display order.
func Keys() []string {
	return []string{
		KeyPackageManager,
		KeyNodeVersion,
		KeyWorkflowsRepo,
		KeyWorkflowsRef,
		KeyWorkflowsVersion,
		KeyLogLevel,
	}
}

// IsKnownKey reports whether key is a supported setting.
func IsKnownKey(key string) bool {
	return slices.Contains(Keys(), key)
}

// Dir returns the path to the config directory (~/.frontpl/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyPackageManager, "pnpm")
	viper.SetDefault(KeyNodeVersion, 22)
	viper.SetDefault(KeyWorkflowsRepo, branding.WorkflowsRepo())
	viper.SetDefault(KeyWorkflowsRef, branding.WorkflowsRef())
	viper.SetDefault(KeyWorkflowsVersion, branding.WorkflowsVersion())
	viper.SetDefault(KeyLogLevel, "warn")
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	setDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// PackageManager returns the fallback package manager name.
func PackageManager() string {
	return viper.GetString(KeyPackageManager)
}

// NodeVersion returns the default Node major for generated workflows.
func NodeVersion() int {
	if v := viper.GetInt(KeyNodeVersion); v > 0 {
		return v
	}
	return 22
}

// WorkflowsRepo returns the owner/name of the reusable workflows repository.
func WorkflowsRepo() string {
	return viper.GetString(KeyWorkflowsRepo)
}

// WorkflowsRef returns the pinned commit of the reusable workflows.
func WorkflowsRef() string {
	return viper.GetString(KeyWorkflowsRef)
}

// WorkflowsVersion returns the human-readable tag matching WorkflowsRef.
func WorkflowsVersion() string {
	return viper.GetString(KeyWorkflowsVersion)
}

// LogLevel returns the configured log level name.
func LogLevel() string {
	return viper.GetString(KeyLogLevel)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return platform.MakePrivate(configFile)
}
