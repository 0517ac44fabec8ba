// Package config manages user-level settings stored at ~/.frontpl/config.yaml.
// Values can be overridden with FRONTPL_* environment variables. Settings
// cover the fallback package manager, the default Node major for generated
// workflows, the reusable-workflows pin and the log level.
package config
