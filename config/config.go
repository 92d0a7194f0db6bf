package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/yaklabco/autoxbuild/internal/env"
	"github.com/yaklabco/autoxbuild/pkg/st"
)

// Config holds all autoxbuild configuration values.
type Config struct {
	// Build is the package build command run first, with inherited stdio.
	Build CommandConfig `mapstructure:"build"`

	// Bundle is the bundler command awaited after a successful build.
	Bundle CommandConfig `mapstructure:"bundle"`

	// Website describes how static site files are staged for distribution.
	Website WebsiteConfig `mapstructure:"website"`

	// Env holds extra KEY=VALUE assignments passed to the build and bundle commands.
	// It is a list rather than a map because viper lowercases map keys.
	Env []string `mapstructure:"env"`

	// Verbose echoes every executed command.
	Verbose bool `mapstructure:"verbose"`

	// Debug enables debug messages.
	Debug bool `mapstructure:"debug"`

	// configFile is the path to the config file that was loaded (if any).
	configFile string
}

// CommandConfig is an external command and its arguments.
type CommandConfig struct {
	Cmd  string   `mapstructure:"cmd"`
	Args []string `mapstructure:"args"`
}

// String renders the command line for display.
func (c CommandConfig) String() string {
	return strings.TrimSpace(c.Cmd + " " + strings.Join(c.Args, " "))
}

// WebsiteConfig controls the website copy step.
type WebsiteConfig struct {
	// Src is the directory holding the static website.
	Src string `mapstructure:"src"`

	// Dst is the distribution directory the website is staged into.
	Dst string `mapstructure:"dst"`

	// Exclude lists glob patterns, relative to Src, that are not copied.
	Exclude []string `mapstructure:"exclude"`

	// Clean removes Dst before copying.
	Clean bool `mapstructure:"clean"`
}

// ConfigFile returns the path to the configuration file that was loaded,
// or an empty string if no file was loaded.
func (c *Config) ConfigFile() string {
	return c.configFile
}

// EnvMap returns Env as a map, ignoring malformed entries.
func (c *Config) EnvMap() map[string]string {
	return env.ToMap(c.Env)
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectDir is the directory to search for project-level config.
	// If empty, the current working directory is used.
	ProjectDir string

	// Stderr is where warnings are written.
	// If nil, os.Stderr is used.
	Stderr io.Writer

	// SkipProjectConfig skips loading project-level configuration.
	SkipProjectConfig bool

	// SkipUserConfig skips loading user-level configuration.
	SkipUserConfig bool

	// SkipEnv skips reading environment variables.
	SkipEnv bool
}

// Load reads configuration from all sources and returns a Config struct.
// Configuration is loaded in the following order (later sources override earlier):
//  1. Defaults
//  2. User config file (~/.config/autoxbuild/config.yaml)
//  3. Project config file (./autoxbuild.yaml)
//  4. Environment variables (AUTOXBUILD_*)
//
// If opts is nil, default options are used.
func Load(opts *LoadOptions) (*Config, error) {
	if opts == nil {
		opts = &LoadOptions{}
	}

	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	viperInstance := viper.New()

	setDefaults(viperInstance)
	viperInstance.SetConfigType("yaml")

	var configFileUsed string

	if !opts.SkipUserConfig {
		paths := ResolveXDGPaths()
		viperInstance.SetConfigName(ConfigFileName)
		viperInstance.AddConfigPath(paths.ConfigDir())

		if err := viperInstance.ReadInConfig(); err != nil {
			var configFileNotFoundError viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFoundError) {
				return nil, fmt.Errorf("failed to read user config file: %w", err)
			}
		} else {
			configFileUsed = viperInstance.ConfigFileUsed()
		}
	}

	// Project config merges with/overrides user config
	if !opts.SkipProjectConfig {
		projectDir := opts.ProjectDir
		if projectDir == "" {
			var err error
			projectDir, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		projectConfigPath := filepath.Join(projectDir, ProjectConfigFileName+".yaml")
		if _, err := os.Stat(projectConfigPath); err == nil {
			viperInstance.SetConfigFile(projectConfigPath)
			if err := viperInstance.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read project config file: %w", err)
			}
			configFileUsed = projectConfigPath
		}
	}

	var cfg Config
	if err := viperInstance.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Env vars take precedence over config files
	if !opts.SkipEnv {
		applyEnvironmentOverrides(&cfg)
	}

	cfg.configFile = configFileUsed

	result := cfg.Validate()
	if result.HasWarnings() {
		result.WriteWarnings(opts.Stderr)
	}
	if result.HasErrors() {
		return nil, errors.New(result.ErrorMessage())
	}

	return &cfg, nil
}

// Environment variables that override configuration values.
const (
	BuildCmdEnv   = "AUTOXBUILD_BUILD_CMD"
	BundleCmdEnv  = "AUTOXBUILD_BUNDLE_CMD"
	WebsiteSrcEnv = "AUTOXBUILD_WEBSITE_SRC"
	WebsiteDstEnv = "AUTOXBUILD_WEBSITE_DST"
)

// applyEnvironmentOverrides applies environment variable overrides to the config.
// Command overrides are whole command lines split on whitespace; no shell
// quoting is interpreted.
func applyEnvironmentOverrides(cfg *Config) {
	if v := os.Getenv(BuildCmdEnv); v != "" {
		cfg.Build = parseCommandLine(v)
	}
	if v := os.Getenv(BundleCmdEnv); v != "" {
		cfg.Bundle = parseCommandLine(v)
	}
	if v := os.Getenv(WebsiteSrcEnv); v != "" {
		cfg.Website.Src = v
	}
	if v := os.Getenv(WebsiteDstEnv); v != "" {
		cfg.Website.Dst = v
	}
	cfg.Verbose = env.FailsafeParseBoolEnv(st.VerboseEnv, cfg.Verbose)
	cfg.Debug = env.FailsafeParseBoolEnv(st.DebugEnv, cfg.Debug)
}

func parseCommandLine(line string) CommandConfig {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return CommandConfig{}
	}
	return CommandConfig{Cmd: fields[0], Args: fields[1:]}
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Build:  CommandConfig{Cmd: DefaultBuildCmd, Args: DefaultBuildArgs()},
		Bundle: CommandConfig{Cmd: DefaultBundleCmd, Args: DefaultBundleArgs()},
		Website: WebsiteConfig{
			Src:     DefaultWebsiteSrc,
			Dst:     DefaultWebsiteDst,
			Exclude: []string{},
			Clean:   DefaultWebsiteClean,
		},
		Env:     []string{},
		Verbose: DefaultVerbose,
		Debug:   DefaultDebug,
	}
}

// WriteDefaultConfig writes a default configuration file to the user's config directory.
func WriteDefaultConfig() (string, error) {
	paths := ResolveXDGPaths()
	configDir := paths.ConfigDir()

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := paths.ConfigFilePath()

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigYAML()), 0o600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

func defaultConfigYAML() string {
	return `# autoxbuild configuration
# Project-level settings go in ./autoxbuild.yaml and override this file.

# Package build command. Runs first, with the terminal attached.
build:
  cmd: npm
  args: [run, build]

# Bundler command. Runs after a successful build.
bundle:
  cmd: npx
  args: [rollup, -c]

# Static website staging. Runs after a successful bundle.
website:
  src: website
  dst: dist/website
  # Glob patterns relative to src that are not copied.
  exclude: []
  # Remove dst before copying.
  clean: false

# Extra environment for the build and bundle commands, as KEY=VALUE.
env: []

# Echo every executed command.
verbose: false

# Enable debug messages.
debug: false
`
}
