package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// Exit codes
	ExitSuccess = iota
	ExitGeneralError
	ExitInvalidArguments
	ExitBranchNotFound
	ExitGitOperationFailed
	ExitConfigurationError
	ExitRebaseConflict
)

// FileName is the base name of both the global and the repository config file.
const FileName = "gitkit"

const (
	BackendCLI   = "cli"
	BackendGoGit = "go-git"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	DefaultTitleWidth     = 50
	DefaultCommandTimeout = 5 * time.Minute
)

var DefaultRemotePrefixes = []string{"origin/"}

// ErrInvalidConfig is wrapped by every unreadable or invalid setting.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings gitkit reads from gitkit.yaml and GITKIT_* variables.
type Config struct {
	// RemotePrefixes are upstream prefixes that mark a remote-tracking upstream.
	RemotePrefixes []string      `mapstructure:"remote_prefixes"`
	TitleWidth     int           `mapstructure:"title_width"`
	Backend        string        `mapstructure:"backend"`
	Color          string        `mapstructure:"color"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

// Default returns the configuration used when no file or variable overrides it.
func Default() *Config {
	return &Config{
		RemotePrefixes: slices.Clone(DefaultRemotePrefixes),
		TitleWidth:     DefaultTitleWidth,
		Backend:        BackendCLI,
		Color:          ColorAuto,
		CommandTimeout: DefaultCommandTimeout,
	}
}

// Load merges defaults, the global config file, repoPath/gitkit.yaml and
// GITKIT_* environment variables, in increasing order of precedence.
// Missing files are skipped. repoPath may be empty.
func Load(repoPath string) (*Config, error) {
	v := newViper()

	globalDir, err := GetGlobalConfigDir()
	if err != nil {
		return nil, err
	}
	if err := mergeFile(v, globalDir); err != nil {
		return nil, err
	}
	if repoPath != "" {
		if err := mergeFile(v, repoPath); err != nil {
			return nil, err
		}
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("GITKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("remote_prefixes", d.RemotePrefixes)
	v.SetDefault("title_width", d.TitleWidth)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("color", d.Color)
	v.SetDefault("command_timeout", d.CommandTimeout)
	return v
}

func mergeFile(v *viper.Viper, dir string) error {
	path := filepath.Join(dir, FileName+".yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("%w: reading %s: %w", ErrInvalidConfig, path, err)
	}
	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting holds a supported value.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendCLI, BackendGoGit:
	default:
		return fmt.Errorf("%w: backend must be %q or %q, got %q", ErrInvalidConfig, BackendCLI, BackendGoGit, c.Backend)
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalidConfig, c.Color)
	}

	if c.TitleWidth <= 0 {
		return fmt.Errorf("%w: title_width must be positive, got %d", ErrInvalidConfig, c.TitleWidth)
	}
	if c.CommandTimeout < 0 {
		return fmt.Errorf("%w: command_timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// GetGlobalConfigDir returns the global config directory
func GetGlobalConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitkit"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, ".config", "gitkit"), nil
}
