// Package config loads flutterkit settings from defaults, an optional YAML file,
// FLUTTERKIT_* environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/devantler-tech/flutterkit/pkg/envvar"
	"github.com/devantler-tech/flutterkit/pkg/svc/executor"
	"github.com/devantler-tech/flutterkit/pkg/svc/provisioner"
	"github.com/devantler-tech/flutterkit/pkg/toolchain"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file name without extension.
	FileName = "flutterkit"
	// EnvPrefix prefixes every environment override, e.g. FLUTTERKIT_RUNNER_WRAPPER.
	EnvPrefix = "FLUTTERKIT"
	// UserConfigDir is searched after the working directory.
	UserConfigDir = "$HOME/.config/flutterkit"
)

// Keys.
const (
	KeyRunnerWrapper          = "runner.wrapper"
	KeyTemplateURL            = "template.url"
	KeyInteractiveTimeout     = "interactive.timeout"
	KeyInteractivePatterns    = "interactive.confirm_patterns"
	KeyExecutorMaxOutputBytes = "executor.max_output_bytes"
	KeyLogLevel               = "log.level"
)

var (
	// ErrInvalidTimeout is returned for a non-positive interactive timeout.
	ErrInvalidTimeout = errors.New("interactive.timeout must be positive")
	// ErrInvalidOutputLimit is returned for a non-positive output cap.
	ErrInvalidOutputLimit = errors.New("executor.max_output_bytes must be positive")
	// ErrInvalidLogLevel is returned for an unknown log level.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config is the decoded configuration.
type Config struct {
	Runner      RunnerConfig      `mapstructure:"runner"`
	Template    TemplateConfig    `mapstructure:"template"`
	Interactive InteractiveConfig `mapstructure:"interactive"`
	Executor    ExecutorConfig    `mapstructure:"executor"`
	Log         LogConfig         `mapstructure:"log"`
}

// RunnerConfig selects how flutter and dart are invoked.
type RunnerConfig struct {
	// Wrapper is the version manager used when it is on PATH.
	Wrapper string `mapstructure:"wrapper"`
}

// TemplateConfig names the default template.
type TemplateConfig struct {
	URL string `mapstructure:"url"`
}

// InteractiveConfig controls pseudo-terminal sessions.
type InteractiveConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	// ConfirmPatterns are case-insensitive regular expressions answered with "y".
	ConfirmPatterns []string `mapstructure:"confirm_patterns"`
}

// ExecutorConfig bounds captured child output.
type ExecutorConfig struct {
	MaxOutputBytes int `mapstructure:"max_output_bytes"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `mapstructure:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Runner:   RunnerConfig{Wrapper: toolchain.DefaultWrapper},
		Template: TemplateConfig{URL: provisioner.DefaultTemplateURL},
		Interactive: InteractiveConfig{
			Timeout:         executor.DefaultInteractiveTimeout,
			ConfirmPatterns: executor.DefaultConfirmPatterns(),
		},
		Executor: ExecutorConfig{MaxOutputBytes: executor.DefaultMaxOutputBytes},
		Log:      LogConfig{Level: "info"},
	}
}

// SetDefaults registers every key with its default so env overrides are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault(KeyRunnerWrapper, defaults.Runner.Wrapper)
	v.SetDefault(KeyTemplateURL, defaults.Template.URL)
	v.SetDefault(KeyInteractiveTimeout, defaults.Interactive.Timeout)
	v.SetDefault(KeyInteractivePatterns, defaults.Interactive.ConfirmPatterns)
	v.SetDefault(KeyExecutorMaxOutputBytes, defaults.Executor.MaxOutputBytes)
	v.SetDefault(KeyLogLevel, defaults.Log.Level)
}

// NewViper creates a viper instance with defaults and environment binding.
// An empty configFile searches ./flutterkit.yaml and ~/.config/flutterkit/flutterkit.yaml.
func NewViper(configFile string) *viper.Viper {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(UserConfigDir)
	}

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file if present and decodes v. A missing file in the search
// path is not an error; a missing explicit file is.
func Load(v *viper.Viper) (*Config, error) {
	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return Decode(v)
}

// Decode unmarshals v without reading files. Strings are expanded with envvar.Expand.
func Decode(v *viper.Viper) (*Config, error) {
	cfg := Default()

	err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			expandEnvHook(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges and that patterns compile.
func (c *Config) Validate() error {
	if c.Interactive.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Interactive.Timeout)
	}

	if c.Executor.MaxOutputBytes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOutputLimit, c.Executor.MaxOutputBytes)
	}

	_, err := executor.NewConfirmationMatcher(c.Interactive.ConfirmPatterns)
	if err != nil {
		return fmt.Errorf("interactive.confirm_patterns: %w", err)
	}

	_, err = c.Log.SlogLevel()

	return err
}

// SlogLevel parses Level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.Level))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("%w %q: use debug, info, warn or error", ErrInvalidLogLevel, c.Level)
	}

	return level, nil
}

func expandEnvHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, _ reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		value, ok := data.(string)
		if !ok {
			return data, nil
		}

		return envvar.Expand(value), nil
	}
}
