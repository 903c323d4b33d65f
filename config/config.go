package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/fileflow/internal/util"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Log verbosity as passed on the command line or in config files.
// 1 is the quietest, 5 the chattiest.
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	// DefaultLocale is the BCP 47 tag used to collate listings; "und" is the
	// root collation order.
	DefaultLocale = "und"

	// DefaultUniquePaths keeps path uniqueness a soft invariant
	DefaultUniquePaths = false

	// DefaultFileContent is what new files contain until edited
	DefaultFileContent = "New file content."

	DefaultFsName = "fileflow"
	DefaultName   = "fileflow"

	// DefaultAttrTimeout is the attribute cache timeout in seconds
	DefaultAttrTimeout = 1.0

	// DefaultEntryTimeout is the directory entry cache timeout in seconds
	DefaultEntryTimeout = 1.0
)

// Config contains runtime configuration values for the file manager.
type Config struct {
	MountOptions
	LogLvl             util.LogLevel // Internal log level (Default info)
	Locale             string        // BCP 47 tag used to order listings (Default "und")
	UniquePaths        bool          // Reject operations that would produce a duplicate path (Default false)
	DefaultFileContent string        // Content of newly created files (Default "New file content.")
	// NOTE: Only used by the read-only FUSE projection

	AttrTimeout  float64 // Attribute cache timeout in seconds (Default 1.0)
	EntryTimeout float64 // Directory entry cache timeout in seconds (Default 1.0)
}

// LocaleTag parses Locale, falling back to the root collation order when the
// tag is not well-formed.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	LogLvl             *int     `yaml:"log_lvl,omitempty" json:"log_lvl,omitempty"` // Verbosity 1 (error) to 5 (trace)
	Locale             *string  `yaml:"locale,omitempty" json:"locale,omitempty"`
	UniquePaths        *bool    `yaml:"unique_paths,omitempty" json:"unique_paths,omitempty"`
	DefaultFileContent *string  `yaml:"default_file_content,omitempty" json:"default_file_content,omitempty"`
	Debug              *bool    `yaml:"debug,omitempty" json:"debug,omitempty"`
	FsName             *string  `yaml:"fs_name,omitempty" json:"fs_name,omitempty"`
	Name               *string  `yaml:"name,omitempty" json:"name,omitempty"`
	AttrTimeout        *float64 `yaml:"attr_timeout,omitempty" json:"attr_timeout,omitempty"`
	EntryTimeout       *float64 `yaml:"entry_timeout,omitempty" json:"entry_timeout,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		MountOptions: MountOptions{
			FsName: DefaultFsName,
			Name:   DefaultName,
		},
		LogLvl:             DefaultLogLvl,
		Locale:             DefaultLocale,
		UniquePaths:        DefaultUniquePaths,
		DefaultFileContent: DefaultFileContent,
		AttrTimeout:        DefaultAttrTimeout,
		EntryTimeout:       DefaultEntryTimeout,
	}
}

// NewConfig creates a Config from defaults with override applied on top.
// A nil override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// VerbosityToLogLevel clamps v to 1..5 and maps it to the internal log level
func VerbosityToLogLevel(v int) util.LogLevel {
	if v < ErrorVerbose {
		v = ErrorVerbose
	}
	if v > TraceVerbose {
		v = TraceVerbose
	}
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return logLvls[v-1]
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = VerbosityToLogLevel(*override.LogLvl)
	}
	if override.Locale != nil {
		c.Locale = *override.Locale
	}
	if override.UniquePaths != nil {
		c.UniquePaths = *override.UniquePaths
	}
	if override.DefaultFileContent != nil {
		c.DefaultFileContent = *override.DefaultFileContent
	}
	if override.Debug != nil {
		c.Debug = *override.Debug
	}
	if override.FsName != nil {
		c.FsName = *override.FsName
	}
	if override.Name != nil {
		c.Name = *override.Name
	}
	if override.AttrTimeout != nil {
		c.AttrTimeout = *override.AttrTimeout
	}
	if override.EntryTimeout != nil {
		c.EntryTimeout = *override.EntryTimeout
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
