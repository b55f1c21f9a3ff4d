// Package config loads codegen settings with viper: defaults, then the user
// file, then the nearest project file, then CODEGEN_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/example/codegen/internal/core/batch"
	"github.com/example/codegen/internal/core/template"
	"github.com/example/codegen/internal/models"
)

const (
	// ProjectFile is searched for from the working directory upward.
	ProjectFile = ".codegen.yaml"
	// EnvPrefix prefixes environment overrides, e.g. CODEGEN_VARIANT.
	EnvPrefix = "CODEGEN"
	// HomeDirName is the per-user directory below $HOME.
	HomeDirName = ".codegen"
)

// ProjectSuffixes are the name suffixes of the three sibling projects.
type ProjectSuffixes struct {
	Core           string `mapstructure:"core" yaml:"core"`
	Infrastructure string `mapstructure:"infrastructure" yaml:"infrastructure"`
	Api            string `mapstructure:"api" yaml:"api"`
}

// Config represents the codegen configuration.
type Config struct {
	Variant            string                         `mapstructure:"variant" yaml:"variant"`
	RootNamespace      string                         `mapstructure:"root_namespace" yaml:"root_namespace"`
	PrimaryKey         string                         `mapstructure:"primary_key" yaml:"primary_key"`
	BaseMarkers        []string                       `mapstructure:"base_markers" yaml:"base_markers"`
	TemplateDirName    string                         `mapstructure:"template_dir_name" yaml:"template_dir_name"`
	TemplateExt        string                         `mapstructure:"template_ext" yaml:"template_ext"`
	UserTemplateDir    string                         `mapstructure:"user_template_dir" yaml:"user_template_dir"`
	BundledTemplateDir string                         `mapstructure:"bundled_template_dir" yaml:"bundled_template_dir"`
	Projects           ProjectSuffixes                `mapstructure:"projects" yaml:"projects"`
	Categories         map[string][]string            `mapstructure:"categories" yaml:"categories,omitempty"`
	Artifacts          map[string]map[string][]string `mapstructure:"artifacts" yaml:"artifacts,omitempty"`
	LineEnding         string                         `mapstructure:"line_ending" yaml:"line_ending"`
	Concurrency        int                            `mapstructure:"concurrency" yaml:"concurrency"`
	DiagnosticsDB      string                         `mapstructure:"diagnostics_db" yaml:"diagnostics_db"`

	// Files lists the config files that were merged, lowest precedence first.
	Files []string `mapstructure:"-" yaml:"-"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("variant", string(models.VariantModel))
	v.SetDefault("root_namespace", "")
	v.SetDefault("primary_key", "Id")
	v.SetDefault("base_markers", []string{"IEntity", "BaseEntity"})
	v.SetDefault("template_dir_name", ".templates")
	v.SetDefault("template_ext", ".txt")
	v.SetDefault("user_template_dir", "")
	v.SetDefault("bundled_template_dir", "")
	v.SetDefault("projects.core", ".Core")
	v.SetDefault("projects.infrastructure", ".Infrastructure")
	v.SetDefault("projects.api", ".Api")
	v.SetDefault("line_ending", "crlf")
	v.SetDefault("concurrency", 8)
	v.SetDefault("diagnostics_db", "")
}

// Load reads configuration as seen from dir. A non-empty explicit path is
// merged last and must exist.
func Load(dir, explicit string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	var files []string
	if home, err := HomeDir(); err == nil {
		files = append(files, filepath.Join(home, "config.yaml"))
	}
	if project := FindProjectConfig(dir); project != "" {
		files = append(files, project)
	}

	var merged []string
	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := mergeFile(v, path); err != nil {
			return nil, err
		}
		merged = append(merged, path)
	}
	if explicit != "" {
		if err := mergeFile(v, explicit); err != nil {
			return nil, err
		}
		merged = append(merged, explicit)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	cfg.Files = merged

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.MergeInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	return nil
}

// FindProjectConfig walks up from dir looking for ProjectFile. Returns "" when
// none is found.
func FindProjectConfig(dir string) string {
	current, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(current, ProjectFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

// HomeDir returns ~/.codegen.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, HomeDirName), nil
}

// Validate checks values that would otherwise fail deep inside a batch.
func (c *Config) Validate() error {
	if !models.Variant(c.Variant).Valid() {
		return errors.WithHint(
			errors.Newf("unknown variant %q", c.Variant),
			"use \"model\" or \"cqrs\"")
	}
	if _, ok := lineEndings[strings.ToLower(c.LineEnding)]; !ok {
		return errors.WithHint(
			errors.Newf("unknown line ending %q", c.LineEnding),
			"use \"crlf\", \"lf\" or \"cr\"")
	}
	if c.Concurrency < 1 {
		return errors.Newf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.TemplateExt == "" {
		return errors.New("template_ext must not be empty")
	}
	return nil
}

var lineEndings = map[string]string{
	"crlf": "\r\n",
	"lf":   "\n",
	"cr":   "\r",
}

// GeneratorVariant returns the configured variant.
func (c *Config) GeneratorVariant() models.Variant {
	return models.Variant(c.Variant)
}

// EOL returns the line terminator written into generated files.
func (c *Config) EOL() string {
	if eol, ok := lineEndings[strings.ToLower(c.LineEnding)]; ok {
		return eol
	}
	return "\r\n"
}

// CategoriesFor returns the configured category folders for variant, or the
// built-in set.
func (c *Config) CategoriesFor(variant models.Variant) []string {
	if cats, ok := c.Categories[string(variant)]; ok && len(cats) > 0 {
		return append([]string(nil), cats...)
	}
	return template.DefaultCategories(variant)
}

// ArtifactsFor returns the artifact plan for variant. Configured roles
// replace the built-in list for that role.
func (c *Config) ArtifactsFor(variant models.Variant) batch.Artifacts {
	artifacts := batch.DefaultArtifacts(variant)
	for role, paths := range c.Artifacts[string(variant)] {
		artifacts[models.Role(strings.ToLower(role))] = append([]string(nil), paths...)
	}
	return artifacts
}

// UserTemplates returns the user template directory, defaulting to
// ~/.codegen/templates.
func (c *Config) UserTemplates() string {
	if c.UserTemplateDir != "" {
		return c.UserTemplateDir
	}
	home, err := HomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "templates")
}
