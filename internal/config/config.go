package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/qgistidy/internal/files/filesystem"
	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// SortRuleConfig is one entry of sort_rules.
type SortRuleConfig struct {
	ParentXPath string `yaml:"parent_xpath" json:"parent_xpath"`
	ChildXPath  string `yaml:"child_xpath" json:"child_xpath"`
	KeyXPath    string `yaml:"key_xpath" json:"key_xpath"`
}

// RulesFile is the on-disk form of a rule override file. Both keys are
// optional; whatever is present is merged into the built-in defaults.
type RulesFile struct {
	StripAttributes []string         `yaml:"strip_attributes,omitempty" json:"strip_attributes,omitempty"`
	SortRules       []SortRuleConfig `yaml:"sort_rules,omitempty" json:"sort_rules,omitempty"`
}

// ResolvePath returns the rule file to load: flagValue when set, otherwise
// the value of $QGISTIDY_CONFIG. An empty result means no override file.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(qgistidy.ConfigEnvVar)
}

// Load reads a rule file from the OS filesystem.
func Load(path string) (*RulesFile, error) {
	return LoadFrom(filesystem.NewOSFileSystem(), path)
}

// LoadFrom reads a rule file through fsys. Files ending in .json or .jsonc
// are parsed as JSON with comments and trailing commas; everything else is
// parsed as YAML.
func LoadFrom(fsys filesystem.FileSystemProvider, path string) (*RulesFile, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg RulesFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return nil, fmt.Errorf("invalid rule file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("invalid rule file %s: %w", path, err)
		}
	}
	return &cfg, nil
}

// Apply merges the file's rules into base: strip names are unioned and sort
// rules are appended after base's. A nil receiver returns base unchanged.
func (f *RulesFile) Apply(base *qgistidy.RuleSet) *qgistidy.RuleSet {
	if f == nil {
		return base
	}
	rules := make([]qgistidy.SortRule, 0, len(f.SortRules))
	for _, r := range f.SortRules {
		rules = append(rules, qgistidy.SortRule{
			Parent: r.ParentXPath,
			Child:  r.ChildXPath,
			Key:    r.KeyXPath,
		})
	}
	return base.Merge(f.StripAttributes, rules)
}

// FromRuleSet converts an effective rule set back to its file form.
func FromRuleSet(rs *qgistidy.RuleSet) *RulesFile {
	f := &RulesFile{StripAttributes: rs.StripAttributes()}
	for _, r := range rs.SortRules() {
		f.SortRules = append(f.SortRules, SortRuleConfig{
			ParentXPath: r.Parent,
			ChildXPath:  r.Child,
			KeyXPath:    r.Key,
		})
	}
	return f
}

// Marshal renders the file as YAML with two-space indentation.
func (f *RulesFile) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode rules: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode rules: %w", err)
	}
	return buf.Bytes(), nil
}
