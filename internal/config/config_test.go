package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/qgistidy/internal/files/filesystem"
	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	content := `strip_attributes:
  - id
  - uuid

sort_rules:
  - parent_xpath: //renderer-v2/categories
    child_xpath: category
    key_xpath: "@label"
`
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, []string{"id", "uuid"}, cfg.StripAttributes)
	require.Len(t, cfg.SortRules, 1)
	assert.Equal(t, "//renderer-v2/categories", cfg.SortRules[0].ParentXPath)
	assert.Equal(t, "category", cfg.SortRules[0].ChildXPath)
	assert.Equal(t, "@label", cfg.SortRules[0].KeyXPath)
}

func TestLoad_JSONWithComments(t *testing.T) {
	dir := t.TempDir()
	content := `{
  // extra volatile attribute
  "strip_attributes": ["id",],
  /* renderer categories */
  "sort_rules": [
    {"parent_xpath": "//categories", "child_xpath": "category", "key_xpath": "@label"},
  ],
}`
	path := filepath.Join(dir, "rules.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id"}, cfg.StripAttributes)
	require.Len(t, cfg.SortRules, 1)
	assert.Equal(t, "//categories", cfg.SortRules[0].ParentXPath)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.StripAttributes)
	assert.Empty(t, cfg.SortRules)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "rules.yaml"))
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"rules.yaml": "{{invalid",
		"list.yaml":  "- just\n- a list\n",
		"rules.json": `{"strip_attributes": "not a list"}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			cfg, err := Load(path)
			assert.Error(t, err)
			assert.False(t, errors.Is(err, ErrConfigNotFound))
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadFrom_MemoryFileSystem(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFile("tidy.yaml", []byte("strip_attributes: [id]\n"))

	cfg, err := LoadFrom(mfs, "tidy.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, cfg.StripAttributes)

	_, err = LoadFrom(mfs, "other.yaml")
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestApply_MergesIntoDefaults(t *testing.T) {
	cfg := &RulesFile{
		StripAttributes: []string{"uuid", "id"},
		SortRules: []SortRuleConfig{
			{ParentXPath: "//categories", ChildXPath: "category", KeyXPath: "@label"},
		},
	}

	defaults := qgistidy.DefaultRules()
	merged := cfg.Apply(defaults)

	strip := merged.StripAttributes()
	assert.Equal(t, append(defaults.StripAttributes(), "id"), strip)

	rules := merged.SortRules()
	require.Len(t, rules, len(defaults.SortRules())+1)
	assert.Equal(t, defaults.SortRules(), rules[:len(rules)-1], "defaults come first")
	assert.Equal(t, qgistidy.SortRule{Parent: "//categories", Child: "category", Key: "@label"}, rules[len(rules)-1])
}

func TestApply_NilFile(t *testing.T) {
	defaults := qgistidy.DefaultRules()
	var cfg *RulesFile
	assert.Same(t, defaults, cfg.Apply(defaults))
}

func TestFromRuleSet_RoundTripsThroughYAML(t *testing.T) {
	out, err := FromRuleSet(qgistidy.DefaultRules()).Marshal()
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "strip_attributes:\n  - expanded\n")
	assert.Contains(t, s, "  - parent_xpath: //customproperties\n    child_xpath: property\n    key_xpath: '@key'\n")

	path := filepath.Join(t.TempDir(), "effective.yaml")
	require.NoError(t, os.WriteFile(path, out, 0644))
	cfg, err := Load(path)
	require.NoError(t, err)

	rebuilt := cfg.Apply(qgistidy.NewRuleSet(nil, nil))
	assert.Equal(t, qgistidy.DefaultRules().StripAttributes(), rebuilt.StripAttributes())
	assert.Equal(t, qgistidy.DefaultRules().SortRules(), rebuilt.SortRules())
}

func TestResolvePath(t *testing.T) {
	t.Setenv(qgistidy.ConfigEnvVar, "/etc/qgistidy.yaml")

	assert.Equal(t, "flag.yaml", ResolvePath("flag.yaml"))
	assert.Equal(t, "/etc/qgistidy.yaml", ResolvePath(""))

	t.Setenv(qgistidy.ConfigEnvVar, "")
	assert.Equal(t, "", ResolvePath(""))
}
