package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCommand_Defaults(t *testing.T) {
	r := execute(t, newProjectFS(nil), "", "rules")
	require.NoError(t, r.err)

	assert.Contains(t, r.stdout, "strip_attributes:\n")
	assert.Contains(t, r.stdout, "  - lastSaved\n")
	assert.Contains(t, r.stdout, "parent_xpath: //individual-layer-settings\n")
}

func TestRulesCommand_WithOverride(t *testing.T) {
	mfs := newProjectFS(map[string][]byte{
		"rules.yaml": []byte(`strip_attributes: [id]
sort_rules:
  - parent_xpath: //categories
    child_xpath: category
    key_xpath: "@label"
`),
	})

	r := execute(t, mfs, "", "rules", "--config", "rules.yaml")
	require.NoError(t, r.err)

	assert.Contains(t, r.stdout, "  - id\n")
	assert.Contains(t, r.stdout, "parent_xpath: //categories\n")
	assert.Less(t, strings.Index(r.stdout, "//customproperties"), strings.Index(r.stdout, "//categories"), "defaults come first")
}

func TestRulesCommand_RejectsArguments(t *testing.T) {
	r := execute(t, newProjectFS(nil), "", "rules", "extra")
	assert.Error(t, r.err)
}
