package qgistidy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

func TestNewRuleSet_DeduplicatesStripNames(t *testing.T) {
	rs := qgistidy.NewRuleSet([]string{"uuid", "expanded", "uuid", "", "expanded"}, nil)

	assert.Equal(t, []string{"uuid", "expanded"}, rs.StripAttributes())
	assert.True(t, rs.ShouldStrip("uuid"))
	assert.False(t, rs.ShouldStrip(""))
	assert.False(t, rs.ShouldStrip("name"))
}

func TestDefaultRules(t *testing.T) {
	rs := qgistidy.DefaultRules()

	for _, name := range []string{"expanded", "selected", "lastSaved", "timestamp", "uuid", "lastOpened"} {
		assert.True(t, rs.ShouldStrip(name), "expected %q to be stripped", name)
	}

	rules := rs.SortRules()
	assert.Len(t, rules, 8)
	assert.Equal(t, qgistidy.SortRule{Parent: "//customproperties", Child: "property", Key: "@key"}, rules[0])
	assert.Equal(t, qgistidy.SortRule{Parent: "//excludedAttributes", Child: "attribute", Key: "text()"}, rules[6])
}

func TestMerge_UnionsStripAndAppendsSortRules(t *testing.T) {
	base := qgistidy.NewRuleSet(
		[]string{"uuid"},
		[]qgistidy.SortRule{{Parent: "//a", Child: "b", Key: "@k"}},
	)
	extra := []qgistidy.SortRule{{Parent: "//c", Child: "d", Key: "text()"}}

	merged := base.Merge([]string{"uuid", "selected"}, extra)

	assert.Equal(t, []string{"uuid", "selected"}, merged.StripAttributes())
	assert.Equal(t, []qgistidy.SortRule{
		{Parent: "//a", Child: "b", Key: "@k"},
		{Parent: "//c", Child: "d", Key: "text()"},
	}, merged.SortRules())

	// The receiver is unchanged.
	assert.Equal(t, []string{"uuid"}, base.StripAttributes())
	assert.Len(t, base.SortRules(), 1)
}

func TestRuleSet_AccessorsReturnCopies(t *testing.T) {
	rs := qgistidy.DefaultRules()

	strip := rs.StripAttributes()
	strip[0] = "changed"
	rules := rs.SortRules()
	rules[0].Key = "@other"

	assert.Equal(t, "expanded", rs.StripAttributes()[0])
	assert.Equal(t, "@key", rs.SortRules()[0].Key)
}
