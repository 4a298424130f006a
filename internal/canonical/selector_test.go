package canonical

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

const selectorDoc = `<qgis>
  <layer id="a"><name>Roads</name><style kind="line"/></layer>
  <layer id="b"><name>Rivers</name></layer>
  <group><layer id="c"/></group>
</qgis>`

func loadSelectorDoc(t *testing.T) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(selectorDoc))
	return doc.Root()
}

func TestSelect(t *testing.T) {
	root := loadSelectorDoc(t)

	tests := []struct {
		name string
		expr string
		ids  []string
	}{
		{name: "direct children", expr: "layer", ids: []string{"a", "b"}},
		{name: "descendants from root", expr: "//layer", ids: []string{"a", "b", "c"}},
		{name: "attribute filter", expr: "layer[@id='b']", ids: []string{"b"}},
		{name: "nested path", expr: "group/layer", ids: []string{"c"}},
		{name: "no match", expr: "missing", ids: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := Select(root, tt.expr)
			require.NoError(t, err)

			var ids []string
			for _, m := range matches {
				ids = append(ids, m.SelectAttrValue("id", ""))
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestSelect_InvalidExpression(t *testing.T) {
	root := loadSelectorDoc(t)

	for _, expr := range []string{"", "   ", "layer[@id"} {
		_, err := Select(root, expr)
		assert.ErrorIs(t, err, qgistidy.ErrInvalidSelector, "expr %q", expr)
	}
}

func TestSelectScalar(t *testing.T) {
	root := loadSelectorDoc(t)
	first := root.SelectElement("layer")
	require.NotNil(t, first)

	tests := []struct {
		name  string
		expr  string
		value string
		found bool
	}{
		{name: "attribute", expr: "@id", value: "a", found: true},
		{name: "missing attribute", expr: "@nope", value: "", found: false},
		{name: "child text", expr: "name", value: "Roads", found: true},
		{name: "explicit child text", expr: "name/text()", value: "Roads", found: true},
		{name: "child attribute", expr: "style/@kind", value: "line", found: true},
		{name: "missing child", expr: "legend/@kind", value: "", found: false},
		{name: "self text", expr: "text()", value: "", found: true},
		{name: "self", expr: ".", value: "", found: true},
		{name: "filtered attribute", expr: "style[@kind='line']/@kind", value: "line", found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, found, err := SelectScalar(first, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestSelectScalar_InvalidExpression(t *testing.T) {
	root := loadSelectorDoc(t)

	for _, expr := range []string{"", "@", "style/@", "style[@kind/@kind"} {
		_, _, err := SelectScalar(root, expr)
		assert.ErrorIs(t, err, qgistidy.ErrInvalidSelector, "expr %q", expr)
	}
}

func TestLastStep(t *testing.T) {
	tests := map[string]int{
		"@id":                 -1,
		"a/@id":               1,
		"a[b/c]/@id":          6,
		"a[@x='1/2']":         -1,
		"//layer/name/text()": 12,
	}
	for expr, want := range tests {
		assert.Equal(t, want, lastStep(expr), "expr %q", expr)
	}
}
