package canonical

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

// applySortRules runs every rule, in order, against doc. All three selectors
// of a rule are compiled before it is applied, so a bad selector fails even
// when nothing in the document matches.
func applySortRules(doc *etree.Document, rules []qgistidy.SortRule) error {
	for i, rule := range rules {
		parentPath, err := compilePath(rule.Parent)
		if err != nil {
			return fmt.Errorf("sort rule %d parent: %w", i+1, err)
		}
		childPath, err := compilePath(rule.Child)
		if err != nil {
			return fmt.Errorf("sort rule %d child: %w", i+1, err)
		}
		key, err := compileScalar(rule.Key)
		if err != nil {
			return fmt.Errorf("sort rule %d key: %w", i+1, err)
		}

		for _, parent := range doc.FindElementsPath(parentPath) {
			sortChildren(parent, childPath, key)
		}
	}
	return nil
}

// sortChildren detaches the elements childPath selects under parent and
// re-appends them, ordered by key, at the end of parent's children. Parents
// with fewer than two matches are left alone.
func sortChildren(parent *etree.Element, childPath etree.Path, key scalarSelector) {
	children := movableMatches(parent, parent.FindElementsPath(childPath))
	if len(children) < 2 {
		return
	}

	keys := make([]sortKey, len(children))
	for i, child := range children {
		value, _ := key.eval(child)
		keys[i] = newSortKey(value)
	}

	order := make([]int, len(children))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return keys[order[i]].less(keys[order[j]])
	})

	for _, child := range children {
		if p := child.Parent(); p != nil {
			p.RemoveChild(child)
		}
	}
	for _, i := range order {
		parent.AddChild(children[i])
	}
}

// movableMatches drops duplicates and any match that is parent itself or one
// of its ancestors, since those cannot be re-attached under parent.
func movableMatches(parent *etree.Element, matches []*etree.Element) []*etree.Element {
	blocked := make(map[*etree.Element]struct{})
	for el := parent; el != nil; el = el.Parent() {
		blocked[el] = struct{}{}
	}

	out := make([]*etree.Element, 0, len(matches))
	for _, m := range matches {
		if _, skip := blocked[m]; skip {
			continue
		}
		blocked[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// sortKey orders numeric values before everything else. Numbers compare by
// value; other values (including an absent key, which is "") compare as
// strings.
type sortKey struct {
	numeric bool
	number  float64
	text    string
}

func newSortKey(value string) sortKey {
	if n, ok := parseNumber(value); ok {
		return sortKey{numeric: true, number: n}
	}
	return sortKey{text: value}
}

func (k sortKey) less(other sortKey) bool {
	if k.numeric != other.numeric {
		return k.numeric
	}
	if k.numeric {
		return k.number < other.number
	}
	return k.text < other.text
}

// parseNumber accepts decimal floats with optional surrounding whitespace,
// including inf and out-of-range values. NaN and hex floats are not numbers.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX") {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if math.IsNaN(n) {
		return 0, false
	}
	return n, true
}
