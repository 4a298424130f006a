package qgistidy

// SortRule reorders the children selected by Child under every element
// selected by Parent, ordered by the value Key selects on each child.
// All three fields are path expressions; they are not validated until
// they are evaluated against a document.
type SortRule struct {
	Parent string
	Child  string
	Key    string
}

// RuleSet holds the attribute names to strip and the ordered sort rules.
// A RuleSet is immutable once constructed; accessors return copies.
type RuleSet struct {
	strip     []string
	stripSet  map[string]struct{}
	sortRules []SortRule
}

// NewRuleSet creates a RuleSet. Duplicate strip names are dropped, keeping
// the first occurrence. Sort rules keep their order.
func NewRuleSet(strip []string, sortRules []SortRule) *RuleSet {
	rs := &RuleSet{
		stripSet: make(map[string]struct{}, len(strip)),
	}
	for _, name := range strip {
		if name == "" {
			continue
		}
		if _, seen := rs.stripSet[name]; seen {
			continue
		}
		rs.stripSet[name] = struct{}{}
		rs.strip = append(rs.strip, name)
	}
	rs.sortRules = append([]SortRule(nil), sortRules...)
	return rs
}

// DefaultRules returns the built-in rules: volatile QGIS attributes and the
// order-insensitive lists QGIS writes in unstable order.
func DefaultRules() *RuleSet {
	return NewRuleSet(
		[]string{"expanded", "selected", "lastSaved", "timestamp", "uuid", "lastOpened"},
		[]SortRule{
			{Parent: "//customproperties", Child: "property", Key: "@key"},
			{Parent: "//variables", Child: "variable", Key: "@name"},
			{Parent: "//fieldConfiguration", Child: "field", Key: "@name"},
			{Parent: "//aliases", Child: "alias", Key: "@name"},
			{Parent: "//attributealiases", Child: "alias", Key: "@field"},
			{Parent: "//constraints", Child: "constraint", Key: "@field"},
			{Parent: "//excludedAttributes", Child: "attribute", Key: "text()"},
			{Parent: "//individual-layer-settings", Child: "layer-setting", Key: "@id"},
		},
	)
}

// Merge returns a new RuleSet with the given strip names unioned into the
// receiver's and the given sort rules appended after the receiver's.
func (r *RuleSet) Merge(strip []string, sortRules []SortRule) *RuleSet {
	names := make([]string, 0, len(r.strip)+len(strip))
	names = append(names, r.strip...)
	names = append(names, strip...)

	rules := make([]SortRule, 0, len(r.sortRules)+len(sortRules))
	rules = append(rules, r.sortRules...)
	rules = append(rules, sortRules...)

	return NewRuleSet(names, rules)
}

// StripAttributes returns the attribute names to strip, in first-seen order.
func (r *RuleSet) StripAttributes() []string {
	return append([]string(nil), r.strip...)
}

// ShouldStrip reports whether attributes named name are stripped.
func (r *RuleSet) ShouldStrip(name string) bool {
	_, ok := r.stripSet[name]
	return ok
}

// SortRules returns the sort rules in application order.
func (r *RuleSet) SortRules() []SortRule {
	return append([]SortRule(nil), r.sortRules...)
}
