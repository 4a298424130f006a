package canonical

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	dsig "github.com/russellhaering/goxmldsig"
	"golang.org/x/net/html/charset"

	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

const indentUnit = "  "

// utf8BOM may precede the XML declaration. etree would keep it as text
// outside the root element.
var utf8BOM = []byte("\xef\xbb\xbf")

// XML canonicalizes project documents. It is a zero-size type and is safe
// for concurrent use by multiple goroutines.
type XML struct{}

// New creates a new canonicalizer.
func New() XML {
	return XML{}
}

// Canonicalize implements the archive rebuilder's document normalizer.
func (XML) Canonicalize(raw []byte, rules *qgistidy.RuleSet) ([]byte, error) {
	return Canonicalize(raw, rules)
}

// Canonicalize parses raw, strips and sorts according to rules, passes the
// tree through exclusive canonical form and returns the pretty-printed result.
// A nil rules applies no stripping or sorting.
//
// Malformed XML returns an error wrapping qgistidy.ErrParse; an empty or
// invalid selector returns an error wrapping qgistidy.ErrInvalidSelector.
func Canonicalize(raw []byte, rules *qgistidy.RuleSet) ([]byte, error) {
	if rules == nil {
		rules = qgistidy.NewRuleSet(nil, nil)
	}

	doc, err := parse(raw)
	if err != nil {
		return nil, err
	}

	stripAttributes(doc.Root(), rules)

	if err := applySortRules(doc, rules.SortRules()); err != nil {
		return nil, err
	}

	root, err := canonicalForm(doc.Root())
	if err != nil {
		return nil, err
	}

	return prettyPrint(root)
}

func parse(raw []byte) (*etree.Document, error) {
	if err := checkWellFormed(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", qgistidy.ErrParse, err)
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(bytes.TrimPrefix(raw, utf8BOM)); err != nil {
		return nil, fmt.Errorf("%w: %v", qgistidy.ErrParse, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", qgistidy.ErrParse)
	}
	if len(doc.ChildElements()) > 1 {
		return nil, fmt.Errorf("%w: extra content at end of document", qgistidy.ErrParse)
	}
	if hasText(&doc.Element) {
		return nil, fmt.Errorf("%w: text outside the root element", qgistidy.ErrParse)
	}

	stripBlankText(root)
	return doc, nil
}

// checkWellFormed runs raw through encoding/xml's token reader, which
// matches end tags against start tags and rejects truncated input. etree
// builds its tree from raw tokens, which are not checked for balance.
func checkWellFormed(raw []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.CharsetReader = charset.NewReaderLabel
	for {
		if _, err := dec.Token(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// stripBlankText removes whitespace-only text from elements whose content is
// markup only. Leaf text and mixed content are kept as they are.
func stripBlankText(el *etree.Element) {
	if hasMarkup(el) && !hasText(el) {
		for i := len(el.Child) - 1; i >= 0; i-- {
			if isBlank(el.Child[i]) {
				el.RemoveChildAt(i)
			}
		}
	}
	for _, child := range el.ChildElements() {
		stripBlankText(child)
	}
}

// stripAttributes removes unprefixed attributes named in the rule set from
// el and all of its descendants.
func stripAttributes(el *etree.Element, rules *qgistidy.RuleSet) {
	kept := el.Attr[:0]
	for _, attr := range el.Attr {
		if attr.Space == "" && rules.ShouldStrip(attr.Key) {
			continue
		}
		kept = append(kept, attr)
	}
	el.Attr = kept

	for _, child := range el.ChildElements() {
		stripAttributes(child, rules)
	}
}

func removeComments(el *etree.Element) {
	for i := len(el.Child) - 1; i >= 0; i-- {
		if _, ok := el.Child[i].(*etree.Comment); ok {
			el.RemoveChildAt(i)
		}
	}
	for _, child := range el.ChildElements() {
		removeComments(child)
	}
}

// canonicalForm serializes root with Exclusive XML Canonicalization 1.0
// (attributes in lexicographic order, only visibly used namespace
// declarations, no comments) and parses the result back into a tree.
func canonicalForm(root *etree.Element) (*etree.Element, error) {
	removeComments(root)

	c14n := dsig.MakeC14N10ExclusiveCanonicalizerWithPrefixList("")
	canonicalBytes, err := c14n.Canonicalize(root)
	if err != nil {
		return nil, fmt.Errorf("%w: canonical form: %v", qgistidy.ErrParse, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(canonicalBytes); err != nil {
		return nil, fmt.Errorf("failed to re-parse canonical form: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("canonical form has no root element")
	}
	return doc.Root(), nil
}

func prettyPrint(root *etree.Element) ([]byte, error) {
	doc := etree.NewDocument()
	doc.SetRoot(root)
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true

	indent(root, 0)

	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(body) + 1)
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// indent lays out element-only content one child per line. Leaf elements
// and mixed content are not touched, so their text survives verbatim.
func indent(el *etree.Element, depth int) {
	if !hasMarkup(el) || hasText(el) {
		return
	}

	tokens := make([]etree.Token, 0, len(el.Child))
	for _, token := range el.Child {
		if !isBlank(token) {
			tokens = append(tokens, token)
		}
	}
	for len(el.Child) > 0 {
		el.RemoveChildAt(len(el.Child) - 1)
	}

	inner := "\n" + strings.Repeat(indentUnit, depth+1)
	for _, token := range tokens {
		el.CreateText(inner)
		el.AddChild(token)
		if child, ok := token.(*etree.Element); ok {
			indent(child, depth+1)
		}
	}
	el.CreateText("\n" + strings.Repeat(indentUnit, depth))
}

// hasMarkup reports whether el has any child token other than character data.
func hasMarkup(el *etree.Element) bool {
	for _, token := range el.Child {
		if _, ok := token.(*etree.CharData); !ok {
			return true
		}
	}
	return false
}

// hasText reports whether el has character data that is not just whitespace.
func hasText(el *etree.Element) bool {
	for _, token := range el.Child {
		if cd, ok := token.(*etree.CharData); ok && !cd.IsWhitespace() {
			return true
		}
	}
	return false
}

func isBlank(token etree.Token) bool {
	cd, ok := token.(*etree.CharData)
	return ok && cd.IsWhitespace()
}
