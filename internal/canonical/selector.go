package canonical

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/vvka-141/qgistidy/pkg/qgistidy"
)

// Select evaluates the element path expr relative to node and returns the
// matching elements in document order. Paths starting with / or // are
// evaluated from the document root.
func Select(node *etree.Element, expr string) ([]*etree.Element, error) {
	path, err := compilePath(expr)
	if err != nil {
		return nil, err
	}
	return node.FindElementsPath(path), nil
}

// SelectScalar evaluates expr relative to node and returns a single value.
// Supported forms are @attr, text(), ".", and an element path optionally
// followed by /@attr or /text(); a bare element path yields the text of the
// first match. ok is false when the selected element or attribute is absent.
func SelectScalar(node *etree.Element, expr string) (value string, ok bool, err error) {
	s, err := compileScalar(expr)
	if err != nil {
		return "", false, err
	}
	value, ok = s.eval(node)
	return value, ok, nil
}

func compilePath(expr string) (etree.Path, error) {
	if strings.TrimSpace(expr) == "" {
		return etree.Path{}, fmt.Errorf("%w: empty expression", qgistidy.ErrInvalidSelector)
	}
	path, err := etree.CompilePath(expr)
	if err != nil {
		return etree.Path{}, fmt.Errorf("%w: %q: %v", qgistidy.ErrInvalidSelector, expr, err)
	}
	return path, nil
}

// scalarSelector is a compiled SelectScalar expression.
type scalarSelector struct {
	path *etree.Path // nil selects the context element itself
	attr string      // empty selects text
}

func compileScalar(expr string) (scalarSelector, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return scalarSelector{}, fmt.Errorf("%w: empty expression", qgistidy.ErrInvalidSelector)
	}

	elementPart, last := "", expr
	if i := lastStep(expr); i >= 0 {
		elementPart, last = expr[:i], expr[i+1:]
	}

	var s scalarSelector
	switch {
	case strings.HasPrefix(last, "@"):
		s.attr = strings.TrimPrefix(last, "@")
		if s.attr == "" {
			return scalarSelector{}, fmt.Errorf("%w: %q: missing attribute name", qgistidy.ErrInvalidSelector, expr)
		}
	case last == "text()":
	default:
		elementPart = expr
	}

	if elementPart != "" && elementPart != "." {
		path, err := compilePath(elementPart)
		if err != nil {
			return scalarSelector{}, err
		}
		s.path = &path
	}
	return s, nil
}

func (s scalarSelector) eval(node *etree.Element) (string, bool) {
	target := node
	if s.path != nil {
		target = node.FindElementPath(*s.path)
		if target == nil {
			return "", false
		}
	}

	if s.attr != "" {
		attr := target.SelectAttr(s.attr)
		if attr == nil {
			return "", false
		}
		return attr.Value, true
	}
	return target.Text(), true
}

// lastStep returns the index of the final '/' separator in expr that is not
// inside a [filter] or a quoted string, or -1 if there is none.
func lastStep(expr string) int {
	depth := 0
	var quote byte
	last := -1
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == '/' && depth == 0:
			last = i
		}
	}
	return last
}
