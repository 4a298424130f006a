// Package canonical turns a QGIS project document into its diff-stable form.
//
// The pipeline is strictly ordered:
//
//  1. Parse the bytes into an etree document, dropping indentation-only text
//  2. Strip the configured attributes from every element
//  3. Apply the sort rules in order (the sorted group moves to the end of its parent)
//  4. Serialize through Exclusive XML Canonicalization without comments, then re-parse
//  5. Pretty print with two-space indentation, an XML declaration and a trailing newline
//
// # Selectors
//
// Sort rules are evaluated with [Select] and [SelectScalar], a narrow layer over
// etree paths. Element selectors accept everything etree.CompilePath accepts
// (//descendant, child/grandchild, [@attr='value'] filters, ...). Key selectors
// additionally accept a final @attr or text() step.
//
// # Example Usage
//
//	out, err := canonical.Canonicalize(data, qgistidy.DefaultRules())
//	if errors.Is(err, qgistidy.ErrParse) {
//	    // malformed XML
//	}
package canonical
