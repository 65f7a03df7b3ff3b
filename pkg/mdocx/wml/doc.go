// Package wml provides Go types for the wordprocessingML vocabulary used in
// the generated package parts: document body, paragraphs, runs, hyperlinks,
// tables, numbering definitions, footnotes and OMML math.
//
// The types are writer-only. Each implements xml.Marshaler and emits
// literal "w:", "m:" and "r:" prefixed element names; the corresponding
// namespaces are declared once on each part's root element. Element order
// inside properties follows the schema order Word expects.
package wml
