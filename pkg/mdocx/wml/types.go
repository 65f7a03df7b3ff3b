package wml

import (
	"encoding/xml"
	"fmt"
)

// BodyElement represents any element that can appear in a document body.
type BodyElement interface {
	isBodyElement()
}

// ParagraphContent represents any content that can appear in a paragraph.
type ParagraphContent interface {
	isParagraphContent()
}

// Empty represents an empty element (used for boolean properties).
type Empty struct{}

// Style represents a style reference.
type Style struct {
	Val string
}

// MarshalXML implements custom XML marshaling for Style. The element name
// depends on the context (pStyle, rStyle, tblStyle) so the provided name is
// kept, prefixed with w: if necessary.
func (s Style) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = prefixed(start.Name)
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:val"}, Value: s.Val},
	}
	return e.EncodeElement(struct{}{}, start)
}

// BorderEdge represents one border line. The element name (w:left,
// w:bottom, w:insideH, ...) is supplied by the containing element.
type BorderEdge struct {
	Val   string
	Size  int
	Space int
	Color string
}

// MarshalXML implements custom XML marshaling for BorderEdge.
func (b BorderEdge) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = prefixed(start.Name)
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:val"}, Value: b.Val},
		{Name: xml.Name{Local: "w:sz"}, Value: fmt.Sprintf("%d", b.Size)},
		{Name: xml.Name{Local: "w:space"}, Value: fmt.Sprintf("%d", b.Space)},
		{Name: xml.Name{Local: "w:color"}, Value: b.Color},
	}
	return e.EncodeElement(struct{}{}, start)
}

// Shading represents paragraph or cell shading.
type Shading struct {
	Val  string
	Fill string
}

// MarshalXML implements custom XML marshaling for Shading.
func (s Shading) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:shd"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:val"}, Value: s.Val},
		{Name: xml.Name{Local: "w:fill"}, Value: s.Fill},
	}
	return e.EncodeElement(struct{}{}, start)
}

// prefixed ensures an element name carries the w: prefix.
func prefixed(name xml.Name) xml.Name {
	if len(name.Local) < 2 || name.Local[:2] != "w:" {
		return xml.Name{Local: "w:" + name.Local}
	}
	return name
}
