package wml

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Namespace URIs declared on part roots.
const (
	NamespaceWordML        = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NamespaceMath          = "http://schemas.openxmlformats.org/officeDocument/2006/math"
)

// XMLHeader is written at the top of every XML part. Word requires the
// standalone declaration.
const XMLHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Document represents the main document part.
type Document struct {
	Body Body
}

// Body represents the document body: an ordered element sequence followed
// by the section properties.
type Body struct {
	Elements []BodyElement
	Section  *SectionProperties
}

// MarshalXML implements custom XML marshaling to preserve element order.
func (b Body) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:body"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, elem := range b.Elements {
		switch el := elem.(type) {
		case *Paragraph:
			if err := e.EncodeElement(el, xml.StartElement{Name: xml.Name{Local: "w:p"}}); err != nil {
				return err
			}
		case *Table:
			if err := e.EncodeElement(el, xml.StartElement{Name: xml.Name{Local: "w:tbl"}}); err != nil {
				return err
			}
		}
	}

	if b.Section != nil {
		if err := e.EncodeElement(b.Section, xml.StartElement{Name: xml.Name{Local: "w:sectPr"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// SectionProperties holds the page geometry written at the end of the
// body. Dimensions are in twips.
type SectionProperties struct {
	PageWidth    int
	PageHeight   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
}

// DefaultSection returns US Letter geometry with one inch margins.
func DefaultSection() *SectionProperties {
	return &SectionProperties{
		PageWidth:    12240,
		PageHeight:   15840,
		MarginTop:    1440,
		MarginRight:  1440,
		MarginBottom: 1440,
		MarginLeft:   1440,
	}
}

// MarshalXML implements custom XML marshaling for SectionProperties.
func (s SectionProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:sectPr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	pgSz := xml.StartElement{
		Name: xml.Name{Local: "w:pgSz"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "w:w"}, Value: fmt.Sprintf("%d", s.PageWidth)},
			{Name: xml.Name{Local: "w:h"}, Value: fmt.Sprintf("%d", s.PageHeight)},
		},
	}
	if err := e.EncodeElement(struct{}{}, pgSz); err != nil {
		return err
	}

	pgMar := xml.StartElement{
		Name: xml.Name{Local: "w:pgMar"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "w:top"}, Value: fmt.Sprintf("%d", s.MarginTop)},
			{Name: xml.Name{Local: "w:right"}, Value: fmt.Sprintf("%d", s.MarginRight)},
			{Name: xml.Name{Local: "w:bottom"}, Value: fmt.Sprintf("%d", s.MarginBottom)},
			{Name: xml.Name{Local: "w:left"}, Value: fmt.Sprintf("%d", s.MarginLeft)},
		},
	}
	if err := e.EncodeElement(struct{}{}, pgMar); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// MarshalDocument serializes the main document part, declaring the w:, r:
// and m: namespaces on the root.
func MarshalDocument(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(XMLHeader)

	e := xml.NewEncoder(&buf)
	root := xml.StartElement{
		Name: xml.Name{Local: "w:document"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:w"}, Value: NamespaceWordML},
			{Name: xml.Name{Local: "xmlns:r"}, Value: NamespaceRelationships},
			{Name: xml.Name{Local: "xmlns:m"}, Value: NamespaceMath},
		},
	}
	if err := e.EncodeToken(root); err != nil {
		return nil, err
	}
	if err := e.EncodeElement(doc.Body, xml.StartElement{Name: xml.Name{Local: "w:body"}}); err != nil {
		return nil, err
	}
	if err := e.EncodeToken(xml.EndElement{Name: root.Name}); err != nil {
		return nil, err
	}
	if err := e.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
