package wml

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Paragraph represents a paragraph in the document.
type Paragraph struct {
	Properties *ParagraphProperties
	// Content maintains the order of runs, hyperlinks and math blocks.
	Content []ParagraphContent
}

// isBodyElement implements the BodyElement interface.
func (p Paragraph) isBodyElement() {}

// MarshalXML implements custom XML marshaling for Paragraph to ensure
// proper namespacing.
func (p Paragraph) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:p"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Properties != nil {
		if err := e.EncodeElement(p.Properties, xml.StartElement{Name: xml.Name{Local: "w:pPr"}}); err != nil {
			return err
		}
	}

	for _, content := range p.Content {
		switch c := content.(type) {
		case *Run:
			if err := e.EncodeElement(c, xml.StartElement{Name: xml.Name{Local: "w:r"}}); err != nil {
				return err
			}
		case *Hyperlink:
			if err := e.EncodeElement(c, xml.StartElement{Name: xml.Name{Local: "w:hyperlink"}}); err != nil {
				return err
			}
		case *OMath:
			if err := e.EncodeElement(c, xml.StartElement{Name: xml.Name{Local: "m:oMath"}}); err != nil {
				return err
			}
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the concatenated text of all runs in a paragraph.
func (p *Paragraph) GetText() string {
	var texts []string
	for _, content := range p.Content {
		switch c := content.(type) {
		case *Run:
			if text := c.GetText(); text != "" {
				texts = append(texts, text)
			}
		case *Hyperlink:
			if text := c.GetText(); text != "" {
				texts = append(texts, text)
			}
		}
	}
	return strings.Join(texts, "")
}

// ParagraphProperties represents paragraph formatting properties.
type ParagraphProperties struct {
	Style       *Style
	NumProps    *NumberingProperties
	Borders     *ParagraphBorders
	Shading     *Shading
	Spacing     *Spacing
	Indentation *Indentation
	Alignment   *Alignment
}

// MarshalXML implements custom XML marshaling for ParagraphProperties.
// Children are written in the schema order Word expects.
func (p ParagraphProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:pPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Style != nil {
		if err := e.EncodeElement(p.Style, xml.StartElement{Name: xml.Name{Local: "w:pStyle"}}); err != nil {
			return err
		}
	}
	if p.NumProps != nil {
		if err := e.EncodeElement(p.NumProps, xml.StartElement{Name: xml.Name{Local: "w:numPr"}}); err != nil {
			return err
		}
	}
	if p.Borders != nil {
		if err := e.EncodeElement(p.Borders, xml.StartElement{Name: xml.Name{Local: "w:pBdr"}}); err != nil {
			return err
		}
	}
	if p.Shading != nil {
		if err := e.EncodeElement(p.Shading, xml.StartElement{Name: xml.Name{Local: "w:shd"}}); err != nil {
			return err
		}
	}
	if p.Spacing != nil {
		if err := e.EncodeElement(p.Spacing, xml.StartElement{Name: xml.Name{Local: "w:spacing"}}); err != nil {
			return err
		}
	}
	if p.Indentation != nil {
		if err := e.EncodeElement(p.Indentation, xml.StartElement{Name: xml.Name{Local: "w:ind"}}); err != nil {
			return err
		}
	}
	if p.Alignment != nil {
		if err := e.EncodeElement(p.Alignment, xml.StartElement{Name: xml.Name{Local: "w:jc"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// NumberingProperties binds a paragraph to a numbering definition level.
type NumberingProperties struct {
	Level int
	NumID int
}

// MarshalXML implements custom XML marshaling for NumberingProperties.
func (n NumberingProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:numPr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	ilvl := xml.StartElement{
		Name: xml.Name{Local: "w:ilvl"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: fmt.Sprintf("%d", n.Level)}},
	}
	if err := e.EncodeElement(struct{}{}, ilvl); err != nil {
		return err
	}

	numID := xml.StartElement{
		Name: xml.Name{Local: "w:numId"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: fmt.Sprintf("%d", n.NumID)}},
	}
	if err := e.EncodeElement(struct{}{}, numID); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// ParagraphBorders represents the w:pBdr border set.
type ParagraphBorders struct {
	Top    *BorderEdge
	Left   *BorderEdge
	Bottom *BorderEdge
	Right  *BorderEdge
}

// MarshalXML implements custom XML marshaling for ParagraphBorders.
func (b ParagraphBorders) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:pBdr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if b.Top != nil {
		if err := e.EncodeElement(b.Top, xml.StartElement{Name: xml.Name{Local: "w:top"}}); err != nil {
			return err
		}
	}
	if b.Left != nil {
		if err := e.EncodeElement(b.Left, xml.StartElement{Name: xml.Name{Local: "w:left"}}); err != nil {
			return err
		}
	}
	if b.Bottom != nil {
		if err := e.EncodeElement(b.Bottom, xml.StartElement{Name: xml.Name{Local: "w:bottom"}}); err != nil {
			return err
		}
	}
	if b.Right != nil {
		if err := e.EncodeElement(b.Right, xml.StartElement{Name: xml.Name{Local: "w:right"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Alignment represents text alignment.
type Alignment struct {
	Val string
}

// MarshalXML implements custom XML marshaling for Alignment.
func (a Alignment) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:jc"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:val"}, Value: a.Val},
	}
	return e.EncodeElement(struct{}{}, start)
}

// Indentation represents paragraph indentation in twips.
type Indentation struct {
	Left    int
	Hanging int
}

// MarshalXML implements custom XML marshaling for Indentation.
func (i Indentation) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:ind"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:left"}, Value: fmt.Sprintf("%d", i.Left)},
	}
	if i.Hanging != 0 {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "w:hanging"}, Value: fmt.Sprintf("%d", i.Hanging)})
	}
	return e.EncodeElement(struct{}{}, start)
}

// Spacing represents paragraph spacing in twentieths of a point.
type Spacing struct {
	Before int
	After  int
}

// MarshalXML implements custom XML marshaling for Spacing.
func (s Spacing) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:spacing"}
	start.Attr = nil
	if s.Before != 0 {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "w:before"}, Value: fmt.Sprintf("%d", s.Before)})
	}
	if s.After != 0 {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "w:after"}, Value: fmt.Sprintf("%d", s.After)})
	}
	return e.EncodeElement(struct{}{}, start)
}

// Hyperlink represents a hyperlink bound to a relationship identifier.
type Hyperlink struct {
	ID      string
	History string
	Runs    []Run
}

// isParagraphContent implements the ParagraphContent interface.
func (h Hyperlink) isParagraphContent() {}

// MarshalXML implements custom XML marshaling for Hyperlink. The r:id
// attribute uses the relationships namespace declared on the part root.
func (h Hyperlink) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:hyperlink"}
	start.Attr = nil
	if h.ID != "" {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "r:id"},
			Value: h.ID,
		})
	}
	if h.History != "" {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "w:history"},
			Value: h.History,
		})
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, run := range h.Runs {
		if err := e.EncodeElement(&run, xml.StartElement{Name: xml.Name{Local: "w:r"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the concatenated text of all runs in a hyperlink.
func (h *Hyperlink) GetText() string {
	var texts []string
	for _, run := range h.Runs {
		if text := run.GetText(); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "")
}
