package wml

import (
	"encoding/xml"
	"fmt"
)

// Run represents a run of text with common properties. Exactly one of the
// content fields is normally set; the marshaler writes whichever are
// present in schema order.
type Run struct {
	Properties *RunProperties
	// FootnoteRefMark is the w:footnoteRef mark placed at the start of a
	// footnote's own text.
	FootnoteRefMark *Empty
	// Separator and ContinuationSeparator are used only in the two
	// built-in footnotes of the footnotes part.
	Separator             *Empty
	ContinuationSeparator *Empty
	Text                  *Text
	Break                 *Break
	// FootnoteReference anchors a footnote from body text.
	FootnoteReference *FootnoteReference
}

// isParagraphContent implements the ParagraphContent interface.
func (r Run) isParagraphContent() {}

// MarshalXML implements custom XML marshaling for Run to ensure proper
// namespacing.
func (r Run) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:r"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.Properties != nil {
		if err := e.EncodeElement(r.Properties, xml.StartElement{Name: xml.Name{Local: "w:rPr"}}); err != nil {
			return err
		}
	}

	if r.FootnoteRefMark != nil {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:footnoteRef"}}); err != nil {
			return err
		}
	}

	if r.Separator != nil {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:separator"}}); err != nil {
			return err
		}
	}

	if r.ContinuationSeparator != nil {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:continuationSeparator"}}); err != nil {
			return err
		}
	}

	if r.Text != nil {
		if err := e.EncodeElement(r.Text, xml.StartElement{Name: xml.Name{Local: "w:t"}}); err != nil {
			return err
		}
	}

	if r.Break != nil {
		if err := e.Encode(r.Break); err != nil {
			return err
		}
	}

	if r.FootnoteReference != nil {
		if err := e.Encode(r.FootnoteReference); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the text content of a run.
func (r *Run) GetText() string {
	if r.Text == nil {
		return ""
	}
	return r.Text.Content
}

// RunProperties represents run formatting properties.
type RunProperties struct {
	Style         *Style
	Fonts         *Fonts
	Bold          *Empty
	Italic        *Empty
	Strike        *Empty
	Color         *Color
	Size          *Size
	Underline     *UnderlineStyle
	VerticalAlign *VerticalAlign
}

// MarshalXML implements custom XML marshaling for RunProperties. Children
// are written in the schema order Word expects.
func (p RunProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:rPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Style != nil {
		if err := e.EncodeElement(p.Style, xml.StartElement{Name: xml.Name{Local: "w:rStyle"}}); err != nil {
			return err
		}
	}
	if p.Fonts != nil {
		if err := e.EncodeElement(p.Fonts, xml.StartElement{Name: xml.Name{Local: "w:rFonts"}}); err != nil {
			return err
		}
	}
	if p.Bold != nil {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:b"}}); err != nil {
			return err
		}
	}
	if p.Italic != nil {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:i"}}); err != nil {
			return err
		}
	}
	if p.Strike != nil {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:strike"}}); err != nil {
			return err
		}
	}
	if p.Color != nil {
		if err := e.EncodeElement(p.Color, xml.StartElement{Name: xml.Name{Local: "w:color"}}); err != nil {
			return err
		}
	}
	if p.Size != nil {
		if err := e.EncodeElement(p.Size, xml.StartElement{Name: xml.Name{Local: "w:sz"}}); err != nil {
			return err
		}
	}
	if p.Underline != nil {
		if err := e.EncodeElement(p.Underline, xml.StartElement{Name: xml.Name{Local: "w:u"}}); err != nil {
			return err
		}
	}
	if p.VerticalAlign != nil {
		if err := e.EncodeElement(p.VerticalAlign, xml.StartElement{Name: xml.Name{Local: "w:vertAlign"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Text represents text content.
type Text struct {
	Space   string
	Content string
}

// MarshalXML implements custom XML marshaling for Text to ensure proper
// namespacing.
func (t Text) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:t"}
	start.Attr = nil
	if t.Space == "preserve" {
		// Use the predefined XML namespace
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Space: "http://www.w3.org/XML/1998/namespace", Local: "space"},
			Value: "preserve",
		})
	}
	return e.EncodeElement(t.Content, start)
}

// NewText builds a Text node, preserving significant whitespace.
func NewText(content string) *Text {
	t := &Text{Content: content}
	if content != "" && (content[0] == ' ' || content[len(content)-1] == ' ') {
		t.Space = "preserve"
	}
	return t
}

// Break represents a line break.
type Break struct {
	Type string
}

// MarshalXML implements xml.Marshaler to ensure Break is self-closing.
func (b *Break) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:br"}
	start.Attr = nil
	if b.Type != "" {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "w:type"},
			Value: b.Type,
		})
	}
	return e.EncodeElement(struct{}{}, start)
}

// FootnoteReference represents a w:footnoteReference anchor in body text.
type FootnoteReference struct {
	ID int
}

// MarshalXML implements custom XML marshaling for FootnoteReference.
func (f *FootnoteReference) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:footnoteReference"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:id"}, Value: fmt.Sprintf("%d", f.ID)},
	}
	return e.EncodeElement(struct{}{}, start)
}

// Color represents text color.
type Color struct {
	Val string
}

// MarshalXML implements custom XML marshaling for Color.
func (c Color) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:color"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:val"}, Value: c.Val},
	}
	return e.EncodeElement(struct{}{}, start)
}

// Size represents font size in half-points.
type Size struct {
	Val int
}

// MarshalXML implements custom XML marshaling for Size.
func (s Size) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = prefixed(start.Name)
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:val"}, Value: fmt.Sprintf("%d", s.Val)},
	}
	return e.EncodeElement(struct{}{}, start)
}

// Fonts represents font information.
type Fonts struct {
	ASCII string
	HAnsi string
}

// MarshalXML implements custom XML marshaling for Fonts.
func (f Fonts) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:rFonts"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:ascii"}, Value: f.ASCII},
	}
	if f.HAnsi != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "w:hAnsi"}, Value: f.HAnsi})
	}
	return e.EncodeElement(struct{}{}, start)
}

// UnderlineStyle represents underline formatting.
type UnderlineStyle struct {
	Val string
}

// MarshalXML implements custom XML marshaling for UnderlineStyle.
func (u UnderlineStyle) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:u"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:val"}, Value: u.Val},
	}
	return e.EncodeElement(struct{}{}, start)
}

// VerticalAlign represents vertical text alignment (superscript/subscript).
type VerticalAlign struct {
	Val string
}

// MarshalXML implements custom XML marshaling for VerticalAlign.
func (v VerticalAlign) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:vertAlign"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:val"}, Value: v.Val},
	}
	return e.EncodeElement(struct{}{}, start)
}
