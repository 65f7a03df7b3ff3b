package wml

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Footnotes represents the footnotes part. The part always carries the two
// built-in separator footnotes; Notes holds the document's own footnotes in
// identifier order.
type Footnotes struct {
	Notes []Footnote
}

// Footnote is a single footnote. Type is empty for normal notes and
// "separator"/"continuationSeparator" for the built-ins.
type Footnote struct {
	ID         int
	Type       string
	Paragraphs []Paragraph
}

// MarshalXML implements custom XML marshaling for Footnote.
func (f Footnote) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:footnote"}
	start.Attr = nil
	if f.Type != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "w:type"}, Value: f.Type})
	}
	start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "w:id"}, Value: fmt.Sprintf("%d", f.ID)})

	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, para := range f.Paragraphs {
		if err := e.EncodeElement(&para, xml.StartElement{Name: xml.Name{Local: "w:p"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// separatorFootnotes returns the two built-in footnotes Word expects at
// the head of the part.
func separatorFootnotes() []Footnote {
	return []Footnote{
		{
			ID:   -1,
			Type: "separator",
			Paragraphs: []Paragraph{{
				Content: []ParagraphContent{&Run{Separator: &Empty{}}},
			}},
		},
		{
			ID:   0,
			Type: "continuationSeparator",
			Paragraphs: []Paragraph{{
				Content: []ParagraphContent{&Run{ContinuationSeparator: &Empty{}}},
			}},
		},
	}
}

// MarshalFootnotes serializes the footnotes part, prepending the built-in
// separator footnotes.
func MarshalFootnotes(f *Footnotes) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(XMLHeader)

	e := xml.NewEncoder(&buf)
	root := xml.StartElement{
		Name: xml.Name{Local: "w:footnotes"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:w"}, Value: NamespaceWordML},
			{Name: xml.Name{Local: "xmlns:r"}, Value: NamespaceRelationships},
			{Name: xml.Name{Local: "xmlns:m"}, Value: NamespaceMath},
		},
	}
	if err := e.EncodeToken(root); err != nil {
		return nil, err
	}

	for _, note := range separatorFootnotes() {
		if err := e.EncodeElement(&note, xml.StartElement{Name: xml.Name{Local: "w:footnote"}}); err != nil {
			return nil, err
		}
	}
	for _, note := range f.Notes {
		if err := e.EncodeElement(&note, xml.StartElement{Name: xml.Name{Local: "w:footnote"}}); err != nil {
			return nil, err
		}
	}

	if err := e.EncodeToken(xml.EndElement{Name: root.Name}); err != nil {
		return nil, err
	}
	if err := e.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
