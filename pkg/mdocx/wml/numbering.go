package wml

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Numbering represents the numbering definitions part. One AbstractNum and
// one Num are emitted per list run; the part is written even when empty.
type Numbering struct {
	AbstractNums []AbstractNum
	Nums         []Num
}

// AbstractNum is a reusable numbering definition with one level per
// renderable nesting depth.
type AbstractNum struct {
	ID     int
	Levels []NumberingLevel
}

// NumberingLevel describes one nesting depth of a definition.
type NumberingLevel struct {
	Level   int
	Start   int
	Format  string
	Text    string
	Justify string
	Indent  int
	Hanging int
	// Font overrides the run font, used for bullet glyphs.
	Font string
}

// Num binds a concrete numbering identifier to an abstract definition.
type Num struct {
	ID            int
	AbstractNumID int
}

// BulletLevels builds the standard level set for an unordered run: bullet
// glyphs with increasing indentation.
func BulletLevels(depth int) []NumberingLevel {
	glyphs := []string{"•", "◦", "▪"}
	levels := make([]NumberingLevel, depth)
	for i := 0; i < depth; i++ {
		levels[i] = NumberingLevel{
			Level:   i,
			Start:   1,
			Format:  "bullet",
			Text:    glyphs[i%len(glyphs)],
			Justify: "left",
			Indent:  720 * (i + 1),
			Hanging: 360,
			Font:    "Symbol",
		}
	}
	return levels
}

// DecimalLevels builds the standard level set for an ordered run.
func DecimalLevels(depth int) []NumberingLevel {
	levels := make([]NumberingLevel, depth)
	for i := 0; i < depth; i++ {
		levels[i] = NumberingLevel{
			Level:   i,
			Start:   1,
			Format:  "decimal",
			Text:    fmt.Sprintf("%%%d.", i+1),
			Justify: "left",
			Indent:  720 * (i + 1),
			Hanging: 360,
		}
	}
	return levels
}

// MarshalXML implements custom XML marshaling for AbstractNum.
func (a AbstractNum) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:abstractNum"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:abstractNumId"}, Value: fmt.Sprintf("%d", a.ID)},
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	multi := xml.StartElement{
		Name: xml.Name{Local: "w:multiLevelType"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: "hybridMultilevel"}},
	}
	if err := e.EncodeElement(struct{}{}, multi); err != nil {
		return err
	}

	for _, lvl := range a.Levels {
		if err := e.EncodeElement(&lvl, xml.StartElement{Name: xml.Name{Local: "w:lvl"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// MarshalXML implements custom XML marshaling for NumberingLevel.
func (l NumberingLevel) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:lvl"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:ilvl"}, Value: fmt.Sprintf("%d", l.Level)},
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	children := []struct {
		name string
		val  string
	}{
		{"w:start", fmt.Sprintf("%d", l.Start)},
		{"w:numFmt", l.Format},
		{"w:lvlText", l.Text},
		{"w:lvlJc", l.Justify},
	}
	for _, child := range children {
		el := xml.StartElement{
			Name: xml.Name{Local: child.name},
			Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: child.val}},
		}
		if err := e.EncodeElement(struct{}{}, el); err != nil {
			return err
		}
	}

	props := &ParagraphProperties{
		Indentation: &Indentation{Left: l.Indent, Hanging: l.Hanging},
	}
	if err := e.EncodeElement(props, xml.StartElement{Name: xml.Name{Local: "w:pPr"}}); err != nil {
		return err
	}

	if l.Font != "" {
		rpr := &RunProperties{Fonts: &Fonts{ASCII: l.Font, HAnsi: l.Font}}
		if err := e.EncodeElement(rpr, xml.StartElement{Name: xml.Name{Local: "w:rPr"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// MarshalXML implements custom XML marshaling for Num.
func (n Num) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:num"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:numId"}, Value: fmt.Sprintf("%d", n.ID)},
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	abstract := xml.StartElement{
		Name: xml.Name{Local: "w:abstractNumId"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: fmt.Sprintf("%d", n.AbstractNumID)}},
	}
	if err := e.EncodeElement(struct{}{}, abstract); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// MarshalNumbering serializes the numbering definitions part.
func MarshalNumbering(n *Numbering) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(XMLHeader)

	e := xml.NewEncoder(&buf)
	root := xml.StartElement{
		Name: xml.Name{Local: "w:numbering"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:w"}, Value: NamespaceWordML},
		},
	}
	if err := e.EncodeToken(root); err != nil {
		return nil, err
	}

	for _, abstract := range n.AbstractNums {
		if err := e.EncodeElement(&abstract, xml.StartElement{Name: xml.Name{Local: "w:abstractNum"}}); err != nil {
			return nil, err
		}
	}
	for _, num := range n.Nums {
		if err := e.EncodeElement(&num, xml.StartElement{Name: xml.Name{Local: "w:num"}}); err != nil {
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
