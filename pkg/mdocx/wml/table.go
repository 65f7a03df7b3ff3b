package wml

import (
	"encoding/xml"
	"fmt"
)

// Table represents a table in the document.
type Table struct {
	Properties *TableProperties
	Grid       *TableGrid
	Rows       []TableRow
}

// isBodyElement implements the BodyElement interface.
func (t Table) isBodyElement() {}

// MarshalXML implements custom XML marshaling for Table to ensure proper
// namespacing.
func (t Table) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tbl"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if t.Properties != nil {
		if err := e.EncodeElement(t.Properties, xml.StartElement{Name: xml.Name{Local: "w:tblPr"}}); err != nil {
			return err
		}
	}

	if t.Grid != nil {
		if err := e.EncodeElement(t.Grid, xml.StartElement{Name: xml.Name{Local: "w:tblGrid"}}); err != nil {
			return err
		}
	}

	for _, row := range t.Rows {
		if err := e.EncodeElement(&row, xml.StartElement{Name: xml.Name{Local: "w:tr"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableProperties represents table formatting properties.
type TableProperties struct {
	Style   *Style
	Width   *TableWidth
	Borders *TableBorders
	Look    *TableLook
}

// MarshalXML implements custom XML marshaling for TableProperties.
func (p TableProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Style != nil {
		if err := e.EncodeElement(p.Style, xml.StartElement{Name: xml.Name{Local: "w:tblStyle"}}); err != nil {
			return err
		}
	}
	if p.Width != nil {
		if err := e.EncodeElement(p.Width, xml.StartElement{Name: xml.Name{Local: "w:tblW"}}); err != nil {
			return err
		}
	}
	if p.Borders != nil {
		if err := e.EncodeElement(p.Borders, xml.StartElement{Name: xml.Name{Local: "w:tblBorders"}}); err != nil {
			return err
		}
	}
	if p.Look != nil {
		if err := e.EncodeElement(p.Look, xml.StartElement{Name: xml.Name{Local: "w:tblLook"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableWidth represents a table or cell width. The element name (w:tblW or
// w:tcW) is supplied by the containing element.
type TableWidth struct {
	W    int
	Type string
}

// MarshalXML implements custom XML marshaling for TableWidth.
func (w TableWidth) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = prefixed(start.Name)
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:w"}, Value: fmt.Sprintf("%d", w.W)},
		{Name: xml.Name{Local: "w:type"}, Value: w.Type},
	}
	return e.EncodeElement(struct{}{}, start)
}

// TableBorders represents the w:tblBorders border set.
type TableBorders struct {
	Top     *BorderEdge
	Left    *BorderEdge
	Bottom  *BorderEdge
	Right   *BorderEdge
	InsideH *BorderEdge
	InsideV *BorderEdge
}

// MarshalXML implements custom XML marshaling for TableBorders.
func (b TableBorders) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblBorders"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	edges := []struct {
		name string
		edge *BorderEdge
	}{
		{"w:top", b.Top},
		{"w:left", b.Left},
		{"w:bottom", b.Bottom},
		{"w:right", b.Right},
		{"w:insideH", b.InsideH},
		{"w:insideV", b.InsideV},
	}
	for _, it := range edges {
		if it.edge == nil {
			continue
		}
		if err := e.EncodeElement(it.edge, xml.StartElement{Name: xml.Name{Local: it.name}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableLook represents table style options.
type TableLook struct {
	Val      string
	FirstRow string
}

// MarshalXML implements custom XML marshaling for TableLook.
func (t TableLook) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblLook"}
	start.Attr = nil
	if t.Val != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "w:val"}, Value: t.Val})
	}
	if t.FirstRow != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "w:firstRow"}, Value: t.FirstRow})
	}
	return e.EncodeElement(struct{}{}, start)
}

// TableGrid represents table column definitions in twips.
type TableGrid struct {
	Columns []int
}

// MarshalXML implements custom XML marshaling for TableGrid.
func (g TableGrid) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblGrid"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, col := range g.Columns {
		gridCol := xml.StartElement{
			Name: xml.Name{Local: "w:gridCol"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "w:w"}, Value: fmt.Sprintf("%d", col)}},
		}
		if err := e.EncodeElement(struct{}{}, gridCol); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableRow represents a single table row.
type TableRow struct {
	Cells []TableCell
}

// MarshalXML implements custom XML marshaling for TableRow.
func (r TableRow) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, cell := range r.Cells {
		if err := e.EncodeElement(&cell, xml.StartElement{Name: xml.Name{Local: "w:tc"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableCell represents a single table cell. A cell must contain at least
// one paragraph to be valid.
type TableCell struct {
	Properties *TableCellProperties
	Paragraphs []Paragraph
}

// MarshalXML implements custom XML marshaling for TableCell.
func (c TableCell) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tc"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if c.Properties != nil {
		if err := e.EncodeElement(c.Properties, xml.StartElement{Name: xml.Name{Local: "w:tcPr"}}); err != nil {
			return err
		}
	}

	paragraphs := c.Paragraphs
	if len(paragraphs) == 0 {
		paragraphs = []Paragraph{{}}
	}
	for _, para := range paragraphs {
		if err := e.EncodeElement(&para, xml.StartElement{Name: xml.Name{Local: "w:p"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableCellProperties represents cell formatting properties.
type TableCellProperties struct {
	Width *TableWidth
}

// MarshalXML implements custom XML marshaling for TableCellProperties.
func (p TableCellProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tcPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Width != nil {
		if err := e.EncodeElement(p.Width, xml.StartElement{Name: xml.Name{Local: "w:tcW"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}
