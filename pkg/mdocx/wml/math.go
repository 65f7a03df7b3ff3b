package wml

import "encoding/xml"

// MathNode represents any node of an OMML expression tree.
type MathNode interface {
	isMathNode()
}

// OMath is a complete inline math expression, placed in a paragraph as a
// sibling of runs and hyperlinks.
type OMath struct {
	Nodes []MathNode
}

// isParagraphContent implements the ParagraphContent interface.
func (OMath) isParagraphContent() {}

// MathRun is a literal run of math text.
type MathRun struct {
	Text string
}

// MathFraction is a numerator over a denominator.
type MathFraction struct {
	Num []MathNode
	Den []MathNode
}

// MathSup is a base with a superscript.
type MathSup struct {
	Base []MathNode
	Sup  []MathNode
}

// MathSub is a base with a subscript.
type MathSub struct {
	Base []MathNode
	Sub  []MathNode
}

// MathRadical is a square root.
type MathRadical struct {
	Expr []MathNode
}

func (*MathRun) isMathNode()      {}
func (*MathFraction) isMathNode() {}
func (*MathSup) isMathNode()      {}
func (*MathSub) isMathNode()      {}
func (*MathRadical) isMathNode()  {}

// MarshalXML implements custom XML marshaling for OMath.
func (m OMath) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "m:oMath"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeMathNodes(e, m.Nodes); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func encodeMathNodes(e *xml.Encoder, nodes []MathNode) error {
	for _, node := range nodes {
		if err := encodeMathNode(e, node); err != nil {
			return err
		}
	}
	return nil
}

func encodeMathNode(e *xml.Encoder, node MathNode) error {
	switch n := node.(type) {
	case *MathRun:
		return encodeMathRun(e, n.Text)
	case *MathFraction:
		return encodeMathContainer(e, "m:f", []mathArg{
			{"m:num", n.Num},
			{"m:den", n.Den},
		})
	case *MathSup:
		return encodeMathContainer(e, "m:sSup", []mathArg{
			{"m:e", n.Base},
			{"m:sup", n.Sup},
		})
	case *MathSub:
		return encodeMathContainer(e, "m:sSub", []mathArg{
			{"m:e", n.Base},
			{"m:sub", n.Sub},
		})
	case *MathRadical:
		return encodeRadical(e, n)
	}
	return nil
}

type mathArg struct {
	name  string
	nodes []MathNode
}

func encodeMathRun(e *xml.Encoder, text string) error {
	run := xml.StartElement{Name: xml.Name{Local: "m:r"}}
	if err := e.EncodeToken(run); err != nil {
		return err
	}
	if err := e.EncodeElement(text, xml.StartElement{Name: xml.Name{Local: "m:t"}}); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: run.Name})
}

func encodeMathContainer(e *xml.Encoder, name string, args []mathArg) error {
	outer := xml.StartElement{Name: xml.Name{Local: name}}
	if err := e.EncodeToken(outer); err != nil {
		return err
	}
	for _, arg := range args {
		inner := xml.StartElement{Name: xml.Name{Local: arg.name}}
		if err := e.EncodeToken(inner); err != nil {
			return err
		}
		if err := encodeMathNodes(e, arg.nodes); err != nil {
			return err
		}
		if err := e.EncodeToken(xml.EndElement{Name: inner.Name}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: outer.Name})
}

func encodeRadical(e *xml.Encoder, rad *MathRadical) error {
	outer := xml.StartElement{Name: xml.Name{Local: "m:rad"}}
	if err := e.EncodeToken(outer); err != nil {
		return err
	}

	// Hide the degree: plain square roots only.
	radPr := xml.StartElement{Name: xml.Name{Local: "m:radPr"}}
	if err := e.EncodeToken(radPr); err != nil {
		return err
	}
	degHide := xml.StartElement{
		Name: xml.Name{Local: "m:degHide"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "m:val"}, Value: "1"}},
	}
	if err := e.EncodeElement(struct{}{}, degHide); err != nil {
		return err
	}
	if err := e.EncodeToken(xml.EndElement{Name: radPr.Name}); err != nil {
		return err
	}

	deg := xml.StartElement{Name: xml.Name{Local: "m:deg"}}
	if err := e.EncodeToken(deg); err != nil {
		return err
	}
	if err := e.EncodeToken(xml.EndElement{Name: deg.Name}); err != nil {
		return err
	}

	inner := xml.StartElement{Name: xml.Name{Local: "m:e"}}
	if err := e.EncodeToken(inner); err != nil {
		return err
	}
	if err := encodeMathNodes(e, rad.Expr); err != nil {
		return err
	}
	if err := e.EncodeToken(xml.EndElement{Name: inner.Name}); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: outer.Name})
}
