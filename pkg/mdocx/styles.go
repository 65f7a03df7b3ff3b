package mdocx

import (
	"fmt"
	"strings"
)

// headingStyle fixes the look of one heading level. Sizes are half-points.
type headingStyle struct {
	id     string
	name   string
	size   int
	bold   bool
	italic bool
	before int
	after  int
}

var headingStyles = []headingStyle{
	{id: "Heading1", name: "heading 1", size: 40, bold: true, before: 360, after: 120},
	{id: "Heading2", name: "heading 2", size: 32, bold: true, before: 300, after: 120},
	{id: "Heading3", name: "heading 3", size: 28, bold: true, before: 240, after: 100},
	{id: "Heading4", name: "heading 4", size: 24, bold: true, before: 200, after: 80},
	{id: "Heading5", name: "heading 5", size: 22, bold: true, before: 160, after: 80},
	{id: "Heading6", name: "heading 6", size: 22, bold: true, italic: true, before: 160, after: 80},
}

// buildStyles renders the styles part from the configured fonts and sizes.
// The part is deterministic for a given configuration.
func buildStyles(cfg *Config) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)

	bodyHalf := cfg.BodySizePt * 2
	codeHalf := cfg.CodeSizePt * 2

	// Document defaults mirror the Normal style so table cells and other
	// implicit contexts inherit the body font.
	fmt.Fprintf(&b,
		`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="%s" w:hAnsi="%s"/><w:sz w:val="%d"/><w:szCs w:val="%d"/></w:rPr></w:rPrDefault><w:pPrDefault><w:pPr><w:spacing w:after="160" w:line="259" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>`,
		xmlEscape(cfg.BodyFont), xmlEscape(cfg.BodyFont), bodyHalf, bodyHalf)

	fmt.Fprintf(&b,
		`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/><w:rPr><w:rFonts w:ascii="%s" w:hAnsi="%s"/><w:sz w:val="%d"/></w:rPr></w:style>`,
		xmlEscape(cfg.BodyFont), xmlEscape(cfg.BodyFont), bodyHalf)

	for _, h := range headingStyles {
		b.WriteString(`<w:style w:type="paragraph" w:styleId="` + h.id + `">`)
		b.WriteString(`<w:name w:val="` + h.name + `"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>`)
		fmt.Fprintf(&b, `<w:pPr><w:keepNext/><w:spacing w:before="%d" w:after="%d"/></w:pPr>`, h.before, h.after)
		b.WriteString(`<w:rPr>`)
		if h.bold {
			b.WriteString(`<w:b/>`)
		}
		if h.italic {
			b.WriteString(`<w:i/>`)
		}
		fmt.Fprintf(&b, `<w:sz w:val="%d"/></w:rPr></w:style>`, h.size)
	}

	fmt.Fprintf(&b,
		`<w:style w:type="paragraph" w:styleId="CodeBlock"><w:name w:val="Code Block"/><w:basedOn w:val="Normal"/><w:pPr><w:shd w:val="clear" w:fill="%s"/><w:spacing w:after="120"/></w:pPr><w:rPr><w:rFonts w:ascii="%s" w:hAnsi="%s"/><w:sz w:val="%d"/></w:rPr></w:style>`,
		xmlEscape(cfg.CodeShading), xmlEscape(cfg.CodeFont), xmlEscape(cfg.CodeFont), codeHalf)

	fmt.Fprintf(&b,
		`<w:style w:type="paragraph" w:styleId="Quote"><w:name w:val="Quote"/><w:basedOn w:val="Normal"/><w:pPr><w:pBdr><w:left w:val="single" w:sz="12" w:space="4" w:color="%s"/></w:pBdr><w:ind w:left="850"/></w:pPr><w:rPr><w:color w:val="666666"/></w:rPr></w:style>`,
		xmlEscape(cfg.QuoteBorderColor))

	b.WriteString(
		`<w:style w:type="paragraph" w:styleId="ListParagraph"><w:name w:val="List Paragraph"/><w:basedOn w:val="Normal"/><w:pPr><w:contextualSpacing/></w:pPr></w:style>`)

	fmt.Fprintf(&b,
		`<w:style w:type="paragraph" w:styleId="FootnoteText"><w:name w:val="footnote text"/><w:basedOn w:val="Normal"/><w:pPr><w:spacing w:after="40"/></w:pPr><w:rPr><w:sz w:val="%d"/></w:rPr></w:style>`,
		18)

	b.WriteString(
		`<w:style w:type="character" w:styleId="Hyperlink"><w:name w:val="Hyperlink"/><w:rPr><w:color w:val="0563C1"/><w:u w:val="single"/></w:rPr></w:style>`)
	b.WriteString(
		`<w:style w:type="character" w:styleId="FootnoteReference"><w:name w:val="footnote reference"/><w:rPr><w:vertAlign w:val="superscript"/></w:rPr></w:style>`)

	b.WriteString(`</w:styles>`)
	return []byte(b.String())
}

// xmlEscape escapes the five reserved characters for attribute values.
func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
