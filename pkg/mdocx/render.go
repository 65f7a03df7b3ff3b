package mdocx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/slotools/mdocx/pkg/mdocx/wml"
)

// renderResult holds everything the packager needs: the serializable part
// trees plus the relationship lists built alongside them.
type renderResult struct {
	Body         wml.Body
	Footnotes    wml.Footnotes
	Numbering    wml.Numbering
	DocRels      []relationship
	FootnoteRels []relationship
	Title        string
}

// renderer lowers the block tree into WordprocessingML structures. rels
// points at the relationship list of the part currently being rendered so
// hyperlinks inside footnotes land in the footnote part's own list.
type renderer struct {
	cfg   *Config
	warns *Warnings
	doc   *Document
	lists *listAllocation
	notes *footnoteAllocation
	rels  *[]relationship
}

func render(doc *Document, cfg *Config, warns *Warnings) *renderResult {
	r := &renderer{
		cfg:   cfg,
		warns: warns,
		doc:   doc,
		lists: allocateLists(doc, warns),
		notes: allocateFootnotes(doc, warns),
	}

	result := &renderResult{
		DocRels: []relationship{
			{ID: "rId1", Type: relTypeStyles, Target: "styles.xml"},
			{ID: "rId2", Type: relTypeNumbering, Target: "numbering.xml"},
			{ID: "rId3", Type: relTypeFootnotes, Target: "footnotes.xml"},
		},
	}

	r.rels = &result.DocRels
	result.Body = wml.Body{
		Elements: r.renderBlocks(doc.Blocks, nil),
		Section:  wml.DefaultSection(),
	}
	result.Title = extractTitle(doc)

	r.rels = &result.FootnoteRels
	result.Footnotes = r.renderFootnotes()

	result.Numbering = r.buildNumbering()
	return result
}

// extractTitle returns the plain text of the first level-one heading.
func extractTitle(doc *Document) string {
	for _, block := range doc.Blocks {
		if h, ok := block.(*Heading); ok && h.Level == 1 {
			return strings.TrimSpace(PlainText(h.Content))
		}
	}
	return ""
}

// blockContext carries decoration inherited from enclosing blocks.
type blockContext struct {
	// quoteDepth is the number of enclosing blockquotes.
	quoteDepth int
	// indent is extra left indentation in twips, used for the trailing
	// paragraphs of list items.
	indent int
}

func (r *renderer) renderBlocks(blocks []Block, ctx *blockContext) []wml.BodyElement {
	var out []wml.BodyElement
	for _, block := range blocks {
		switch b := block.(type) {
		case *Heading:
			out = append(out, r.renderHeading(b, ctx))
		case *Paragraph:
			out = append(out, r.renderParagraph(b, ctx))
		case *List:
			out = append(out, r.renderList(b, ctx)...)
		case *Table:
			out = append(out, r.renderTable(b))
		case *CodeBlock:
			out = append(out, r.renderCodeBlock(b, ctx))
		case *Blockquote:
			out = append(out, r.renderBlockquote(b, ctx)...)
		case *MathBlock:
			out = append(out, r.renderMathBlock(b, ctx))
		case *HorizontalRule:
			out = append(out, r.renderHorizontalRule())
		case *FootnoteDefinition:
			// Definitions render in the footnotes part, never in place.
		}
	}
	return out
}

func (r *renderer) renderHeading(h *Heading, ctx *blockContext) *wml.Paragraph {
	props := &wml.ParagraphProperties{
		Style: &wml.Style{Val: fmt.Sprintf("Heading%d", h.Level)},
	}
	r.applyContext(props, ctx)
	return &wml.Paragraph{
		Properties: props,
		Content:    r.renderInlines(h.Content),
	}
}

func (r *renderer) renderParagraph(p *Paragraph, ctx *blockContext) *wml.Paragraph {
	var props *wml.ParagraphProperties
	if ctx != nil && (ctx.quoteDepth > 0 || ctx.indent > 0) {
		props = &wml.ParagraphProperties{}
		r.applyContext(props, ctx)
	}
	return &wml.Paragraph{
		Properties: props,
		Content:    r.renderInlines(p.Content),
	}
}

// applyContext layers blockquote decoration and list continuation indent
// onto paragraph properties.
func (r *renderer) applyContext(props *wml.ParagraphProperties, ctx *blockContext) {
	if ctx == nil {
		return
	}
	if ctx.quoteDepth > 0 {
		props.Borders = &wml.ParagraphBorders{
			Left: &wml.BorderEdge{Val: "single", Size: 12, Space: 4, Color: r.cfg.QuoteBorderColor},
		}
		if props.Indentation == nil {
			// 850 twips is the 1.5 cm quote offset.
			props.Indentation = &wml.Indentation{Left: 850 * ctx.quoteDepth}
		}
	}
	if ctx.indent > 0 {
		props.Indentation = &wml.Indentation{Left: ctx.indent}
	}
}

func (r *renderer) renderBlockquote(b *Blockquote, ctx *blockContext) []wml.BodyElement {
	inner := blockContext{quoteDepth: 1}
	if ctx != nil {
		inner = *ctx
		inner.quoteDepth++
	}
	return r.renderBlocks(b.Blocks, &inner)
}

// renderMathBlock emits a display equation as its own centered paragraph,
// degrading the whole expression to an italic math-font run when any
// command is unsupported.
func (r *renderer) renderMathBlock(b *MathBlock, ctx *blockContext) *wml.Paragraph {
	props := &wml.ParagraphProperties{
		Alignment: &wml.Alignment{Val: "center"},
	}
	r.applyContext(props, ctx)
	para := &wml.Paragraph{Properties: props}

	math, err := TranscodeMath(b.Source)
	if err != nil {
		r.warns.Add(WarnUnsupportedMath, "math block '%s' rendered as text: %v", b.Source, err)
		para.Content = append(para.Content, &wml.Run{
			Properties: &wml.RunProperties{
				Fonts:  &wml.Fonts{ASCII: r.cfg.MathFont, HAnsi: r.cfg.MathFont},
				Italic: &wml.Empty{},
				Color:  &wml.Color{Val: "333333"},
			},
			Text: wml.NewText(b.Source),
		})
		return para
	}
	para.Content = append(para.Content, math)
	return para
}

func (r *renderer) renderHorizontalRule() *wml.Paragraph {
	return &wml.Paragraph{
		Properties: &wml.ParagraphProperties{
			Borders: &wml.ParagraphBorders{
				Bottom: &wml.BorderEdge{Val: "single", Size: 6, Space: 1, Color: "AAAAAA"},
			},
		},
	}
}

func (r *renderer) renderCodeBlock(b *CodeBlock, ctx *blockContext) *wml.Paragraph {
	props := &wml.ParagraphProperties{
		Style:   &wml.Style{Val: "CodeBlock"},
		Shading: &wml.Shading{Val: "clear", Fill: r.cfg.CodeShading},
	}
	r.applyContext(props, ctx)

	runProps := &wml.RunProperties{
		Fonts: &wml.Fonts{ASCII: r.cfg.CodeFont, HAnsi: r.cfg.CodeFont},
		Size:  &wml.Size{Val: r.cfg.CodeSizePt * 2},
	}

	para := &wml.Paragraph{Properties: props}
	for i, line := range strings.Split(b.Text, "\n") {
		if i > 0 {
			para.Content = append(para.Content, &wml.Run{Break: &wml.Break{}})
		}
		para.Content = append(para.Content, &wml.Run{
			Properties: runProps,
			Text:       wml.NewText(line),
		})
	}
	return para
}

// renderList emits one numbered paragraph per item; trailing blocks of an
// item keep the item's indentation, and nested lists recurse with their
// own numbering identifiers.
func (r *renderer) renderList(l *List, ctx *blockContext) []wml.BodyElement {
	numID := r.lists.numID(l)
	level := r.lists.level(l)

	var out []wml.BodyElement
	for _, item := range l.Items {
		blocks := item.Blocks
		var lead *Paragraph
		if len(blocks) > 0 {
			if p, ok := blocks[0].(*Paragraph); ok {
				lead = p
				blocks = blocks[1:]
			}
		}
		if lead == nil {
			lead = &Paragraph{}
		}

		props := &wml.ParagraphProperties{
			Style:    &wml.Style{Val: "ListParagraph"},
			NumProps: &wml.NumberingProperties{Level: level, NumID: numID},
		}
		if ctx != nil && ctx.quoteDepth > 0 {
			props.Borders = &wml.ParagraphBorders{
				Left: &wml.BorderEdge{Val: "single", Size: 12, Space: 4, Color: r.cfg.QuoteBorderColor},
			}
		}
		out = append(out, &wml.Paragraph{
			Properties: props,
			Content:    r.renderInlines(lead.Content),
		})

		if len(blocks) > 0 {
			inner := blockContext{indent: 720 * (level + 1)}
			if ctx != nil {
				inner.quoteDepth = ctx.quoteDepth
			}
			out = append(out, r.renderBlocks(blocks, &inner)...)
		}
	}
	return out
}

func (r *renderer) renderTable(t *Table) *wml.Table {
	const tableWidth = 9360 // page width minus one inch margins

	colWidth := tableWidth
	if t.ColumnCount > 0 {
		colWidth = tableWidth / t.ColumnCount
	}
	grid := &wml.TableGrid{}
	for i := 0; i < t.ColumnCount; i++ {
		grid.Columns = append(grid.Columns, colWidth)
	}

	edge := func() *wml.BorderEdge {
		return &wml.BorderEdge{Val: "single", Size: 4, Space: 0, Color: "auto"}
	}
	table := &wml.Table{
		Properties: &wml.TableProperties{
			Width: &wml.TableWidth{W: tableWidth, Type: "dxa"},
			Borders: &wml.TableBorders{
				Top: edge(), Left: edge(), Bottom: edge(), Right: edge(),
				InsideH: edge(), InsideV: edge(),
			},
			Look: &wml.TableLook{Val: "04A0", FirstRow: "1"},
		},
		Grid: grid,
	}

	for rowIdx, row := range t.Rows {
		header := t.HasHeader && rowIdx == 0
		var tr wml.TableRow
		for _, cell := range row {
			content := r.renderInlines([]Inline(cell))
			if header {
				boldenRuns(content)
			}
			tr.Cells = append(tr.Cells, wml.TableCell{
				Properties: &wml.TableCellProperties{
					Width: &wml.TableWidth{W: colWidth, Type: "dxa"},
				},
				Paragraphs: []wml.Paragraph{{Content: content}},
			})
		}
		table.Rows = append(table.Rows, tr)
	}
	return table
}

// boldenRuns forces bold on every run of a header cell.
func boldenRuns(content []wml.ParagraphContent) {
	for _, c := range content {
		run, ok := c.(*wml.Run)
		if !ok {
			continue
		}
		if run.Properties == nil {
			run.Properties = &wml.RunProperties{}
		}
		run.Properties.Bold = &wml.Empty{}
	}
}

func (r *renderer) renderInlines(content []Inline) []wml.ParagraphContent {
	var out []wml.ParagraphContent
	for _, node := range content {
		switch n := node.(type) {
		case *Text:
			out = append(out, r.textRun(n, ""))
		case *Link:
			out = append(out, r.renderLink(n))
		case *FootnoteRef:
			out = append(out, r.renderFootnoteRef(n)...)
		case *Image:
			out = append(out, renderImagePlaceholder(n))
		case *InlineMath:
			out = append(out, r.renderMath(n))
		case *LineBreak:
			out = append(out, &wml.Run{Break: &wml.Break{}})
		}
	}
	return out
}

// textRun builds a run for a text node. style, when set, is applied as the
// run's character style.
func (r *renderer) textRun(t *Text, style string) *wml.Run {
	props := &wml.RunProperties{}
	used := false

	if style != "" {
		props.Style = &wml.Style{Val: style}
		used = true
	}
	if t.Bold {
		props.Bold = &wml.Empty{}
		used = true
	}
	if t.Italic {
		props.Italic = &wml.Empty{}
		used = true
	}
	if t.Strike {
		props.Strike = &wml.Empty{}
		used = true
	}
	if t.Code {
		props.Fonts = &wml.Fonts{ASCII: r.cfg.CodeFont, HAnsi: r.cfg.CodeFont}
		// Inline code sits one point under the body size.
		props.Size = &wml.Size{Val: (r.cfg.BodySizePt - 1) * 2}
		used = true
	}

	run := &wml.Run{Text: wml.NewText(t.Value)}
	if used {
		run.Properties = props
	}
	return run
}

// renderLink allocates a fresh relationship for every occurrence, so two
// links to the same URL get distinct identifiers.
func (r *renderer) renderLink(l *Link) *wml.Hyperlink {
	id := r.addRelationship(relationship{
		Type:       relTypeHyperlink,
		Target:     l.Target,
		TargetMode: "External",
	})

	link := &wml.Hyperlink{ID: id, History: "1"}
	for _, node := range l.Content {
		switch n := node.(type) {
		case *Text:
			link.Runs = append(link.Runs, *r.textRun(n, "Hyperlink"))
		default:
			text := PlainText([]Inline{node})
			if text != "" {
				link.Runs = append(link.Runs, *r.textRun(&Text{Value: text}, "Hyperlink"))
			}
		}
	}
	return link
}

func (r *renderer) renderFootnoteRef(ref *FootnoteRef) []wml.ParagraphContent {
	id, ok := r.notes.id(ref.Label)
	if !ok {
		r.warns.Add(WarnUnresolvedFootnote, "footnote '%s' referenced but never defined", ref.Label)
		return []wml.ParagraphContent{
			&wml.Run{Text: wml.NewText("[^" + ref.Label + "]")},
		}
	}
	return []wml.ParagraphContent{
		&wml.Run{
			Properties:        &wml.RunProperties{Style: &wml.Style{Val: "FootnoteReference"}},
			FootnoteReference: &wml.FootnoteReference{ID: id},
		},
	}
}

// renderImagePlaceholder emits the textual stand-in for an image. No media
// part or relationship is created for the target.
func renderImagePlaceholder(img *Image) *wml.Run {
	alt := img.Alt
	if alt == "" {
		alt = "image"
	}
	return &wml.Run{
		Properties: &wml.RunProperties{
			Italic: &wml.Empty{},
			Color:  &wml.Color{Val: "666666"},
		},
		Text: wml.NewText("[Image: " + alt + "]"),
	}
}

// renderMath transcodes the expression, degrading the whole of it to an
// italic fallback run when any command is unsupported.
func (r *renderer) renderMath(m *InlineMath) wml.ParagraphContent {
	math, err := TranscodeMath(m.Source)
	if err != nil {
		r.warns.Add(WarnUnsupportedMath, "math expression '%s' rendered as text: %v", m.Source, err)
		return &wml.Run{
			Properties: &wml.RunProperties{
				Fonts:  &wml.Fonts{ASCII: r.cfg.MathFont, HAnsi: r.cfg.MathFont},
				Italic: &wml.Empty{},
			},
			Text: wml.NewText(m.Source),
		}
	}
	return math
}

// addRelationship appends an entry to the active relationship list,
// assigning the next identifier for that part.
func (r *renderer) addRelationship(rel relationship) string {
	rel.ID = fmt.Sprintf("rId%d", len(*r.rels)+1)
	*r.rels = append(*r.rels, rel)
	return rel.ID
}

// renderFootnotes builds the footnote bodies in identifier order. The
// first paragraph of each note opens with the reference mark.
func (r *renderer) renderFootnotes() wml.Footnotes {
	var notes wml.Footnotes
	for _, label := range r.notes.order {
		def := r.doc.FindFootnote(label)
		id, _ := r.notes.id(label)

		paragraphs := flattenParagraphs(r.renderBlocks(def.Blocks, nil))
		if len(paragraphs) == 0 {
			paragraphs = []wml.Paragraph{{}}
		}
		for i := range paragraphs {
			if paragraphs[i].Properties == nil {
				paragraphs[i].Properties = &wml.ParagraphProperties{}
			}
			if paragraphs[i].Properties.Style == nil {
				paragraphs[i].Properties.Style = &wml.Style{Val: "FootnoteText"}
			}
		}

		mark := []wml.ParagraphContent{
			&wml.Run{
				Properties:      &wml.RunProperties{Style: &wml.Style{Val: "FootnoteReference"}},
				FootnoteRefMark: &wml.Empty{},
			},
			&wml.Run{Text: wml.NewText(" ")},
		}
		paragraphs[0].Content = append(mark, paragraphs[0].Content...)

		notes.Notes = append(notes.Notes, wml.Footnote{ID: id, Paragraphs: paragraphs})
	}
	return notes
}

// flattenParagraphs extracts the paragraph sequence of rendered elements.
// Tables inside footnotes degrade to their cell paragraphs in order.
func flattenParagraphs(elements []wml.BodyElement) []wml.Paragraph {
	var out []wml.Paragraph
	for _, el := range elements {
		switch e := el.(type) {
		case *wml.Paragraph:
			out = append(out, *e)
		case *wml.Table:
			for _, row := range e.Rows {
				for _, cell := range row.Cells {
					out = append(out, cell.Paragraphs...)
				}
			}
		}
	}
	return out
}

// buildNumbering emits one abstract definition and one binding per list
// run, in identifier order. Every definition carries the full level set so
// clamped deep nesting still resolves.
func (r *renderer) buildNumbering() wml.Numbering {
	type binding struct {
		id      int
		ordered bool
	}
	var bindings []binding
	for _, id := range r.lists.bulletIDs {
		bindings = append(bindings, binding{id: id})
	}
	for _, id := range r.lists.ordinalIDs {
		bindings = append(bindings, binding{id: id, ordered: true})
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].id < bindings[j].id })

	var numbering wml.Numbering
	for _, b := range bindings {
		levels := wml.BulletLevels(MaxListDepth)
		if b.ordered {
			levels = wml.DecimalLevels(MaxListDepth)
		}
		numbering.AbstractNums = append(numbering.AbstractNums, wml.AbstractNum{
			ID:     b.id - 1,
			Levels: levels,
		})
		numbering.Nums = append(numbering.Nums, wml.Num{ID: b.id, AbstractNumID: b.id - 1})
	}
	return numbering
}
