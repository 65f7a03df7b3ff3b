package mdocx

import (
	"regexp"
	"strings"
)

var (
	headingRegex     = regexp.MustCompile(`^(#{1,})\s+(.*)$`)
	bulletRegex      = regexp.MustCompile(`^( *)([-*+])\s+(.*)$`)
	orderedRegex     = regexp.MustCompile(`^( *)(\d+)[.)]\s+(.*)$`)
	hrRegex          = regexp.MustCompile(`^ {0,3}((\* *){3,}|(- *){3,}|(_ *){3,})$`)
	fenceRegex       = regexp.MustCompile("^ {0,3}(`{3,})\\s*(\\S*)\\s*$")
	footnoteDefRegex = regexp.MustCompile(`^\[\^([^\]\s]+)\]:\s?(.*)$`)
	separatorCell    = regexp.MustCompile(`^:?-+:?$`)
	mathFenceRegex   = regexp.MustCompile(`^ {0,3}\${1,2}\s*$`)
	mathOneLineRegex = regexp.MustCompile(`^ {0,3}\$\$(.+)\$\$\s*$`)
)

// blockParser is a line-oriented state machine over the source. Nested
// content (list items, blockquotes, footnote bodies) is parsed by running
// a sub-parser over the stripped inner lines; all parsers share one
// Document so footnote definitions are filed in a single table.
type blockParser struct {
	lines []string
	pos   int
	warns *Warnings
	doc   *Document
}

// parseDocument builds the block tree for one markdown source. No input
// line ever aborts the parse; unrecognized constructs become literal
// paragraphs.
func parseDocument(src string, warns *Warnings) *Document {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	src = strings.ReplaceAll(src, "\t", "    ")

	doc := &Document{}
	p := &blockParser{
		lines: strings.Split(src, "\n"),
		warns: warns,
		doc:   doc,
	}
	doc.Blocks = p.parseBlocks()
	setListLevels(doc.Blocks, 0)
	for _, fn := range doc.Footnotes {
		setListLevels(fn.Blocks, 0)
	}

	logger := GetLogger()
	if logger.IsDebugMode() {
		logger.WithFields(Fields{
			"blocks":    len(doc.Blocks),
			"footnotes": len(doc.Footnotes),
		}).Debug("Parsed document")
	}
	return doc
}

// subParse runs a nested parser over inner lines, sharing the footnote
// table of the root document.
func (p *blockParser) subParse(lines []string) []Block {
	sub := &blockParser{lines: lines, warns: p.warns, doc: p.doc}
	return sub.parseBlocks()
}

func (p *blockParser) parseBlocks() []Block {
	var blocks []Block

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]

		switch {
		case isBlank(line):
			p.pos++
		case fenceRegex.MatchString(line):
			blocks = append(blocks, p.parseFence())
		case mathOneLineRegex.MatchString(line):
			m := mathOneLineRegex.FindStringSubmatch(line)
			blocks = append(blocks, &MathBlock{Source: strings.TrimSpace(m[1])})
			p.pos++
		case mathFenceRegex.MatchString(line):
			blocks = append(blocks, p.parseMathBlock())
		case headingRegex.MatchString(line):
			blocks = append(blocks, p.parseHeading())
		case hrRegex.MatchString(line):
			blocks = append(blocks, &HorizontalRule{})
			p.pos++
		case isQuoteLine(line):
			blocks = append(blocks, p.parseBlockquote())
		case p.atTable():
			blocks = append(blocks, p.parseTable())
		case footnoteDefRegex.MatchString(line):
			p.parseFootnoteDefinition()
		case matchListMarker(line) != nil:
			blocks = append(blocks, p.parseList())
		default:
			blocks = append(blocks, p.parseParagraph())
		}
	}

	return blocks
}

func (p *blockParser) parseHeading() Block {
	m := headingRegex.FindStringSubmatch(p.lines[p.pos])
	p.pos++

	level := len(m[1])
	if level > 6 {
		p.warns.Add(WarnHeadingClamped, "heading level %d clamped to 6", level)
		level = 6
	}

	content, _ := lexInline(strings.TrimSpace(m[2]), p.warns)
	return &Heading{Level: level, Content: content}
}

func (p *blockParser) parseFence() Block {
	m := fenceRegex.FindStringSubmatch(p.lines[p.pos])
	fence := m[1]
	language := m[2]
	p.pos++

	var body []string
	closed := false
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		trimmed := strings.TrimSpace(line)
		if len(trimmed) >= len(fence) && strings.Trim(trimmed, "`") == "" {
			closed = true
			p.pos++
			break
		}
		body = append(body, line)
		p.pos++
	}
	if !closed {
		p.warns.Add(WarnUnclosedFence, "code fence not closed before end of input")
	}

	return &CodeBlock{Language: language, Text: strings.Join(body, "\n")}
}

// parseMathBlock consumes a display equation between dollar fences: an
// opening line of bare dollar signs, expression lines, and a matching
// closing fence. A missing closing fence degrades with a warning and the
// collected lines still render as math.
func (p *blockParser) parseMathBlock() Block {
	p.pos++

	var body []string
	closed := false
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if mathFenceRegex.MatchString(line) {
			closed = true
			p.pos++
			break
		}
		body = append(body, strings.TrimSpace(line))
		p.pos++
	}
	if !closed {
		p.warns.Add(WarnUnterminatedMath, "math block not closed before end of input")
	}

	return &MathBlock{Source: strings.Join(body, " ")}
}

func (p *blockParser) parseBlockquote() Block {
	var inner []string
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if !isQuoteLine(line) {
			break
		}
		inner = append(inner, stripQuotePrefix(line))
		p.pos++
	}
	return &Blockquote{Blocks: p.subParse(inner)}
}

// atTable reports whether the current line begins a table: a row line
// immediately followed by a dash/colon separator row.
func (p *blockParser) atTable() bool {
	if !isTableRow(p.lines[p.pos]) {
		return false
	}
	if p.pos+1 >= len(p.lines) {
		return false
	}
	return isTableSeparator(p.lines[p.pos+1])
}

func (p *blockParser) parseTable() Block {
	header := splitTableRow(p.lines[p.pos])
	p.pos += 2 // skip the separator row; alignment colons are ignored

	rows := [][]string{header}
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if isBlank(line) || !isTableRow(line) {
			break
		}
		rows = append(rows, splitTableRow(line))
		p.pos++
	}

	columnCount := 0
	for _, row := range rows {
		if len(row) > columnCount {
			columnCount = len(row)
		}
	}

	table := &Table{ColumnCount: columnCount, HasHeader: true}
	ragged := false
	for _, row := range rows {
		cells := make([]TableCell, columnCount)
		for i := 0; i < columnCount; i++ {
			if i < len(row) {
				content, _ := lexInline(strings.TrimSpace(row[i]), p.warns)
				cells[i] = TableCell(content)
			} else {
				cells[i] = TableCell{}
			}
		}
		if len(row) != columnCount {
			ragged = true
		}
		table.Rows = append(table.Rows, cells)
	}
	if ragged {
		p.warns.Add(WarnRaggedTable, "table rows padded to %d columns", columnCount)
	}

	return table
}

func (p *blockParser) parseFootnoteDefinition() {
	m := footnoteDefRegex.FindStringSubmatch(p.lines[p.pos])
	label := m[1]
	p.pos++

	inner := []string{m[2]}
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if isBlank(line) {
			// A blank line continues the definition only if indented
			// content follows.
			if next, ok := p.nextNonBlank(); ok && indentWidth(next) >= 2 {
				inner = append(inner, "")
				p.pos++
				continue
			}
			break
		}
		if indentWidth(line) < 2 {
			break
		}
		inner = append(inner, strings.TrimPrefix(strings.TrimPrefix(line, "    "), "  "))
		p.pos++
	}

	def := &FootnoteDefinition{Label: label, Blocks: p.subParse(inner)}
	for i, existing := range p.doc.Footnotes {
		if existing.Label == label {
			p.warns.Add(WarnDuplicateFootnote, "duplicate footnote definition '%s' overwrites earlier one", label)
			p.doc.Footnotes[i] = def
			return
		}
	}
	p.doc.Footnotes = append(p.doc.Footnotes, def)
}

// listMarker describes the marker opening a list item line.
type listMarker struct {
	indent  int
	ordered bool
	// contentIndent is the column where the item's own content begins;
	// continuation lines must be indented at least this far.
	contentIndent int
	content       string
}

func matchListMarker(line string) *listMarker {
	if m := bulletRegex.FindStringSubmatch(line); m != nil {
		indent := len(m[1])
		return &listMarker{
			indent:        indent,
			ordered:       false,
			contentIndent: indent + 2,
			content:       m[3],
		}
	}
	if m := orderedRegex.FindStringSubmatch(line); m != nil {
		indent := len(m[1])
		return &listMarker{
			indent:        indent,
			ordered:       true,
			contentIndent: indent + len(m[2]) + 2,
			content:       m[3],
		}
	}
	return nil
}

// parseList consumes one list run. A blank line followed by a line
// indented less than the current item's content closes the run; an
// adjacent marker of the other kind also closes it, so interrupted or
// mixed lists become separate runs with separate numbering definitions.
func (p *blockParser) parseList() Block {
	first := matchListMarker(p.lines[p.pos])
	base := first.indent
	ordered := first.ordered

	list := &List{Ordered: ordered}
	itemLines := []string{first.content}
	contentIndent := first.contentIndent
	p.pos++

	closeItem := func() {
		list.Items = append(list.Items, &ListItem{Blocks: p.subParse(itemLines)})
	}

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]

		if isBlank(line) {
			next, ok := p.nextNonBlank()
			if ok && indentWidth(next) >= contentIndent {
				itemLines = append(itemLines, "")
				p.pos++
				continue
			}
			break
		}

		if mk := matchListMarker(line); mk != nil && mk.indent <= base {
			if mk.indent < base || mk.ordered != ordered {
				break
			}
			closeItem()
			itemLines = []string{mk.content}
			contentIndent = mk.contentIndent
			p.pos++
			continue
		}

		if indentWidth(line) >= contentIndent {
			itemLines = append(itemLines, line[contentIndent:])
			p.pos++
			continue
		}
		if indentWidth(line) > base {
			itemLines = append(itemLines, strings.TrimLeft(line, " "))
			p.pos++
			continue
		}
		break
	}

	closeItem()
	return list
}

// parseParagraph consumes lines until a blank line or the start of another
// block. This is also the fallback for anything unrecognized.
func (p *blockParser) parseParagraph() Block {
	var content []Inline
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if p.startsNewBlock(line) {
			break
		}
		p.pos++

		text, hard := stripHardBreak(line)
		nodes, _ := lexInline(text, p.warns)
		if len(content) > 0 {
			if _, broke := content[len(content)-1].(*LineBreak); !broke {
				content = append(content, &Text{Value: " "})
			}
		}
		content = append(content, nodes...)
		if hard {
			content = append(content, &LineBreak{})
		}
	}
	return &Paragraph{Content: mergeParagraphContent(content)}
}

// startsNewBlock reports whether a line terminates the paragraph being
// collected.
func (p *blockParser) startsNewBlock(line string) bool {
	if isBlank(line) {
		return true
	}
	if fenceRegex.MatchString(line) || headingRegex.MatchString(line) ||
		hrRegex.MatchString(line) || isQuoteLine(line) ||
		mathFenceRegex.MatchString(line) || mathOneLineRegex.MatchString(line) ||
		footnoteDefRegex.MatchString(line) || matchListMarker(line) != nil {
		return true
	}
	return false
}

func (p *blockParser) nextNonBlank() (string, bool) {
	for i := p.pos + 1; i < len(p.lines); i++ {
		if !isBlank(p.lines[i]) {
			return p.lines[i], true
		}
	}
	return "", false
}

// mergeParagraphContent merges text nodes across the soft-break spaces
// inserted between joined lines.
func mergeParagraphContent(content []Inline) []Inline {
	merged := mergeTextNodes(content)
	// Drop a trailing soft-break space left by a final LineBreak.
	if len(merged) > 0 {
		if text, ok := merged[len(merged)-1].(*Text); ok && strings.TrimSpace(text.Value) == "" && !text.Code {
			merged = merged[:len(merged)-1]
		}
	}
	return merged
}

// stripHardBreak detects an explicit hard-break suffix on a raw line: two
// trailing spaces or a trailing backslash. The returned text is trimmed.
func stripHardBreak(line string) (string, bool) {
	hard := strings.HasSuffix(line, "  ")
	text := strings.TrimSpace(line)
	if strings.HasSuffix(text, "\\") {
		hard = true
		text = strings.TrimRight(text[:len(text)-1], " ")
	}
	return text, hard
}

// setListLevels derives nesting levels structurally: a list inside a list
// item is one level deeper than its parent. Depth clamping happens in the
// numbering allocator, not here, so the tree records the true structure.
func setListLevels(blocks []Block, level int) {
	for _, block := range blocks {
		switch b := block.(type) {
		case *List:
			b.Level = level
			for _, item := range b.Items {
				setListLevels(item.Blocks, level+1)
			}
		case *Blockquote:
			setListLevels(b.Blocks, level)
		case *FootnoteDefinition:
			setListLevels(b.Blocks, level)
		}
	}
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

func isQuoteLine(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	return strings.HasPrefix(trimmed, ">") && indentWidth(line) <= 3
}

func stripQuotePrefix(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	trimmed = strings.TrimPrefix(trimmed, ">")
	return strings.TrimPrefix(trimmed, " ")
}

func isTableRow(line string) bool {
	for i := 0; i < len(line); i++ {
		if line[i] == '\\' {
			i++
			continue
		}
		if line[i] == '|' {
			return true
		}
	}
	return false
}

func isTableSeparator(line string) bool {
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" || !separatorCell.MatchString(trimmed) {
			return false
		}
	}
	return true
}

// splitTableRow splits a row on unescaped pipes, dropping the empty
// leading/trailing cells produced by boundary pipes.
func splitTableRow(line string) []string {
	var cells []string
	var cur strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' && i+1 < len(line) && line[i+1] == '|' {
			cur.WriteByte('|')
			i++
			continue
		}
		if c == '|' {
			cells = append(cells, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	cells = append(cells, cur.String())

	if len(cells) > 0 && strings.TrimSpace(cells[0]) == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}
