package mdocx

// Block represents a structural unit of the document: heading, paragraph,
// list, table, code block, blockquote or horizontal rule.
type Block interface {
	isBlock()
}

// Inline represents text-level content inside a block.
type Inline interface {
	isInline()
}

// Document is the parsed form of one markdown source: an ordered block
// sequence plus the footnote definitions filed out of the body.
type Document struct {
	Blocks []Block
	// Footnotes holds definitions in the order they were defined.
	// References are resolved by label; IDs are assigned later in
	// first-reference order by the numbering allocator.
	Footnotes []*FootnoteDefinition
}

// FindFootnote returns the definition for a label, or nil.
func (d *Document) FindFootnote(label string) *FootnoteDefinition {
	for _, fn := range d.Footnotes {
		if fn.Label == label {
			return fn
		}
	}
	return nil
}

// Heading is an ATX heading with a level clamped to [1,6].
type Heading struct {
	Level   int
	Content []Inline
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Content []Inline
}

// List is one list run: a maximal contiguous sequence of sibling items of
// the same kind. Level is the structural nesting depth, 0 for top level.
type List struct {
	Ordered bool
	Level   int
	Items   []*ListItem
}

// ListItem holds the blocks of a single item; nested lists appear here as
// child List blocks.
type ListItem struct {
	Blocks []Block
}

// Table is a pipe table. Every row has exactly ColumnCount cells; short
// source rows are right-padded during parsing.
type Table struct {
	Rows        [][]TableCell
	ColumnCount int
	HasHeader   bool
}

// TableCell is the inline content of one cell.
type TableCell []Inline

// CodeBlock is a fenced code block. Text is verbatim, without the fences.
type CodeBlock struct {
	Language string
	Text     string
}

// Blockquote wraps nested blocks.
type Blockquote struct {
	Blocks []Block
}

// MathBlock is a display math expression between $$ fences, rendered as
// its own centered paragraph.
type MathBlock struct {
	Source string
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

// FootnoteDefinition is filed into Document.Footnotes and never rendered
// in place.
type FootnoteDefinition struct {
	Label  string
	Blocks []Block
}

func (*Heading) isBlock()            {}
func (*Paragraph) isBlock()          {}
func (*List) isBlock()               {}
func (*Table) isBlock()              {}
func (*CodeBlock) isBlock()          {}
func (*Blockquote) isBlock()         {}
func (*MathBlock) isBlock()          {}
func (*HorizontalRule) isBlock()     {}
func (*FootnoteDefinition) isBlock() {}

// Text is a formatted run of characters.
type Text struct {
	Value  string
	Bold   bool
	Italic bool
	Strike bool
	Code   bool
}

// Link is a hyperlink with inline content and a target URL.
type Link struct {
	Content []Inline
	Target  string
}

// FootnoteRef is an in-text reference to a footnote definition.
type FootnoteRef struct {
	Label string
}

// Image is an image reference. Images are not embedded; they render as a
// textual placeholder built from the alt text.
type Image struct {
	Alt    string
	Target string
}

// InlineMath is an unparsed math expression between dollar delimiters.
type InlineMath struct {
	Source string
}

// LineBreak is an explicit hard break inside a paragraph.
type LineBreak struct{}

func (*Text) isInline()        {}
func (*Link) isInline()        {}
func (*FootnoteRef) isInline() {}
func (*Image) isInline()       {}
func (*InlineMath) isInline()  {}
func (*LineBreak) isInline()   {}

// PlainText flattens inline content to its raw text, ignoring formatting.
// Used for title extraction and logging.
func PlainText(content []Inline) string {
	var out string
	for _, in := range content {
		switch n := in.(type) {
		case *Text:
			out += n.Value
		case *Link:
			out += PlainText(n.Content)
		case *FootnoteRef:
			out += "[^" + n.Label + "]"
		case *Image:
			out += "[Image: " + n.Alt + "]"
		case *InlineMath:
			out += n.Source
		case *LineBreak:
			out += " "
		}
	}
	return out
}
