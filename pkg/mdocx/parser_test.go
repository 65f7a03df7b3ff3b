package mdocx

import (
	"strings"
	"testing"
)

func parse(t *testing.T, src string) (*Document, *Warnings) {
	t.Helper()
	warns := &Warnings{}
	return parseDocument(src, warns), warns
}

func TestParseHeadings(t *testing.T) {
	doc, _ := parse(t, "# Title\n\n## Section\n\nbody\n")
	if len(doc.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(doc.Blocks))
	}

	h1 := doc.Blocks[0].(*Heading)
	if h1.Level != 1 || PlainText(h1.Content) != "Title" {
		t.Errorf("h1: level=%d text=%q", h1.Level, PlainText(h1.Content))
	}
	h2 := doc.Blocks[1].(*Heading)
	if h2.Level != 2 || PlainText(h2.Content) != "Section" {
		t.Errorf("h2: level=%d text=%q", h2.Level, PlainText(h2.Content))
	}
	if _, ok := doc.Blocks[2].(*Paragraph); !ok {
		t.Errorf("expected paragraph, got %T", doc.Blocks[2])
	}
}

func TestParseHeadingClamped(t *testing.T) {
	doc, warns := parse(t, "######## deep\n")
	h := doc.Blocks[0].(*Heading)
	if h.Level != 6 {
		t.Errorf("expected clamp to 6, got %d", h.Level)
	}
	if warns.Len() != 1 || warns.List()[0].Code != WarnHeadingClamped {
		t.Errorf("expected heading-clamped warning, got %v", warns.List())
	}
}

func TestParseParagraphSoftBreaks(t *testing.T) {
	doc, _ := parse(t, "line one\nline two\n")
	p := doc.Blocks[0].(*Paragraph)
	if PlainText(p.Content) != "line one line two" {
		t.Errorf("got %q", PlainText(p.Content))
	}
}

func TestParseParagraphHardBreak(t *testing.T) {
	doc, _ := parse(t, "line one\\\nline two\n")
	p := doc.Blocks[0].(*Paragraph)

	var sawBreak bool
	for _, n := range p.Content {
		if _, ok := n.(*LineBreak); ok {
			sawBreak = true
		}
	}
	if !sawBreak {
		t.Errorf("expected a LineBreak node in %#v", p.Content)
	}
}

func TestParseBlankLineSplitsListRuns(t *testing.T) {
	doc, _ := parse(t, "- a\n- b\n\n- c\n- d\n")
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 list runs, got %d blocks", len(doc.Blocks))
	}
	for i, block := range doc.Blocks {
		list, ok := block.(*List)
		if !ok {
			t.Fatalf("block %d: expected List, got %T", i, block)
		}
		if len(list.Items) != 2 {
			t.Errorf("run %d: expected 2 items, got %d", i, len(list.Items))
		}
	}
}

func TestParseOrderedList(t *testing.T) {
	doc, _ := parse(t, "1. first\n2. second\n3. third\n")
	list := doc.Blocks[0].(*List)
	if !list.Ordered {
		t.Error("expected ordered list")
	}
	if len(list.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(list.Items))
	}
}

func TestParseMixedMarkersSplitRuns(t *testing.T) {
	doc, _ := parse(t, "- bullet\n1. number\n")
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].(*List).Ordered || !doc.Blocks[1].(*List).Ordered {
		t.Error("marker kinds not separated")
	}
}

func TestParseNestedList(t *testing.T) {
	doc, _ := parse(t, "- outer\n  - inner\n")
	outer := doc.Blocks[0].(*List)
	if len(outer.Items) != 1 || outer.Level != 0 {
		t.Fatalf("outer: items=%d level=%d", len(outer.Items), outer.Level)
	}

	item := outer.Items[0]
	if len(item.Blocks) != 2 {
		t.Fatalf("expected paragraph plus nested list, got %d blocks", len(item.Blocks))
	}
	inner, ok := item.Blocks[1].(*List)
	if !ok {
		t.Fatalf("expected nested List, got %T", item.Blocks[1])
	}
	if inner.Level != 1 {
		t.Errorf("inner level: %d", inner.Level)
	}
	if PlainText(inner.Items[0].Blocks[0].(*Paragraph).Content) != "inner" {
		t.Errorf("inner item text wrong")
	}
}

func TestParseTable(t *testing.T) {
	src := "| Name | Age |\n|------|-----|\n| Ana | 3 |\n| Bo | 5 |\n"
	doc, warns := parse(t, src)

	table := doc.Blocks[0].(*Table)
	if table.ColumnCount != 2 || !table.HasHeader {
		t.Fatalf("cols=%d header=%v", table.ColumnCount, table.HasHeader)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Rows))
	}
	if PlainText(table.Rows[0][0]) != "Name" || PlainText(table.Rows[2][1]) != "5" {
		t.Error("cell content wrong")
	}
	if warns.Len() != 0 {
		t.Errorf("unexpected warnings: %v", warns.List())
	}
}

func TestParseRaggedTablePadded(t *testing.T) {
	src := "| a | b | c |\n|---|---|---|\n| only |\n"
	doc, warns := parse(t, src)

	table := doc.Blocks[0].(*Table)
	if table.ColumnCount != 3 {
		t.Fatalf("cols=%d", table.ColumnCount)
	}
	for i, row := range table.Rows {
		if len(row) != 3 {
			t.Errorf("row %d has %d cells", i, len(row))
		}
	}
	if warns.Len() != 1 || warns.List()[0].Code != WarnRaggedTable {
		t.Errorf("expected ragged-table warning, got %v", warns.List())
	}
}

func TestParseTableEscapedPipe(t *testing.T) {
	src := "| a\\|b | c |\n|---|---|\n"
	doc, _ := parse(t, src)
	table := doc.Blocks[0].(*Table)
	if table.ColumnCount != 2 {
		t.Fatalf("cols=%d", table.ColumnCount)
	}
	if PlainText(table.Rows[0][0]) != "a|b" {
		t.Errorf("escaped pipe: %q", PlainText(table.Rows[0][0]))
	}
}

func TestParsePipeWithoutSeparatorIsParagraph(t *testing.T) {
	doc, _ := parse(t, "a | b | c\n")
	if _, ok := doc.Blocks[0].(*Paragraph); !ok {
		t.Errorf("expected paragraph, got %T", doc.Blocks[0])
	}
}

func TestParseCodeBlock(t *testing.T) {
	src := "```go\nfunc main() {}\n\tindented\n```\n"
	doc, _ := parse(t, src)

	code := doc.Blocks[0].(*CodeBlock)
	if code.Language != "go" {
		t.Errorf("language: %q", code.Language)
	}
	if !strings.Contains(code.Text, "func main() {}") {
		t.Errorf("text: %q", code.Text)
	}
}

func TestParseCodeBlockKeepsMarkupLiteral(t *testing.T) {
	doc, _ := parse(t, "```\n**not bold**\n# not a heading\n```\n")
	code := doc.Blocks[0].(*CodeBlock)
	if code.Text != "**not bold**\n# not a heading" {
		t.Errorf("got %q", code.Text)
	}
}

func TestParseUnclosedFence(t *testing.T) {
	doc, warns := parse(t, "```\ntrailing\n")
	if _, ok := doc.Blocks[0].(*CodeBlock); !ok {
		t.Fatalf("expected code block, got %T", doc.Blocks[0])
	}
	if warns.Len() != 1 || warns.List()[0].Code != WarnUnclosedFence {
		t.Errorf("expected unclosed-fence warning, got %v", warns.List())
	}
}

func TestParseBlockquote(t *testing.T) {
	doc, _ := parse(t, "> quoted text\n> more\n")
	bq := doc.Blocks[0].(*Blockquote)
	p := bq.Blocks[0].(*Paragraph)
	if PlainText(p.Content) != "quoted text more" {
		t.Errorf("got %q", PlainText(p.Content))
	}
}

func TestParseNestedBlockquote(t *testing.T) {
	doc, _ := parse(t, "> outer\n> > inner\n")
	bq := doc.Blocks[0].(*Blockquote)
	if len(bq.Blocks) != 2 {
		t.Fatalf("expected 2 inner blocks, got %d", len(bq.Blocks))
	}
	if _, ok := bq.Blocks[1].(*Blockquote); !ok {
		t.Errorf("expected nested blockquote, got %T", bq.Blocks[1])
	}
}

func TestParseHorizontalRule(t *testing.T) {
	for _, src := range []string{"---\n", "***\n", "___\n", "- - -\n"} {
		doc, _ := parse(t, src)
		if len(doc.Blocks) != 1 {
			t.Fatalf("%q: expected 1 block, got %d", src, len(doc.Blocks))
		}
		if _, ok := doc.Blocks[0].(*HorizontalRule); !ok {
			t.Errorf("%q: got %T", src, doc.Blocks[0])
		}
	}
}

func TestParseFootnoteDefinition(t *testing.T) {
	doc, _ := parse(t, "claim[^a]\n\n[^a]: the source\n")
	if len(doc.Blocks) != 1 {
		t.Fatalf("definition should not render in place: %d blocks", len(doc.Blocks))
	}
	def := doc.FindFootnote("a")
	if def == nil {
		t.Fatal("definition not filed")
	}
	if PlainText(def.Blocks[0].(*Paragraph).Content) != "the source" {
		t.Errorf("definition content wrong")
	}
}

func TestParseDuplicateFootnoteOverwrites(t *testing.T) {
	doc, warns := parse(t, "[^a]: first\n\n[^a]: second\n")
	if len(doc.Footnotes) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(doc.Footnotes))
	}
	if PlainText(doc.Footnotes[0].Blocks[0].(*Paragraph).Content) != "second" {
		t.Error("later definition should win")
	}
	if warns.Len() != 1 || warns.List()[0].Code != WarnDuplicateFootnote {
		t.Errorf("expected duplicate-footnote warning, got %v", warns.List())
	}
}

func TestParseCRLFInput(t *testing.T) {
	doc, _ := parse(t, "# Title\r\n\r\nbody\r\n")
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc.Blocks))
	}
}

func TestParseEmptyInput(t *testing.T) {
	doc, warns := parse(t, "")
	if len(doc.Blocks) != 0 || warns.Len() != 0 {
		t.Errorf("blocks=%d warnings=%d", len(doc.Blocks), warns.Len())
	}
}

func TestParseMathBlockSingleDollarFence(t *testing.T) {
	doc, warns := parse(t, "$\nE = mc^2\n$\n")
	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	math, ok := doc.Blocks[0].(*MathBlock)
	if !ok {
		t.Fatalf("expected MathBlock, got %T", doc.Blocks[0])
	}
	if math.Source != "E = mc^2" {
		t.Errorf("source: %q", math.Source)
	}
	if warns.Len() != 0 {
		t.Errorf("unexpected warnings: %v", warns.List())
	}
}

func TestParseMathBlockDoubleDollarFence(t *testing.T) {
	doc, _ := parse(t, "$$\n\\frac{a}{b}\n$$\n")
	math := doc.Blocks[0].(*MathBlock)
	if math.Source != `\frac{a}{b}` {
		t.Errorf("source: %q", math.Source)
	}
}

func TestParseMathBlockOneLine(t *testing.T) {
	doc, _ := parse(t, "before\n\n$$x^2 + y^2$$\n\nafter\n")
	if len(doc.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(doc.Blocks))
	}
	math, ok := doc.Blocks[1].(*MathBlock)
	if !ok {
		t.Fatalf("expected MathBlock, got %T", doc.Blocks[1])
	}
	if math.Source != "x^2 + y^2" {
		t.Errorf("source: %q", math.Source)
	}
}

func TestParseMathBlockMultiLineJoined(t *testing.T) {
	doc, _ := parse(t, "$$\na +\nb\n$$\n")
	math := doc.Blocks[0].(*MathBlock)
	if math.Source != "a + b" {
		t.Errorf("source: %q", math.Source)
	}
}

func TestParseMathBlockUnclosedWarns(t *testing.T) {
	doc, warns := parse(t, "$$\nx + y\n")
	math := doc.Blocks[0].(*MathBlock)
	if math.Source != "x + y" {
		t.Errorf("source: %q", math.Source)
	}
	if warns.Len() != 1 || warns.List()[0].Code != WarnUnterminatedMath {
		t.Errorf("expected unterminated-math warning, got %v", warns.List())
	}
}

func TestParseMathBlockEndsParagraph(t *testing.T) {
	doc, _ := parse(t, "text above\n$$\nx\n$$\n")
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %#v", len(doc.Blocks), doc.Blocks)
	}
	if _, ok := doc.Blocks[0].(*Paragraph); !ok {
		t.Errorf("expected paragraph, got %T", doc.Blocks[0])
	}
	if _, ok := doc.Blocks[1].(*MathBlock); !ok {
		t.Errorf("expected MathBlock, got %T", doc.Blocks[1])
	}
}

func TestParseImageInParagraph(t *testing.T) {
	doc, _ := parse(t, "shown in ![figure one](img/fig1.png) below\n")
	para := doc.Blocks[0].(*Paragraph)
	var img *Image
	for _, n := range para.Content {
		if i, ok := n.(*Image); ok {
			img = i
		}
	}
	if img == nil {
		t.Fatalf("no image node in %#v", para.Content)
	}
	if img.Alt != "figure one" || img.Target != "img/fig1.png" {
		t.Errorf("image: %+v", img)
	}
}
