package mdocx

// listAllocation binds each list run to the numbering identifier it
// renders with, and records the maximum depth actually used so the
// numbering part only defines levels that occur.
type listAllocation struct {
	numIDs     map[*List]int
	levels     map[*List]int
	bulletIDs  []int
	ordinalIDs []int
}

// footnoteAllocation assigns footnote identifiers in first-reference
// order. Unreferenced definitions receive no identifier and are dropped
// from the output.
type footnoteAllocation struct {
	ids   map[string]int
	order []string
}

// allocateLists walks the tree in document order and assigns one fresh
// numbering identifier per list run. Identifiers start at 1. Levels deeper
// than the renderable maximum are clamped with a warning.
func allocateLists(doc *Document, warns *Warnings) *listAllocation {
	alloc := &listAllocation{
		numIDs: make(map[*List]int),
		levels: make(map[*List]int),
	}
	next := 1

	var walk func(blocks []Block)
	walk = func(blocks []Block) {
		for _, block := range blocks {
			switch b := block.(type) {
			case *List:
				level := b.Level
				if level > MaxListDepth-1 {
					warns.Add(WarnListDepthClamped, "list nesting depth %d clamped to %d", level+1, MaxListDepth)
					level = MaxListDepth - 1
				}
				alloc.numIDs[b] = next
				alloc.levels[b] = level
				if b.Ordered {
					alloc.ordinalIDs = append(alloc.ordinalIDs, next)
				} else {
					alloc.bulletIDs = append(alloc.bulletIDs, next)
				}
				next++
				for _, item := range b.Items {
					walk(item.Blocks)
				}
			case *Blockquote:
				walk(b.Blocks)
			}
		}
	}

	walk(doc.Blocks)
	for _, fn := range doc.Footnotes {
		walk(fn.Blocks)
	}
	return alloc
}

// numID returns the numbering identifier assigned to a list run.
func (a *listAllocation) numID(l *List) int {
	return a.numIDs[l]
}

// level returns the clamped rendering depth of a list run.
func (a *listAllocation) level(l *List) int {
	return a.levels[l]
}

// allocateFootnotes assigns identifiers to footnote definitions in the
// order their references first appear in the body. Identifiers start at 1
// because 0 and -1 belong to the built-in separators.
func allocateFootnotes(doc *Document, warns *Warnings) *footnoteAllocation {
	alloc := &footnoteAllocation{ids: make(map[string]int)}

	var walkInlines func(content []Inline)
	walkInlines = func(content []Inline) {
		for _, node := range content {
			switch n := node.(type) {
			case *FootnoteRef:
				if _, seen := alloc.ids[n.Label]; !seen && doc.FindFootnote(n.Label) != nil {
					alloc.ids[n.Label] = len(alloc.order) + 1
					alloc.order = append(alloc.order, n.Label)
				}
			case *Link:
				walkInlines(n.Content)
			}
		}
	}

	var walkBlocks func(blocks []Block)
	walkBlocks = func(blocks []Block) {
		for _, block := range blocks {
			switch b := block.(type) {
			case *Heading:
				walkInlines(b.Content)
			case *Paragraph:
				walkInlines(b.Content)
			case *List:
				for _, item := range b.Items {
					walkBlocks(item.Blocks)
				}
			case *Table:
				for _, row := range b.Rows {
					for _, cell := range row {
						walkInlines([]Inline(cell))
					}
				}
			case *Blockquote:
				walkBlocks(b.Blocks)
			}
		}
	}

	walkBlocks(doc.Blocks)

	for _, def := range doc.Footnotes {
		if _, ok := alloc.ids[def.Label]; !ok {
			warns.Add(WarnUnreferencedFootnote, "footnote '%s' defined but never referenced", def.Label)
		}
	}
	return alloc
}

// id returns the identifier for a label and whether one was assigned.
func (a *footnoteAllocation) id(label string) (int, bool) {
	id, ok := a.ids[label]
	return id, ok
}
