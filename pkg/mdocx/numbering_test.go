package mdocx

import (
	"strings"
	"testing"
)

func TestAllocateListsFreshIdentifiers(t *testing.T) {
	doc, _ := parse(t, "- a\n- b\n\n- c\n\n1. x\n")
	alloc := allocateLists(doc, nil)

	var lists []*List
	for _, block := range doc.Blocks {
		lists = append(lists, block.(*List))
	}
	if len(lists) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(lists))
	}

	for i, l := range lists {
		if got := alloc.numID(l); got != i+1 {
			t.Errorf("run %d: numID=%d, want %d", i, got, i+1)
		}
	}
	if len(alloc.bulletIDs) != 2 || len(alloc.ordinalIDs) != 1 {
		t.Errorf("bullets=%v ordinals=%v", alloc.bulletIDs, alloc.ordinalIDs)
	}
}

func TestAllocateListsNestedGetOwnIdentifier(t *testing.T) {
	doc, _ := parse(t, "- outer\n  - inner\n")
	alloc := allocateLists(doc, nil)

	outer := doc.Blocks[0].(*List)
	inner := outer.Items[0].Blocks[1].(*List)
	if alloc.numID(outer) == alloc.numID(inner) {
		t.Error("nested run must not share the parent's identifier")
	}
	if alloc.level(outer) != 0 || alloc.level(inner) != 1 {
		t.Errorf("levels: outer=%d inner=%d", alloc.level(outer), alloc.level(inner))
	}
}

func TestAllocateListsDepthClamped(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 11; i++ {
		b.WriteString(strings.Repeat("  ", i))
		b.WriteString("- item\n")
	}

	warns := &Warnings{}
	doc := parseDocument(b.String(), warns)
	alloc := allocateLists(doc, warns)

	deepest := 0
	for _, level := range alloc.levels {
		if level > deepest {
			deepest = level
		}
	}
	if deepest != MaxListDepth-1 {
		t.Errorf("deepest rendered level %d, want %d", deepest, MaxListDepth-1)
	}

	var clamped bool
	for _, w := range warns.List() {
		if w.Code == WarnListDepthClamped {
			clamped = true
		}
	}
	if !clamped {
		t.Errorf("expected list-depth-clamped warning, got %v", warns.List())
	}
}

func TestAllocateFootnotesFirstReferenceOrder(t *testing.T) {
	src := "see[^b] and[^a]\n\n[^a]: alpha\n\n[^b]: beta\n"
	doc, _ := parse(t, src)
	alloc := allocateFootnotes(doc, nil)

	if id, _ := alloc.id("b"); id != 1 {
		t.Errorf("b: id=%d, want 1", id)
	}
	if id, _ := alloc.id("a"); id != 2 {
		t.Errorf("a: id=%d, want 2", id)
	}
}

func TestAllocateFootnotesRepeatedReferenceKeepsID(t *testing.T) {
	src := "one[^x] two[^x]\n\n[^x]: note\n"
	doc, _ := parse(t, src)
	alloc := allocateFootnotes(doc, nil)

	if len(alloc.order) != 1 {
		t.Fatalf("expected 1 allocated note, got %d", len(alloc.order))
	}
	if id, ok := alloc.id("x"); !ok || id != 1 {
		t.Errorf("x: id=%d ok=%v", id, ok)
	}
}

func TestAllocateFootnotesUnreferencedWarns(t *testing.T) {
	src := "no references here\n\n[^orphan]: unused\n"
	doc, _ := parse(t, src)

	warns := &Warnings{}
	alloc := allocateFootnotes(doc, warns)

	if _, ok := alloc.id("orphan"); ok {
		t.Error("unreferenced definition must not get an identifier")
	}
	if warns.Len() != 1 || warns.List()[0].Code != WarnUnreferencedFootnote {
		t.Errorf("expected unreferenced-footnote warning, got %v", warns.List())
	}
}

func TestAllocateFootnotesStableUnderUnrelatedReorder(t *testing.T) {
	before := "intro\n\nsee[^x] then[^y]\n\nclosing words\n\n[^x]: ex\n\n[^y]: why\n"
	after := "closing words\n\nsee[^x] then[^y]\n\nintro\n\n[^y]: why\n\n[^x]: ex\n"

	docA, _ := parse(t, before)
	docB, _ := parse(t, after)
	allocA := allocateFootnotes(docA, nil)
	allocB := allocateFootnotes(docB, nil)

	for _, label := range []string{"x", "y"} {
		idA, _ := allocA.id(label)
		idB, _ := allocB.id(label)
		if idA != idB {
			t.Errorf("%s: id changed %d -> %d after unrelated reorder", label, idA, idB)
		}
	}
}

func TestAllocateFootnotesUndefinedGetsNoID(t *testing.T) {
	doc, _ := parse(t, "ghost[^missing]\n")
	alloc := allocateFootnotes(doc, nil)
	if _, ok := alloc.id("missing"); ok {
		t.Error("undefined label must not get an identifier")
	}
}
