package mdocx

import (
	"strings"
	"unicode/utf8"
)

// inlineLexer tokenizes one logical line into Inline nodes. Emphasis
// markers toggle state; markers still open at end of line are reverted to
// literal text rather than reported as errors.
type inlineLexer struct {
	src    string
	pos    int
	warns  *Warnings
	nodes  []Inline
	buf    strings.Builder
	bold   bool
	italic bool
	strike bool
	open   []openMarker
	labels []string
}

// openMarker records an emphasis toggle so it can be reverted if it never
// closes. nodeIndex is the position in the node list where content under
// the marker begins; the prev* flags are the state before the toggle.
type openMarker struct {
	marker     string
	kind       byte // 'b', 'i' or 's'
	nodeIndex  int
	prevBold   bool
	prevItalic bool
	prevStrike bool
}

// lexInline tokenizes a line of raw text into inline spans and returns the
// footnote labels it discovered, so the caller can register forward
// references before their definitions are parsed.
func lexInline(src string, warns *Warnings) ([]Inline, []string) {
	lx := &inlineLexer{src: src, warns: warns}
	lx.run()
	return lx.nodes, lx.labels
}

func (lx *inlineLexer) run() {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch c {
		case '\\':
			lx.escape()
		case '`':
			lx.codeSpan()
		case '$':
			lx.mathSpan()
		case '*', '_':
			lx.emphasis(c)
		case '~':
			if strings.HasPrefix(lx.src[lx.pos:], "~~") {
				lx.toggle("~~", 's')
			} else {
				lx.buf.WriteByte(c)
				lx.pos++
			}
		case '!':
			lx.bang()
		case '[':
			lx.bracket()
		default:
			r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
			lx.buf.WriteRune(r)
			lx.pos += size
		}
	}
	lx.flush()
	lx.revertOpenMarkers()
	lx.nodes = mergeTextNodes(lx.nodes)
}

// escape consumes a backslash and emits the next character literally.
func (lx *inlineLexer) escape() {
	lx.pos++
	if lx.pos >= len(lx.src) {
		lx.buf.WriteByte('\\')
		return
	}
	r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.buf.WriteRune(r)
	lx.pos += size
}

// codeSpan consumes `code`. An unterminated backtick is literal text.
func (lx *inlineLexer) codeSpan() {
	end := strings.IndexByte(lx.src[lx.pos+1:], '`')
	if end < 0 {
		lx.warns.Add(WarnUnterminatedMarker, "unterminated code span at column %d", lx.pos+1)
		lx.buf.WriteByte('`')
		lx.pos++
		return
	}

	content := lx.src[lx.pos+1 : lx.pos+1+end]
	lx.flush()
	lx.append(&Text{
		Value:  content,
		Bold:   lx.bold,
		Italic: lx.italic,
		Strike: lx.strike,
		Code:   true,
	})
	lx.pos += end + 2
}

// mathSpan consumes $expr$, degrading to a literal dollar sign with a
// warning when the closing delimiter is missing.
func (lx *inlineLexer) mathSpan() {
	end := strings.IndexByte(lx.src[lx.pos+1:], '$')
	if end < 0 {
		lx.warns.Add(WarnUnterminatedMath, "unterminated inline math at column %d", lx.pos+1)
		lx.buf.WriteByte('$')
		lx.pos++
		return
	}
	if end == 0 {
		// "$$" with no expression is literal text.
		lx.buf.WriteString("$$")
		lx.pos += 2
		return
	}

	lx.flush()
	lx.append(&InlineMath{Source: lx.src[lx.pos+1 : lx.pos+1+end]})
	lx.pos += end + 2
}

// emphasis handles * and _ runs: doubles toggle bold, singles italic.
func (lx *inlineLexer) emphasis(c byte) {
	if lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == c {
		lx.toggle(string(c)+string(c), 'b')
		return
	}
	lx.toggle(string(c), 'i')
}

// toggle flips one emphasis flag, tracking open markers for end-of-line
// reversion.
func (lx *inlineLexer) toggle(marker string, kind byte) {
	lx.flush()

	var flag *bool
	switch kind {
	case 'b':
		flag = &lx.bold
	case 'i':
		flag = &lx.italic
	case 's':
		flag = &lx.strike
	}

	if !*flag {
		lx.open = append(lx.open, openMarker{
			marker:     marker,
			kind:       kind,
			nodeIndex:  len(lx.nodes),
			prevBold:   lx.bold,
			prevItalic: lx.italic,
			prevStrike: lx.strike,
		})
		*flag = true
	} else {
		for i := len(lx.open) - 1; i >= 0; i-- {
			if lx.open[i].kind == kind {
				lx.open = append(lx.open[:i], lx.open[i+1:]...)
				break
			}
		}
		*flag = false
	}
	lx.pos += len(marker)
}

// bang handles image syntax. Anything that is not a complete
// ![alt](target) is an ordinary exclamation mark.
func (lx *inlineLexer) bang() {
	rest := lx.src[lx.pos:]
	if len(rest) < 2 || rest[1] != '[' {
		lx.buf.WriteByte('!')
		lx.pos++
		return
	}

	inner := rest[1:]
	textEnd := linkTextEnd(inner)
	if textEnd < 0 || textEnd+1 >= len(inner) || inner[textEnd+1] != '(' {
		lx.buf.WriteByte('!')
		lx.pos++
		return
	}
	targetEnd := strings.IndexByte(inner[textEnd+2:], ')')
	if targetEnd < 0 {
		lx.buf.WriteByte('!')
		lx.pos++
		return
	}

	lx.flush()
	lx.append(&Image{
		Alt:    strings.TrimSpace(inner[1:textEnd]),
		Target: inner[textEnd+2 : textEnd+2+targetEnd],
	})
	lx.pos += 1 + textEnd + 2 + targetEnd + 1
}

// bracket handles footnote references and links.
func (lx *inlineLexer) bracket() {
	rest := lx.src[lx.pos:]

	if strings.HasPrefix(rest, "[^") {
		if end := strings.IndexByte(rest, ']'); end > 2 {
			label := rest[2:end]
			lx.flush()
			lx.append(&FootnoteRef{Label: label})
			lx.labels = append(lx.labels, label)
			lx.pos += end + 1
			return
		}
		lx.buf.WriteByte('[')
		lx.pos++
		return
	}

	textEnd := linkTextEnd(rest)
	if textEnd < 0 || textEnd+1 >= len(rest) || rest[textEnd+1] != '(' {
		// Bare brackets are ordinary text.
		lx.buf.WriteByte('[')
		lx.pos++
		return
	}

	targetEnd := strings.IndexByte(rest[textEnd+2:], ')')
	if targetEnd < 0 {
		lx.warns.Add(WarnMalformedLink, "link missing closing parenthesis at column %d", lx.pos+1)
		lx.buf.WriteByte('[')
		lx.pos++
		return
	}

	text := rest[1:textEnd]
	target := rest[textEnd+2 : textEnd+2+targetEnd]

	content, labels := lexInline(text, lx.warns)
	lx.flush()
	lx.append(&Link{Content: content, Target: target})
	lx.labels = append(lx.labels, labels...)
	lx.pos += textEnd + 2 + targetEnd + 1
}

// linkTextEnd finds the index of the ] matching the [ at position 0,
// honoring nesting and escapes. Returns -1 when unmatched.
func linkTextEnd(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// flush moves buffered characters into a Text node with the current flags.
func (lx *inlineLexer) flush() {
	if lx.buf.Len() == 0 {
		return
	}
	lx.append(&Text{
		Value:  lx.buf.String(),
		Bold:   lx.bold,
		Italic: lx.italic,
		Strike: lx.strike,
	})
	lx.buf.Reset()
}

func (lx *inlineLexer) append(node Inline) {
	lx.nodes = append(lx.nodes, node)
}

// revertOpenMarkers turns emphasis markers that never closed back into
// literal text: the marker is re-inserted where it appeared and the flag
// is cleared on everything after it.
func (lx *inlineLexer) revertOpenMarkers() {
	for i := len(lx.open) - 1; i >= 0; i-- {
		m := lx.open[i]
		lx.warns.Add(WarnUnterminatedMarker, "unterminated '%s' marker treated as literal text", m.marker)

		literal := &Text{
			Value:  m.marker,
			Bold:   m.prevBold,
			Italic: m.prevItalic,
			Strike: m.prevStrike,
		}
		lx.nodes = append(lx.nodes[:m.nodeIndex],
			append([]Inline{literal}, lx.nodes[m.nodeIndex:]...)...)

		for j := m.nodeIndex + 1; j < len(lx.nodes); j++ {
			if text, ok := lx.nodes[j].(*Text); ok {
				switch m.kind {
				case 'b':
					text.Bold = false
				case 'i':
					text.Italic = false
				case 's':
					text.Strike = false
				}
			}
		}
	}
	lx.open = nil
}

// mergeTextNodes joins adjacent Text nodes with identical formatting.
func mergeTextNodes(nodes []Inline) []Inline {
	var out []Inline
	for _, node := range nodes {
		text, ok := node.(*Text)
		if ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*Text); ok &&
				prev.Bold == text.Bold && prev.Italic == text.Italic &&
				prev.Strike == text.Strike && prev.Code == text.Code {
				prev.Value += text.Value
				continue
			}
		}
		out = append(out, node)
	}
	return out
}
