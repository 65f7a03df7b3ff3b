package mdocx

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/slotools/mdocx/pkg/mdocx/wml"
)

// mathSymbols maps the supported backslash commands to their Unicode
// glyphs. Anything outside this table (and the structural commands handled
// in the transcoder) is unsupported and fails the whole expression.
var mathSymbols = map[string]string{
	"alpha":   "α",
	"beta":    "β",
	"gamma":   "γ",
	"delta":   "δ",
	"epsilon": "ε",
	"zeta":    "ζ",
	"eta":     "η",
	"theta":   "θ",
	"iota":    "ι",
	"kappa":   "κ",
	"lambda":  "λ",
	"mu":      "μ",
	"nu":      "ν",
	"xi":      "ξ",
	"pi":      "π",
	"rho":     "ρ",
	"sigma":   "σ",
	"tau":     "τ",
	"phi":     "φ",
	"chi":     "χ",
	"psi":     "ψ",
	"omega":   "ω",
	"Gamma":   "Γ",
	"Delta":   "Δ",
	"Theta":   "Θ",
	"Lambda":  "Λ",
	"Xi":      "Ξ",
	"Pi":      "Π",
	"Sigma":   "Σ",
	"Phi":     "Φ",
	"Psi":     "Ψ",
	"Omega":   "Ω",
	"cdot":    "·",
	"times":   "×",
	"pm":      "±",
	"infty":   "∞",
	"leq":     "≤",
	"geq":     "≥",
	"neq":     "≠",
	"approx":  "≈",
	"to":      "→",
	"sum":     "∑",
	"prod":    "∏",
	"int":     "∫",
	"partial": "∂",
}

// mathFunctions are the named operators rendered as upright text.
var mathFunctions = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"log": true, "ln": true, "exp": true,
	"min": true, "max": true, "lim": true,
}

// TranscodeMath converts a TeX-flavored expression into an OMML tree. An
// unsupported command returns an error so the caller can degrade the whole
// expression to monospace text.
func TranscodeMath(source string) (*wml.OMath, error) {
	t := &mathTranscoder{src: source}
	nodes, err := t.parseNodes(0)
	if err != nil {
		return nil, err
	}
	if t.pos < len(t.src) {
		return nil, fmt.Errorf("unexpected '%c' at offset %d", t.src[t.pos], t.pos)
	}
	return &wml.OMath{Nodes: nodes}, nil
}

type mathTranscoder struct {
	src string
	pos int
}

// parseNodes parses a node sequence until EOF or an unbalanced closing
// brace, which the enclosing group consumes.
func (t *mathTranscoder) parseNodes(depth int) ([]wml.MathNode, error) {
	var nodes []wml.MathNode

	for t.pos < len(t.src) {
		c := t.src[t.pos]

		switch {
		case c == '}':
			if depth == 0 {
				return nil, fmt.Errorf("unbalanced '}' at offset %d", t.pos)
			}
			return nodes, nil

		case c == '{':
			t.pos++
			group, err := t.parseNodes(depth + 1)
			if err != nil {
				return nil, err
			}
			if err := t.expect('}'); err != nil {
				return nil, err
			}
			nodes = append(nodes, group...)

		case c == '^':
			t.pos++
			script, err := t.parseArgument(depth)
			if err != nil {
				return nil, err
			}
			base, rest := splitScriptBase(nodes)
			nodes = append(rest, &wml.MathSup{Base: base, Sup: script})

		case c == '_':
			t.pos++
			script, err := t.parseArgument(depth)
			if err != nil {
				return nil, err
			}
			base, rest := splitScriptBase(nodes)
			nodes = append(rest, &wml.MathSub{Base: base, Sub: script})

		case c == '\\':
			node, err := t.parseCommand(depth)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)

		default:
			nodes = append(nodes, t.parseRun())
		}
	}

	if depth > 0 {
		return nil, fmt.Errorf("missing '}' at end of expression")
	}
	return nodes, nil
}

// parseRun collects ordinary characters up to the next structural token.
func (t *mathTranscoder) parseRun() *wml.MathRun {
	start := t.pos
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		if c == '{' || c == '}' || c == '^' || c == '_' || c == '\\' {
			break
		}
		_, size := utf8.DecodeRuneInString(t.src[t.pos:])
		t.pos += size
	}
	return &wml.MathRun{Text: t.src[start:t.pos]}
}

func (t *mathTranscoder) parseCommand(depth int) (wml.MathNode, error) {
	start := t.pos
	t.pos++ // consume the backslash

	nameStart := t.pos
	for t.pos < len(t.src) {
		r, size := utf8.DecodeRuneInString(t.src[t.pos:])
		if !unicode.IsLetter(r) {
			break
		}
		t.pos += size
	}
	name := t.src[nameStart:t.pos]
	if name == "" {
		return nil, fmt.Errorf("lone backslash at offset %d", start)
	}

	switch {
	case name == "frac":
		num, err := t.parseBraced(depth)
		if err != nil {
			return nil, err
		}
		den, err := t.parseBraced(depth)
		if err != nil {
			return nil, err
		}
		return &wml.MathFraction{Num: num, Den: den}, nil

	case name == "sqrt":
		expr, err := t.parseBraced(depth)
		if err != nil {
			return nil, err
		}
		return &wml.MathRadical{Expr: expr}, nil

	case mathFunctions[name]:
		return &wml.MathRun{Text: name}, nil

	default:
		if glyph, ok := mathSymbols[name]; ok {
			return &wml.MathRun{Text: glyph}, nil
		}
		return nil, fmt.Errorf("unsupported command \\%s", name)
	}
}

// parseArgument reads a script or command argument: either a braced group
// or a single character.
func (t *mathTranscoder) parseArgument(depth int) ([]wml.MathNode, error) {
	if t.pos >= len(t.src) {
		return nil, fmt.Errorf("missing argument at end of expression")
	}
	if t.src[t.pos] == '{' {
		return t.parseBraced(depth)
	}
	if t.src[t.pos] == '\\' {
		node, err := t.parseCommand(depth)
		if err != nil {
			return nil, err
		}
		return []wml.MathNode{node}, nil
	}
	r, size := utf8.DecodeRuneInString(t.src[t.pos:])
	t.pos += size
	return []wml.MathNode{&wml.MathRun{Text: string(r)}}, nil
}

func (t *mathTranscoder) parseBraced(depth int) ([]wml.MathNode, error) {
	if err := t.expect('{'); err != nil {
		return nil, err
	}
	nodes, err := t.parseNodes(depth + 1)
	if err != nil {
		return nil, err
	}
	if err := t.expect('}'); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (t *mathTranscoder) expect(c byte) error {
	if t.pos >= len(t.src) || t.src[t.pos] != c {
		return fmt.Errorf("expected '%c' at offset %d", c, t.pos)
	}
	t.pos++
	return nil
}

// splitScriptBase detaches the script base from the preceding nodes: the
// last node, except that a trailing text run contributes only its final
// character.
func splitScriptBase(nodes []wml.MathNode) (base []wml.MathNode, rest []wml.MathNode) {
	if len(nodes) == 0 {
		return nil, nodes
	}

	last := nodes[len(nodes)-1]
	rest = nodes[:len(nodes)-1]

	if run, ok := last.(*wml.MathRun); ok && run.Text != "" {
		_, size := utf8.DecodeLastRuneInString(run.Text)
		head := run.Text[:len(run.Text)-size]
		tail := run.Text[len(run.Text)-size:]
		if strings.TrimSpace(head) != "" {
			rest = append(rest, &wml.MathRun{Text: head})
		}
		return []wml.MathNode{&wml.MathRun{Text: tail}}, rest
	}

	return []wml.MathNode{last}, rest
}
