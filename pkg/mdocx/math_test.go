package mdocx

import (
	"testing"

	"github.com/slotools/mdocx/pkg/mdocx/wml"
)

func TestTranscodeMathPlainRun(t *testing.T) {
	math, err := TranscodeMath("x+1")
	if err != nil {
		t.Fatal(err)
	}
	if len(math.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(math.Nodes))
	}
	run := math.Nodes[0].(*wml.MathRun)
	if run.Text != "x+1" {
		t.Errorf("got %q", run.Text)
	}
}

func TestTranscodeMathFraction(t *testing.T) {
	math, err := TranscodeMath(`\frac{a+b}{2}`)
	if err != nil {
		t.Fatal(err)
	}
	frac := math.Nodes[0].(*wml.MathFraction)
	if frac.Num[0].(*wml.MathRun).Text != "a+b" {
		t.Errorf("numerator: %#v", frac.Num)
	}
	if frac.Den[0].(*wml.MathRun).Text != "2" {
		t.Errorf("denominator: %#v", frac.Den)
	}
}

func TestTranscodeMathSuperscript(t *testing.T) {
	math, err := TranscodeMath("E=mc^2")
	if err != nil {
		t.Fatal(err)
	}
	if len(math.Nodes) != 2 {
		t.Fatalf("expected prefix run plus sSup, got %d nodes", len(math.Nodes))
	}
	if math.Nodes[0].(*wml.MathRun).Text != "E=m" {
		t.Errorf("prefix: %#v", math.Nodes[0])
	}
	sup := math.Nodes[1].(*wml.MathSup)
	if sup.Base[0].(*wml.MathRun).Text != "c" || sup.Sup[0].(*wml.MathRun).Text != "2" {
		t.Errorf("sSup: %#v", sup)
	}
}

func TestTranscodeMathSubscript(t *testing.T) {
	math, err := TranscodeMath("x_{min}")
	if err != nil {
		t.Fatal(err)
	}
	sub := math.Nodes[0].(*wml.MathSub)
	if sub.Base[0].(*wml.MathRun).Text != "x" || sub.Sub[0].(*wml.MathRun).Text != "min" {
		t.Errorf("sSub: %#v", sub)
	}
}

func TestTranscodeMathRadical(t *testing.T) {
	math, err := TranscodeMath(`\sqrt{2}`)
	if err != nil {
		t.Fatal(err)
	}
	rad := math.Nodes[0].(*wml.MathRadical)
	if rad.Expr[0].(*wml.MathRun).Text != "2" {
		t.Errorf("radical: %#v", rad)
	}
}

func TestTranscodeMathSymbols(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`\alpha`, "α"},
		{`\pi`, "π"},
		{`\Omega`, "Ω"},
		{`\infty`, "∞"},
		{`\leq`, "≤"},
		{`\to`, "→"},
	}
	for _, tt := range tests {
		math, err := TranscodeMath(tt.src)
		if err != nil {
			t.Errorf("%s: %v", tt.src, err)
			continue
		}
		if got := math.Nodes[0].(*wml.MathRun).Text; got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestTranscodeMathNamedFunction(t *testing.T) {
	math, err := TranscodeMath(`\sin(x)`)
	if err != nil {
		t.Fatal(err)
	}
	if math.Nodes[0].(*wml.MathRun).Text != "sin" {
		t.Errorf("got %#v", math.Nodes[0])
	}
	if math.Nodes[1].(*wml.MathRun).Text != "(x)" {
		t.Errorf("got %#v", math.Nodes[1])
	}
}

func TestTranscodeMathErrors(t *testing.T) {
	tests := []string{
		`\unknowncmd`,
		`\frac{a}`,
		`{unclosed`,
		`stray}`,
		`\`,
	}
	for _, src := range tests {
		if _, err := TranscodeMath(src); err == nil {
			t.Errorf("%q: expected error", src)
		}
	}
}

func TestTranscodeMathNested(t *testing.T) {
	math, err := TranscodeMath(`\frac{\sqrt{2}}{x^2}`)
	if err != nil {
		t.Fatal(err)
	}
	frac := math.Nodes[0].(*wml.MathFraction)
	if _, ok := frac.Num[0].(*wml.MathRadical); !ok {
		t.Errorf("numerator: %#v", frac.Num[0])
	}
	if _, ok := frac.Den[0].(*wml.MathSup); !ok {
		t.Errorf("denominator: %#v", frac.Den[0])
	}
}
