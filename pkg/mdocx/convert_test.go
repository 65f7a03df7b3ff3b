package mdocx

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConvertSimpleDocument(t *testing.T) {
	src := "# Report\n\nSome **bold** text.\n"
	result, err := Convert([]byte(src), Options{Metadata: pinned})
	if err != nil {
		t.Fatal(err)
	}

	if result.Title != "Report" {
		t.Errorf("title: %q", result.Title)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings: %v", result.Warnings)
	}

	r, err := zip.NewReader(bytes.NewReader(result.Package), int64(len(result.Package)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}
	if len(r.File) == 0 {
		t.Error("empty archive")
	}
}

func TestConvertInvalidUTF8(t *testing.T) {
	_, err := Convert([]byte{0x23, 0x20, 0xff, 0xfe}, Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsInputError(err) {
		t.Errorf("expected InputError, got %T", err)
	}
}

func TestConvertCollectsWarningsWithoutFailing(t *testing.T) {
	src := "unterminated **bold\n\n| a | b |\n|---|---|\n| only |\n\nghost[^missing]\n"
	result, err := Convert([]byte(src), Options{Metadata: pinned})
	if err != nil {
		t.Fatal(err)
	}

	codes := make(map[WarningCode]bool)
	for _, w := range result.Warnings {
		codes[w.Code] = true
	}
	for _, want := range []WarningCode{WarnUnterminatedMarker, WarnRaggedTable, WarnUnresolvedFootnote} {
		if !codes[want] {
			t.Errorf("missing warning %s in %v", want, result.Warnings)
		}
	}
}

func TestConvertDeterministicWithPinnedMetadata(t *testing.T) {
	src := "# T\n\n1. one\n2. two\n\n> quote\n"
	a, err := Convert([]byte(src), Options{Metadata: pinned})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Convert([]byte(src), Options{Metadata: pinned})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Package, b.Package) {
		t.Error("conversion is not deterministic")
	}
}

func TestConvertCustomConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BodyFont = "Georgia"
	cfg.BodySizePt = 12

	result, err := Convert([]byte("text\n"), Options{Metadata: pinned, Config: cfg})
	if err != nil {
		t.Fatal(err)
	}

	files := readArchive(t, result.Package)
	styles := string(files["word/styles.xml"])
	if !strings.Contains(styles, `w:ascii="Georgia"`) || !strings.Contains(styles, `w:val="24"`) {
		t.Errorf("custom fonts not applied: %s", styles)
	}
}

func TestConvertInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BodySizePt = 0
	if _, err := Convert([]byte("x\n"), Options{Config: cfg}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestParsePublicAPI(t *testing.T) {
	doc, warns, err := Parse([]byte("# H\n\n**open\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Blocks) != 2 {
		t.Errorf("blocks: %d", len(doc.Blocks))
	}
	if len(warns) != 1 {
		t.Errorf("warnings: %v", warns)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"notes.md", "notes.docx"},
		{"dir/report.markdown", "dir/report.docx"},
		{"noext", "noext.docx"},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.in); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(src, []byte("# File Test\n\nbody\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := ConvertFile(src, "", Options{Metadata: pinned})
	if err != nil {
		t.Fatal(err)
	}
	if result.Title != "File Test" {
		t.Errorf("title: %q", result.Title)
	}

	written, err := os.ReadFile(filepath.Join(dir, "doc.docx"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(written, result.Package) {
		t.Error("file content differs from result package")
	}
}

func TestConvertFileExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.md")
	dest := filepath.Join(dir, "out", "renamed.docx")
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("body\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ConvertFile(src, dest, Options{Metadata: pinned}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("explicit output not written: %v", err)
	}
}

func TestConvertFileMissingInput(t *testing.T) {
	_, err := ConvertFile(filepath.Join(t.TempDir(), "absent.md"), "", Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsInputError(err) {
		t.Errorf("expected InputError, got %T", err)
	}
}
