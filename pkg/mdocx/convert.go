// Package mdocx converts markdown text into Word documents. The pipeline
// is parse, allocate, render, package: markup becomes a block tree,
// numbering and footnote identifiers are assigned, the tree is lowered to
// WordprocessingML parts, and the parts are zipped into a .docx archive.
//
// Malformed markup degrades to literal text and is reported through
// Result.Warnings; only unreadable input, a packaging invariant violation
// or a destination write failure abort a conversion.
package mdocx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Options controls a single conversion.
type Options struct {
	// Metadata overrides the core document properties. Recognized keys are
	// "author", "title", "created" and "modified"; timestamps use the
	// W3CDTF form 2006-01-02T15:04:05Z.
	Metadata map[string]string
	// Config overrides the global configuration for this conversion.
	Config *Config
}

// Result is the outcome of a successful conversion.
type Result struct {
	// Package is the complete .docx archive.
	Package []byte
	// Warnings lists every degradation, in input order.
	Warnings []Warning
	// Title is the text of the first level-one heading, or empty.
	Title string
}

// Convert turns markdown source into a .docx archive.
func Convert(source []byte, opts Options) (*Result, error) {
	if !utf8.Valid(source) {
		return nil, NewInputError("", errors.New("source is not valid UTF-8"))
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = GetGlobalConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	warns := &Warnings{}
	doc := parseDocument(string(source), warns)
	rendered := render(doc, cfg, warns)

	pkg, err := buildPackage(rendered, cfg, opts.Metadata)
	if err != nil {
		return nil, err
	}

	GetLogger().WithFields(Fields{
		"bytes":    len(pkg),
		"warnings": warns.Len(),
	}).Debug("Conversion complete")

	return &Result{
		Package:  pkg,
		Warnings: warns.List(),
		Title:    rendered.Title,
	}, nil
}

// Parse exposes the block tree of a source without rendering it, for
// callers that want to inspect or dump the intermediate form.
func Parse(source []byte) (*Document, []Warning, error) {
	if !utf8.Valid(source) {
		return nil, nil, NewInputError("", errors.New("source is not valid UTF-8"))
	}
	warns := &Warnings{}
	doc := parseDocument(string(source), warns)
	return doc, warns.List(), nil
}

// ConvertFile reads a markdown file and writes the archive to outputPath.
// An empty outputPath places the archive next to the input with the
// extension swapped for .docx. The whole package is assembled in memory
// first, so a failed conversion leaves no partial file behind.
func ConvertFile(inputPath, outputPath string, opts Options) (*Result, error) {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, NewInputError(inputPath, err)
	}

	result, err := Convert(source, opts)
	if err != nil {
		if ie, ok := err.(*InputError); ok {
			ie.Path = inputPath
		}
		return nil, err
	}

	if outputPath == "" {
		outputPath = OutputPath(inputPath)
	}
	if err := os.WriteFile(outputPath, result.Package, 0o644); err != nil {
		return nil, NewWriteError(outputPath, err)
	}
	return result, nil
}

// OutputPath derives the destination file name for a source path by
// replacing its extension with .docx.
func OutputPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".docx"
}
