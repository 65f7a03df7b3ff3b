package mdocx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/slotools/mdocx/pkg/mdocx/wml"
)

// Relationship type URIs used in the package.
const (
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTypeNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	relTypeFootnotes      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footnotes"
	relTypeHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// relationship is one entry in a part's relationship file.
type relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

// part is one file of the package. Parts are written in a fixed order so
// identical input yields byte-identical archives.
type part struct {
	Name        string
	ContentType string
	Data        []byte
}

// buildPackage serializes the rendered parts and assembles the archive.
// Part names, relationship identifiers and content types are validated
// before writing; a violation is a PackageError, never a corrupt file.
func buildPackage(result *renderResult, cfg *Config, meta map[string]string) ([]byte, error) {
	documentXML, err := wml.MarshalDocument(&wml.Document{Body: result.Body})
	if err != nil {
		return nil, NewPackageError("word/document.xml", "%s", err.Error())
	}
	footnotesXML, err := wml.MarshalFootnotes(&result.Footnotes)
	if err != nil {
		return nil, NewPackageError("word/footnotes.xml", "%s", err.Error())
	}
	numberingXML, err := wml.MarshalNumbering(&result.Numbering)
	if err != nil {
		return nil, NewPackageError("word/numbering.xml", "%s", err.Error())
	}

	parts := []part{
		{Name: "_rels/.rels", Data: buildRelationships(rootRelationships())},
		{Name: "docProps/core.xml", ContentType: "application/vnd.openxmlformats-package.core-properties+xml", Data: buildCoreProperties(result.Title, meta)},
		{Name: "docProps/app.xml", ContentType: "application/vnd.openxmlformats-officedocument.extended-properties+xml", Data: buildAppProperties()},
		{Name: "word/document.xml", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml", Data: documentXML},
		{Name: "word/_rels/document.xml.rels", Data: buildRelationships(result.DocRels)},
		{Name: "word/styles.xml", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml", Data: buildStyles(cfg)},
		{Name: "word/numbering.xml", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml", Data: numberingXML},
		{Name: "word/footnotes.xml", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.footnotes+xml", Data: footnotesXML},
	}
	if len(result.FootnoteRels) > 0 {
		parts = append(parts, part{
			Name: "word/_rels/footnotes.xml.rels",
			Data: buildRelationships(result.FootnoteRels),
		})
	}

	if err := validatePackage(parts, result); err != nil {
		return nil, err
	}

	return writeArchive(parts)
}

// validatePackage enforces the structural invariants of the archive.
func validatePackage(parts []part, result *renderResult) error {
	seen := make(map[string]bool)
	for _, p := range parts {
		if seen[p.Name] {
			return NewPackageError(p.Name, "duplicate part name")
		}
		seen[p.Name] = true
	}

	if err := validateRelationships("word/_rels/document.xml.rels", result.DocRels); err != nil {
		return err
	}
	if err := validateRelationships("word/_rels/footnotes.xml.rels", result.FootnoteRels); err != nil {
		return err
	}

	if err := validateReferences("word/document.xml", bodyHyperlinkIDs(result.Body.Elements), result.DocRels); err != nil {
		return err
	}
	var fnRefs []string
	for _, note := range result.Footnotes.Notes {
		for _, p := range note.Paragraphs {
			fnRefs = append(fnRefs, paragraphHyperlinkIDs(p)...)
		}
	}
	return validateReferences("word/footnotes.xml", fnRefs, result.FootnoteRels)
}

func validateRelationships(partName string, rels []relationship) error {
	ids := make(map[string]bool)
	for _, rel := range rels {
		if rel.ID == "" || rel.Type == "" || rel.Target == "" {
			return NewPackageError(partName, "incomplete relationship %q", rel.ID)
		}
		if ids[rel.ID] {
			return NewPackageError(partName, "duplicate relationship identifier %q", rel.ID)
		}
		ids[rel.ID] = true
	}
	return nil
}

// validateReferences checks the relationship identifiers referenced from a
// part's content against the part's relationship list: every reference
// must resolve, and every hyperlink entry must be referenced.
func validateReferences(partName string, refs []string, rels []relationship) error {
	known := make(map[string]bool, len(rels))
	for _, rel := range rels {
		known[rel.ID] = true
	}
	referenced := make(map[string]bool, len(refs))
	for _, id := range refs {
		if !known[id] {
			return NewPackageError(partName, "unresolved relationship reference %q", id)
		}
		referenced[id] = true
	}
	for _, rel := range rels {
		if rel.Type == relTypeHyperlink && !referenced[rel.ID] {
			return NewPackageError(partName, "relationship %q declared but never referenced", rel.ID)
		}
	}
	return nil
}

// bodyHyperlinkIDs collects hyperlink relationship references across body
// elements, including paragraphs inside table cells.
func bodyHyperlinkIDs(elements []wml.BodyElement) []string {
	var ids []string
	for _, el := range elements {
		switch e := el.(type) {
		case *wml.Paragraph:
			ids = append(ids, paragraphHyperlinkIDs(*e)...)
		case *wml.Table:
			for _, row := range e.Rows {
				for _, cell := range row.Cells {
					for _, p := range cell.Paragraphs {
						ids = append(ids, paragraphHyperlinkIDs(p)...)
					}
				}
			}
		}
	}
	return ids
}

func paragraphHyperlinkIDs(p wml.Paragraph) []string {
	var ids []string
	for _, c := range p.Content {
		if link, ok := c.(*wml.Hyperlink); ok {
			ids = append(ids, link.ID)
		}
	}
	return ids
}

// writeArchive stores the content types part first, then every part in
// declaration order. Entries carry no timestamps.
func writeArchive(parts []part) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	entry, err := w.Create("[Content_Types].xml")
	if err != nil {
		return nil, NewPackageError("[Content_Types].xml", "%s", err.Error())
	}
	if _, err := entry.Write(buildContentTypes(parts)); err != nil {
		return nil, NewPackageError("[Content_Types].xml", "%s", err.Error())
	}

	for _, p := range parts {
		entry, err := w.Create(p.Name)
		if err != nil {
			return nil, NewPackageError(p.Name, "%s", err.Error())
		}
		if _, err := entry.Write(p.Data); err != nil {
			return nil, NewPackageError(p.Name, "%s", err.Error())
		}
	}

	if err := w.Close(); err != nil {
		return nil, NewPackageError("", "%s", err.Error())
	}
	return buf.Bytes(), nil
}

func rootRelationships() []relationship {
	return []relationship{
		{ID: "rId1", Type: relTypeOfficeDocument, Target: "word/document.xml"},
		{ID: "rId2", Type: relTypeCoreProps, Target: "docProps/core.xml"},
		{ID: "rId3", Type: relTypeExtendedProps, Target: "docProps/app.xml"},
	}
}

func buildRelationships(rels []relationship) []byte {
	var b strings.Builder
	b.WriteString(wml.XMLHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, rel := range rels {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"`,
			xmlEscape(rel.ID), xmlEscape(rel.Type), xmlEscape(rel.Target))
		if rel.TargetMode != "" {
			fmt.Fprintf(&b, ` TargetMode="%s"`, xmlEscape(rel.TargetMode))
		}
		b.WriteString(`/>`)
	}
	b.WriteString(`</Relationships>`)
	return []byte(b.String())
}

func buildContentTypes(parts []part) []byte {
	var b strings.Builder
	b.WriteString(wml.XMLHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	for _, p := range parts {
		if p.ContentType == "" {
			continue
		}
		fmt.Fprintf(&b, `<Override PartName="/%s" ContentType="%s"/>`, p.Name, p.ContentType)
	}
	b.WriteString(`</Types>`)
	return []byte(b.String())
}

// buildCoreProperties writes the core metadata part. The created and
// modified stamps default to the current time but can be pinned through
// the metadata map, which keeps repeated conversions byte-identical.
func buildCoreProperties(title string, meta map[string]string) []byte {
	author := meta["author"]
	if author == "" {
		author = "Unknown"
	}
	if t := meta["title"]; t != "" {
		title = t
	}

	now := time.Now().UTC().Format("2006-01-02T15:04:05Z")
	created := meta["created"]
	if created == "" {
		created = now
	}
	modified := meta["modified"]
	if modified == "" {
		modified = now
	}

	var b strings.Builder
	b.WriteString(wml.XMLHeader)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	fmt.Fprintf(&b, `<dc:title>%s</dc:title>`, xmlEscape(title))
	fmt.Fprintf(&b, `<dc:creator>%s</dc:creator>`, xmlEscape(author))
	fmt.Fprintf(&b, `<cp:lastModifiedBy>%s</cp:lastModifiedBy>`, xmlEscape(author))
	fmt.Fprintf(&b, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`, xmlEscape(created))
	fmt.Fprintf(&b, `<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, xmlEscape(modified))
	b.WriteString(`</cp:coreProperties>`)
	return []byte(b.String())
}

func buildAppProperties() []byte {
	var b strings.Builder
	b.WriteString(wml.XMLHeader)
	b.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">`)
	b.WriteString(`<Application>mdocx</Application>`)
	b.WriteString(`</Properties>`)
	return []byte(b.String())
}
