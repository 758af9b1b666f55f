// Package testutil builds in-memory document fixtures for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"testing"
)

// TextPage returns a content stream that shows each line in its own BT/ET block.
func TextPage(lines ...string) string {
	var b strings.Builder
	y := 720
	for _, line := range lines {
		fmt.Fprintf(&b, "BT /F1 12 Tf 72 %d Td (%s) Tj ET\n", y, escapePDFString(line))
		y -= 16
	}
	return b.String()
}

func escapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

const helveticaFont = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>"

// BuildPDF assembles a minimal, valid PDF with one page per content stream.
// Font /F1 is a standard Helvetica.
func BuildPDF(t testing.TB, pages ...string) []byte {
	t.Helper()
	return buildPDF([]string{helveticaFont}, pages)
}

// glyphOffset maps printable ASCII onto glyph ids starting at 1, the way a
// subset font renumbers its glyphs.
const glyphOffset = 0x1F

// identityHToUnicode maps glyph ids 0x0001-0x005F back to U+0020-U+007E.
const identityHToUnicode = `begincmap
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
1 beginbfrange
<0001> <005F> <0020>
endbfrange
endcmap`

// GlyphPage returns a content stream that shows each line as a hex string of
// two-byte glyph ids in its own BT/ET block. Only printable ASCII is supported.
func GlyphPage(lines ...string) string {
	var b strings.Builder
	y := 720
	for _, line := range lines {
		fmt.Fprintf(&b, "BT /F1 12 Tf 72 %d Td <", y)
		for _, r := range line {
			fmt.Fprintf(&b, "%04X", int(r)-glyphOffset)
		}
		b.WriteString("> Tj ET\n")
		y -= 16
	}
	return b.String()
}

// BuildCIDFontPDF assembles a PDF whose font /F1 is a Type0 font with
// Identity-H encoding. Text is only recoverable through its ToUnicode CMap,
// as in documents exported by word processors and browsers.
func BuildCIDFontPDF(t testing.TB, pages ...string) []byte {
	t.Helper()
	fonts := []string{
		"<< /Type /Font /Subtype /Type0 /BaseFont /LeaseSans /Encoding /Identity-H /DescendantFonts [4 0 R] /ToUnicode 6 0 R >>",
		"<< /Type /Font /Subtype /CIDFontType2 /BaseFont /LeaseSans /CIDSystemInfo << /Registry (Adobe) /Ordering (Identity) /Supplement 0 >> /FontDescriptor 5 0 R /CIDToGIDMap /Identity /DW 600 >>",
		"<< /Type /FontDescriptor /FontName /LeaseSans /Flags 32 /FontBBox [0 -200 1000 900] /ItalicAngle 0 /Ascent 900 /Descent -200 /CapHeight 700 /StemV 80 >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(identityHToUnicode), identityHToUnicode),
	}
	return buildPDF(fonts, pages)
}

// buildPDF numbers the catalog 1, the page tree 2 and fonts from 3, so
// fonts[0] is the /F1 resource. Page and content objects follow the fonts.
func buildPDF(fonts []string, pages []string) []byte {
	firstPage := 3 + len(fonts)
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", firstPage+2*i)
	}

	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
	}
	objs = append(objs, fonts...)
	for i, content := range pages {
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", firstPage+2*i+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xrefOffset)
	return buf.Bytes()
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// BuildDOCX assembles a minimal Word document with one run per paragraph.
func BuildDOCX(t testing.TB, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		if err := xml.EscapeText(&body, []byte(p)); err != nil {
			t.Fatalf("escape paragraph: %v", err)
		}
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"_rels/.rels":         relsXML,
		"word/document.xml":   body.String(),
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
