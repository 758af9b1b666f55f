package extract

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	xunicode "golang.org/x/text/encoding/unicode"
)

// A TJ kerning adjustment at or below this value (thousandths of an em) is
// wide enough to be a word gap.
const tjSpaceThreshold = -250

// blockCollector accumulates the runs shown inside BT/ET blocks.
type blockCollector struct {
	blocks []string
	runs   []string
}

func (c *blockCollector) flush() {
	if len(c.runs) > 0 {
		c.blocks = append(c.blocks, strings.Join(c.runs, " "))
	}
	c.runs = nil
}

func (c *blockCollector) add(text string) {
	if text = strings.TrimSpace(text); text != "" {
		c.runs = append(c.runs, text)
	}
}

// pageBlocks interprets a page's content streams and returns the text shown
// in each BT/ET block. String operands are decoded through the encoding of
// the font selected by the last Tf, which resolves ToUnicode CMaps for
// composite fonts.
func pageBlocks(page pdf.Page) (blocks []string, err error) {
	c := &blockCollector{}
	defer func() {
		if r := recover(); r != nil {
			c.flush()
			blocks = c.blocks
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()

	var enc pdf.TextEncoding
	decode := func(raw string) string {
		if enc == nil || strings.HasPrefix(raw, "\xfe\xff") {
			return cleanRun(decodeRaw(raw))
		}
		return cleanRun(enc.Decode(raw))
	}

	interpret := func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]pdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}
		switch op {
		case "BT", "ET":
			c.flush()
		case "Tf":
			if n == 2 {
				font := page.Font(args[0].Name())
				if font.V.IsNull() {
					enc = nil
				} else {
					enc = font.Encoder()
				}
			}
		case "Tj", "'":
			if n >= 1 && args[n-1].Kind() == pdf.String {
				c.add(decode(args[n-1].RawString()))
			}
		case "\"":
			if n == 3 && args[2].Kind() == pdf.String {
				c.add(decode(args[2].RawString()))
			}
		case "TJ":
			if n == 1 && args[0].Kind() == pdf.Array {
				c.add(joinTJ(args[0], decode))
			}
		}
	}

	contents := page.V.Key("Contents")
	switch contents.Kind() {
	case pdf.Array:
		for i := 0; i < contents.Len(); i++ {
			pdf.Interpret(contents.Index(i), interpret)
		}
	case pdf.Stream:
		pdf.Interpret(contents, interpret)
	}
	c.flush()
	return c.blocks, nil
}

func joinTJ(arr pdf.Value, decode func(string) string) string {
	var b strings.Builder
	for i := 0; i < arr.Len(); i++ {
		item := arr.Index(i)
		switch item.Kind() {
		case pdf.String:
			b.WriteString(decode(item.RawString()))
		case pdf.Integer, pdf.Real:
			if adjustment(item) <= tjSpaceThreshold && b.Len() > 0 && !strings.HasSuffix(b.String(), " ") {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

func adjustment(v pdf.Value) float64 {
	if v.Kind() == pdf.Integer {
		return float64(v.Int64())
	}
	return v.Float64()
}

// decodeRaw handles runs shown without a resolvable font: UTF-16BE text
// strings marked by a byte order mark, otherwise UTF-8 with invalid bytes
// replaced.
func decodeRaw(raw string) string {
	if strings.HasPrefix(raw, "\xfe\xff") {
		decoded, err := xunicode.UTF16(xunicode.BigEndian, xunicode.ExpectBOM).NewDecoder().String(raw)
		if err != nil {
			return ""
		}
		return decoded
	}
	return strings.ToValidUTF8(raw, "�")
}

// cleanRun flattens control characters and reverses any percent-encoding
// applied by the producer.
func cleanRun(text string) string {
	text = strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case r < 0x20:
			return -1
		}
		return r
	}, text)

	if strings.ContainsRune(text, '%') {
		if unescaped, err := url.PathUnescape(text); err == nil && utf8.ValidString(unescaped) {
			text = unescaped
		}
	}
	return text
}
