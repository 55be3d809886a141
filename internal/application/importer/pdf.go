package importer

import (
	"bytes"
	"strings"
)

// parsePDF is a best-effort extraction for PDFs with an uncompressed text
// layer: it scans for BT...ET text blocks and collects parenthesized string
// operands. Scanned images, compressed streams and non-ASCII encodings yield
// nothing, and the caller degrades to the manual-review placeholder. This is
// a documented accuracy limitation, not a real PDF parser.
func parsePDF(data []byte) Grid {
	var lines []string
	rest := data
	for {
		bt := bytes.Index(rest, []byte("BT"))
		if bt < 0 {
			break
		}
		rest = rest[bt+2:]
		et := bytes.Index(rest, []byte("ET"))
		if et < 0 {
			break
		}
		block := rest[:et]
		rest = rest[et+2:]

		if text := pdfBlockText(block); text != "" {
			lines = append(lines, text)
		}
	}

	if len(lines) == 0 {
		return nil
	}
	rows := synthesizeCalendarRows(lines)
	if len(rows) == 0 {
		return nil
	}
	return append(Grid{append([]string(nil), StandardHeader...)}, rows...)
}

// pdfBlockText joins the printable parenthesized operands of one text block.
func pdfBlockText(block []byte) string {
	var parts []string
	depth := 0
	var cur []byte
	for i := 0; i < len(block); i++ {
		b := block[i]
		switch {
		case b == '\\' && depth > 0 && i+1 < len(block):
			i++ // skip escaped character
			if block[i] >= 0x20 && block[i] <= 0x7e {
				cur = append(cur, block[i])
			}
		case b == '(':
			depth++
			if depth == 1 {
				cur = cur[:0]
			}
		case b == ')':
			if depth > 0 {
				depth--
				if depth == 0 && len(cur) > 0 {
					parts = append(parts, string(cur))
				}
			}
		case depth > 0 && b >= 0x20 && b <= 0x7e:
			cur = append(cur, b)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
