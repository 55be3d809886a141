package importer

import (
	"archive/zip"
	"bytes"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// docx files are zip archives; the body lives in word/document.xml. Reading
// the archive handles both stored and deflated entries, unlike a raw byte
// scan of the stream.
func parseDOCX(data []byte) Grid {
	lines := docxParagraphs(data)
	if len(lines) == 0 {
		// Not a readable archive. Salvage whatever text survives.
		lines = printableRuns(data, 8)
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

// docxParagraphs extracts one line per <w:p> paragraph from word/document.xml.
func docxParagraphs(data []byte) []string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil
	}
	var doc []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		doc, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil
		}
		break
	}
	if len(doc) == 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(string(doc), "</w:p>") {
		text := strings.TrimSpace(stripTags(para))
		if text != "" {
			lines = append(lines, text)
		}
	}
	slog.Debug("import_docx_paragraphs", "count", len(lines))
	return lines
}

// stripTags removes XML/HTML tags, keeping the character data.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Date patterns recognized inside free-form document text.
var (
	slashDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	wordDateRe  = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+` +
		`(Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|` +
		`Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)` +
		`\s+(\d{4})\b`)
	monthHeadingRe = regexp.MustCompile(`(?i)^(January|February|March|April|May|June|` +
		`July|August|September|October|November|December)\s+(\d{4})$`)
	leadingDayRangeRe = regexp.MustCompile(`^(\d{1,2})\s*[-–]\s*(\d{1,2})\b`)
	leadingDayRe      = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?\b`)
)

// synthesizeCalendarRows turns free-form calendar lines into grid rows with
// the standard header layout. A heading naming a month sets context for bare
// day numbers on the lines below it ("12-14  Spring Rally - Anytown PC").
func synthesizeCalendarRows(lines []string) [][]string {
	var rows [][]string
	var ctxMonth, ctxYear string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := monthHeadingRe.FindStringSubmatch(line); m != nil {
			ctxMonth, ctxYear = m[1], m[2]
			continue
		}

		start, end, rest := extractDates(line, ctxMonth, ctxYear)
		if start == "" {
			continue
		}
		row := make([]string, len(StandardHeader))
		row[0] = cleanEventText(rest)
		row[1] = start
		row[2] = end
		rows = append(rows, row)
	}
	return rows
}

// extractDates pulls up to two dates out of a line, returning the remaining
// text. Bare leading day numbers resolve against the current month heading.
func extractDates(line, ctxMonth, ctxYear string) (start, end, rest string) {
	var found []string
	rest = line

	for _, m := range wordDateRe.FindAllString(rest, 2) {
		found = append(found, m)
	}
	rest = wordDateRe.ReplaceAllString(rest, "")

	if len(found) < 2 {
		for _, m := range slashDateRe.FindAllString(rest, 2-len(found)) {
			found = append(found, m)
		}
		rest = slashDateRe.ReplaceAllString(rest, "")
	}

	if len(found) == 0 && ctxMonth != "" {
		if m := leadingDayRangeRe.FindStringSubmatch(rest); m != nil {
			found = append(found,
				m[1]+" "+ctxMonth+" "+ctxYear,
				m[2]+" "+ctxMonth+" "+ctxYear)
			rest = strings.TrimPrefix(rest, m[0])
		} else if m := leadingDayRe.FindStringSubmatch(rest); m != nil {
			found = append(found, m[1]+" "+ctxMonth+" "+ctxYear)
			rest = strings.TrimPrefix(rest, m[0])
		}
	}

	if len(found) == 0 {
		return "", "", line
	}
	start = found[0]
	if len(found) > 1 {
		end = found[1]
	}
	return start, end, rest
}

// cleanEventText tidies a line after date removal.
func cleanEventText(s string) string {
	s = strings.Trim(s, " \t-–:,.")
	return strings.Join(strings.Fields(s), " ")
}
