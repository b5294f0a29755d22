// Package emails parses the corporate email dump and answers email questions
// through metadata pre-filtering followed by semantic ranking.
package emails

import (
	"strings"
	"time"

	"hawkai/internal/domain"
)

// header lines inside a block
const (
	fromPrefix    = "De:"
	toPrefix      = "Para:"
	datePrefix    = "Data:"
	subjectPrefix = "Assunto:"
	bodyPrefix    = "Mensagem:"
)

// ParseDump parses the raw server dump. Blocks are delimited by lines of 70
// or more dashes; the dump's own header block (the one carrying the server
// banner, no De: line) is skipped. Blocks missing a sender or a body are
// dropped rather than reported, matching how partial exports behave.
func ParseDump(content string) []domain.Email {
	var out []domain.Email

	lines := strings.Split(content, "\n")
	blockStart := 0
	flush := func(start, end int) {
		if e, ok := parseBlock(lines[start:end], start+1); ok {
			out = append(out, e)
		}
	}
	for i, line := range lines {
		if isSeparator(line) {
			flush(blockStart, i)
			blockStart = i + 1
		}
	}
	flush(blockStart, len(lines))
	return out
}

func isSeparator(line string) bool {
	line = strings.TrimSpace(line)
	if len(line) < 70 {
		return false
	}
	for _, r := range line {
		if r != '-' {
			return false
		}
	}
	return true
}

func parseBlock(lines []string, startLine int) (domain.Email, bool) {
	var e domain.Email
	e.Offset = startLine

	var body []string
	inBody := false
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, fromPrefix):
			e.From = stripAddress(strings.TrimPrefix(line, fromPrefix))
			inBody = false
		case strings.HasPrefix(line, toPrefix):
			e.To = stripAddress(strings.TrimPrefix(line, toPrefix))
			inBody = false
		case strings.HasPrefix(line, datePrefix):
			e.Date = parseDate(strings.TrimSpace(strings.TrimPrefix(line, datePrefix)))
			inBody = false
		case strings.HasPrefix(line, subjectPrefix):
			e.Subject = strings.TrimSpace(strings.TrimPrefix(line, subjectPrefix))
			inBody = false
		case strings.HasPrefix(line, bodyPrefix):
			inBody = true
		case inBody && line != "":
			body = append(body, line)
		}
	}
	e.Body = strings.Join(body, " ")

	if e.From == "" || e.Body == "" {
		return domain.Email{}, false
	}
	return e, true
}

// stripAddress keeps the display name, dropping any <addr@host> part.
func stripAddress(s string) string {
	if i := strings.IndexByte(s, '<'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
