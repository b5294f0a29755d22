package chunker

import (
	"strings"
	"unicode/utf8"

	"hawkai/internal/domain"
)

// DefaultMaxLen keeps chunks comfortably below the embedding service's input
// ceiling (~512 tokens for the default model).
const DefaultMaxLen = 1500

// SectionChunker splits a document into bounded-size chunks along semantic
// boundaries: section separator lines first, then paragraphs, then sentences,
// with hard truncation only when a single sentence exceeds the limit.
// Concatenating the chunk texts in order reconstructs the document exactly,
// and identical input always yields identical chunk boundaries.
type SectionChunker struct {
	maxLen int
}

func NewSectionChunker(maxLen int) *SectionChunker {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &SectionChunker{maxLen: maxLen}
}

// Chunk splits text into chunks with embeddings unset. Each chunk records its
// byte offset into the original document.
func (c *SectionChunker) Chunk(sourceID, text string) ([]domain.Chunk, error) {
	if text == "" {
		return nil, nil
	}

	var pieces []string
	for _, para := range splitParagraphs(text) {
		if len(para) <= c.maxLen {
			pieces = append(pieces, para)
			continue
		}
		for _, sent := range splitSentences(para) {
			if len(sent) <= c.maxLen {
				pieces = append(pieces, sent)
				continue
			}
			pieces = append(pieces, hardCut(sent, c.maxLen)...)
		}
	}

	var chunks []domain.Chunk
	var buf strings.Builder
	offset := 0
	start := 0
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		chunks = append(chunks, domain.Chunk{
			ID:       len(chunks),
			SourceID: sourceID,
			Text:     buf.String(),
			Offset:   start,
		})
		buf.Reset()
		start = offset
	}
	for _, p := range pieces {
		if buf.Len() > 0 && buf.Len()+len(p) > c.maxLen {
			flush()
		}
		buf.WriteString(p)
		offset += len(p)
		// a separator line closes the current section
		if endsWithSeparatorLine(p) {
			flush()
		}
	}
	flush()
	return chunks, nil
}

// splitParagraphs cuts after blank lines and section separator lines. Every
// byte of the input ends up in exactly one part.
func splitParagraphs(s string) []string {
	var parts []string
	start := 0
	lineStart := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != '\n' {
			continue
		}
		line := s[lineStart:i]
		end := i
		if i < len(s) {
			end = i + 1 // keep the newline with the part it closes
		}
		if strings.TrimSpace(line) == "" || isSeparatorLine(line) {
			if end > start {
				parts = append(parts, s[start:end])
				start = end
			}
		}
		lineStart = i + 1
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

// splitSentences cuts after terminal punctuation followed by whitespace,
// keeping the whitespace with the sentence it follows.
func splitSentences(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', '!', '?':
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
				j++
			}
			if j > i+1 || j == len(s) {
				parts = append(parts, s[start:j])
				start = j
				i = j - 1
			}
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

// hardCut slices s into pieces of at most maxLen bytes, backing up to the
// last space when one exists so words stay whole where avoidable.
func hardCut(s string, maxLen int) []string {
	var parts []string
	for len(s) > maxLen {
		cut := strings.LastIndexByte(s[:maxLen], ' ')
		if cut > 0 {
			cut++ // the space stays with the left piece
		} else {
			cut = maxLen
			for cut > 0 && !utf8.RuneStart(s[cut]) {
				cut--
			}
			if cut == 0 {
				cut = maxLen
			}
		}
		parts = append(parts, s[:cut])
		s = s[cut:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}

func endsWithSeparatorLine(piece string) bool {
	trimmed := strings.TrimRight(piece, "\n")
	if i := strings.LastIndexByte(trimmed, '\n'); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return isSeparatorLine(trimmed)
}

func isSeparatorLine(s string) bool {
	t := strings.TrimSpace(s)
	if len(t) < 10 {
		return false
	}
	for i := 0; i < len(t); i++ {
		if t[i] != '=' && t[i] != '-' {
			return false
		}
	}
	return true
}
