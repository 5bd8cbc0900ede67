// Package wrap implements paragraph-aware greedy word wrapping.
//
// Lengths are counted in runes. Words longer than the wrap width are split
// into fixed-size fragments first, so no produced line ever exceeds the width.
package wrap

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/marquee/pkg/domain"
)

// paragraphSep matches a run of blank lines.
var paragraphSep = regexp.MustCompile(`\n\s*\n`)

// Paragraphs normalizes text and returns its words grouped by paragraph.
// Carriage returns count as newlines, interior whitespace collapses and
// whitespace-only paragraphs are dropped. Long words are split at width.
func Paragraphs(text string, width int) [][]string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r", "\n"))
	if text == "" {
		return nil
	}

	var paragraphs [][]string
	for _, para := range paragraphSep.Split(text, -1) {
		fields := strings.Fields(para)
		if len(fields) == 0 {
			continue
		}
		words := make([]string, 0, len(fields))
		for _, f := range fields {
			words = append(words, SplitWord(f, width)...)
		}
		paragraphs = append(paragraphs, words)
	}
	return paragraphs
}

// Tokenize flattens text into a word stream with a ParagraphBreak between
// consecutive paragraphs. There is never a leading or trailing break.
func Tokenize(text string, width int) []domain.Token {
	var tokens []domain.Token
	for i, words := range Paragraphs(text, width) {
		if i > 0 {
			tokens = append(tokens, domain.ParagraphBreak())
		}
		for _, w := range words {
			tokens = append(tokens, domain.Word(w))
		}
	}
	return tokens
}

// Text wraps text at width and returns every line tagged with its paragraph index.
func Text(text string, width int) []domain.Line {
	var lines []domain.Line
	for i, words := range Paragraphs(text, width) {
		for _, l := range Greedy(words, width) {
			lines = append(lines, domain.Line{Paragraph: i, Text: l})
		}
	}
	return lines
}

// SplitWord cuts word into consecutive fragments of width runes.
// The last fragment may be shorter. A width below 1 is treated as 1.
func SplitWord(word string, width int) []string {
	width = max(1, width)
	if utf8.RuneCountInString(word) <= width {
		return []string{word}
	}

	runes := []rune(word)
	parts := make([]string, 0, (len(runes)+width-1)/width)
	for start := 0; start < len(runes); start += width {
		end := min(start+width, len(runes))
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}

// Lines wraps a single sentence at width. Whitespace runs act as one separator.
func Lines(sentence string, width int) []string {
	fields := strings.Fields(sentence)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		words = append(words, SplitWord(f, width)...)
	}
	return Greedy(words, width)
}

// Greedy packs words into lines, adding a word to the current line while the
// line joined by single spaces stays within width. Words are expected to fit
// the width already; an oversized word gets a line of its own.
func Greedy(words []string, width int) []string {
	var (
		lines   []string
		current strings.Builder
		length  int
	)
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		if length == 0 {
			current.WriteString(w)
			length = n
			continue
		}
		if length+1+n <= width {
			current.WriteByte(' ')
			current.WriteString(w)
			length += 1 + n
			continue
		}
		lines = append(lines, current.String())
		current.Reset()
		current.WriteString(w)
		length = n
	}
	if length > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
