package domain

// TokenKind tags a Token in the word stream.
type TokenKind uint8

const (
	TokenWord TokenKind = iota
	TokenParagraphBreak
)

// Token is one element of the word stream handed to the chunker:
// either a printable word or a paragraph break.
type Token struct {
	Kind TokenKind
	Text string
}

// Word returns a word token.
func Word(text string) Token {
	return Token{Kind: TokenWord, Text: text}
}

// ParagraphBreak returns a paragraph break token.
func ParagraphBreak() Token {
	return Token{Kind: TokenParagraphBreak}
}

// IsBreak reports whether t marks a paragraph boundary.
func (t Token) IsBreak() bool {
	return t.Kind == TokenParagraphBreak
}

// Line is a wrapped line tagged with the paragraph it came from.
type Line struct {
	Paragraph int
	Text      string
}
