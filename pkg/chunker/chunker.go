// Package chunker groups wrapped lines into display-sized chunks.
//
// Packing runs in two phases. Words are first accumulated greedily under a
// character budget of EffectiveWidth*Lines (paragraph breaks always flush).
// Each flushed buffer is then re-wrapped at the effective width and sliced
// into groups of at most Lines lines, each line prefixed with the indent.
// A paragraph break that falls early yields a chunk shorter than the budget;
// that is intended and must not be packed denser.
package chunker

import (
	"unicode/utf8"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/wrap"
	"github.com/muesli/reflow/indent"
)

// Build converts raw text into the ordered chunk sequence for layout.
// Empty or whitespace-only text yields no chunks.
func Build(text string, layout domain.Layout) []domain.Chunk {
	width := layout.EffectiveWidth()
	return Pack(wrap.Tokenize(text, width), layout)
}

// Pack groups an already tokenized word stream into chunks.
// Tokens are expected to be split at layout.EffectiveWidth().
func Pack(tokens []domain.Token, layout domain.Layout) []domain.Chunk {
	p := packer{
		width:    layout.EffectiveWidth(),
		maxLines: layout.MaxLinesPerChunk(),
		indent:   uint(layout.IndentSpaces()),
	}
	p.target = max(1, p.width*p.maxLines)

	for _, tok := range tokens {
		if tok.IsBreak() {
			p.flush()
			continue
		}
		p.add(tok.Text)
	}
	p.flush()
	return p.chunks
}

type packer struct {
	width    int
	maxLines int
	target   int
	indent   uint

	buf    []string
	bufLen int // runes in buf joined by single spaces
	chunks []domain.Chunk
}

func (p *packer) add(word string) {
	n := utf8.RuneCountInString(word)
	if len(p.buf) > 0 && p.bufLen+1+n > p.target {
		p.flush()
	}
	if len(p.buf) == 0 {
		p.buf = append(p.buf, word)
		p.bufLen = n
		return
	}
	p.buf = append(p.buf, word)
	p.bufLen += 1 + n
}

func (p *packer) flush() {
	if len(p.buf) == 0 {
		return
	}
	lines := wrap.Greedy(p.buf, p.width)
	p.buf = nil
	p.bufLen = 0

	for len(lines) > 0 {
		n := min(p.maxLines, len(lines))
		chunk := make(domain.Chunk, n)
		for i, l := range lines[:n] {
			chunk[i] = indent.String(l, p.indent)
		}
		p.chunks = append(p.chunks, chunk)
		lines = lines[n:]
	}
}
