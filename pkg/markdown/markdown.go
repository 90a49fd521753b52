// Package markdown extracts expression code blocks from Markdown documents
// using goldmark. Each block keeps a segment table so offsets inside the
// block map back to offsets in the Markdown file.
package markdown

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// DefaultLanguages are the info-string languages extracted when none are configured.
var DefaultLanguages = []string{"expr"}

// Segment maps a run of block text to the Markdown file.
type Segment struct {
	// Offset is the position of the run within Block.Text.
	Offset int

	// FileOffset is the position of the run within the Markdown file.
	FileOffset int

	// Len is the length of the run in bytes.
	Len int
}

// Block is a fenced code block whose language matched.
type Block struct {
	// Language is the first word of the info string.
	Language string

	// Info is the full info string.
	Info string

	// Text is the block content with container prefixes removed.
	Text string

	// Segments is ordered by Offset and covers Text.
	Segments []Segment

	// FileOffset is where the content starts in the Markdown file.
	FileOffset int
}

// FileOffsetOf maps an offset within b.Text to an offset in the Markdown
// file. The end of Text maps to the end of the last segment.
func (b *Block) FileOffsetOf(offset int) int {
	if len(b.Segments) == 0 {
		return b.FileOffset
	}
	offset = max(0, min(offset, len(b.Text)))

	idx := sort.Search(len(b.Segments), func(i int) bool {
		return b.Segments[i].Offset+b.Segments[i].Len > offset
	})
	if idx == len(b.Segments) {
		last := b.Segments[idx-1]
		return last.FileOffset + last.Len
	}
	seg := b.Segments[idx]
	return seg.FileOffset + offset - seg.Offset
}

// Extractor finds fenced code blocks for a set of languages.
type Extractor struct {
	languages []string
	md        goldmark.Markdown
}

// New creates an Extractor. Language names match case-insensitively; an
// empty list selects DefaultLanguages.
func New(languages []string) *Extractor {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	normalized := make([]string, 0, len(languages))
	for _, lang := range languages {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(lang)))
	}

	return &Extractor{
		languages: normalized,
		md:        goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Languages returns the normalized language names.
func (e *Extractor) Languages() []string {
	return slices.Clone(e.languages)
}

// Extract returns the matching blocks of content in document order.
func (e *Extractor) Extract(ctx context.Context, content []byte) ([]Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract cancelled: %w", err)
	}

	doc := e.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	var blocks []Block
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lang := strings.ToLower(string(fenced.Language(content)))
		if !slices.Contains(e.languages, lang) {
			return ast.WalkSkipChildren, nil
		}
		blocks = append(blocks, newBlock(fenced, content))
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	return blocks, nil
}

func newBlock(fenced *ast.FencedCodeBlock, content []byte) Block {
	block := Block{Language: string(fenced.Language(content))}
	if fenced.Info != nil {
		block.Info = string(fenced.Info.Segment.Value(content))
		block.FileOffset = fenced.Info.Segment.Stop
	}

	var sb strings.Builder
	lines := fenced.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		if seg.Stop <= seg.Start {
			continue
		}
		if len(block.Segments) == 0 {
			block.FileOffset = seg.Start
		}
		block.Segments = append(block.Segments, Segment{
			Offset:     sb.Len(),
			FileOffset: seg.Start,
			Len:        seg.Stop - seg.Start,
		})
		sb.Write(content[seg.Start:seg.Stop])
	}
	block.Text = sb.String()

	return block
}
