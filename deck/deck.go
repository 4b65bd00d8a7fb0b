// Package deck extracts script blocks from markdown presentation decks. The
// engine reports diagnostics with lines relative to each extracted block;
// Block.Line lets the host translate those back to document coordinates.
package deck

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Block is one fenced code block tagged `skit`.
type Block struct {
	Source string
	Line   int // 1-based document line of the block's first source line
}

// ExtractBlocks pulls every non-empty skit-tagged fenced code block out of a
// markdown document, in document order.
func ExtractBlocks(markdown []byte) []Block {
	doc := goldmark.New().Parser().Parse(text.NewReader(markdown))
	var blocks []Block
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if string(fenced.Language(markdown)) != "skit" {
			return ast.WalkContinue, nil
		}
		lines := fenced.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}
		var src bytes.Buffer
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			src.Write(seg.Value(markdown))
		}
		start := lines.At(0).Start
		blocks = append(blocks, Block{
			Source: src.String(),
			Line:   1 + bytes.Count(markdown[:start], []byte{'\n'}),
		})
		return ast.WalkContinue, nil
	})
	return blocks
}
