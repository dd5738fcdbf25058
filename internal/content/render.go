package content

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Renderer converts an article's markdown body to HTML. Every second-level
// heading is stamped with its computed slug as the element id so the TOC
// tracker can address it and `#slug` deep links resolve.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a markdown renderer with heading anchor support.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithParserOptions(
				parser.WithASTTransformers(
					util.Prioritized(&headingAnchorTransformer{}, 100),
				),
			),
		),
	}
}

// Render converts markdown to HTML.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// headingAnchorTransformer sets id attributes on h2 nodes using the same slug
// function the TOC uses, so anchors and TOC entries always agree.
type headingAnchorTransformer struct{}

func (t *headingAnchorTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 2 {
			return ast.WalkContinue, nil
		}
		headingText := string(heading.Text(reader.Source()))
		heading.SetAttributeString("id", []byte(Slugify(headingText)))
		return ast.WalkContinue, nil
	})
}
