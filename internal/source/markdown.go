package source

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. Markup is dropped;
// headings become plain lines and list items become "* " bullets.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	var out lines
	walkMarkdown(doc, src, &out)
	return out.String(), nil
}

func walkMarkdown(n ast.Node, src []byte, out *lines) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.List, *ast.Blockquote:
			walkMarkdown(node, src, out)
		case *ast.ListItem:
			first := true
			for gc := node.FirstChild(); gc != nil; gc = gc.NextSibling() {
				if _, nested := gc.(*ast.List); nested {
					walkMarkdown(gc, src, out)
					continue
				}
				t := inlineText(gc, src)
				if first {
					out.bullet(t)
					first = false
				} else {
					out.add(t)
				}
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			out.add(rawLines(node, src))
		case *ast.ThematicBreak:
		default:
			out.add(inlineText(node, src))
		}
	}
}

// inlineText collects the text of n's inline descendants, keeping soft and
// hard line breaks as newlines.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(src))
				if t.HardLineBreak() || t.SoftLineBreak() {
					buf.WriteByte('\n')
				}
			case *ast.String:
				buf.Write(t.Value)
			case *ast.AutoLink:
				buf.Write(t.Label(src))
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

func rawLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}
