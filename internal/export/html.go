package export

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dgallion1/tripgest/internal/trip"
)

var renderer = goldmark.New(
	goldmark.WithExtensions(
		extension.Linkify,
	),
)

const pageStyle = `body{font-family:system-ui,sans-serif;max-width:46rem;margin:2rem auto;padding:0 1rem;line-height:1.5}
h2{border-bottom:1px solid #ddd;padding-bottom:.2rem}
blockquote{color:#555;margin:.2rem 0 .6rem 1rem}`

// HTML renders the Markdown body of t into a standalone page. goldmark
// drops raw HTML found in activity text.
func HTML(t *trip.Trip) ([]byte, error) {
	var body bytes.Buffer
	if err := renderer.Convert(markdownBody(t), &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n<style>%s</style>\n</head>\n<body>\n", html.EscapeString(t.Title), pageStyle)
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
