// Package compose turns generated markdown drafts into plain text laid out
// for a printed page: headings upper-cased and spaced, list items bulleted,
// paragraphs separated by blank lines. The markdown is rendered to HTML
// first so that inline emphasis and links collapse to their visible text.
package compose

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

// Render converts a markdown draft into printable plain text.
func Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering draft: %w", err)
	}
	root, err := html.Parse(&buf)
	if err != nil {
		return "", fmt.Errorf("parsing rendered draft: %w", err)
	}

	var w textWriter
	w.walk(root)
	return w.String(), nil
}

type textWriter struct {
	blocks []string
}

func (w *textWriter) String() string {
	return strings.Join(w.blocks, "\n\n") + "\n"
}

func (w *textWriter) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			w.emit(strings.ToUpper(inlineText(n)))
			return
		case "p":
			w.emit(inlineText(n))
			return
		case "ul", "ol":
			w.emitList(n)
			return
		case "pre":
			w.emit(strings.TrimRight(inlineText(n), "\n"))
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *textWriter) emit(s string) {
	if s = strings.TrimSpace(s); s != "" {
		w.blocks = append(w.blocks, s)
	}
}

func (w *textWriter) emitList(n *html.Node) {
	var lines []string
	num := 1
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		item := strings.TrimSpace(inlineText(c))
		if item == "" {
			continue
		}
		if n.Data == "ol" {
			lines = append(lines, fmt.Sprintf("%d. %s", num, item))
			num++
		} else {
			lines = append(lines, "- "+item)
		}
	}
	if len(lines) > 0 {
		w.blocks = append(w.blocks, strings.Join(lines, "\n"))
	}
}

// inlineText flattens a node to its visible text, collapsing the whitespace
// that the markdown renderer leaves between inline elements.
func inlineText(n *html.Node) string {
	var sb strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	if n.Type == html.ElementNode && n.Data == "pre" {
		return sb.String()
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
