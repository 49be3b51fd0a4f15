package render

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Heading is a section heading of the article.
type Heading struct {
	// Level is 1 for <h1> through 6 for <h6>.
	Level int

	// Text is the heading text with whitespace collapsed.
	Text string
}

// Document is the terminal rendition of an article.
type Document struct {
	// Title is the text of the first <h1>, or "" if there is none.
	Title string

	// Headings lists every heading in document order.
	Headings []Heading

	// Links lists distinct link targets in document order. Fragment-only,
	// javascript: and mailto: links are skipped.
	Links []string

	// Text is the article as plain text.
	Text string

	// Words is the number of words in Text.
	Words int
}

// skippedElements are not rendered at all.
var skippedElements = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// blockElements start and end a paragraph.
var blockElements = map[string]bool{
	"p":          true,
	"div":        true,
	"article":    true,
	"section":    true,
	"header":     true,
	"footer":     true,
	"main":       true,
	"aside":      true,
	"nav":        true,
	"blockquote": true,
	"figure":     true,
	"figcaption": true,
	"table":      true,
	"dl":         true,
}

// Parse renders the markup read from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Headings: make([]Heading, 0),
		Links:    make([]string, 0),
	}
	w := &textWriter{lineStart: true}
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if w.pre > 0 {
				w.raw(n.Data)
			} else {
				w.text(n.Data)
			}
			return
		case html.ElementNode:
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			return
		}

		if skippedElements[n.Data] {
			return
		}

		if level := headingLevel(n.Data); level > 0 {
			text := textOf(n)
			doc.Headings = append(doc.Headings, Heading{Level: level, Text: text})
			if level == 1 && doc.Title == "" {
				doc.Title = text
			}
			w.paragraph()
			w.prefix(strings.Repeat("#", level) + " ")
			w.text(text)
			w.paragraph()
			return
		}

		switch n.Data {
		case "br":
			w.newline()
			return
		case "hr":
			w.paragraph()
			w.prefix("----")
			w.paragraph()
			return
		case "img":
			if alt := strings.TrimSpace(getAttr(n, "alt")); alt != "" {
				w.text(" [image: " + alt + "] ")
			}
			return
		case "pre":
			w.paragraph()
			w.pre++
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			w.pre--
			w.paragraph()
			return
		case "ul", "ol":
			w.breakLine()
			w.lists = append(w.lists, listState{ordered: n.Data == "ol"})
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			w.lists = w.lists[:len(w.lists)-1]
			if len(w.lists) == 0 {
				w.paragraph()
			}
			return
		case "li":
			w.breakLine()
			w.prefix(w.listMarker())
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			w.breakLine()
			return
		case "tr":
			w.breakLine()
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			w.breakLine()
			return
		case "td", "th":
			w.text(" ")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			w.text(" ")
			return
		case "a":
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			href := linkTarget(getAttr(n, "href"))
			if href == "" {
				return
			}
			if !seen[href] {
				seen[href] = true
				doc.Links = append(doc.Links, href)
			}
			if textOf(n) != href {
				w.text(" (" + href + ")")
			}
			return
		}

		block := blockElements[n.Data]
		if block {
			w.paragraph()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			w.paragraph()
		}
	}
	walk(root)

	doc.Text = strings.TrimSpace(w.buf.String())
	doc.Words = len(strings.Fields(doc.Text))
	return doc, nil
}

// Text renders markup to plain text.
func Text(markup string) (string, error) {
	doc, err := Parse(strings.NewReader(markup))
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

func headingLevel(tag string) int {
	if len(tag) != 2 || tag[0] != 'h' {
		return 0
	}
	level, err := strconv.Atoi(tag[1:])
	if err != nil || level < 1 || level > 6 {
		return 0
	}
	return level
}

// linkTarget returns href, or "" for targets that lead nowhere useful.
func linkTarget(href string) string {
	href = strings.TrimSpace(href)
	if href == "" ||
		strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") {
		return ""
	}
	return href
}

// textOf returns the collapsed text of n and its descendants.
func textOf(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
