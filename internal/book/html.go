package book

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/justyntemme/folio/pkg/models"
)

// Class names used by static HTML e-books
const (
	classPage     = "page"
	classTOCLink  = "toc-link"
	classPageLink = "toc-page-link"
	attrDataPage  = "data-page"
)

// ParseHTML reads a single-file HTML e-book. Every element with class "page"
// is a page, in document order. Anchors with class "toc-link" form the table
// of contents and anchors with class "toc-page-link" inside a page are page
// links; both carry the target index in data-page.
func ParseHTML(r io.Reader) (*models.Book, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	p := &htmlParser{book: &models.Book{}}
	p.walk(doc)
	return p.book, nil
}

type htmlParser struct {
	book *models.Book
}

func (p *htmlParser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch {
		case n.DataAtom == atom.Script || n.DataAtom == atom.Style:
			return
		case n.DataAtom == atom.Title:
			if p.book.Title == "" {
				p.book.Title = collapse(textOf(n))
			}
			return
		case hasClass(n, classPage):
			p.book.Pages = append(p.book.Pages, p.page(n))
			return
		case n.DataAtom == atom.A && hasClass(n, classTOCLink):
			p.tocLink(n)
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func (p *htmlParser) tocLink(n *html.Node) {
	if page, ok := dataPage(n); ok {
		p.book.TOC = append(p.book.TOC, models.TOCEntry{Title: collapse(textOf(n)), Page: page})
	}
}

func (p *htmlParser) page(root *html.Node) models.Page {
	var (
		pg models.Page
		sb strings.Builder
	)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(spaces(n.Data))
			return
		case html.ElementNode:
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			return
		}

		switch n.DataAtom {
		case atom.Script, atom.Style:
			return
		case atom.Br:
			sb.WriteString("\n")
			return
		case atom.Img:
			if pg.Illustration == "" {
				pg.Illustration = attr(n, "src")
			}
			return
		case atom.A:
			if hasClass(n, classPageLink) {
				if page, ok := dataPage(n); ok {
					pg.Refs = append(pg.Refs, models.PageRef{Text: collapse(textOf(n)), Page: page})
				}
			} else if hasClass(n, classTOCLink) {
				p.tocLink(n)
			}
		}

		if pg.Title == "" && isHeading(n) {
			pg.Title = collapse(textOf(n))
		}

		block := isBlock(n)
		if block {
			sb.WriteString("\n\n")
		}
		if n.DataAtom == atom.Li {
			sb.WriteString("• ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			sb.WriteString("\n\n")
		}
	}

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	pg.Body = tidy(sb.String())
	return pg
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func dataPage(n *html.Node) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(attr(n, attrDataPage)))
	if err != nil {
		return 0, false
	}
	return v, true
}

func isHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func isBlock(n *html.Node) bool {
	switch n.DataAtom {
	case atom.P, atom.Div, atom.Section, atom.Article, atom.Header, atom.Footer,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Ul, atom.Ol, atom.Li, atom.Blockquote, atom.Pre, atom.Table, atom.Tr,
		atom.Figure, atom.Figcaption, atom.Hr:
		return true
	}
	return false
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textOf(c))
	}
	return sb.String()
}

// spaces turns every run of whitespace into a single space
func spaces(s string) string {
	var sb strings.Builder
	ws := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			if !ws {
				sb.WriteByte(' ')
			}
			ws = true
			continue
		}
		ws = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func collapse(s string) string {
	return strings.TrimSpace(spaces(s))
}

// tidy trims every line and keeps at most one blank line between paragraphs
func tidy(s string) string {
	var out []string
	blank := true
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
