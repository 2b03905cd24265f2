package markup

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t\r\n]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// Text renders body HTML as plain terminal text. Headings are prefixed with
// '#', list items with bullets or numbers, links keep their target in
// parentheses and preformatted blocks keep their whitespace.
func Text(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("parse body html: %w", err)
	}

	var b strings.Builder
	w := &textWriter{b: &b}
	w.walk(doc.Find("body").Contents())

	out := blankLineRun.ReplaceAllString(b.String(), "\n\n")
	return strings.TrimSpace(out), nil
}

type textWriter struct {
	b *strings.Builder
}

func (w *textWriter) block() {
	s := w.b.String()
	switch {
	case s == "", strings.HasSuffix(s, "\n\n"):
	case strings.HasSuffix(s, "\n"):
		w.b.WriteString("\n")
	default:
		w.b.WriteString("\n\n")
	}
}

func (w *textWriter) line() {
	if s := w.b.String(); s != "" && !strings.HasSuffix(s, "\n") {
		w.b.WriteString("\n")
	}
}

func (w *textWriter) inline(text string) {
	text = spaceRun.ReplaceAllString(text, " ")
	if text == " " || text == "" {
		if s := w.b.String(); s != "" && !strings.HasSuffix(s, " ") && !strings.HasSuffix(s, "\n") {
			w.b.WriteString(" ")
		}
		return
	}
	if s := w.b.String(); s == "" || strings.HasSuffix(s, "\n") {
		text = strings.TrimLeft(text, " ")
	}
	w.b.WriteString(text)
}

func (w *textWriter) walk(sel *goquery.Selection) {
	sel.Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		switch node.Type {
		case html.TextNode:
			w.inline(node.Data)
		case html.ElementNode:
			w.element(s, node.Data)
		}
	})
}

func (w *textWriter) element(s *goquery.Selection, tag string) {
	switch tag {
	case "script", "style", "iframe", "noscript":
		return
	case "h1", "h2", "h3", "h4", "h5", "h6":
		w.block()
		level := int(tag[1] - '0')
		w.b.WriteString(strings.Repeat("#", level) + " ")
		w.inline(strings.TrimSpace(s.Text()))
		w.block()
	case "p", "div", "section", "article", "figure", "table":
		w.block()
		w.walk(s.Contents())
		w.block()
	case "blockquote":
		w.block()
		inner, _ := Text(innerHTML(s))
		for _, l := range strings.Split(inner, "\n") {
			w.b.WriteString("> " + l + "\n")
		}
		w.block()
	case "pre":
		w.block()
		w.b.WriteString(strings.TrimRight(s.Text(), "\n"))
		w.block()
	case "br":
		w.b.WriteString("\n")
	case "hr":
		w.block()
		w.b.WriteString("----")
		w.block()
	case "ul", "ol":
		w.block()
		ordered := tag == "ol"
		s.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
			w.line()
			if ordered {
				w.b.WriteString(fmt.Sprintf("%d. ", i+1))
			} else {
				w.b.WriteString("• ")
			}
			w.walk(li.Contents())
		})
		w.block()
	case "tr":
		w.line()
		w.walk(s.Contents())
	case "td", "th":
		w.walk(s.Contents())
		w.b.WriteString("  ")
	case "a":
		text := strings.TrimSpace(spaceRun.ReplaceAllString(s.Text(), " "))
		href, _ := s.Attr("href")
		switch {
		case href == "" || href == text || strings.HasPrefix(href, "#"):
			w.inline(text)
		case text == "":
			w.inline(href)
		default:
			w.inline(fmt.Sprintf("%s (%s)", text, href))
		}
	case "img":
		if alt, _ := s.Attr("alt"); strings.TrimSpace(alt) != "" {
			w.inline("[image: " + strings.TrimSpace(alt) + "]")
		}
	default:
		w.walk(s.Contents())
	}
}

func innerHTML(s *goquery.Selection) string {
	h, err := s.Html()
	if err != nil {
		return s.Text()
	}
	return h
}
