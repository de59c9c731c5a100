package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// linkMarkup serializes a TOC link with its target rewritten to .html.
func linkMarkup(a *goquery.Selection, href string) (string, error) {
	link := a.Clone()
	link.SetAttr("href", HTMLHref(href))
	return goquery.OuterHtml(link)
}

// titleMarkup renders the children of n keeping only <em> elements;
// every other tag is dropped but its text is kept.
func titleMarkup(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeTitleNode(&b, c)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func writeTitleNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(html.EscapeString(n.Data))
	case html.ElementNode:
		em := n.DataAtom == atom.Em
		if em {
			b.WriteString("<em>")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeTitleNode(b, c)
		}
		if em {
			b.WriteString("</em>")
		}
	}
}
