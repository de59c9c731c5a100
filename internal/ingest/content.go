package ingest

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ReadContent returns the body of a Big Book page as a <div>. Unless
// heading is set the page's first h1 is removed. Internal links are
// pointed at the generated .html pages.
func ReadContent(file string, heading bool) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", file, err)
	}
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return "", fmt.Errorf("%s: no body element", file)
	}
	if !heading {
		body.Find("h1").First().Remove()
	}
	body.Find("a.internal").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			a.SetAttr("href", HTMLHref(href))
		}
	})

	inner, err := body.Html()
	if err != nil {
		return "", fmt.Errorf("render %s: %w", file, err)
	}
	return "<div>\n" + strings.TrimSpace(inner) + "\n</div>\n", nil
}
