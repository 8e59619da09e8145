package extraction

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Chrome elements whose text is boilerplate rather than document content.
var skippedElements = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
	"header": true,
	"footer": true,
	"aside":  true,
}

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// extractHTML walks the parsed document tree collecting text nodes while
// skipping page chrome. If parsing fails, falls back to stripping tags with
// a regex so a malformed page still yields its visible text.
func extractHTML(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return collapseWhitespace(htmlTagPattern.ReplaceAllString(content, " "))
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}

		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return collapseWhitespace(sb.String())
}
