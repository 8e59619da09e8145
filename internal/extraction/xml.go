package extraction

import (
	"encoding/xml"
	"io"
	"regexp"
	"strings"
)

// extractXML collects character data from an XML document via a token
// walker, falling back to tag stripping when the document is not
// well-formed.
func extractXML(content string) string {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var sb strings.Builder
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return collapseWhitespace(xmlTagPattern.ReplaceAllString(content, " "))
		}

		if data, ok := token.(xml.CharData); ok {
			sb.Write(data)
			sb.WriteString(" ")
		}
	}

	return collapseWhitespace(sb.String())
}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)
