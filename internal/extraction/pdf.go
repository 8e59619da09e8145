package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF decodes page text from a PDF document. Pages that fail to
// decode are skipped; the document is rejected only when no page yields text.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		sb.WriteString(content)
		sb.WriteString("\n")
	}

	text := collapseWhitespace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: no decodable page text", ErrUnreadablePDF)
	}

	return text, nil
}
