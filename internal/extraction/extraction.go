// Package extraction converts uploaded regulatory documents into plain text.
// It dispatches on document format (PDF, HTML, XML, plain text), validates
// that the result looks like regulatory content, and detects the document
// language from matched keyword tables.
package extraction

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
)

// Format identifies a supported document format.
type Format string

// Supported document formats.
const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatXML  Format = "xml"
	FormatText Format = "text"
)

// Extract converts raw document bytes to plain text based on the detected format.
// Returns ErrEmptyDocument for empty input.
func Extract(data []byte, filename, contentType string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	switch DetectFormat(data, filename, contentType) {
	case FormatPDF:
		return extractPDF(data)
	case FormatHTML:
		return extractHTML(decodeText(data)), nil
	case FormatXML:
		return extractXML(decodeText(data)), nil
	default:
		return collapseWhitespace(decodeText(data)), nil
	}
}

// DetectFormat determines the document format from magic bytes, the declared
// content type, and the filename extension, in that order of preference.
func DetectFormat(data []byte, filename, contentType string) Format {
	if kind, err := filetype.Match(data); err == nil {
		if kind.MIME.Value == "application/pdf" {
			return FormatPDF
		}
	}

	switch {
	case strings.Contains(contentType, "pdf"):
		return FormatPDF
	case strings.Contains(contentType, "html"):
		return FormatHTML
	case strings.Contains(contentType, "xml"):
		return FormatXML
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".html", ".htm":
		return FormatHTML
	case ".xml":
		return FormatXML
	}

	return FormatText
}

// Validate checks that extracted text is plausible regulatory content:
// long enough and containing at least the configured number of regulatory
// keywords. Returns ErrTooShort or ErrNotRegulatory on failure.
func (c *Config) Validate(text string) error {
	if utf8.RuneCountInString(text) < c.MinLength {
		return fmt.Errorf("%w: minimum %d characters", ErrTooShort, c.MinLength)
	}

	if len(MatchKeywords(text)) < c.MinKeywordMatches {
		return fmt.Errorf(
			"%w: fewer than %d regulatory keywords found",
			ErrNotRegulatory, c.MinKeywordMatches,
		)
	}

	return nil
}

// decodeText interprets raw bytes as UTF-8, falling back to Latin-1
// for documents in legacy encodings.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
