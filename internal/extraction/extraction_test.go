package extraction_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/regpulse/regpulse/internal/extraction"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		filename    string
		contentType string
		expected    extraction.Format
	}{
		{
			name:     "pdf magic bytes win over filename",
			data:     []byte("%PDF-1.7 rest of document"),
			filename: "notes.txt",
			expected: extraction.FormatPDF,
		},
		{
			name:        "content type html",
			data:        []byte("<html><body>x</body></html>"),
			contentType: "text/html; charset=utf-8",
			expected:    extraction.FormatHTML,
		},
		{
			name:        "content type xml",
			data:        []byte("<doc/>"),
			contentType: "application/xml",
			expected:    extraction.FormatXML,
		},
		{
			name:     "extension fallback",
			data:     []byte("<section>x</section>"),
			filename: "regulation.XML",
			expected: extraction.FormatXML,
		},
		{
			name:     "default text",
			data:     []byte("plain content"),
			filename: "regulation.txt",
			expected: extraction.FormatText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extraction.DetectFormat(tt.data, tt.filename, tt.contentType)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		_, err := extraction.Extract(nil, "empty.txt", "text/plain")
		if !errors.Is(err, extraction.ErrEmptyDocument) {
			t.Errorf("expected ErrEmptyDocument, got %v", err)
		}
	})

	t.Run("plain text collapses whitespace", func(t *testing.T) {
		text, err := extraction.Extract(
			[]byte("a  new \n\n regulation \t here"), "doc.txt", "text/plain",
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "a new regulation here" {
			t.Errorf("unexpected text: %q", text)
		}
	})

	t.Run("latin-1 fallback", func(t *testing.T) {
		// "décret" encoded as Latin-1: é is a lone 0xE9 byte
		data := []byte{'d', 0xE9, 'c', 'r', 'e', 't'}
		text, err := extraction.Extract(data, "doc.txt", "text/plain")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "décret" {
			t.Errorf("expected %q, got %q", "décret", text)
		}
	})

	t.Run("html skips chrome elements", func(t *testing.T) {
		page := `<html><head><style>body { color: red }</style></head>
<body>
<nav>Home | About</nav>
<script>var x = 1;</script>
<p>This regulation introduces new compliance requirements.</p>
<footer>Copyright</footer>
</body></html>`

		text, err := extraction.Extract([]byte(page), "doc.html", "text/html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(text, "new compliance requirements") {
			t.Errorf("expected body text, got %q", text)
		}
		for _, chrome := range []string{"color: red", "var x", "Home | About", "Copyright"} {
			if strings.Contains(text, chrome) {
				t.Errorf("expected %q to be skipped, got %q", chrome, text)
			}
		}
	})

	t.Run("xml collects character data", func(t *testing.T) {
		doc := `<?xml version="1.0"?>
<regulation>
  <title>Energy Act</title>
  <section>Emissions must be reported annually.</section>
</regulation>`

		text, err := extraction.Extract([]byte(doc), "doc.xml", "application/xml")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(text, "Energy Act") ||
			!strings.Contains(text, "Emissions must be reported annually.") {
			t.Errorf("unexpected text: %q", text)
		}
	})

	t.Run("malformed html falls back to tag stripping", func(t *testing.T) {
		text, err := extraction.Extract(
			[]byte("<p>new regulation <b>applies"), "doc.html", "text/html",
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(text, "new regulation") {
			t.Errorf("unexpected text: %q", text)
		}
	})
}

func TestValidate(t *testing.T) {
	cfg := &extraction.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	tests := []struct {
		name     string
		text     string
		expected error
	}{
		{
			name:     "too short",
			text:     "short regulation",
			expected: extraction.ErrTooShort,
		},
		{
			name: "long but not regulatory",
			text: strings.Repeat("the quick brown fox jumps over the lazy dog ", 3),
			expected: extraction.ErrNotRegulatory,
		},
		{
			name: "valid english",
			text: "This regulation establishes compliance requirements for all energy producers operating in the union.",
		},
		{
			name: "valid french",
			text: "Le présent décret fixe les obligations applicables aux producteurs et aux distributeurs sur le territoire national.",
		},
		{
			name: "valid chinese",
			text: "本条例自公布之日起施行。" + strings.Repeat("相关主管部门负责监督执行。", 6),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cfg.Validate(tt.text)
			if tt.expected == nil {
				if err != nil {
					t.Errorf("expected valid, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "english",
			text:     "This act amends the prior legislation and adds a new compliance requirement.",
			expected: "en",
		},
		{
			name:     "french",
			text:     "Un décret pris après avis, une ordonnance et le règlement associé fixent la conformité attendue.",
			expected: "fr",
		},
		{
			name:     "chinese",
			text:     "中华人民共和国能源法规定了相关条例与政策。",
			expected: "zh",
		},
		{
			name:     "no keywords",
			text:     "completely unrelated text about cooking pasta",
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extraction.DetectLanguage(tt.text)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}
